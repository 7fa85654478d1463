package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Cosette-lara/library-catalog/internal/config"
	"github.com/Cosette-lara/library-catalog/internal/database"
	"github.com/Cosette-lara/library-catalog/internal/database/authors"
	"github.com/Cosette-lara/library-catalog/internal/database/books"
	"github.com/Cosette-lara/library-catalog/internal/entities"
)

// SeedCommand populates a database with sample authors and books.
type SeedCommand struct {
	DatabasePath string
	Fresh        bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file to seed")
	fs.BoolVar(&cmd.Fresh, "fresh", false, "Remove the database file first and start from an empty schema")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Populate the catalog with sample authors and books.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

type seedBook struct {
	title string
	year  *int
	genre *string
	pages *int
	isbn  *string
}

type seedAuthor struct {
	name        string
	email       string
	nationality *string
	birthYear   *int
	books       []seedBook
}

func (cmd *SeedCommand) Run() error {
	if cmd.Fresh {
		if err := os.Remove(cmd.DatabasePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	for _, sa := range sampleAuthors() {
		author := entities.Author{
			Name:        sa.name,
			Email:       sa.email,
			Nationality: sa.nationality,
			BirthYear:   sa.birthYear,
		}
		if err := authorRepo.Create(&author); err != nil {
			log.Printf("Skipping author %s: %v", sa.name, err)
			continue
		}
		log.Printf("Seeded author: %s", author.Name)

		for _, sb := range sa.books {
			book := entities.Book{
				Title:         sb.title,
				PublishedYear: sb.year,
				Genre:         sb.genre,
				Pages:         sb.pages,
				ISBN:          sb.isbn,
				AuthorID:      author.ID,
			}
			if err := bookRepo.Create(&book); err != nil {
				log.Printf("Skipping book %s: %v", sb.title, err)
				continue
			}
			log.Printf("  Seeded book: %s", book.Title)
		}
	}

	return nil
}

func sampleAuthors() []seedAuthor {
	ptr := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	return []seedAuthor{
		{
			name:        "Gabriel García Márquez",
			email:       "gabo@example.com",
			nationality: ptr("Colombian"),
			birthYear:   num(1927),
			books: []seedBook{
				{title: "One Hundred Years of Solitude", year: num(1967), genre: ptr("Novela"), pages: num(417), isbn: ptr("978-0060883287")},
				{title: "Love in the Time of Cholera", year: num(1985), genre: ptr("Novela"), pages: num(348), isbn: ptr("978-0307389732")},
				{title: "Chronicle of a Death Foretold", year: num(1981), genre: ptr("Novela"), pages: num(120), isbn: ptr("978-1400034710")},
			},
		},
		{
			name:        "Ursula K. Le Guin",
			email:       "ursula@example.com",
			nationality: ptr("American"),
			birthYear:   num(1929),
			books: []seedBook{
				{title: "The Left Hand of Darkness", year: num(1969), genre: ptr("Science Fiction"), pages: num(304), isbn: ptr("978-0441478125")},
				{title: "A Wizard of Earthsea", year: num(1968), genre: ptr("Fantasy"), pages: num(183), isbn: ptr("978-0547773742")},
				{title: "The Dispossessed", year: num(1974), genre: ptr("Science Fiction"), pages: num(387), isbn: ptr("978-0061054884")},
			},
		},
		{
			name:        "Jorge Luis Borges",
			email:       "borges@example.com",
			nationality: ptr("Argentine"),
			birthYear:   num(1899),
			books: []seedBook{
				{title: "Ficciones", year: num(1944), genre: ptr("Cuento"), pages: num(174), isbn: ptr("978-0802130303")},
				{title: "El Aleph", year: num(1949), genre: ptr("Cuento"), pages: num(146), isbn: ptr("978-0142437889")},
			},
		},
		{
			name:  "Unpublished Author",
			email: "quiet@example.com",
		},
	}
}
