// Package authors provides database operations for author records,
// including the per-author statistics aggregation.
package authors

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AuthorWithCount is an author row annotated with its book count.
type AuthorWithCount struct {
	entities.Author
	BooksCount int64 `json:"booksCount"`
}

// List returns all authors ordered by name ascending, each with the
// number of books they own.
func (r *Repository) List() ([]AuthorWithCount, error) {
	var rows []entities.Author
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	type bookCount struct {
		AuthorID string
		Count    int64
	}
	var counts []bookCount
	err := r.db.Model(&entities.Book{}).
		Select("author_id, COUNT(*) AS count").
		Group("author_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	countByAuthor := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByAuthor[c.AuthorID] = c.Count
	}

	result := make([]AuthorWithCount, 0, len(rows))
	for _, a := range rows {
		result = append(result, AuthorWithCount{Author: a, BooksCount: countByAuthor[a.ID]})
	}
	return result, nil
}

// GetWithBooks returns one author with all owned books ordered by
// publishedYear descending.
func (r *Repository) GetWithBooks(id string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("published_year DESC, id ASC")
		}).
		First(&author, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Get returns one author without associations.
func (r *Repository) Get(id string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Create inserts a new author. A duplicate email surfaces as
// gorm.ErrDuplicatedKey.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update applies a partial update: only keys present in fields change.
// Returns the reloaded author with books, gorm.ErrRecordNotFound when
// the author does not exist, gorm.ErrDuplicatedKey on an email clash.
func (r *Repository) Update(id string, fields map[string]any) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.Model(&author).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return r.GetWithBooks(id)
}

// Delete removes an author; owned books go with it through the cascade.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&entities.Author{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBooks returns the author's books ordered by publishedYear
// descending, plus the author itself.
func (r *Repository) ListBooks(id string) (*entities.Author, []entities.Book, error) {
	author, err := r.Get(id)
	if err != nil {
		return nil, nil, err
	}

	var books []entities.Book
	err = r.db.Where("author_id = ?", id).
		Order("published_year DESC, id ASC").
		Find(&books).Error
	if err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

// BookRef is a book reference in the stats payload, keyed by year.
type BookRef struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

// PageRef is a book reference in the stats payload, keyed by pages.
type PageRef struct {
	Title string `json:"title"`
	Pages *int   `json:"pages"`
}

// Stats is the aggregate over one author's books.
type Stats struct {
	AuthorID     string   `json:"authorId"`
	AuthorName   string   `json:"authorName"`
	TotalBooks   int64    `json:"totalBooks"`
	FirstBook    *BookRef `json:"firstBook"`
	LatestBook   *BookRef `json:"latestBook"`
	AveragePages int      `json:"averagePages"`
	Genres       []string `json:"genres"`
	LongestBook  *PageRef `json:"longestBook"`
	ShortestBook *PageRef `json:"shortestBook"`
}

// GetStats computes the author's aggregate statistics. The constituent
// queries are independent and run concurrently; ties on pages break by
// id so the result is deterministic.
func (r *Repository) GetStats(ctx context.Context, id string) (*Stats, error) {
	var author entities.Author
	if err := r.db.Select("id", "name").First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.Model(&entities.Book{}).Where("author_id = ?", id).Count(&total).Error; err != nil {
		return nil, err
	}

	stats := &Stats{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		TotalBooks: total,
		Genres:     []string{},
	}
	if total == 0 {
		return stats, nil
	}

	var (
		firstByYear  *entities.Book
		latestByYear *entities.Book
		longest      *entities.Book
		shortest     *entities.Book
		avgPages     sql.NullFloat64
		genres       []string
	)

	firstBook := func(dst **entities.Book, where string, order string) func() error {
		return func() error {
			var b entities.Book
			err := r.db.WithContext(ctx).
				Where("author_id = ?", id).
				Where(where).
				Order(order).
				First(&b).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			*dst = &b
			return nil
		}
	}

	var g errgroup.Group
	g.Go(firstBook(&firstByYear, "published_year IS NOT NULL", "published_year ASC, id ASC"))
	g.Go(firstBook(&latestByYear, "published_year IS NOT NULL", "published_year DESC, id ASC"))
	g.Go(firstBook(&longest, "pages IS NOT NULL", "pages DESC, id ASC"))
	g.Go(firstBook(&shortest, "pages IS NOT NULL", "pages ASC, id ASC"))
	g.Go(func() error {
		row := r.db.WithContext(ctx).Model(&entities.Book{}).
			Where("author_id = ? AND pages IS NOT NULL", id).
			Select("AVG(pages)").
			Row()
		return row.Scan(&avgPages)
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&entities.Book{}).
			Where("author_id = ? AND genre IS NOT NULL AND genre <> ''", id).
			Distinct().
			Order("genre ASC").
			Pluck("genre", &genres).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// No book has a publishedYear: fall back to creation order.
	if firstByYear == nil {
		if err := firstBook(&firstByYear, "1 = 1", "created_at ASC, id ASC")(); err != nil {
			return nil, err
		}
	}
	if latestByYear == nil {
		if err := firstBook(&latestByYear, "1 = 1", "created_at DESC, id DESC")(); err != nil {
			return nil, err
		}
	}

	if firstByYear != nil {
		stats.FirstBook = &BookRef{Title: firstByYear.Title, Year: firstByYear.PublishedYear}
	}
	if latestByYear != nil {
		stats.LatestBook = &BookRef{Title: latestByYear.Title, Year: latestByYear.PublishedYear}
	}
	if longest != nil {
		stats.LongestBook = &PageRef{Title: longest.Title, Pages: longest.Pages}
	}
	if shortest != nil {
		stats.ShortestBook = &PageRef{Title: shortest.Title, Pages: shortest.Pages}
	}
	if avgPages.Valid {
		stats.AveragePages = int(math.Round(avgPages.Float64))
	}
	if genres != nil {
		stats.Genres = genres
	}

	return stats, nil
}
