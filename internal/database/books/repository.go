// Package books provides database operations for book records and the
// filtered, paginated catalog search.
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/entities"
)

// ErrAuthorNotFound reports a book write referencing a missing author.
// Kept distinct from gorm.ErrRecordNotFound so handlers can tell
// "the book is missing" apart from "the target author is missing".
var ErrAuthorNotFound = errors.New("referenced author does not exist")

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns one book with its owning author embedded.
func (r *Repository) Get(id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new book after verifying the target author exists.
func (r *Repository) Create(book *entities.Book) error {
	if err := r.checkAuthor(book.AuthorID); err != nil {
		return err
	}
	if err := r.db.Create(book).Error; err != nil {
		return err
	}
	return r.db.Preload("Author").First(book, "id = ?", book.ID).Error
}

// Update applies a partial update: only keys present in fields change.
// When fields reassigns author_id the target author must exist.
func (r *Repository) Update(id string, fields map[string]any) (*entities.Book, error) {
	if authorID, ok := fields["author_id"]; ok {
		s, _ := authorID.(string)
		if err := r.checkAuthor(s); err != nil {
			return nil, err
		}
	}

	var book entities.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.Model(&book).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return r.Get(id)
}

// Delete removes a book.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&entities.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) checkAuthor(id string) error {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

// SearchParams are the catalog search filters. All provided filters
// combine with AND; empty filters match everything.
type SearchParams struct {
	Search     string // substring match against title, case-insensitive
	Genre      string // exact match
	AuthorName string // substring match against the author name, case-insensitive
	Page       int
	Limit      int
	SortBy     string // title, publishedYear or createdAt
	Order      string // asc or desc
}

var sortColumns = map[string]string{
	"title":         "books.title",
	"publishedYear": "books.published_year",
	"createdAt":     "books.created_at",
}

// Normalize clamps pagination and falls back to the default sort for
// unrecognized values: page >= 1, limit within [1, 50] (out of range
// reverts to 10), sortBy createdAt, order desc.
func (p *SearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "createdAt"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
}

// Search returns the matching page of books with authors preloaded and
// the total matching count. Results carry a secondary id sort so pages
// are stable.
func (r *Repository) Search(params SearchParams) ([]entities.Book, int64, error) {
	params.Normalize()

	query := r.db.Model(&entities.Book{})
	if s := strings.TrimSpace(params.Search); s != "" {
		query = query.Where("LOWER(books.title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if g := strings.TrimSpace(params.Genre); g != "" {
		query = query.Where("books.genre = ?", g)
	}
	if a := strings.TrimSpace(params.AuthorName); a != "" {
		query = query.
			Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(authors.name) LIKE ?", "%"+strings.ToLower(a)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := fmt.Sprintf("%s %s, books.id ASC", sortColumns[params.SortBy], strings.ToUpper(params.Order))

	var rows []entities.Book
	err := query.
		Preload("Author").
		Order(order).
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
