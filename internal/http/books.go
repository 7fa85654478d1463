package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/database/books"
	"github.com/Cosette-lara/library-catalog/internal/entities"
	"github.com/Cosette-lara/library-catalog/internal/validation"
)

// BookStore defines database operations for book resources.
type BookStore interface {
	Get(id string) (*entities.Book, error)
	Create(book *entities.Book) error
	Update(id string, fields map[string]any) (*entities.Book, error)
	Delete(id string) error
	Search(params books.SearchParams) ([]entities.Book, int64, error)
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// authorRef is the embedded author shape in book listings.
type authorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Get returns the book with its owning author embedded.
// GET /api/books/:id
func (controller *BooksController) Get(c *gin.Context) {
	book, err := controller.store.Get(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

type createBookRequest struct {
	Title         string            `json:"title" binding:"required"`
	Description   *string           `json:"description"`
	ISBN          *string           `json:"isbn"`
	PublishedYear entities.LooseInt `json:"publishedYear"`
	Genre         *string           `json:"genre"`
	Pages         entities.LooseInt `json:"pages"`
	AuthorID      string            `json:"authorId" binding:"required"`
}

// Create adds a book. The target author must exist; its absence is
// surfaced distinctly from a missing book on reads.
// POST /api/books
func (controller *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, validation.Describe(err))
		return
	}

	book := entities.Book{
		Title:         req.Title,
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear.Ptr(),
		Genre:         req.Genre,
		Pages:         req.Pages.Ptr(),
		AuthorID:      req.AuthorID,
	}
	err := controller.store.Create(&book)
	if errors.Is(err, books.ErrAuthorNotFound) {
		respondNotFound(c, "the specified author does not exist")
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondConflict(c, "isbn already exists")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to create book")
		return
	}
	respondCreated(c, book)
}

type updateBookRequest struct {
	Title         entities.Optional[string] `json:"title"`
	Description   entities.Optional[string] `json:"description"`
	ISBN          entities.Optional[string] `json:"isbn"`
	PublishedYear entities.LooseInt         `json:"publishedYear"`
	Genre         entities.Optional[string] `json:"genre"`
	Pages         entities.LooseInt         `json:"pages"`
	AuthorID      entities.Optional[string] `json:"authorId"`
}

// Update applies a partial update. A present title must keep at least
// three characters, numeric pages must stay positive and a reassigned
// authorId must reference an existing author.
// PUT /api/books/:id
func (controller *BooksController) Update(c *gin.Context) {
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, validation.Describe(err))
		return
	}

	if req.Title.Set && !req.Title.Valid {
		respondValidationError(c, "title cannot be null")
		return
	}
	if req.Title.Set && len(strings.TrimSpace(req.Title.Value)) < 3 {
		respondValidationError(c, "title must be at least 3 characters")
		return
	}
	if req.Pages.Set && req.Pages.Valid && req.Pages.Value < 1 {
		respondValidationError(c, "pages must be greater than 0")
		return
	}
	if req.AuthorID.Set && !req.AuthorID.Valid {
		respondValidationError(c, "authorId cannot be null")
		return
	}

	fields := map[string]any{}
	if req.Title.Set {
		fields["title"] = req.Title.Value
	}
	if req.Description.Set {
		fields["description"] = optionalValue(req.Description)
	}
	if req.ISBN.Set {
		fields["isbn"] = optionalValue(req.ISBN)
	}
	if req.PublishedYear.Set {
		fields["published_year"] = looseIntValue(req.PublishedYear)
	}
	if req.Genre.Set {
		fields["genre"] = optionalValue(req.Genre)
	}
	if req.Pages.Set {
		fields["pages"] = looseIntValue(req.Pages)
	}
	if req.AuthorID.Set {
		fields["author_id"] = req.AuthorID.Value
	}

	book, err := controller.store.Update(c.Param("id"), fields)
	if errors.Is(err, books.ErrAuthorNotFound) {
		respondNotFound(c, "the specified author does not exist")
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book not found")
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondConflict(c, "isbn already exists")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book.
// DELETE /api/books/:id
func (controller *BooksController) Delete(c *gin.Context) {
	err := controller.store.Delete(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to delete book")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "book deleted"})
}

// searchBookResponse narrows the embedded author to id and name.
type searchBookResponse struct {
	entities.Book
	Author authorRef `json:"author"`
}

// PaginationMeta describes the current search page.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// SearchResponse is the search envelope.
type SearchResponse struct {
	Data       []searchBookResponse `json:"data"`
	Pagination PaginationMeta       `json:"pagination"`
}

// Search serves the filtered, sorted, paginated catalog search.
// GET /api/books/search
func (controller *BooksController) Search(c *gin.Context) {
	params := books.SearchParams{
		Search:     c.Query("search"),
		Genre:      c.Query("genre"),
		AuthorName: c.Query("authorName"),
		Page:       intQuery(c, "page", 1),
		Limit:      intQuery(c, "limit", books.DefaultLimit),
		SortBy:     strings.TrimSpace(c.DefaultQuery("sortBy", "createdAt")),
		Order:      strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "desc"))),
	}
	params.Normalize()

	rows, total, err := controller.store.Search(params)
	if err != nil {
		respondInternalErrorDetail(c, err, "failed to search books")
		return
	}

	data := make([]searchBookResponse, 0, len(rows))
	for _, row := range rows {
		ref := authorRef{ID: row.AuthorID}
		if row.Author != nil {
			ref.Name = row.Author.Name
		}
		row.Author = nil
		data = append(data, searchBookResponse{Book: row, Author: ref})
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, SearchResponse{
		Data: data,
		Pagination: PaginationMeta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    params.Page < totalPages,
			HasPrev:    params.Page > 1,
		},
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
