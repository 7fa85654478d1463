package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/database/authors"
	"github.com/Cosette-lara/library-catalog/internal/entities"
	"github.com/Cosette-lara/library-catalog/internal/validation"
)

// AuthorStore defines database operations for author resources.
type AuthorStore interface {
	List() ([]authors.AuthorWithCount, error)
	GetWithBooks(id string) (*entities.Author, error)
	Create(author *entities.Author) error
	Update(id string, fields map[string]any) (*entities.Author, error)
	Delete(id string) error
	ListBooks(id string) (*entities.Author, []entities.Book, error)
	GetStats(ctx context.Context, id string) (*authors.Stats, error)
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// authorDetail is an author plus its books and book count. The books
// slice shadows the embedded one so an empty list still serializes.
type authorDetail struct {
	entities.Author
	Books      []entities.Book `json:"books"`
	BooksCount int             `json:"booksCount"`
}

func newAuthorDetail(author *entities.Author) authorDetail {
	books := author.Books
	if books == nil {
		books = []entities.Book{}
	}
	return authorDetail{Author: *author, Books: books, BooksCount: len(books)}
}

// List returns all authors ordered by name, each with a book count.
// GET /api/authors
func (controller *AuthorsController) List(c *gin.Context) {
	list, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err, "failed to list authors")
		return
	}
	if list == nil {
		list = []authors.AuthorWithCount{}
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one author with all owned books and the book count.
// GET /api/authors/:id
func (controller *AuthorsController) Get(c *gin.Context) {
	author, err := controller.store.GetWithBooks(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "author not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to get author")
		return
	}
	c.JSON(http.StatusOK, newAuthorDetail(author))
}

type createAuthorRequest struct {
	Name        string            `json:"name" binding:"required"`
	Email       string            `json:"email" binding:"required"`
	Bio         *string           `json:"bio"`
	Nationality *string           `json:"nationality"`
	BirthYear   entities.LooseInt `json:"birthYear"`
}

// Create adds an author. Name and email are required and the email must
// be unique across authors.
// POST /api/authors
func (controller *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, validation.Describe(err))
		return
	}
	if !validation.IsEmail(req.Email) {
		respondValidationError(c, "invalid email")
		return
	}

	author := entities.Author{
		Name:        req.Name,
		Email:       req.Email,
		Bio:         req.Bio,
		Nationality: req.Nationality,
		BirthYear:   req.BirthYear.Ptr(),
	}
	err := controller.store.Create(&author)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondConflict(c, "email already registered")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to create author")
		return
	}
	respondCreated(c, author)
}

type updateAuthorRequest struct {
	Name        entities.Optional[string] `json:"name"`
	Email       entities.Optional[string] `json:"email"`
	Bio         entities.Optional[string] `json:"bio"`
	Nationality entities.Optional[string] `json:"nationality"`
	BirthYear   entities.LooseInt         `json:"birthYear"`
}

// Update applies a partial update: only fields present in the request
// change. Name and email may not be cleared; a non-numeric birthYear
// normalizes to null.
// PUT /api/authors/:id
func (controller *AuthorsController) Update(c *gin.Context) {
	var req updateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, validation.Describe(err))
		return
	}

	if req.Name.Set && !req.Name.Valid {
		respondValidationError(c, "name cannot be null")
		return
	}
	if req.Email.Set && !req.Email.Valid {
		respondValidationError(c, "email cannot be null")
		return
	}
	if req.Email.Set && !validation.IsEmail(req.Email.Value) {
		respondValidationError(c, "invalid email")
		return
	}

	fields := map[string]any{}
	if req.Name.Set {
		fields["name"] = req.Name.Value
	}
	if req.Email.Set {
		fields["email"] = req.Email.Value
	}
	if req.Bio.Set {
		fields["bio"] = optionalValue(req.Bio)
	}
	if req.Nationality.Set {
		fields["nationality"] = optionalValue(req.Nationality)
	}
	if req.BirthYear.Set {
		fields["birth_year"] = looseIntValue(req.BirthYear)
	}

	author, err := controller.store.Update(c.Param("id"), fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "author not found")
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondConflict(c, "email already registered")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to update author")
		return
	}
	c.JSON(http.StatusOK, newAuthorDetail(author))
}

// Delete removes an author; their books go with them (cascade).
// DELETE /api/authors/:id
func (controller *AuthorsController) Delete(c *gin.Context) {
	err := controller.store.Delete(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "author not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to delete author")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "author deleted"})
}

// Stats returns the aggregate statistics over one author's books.
// GET /api/authors/:id/stats
func (controller *AuthorsController) Stats(c *gin.Context) {
	stats, err := controller.store.GetStats(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "author not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to compute author stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Books lists the author's books ordered by publishedYear descending.
// GET /api/authors/:id/books
func (controller *AuthorsController) Books(c *gin.Context) {
	author, books, err := controller.store.ListBooks(c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "author not found")
		return
	}
	if err != nil {
		respondInternalError(c, err, "failed to list author books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, gin.H{
		"author":     authorRef{ID: author.ID, Name: author.Name},
		"totalBooks": len(books),
		"books":      books,
	})
}

func optionalValue[T any](o entities.Optional[T]) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

func looseIntValue(l entities.LooseInt) any {
	if !l.Valid {
		return nil
	}
	return l.Value
}
