package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/database/books"
)

// UIController serves the server-rendered pages. The dashboard and
// author detail are composed server-side; the books page hosts the
// client browsing widget.
type UIController struct {
	authors AuthorStore
	books   BookStore
}

func NewUIController(authors AuthorStore, books BookStore) *UIController {
	return &UIController{authors: authors, books: books}
}

// DashboardPage renders the author table plus library totals.
// GET /
func (controller *UIController) DashboardPage(c *gin.Context) {
	list, err := controller.authors.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}

	// Total book count comes from the search envelope, same as the API.
	_, totalBooks, err := controller.books.Search(books.SearchParams{Limit: 1})
	if err != nil {
		c.String(http.StatusInternalServerError, "Error counting books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Authors":      list,
		"TotalAuthors": len(list),
		"TotalBooks":   totalBooks,
	})
}

// AuthorPage renders one author with books and stats.
// GET /authors/:id
func (controller *UIController) AuthorPage(c *gin.Context) {
	id := c.Param("id")

	author, err := controller.authors.GetWithBooks(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusNotFound, "Author not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading author: %s", err.Error())
		return
	}

	stats, err := controller.authors.GetStats(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading author stats: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "author", gin.H{
		"Author":     author,
		"Stats":      stats,
		"BooksCount": len(author.Books),
	})
}

// BooksPage renders the browsing widget shell; the widget fetches its
// rows from /api/books/search.
// GET /books
func (controller *UIController) BooksPage(c *gin.Context) {
	c.HTML(http.StatusOK, "books", gin.H{})
}
