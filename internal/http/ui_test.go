package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cosette-lara/library-catalog/internal/database"
	"github.com/Cosette-lara/library-catalog/internal/database/authors"
	"github.com/Cosette-lara/library-catalog/internal/database/books"
	"github.com/Cosette-lara/library-catalog/internal/entities"
)

func setupUIServer(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_ui_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	controller := NewUIController(
		authors.NewRepository(db.DB),
		books.NewRepository(db.DB),
	)

	router := gin.New()
	router.SetHTMLTemplate(createTestTemplates())
	router.GET("/", controller.DashboardPage)
	router.GET("/authors/:id", controller.AuthorPage)
	router.GET("/books", controller.BooksPage)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func createTestTemplates() *template.Template {
	return template.Must(template.New("").Parse(`
{{define "dashboard"}}Dashboard: {{.TotalAuthors}} authors, {{.TotalBooks}} books{{end}}
{{define "author"}}Author: {{.Author.Name}} ({{.BooksCount}} books, avg {{.Stats.AveragePages}} pages){{end}}
{{define "books"}}Browse books{{end}}
`))
}

func TestUIController_DashboardPage(t *testing.T) {
	t.Run("renders totals", func(t *testing.T) {
		router, db, cleanup := setupUIServer(t)
		defer cleanup()

		author := seedAuthor(t, db, "Counted", "counted@example.com")
		seedBook(t, db, author.ID, "Shelved")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "1 authors, 1 books")
	})

	t.Run("renders with empty catalog", func(t *testing.T) {
		router, _, cleanup := setupUIServer(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "0 authors, 0 books")
	})
}

func TestUIController_AuthorPage(t *testing.T) {
	t.Run("renders author with stats", func(t *testing.T) {
		router, db, cleanup := setupUIServer(t)
		defer cleanup()

		author := seedAuthor(t, db, "Profiled", "profiled@example.com")
		book := &entities.Book{Title: "Measured", AuthorID: author.ID, Pages: intRef(200)}
		require.NoError(t, db.DB.Create(book).Error)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors/"+author.ID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Profiled")
		assert.Contains(t, w.Body.String(), "1 books")
		assert.Contains(t, w.Body.String(), "avg 200 pages")
	})

	t.Run("returns 404 for unknown author", func(t *testing.T) {
		router, _, cleanup := setupUIServer(t)
		defer cleanup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/authors/missing-id", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Author not found")
	})
}

func TestUIController_BooksPage(t *testing.T) {
	router, _, cleanup := setupUIServer(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Browse books")
}
