package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/Cosette-lara/library-catalog/internal/database"
)

// RouterConfig carries all router dependencies, improving testability
// and reducing parameter count.
type RouterConfig struct {
	Authors       AuthorStore
	Books         BookStore
	Database      *database.Database
	TemplatesPath string
	StaticPath    string
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Load HTML templates and static assets for the server pages
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)
	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.Authors)
	booksController := NewBooksController(cfg.Books)
	uiController := NewUIController(cfg.Authors, cfg.Books)

	// Health endpoint
	router.GET("/health", health.Status)

	// Authors API endpoints
	router.GET("/api/authors", authorsController.List)
	router.POST("/api/authors", authorsController.Create)
	router.GET("/api/authors/:id", authorsController.Get)
	router.PUT("/api/authors/:id", authorsController.Update)
	router.DELETE("/api/authors/:id", authorsController.Delete)
	router.GET("/api/authors/:id/stats", authorsController.Stats)
	router.GET("/api/authors/:id/books", authorsController.Books)

	// Books API endpoints
	router.GET("/api/books/search", booksController.Search)
	router.GET("/api/books/:id", booksController.Get)
	router.POST("/api/books", booksController.Create)
	router.PUT("/api/books/:id", booksController.Update)
	router.DELETE("/api/books/:id", booksController.Delete)

	// UI routes
	router.GET("/", uiController.DashboardPage)
	router.GET("/authors/:id", uiController.AuthorPage)
	router.GET("/books", uiController.BooksPage)

	return router
}
