package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"carviz/app"
	"carviz/internal"
	"carviz/internal/session"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:embed templates static
var embeddedFiles embed.FS

// Options configures the viewer server.
type Options struct {
	Service  *app.ViewService
	Sessions *session.Store
	About    template.HTML
	Logger   *internal.Logger
}

// Server is the web front end for the car scatterplot.
type Server struct {
	router    *gin.Engine
	service   *app.ViewService
	sessions  *session.Store
	templates *template.Template
	about     template.HTML
	logger    *internal.Logger
}

// NewServer builds the gin engine, parses the embedded templates and wires
// the routes.
func NewServer(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		service:   opts.Service,
		sessions:  opts.Sessions,
		templates: templates,
		about:     opts.About,
		logger:    logger.With("UI"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures gin middleware and static assets
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("static filesystem unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	viewer := s.router.Group("/", s.sessionMiddleware())
	viewer.GET("/", s.handleIndex)

	selection := viewer.Group("/select", s.rateLimitMiddleware())
	selection.GET("/:id", s.handleSelectRedirect)
	selection.POST("/:id", s.handleSelect)

	fragments := viewer.Group("/fragments")
	fragments.GET("/scatterplot", s.handleFragmentScatterplot)
	fragments.GET("/details", s.handleFragmentDetails)
	fragments.GET("/starplot", s.handleFragmentStarPlot)

	api := s.router.Group("/api")
	api.GET("/records", s.handleRecords)
	api.GET("/records/:id", s.handleRecord)
	api.GET("/categories", s.handleCategories)
	api.GET("/summary", s.handleSummary)
	api.GET("/selection", s.sessionMiddleware(), s.handleSelection)

	export := s.router.Group("/export")
	export.GET("/scatterplot.png", s.handleExportPNG)
	export.GET("/records.xlsx", s.handleExportXLSX)
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "carviz")
}

// Engine exposes the gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.router
}
