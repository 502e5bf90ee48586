package ui

import (
	"html/template"
	"net/http"

	"carviz/app"
	"carviz/domain/core"
	"carviz/internal/errors"

	"github.com/gin-gonic/gin"
)

// indexData is the full page model.
type indexData struct {
	Page  app.Page
	About template.HTML
}

// handleIndex serves the page for the viewer's current selection, or the
// failure page when the dataset did not load.
func (s *Server) handleIndex(c *gin.Context) {
	if err := s.service.Failed(); err != nil {
		s.renderTemplate(c, http.StatusServiceUnavailable, "index.html", indexData{
			Page:  s.service.Render(app.State{}),
			About: s.about,
		})
		return
	}

	ctrl, ok := s.controller(c, false)
	if !ok {
		s.abortWithError(c, errors.InternalError("no viewer session"))
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", indexData{Page: ctrl.Render(), About: s.about})
}

// selectRecord parses the id parameter and applies the selection.
func (s *Server) selectRecord(c *gin.Context) (app.Page, bool) {
	if err := s.service.Failed(); err != nil {
		s.abortWithError(c, err)
		return app.Page{}, false
	}
	id, err := core.ParseRecordID(c.Param("id"))
	if err != nil {
		s.abortWithError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return app.Page{}, false
	}
	ctrl, ok := s.controller(c, true)
	if !ok {
		s.abortWithError(c, errors.InternalError("no viewer session"))
		return app.Page{}, false
	}
	page, err := ctrl.Select(id)
	if err != nil {
		s.abortWithError(c, err)
		return app.Page{}, false
	}
	s.logger.Debug("selected record %s", id)
	return page, true
}

// handleSelectRedirect is the no-script fallback: select, then reload.
func (s *Server) handleSelectRedirect(c *gin.Context) {
	if _, ok := s.selectRecord(c); !ok {
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// handleSelect selects a record and returns the re-rendered fragments.
func (s *Server) handleSelect(c *gin.Context) {
	page, ok := s.selectRecord(c)
	if !ok {
		return
	}

	fragments := make(map[string]string, 3)
	for key, f := range map[string]struct {
		name string
		data interface{}
	}{
		"scatterplot": {"scatterplot", page.Scatterplot},
		"details":     {"details", page.Details},
		"starplot":    {"starplot", page.StarPlot},
	} {
		html, err := s.renderFragment(f.name, f.data)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		fragments[key] = html
	}
	c.JSON(http.StatusOK, fragments)
}

// renderCurrent writes one fragment for the viewer's current state.
func (s *Server) renderCurrent(c *gin.Context, name string, pick func(app.Page) interface{}) {
	if err := s.service.Failed(); err != nil {
		s.renderTemplate(c, http.StatusServiceUnavailable, "failure", s.service.Render(app.State{}).Failure)
		return
	}
	ctrl, ok := s.controller(c, false)
	if !ok {
		s.abortWithError(c, errors.InternalError("no viewer session"))
		return
	}
	s.renderTemplate(c, http.StatusOK, name, pick(ctrl.Render()))
}

func (s *Server) handleFragmentScatterplot(c *gin.Context) {
	s.renderCurrent(c, "scatterplot", func(p app.Page) interface{} { return p.Scatterplot })
}

func (s *Server) handleFragmentDetails(c *gin.Context) {
	s.renderCurrent(c, "details", func(p app.Page) interface{} { return p.Details })
}

func (s *Server) handleFragmentStarPlot(c *gin.Context) {
	s.renderCurrent(c, "starplot", func(p app.Page) interface{} { return p.StarPlot })
}
