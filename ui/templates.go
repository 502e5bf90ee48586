package ui

import (
	"bytes"
	"html/template"

	"carviz/internal/chart"
	"carviz/internal/errors"

	"github.com/gin-gonic/gin"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"num":  chart.Num,
		"half": func(v float64) float64 { return v / 2 },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return templates, nil
}

// RenderFragment renders one named fragment outside of a request.
func RenderFragment(name string, data interface{}) (string, error) {
	templates, err := parseTemplates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "template %s", name)
	}
	return buf.String(), nil
}

// renderFragment executes a template into a string.
func (s *Server) renderFragment(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "template %s", name)
	}
	return buf.String(), nil
}

// renderTemplate renders to a buffer first so a failing template never
// leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	html, err := s.renderFragment(name, data)
	if err != nil {
		s.logger.Error("template error for %s: %v", name, err)
		s.abortWithError(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(html))
}
