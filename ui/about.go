package ui

import (
	"html/template"
	"os"

	"carviz/internal/errors"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderAbout converts markdown to the footer HTML. Raw HTML in the source
// is dropped.
func RenderAbout(md []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML(md, p, renderer))
}

// LoadAbout reads and renders an about file. An empty path yields no footer.
func LoadAbout(path string) (template.HTML, error) {
	if path == "" {
		return "", nil
	}
	md, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "read ABOUT_FILE %s", path))
	}
	return RenderAbout(md), nil
}
