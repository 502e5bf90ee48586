package chart

import (
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series is one category's points for the static export.
type Series struct {
	Style Style
	X     []float64
	Y     []float64
}

// PNGOptions sizes the static export.
type PNGOptions struct {
	Width  int
	Height int
	XLabel string
	YLabel string
	X      Linear
	Y      Linear
}

// pointStyle renders dots only, no connecting line.
func pointStyle(hex string) gochart.Style {
	return gochart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    drawing.ColorFromHex(strings.TrimPrefix(hex, "#")),
	}
}

// RenderPNG draws a static, non-interactive scatterplot with a legend.
func RenderPNG(w io.Writer, series []Series, opts PNGOptions) error {
	ch := gochart.Chart{
		Background: gochart.Style{Padding: gochart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		Width:      opts.Width,
		Height:     opts.Height,
		XAxis: gochart.XAxis{
			Name:  opts.XLabel,
			Range: &gochart.ContinuousRange{Min: opts.X.Domain[0], Max: opts.X.Domain[1]},
		},
		YAxis: gochart.YAxis{
			Name:  opts.YLabel,
			Range: &gochart.ContinuousRange{Min: opts.Y.Domain[0], Max: opts.Y.Domain[1]},
		},
	}
	for _, s := range series {
		if len(s.X) == 0 {
			continue
		}
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			Name:    s.Style.Category,
			XValues: s.X,
			YValues: s.Y,
			Style:   pointStyle(s.Style.Color),
		})
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}
