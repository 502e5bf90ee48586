package app

import (
	"fmt"
	"io"
	"math"

	"carviz/domain/core"
	"carviz/domain/vehicle"
	"carviz/internal/chart"
	"carviz/internal/dataset"
	"carviz/internal/errors"

	"gonum.org/v1/gonum/floats"
)

// Scatterplot geometry.
const (
	PlotWidth      = 650.0
	PlotHeight     = 450.0
	PlotMargin     = 50.0
	MarkSize       = 80.0
	MarkOpacity    = 0.9
	MarkStroke     = 0.8
	HighlightWidth = 2.0
	LegendSize     = 100.0
	LegendSpacing  = 25.0
	LegendInset    = 150.0
	tickSize       = 6.0
)

// Star plot geometry.
const (
	StarWidth       = 280.0
	StarHeight      = 280.0
	StarRadius      = 90.0
	StarLabelOffset = 15.0
	StarFillOpacity = 0.6
	StarStrokeWidth = 2.0
)

// ViewService holds everything derived once from a load: the dataset, the
// scales, the category encoding and the unselected marks. It is immutable
// and shared by every viewer.
type ViewService struct {
	dataset  *dataset.Dataset
	loadErr  error
	source   string
	theme    chart.Theme
	encoding *chart.Encoding
	x        chart.Linear
	y        chart.Linear
	summary  dataset.Summary
	base     ScatterplotView
}

// NewViewService builds the views for a dataset, or a failure-only service
// when the load failed.
func NewViewService(ds *dataset.Dataset, loadErr error, source string, theme chart.Theme) *ViewService {
	s := &ViewService{dataset: ds, loadErr: loadErr, source: source, theme: theme}
	if loadErr != nil || ds == nil {
		if s.loadErr == nil {
			s.loadErr = errors.InternalError("no dataset loaded")
		}
		return s
	}

	s.encoding = chart.NewEncoding(ds.Categories, theme.Palette, chart.Shapes)
	s.x = chart.NewLinear(0, maxOf(ds, func(r vehicle.Record) float64 { return r.Horsepower }),
		PlotMargin, PlotWidth-PlotMargin).Nice(chart.DefaultTickCount)
	s.y = chart.NewLinear(0, maxOf(ds, func(r vehicle.Record) float64 { return r.CityMPG }),
		PlotHeight-PlotMargin, PlotMargin).Nice(chart.DefaultTickCount)
	s.summary = dataset.Summarize(ds)
	s.base = s.buildScatterplot()
	return s
}

// Failed returns the load error, if any.
func (s *ViewService) Failed() error {
	return s.loadErr
}

// Dataset returns the loaded dataset; nil after a failed load.
func (s *ViewService) Dataset() *dataset.Dataset {
	return s.dataset
}

// Encoding returns the category encoding; nil after a failed load.
func (s *ViewService) Encoding() *chart.Encoding {
	return s.encoding
}

// Scales returns the x and y position scales.
func (s *ViewService) Scales() (chart.Linear, chart.Linear) {
	return s.x, s.y
}

// Summary returns the load summary.
func (s *ViewService) Summary() dataset.Summary {
	return s.summary
}

// Record looks up a record by id.
func (s *ViewService) Record(id core.RecordID) (vehicle.Record, error) {
	if s.loadErr != nil {
		return vehicle.Record{}, s.loadErr
	}
	rec, ok := s.dataset.Record(id)
	if !ok {
		return vehicle.Record{}, errors.NotFound(fmt.Sprintf("record %s", id))
	}
	return rec, nil
}

// Render builds the full view tree for a selection state.
func (s *ViewService) Render(state State) Page {
	if s.loadErr != nil {
		return Page{Failure: s.failure()}
	}

	summary := s.summary
	page := Page{
		Scatterplot: s.RenderScatterplot(state),
		Summary:     &summary,
	}
	if state.Selected != nil {
		if rec, ok := s.dataset.Record(*state.Selected); ok {
			page.Details = s.RenderDetails(*state.Selected, rec)
			page.StarPlot = s.RenderStarPlot(rec)
		}
	}
	return page
}

func (s *ViewService) failure() *FailureView {
	return &FailureView{
		Code:    errors.GetCode(s.loadErr),
		Message: s.loadErr.Error(),
		Source:  s.source,
	}
}

// RenderScatterplot returns the scatterplot with every mark in its default
// outline except the selected one.
func (s *ViewService) RenderScatterplot(state State) *ScatterplotView {
	view := s.base
	view.Marks = make([]MarkView, len(s.base.Marks))
	copy(view.Marks, s.base.Marks)
	if state.Selected != nil {
		i := int(*state.Selected)
		if i >= 0 && i < len(view.Marks) {
			view.Marks[i].Stroke = s.theme.HighlightColor
			view.Marks[i].StrokeWidth = HighlightWidth
			view.Marks[i].Highlighted = true
		}
	}
	return &view
}

// RenderDetails returns the record table, replacing any previous one.
func (s *ViewService) RenderDetails(id core.RecordID, rec vehicle.Record) *DetailsView {
	return &DetailsView{ID: id, Name: rec.Name, Fields: rec.Fields()}
}

// RenderStarPlot returns the radial chart for a record. Normalized values
// above 1 put their vertex outside the axis circle; non-finite values sit
// on the center.
func (s *ViewService) RenderStarPlot(rec vehicle.Record) *StarPlotView {
	n := len(vehicle.StarAttributes)
	view := &StarPlotView{
		Width:       StarWidth,
		Height:      StarHeight,
		CenterX:     StarWidth / 2,
		CenterY:     StarHeight / 2,
		Radius:      StarRadius,
		Fill:        s.theme.StarFill,
		FillOpacity: StarFillOpacity,
		Stroke:      s.theme.StarStroke,
		StrokeWidth: StarStrokeWidth,
	}

	points := make([][2]float64, 0, n)
	for i, attr := range vehicle.StarAttributes {
		angle := float64(i) * 2 * math.Pi / float64(n)
		sin, cos := math.Sin(angle), math.Cos(angle)

		view.Axes = append(view.Axes, StarAxisView{
			X2:     StarRadius * sin,
			Y2:     -StarRadius * cos,
			LabelX: (StarRadius + StarLabelOffset) * sin,
			LabelY: -(StarRadius + StarLabelOffset) * cos,
			Label:  attr.Label,
			Stroke: s.theme.AxisColor,
		})

		normalized := attr.Normalized(rec)
		r := 0.0
		if !math.IsNaN(normalized) && !math.IsInf(normalized, 0) {
			r = StarRadius * normalized
		}
		vx, vy := r*sin, -r*cos
		view.Vertices = append(view.Vertices, StarVertex{
			Attribute:  attr.Label,
			Value:      attr.Value(rec),
			Normalized: normalized,
			X:          vx,
			Y:          vy,
		})
		points = append(points, [2]float64{vx, vy})
	}
	view.Path = chart.Polygon(points)
	return view
}

func (s *ViewService) buildScatterplot() ScatterplotView {
	view := ScatterplotView{
		Width:   PlotWidth,
		Height:  PlotHeight,
		XAxis:   s.bottomAxis(),
		YAxis:   s.leftAxis(),
		XLabel:  LabelView{X: PlotWidth / 2, Y: PlotHeight - 10, Text: "Horsepower"},
		YLabel:  LabelView{X: -PlotHeight / 2, Y: 15, Transform: "rotate(-90)", Text: "Miles per Gallon"},
		Empty:   s.dataset.Len() == 0,
		Records: s.dataset.Len(),
	}

	view.Marks = make([]MarkView, 0, s.dataset.Len())
	for i, rec := range s.dataset.Records {
		style, _ := s.encoding.Style(rec.Type)
		view.Marks = append(view.Marks, MarkView{
			ID:          core.RecordID(i),
			Name:        rec.Name,
			Category:    rec.Type,
			X:           s.x.Apply(rec.Horsepower),
			Y:           s.y.Apply(rec.CityMPG),
			Path:        style.Shape.Path(MarkSize),
			Fill:        style.Color,
			Stroke:      s.theme.MarkStroke,
			StrokeWidth: MarkStroke,
			Opacity:     MarkOpacity,
		})
	}

	view.Legend = LegendView{X: PlotWidth - LegendInset, Y: PlotMargin}
	for i, style := range s.encoding.Styles() {
		view.Legend.Items = append(view.Legend.Items, LegendItem{
			Y:      float64(i) * LegendSpacing,
			Path:   style.Shape.Path(LegendSize),
			Fill:   style.Color,
			Stroke: s.theme.MarkStroke,
			Label:  style.Category,
		})
	}
	return view
}

func (s *ViewService) bottomAxis() AxisView {
	r0, r1 := s.x.Range[0], s.x.Range[1]
	return AxisView{
		Transform: fmt.Sprintf("translate(0,%s)", chart.Num(PlotHeight-PlotMargin)),
		Domain:    fmt.Sprintf("M%s,%sV0H%sV%s", chart.Num(r0), chart.Num(tickSize), chart.Num(r1), chart.Num(tickSize)),
		Ticks:     ticksFor(s.x),
	}
}

func (s *ViewService) leftAxis() AxisView {
	r0, r1 := s.y.Range[0], s.y.Range[1]
	return AxisView{
		Transform: fmt.Sprintf("translate(%s,0)", chart.Num(PlotMargin)),
		Domain:    fmt.Sprintf("M%s,%sH0V%sH%s", chart.Num(-tickSize), chart.Num(r0), chart.Num(r1), chart.Num(-tickSize)),
		Ticks:     ticksFor(s.y),
		Left:      true,
	}
}

func ticksFor(scale chart.Linear) []TickView {
	values := scale.Ticks(chart.DefaultTickCount)
	step := 1.0
	if len(values) > 1 {
		step = values[1] - values[0]
	}
	ticks := make([]TickView, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, TickView{Offset: scale.Apply(v), Label: chart.FormatTick(v, step)})
	}
	return ticks
}

// WritePNG writes the static scatterplot export.
func (s *ViewService) WritePNG(w io.Writer) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	styles := s.encoding.Styles()
	series := make([]chart.Series, len(styles))
	index := make(map[string]int, len(styles))
	for i, style := range styles {
		series[i].Style = style
		index[style.Category] = i
	}
	for _, rec := range s.dataset.Records {
		i := index[rec.Type]
		series[i].X = append(series[i].X, rec.Horsepower)
		series[i].Y = append(series[i].Y, rec.CityMPG)
	}
	return chart.RenderPNG(w, series, chart.PNGOptions{
		Width:  int(PlotWidth),
		Height: int(PlotHeight),
		XLabel: "Horsepower",
		YLabel: "Miles per Gallon",
		X:      s.x,
		Y:      s.y,
	})
}

// maxOf is the largest value of a field, or 0 for an empty dataset.
func maxOf(ds *dataset.Dataset, field func(vehicle.Record) float64) float64 {
	if ds.Len() == 0 {
		return 0
	}
	values := make([]float64, ds.Len())
	for i, r := range ds.Records {
		values[i] = field(r)
	}
	return floats.Max(values)
}
