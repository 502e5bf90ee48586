package app

import (
	"carviz/domain/core"
	"carviz/domain/vehicle"
	"carviz/internal/dataset"
)

// Page is the whole view tree for one selection state. Exactly one of
// Failure or Scatterplot is set.
type Page struct {
	Failure     *FailureView
	Scatterplot *ScatterplotView
	Details     *DetailsView
	StarPlot    *StarPlotView
	Summary     *dataset.Summary
}

// FailureView is the visible load failure.
type FailureView struct {
	Code    string
	Message string
	Source  string
}

// ScatterplotView is the drawn horsepower vs. city MPG plot.
type ScatterplotView struct {
	Width   float64
	Height  float64
	XAxis   AxisView
	YAxis   AxisView
	XLabel  LabelView
	YLabel  LabelView
	Marks   []MarkView
	Legend  LegendView
	Empty   bool
	Records int
}

// AxisView is one axis: its baseline plus labelled ticks.
type AxisView struct {
	Transform string
	Domain    string
	Ticks     []TickView
	Left      bool
}

// TickView is a tick position along its axis and its label.
type TickView struct {
	Offset float64
	Label  string
}

// LabelView is a static axis caption.
type LabelView struct {
	X         float64
	Y         float64
	Transform string
	Text      string
}

// MarkView is one record's glyph.
type MarkView struct {
	ID          core.RecordID
	Name        string
	Category    string
	X           float64
	Y           float64
	Path        string
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Highlighted bool
}

// LegendView lists every category with its swatch.
type LegendView struct {
	X     float64
	Y     float64
	Items []LegendItem
}

// LegendItem is one legend row.
type LegendItem struct {
	Y      float64
	Path   string
	Fill   string
	Stroke string
	Label  string
}

// DetailsView is the record table.
type DetailsView struct {
	ID     core.RecordID
	Name   string
	Fields []vehicle.Field
}

// StarPlotView is the radial chart of one record.
type StarPlotView struct {
	Width       float64
	Height      float64
	CenterX     float64
	CenterY     float64
	Radius      float64
	Axes        []StarAxisView
	Vertices    []StarVertex
	Path        string
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
}

// StarAxisView is one spoke and its label.
type StarAxisView struct {
	X2     float64
	Y2     float64
	LabelX float64
	LabelY float64
	Label  string
	Stroke string
}

// StarVertex is the polygon corner on one spoke.
type StarVertex struct {
	Attribute  string
	Value      float64
	Normalized float64
	X          float64
	Y          float64
}
