package app

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"sync"
	"testing"

	"carviz/domain/core"
	"carviz/domain/vehicle"
	"carviz/internal/chart"
	"carviz/internal/dataset"
	"carviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []vehicle.Record {
	return []vehicle.Record{
		{Name: "A", Type: "Sedan", RetailPrice: 20000, EngineSize: 2, Cylinders: 4, Horsepower: 100, CityMPG: 20, HighwayMPG: 30},
		{Name: "B", Type: "SUV", RetailPrice: 45000, EngineSize: 4.2, Cylinders: 8, Horsepower: 265, CityMPG: 17, HighwayMPG: 22},
		{Name: "C", Type: "Sports Car", RetailPrice: 150000, EngineSize: 6, Cylinders: 12, Horsepower: 500, CityMPG: 30, HighwayMPG: 35},
	}
}

func newTestService(t *testing.T) *ViewService {
	t.Helper()
	ds := dataset.New("test.csv", testRecords(), 3)
	return NewViewService(ds, nil, "test.csv", chart.DefaultTheme())
}

func highlighted(page Page) []core.RecordID {
	var ids []core.RecordID
	for _, m := range page.Scatterplot.Marks {
		if m.Highlighted {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func TestRenderInitialState(t *testing.T) {
	svc := newTestService(t)
	page := svc.Render(State{})

	require.Nil(t, page.Failure)
	require.NotNil(t, page.Scatterplot)
	assert.Nil(t, page.Details)
	assert.Nil(t, page.StarPlot)
	assert.Len(t, page.Scatterplot.Marks, 3)
	assert.Empty(t, highlighted(page))

	for _, m := range page.Scatterplot.Marks {
		assert.Equal(t, "white", m.Stroke)
		assert.Equal(t, MarkStroke, m.StrokeWidth)
		assert.Equal(t, MarkOpacity, m.Opacity)
	}
}

func TestScatterplotPositions(t *testing.T) {
	svc := newTestService(t)
	x, y := svc.Scales()
	assert.Equal(t, [2]float64{0, 500}, x.Domain)
	assert.Equal(t, [2]float64{0, 30}, y.Domain)

	marks := svc.Render(State{}).Scatterplot.Marks
	assert.InDelta(t, 600, marks[2].X, 1e-9)
	assert.InDelta(t, 50, marks[2].Y, 1e-9)
	assert.InDelta(t, 160, marks[0].X, 1e-9)
}

func TestMarksShareCategoryStyle(t *testing.T) {
	records := append(testRecords(), vehicle.Record{Name: "D", Type: "SUV", Horsepower: 200, CityMPG: 15})
	svc := NewViewService(dataset.New("test.csv", records, 4), nil, "test.csv", chart.DefaultTheme())
	marks := svc.Render(State{}).Scatterplot.Marks

	assert.Equal(t, marks[1].Fill, marks[3].Fill)
	assert.Equal(t, marks[1].Path, marks[3].Path)
	assert.NotEqual(t, marks[0].Fill, marks[1].Fill)
}

func TestLegendListsCategories(t *testing.T) {
	legend := newTestService(t).Render(State{}).Scatterplot.Legend

	assert.Equal(t, PlotWidth-LegendInset, legend.X)
	assert.Equal(t, PlotMargin, legend.Y)
	require.Len(t, legend.Items, 3)
	assert.Equal(t, "Sedan", legend.Items[0].Label)
	assert.Equal(t, "SUV", legend.Items[1].Label)
	assert.Equal(t, 50.0, legend.Items[2].Y)
}

func TestAxes(t *testing.T) {
	plot := newTestService(t).Render(State{}).Scatterplot

	assert.Equal(t, "translate(0,400)", plot.XAxis.Transform)
	assert.Equal(t, "translate(50,0)", plot.YAxis.Transform)
	assert.True(t, plot.YAxis.Left)
	require.NotEmpty(t, plot.XAxis.Ticks)
	assert.Equal(t, "0", plot.XAxis.Ticks[0].Label)
	assert.Equal(t, "500", plot.XAxis.Ticks[len(plot.XAxis.Ticks)-1].Label)
	assert.Equal(t, "Horsepower", plot.XLabel.Text)
	assert.Equal(t, "rotate(-90)", plot.YLabel.Transform)
}

func TestRenderSelectedRecord(t *testing.T) {
	svc := newTestService(t)
	id := core.RecordID(1)
	page := svc.Render(State{Selected: &id})

	assert.Equal(t, []core.RecordID{1}, highlighted(page))
	mark := page.Scatterplot.Marks[1]
	assert.Equal(t, "#000", mark.Stroke)
	assert.Equal(t, HighlightWidth, mark.StrokeWidth)

	require.NotNil(t, page.Details)
	assert.Equal(t, "B", page.Details.Name)
	require.Len(t, page.Details.Fields, 15)
	assert.Equal(t, "Name", page.Details.Fields[0].Key)

	require.NotNil(t, page.StarPlot)
	vertices := page.StarPlot.Vertices
	require.Len(t, vertices, 6)
	assert.Equal(t, "Horsepower", vertices[3].Attribute)
	assert.InDelta(t, 0.53, vertices[3].Normalized, 1e-9)
	assert.InDelta(t, 47.7, vertices[3].Y, 1e-9)
	assert.InDelta(t, 17.0/60, vertices[4].Normalized, 1e-9)
}

func TestStarPlotBeyondReference(t *testing.T) {
	svc := newTestService(t)
	id := core.RecordID(2)
	star := svc.Render(State{Selected: &id}).StarPlot

	price := star.Vertices[0]
	assert.Greater(t, price.Normalized, 1.0)
	assert.Less(t, price.Y, -StarRadius)
	assert.NotEmpty(t, star.Path)
}

func TestStarPlotNonFiniteAtCenter(t *testing.T) {
	rec := testRecords()[0]
	rec.RetailPrice = math.NaN()
	star := newTestService(t).RenderStarPlot(rec)

	assert.True(t, math.IsNaN(star.Vertices[0].Normalized))
	assert.Equal(t, 0.0, star.Vertices[0].X)
	assert.Equal(t, 0.0, star.Vertices[0].Y)
}

func TestStarPlotAxes(t *testing.T) {
	star := newTestService(t).RenderStarPlot(testRecords()[0])

	require.Len(t, star.Axes, 6)
	assert.InDelta(t, -StarRadius, star.Axes[0].Y2, 1e-9)
	assert.InDelta(t, -(StarRadius + StarLabelOffset), star.Axes[0].LabelY, 1e-9)
	assert.Equal(t, "#ccc", star.Axes[0].Stroke)
	assert.Equal(t, "orange", star.Fill)
	assert.Equal(t, StarFillOpacity, star.FillOpacity)
}

func TestFailureService(t *testing.T) {
	loadErr := errors.SourceUnavailable("http://example.invalid/cars.csv", fmt.Errorf("refused"))
	svc := NewViewService(nil, loadErr, "http://example.invalid/cars.csv", chart.DefaultTheme())
	page := svc.Render(State{})

	require.NotNil(t, page.Failure)
	assert.Nil(t, page.Scatterplot)
	assert.Equal(t, errors.CodeSourceUnavailable, page.Failure.Code)
	assert.Equal(t, "http://example.invalid/cars.csv", page.Failure.Source)

	_, err := svc.Record(0)
	assert.Error(t, err)
	assert.Error(t, svc.WritePNG(&bytes.Buffer{}))
}

func TestEmptyDataset(t *testing.T) {
	svc := NewViewService(dataset.New("empty.csv", nil, 4), nil, "empty.csv", chart.DefaultTheme())
	page := svc.Render(State{})

	require.NotNil(t, page.Scatterplot)
	assert.True(t, page.Scatterplot.Empty)
	assert.Empty(t, page.Scatterplot.Marks)
	assert.Empty(t, page.Scatterplot.Legend.Items)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestService(t).WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 650, img.Bounds().Dx())
}

func TestSelectMovesHighlight(t *testing.T) {
	c := NewViewController(newTestService(t))

	page, err := c.Select(0)
	require.NoError(t, err)
	assert.Equal(t, []core.RecordID{0}, highlighted(page))

	page, err = c.Select(2)
	require.NoError(t, err)
	assert.Equal(t, []core.RecordID{2}, highlighted(page))
	assert.Equal(t, "C", page.Details.Name)

	id, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, core.RecordID(2), id)
}

func TestReselectIsIdempotent(t *testing.T) {
	c := NewViewController(newTestService(t))

	first, err := c.Select(1)
	require.NoError(t, err)
	second, err := c.Select(1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectUnknownKeepsState(t *testing.T) {
	c := NewViewController(newTestService(t))
	_, err := c.Select(1)
	require.NoError(t, err)

	_, err = c.Select(99)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	id, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, core.RecordID(1), id)
}

func TestInitialControllerState(t *testing.T) {
	c := NewViewController(newTestService(t))
	_, ok := c.Selected()
	assert.False(t, ok)
	assert.Nil(t, c.Render().Details)
}

func TestConcurrentSelect(t *testing.T) {
	c := NewViewController(newTestService(t))
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(id core.RecordID) {
			defer wg.Done()
			_, _ = c.Select(id)
		}(core.RecordID(i % 3))
	}
	wg.Wait()

	assert.Len(t, highlighted(c.Render()), 1)
}
