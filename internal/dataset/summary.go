package dataset

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes one load: row counts, per-category counts and the
// distribution of the two plotted dimensions.
type Summary struct {
	Source         string           `json:"source"`
	TotalRows      int              `json:"total_rows"`
	ValidRows      int              `json:"valid_rows"`
	DroppedRows    int              `json:"dropped_rows"`
	CategoryCounts []CategoryCount  `json:"categories"`
	Horsepower     DimensionSummary `json:"horsepower"`
	CityMPG        DimensionSummary `json:"city_mpg"`
	Relationship   Relationship     `json:"relationship"`
}

// Relationship is the Pearson correlation between horsepower and city MPG
// with its two-sided p-value. Both are zero below three records or when a
// dimension is constant.
type Relationship struct {
	Pearson float64 `json:"pearson"`
	PValue  float64 `json:"p_value"`
}

// CategoryCount is the number of records of one type.
type CategoryCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DimensionSummary holds descriptive statistics for a plotted dimension.
type DimensionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes the summary. Statistics of an empty dataset are zero.
func Summarize(ds *Dataset) Summary {
	counts := make(map[string]int, len(ds.Categories))
	horsepower := make(stats.Float64Data, 0, ds.Len())
	cityMPG := make(stats.Float64Data, 0, ds.Len())
	for _, r := range ds.Records {
		counts[r.Type]++
		horsepower = append(horsepower, r.Horsepower)
		cityMPG = append(cityMPG, r.CityMPG)
	}

	categoryCounts := make([]CategoryCount, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		categoryCounts = append(categoryCounts, CategoryCount{Type: c, Count: counts[c]})
	}

	return Summary{
		Source:         ds.Source,
		TotalRows:      ds.TotalRows,
		ValidRows:      ds.Len(),
		DroppedRows:    ds.Dropped(),
		CategoryCounts: categoryCounts,
		Horsepower:     describe(horsepower),
		CityMPG:        describe(cityMPG),
		Relationship:   correlate(horsepower, cityMPG),
	}
}

func correlate(x, y []float64) Relationship {
	n := float64(len(x))
	if len(x) < 3 || len(x) != len(y) {
		return Relationship{}
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Relationship{}
	}
	if math.Abs(r) >= 1 {
		return Relationship{Pearson: r}
	}
	t := r * math.Sqrt((n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
	return Relationship{Pearson: r, PValue: 2 * dist.Survival(math.Abs(t))}
}

func describe(data stats.Float64Data) DimensionSummary {
	if data.Len() == 0 {
		return DimensionSummary{}
	}
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	var stdDev float64
	if data.Len() > 1 {
		stdDev, _ = stats.StandardDeviationSample(data)
	}
	return DimensionSummary{Mean: mean, Median: median, Min: min, Max: max, StdDev: stdDev}
}
