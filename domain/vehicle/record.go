// Package vehicle holds the typed automobile record shown by the views.
package vehicle

import (
	"math"
	"strconv"
	"strings"
)

// Validity bounds for the plotted dimensions.
const (
	MaxHorsepower = 600.0
	MaxCityMPG    = 100.0
)

// Record is one normalized vehicle entry. Numeric fields keep NaN when the
// source value did not coerce.
type Record struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	AWD         float64 `json:"awd"`
	RWD         float64 `json:"rwd"`
	RetailPrice float64 `json:"retail_price"`
	DealerCost  float64 `json:"dealer_cost"`
	EngineSize  float64 `json:"engine_size"`
	Cylinders   float64 `json:"cylinders"`
	Horsepower  float64 `json:"horsepower"`
	CityMPG     float64 `json:"city_mpg"`
	HighwayMPG  float64 `json:"highway_mpg"`
	Weight      float64 `json:"weight"`
	WheelBase   float64 `json:"wheel_base"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
}

// Valid reports whether the record can be plotted: finite horsepower below
// 600, finite city MPG strictly inside (0, 100), and a non-empty type.
func (r Record) Valid() bool {
	if !isFinite(r.Horsepower) || !isFinite(r.CityMPG) {
		return false
	}
	return r.CityMPG > 0 &&
		r.CityMPG < MaxCityMPG &&
		r.Horsepower < MaxHorsepower &&
		r.Type != ""
}

// Field is one display row of a record.
type Field struct {
	Key   string
	Value string
}

// Fields lists every attribute in natural field order with its literal value.
func (r Record) Fields() []Field {
	return []Field{
		{"Name", r.Name},
		{"Type", r.Type},
		{"AWD", FormatNumber(r.AWD)},
		{"RWD", FormatNumber(r.RWD)},
		{"Retail Price", FormatNumber(r.RetailPrice)},
		{"Dealer Cost", FormatNumber(r.DealerCost)},
		{"Engine Size", FormatNumber(r.EngineSize)},
		{"Cylinder", FormatNumber(r.Cylinders)},
		{"Horsepower", FormatNumber(r.Horsepower)},
		{"City MPG", FormatNumber(r.CityMPG)},
		{"Highway MPG", FormatNumber(r.HighwayMPG)},
		{"Weight", FormatNumber(r.Weight)},
		{"Wheel Base", FormatNumber(r.WheelBase)},
		{"Length", FormatNumber(r.Length)},
		{"Width", FormatNumber(r.Width)},
	}
}

// FormatNumber renders v the way a browser prints a number: shortest
// round-trip digits, NaN and Infinity spelled out.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'g', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
