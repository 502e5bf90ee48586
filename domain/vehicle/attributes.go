package vehicle

// Attribute is one axis of the star plot.
type Attribute struct {
	Label        string
	ReferenceMax float64
	value        func(Record) float64
}

// Value reads the attribute from a record.
func (a Attribute) Value(r Record) float64 {
	return a.value(r)
}

// Normalized divides the raw value by the reference maximum. Values above the
// maximum stay above 1.
func (a Attribute) Normalized(r Record) float64 {
	return a.value(r) / a.ReferenceMax
}

// StarAttributes are the six star plot axes in drawing order, clockwise from
// the top.
var StarAttributes = []Attribute{
	{Label: "Retail Price", ReferenceMax: 130000, value: func(r Record) float64 { return r.RetailPrice }},
	{Label: "Engine Size", ReferenceMax: 8, value: func(r Record) float64 { return r.EngineSize }},
	{Label: "Cylinder", ReferenceMax: 12, value: func(r Record) float64 { return r.Cylinders }},
	{Label: "Horsepower", ReferenceMax: 500, value: func(r Record) float64 { return r.Horsepower }},
	{Label: "City MPG", ReferenceMax: 60, value: func(r Record) float64 { return r.CityMPG }},
	{Label: "Highway MPG", ReferenceMax: 70, value: func(r Record) float64 { return r.HighwayMPG }},
}
