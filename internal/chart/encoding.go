package chart

// Set2 is the categorical palette marks are colored with.
var Set2 = []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"}

// Style is the visual encoding of one category.
type Style struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Shape    Shape  `json:"shape"`
}

// Encoding maps each category to its color and shape. It is built once
// from the category set and never changes afterwards.
//
// Categories are assigned by index with repeat-with-modulo: the i-th
// category gets palette[i % len(palette)] and shapes[i % len(shapes)]. With
// more categories than the palette (8) or the shape repertoire (6), colors
// and shapes repeat; the pair repeats only after lcm(8, 6) = 24 categories.
type Encoding struct {
	styles []Style
	index  map[string]int
}

// NewEncoding builds the encoding for the categories in order. Empty and
// duplicate categories are ignored.
func NewEncoding(categories []string, palette []string, shapes []Shape) *Encoding {
	if len(palette) == 0 {
		palette = Set2
	}
	if len(shapes) == 0 {
		shapes = Shapes
	}
	e := &Encoding{index: make(map[string]int, len(categories))}
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := e.index[c]; ok {
			continue
		}
		i := len(e.styles)
		e.index[c] = i
		e.styles = append(e.styles, Style{
			Category: c,
			Color:    palette[i%len(palette)],
			Shape:    shapes[i%len(shapes)],
		})
	}
	return e
}

// Style returns the encoding of a category. Unknown categories get the
// zero Style and false.
func (e *Encoding) Style(category string) (Style, bool) {
	i, ok := e.index[category]
	if !ok {
		return Style{}, false
	}
	return e.styles[i], true
}

// Styles lists the encodings in category order, for the legend.
func (e *Encoding) Styles() []Style {
	return append([]Style(nil), e.styles...)
}
