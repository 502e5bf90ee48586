// Package chart holds the scale, tick, symbol and category-encoding
// primitives the SVG views are drawn with.
package chart

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTickCount is the number of ticks axes ask for.
const DefaultTickCount = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps a domain value into the range. A degenerate domain maps
// everything to the middle of the range.
func (s Linear) Apply(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d1 == d0 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Nice extends the domain outward to round values that line up with count
// ticks. The domain is left as is when no stable step exists.
func (s Linear) Nice(count int) Linear {
	start, stop := s.Domain[0], s.Domain[1]
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for maxIter := 10; maxIter > 0; maxIter-- {
		step := TickIncrement(start, stop, float64(count))
		if step == prestep {
			if reversed {
				start, stop = stop, start
			}
			s.Domain = [2]float64{start, stop}
			return s
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prestep = step
	}
	return s
}

// Ticks returns round tick values inside the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], float64(count))
}

// tickSpec returns the integer tick bounds and increment for [start, stop].
// A negative increment means the step is 1/-inc.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// TickIncrement is the signed tick step for [start, stop]; zero or NaN when
// no step exists.
func TickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

// Ticks returns about count round values spanning [start, stop].
func Ticks(start, stop, count float64) []float64 {
	if !(count > 0) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reversed {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

var tickPrinter = message.NewPrinter(language.English)

// FormatTick labels a tick with the precision implied by the step and
// thousands grouping, e.g. "1,000" or "2.5".
func FormatTick(v, step float64) string {
	precision := 0
	if step != 0 && !math.IsNaN(step) {
		if p := -int(math.Floor(math.Log10(math.Abs(step)))); p > 0 {
			precision = p
		}
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return tickPrinter.Sprintf(fmt.Sprintf("%%.%df", precision), v)
}
