package chart

import (
	"math"
	"strconv"
	"strings"
)

// Shape is a mark glyph. Sizes passed to Path are areas in square pixels.
type Shape string

const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeDiamond  Shape = "diamond"
	ShapeCross    Shape = "cross"
	ShapeStar     Shape = "star"
)

// Shapes is the glyph repertoire in assignment order.
var Shapes = []Shape{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeDiamond, ShapeCross, ShapeStar}

var (
	sqrt3  = math.Sqrt(3)
	tan30  = math.Sqrt(1.0 / 3)
	starKA = 0.89081309152928522810
	starKR = math.Sin(math.Pi/10) / math.Sin(7*math.Pi/10)
	starKX = math.Sin(2*math.Pi/10) * starKR
	starKY = -math.Cos(2*math.Pi/10) * starKR
)

// pathBuilder writes SVG path data with compact numbers.
type pathBuilder struct {
	sb strings.Builder
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.sb.WriteString("M")
	p.point(x, y)
}

func (p *pathBuilder) lineTo(x, y float64) {
	p.sb.WriteString("L")
	p.point(x, y)
}

func (p *pathBuilder) arc(r, x, y float64) {
	p.sb.WriteString("A")
	p.sb.WriteString(num(r))
	p.sb.WriteString(",")
	p.sb.WriteString(num(r))
	p.sb.WriteString(",0,1,1,")
	p.point(x, y)
}

func (p *pathBuilder) close() {
	p.sb.WriteString("Z")
}

func (p *pathBuilder) point(x, y float64) {
	p.sb.WriteString(num(x))
	p.sb.WriteString(",")
	p.sb.WriteString(num(y))
}

func (p *pathBuilder) String() string {
	return p.sb.String()
}

// num prints a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Path returns SVG path data for the shape centered on the origin with the
// given area.
func (s Shape) Path(size float64) string {
	var p pathBuilder
	switch s {
	case ShapeSquare:
		w := math.Sqrt(size)
		x := -w / 2
		p.moveTo(x, x)
		p.lineTo(x+w, x)
		p.lineTo(x+w, x+w)
		p.lineTo(x, x+w)
		p.close()
	case ShapeTriangle:
		y := -math.Sqrt(size / (sqrt3 * 3))
		p.moveTo(0, y*2)
		p.lineTo(-sqrt3*y, -y)
		p.lineTo(sqrt3*y, -y)
		p.close()
	case ShapeDiamond:
		y := math.Sqrt(size / (tan30 * 2))
		x := y * tan30
		p.moveTo(0, -y)
		p.lineTo(x, 0)
		p.lineTo(0, y)
		p.lineTo(-x, 0)
		p.close()
	case ShapeCross:
		r := math.Sqrt(size/5) / 2
		p.moveTo(-3*r, -r)
		p.lineTo(-r, -r)
		p.lineTo(-r, -3*r)
		p.lineTo(r, -3*r)
		p.lineTo(r, -r)
		p.lineTo(3*r, -r)
		p.lineTo(3*r, r)
		p.lineTo(r, r)
		p.lineTo(r, 3*r)
		p.lineTo(-r, 3*r)
		p.lineTo(-r, r)
		p.lineTo(-3*r, r)
		p.close()
	case ShapeStar:
		r := math.Sqrt(size * starKA)
		x := starKX * r
		y := starKY * r
		p.moveTo(0, -r)
		p.lineTo(x, y)
		for i := 1; i < 5; i++ {
			a := 2 * math.Pi * float64(i) / 5
			c, sn := math.Cos(a), math.Sin(a)
			p.lineTo(sn*r, -c*r)
			p.lineTo(c*x-sn*y, sn*x+c*y)
		}
		p.close()
	default:
		r := math.Sqrt(size / math.Pi)
		p.moveTo(r, 0)
		p.arc(r, -r, 0)
		p.arc(r, r, 0)
		p.close()
	}
	return p.String()
}

// Polygon returns closed path data through the points in order.
func Polygon(points [][2]float64) string {
	if len(points) == 0 {
		return ""
	}
	var p pathBuilder
	p.moveTo(points[0][0], points[0][1])
	for _, pt := range points[1:] {
		p.lineTo(pt[0], pt[1])
	}
	p.close()
	return p.String()
}

// Num formats a coordinate for SVG output.
func Num(v float64) string {
	return num(v)
}
