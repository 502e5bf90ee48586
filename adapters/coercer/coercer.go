package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixedInt    = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// TypeCoercer converts raw cell text into record field values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NormalizeStrings bool `json:"normalize_strings"` // NFKC-normalize text cells
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NormalizeStrings: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Number coerces a cell with the loose numeric rules browsers apply to
// unary plus: surrounding whitespace is ignored, a blank cell is 0,
// "Infinity" is accepted, and anything else that is not a plain decimal,
// exponent or 0x/0o/0b literal becomes NaN. NaN is a value, not an error.
func (c *TypeCoercer) Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if decimalPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Out-of-range exponents still carry the overflowed value.
			if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
				return v
			}
			return math.NaN()
		}
		return v
	}

	if prefixedInt.MatchString(s) {
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(v)
	}

	return math.NaN()
}

// Missing is the value of a numeric column that is absent from the source.
func (c *TypeCoercer) Missing() float64 {
	return math.NaN()
}

// Text returns a text cell as-is apart from Unicode normalization. It does
// not trim: an all-space type is a distinct, non-empty category.
func (c *TypeCoercer) Text(raw string) string {
	if c.config.NormalizeStrings {
		return norm.NFKC.String(raw)
	}
	return raw
}
