package chart

import (
	"fmt"
	"os"
	"regexp"

	"carviz/internal/errors"

	"gopkg.in/yaml.v3"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme holds the colors the views are drawn with.
type Theme struct {
	Palette        []string `yaml:"palette"`
	MarkStroke     string   `yaml:"mark_stroke"`
	HighlightColor string   `yaml:"highlight_color"`
	StarFill       string   `yaml:"star_fill"`
	StarStroke     string   `yaml:"star_stroke"`
	AxisColor      string   `yaml:"axis_color"`
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Palette:        append([]string(nil), Set2...),
		MarkStroke:     "white",
		HighlightColor: "#000",
		StarFill:       "orange",
		StarStroke:     "#e67e22",
		AxisColor:      "#ccc",
	}
}

// LoadTheme reads a YAML theme file; keys it omits keep their defaults.
// An empty path returns the default theme.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return theme, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read theme %s", path)
	}

	var override Theme
	if err := yaml.Unmarshal(data, &override); err != nil {
		return theme, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to parse theme %s", path)
	}

	if len(override.Palette) > 0 {
		for _, c := range override.Palette {
			if !hexColor.MatchString(c) {
				return theme, errors.ConfigInvalid(fmt.Sprintf("theme palette color %q is not a hex color", c))
			}
		}
		theme.Palette = override.Palette
	}
	setIfPresent(&theme.MarkStroke, override.MarkStroke)
	setIfPresent(&theme.HighlightColor, override.HighlightColor)
	setIfPresent(&theme.StarFill, override.StarFill)
	setIfPresent(&theme.StarStroke, override.StarStroke)
	setIfPresent(&theme.AxisColor, override.AxisColor)
	return theme, nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
