package viz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var hslPattern = regexp.MustCompile(`^hsl\(\s*(-?[\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*\)$`)

// ParseColor accepts #rgb, #rrggbb and hsl(h, s%, l%) strings.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, errors.Wrapf(err, "viz: color %q", s)
		}
		return c, nil
	}
	m := hslPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return colorful.Color{}, errors.Errorf("viz: unsupported color %q", s)
	}
	h, _ := strconv.ParseFloat(m[1], 64)
	sat, _ := strconv.ParseFloat(m[2], 64)
	l, _ := strconv.ParseFloat(m[3], 64)
	return colorful.Hsl(h, sat/100, l/100).Clamped(), nil
}

// HexColor normalises any parseable color to #rrggbb, falling back when s
// cannot be parsed.
func HexColor(s, fallback string) string {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c.Hex()
}
