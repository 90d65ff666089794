package ui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/kamenice-rp/factionmap/internal/faction"
)

// parseCSSColor understands the color forms that actually occur in faction
// data: #rgb, #rrggbb and the rgba(r,g,b,a) literal the legacy "default"
// style used. Anything else renders as the default marker color.
func parseCSSColor(s string) color.RGBA {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "#") {
		if c, ok := parseHexColor(s[1:]); ok {
			return c
		}
		return defaultMarkerColor()
	}

	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		if c, ok := parseRGBAColor(s[5 : len(s)-1]); ok {
			return c
		}
	}
	return defaultMarkerColor()
}

func parseHexColor(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.RGBA{r * 17, g * 17, b * 17, 0xff}, true
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, true
	}
	return color.RGBA{}, false
}

func parseRGBAColor(body string) (color.RGBA, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return color.RGBA{}, false
	}
	return color.RGBA{ch[0], ch[1], ch[2], uint8(a*255 + 0.5)}, true
}

func defaultMarkerColor() color.RGBA {
	c, _ := parseHexColor(faction.DefaultColor[1:])
	return c
}

// markerPalette is the set of swatches offered by the per-marker color
// editor. The first five are the legacy style colors.
func markerPalette() []string {
	return []string{
		"#a855f7",
		"#22d3ee",
		"#34d399",
		"#fb7185",
		"rgba(255,255,255,0.85)",
		"#f59e0b",
		"#60a5fa",
	}
}
