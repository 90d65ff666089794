package faction

// record is the loose on-disk shape of one faction. Current exports carry a
// markers array; files from the single-point era carry x/y coordinates and a
// named marker style instead.
type record struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	URL      string   `json:"url"`
	Img      string   `json:"img"`
	Desc     string   `json:"desc"`
	Markers  []Marker `json:"markers"`

	// Legacy single-point fields.
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	MarkerStyle string   `json:"markerStyle"`
}

// legacyStyleColors maps the old named marker styles to concrete colors.
// The table is frozen: old exports must keep loading with the exact colors
// they were drawn with.
var legacyStyleColors = map[string]string{
	"default": "rgba(255,255,255,0.85)",
	"purple":  "#a855f7",
	"cyan":    "#22d3ee",
	"green":   "#34d399",
	"red":     "#fb7185",
}

// normalize upgrades one imported record to the current shape. Records that
// already carry a markers array (even an empty one) pass through unchanged
// so current exports round-trip exactly; legacy records get a generated id
// where missing and a single marker built from their point and style.
func normalize(r record) Faction {
	if r.Markers != nil {
		return Faction{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category,
			URL:      r.URL,
			Img:      r.Img,
			Desc:     r.Desc,
			Markers:  r.Markers,
		}
	}

	style := r.MarkerStyle
	if style == "" {
		style = "purple"
	}
	color, ok := legacyStyleColors[style]
	if !ok {
		color = DefaultColor
	}

	f := Faction{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		URL:      r.URL,
		Img:      r.Img,
		Desc:     r.Desc,
	}
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.Name == "" {
		f.Name = "Frakce"
	}
	if f.Category == "" {
		f.Category = FallbackCategory
	}

	var x, y float64
	if r.X != nil {
		x = *r.X
	}
	if r.Y != nil {
		y = *r.Y
	}
	f.Markers = []Marker{{ID: NewID(), X: x, Y: y, Color: color}}
	return f
}
