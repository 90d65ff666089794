// Package faction holds the in-memory faction directory: the data model,
// the store with its filter engine, and the JSON import/export codec.
//
// There is no durable storage. The store starts empty on every launch and
// an import replaces it wholesale; everything else mutates it through the
// editor one committed faction at a time.
package faction

import "github.com/google/uuid"

const (
	// DefaultColor is assigned to markers created by clicking the map.
	DefaultColor = "#a855f7"

	// FallbackCategory is used when a record carries no category id.
	FallbackCategory = "other"

	// AllCategories is the reserved category id meaning "no filter".
	AllCategories = "all"
)

// Category is one entry of the category registry. The registry is fixed at
// startup and only replaced as a whole by an import.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Marker is one plotted point belonging to a faction. X and Y are map plane
// coordinates, not screen pixels.
type Marker struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// Faction is a named point-of-interest group. A saved faction always has at
// least one marker; only an editor draft may transiently have none.
type Faction struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	URL      string   `json:"url"`
	Img      string   `json:"img"`
	Desc     string   `json:"desc"`
	Markers  []Marker `json:"markers"`
}

// Clone returns a deep copy suitable for draft editing. Mutating the copy,
// including its markers, never touches the original.
func (f Faction) Clone() Faction {
	c := f
	c.Markers = make([]Marker, len(f.Markers))
	copy(c.Markers, f.Markers)
	return c
}

// NewID returns a fresh faction or marker id.
func NewID() string {
	return uuid.NewString()
}

// DefaultCategories returns the built-in registry. The display names are the
// deployment's UI copy and stay untranslated.
func DefaultCategories() []Category {
	return []Category{
		{ID: "all", Name: "Vše"},
		{ID: "izs", Name: "IZS"},
		{ID: "dilny", Name: "Dílny"},
		{ID: "restaurace", Name: "Restaurace"},
		{ID: "bary", Name: "Bary"},
		{ID: "kluby", Name: "Kluby"},
		{ID: "fastfoody", Name: "FastFoody"},
		{ID: "kavarny", Name: "Kavárny"},
		{ID: "other", Name: "Ostatní"},
	}
}
