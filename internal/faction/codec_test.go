package faction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLegacyRecord(t *testing.T) {
	x, y := 5.0, 7.0
	f := normalize(record{X: &x, Y: &y, MarkerStyle: "cyan"})

	assert.NotEmpty(t, f.ID, "missing id gets generated")
	assert.Equal(t, "Frakce", f.Name)
	assert.Equal(t, FallbackCategory, f.Category)
	require.Len(t, f.Markers, 1)
	assert.Equal(t, 5.0, f.Markers[0].X)
	assert.Equal(t, 7.0, f.Markers[0].Y)
	assert.Equal(t, "#22d3ee", f.Markers[0].Color)
	assert.NotEmpty(t, f.Markers[0].ID)
}

func TestNormalizeLegacyStyleColors(t *testing.T) {
	cases := map[string]string{
		"":        "#a855f7", // no style means purple
		"purple":  "#a855f7",
		"default": "rgba(255,255,255,0.85)",
		"green":   "#34d399",
		"red":     "#fb7185",
		"neonove": "#a855f7", // unknown styles fall back
	}
	for style, want := range cases {
		f := normalize(record{MarkerStyle: style})
		require.Len(t, f.Markers, 1, "style %q", style)
		assert.Equal(t, want, f.Markers[0].Color, "style %q", style)
		assert.Zero(t, f.Markers[0].X, "missing coordinates default to 0")
		assert.Zero(t, f.Markers[0].Y)
	}
}

func TestNormalizeCurrentShapePassesThrough(t *testing.T) {
	r := record{
		ID:       "x",
		Name:     "Ponechaná",
		Category: "bary",
		URL:      "https://example.test",
		Img:      "https://example.test/a.png",
		Desc:     "popis",
		Markers:  []Marker{{ID: "m", X: 1, Y: 2, Color: "#fff"}},
	}
	f := normalize(r)

	assert.Equal(t, "x", f.ID)
	assert.Equal(t, "Ponechaná", f.Name)
	assert.Equal(t, r.Markers, f.Markers)

	// An empty-but-present markers array is already the current shape.
	f = normalize(record{ID: "y", Markers: []Marker{}})
	assert.Equal(t, "y", f.ID)
	assert.Empty(t, f.Markers)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := testStore()
	out, err := Export(s)
	require.NoError(t, err)

	dst := NewStore()
	require.NoError(t, Import(dst, out))

	assert.Equal(t, s.Factions, dst.Factions)
	assert.Equal(t, s.Categories, dst.Categories)
}

func TestExportEmptyStoreHasArrays(t *testing.T) {
	out, err := Export(&Store{})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.JSONEq(t, "[]", string(doc["factions"]))
	assert.JSONEq(t, "[]", string(doc["categories"]))
}

func TestImportLegacyFile(t *testing.T) {
	s := testStore()
	payload := `{"factions":[{"x":1,"y":2}],"categories":[]}`

	require.NoError(t, Import(s, []byte(payload)))
	require.Len(t, s.Factions, 1)
	f := s.Factions[0]
	require.Len(t, f.Markers, 1)
	assert.Equal(t, 1.0, f.Markers[0].X)
	assert.Equal(t, 2.0, f.Markers[0].Y)
	assert.Equal(t, DefaultColor, f.Markers[0].Color)
	assert.Equal(t, FallbackCategory, f.Category)

	// An empty categories array keeps the registry that was loaded.
	assert.Equal(t, DefaultCategories(), s.Categories)
}

func TestImportReplacesCategories(t *testing.T) {
	s := testStore()
	payload := `{"factions":[],"categories":[{"id":"all","name":"Vše"},{"id":"gangy","name":"Gangy"}]}`

	require.NoError(t, Import(s, []byte(payload)))
	assert.Empty(t, s.Factions)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "gangy", s.Categories[1].ID)
}

func TestImportMalformedLeavesStoreUntouched(t *testing.T) {
	s := testStore()
	before := append([]Faction(nil), s.Factions...)

	assert.Error(t, Import(s, []byte("{nevalidni json")))
	assert.Error(t, Import(s, []byte(`["pole","misto","objektu"]`)))
	assert.Equal(t, before, s.Factions)
	assert.Equal(t, DefaultCategories(), s.Categories)
}

func TestImportToleratesWrongTypedFields(t *testing.T) {
	s := testStore()

	require.NoError(t, Import(s, []byte(`{"factions":"nope","categories":42}`)))
	assert.Empty(t, s.Factions)
	assert.Equal(t, DefaultCategories(), s.Categories, "unusable categories keep the current registry")
}
