package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamenice-rp/factionmap/internal/faction"
)

func newTestEditor() (*Editor, *faction.Store, *Layer) {
	s := testStore()
	filters := &Filters{Category: faction.AllCategories}
	l := NewLayer(s)
	l.RenderAll(filters.Category, filters.Term)
	return NewEditor(s, l, filters), s, l
}

func TestOpenAddAtSeedsFirstMarker(t *testing.T) {
	e, _, l := newTestEditor()

	e.OpenAddAt(12, 34)
	require.True(t, e.Opened())
	assert.Equal(t, modeAdd, e.Mode())
	require.Len(t, e.Draft().Markers, 1)
	mk := e.Draft().Markers[0]
	assert.Equal(t, 12.0, mk.X)
	assert.Equal(t, 34.0, mk.Y)
	assert.Equal(t, faction.DefaultColor, mk.Color)
	assert.Equal(t, "izs", e.Draft().Category, "defaults to the first non-all category")
	assert.True(t, l.Has(MarkerKey(e.Draft().ID, mk.ID)), "draft previews on the map immediately")
}

func TestOpenEditClonesAndStaleIDIsNoop(t *testing.T) {
	e, s, _ := newTestEditor()

	e.OpenEdit("a")
	require.True(t, e.Opened())
	assert.Equal(t, modeEdit, e.Mode())

	// Mutating the draft leaves the store alone until save.
	e.Draft().Name = "Přepsaná"
	stored, _ := s.Find("a")
	assert.Equal(t, "Růžový Panter", stored.Name)

	e.Close()
	e.OpenEdit("neexistuje")
	assert.False(t, e.Opened())
}

func TestMinimizeCombinesWithAddingMarker(t *testing.T) {
	e, _, _ := newTestEditor()
	e.OpenAdd()

	assert.False(t, e.Minimized())

	e.ToggleAddingMarker()
	assert.True(t, e.Minimized(), "adding markers forces minimization")

	// Un-minimizing while forced records the preference but changes nothing.
	e.ToggleMinimize()
	assert.True(t, e.Minimized())

	// Leaving adding mode restores the recorded preference.
	e.ToggleAddingMarker()
	assert.False(t, e.Minimized())

	e.ToggleMinimize()
	assert.True(t, e.Minimized())
	e.ToggleAddingMarker()
	e.ToggleAddingMarker()
	assert.True(t, e.Minimized(), "user preference survives an adding round trip")
}

func TestAppendMarkerAccumulates(t *testing.T) {
	e, _, l := newTestEditor()
	e.OpenAddAt(1, 1)
	e.ToggleAddingMarker()

	e.AppendMarker(2, 2)
	e.AppendMarker(3, 3)

	require.True(t, e.Opened(), "the modal stays open between clicks")
	require.Len(t, e.Draft().Markers, 3)
	for _, mk := range e.Draft().Markers {
		assert.True(t, l.Has(MarkerKey(e.Draft().ID, mk.ID)))
	}
}

func TestSaveValidation(t *testing.T) {
	e, s, _ := newTestEditor()
	before := len(s.Factions)

	e.OpenAddAt(5, 5)
	e.Draft().Name = "   "
	assert.ErrorIs(t, e.Save(), errNameRequired)
	assert.True(t, e.Opened(), "validation failure keeps the modal open")
	assert.Len(t, s.Factions, before)

	e.Draft().Name = "Platná"
	e.RemoveMarker(e.Draft().Markers[0].ID)
	assert.ErrorIs(t, e.Save(), errMarkerRequired)
	assert.True(t, e.Opened())
	assert.Len(t, s.Factions, before)
}

func TestSaveCommitsDraft(t *testing.T) {
	e, s, l := newTestEditor()

	e.OpenAddAt(5, 5)
	e.Draft().Name = "  Nová Frakce  "
	e.Draft().URL = " https://example.test "
	require.NoError(t, e.Save())

	assert.False(t, e.Opened())
	require.Len(t, s.Factions, 3)
	saved := s.Factions[2]
	assert.Equal(t, "Nová Frakce", saved.Name, "name is trimmed on save")
	assert.Equal(t, "https://example.test", saved.URL)
	assert.True(t, l.Has(MarkerKey(saved.ID, saved.Markers[0].ID)))
}

func TestSaveEditReplacesInPlace(t *testing.T) {
	e, s, _ := newTestEditor()

	e.OpenEdit("a")
	e.Draft().Name = "Zelený Panter"
	e.SetMarkerColor("a1", "#34d399")
	require.NoError(t, e.Save())

	require.Len(t, s.Factions, 2)
	assert.Equal(t, "a", s.Factions[0].ID, "list position preserved")
	assert.Equal(t, "Zelený Panter", s.Factions[0].Name)
	assert.Equal(t, "#34d399", s.Factions[0].Markers[0].Color)
}

func TestSaveEditOfDeletedFactionIsDropped(t *testing.T) {
	e, s, l := newTestEditor()

	e.OpenEdit("a")
	e.Draft().Name = "Po smazání"
	s.Remove("a")

	require.NoError(t, e.Save())
	assert.False(t, e.Opened())
	assert.Len(t, s.Factions, 1)
	assert.False(t, l.Has(MarkerKey("a", "a1")), "close rebuilds the layer from the store")
}

func TestOpenDraftDiscardsAbandonedPreview(t *testing.T) {
	e, _, l := newTestEditor()

	e.OpenAddAt(1, 1)
	ghost := MarkerKey(e.Draft().ID, e.Draft().Markers[0].ID)
	require.True(t, l.Has(ghost))

	// Opening another draft on top must not strand the first one's overlay;
	// its faction never reaches the store, so nothing else cleans it up.
	e.OpenEdit("a")
	assert.False(t, l.Has(ghost), "replaced draft leaves no overlay behind")
	assert.True(t, l.Has(MarkerKey("a", "a1")))
	assert.True(t, l.Visible(MarkerKey("b", "b1")))
}

func TestCloseDiscardsPreview(t *testing.T) {
	e, s, l := newTestEditor()

	e.OpenEdit("a")
	e.SetMarkerColor("a1", "#ffffff")
	e.AppendMarker(99, 99)
	draftID := e.Draft().ID
	extra := e.Draft().Markers[len(e.Draft().Markers)-1].ID

	e.Close()

	assert.False(t, e.Opened())
	stored, _ := s.Find("a")
	assert.Equal(t, "#a855f7", stored.Markers[0].Color)
	assert.False(t, l.Has(MarkerKey(draftID, extra)), "preview markers vanish on discard")
	assert.True(t, l.Has(MarkerKey("a", "a1")))
	assert.True(t, l.Visible(MarkerKey("a", "a1")))
}

func TestConfirmedDelete(t *testing.T) {
	e, s, l := newTestEditor()

	e.OpenEdit("a")
	e.ConfirmedDelete()

	assert.False(t, e.Opened())
	_, ok := s.Find("a")
	assert.False(t, ok)
	assert.False(t, l.Has(MarkerKey("a", "a1")))
	assert.False(t, l.Has(MarkerKey("a", "a2")))
	assert.True(t, l.Visible(MarkerKey("b", "b1")), "other factions untouched")

	// Delete outside edit mode is refused.
	e.OpenAdd()
	e.ConfirmedDelete()
	assert.True(t, e.Opened())
}

func TestRemoveMarkerAndHint(t *testing.T) {
	e, _, _ := newTestEditor()

	e.OpenAddAt(1, 2)
	assert.Contains(t, e.Hint(), "Tip")

	e.RemoveMarker(e.Draft().Markers[0].ID)
	assert.Empty(t, e.Draft().Markers)
	assert.Contains(t, e.Hint(), "alespoň jeden marker")

	e.ToggleAddingMarker()
	assert.Contains(t, e.Hint(), "klikej do mapy")
}

func TestCycleCategorySkipsAll(t *testing.T) {
	e, s, _ := newTestEditor()
	e.OpenAdd()

	assert.Equal(t, "izs", e.Draft().Category)
	e.CycleCategory()
	assert.Equal(t, "dilny", e.Draft().Category)

	// Wraps around past the end, never landing on "all".
	for i := 0; i < len(s.Categories); i++ {
		e.CycleCategory()
		assert.NotEqual(t, faction.AllCategories, e.Draft().Category)
	}
}
