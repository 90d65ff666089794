package ui

import (
	"errors"
	"strings"

	"github.com/kamenice-rp/factionmap/internal/faction"
)

const (
	modeAdd  = "add"
	modeEdit = "edit"
)

// Filters is the active list/marker filter, shared by the panel, the marker
// layer refreshes and the editor. Term is kept trimmed and lowercased.
type Filters struct {
	Category string
	Term     string
}

// Validation failures keep the modal open; the app surfaces them as alerts.
var (
	errNameRequired   = errors.New("Vyplň název frakce.")
	errMarkerRequired = errors.New("Frakce musí mít alespoň jeden marker.")
)

// Editor is the modal add/edit controller. It mutates an isolated deep copy
// of a faction; the store is only touched by Save and Delete, each a single
// atomic operation, so an abandoned edit can never leave it half-changed.
//
// The draft is rendered on the map while the editor is open, shadowing the
// committed overlays of the same faction, so color and marker changes
// preview live. Closing without saving rebuilds the layer from the store
// and the preview vanishes.
type Editor struct {
	store   *faction.Store
	layer   *Layer
	filters *Filters

	opened        bool
	mode          string
	draft         *faction.Faction
	addingMarker  bool
	userMinimized bool
	focus         editorField
}

type editorField int

const (
	fieldNone editorField = iota
	fieldName
	fieldURL
	fieldImg
	fieldDesc
)

func NewEditor(store *faction.Store, layer *Layer, filters *Filters) *Editor {
	return &Editor{store: store, layer: layer, filters: filters}
}

func (e *Editor) Opened() bool { return e.opened }

func (e *Editor) Mode() string { return e.mode }

func (e *Editor) Draft() *faction.Faction { return e.draft }

func (e *Editor) AddingMarker() bool { return e.addingMarker }

// Minimized combines the forced minimization of marker-adding mode with the
// user's own preference.
func (e *Editor) Minimized() bool { return e.addingMarker || e.userMinimized }

// OpenAdd starts a fresh draft. Triggered by the toolbar button.
func (e *Editor) OpenAdd() {
	e.openDraft(modeAdd, &faction.Faction{
		ID:       faction.NewID(),
		Category: e.store.EditableCategory(),
	})
}

// OpenAddAt starts a fresh draft seeded with one marker at the clicked map
// point.
func (e *Editor) OpenAddAt(x, y float64) {
	e.openDraft(modeAdd, &faction.Faction{
		ID:       faction.NewID(),
		Category: e.store.EditableCategory(),
		Markers: []faction.Marker{
			{ID: faction.NewID(), X: x, Y: y, Color: faction.DefaultColor},
		},
	})
}

// OpenEdit starts editing a deep copy of a stored faction. A stale id is a
// no-op; the card the click came from just lost a race with a delete.
func (e *Editor) OpenEdit(id string) {
	f, ok := e.store.Find(id)
	if !ok {
		return
	}
	draft := f.Clone()
	e.openDraft(modeEdit, &draft)
}

func (e *Editor) openDraft(mode string, draft *faction.Faction) {
	if e.opened {
		// Throw away the previous draft's preview; its faction is not in
		// the store, so nothing else would ever clean those overlays up.
		e.layer.RenderAll(e.filters.Category, e.filters.Term)
	}
	e.opened = true
	e.mode = mode
	e.draft = draft
	e.addingMarker = false
	e.userMinimized = false
	e.focus = fieldName

	e.layer.RenderFaction(*draft)
	e.layer.RefreshVisibility(e.filters.Category, e.filters.Term)
}

// ToggleAddingMarker flips the map-click accumulation mode. While active the
// modal is forced minimized so the map is unobstructed.
func (e *Editor) ToggleAddingMarker() {
	if !e.opened {
		return
	}
	e.addingMarker = !e.addingMarker
}

// ToggleMinimize records the user's preference based on what is currently
// shown: un-minimizing while marker-adding still leaves the modal minimized
// until that mode ends.
func (e *Editor) ToggleMinimize() {
	if !e.opened {
		return
	}
	e.userMinimized = !e.Minimized()
}

// AppendMarker adds one default-colored marker to the draft and re-renders
// its overlays. Called once per map click while adding markers; the modal
// stays open for the next click.
func (e *Editor) AppendMarker(x, y float64) {
	if !e.opened {
		return
	}
	e.draft.Markers = append(e.draft.Markers, faction.Marker{
		ID:    faction.NewID(),
		X:     x,
		Y:     y,
		Color: faction.DefaultColor,
	})
	e.layer.RenderFaction(*e.draft)
	e.layer.RefreshVisibility(e.filters.Category, e.filters.Term)
}

// SetMarkerColor recolors one draft marker and previews it immediately.
func (e *Editor) SetMarkerColor(markerID, clr string) {
	if !e.opened {
		return
	}
	for i := range e.draft.Markers {
		if e.draft.Markers[i].ID == markerID {
			e.draft.Markers[i].Color = clr
			break
		}
	}
	e.layer.RenderFaction(*e.draft)
	e.layer.RefreshVisibility(e.filters.Category, e.filters.Term)
}

// RemoveMarker drops one marker from the draft.
func (e *Editor) RemoveMarker(markerID string) {
	if !e.opened {
		return
	}
	kept := e.draft.Markers[:0]
	for _, mk := range e.draft.Markers {
		if mk.ID != markerID {
			kept = append(kept, mk)
		}
	}
	e.draft.Markers = kept
	e.layer.RenderFaction(*e.draft)
	e.layer.RefreshVisibility(e.filters.Category, e.filters.Term)
}

// CycleCategory advances the draft category through the registry, skipping
// the reserved "all" entry.
func (e *Editor) CycleCategory() {
	if !e.opened {
		return
	}
	usable := make([]string, 0, len(e.store.Categories))
	for _, c := range e.store.Categories {
		if c.ID != faction.AllCategories {
			usable = append(usable, c.ID)
		}
	}
	if len(usable) == 0 {
		return
	}
	for i, id := range usable {
		if id == e.draft.Category {
			e.draft.Category = usable[(i+1)%len(usable)]
			return
		}
	}
	e.draft.Category = usable[0]
}

// Save validates and commits the draft. On a validation error the modal
// stays open and the store is untouched.
func (e *Editor) Save() error {
	if !e.opened {
		return nil
	}

	name := strings.TrimSpace(e.draft.Name)
	if name == "" {
		e.focus = fieldName
		return errNameRequired
	}
	e.draft.Name = name
	if e.draft.Category == "" {
		e.draft.Category = faction.FallbackCategory
	}
	e.draft.URL = strings.TrimSpace(e.draft.URL)
	e.draft.Img = strings.TrimSpace(e.draft.Img)
	e.draft.Desc = strings.TrimSpace(e.draft.Desc)

	if len(e.draft.Markers) == 0 {
		return errMarkerRequired
	}

	if e.mode == modeAdd {
		e.store.Upsert(*e.draft)
	} else if _, ok := e.store.Find(e.draft.ID); ok {
		// An edit of a faction deleted meanwhile is dropped silently.
		e.store.Upsert(*e.draft)
	}

	e.close()
	return nil
}

// ConfirmedDelete removes the edited faction. The confirmation dialog has
// already happened at the call site.
func (e *Editor) ConfirmedDelete() {
	if !e.opened || e.mode != modeEdit {
		return
	}
	id := e.draft.ID
	e.store.Remove(id)
	e.layer.RemoveFaction(id)
	e.close()
}

// Close discards the draft. The layer rebuild throws away any live preview.
func (e *Editor) Close() {
	if !e.opened {
		return
	}
	e.close()
}

func (e *Editor) close() {
	e.opened = false
	e.mode = ""
	e.draft = nil
	e.addingMarker = false
	e.userMinimized = false
	e.focus = fieldNone

	e.layer.RenderAll(e.filters.Category, e.filters.Term)
}

// Hint is the helper line under the marker list.
func (e *Editor) Hint() string {
	if !e.opened {
		return ""
	}
	if e.addingMarker {
		return "Režim přidávání markerů: klikej do mapy (můžeš vícekrát)."
	}
	if len(e.draft.Markers) == 0 {
		return "Nejdřív přidej alespoň jeden marker: klikni na „+ Přidat marker“."
	}
	return "Tip: přidej další pointy a barvy měň u každého markeru."
}

// Title is the modal heading.
func (e *Editor) Title() string {
	if e.mode == modeEdit {
		return "Upravit frakci"
	}
	return "Přidat frakci"
}
