package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kamenice-rp/factionmap/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{TilesDir: t.TempDir(), WindowW: 1280, WindowH: 800, MinZoom: 0, MaxZoom: 7}
	return New(zap.NewNop(), cfg, testStore(), true)
}

func TestModalBackdropConsumesClicks(t *testing.T) {
	a := newTestApp(t)

	a.editor.OpenEdit("a")
	assert.True(t, a.modal.handleClick(5, 5), "an expanded modal swallows clicks anywhere")
	assert.True(t, a.editor.Opened(), "a backdrop click does not close the modal")

	a.editor.ToggleAddingMarker()
	assert.False(t, a.modal.handleClick(5, 5), "minimized, clicks off the dock pass through")
}

func TestToolbarAddInertWhileEditorOpen(t *testing.T) {
	a := newTestApp(t)

	a.editor.OpenEdit("a")
	a.editor.ToggleAddingMarker()
	require.True(t, a.editor.Minimized(), "panel is reachable only while minimized")

	a.panel.layout()
	b := a.panel.addBtn
	a.panel.handleClick(b.x+1, b.y+1)

	assert.Equal(t, modeEdit, a.editor.Mode(), "the open draft is not replaced")
	assert.Equal(t, "a", a.editor.Draft().ID)
}

func TestCardEditInertWhileEditorOpen(t *testing.T) {
	a := newTestApp(t)

	a.editor.OpenAddAt(1, 2)
	a.editor.ToggleAddingMarker()
	draftID := a.editor.Draft().ID

	a.panel.layout()
	require.NotEmpty(t, a.panel.cards)
	e := a.panel.cards[0].edit
	a.panel.handleClick(e.x+1, e.y+1)

	assert.Equal(t, modeAdd, a.editor.Mode())
	assert.Equal(t, draftID, a.editor.Draft().ID, "card edit does not hijack the open draft")
}

func TestLocateStillWorksWhileEditorMinimized(t *testing.T) {
	a := newTestApp(t)

	a.editor.OpenAddAt(1, 2)
	a.editor.ToggleAddingMarker()

	a.panel.layout()
	require.NotEmpty(t, a.panel.cards)
	l := a.panel.cards[0].locate
	a.panel.handleClick(l.x+1, l.y+1)

	assert.Equal(t, 10.0, a.view.CenterX, "read-only actions stay available")
	assert.Equal(t, 20.0, a.view.CenterY)
}
