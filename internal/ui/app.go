// Package ui is the Ebitengine front end: map view, marker overlays, side
// panel and the modal faction editor. All state mutation happens inside
// Update, one input event at a time; Draw only projects the current state.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/kamenice-rp/factionmap/internal/config"
	"github.com/kamenice-rp/factionmap/internal/faction"
	"github.com/kamenice-rp/factionmap/internal/tiles"
)

// dragThreshold separates a click from a pan, in pixels.
const dragThreshold = 4

type App struct {
	log   *zap.Logger
	cfg   *config.Config
	store *faction.Store
	atlas *tiles.Atlas

	view    View
	layer   *Layer
	filters *Filters
	editor  *Editor
	panel   *panel
	modal   *editorView

	isAdmin bool

	// Raw search text as typed; filters.Term carries the folded form.
	searchRaw string

	pressedOnMap bool
	dragging     bool
	lastMouseX   int
	lastMouseY   int
}

func New(log *zap.Logger, cfg *config.Config, store *faction.Store, isAdmin bool) *App {
	filters := &Filters{Category: faction.AllCategories}
	layer := NewLayer(store)
	a := &App{
		log:     log,
		cfg:     cfg,
		store:   store,
		atlas:   tiles.New(cfg.TilesDir, cfg.MinZoom, cfg.MaxZoom, log),
		layer:   layer,
		filters: filters,
		editor:  NewEditor(store, layer, filters),
		isAdmin: isAdmin,
		view: View{
			Zoom:    3,
			MinZoom: float64(cfg.MinZoom),
			MaxZoom: float64(cfg.MaxZoom),
			Width:   cfg.WindowW,
			Height:  cfg.WindowH,
		},
	}
	a.panel = newPanel(a)
	a.modal = newEditorView(a)

	layer.RenderAll(filters.Category, filters.Term)
	return a
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && a.editor.Opened() {
		a.editor.Close()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && a.editor.Opened() && !a.editor.Minimized() {
		a.modal.cycleFocus()
	}

	a.handleTyping()

	mx, my := ebiten.CursorPosition()

	if _, dy := ebiten.Wheel(); dy != 0 {
		switch {
		case a.modal.wheelOver(mx, my, dy):
		case mx < panelW:
			a.panel.scrollBy(dy)
		default:
			a.view.ZoomBy(dy*0.25, float64(mx), float64(my))
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case a.modal.handleClick(mx, my):
		case mx < panelW:
			a.panel.handleClick(mx, my)
		default:
			a.pressedOnMap = true
			a.dragging = false
			a.lastMouseX, a.lastMouseY = mx, my
		}
	}

	if a.pressedOnMap && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := mx-a.lastMouseX, my-a.lastMouseY
		if a.dragging || dx*dx+dy*dy > dragThreshold*dragThreshold {
			a.dragging = true
			a.view.Pan(float64(dx), float64(dy))
			a.lastMouseX, a.lastMouseY = mx, my
		}
	}

	if a.pressedOnMap && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if !a.dragging {
			a.mapClick(mx, my)
		}
		a.pressedOnMap = false
		a.dragging = false
	}

	return nil
}

// mapClick routes a non-drag click on the map area.
func (a *App) mapClick(mx, my int) {
	if key, ok := a.layer.HitTest(&a.view, float64(mx), float64(my)); ok {
		a.layer.OpenPopup(key)
		return
	}
	a.layer.ClosePopup()

	if !a.isAdmin {
		return
	}

	x, y := a.view.ScreenToPlane(float64(mx), float64(my))

	if a.editor.Opened() {
		if a.editor.AddingMarker() {
			a.editor.AppendMarker(x, y)
		}
		return
	}

	if a.confirm("Založit novou frakci na tomto místě?") {
		a.editor.OpenAddAt(x, y)
	}
}

func (a *App) handleTyping() {
	runes := ebiten.AppendInputChars(nil)
	backspace := inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	if len(runes) == 0 && !backspace {
		return
	}

	if a.editor.Opened() && a.modal.focusedField() != fieldNone {
		a.modal.typeInto(runes, backspace)
		return
	}
	if a.panel.searchFocused {
		for _, r := range runes {
			a.searchRaw += string(r)
		}
		if backspace && len(a.searchRaw) > 0 {
			rs := []rune(a.searchRaw)
			a.searchRaw = string(rs[:len(rs)-1])
		}
		a.applySearch()
	}
}

func (a *App) applySearch() {
	a.filters.Term = foldSearchTerm(a.searchRaw)
	a.layer.RefreshVisibility(a.filters.Category, a.filters.Term)
}

func (a *App) setCategory(id string) {
	a.filters.Category = id
	a.layer.RefreshVisibility(a.filters.Category, a.filters.Term)
}

// locate recenters the map on a faction's first marker, never zooming out,
// and opens that marker's popup. A faction without markers is left alone.
func (a *App) locate(id string) {
	f, ok := a.store.Find(id)
	if !ok || len(f.Markers) == 0 {
		return
	}
	first := f.Markers[0]
	zoom := a.view.Zoom
	if zoom < 5 {
		zoom = 5
	}
	a.view.Center(first.X, first.Y, zoom)
	a.layer.OpenPopup(MarkerKey(f.ID, first.ID))
}

func (a *App) deleteFaction(id string) {
	f, ok := a.store.Find(id)
	if !ok {
		return
	}
	if !a.confirm(fmt.Sprintf("Smazat frakci %q?", f.Name)) {
		return
	}
	a.store.Remove(id)
	a.layer.RemoveFaction(id)
	a.layer.RefreshVisibility(a.filters.Category, a.filters.Term)
	a.log.Info("faction deleted", zap.String("id", id), zap.String("name", f.Name))
}

func (a *App) clearAll() {
	if !a.confirm("Fakt smazat všechny frakce?") {
		return
	}
	for _, f := range a.store.Factions {
		a.layer.RemoveFaction(f.ID)
	}
	a.store.Clear()
	a.layer.RefreshVisibility(a.filters.Category, a.filters.Term)
	a.log.Info("all factions cleared")
}

// exportJSON copies the serialized store to the clipboard. When the
// clipboard is unavailable it degrades to a file in the config directory
// instead of failing.
func (a *App) exportJSON() {
	out, err := faction.Export(a.store)
	if err != nil {
		a.alert("Export selhal: " + err.Error())
		return
	}
	if err := clipboard.WriteAll(string(out)); err == nil {
		a.info("Export JSON zkopírován do schránky.")
		return
	}

	name := fmt.Sprintf("factionmap-export-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(config.Dir(), name)
	if err := os.WriteFile(path, out, 0644); err != nil {
		a.log.Error("export fallback failed", zap.Error(err))
		a.alert("Export selhal: schránka ani soubor nejsou dostupné.")
		return
	}
	a.log.Warn("clipboard unavailable, exported to file", zap.String("path", path))
	a.info("Schránka není dostupná. Export uložen do:\n" + path)
}

func (a *App) importJSON() {
	path, err := zenity.SelectFile(
		zenity.Title("Import frakcí"),
		zenity.FileFilters{{Name: "JSON", Patterns: []string{"*.json"}, CaseFold: true}},
	)
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.alert("Import selhal: soubor nejde přečíst.")
		return
	}
	if err := faction.Import(a.store, data); err != nil {
		a.log.Warn("import rejected", zap.String("path", path), zap.Error(err))
		a.alert("Import selhal: JSON není validní.")
		return
	}

	// A replaced registry can drop the active category; fall back to "all"
	// rather than filtering on a chip that no longer exists.
	if a.store.CategoryName(a.filters.Category) == "—" {
		a.filters.Category = faction.AllCategories
	}
	a.layer.RenderAll(a.filters.Category, a.filters.Term)
	a.log.Info("import finished",
		zap.String("path", path),
		zap.Int("factions", len(a.store.Factions)),
		zap.Int("categories", len(a.store.Categories)))
	a.info("Import hotový.")
}

func (a *App) confirm(msg string) bool {
	return zenity.Question(msg, zenity.Title("Mapa frakcí"), zenity.OKLabel("Ano"), zenity.CancelLabel("Ne")) == nil
}

func (a *App) alert(msg string) {
	zenity.Error(msg, zenity.Title("Mapa frakcí"))
}

func (a *App) info(msg string) {
	zenity.Info(msg, zenity.Title("Mapa frakcí"))
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(mapBackground)

	ox, oy := a.view.Origin()
	a.atlas.Draw(screen, a.view.Scale(), ox, oy)
	a.layer.Draw(screen, &a.view)
	a.panel.draw(screen)
	a.modal.draw(screen)

	mx, my := ebiten.CursorPosition()
	if mx >= panelW {
		px, py := a.view.ScreenToPlane(float64(mx), float64(my))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x=%.0f y=%.0f z=%.1f", px, py, a.view.Zoom), a.view.Width-150, 8)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.view.Width = outsideWidth
	a.view.Height = outsideHeight
	return outsideWidth, outsideHeight
}
