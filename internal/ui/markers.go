package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/kamenice-rp/factionmap/internal/faction"
)

// markerRadius is the fixed dot size, independent of zoom.
const markerRadius = 9

// Key addresses one rendered marker overlay as "<factionID>:<markerID>".
type Key string

func MarkerKey(factionID, markerID string) Key {
	return Key(factionID + ":" + markerID)
}

func (k Key) belongsTo(factionID string) bool {
	return strings.HasPrefix(string(k), factionID+":")
}

// popupInfo is the content shown when a marker's popup is open. It is
// refreshed from the store on every visibility pass so edits show up
// without recreating the overlay.
type popupInfo struct {
	Name     string
	Category string
	Count    int
	Desc     string
	URL      string
	Img      string
}

type sprite struct {
	key       Key
	factionID string
	x, y      float64
	color     color.RGBA
	visible   bool
	popup     popupInfo
}

// Layer owns every rendered marker overlay. Overlays are keyed so that a
// single faction's markers can be replaced or removed without scanning the
// whole collection, and hiding keeps the overlay's identity: filtered-out
// markers are hidden, not destroyed.
type Layer struct {
	store   *faction.Store
	sprites map[Key]*sprite
	order   []Key
	open    Key
}

func NewLayer(store *faction.Store) *Layer {
	return &Layer{
		store:   store,
		sprites: make(map[Key]*sprite),
	}
}

func (l *Layer) popupFor(f faction.Faction) popupInfo {
	name := f.Name
	if name == "" {
		name = "Frakce"
	}
	return popupInfo{
		Name:     name,
		Category: l.store.CategoryName(f.Category),
		Count:    len(f.Markers),
		Desc:     f.Desc,
		URL:      f.URL,
		Img:      f.Img,
	}
}

// RenderFaction replaces every overlay of one faction with overlays built
// from its current markers. Works for drafts too: the faction passed in does
// not have to live in the store.
func (l *Layer) RenderFaction(f faction.Faction) {
	l.RemoveFaction(f.ID)

	popup := l.popupFor(f)
	for _, mk := range f.Markers {
		key := MarkerKey(f.ID, mk.ID)
		l.sprites[key] = &sprite{
			key:       key,
			factionID: f.ID,
			x:         mk.X,
			y:         mk.Y,
			color:     parseCSSColor(mk.Color),
			visible:   true,
			popup:     popup,
		}
		l.order = append(l.order, key)
	}
}

// RemoveFaction drops every overlay whose key carries the faction id prefix.
func (l *Layer) RemoveFaction(factionID string) {
	kept := l.order[:0]
	for _, key := range l.order {
		if key.belongsTo(factionID) {
			delete(l.sprites, key)
			if l.open == key {
				l.open = ""
			}
			continue
		}
		kept = append(kept, key)
	}
	l.order = kept
}

// RenderAll rebuilds the whole layer from the store and reapplies the
// current filter. Called after bulk operations: import, clear, modal close.
func (l *Layer) RenderAll(activeCategory, term string) {
	l.sprites = make(map[Key]*sprite)
	l.order = l.order[:0]
	l.open = ""
	for _, f := range l.store.Factions {
		l.RenderFaction(f)
	}
	l.RefreshVisibility(activeCategory, term)
}

// RefreshVisibility shows markers of factions passing the filter and hides
// the rest. Content of visible popups is refreshed from the store. Overlays
// whose faction or marker is not in the store (draft previews) are left
// alone, exactly like the committed ones they temporarily shadow.
func (l *Layer) RefreshVisibility(activeCategory, term string) {
	visible := make(map[string]bool)
	for _, f := range l.store.Filtered(activeCategory, term) {
		visible[f.ID] = true
	}

	for _, f := range l.store.Factions {
		show := visible[f.ID]
		popup := l.popupFor(f)
		for _, mk := range f.Markers {
			sp, ok := l.sprites[MarkerKey(f.ID, mk.ID)]
			if !ok {
				continue
			}
			sp.visible = show
			if show {
				sp.popup = popup
			}
		}
	}

	if l.open != "" {
		if sp, ok := l.sprites[l.open]; !ok || !sp.visible {
			l.open = ""
		}
	}
}

// OpenPopup opens the popup of a visible overlay.
func (l *Layer) OpenPopup(key Key) {
	if sp, ok := l.sprites[key]; ok && sp.visible {
		l.open = key
	}
}

func (l *Layer) ClosePopup() {
	l.open = ""
}

func (l *Layer) Has(key Key) bool {
	_, ok := l.sprites[key]
	return ok
}

func (l *Layer) Visible(key Key) bool {
	sp, ok := l.sprites[key]
	return ok && sp.visible
}

// Keys returns every overlay key in draw order.
func (l *Layer) Keys() []Key {
	return append([]Key(nil), l.order...)
}

// HitTest returns the topmost visible overlay under a screen position.
func (l *Layer) HitTest(v *View, sx, sy float64) (Key, bool) {
	for i := len(l.order) - 1; i >= 0; i-- {
		sp := l.sprites[l.order[i]]
		if !sp.visible {
			continue
		}
		mx, my := v.PlaneToScreen(sp.x, sp.y)
		dx, dy := sx-mx, sy-my
		if dx*dx+dy*dy <= markerRadius*markerRadius {
			return sp.key, true
		}
	}
	return "", false
}

// Draw renders visible dots and, on top, the open popup.
func (l *Layer) Draw(screen *ebiten.Image, v *View) {
	for _, key := range l.order {
		sp := l.sprites[key]
		if !sp.visible {
			continue
		}
		sx, sy := v.PlaneToScreen(sp.x, sp.y)
		if sx < -markerRadius || sy < -markerRadius ||
			sx > float64(v.Width)+markerRadius || sy > float64(v.Height)+markerRadius {
			continue
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), markerRadius+3, color.RGBA{0, 0, 0, 90}, true)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), markerRadius, sp.color, true)
		vector.StrokeCircle(screen, float32(sx), float32(sy), markerRadius, 1, color.RGBA{255, 255, 255, 56}, true)
	}

	if sp, ok := l.sprites[l.open]; ok && sp.visible {
		l.drawPopup(screen, v, sp)
	}
}

func (l *Layer) drawPopup(screen *ebiten.Image, v *View, sp *sprite) {
	const popupW = 240
	lines := []string{sp.popup.Name, fmt.Sprintf("%s · %d× marker", sp.popup.Category, sp.popup.Count)}
	if sp.popup.Desc != "" {
		lines = append(lines, wrapText(sp.popup.Desc, 34)...)
	}
	if sp.popup.Img != "" {
		lines = append(lines, "Obrázek: "+truncate(sp.popup.Img, 30))
	}
	if sp.popup.URL != "" {
		lines = append(lines, "Odkaz: "+truncate(sp.popup.URL, 30))
	}

	lineH := 16
	popupH := len(lines)*lineH + 16
	sx, sy := v.PlaneToScreen(sp.x, sp.y)
	px := sx - popupW/2
	py := sy - markerRadius - 10 - float64(popupH)

	vector.DrawFilledRect(screen, float32(px), float32(py), popupW, float32(popupH), color.RGBA{16, 18, 24, 235}, true)
	vector.StrokeRect(screen, float32(px), float32(py), popupW, float32(popupH), 1, color.RGBA{255, 255, 255, 40}, true)

	ty := int(py) + 8 + 11
	for i, line := range lines {
		clr := color.Color(color.White)
		if i > 0 {
			clr = color.RGBA{229, 231, 235, 200}
		}
		text.Draw(screen, line, basicfont.Face7x13, int(px)+10, ty, clr)
		ty += lineH
	}
}

func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > 4 {
		lines = lines[:4]
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
