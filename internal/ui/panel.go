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

const (
	panelW  = 320
	pad     = 12
	chipH   = 22
	cardH   = 78
	buttonH = 24
)

var (
	mapBackground = color.RGBA{11, 13, 18, 255}
	panelBg       = color.RGBA{16, 18, 24, 242}
	cardBg        = color.RGBA{24, 27, 35, 255}
	chipBg        = color.RGBA{31, 35, 46, 255}
	chipActiveBg  = color.RGBA{168, 85, 247, 255}
	buttonBg      = color.RGBA{39, 44, 58, 255}
	goodBg        = color.RGBA{22, 84, 60, 255}
	dangerBg      = color.RGBA{127, 29, 29, 255}
	mutedText     = color.RGBA{229, 231, 235, 185}
	faintText     = color.RGBA{229, 231, 235, 120}
)

type rect struct{ x, y, w, h int }

func (r rect) hit(mx, my int) bool {
	return mx >= r.x && mx <= r.x+r.w && my >= r.y && my <= r.y+r.h
}

func foldSearchTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type chipRect struct {
	rect
	id string
}

type cardRects struct {
	id     string
	locate rect
	edit   rect
	delete rect
}

// panel is the left column: title + mode badge, admin toolbar, search box,
// category chips and the filtered faction list. It is drawn fresh every
// frame from the store, so every mutation shows up without bookkeeping; the
// clickable rects computed by layout() are what handleClick consumes.
type panel struct {
	app *App

	searchFocused bool
	scroll        int

	searchBox rect
	addBtn    rect
	exportBtn rect
	importBtn rect
	clearBtn  rect
	chips     []chipRect
	cards     []cardRects
	listTop   int
}

func newPanel(a *App) *panel {
	return &panel{app: a}
}

// layout recomputes every clickable rect for the current frame.
func (p *panel) layout() {
	a := p.app
	y := pad + 24

	if a.isAdmin {
		bw := (panelW - 3*pad) / 2
		p.addBtn = rect{pad, y, bw, buttonH}
		p.exportBtn = rect{2*pad + bw, y, bw, buttonH}
		y += buttonH + 6
		p.importBtn = rect{pad, y, bw, buttonH}
		p.clearBtn = rect{2*pad + bw, y, bw, buttonH}
		y += buttonH + 10
	}

	p.searchBox = rect{pad, y, panelW - 2*pad, buttonH}
	y += buttonH + 10

	p.chips = p.chips[:0]
	x := pad
	for _, c := range a.store.Categories {
		w := 7*len([]rune(c.Name)) + 16
		if x+w > panelW-pad && x > pad {
			x = pad
			y += chipH + 6
		}
		p.chips = append(p.chips, chipRect{rect{x, y, w, chipH}, c.ID})
		x += w + 6
	}
	y += chipH + 12

	p.listTop = y
	p.cards = p.cards[:0]
	cy := y - p.scroll
	for _, f := range a.store.Filtered(a.filters.Category, a.filters.Term) {
		c := cardRects{id: f.ID}
		bw := 64
		by := cy + cardH - buttonH - 6
		c.locate = rect{pad + 6, by, bw + 30, buttonH - 4}
		if a.isAdmin {
			c.edit = rect{pad + 6 + bw + 40, by, bw, buttonH - 4}
			c.delete = rect{pad + 6 + 2*bw + 50, by, bw, buttonH - 4}
		}
		p.cards = append(p.cards, c)
		cy += cardH + 8
	}
}

func (p *panel) maxScroll() int {
	content := len(p.cards) * (cardH + 8)
	visible := p.app.view.Height - p.listTop - pad
	if content <= visible {
		return 0
	}
	return content - visible
}

func (p *panel) scrollBy(wheelY float64) {
	p.scroll -= int(wheelY * 40)
	if p.scroll < 0 {
		p.scroll = 0
	}
	if m := p.maxScroll(); p.scroll > m {
		p.scroll = m
	}
}

func (p *panel) handleClick(mx, my int) {
	a := p.app
	p.layout()

	p.searchFocused = p.searchBox.hit(mx, my)

	// A minimized editor leaves the panel visible, but mutating actions stay
	// inert until the draft is saved or discarded. Letting them run would
	// replace or wipe the open draft's live preview.
	editing := a.editor.Opened()

	if a.isAdmin {
		switch {
		case p.addBtn.hit(mx, my):
			if !editing {
				a.editor.OpenAdd()
			}
			return
		case p.exportBtn.hit(mx, my):
			a.exportJSON()
			return
		case p.importBtn.hit(mx, my):
			if !editing {
				a.importJSON()
			}
			return
		case p.clearBtn.hit(mx, my):
			if !editing {
				a.clearAll()
			}
			return
		}
	}

	for _, c := range p.chips {
		if c.hit(mx, my) {
			a.setCategory(c.id)
			return
		}
	}

	if my < p.listTop {
		return
	}
	for _, c := range p.cards {
		if c.locate.hit(mx, my) {
			a.locate(c.id)
			return
		}
		if a.isAdmin && !editing && c.edit.hit(mx, my) {
			a.editor.OpenEdit(c.id)
			return
		}
		if a.isAdmin && !editing && c.delete.hit(mx, my) {
			a.deleteFaction(c.id)
			return
		}
	}
}

func (p *panel) draw(screen *ebiten.Image) {
	a := p.app
	p.layout()

	vector.DrawFilledRect(screen, 0, 0, panelW, float32(a.view.Height), panelBg, false)

	// Title + mode badge.
	text.Draw(screen, "Mapa frakcí", basicfont.Face7x13, pad, pad+10, color.White)
	badge := "Public"
	badgeBg := buttonBg
	if a.isAdmin {
		badge = "Admin"
		badgeBg = chipActiveBg
	}
	bw := 7*len(badge) + 14
	vector.DrawFilledRect(screen, float32(panelW-pad-bw), float32(pad-4), float32(bw), 18, badgeBg, true)
	text.Draw(screen, badge, basicfont.Face7x13, panelW-pad-bw+7, pad+9, color.White)

	if a.isAdmin {
		p.drawButton(screen, p.addBtn, "+ Přidat frakci", goodBg)
		p.drawButton(screen, p.exportBtn, "Export JSON", buttonBg)
		p.drawButton(screen, p.importBtn, "Import JSON", buttonBg)
		p.drawButton(screen, p.clearBtn, "Smazat vše", dangerBg)
	}

	// Search box.
	vector.DrawFilledRect(screen, float32(p.searchBox.x), float32(p.searchBox.y), float32(p.searchBox.w), float32(p.searchBox.h), cardBg, true)
	border := color.RGBA{255, 255, 255, 40}
	if p.searchFocused {
		border = chipActiveBg
	}
	vector.StrokeRect(screen, float32(p.searchBox.x), float32(p.searchBox.y), float32(p.searchBox.w), float32(p.searchBox.h), 1, border, true)
	query := a.searchRaw
	if query == "" && !p.searchFocused {
		text.Draw(screen, "Hledat frakci…", basicfont.Face7x13, p.searchBox.x+8, p.searchBox.y+16, faintText)
	} else {
		if p.searchFocused {
			query += "_"
		}
		text.Draw(screen, query, basicfont.Face7x13, p.searchBox.x+8, p.searchBox.y+16, color.White)
	}

	for _, c := range p.chips {
		name := a.store.CategoryName(c.id)
		bg := chipBg
		if c.id == a.filters.Category {
			bg = chipActiveBg
		}
		vector.DrawFilledRect(screen, float32(c.x), float32(c.y), float32(c.w), float32(c.h), bg, true)
		text.Draw(screen, name, basicfont.Face7x13, c.x+8, c.y+15, color.White)
	}

	p.drawList(screen)
}

func (p *panel) drawList(screen *ebiten.Image) {
	a := p.app
	filtered := a.store.Filtered(a.filters.Category, a.filters.Term)

	if len(filtered) == 0 {
		vector.DrawFilledRect(screen, pad, float32(p.listTop), panelW-2*pad, 46, cardBg, true)
		text.Draw(screen, "Nic nenalezeno", basicfont.Face7x13, pad+8, p.listTop+18, color.White)
		text.Draw(screen, "Zkus jinou kategorii nebo hledání.", basicfont.Face7x13, pad+8, p.listTop+36, mutedText)
		return
	}

	cy := p.listTop - p.scroll
	for i, f := range filtered {
		if cy+cardH > p.listTop && cy < a.view.Height {
			p.drawCard(screen, f, cy, p.cards[i])
		}
		cy += cardH + 8
	}
}

func (p *panel) drawCard(screen *ebiten.Image, f faction.Faction, cy int, c cardRects) {
	a := p.app

	vector.DrawFilledRect(screen, pad, float32(cy), panelW-2*pad, cardH, cardBg, true)

	text.Draw(screen, truncate(f.Name, 38), basicfont.Face7x13, pad+8, cy+16, color.White)

	meta := fmt.Sprintf("%s · %d× marker", a.store.CategoryName(f.Category), len(f.Markers))
	if f.Img != "" {
		meta += " · Obrázek"
	}
	if f.URL != "" {
		meta += " · Odkaz"
	}
	text.Draw(screen, truncate(meta, 40), basicfont.Face7x13, pad+8, cy+34, mutedText)

	p.drawButton(screen, c.locate, "Najít na mapě", buttonBg)
	if a.isAdmin {
		p.drawButton(screen, c.edit, "Upravit", goodBg)
		p.drawButton(screen, c.delete, "Smazat", dangerBg)
	}
}

func (p *panel) drawButton(screen *ebiten.Image, r rect, label string, bg color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), bg, true)
	tw := 7 * len([]rune(label))
	text.Draw(screen, label, basicfont.Face7x13, r.x+(r.w-tw)/2, r.y+r.h/2+5, color.White)
}
