package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	modalW     = 360
	fieldH     = 24
	rowH       = 26
	maxRows    = 6
	swatchSize = 14
)

type markerRowRects struct {
	markerID string
	swatches []rect
	delete   rect
}

// editorView draws the modal and translates clicks and typing into editor
// calls. Like the panel it is immediate-mode: layout() rebuilds the rects
// every frame from the draft.
type editorView struct {
	app *App

	box          rect
	closeBtn     rect
	minimizeBtn  rect
	nameBox      rect
	categoryBox  rect
	urlBox       rect
	imgBox       rect
	descBox      rect
	addMarkerBtn rect
	saveBtn      rect
	deleteBtn    rect
	cancelBtn    rect
	rows         []markerRowRects

	rowScroll int

	// Minimized dock.
	dock       rect
	restoreBtn rect
	dockToggle rect
}

func newEditorView(a *App) *editorView {
	return &editorView{app: a}
}

func (m *editorView) focusedField() editorField {
	if !m.app.editor.Opened() || m.app.editor.Minimized() {
		return fieldNone
	}
	return m.app.editor.focus
}

// cycleFocus advances the text field focus, wrapping back to the name.
func (m *editorView) cycleFocus() {
	e := m.app.editor
	switch e.focus {
	case fieldName:
		e.focus = fieldURL
	case fieldURL:
		e.focus = fieldImg
	case fieldImg:
		e.focus = fieldDesc
	default:
		e.focus = fieldName
	}
}

func (m *editorView) typeInto(runes []rune, backspace bool) {
	e := m.app.editor
	var target *string
	switch e.focus {
	case fieldName:
		target = &e.draft.Name
	case fieldURL:
		target = &e.draft.URL
	case fieldImg:
		target = &e.draft.Img
	case fieldDesc:
		target = &e.draft.Desc
	default:
		return
	}
	for _, r := range runes {
		*target += string(r)
	}
	if backspace && len(*target) > 0 {
		rs := []rune(*target)
		*target = string(rs[:len(rs)-1])
	}
}

func (m *editorView) layout() {
	a := m.app
	e := a.editor

	if e.Minimized() {
		w := 270
		m.dock = rect{a.view.Width - w - 16, a.view.Height - 40 - 16, w, 40}
		m.restoreBtn = rect{m.dock.x + m.dock.w - 58, m.dock.y + 8, 50, 24}
		m.dockToggle = rect{m.dock.x + 8, m.dock.y + 8, 150, 24}
		return
	}

	m.box = rect{a.view.Width - modalW - 16, 16, modalW, 0}
	x := m.box.x + pad
	iw := modalW - 2*pad
	y := m.box.y + 34

	m.closeBtn = rect{m.box.x + modalW - 28, m.box.y + 8, 20, 20}
	m.minimizeBtn = rect{m.box.x + modalW - 100, m.box.y + 8, 64, 20}

	m.nameBox = rect{x, y + 14, iw, fieldH}
	y += 14 + fieldH + 8
	m.categoryBox = rect{x, y + 14, iw, fieldH}
	y += 14 + fieldH + 8
	m.urlBox = rect{x, y + 14, iw, fieldH}
	y += 14 + fieldH + 8
	m.imgBox = rect{x, y + 14, iw, fieldH}
	y += 14 + fieldH + 8
	m.descBox = rect{x, y + 14, iw, fieldH}
	y += 14 + fieldH + 12

	m.addMarkerBtn = rect{x, y, iw, buttonH}
	y += buttonH + 8

	m.rows = m.rows[:0]
	rows := e.draft.Markers
	if m.rowScroll > len(rows)-maxRows {
		m.rowScroll = len(rows) - maxRows
	}
	if m.rowScroll < 0 {
		m.rowScroll = 0
	}
	shown := rows
	if len(rows) > maxRows {
		shown = rows[m.rowScroll : m.rowScroll+maxRows]
	}
	for range shown {
		row := markerRowRects{delete: rect{x + iw - 58, y + 4, 58, rowH - 8}}
		sx := x + 92
		for range markerPalette() {
			row.swatches = append(row.swatches, rect{sx, y + (rowH-swatchSize)/2, swatchSize, swatchSize})
			sx += swatchSize + 4
		}
		m.rows = append(m.rows, row)
		y += rowH
	}
	for i, mk := range shown {
		m.rows[i].markerID = mk.ID
	}
	y += 24 // hint line

	m.saveBtn = rect{x, y + 8, 90, buttonH}
	m.cancelBtn = rect{x + 98, y + 8, 70, buttonH}
	if e.Mode() == modeEdit {
		m.deleteBtn = rect{x + iw - 70, y + 8, 70, buttonH}
	} else {
		m.deleteBtn = rect{}
	}
	y += buttonH + 16

	m.box.h = y - m.box.y
}

func (m *editorView) wheelOver(mx, my int, dy float64) bool {
	e := m.app.editor
	if !e.Opened() || e.Minimized() {
		return false
	}
	m.layout()
	if !m.box.hit(mx, my) {
		return false
	}
	m.rowScroll -= int(dy)
	return true
}

// handleClick consumes clicks belonging to the modal. While expanded the
// whole screen acts as its backdrop, so panel and map stay inert; while
// minimized only the dock is clickable and the uncovered map stays live for
// marker adding.
func (m *editorView) handleClick(mx, my int) bool {
	a := m.app
	e := a.editor
	if !e.Opened() {
		return false
	}
	m.layout()

	if e.Minimized() {
		if m.restoreBtn.hit(mx, my) {
			e.ToggleMinimize()
			return true
		}
		if e.AddingMarker() && m.dockToggle.hit(mx, my) {
			e.ToggleAddingMarker()
			return true
		}
		return m.dock.hit(mx, my)
	}

	if !m.box.hit(mx, my) {
		// Backdrop: swallow the click without acting on it.
		return true
	}

	switch {
	case m.closeBtn.hit(mx, my) || m.cancelBtn.hit(mx, my):
		e.Close()
	case m.minimizeBtn.hit(mx, my):
		e.ToggleMinimize()
	case m.addMarkerBtn.hit(mx, my):
		e.ToggleAddingMarker()
	case m.saveBtn.hit(mx, my):
		if err := e.Save(); err != nil {
			a.alert(err.Error())
		}
	case e.Mode() == modeEdit && m.deleteBtn.hit(mx, my):
		if a.confirm(fmt.Sprintf("Smazat frakci %q?", e.draft.Name)) {
			e.ConfirmedDelete()
		}
	case m.nameBox.hit(mx, my):
		e.focus = fieldName
	case m.categoryBox.hit(mx, my):
		e.CycleCategory()
	case m.urlBox.hit(mx, my):
		e.focus = fieldURL
	case m.imgBox.hit(mx, my):
		e.focus = fieldImg
	case m.descBox.hit(mx, my):
		e.focus = fieldDesc
	default:
		m.handleRowClick(mx, my)
	}
	return true
}

func (m *editorView) handleRowClick(mx, my int) {
	e := m.app.editor
	palette := markerPalette()
	for _, row := range m.rows {
		if row.delete.hit(mx, my) {
			e.RemoveMarker(row.markerID)
			return
		}
		for i, sw := range row.swatches {
			if sw.hit(mx, my) {
				e.SetMarkerColor(row.markerID, palette[i])
				return
			}
		}
	}
}

func (m *editorView) draw(screen *ebiten.Image) {
	e := m.app.editor
	if !e.Opened() {
		return
	}
	m.layout()

	if e.Minimized() {
		m.drawDock(screen)
		return
	}

	vector.DrawFilledRect(screen, float32(m.box.x), float32(m.box.y), float32(m.box.w), float32(m.box.h), panelBg, true)
	vector.StrokeRect(screen, float32(m.box.x), float32(m.box.y), float32(m.box.w), float32(m.box.h), 1, color.RGBA{255, 255, 255, 40}, true)

	text.Draw(screen, e.Title(), basicfont.Face7x13, m.box.x+pad, m.box.y+21, color.White)
	m.drawSmallButton(screen, m.closeBtn, "✕", buttonBg)
	m.drawSmallButton(screen, m.minimizeBtn, "Zmenšit", buttonBg)

	m.drawField(screen, m.nameBox, "Název", e.draft.Name, fieldName)
	m.drawField(screen, m.categoryBox, "Kategorie (klikni pro změnu)", m.app.store.CategoryName(e.draft.Category), fieldNone)
	m.drawField(screen, m.urlBox, "Odkaz (URL)", e.draft.URL, fieldURL)
	m.drawField(screen, m.imgBox, "Obrázek (URL)", e.draft.Img, fieldImg)
	m.drawField(screen, m.descBox, "Popis", e.draft.Desc, fieldDesc)

	toggleLabel := "+ Přidat marker (klikni do mapy)"
	toggleBg := buttonBg
	if e.AddingMarker() {
		toggleLabel = "✔ Režim přidávání (klikej do mapy)"
		toggleBg = goodBg
	}
	m.drawSmallButton(screen, m.addMarkerBtn, toggleLabel, toggleBg)

	m.drawRows(screen)

	hintY := m.saveBtn.y - 12
	text.Draw(screen, truncate(e.Hint(), 48), basicfont.Face7x13, m.box.x+pad, hintY, mutedText)

	m.drawSmallButton(screen, m.saveBtn, "Uložit", goodBg)
	m.drawSmallButton(screen, m.cancelBtn, "Zrušit", buttonBg)
	if e.Mode() == modeEdit {
		m.drawSmallButton(screen, m.deleteBtn, "Smazat", dangerBg)
	}
}

func (m *editorView) drawRows(screen *ebiten.Image) {
	e := m.app.editor

	if len(e.draft.Markers) == 0 {
		first := m.addMarkerBtn.y + buttonH + 8
		text.Draw(screen, "Zatím žádné markery.", basicfont.Face7x13, m.box.x+pad, first+14, faintText)
		return
	}

	shown := e.draft.Markers
	if len(shown) > maxRows {
		shown = shown[m.rowScroll : m.rowScroll+maxRows]
	}
	for i, mk := range shown {
		row := m.rows[i]
		ry := row.delete.y - 4 + rowH/2
		coords := fmt.Sprintf("x=%.0f y=%.0f", mk.X, mk.Y)
		text.Draw(screen, coords, basicfont.Face7x13, m.box.x+pad, ry+4, mutedText)

		for j, sw := range row.swatches {
			clr := parseCSSColor(markerPalette()[j])
			vector.DrawFilledRect(screen, float32(sw.x), float32(sw.y), float32(sw.w), float32(sw.h), clr, true)
			if markerPalette()[j] == mk.Color {
				vector.StrokeRect(screen, float32(sw.x-2), float32(sw.y-2), float32(sw.w+4), float32(sw.h+4), 1, color.White, true)
			}
		}
		m.drawSmallButton(screen, row.delete, "Smazat", dangerBg)
	}
	if len(e.draft.Markers) > maxRows {
		note := fmt.Sprintf("… %d markerů celkem (kolečkem posouvej)", len(e.draft.Markers))
		last := m.rows[len(m.rows)-1]
		text.Draw(screen, note, basicfont.Face7x13, m.box.x+pad, last.delete.y+rowH+8, faintText)
	}
}

func (m *editorView) drawDock(screen *ebiten.Image) {
	e := m.app.editor

	vector.DrawFilledRect(screen, float32(m.dock.x), float32(m.dock.y), float32(m.dock.w), float32(m.dock.h), panelBg, true)
	vector.StrokeRect(screen, float32(m.dock.x), float32(m.dock.y), float32(m.dock.w), float32(m.dock.h), 1, color.RGBA{255, 255, 255, 40}, true)

	if e.AddingMarker() {
		m.drawSmallButton(screen, m.dockToggle, "✔ Režim přidávání", goodBg)
	} else {
		text.Draw(screen, e.Title(), basicfont.Face7x13, m.dock.x+10, m.dock.y+24, color.White)
	}
	m.drawSmallButton(screen, m.restoreBtn, "Zpět", buttonBg)
}

func (m *editorView) drawField(screen *ebiten.Image, r rect, label, value string, f editorField) {
	e := m.app.editor

	text.Draw(screen, label, basicfont.Face7x13, r.x, r.y-4, faintText)
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), cardBg, true)
	border := color.RGBA{255, 255, 255, 40}
	if f != fieldNone && e.focus == f {
		border = chipActiveBg
		value += "_"
	}
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, border, true)
	text.Draw(screen, truncate(value, 44), basicfont.Face7x13, r.x+8, r.y+16, color.White)
}

func (m *editorView) drawSmallButton(screen *ebiten.Image, r rect, label string, bg color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), bg, true)
	tw := 7 * len([]rune(label))
	x := r.x + (r.w-tw)/2
	if x < r.x+4 {
		x = r.x + 4
	}
	text.Draw(screen, label, basicfont.Face7x13, x, r.y+r.h/2+5, color.White)
}
