// Package tiles draws the pre-rendered map tile pyramid. Generating the
// pyramid is someone else's job; this package only reads what a deployment
// ships under its atlas directory.
package tiles

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// TileSize is the edge length of one tile in pixels.
const TileSize = 256

type tileKey struct {
	Z, X, Y int
}

// Atlas lazily loads and caches tiles named <z>-<x>_<y>.png. Missing tiles
// are remembered so the disk is probed once per key.
type Atlas struct {
	dir     string
	minZoom int
	maxZoom int
	log     *zap.Logger

	cache   map[tileKey]*ebiten.Image
	missing map[tileKey]bool
}

func New(dir string, minZoom, maxZoom int, log *zap.Logger) *Atlas {
	return &Atlas{
		dir:     dir,
		minZoom: minZoom,
		maxZoom: maxZoom,
		log:     log,
		cache:   make(map[tileKey]*ebiten.Image),
		missing: make(map[tileKey]bool),
	}
}

// TilePath returns the on-disk location of one tile.
func TilePath(dir string, z, x, y int) string {
	return filepath.Join(dir, fmt.Sprintf("%d-%d_%d.png", z, x, y))
}

// levelFor picks the integer pyramid level closest to a fractional zoom.
func levelFor(zoom float64, minZoom, maxZoom int) int {
	z := int(math.Round(zoom))
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	return z
}

// visibleRange returns the half-open tile index range [first, last) covering
// screen span [0, size) when tile index 0 starts at screen offset origin and
// each tile is step pixels wide.
func visibleRange(origin, step float64, size int) (int, int) {
	first := int(math.Floor(-origin / step))
	last := int(math.Ceil((float64(size) - origin) / step))
	if first < 0 {
		first = 0
	}
	if last < first {
		last = first
	}
	return first, last
}

// Draw renders every tile intersecting the screen. scale is screen pixels
// per plane unit; (originX, originY) is the screen position of plane (0,0).
// Tiles that fail to load are skipped, never fatal.
func (a *Atlas) Draw(screen *ebiten.Image, scale, originX, originY float64) {
	z := levelFor(math.Log2(scale), a.minZoom, a.maxZoom)

	// One tile covers TileSize pixels at its own level; rescale to the
	// fractional view zoom.
	factor := scale / math.Exp2(float64(z))
	step := TileSize * factor

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	x0, x1 := visibleRange(originX, step, w)
	y0, y1 := visibleRange(originY, step, h)

	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			img := a.tile(z, tx, ty)
			if img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(factor, factor)
			op.GeoM.Translate(originX+float64(tx)*step, originY+float64(ty)*step)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(img, op)
		}
	}
}

func (a *Atlas) tile(z, x, y int) *ebiten.Image {
	key := tileKey{z, x, y}
	if img, ok := a.cache[key]; ok {
		return img
	}
	if a.missing[key] {
		return nil
	}

	path := TilePath(a.dir, z, x, y)
	f, err := os.Open(path)
	if err != nil {
		a.missing[key] = true
		if !errors.Is(err, fs.ErrNotExist) {
			a.log.Warn("tile unreadable", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		a.missing[key] = true
		a.log.Warn("tile undecodable", zap.String("path", path), zap.Error(err))
		return nil
	}

	img := ebiten.NewImageFromImage(src)
	a.cache[key] = img
	return img
}
