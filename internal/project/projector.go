// Package project rasterizes the current vector QR graphic onto a
// device-pixel-ratio-correct bitmap sized to its container. Vector graphics
// cannot be drawn straight into a raster context, so projection serializes
// the document and replays it through an SVG rasterizer.
package project

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

// Defaults for the clamped projection square.
const (
	DefaultMinSize = 80
	DefaultMaxSize = 1024

	// debounceDelay coalesces rapid successive updates (color picker
	// dragging); only the most recent scheduled render matters since
	// draws are idempotent overwrites.
	debounceDelay = 30 * time.Millisecond
)

// Projector keeps a raster projection of a vector graphic in sync with its
// container size.
type Projector struct {
	logger *zap.Logger

	minSize int
	maxSize int
	dpr     float64
	delay   time.Duration

	mu   sync.Mutex
	gen  uint64
	svg  string
	size int
	img  *image.RGBA
}

// NewProjector builds a projector. dpr is the device pixel ratio the raster
// output compensates for; values below 1 are treated as 1.
func NewProjector(minSize, maxSize int, dpr float64, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dpr < 1 {
		dpr = 1
	}
	return &Projector{
		logger:  logger,
		minSize: minSize,
		maxSize: maxSize,
		dpr:     dpr,
		delay:   debounceDelay,
		size:    minSize,
	}
}

// SetGraphic replaces the projected vector graphic and schedules a render.
func (p *Projector) SetGraphic(doc *etree.Document) error {
	text, err := doc.WriteToString()
	if err != nil {
		return fmt.Errorf("project: serialize graphic: %w", err)
	}

	p.mu.Lock()
	p.svg = text
	p.scheduleLocked()
	p.mu.Unlock()

	return nil
}

// Resize observes a new container size. The projection square is the
// smaller container edge clamped to the configured bounds.
func (p *Projector) Resize(width, height int) {
	size := width
	if height < size {
		size = height
	}
	if size < p.minSize {
		size = p.minSize
	}
	if size > p.maxSize {
		size = p.maxSize
	}

	p.mu.Lock()
	if size != p.size {
		p.size = size
		p.scheduleLocked()
	}
	p.mu.Unlock()
}

// Image returns the most recent projection, or nil before the first render
// completes.
func (p *Projector) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img
}

// RenderNow performs a projection immediately, bypassing the debounce. The
// HTTP export path uses this; interactive callers rely on the scheduler.
func (p *Projector) RenderNow() error {
	p.mu.Lock()
	gen := p.gen + 1
	p.gen = gen
	p.mu.Unlock()
	return p.render(gen)
}

// scheduleLocked bumps the generation and arms a short-delayed render for
// it. Callers must hold mu.
func (p *Projector) scheduleLocked() {
	p.gen++
	gen := p.gen
	time.AfterFunc(p.delay, func() {
		if err := p.render(gen); err != nil {
			p.logger.Warn("projection failed", zap.Error(err))
		}
	})
}

// render rasterizes the current graphic unless a newer schedule superseded
// this generation.
func (p *Projector) render(gen uint64) error {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return nil
	}
	svg := p.svg
	pixels := int(float64(p.size) * p.dpr)
	p.mu.Unlock()

	if svg == "" {
		return nil
	}

	img, err := rasterize(svg, pixels)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// A newer render was scheduled while this one drew; drop it.
		return nil
	}
	p.img = img
	return nil
}

// Rasterize projects a vector document onto a fresh bitmap of the given
// pixel size, without projector state.
func Rasterize(doc *etree.Document, pixels int) (*image.RGBA, error) {
	text, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("project: serialize graphic: %w", err)
	}
	return rasterize(text, pixels)
}

func rasterize(svgText string, pixels int) (*image.RGBA, error) {
	if pixels <= 0 {
		return nil, fmt.Errorf("project: invalid raster size %d", pixels)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svgText))
	if err != nil {
		return nil, fmt.Errorf("project: parse graphic: %w", err)
	}
	icon.SetTarget(0, 0, float64(pixels), float64(pixels))

	img := image.NewRGBA(image.Rect(0, 0, pixels, pixels))
	scanner := rasterx.NewScannerGV(pixels, pixels, img, img.Bounds())
	raster := rasterx.NewDasher(pixels, pixels, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
