// Package render owns the logical QR renderer for one customization
// session: it recomputes render options on every customization change,
// resolves logo images, builds the vector graphic and hands it to the frame
// compositor when a frame is active.
package render

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/internal/customize"
	"github.com/cristianadrielbraun/qrstudio/internal/frame"
	"github.com/cristianadrielbraun/qrstudio/internal/payload"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
)

// Pipeline synchronizes render options with the latest Customization State.
// Style and shape updates apply synchronously in issue order; logo
// resolution may suspend on I/O, so each Apply carries a generation and a
// resolution whose generation is no longer current is dropped at apply time
// rather than cancelled in flight.
type Pipeline struct {
	compositor *frame.Compositor
	codec      payload.Codec
	fetch      Fetcher
	logger     *zap.Logger

	gen atomic.Uint64

	mu    sync.Mutex
	state customize.State
	opts  Options
}

// NewPipeline builds a pipeline with the baseline configuration and the
// defaults of a fresh customization state.
func NewPipeline(compositor *frame.Compositor, codec payload.Codec, fetch Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		compositor: compositor,
		codec:      codec,
		fetch:      fetch,
		logger:     logger,
	}
	p.Apply(context.Background(), customize.Default())
	return p
}

// Apply pushes a customization state into the pipeline. Updates are
// last-request-wins end to end: the synchronous portion (colors, shapes,
// frame flag) is dropped when a newer Apply claimed its generation first,
// and a logo resolution that finishes after a newer Apply is discarded at
// apply time.
func (p *Pipeline) Apply(ctx context.Context, s customize.State) {
	s = s.Normalized()
	gen := p.gen.Add(1)

	p.mu.Lock()
	if gen != p.gen.Load() {
		// A newer customization claimed its generation before this one
		// reached the renderer; drop the whole update.
		p.mu.Unlock()
		return
	}
	p.state = s
	p.opts.Size = DefaultSize
	p.opts.DotsType = style.Dots.Resolve(s.Style.DotsStyle)
	p.opts.CornerSquareType = style.CornerSquares.Resolve(s.Shape.CornerSquareStyle)
	p.opts.CornerDotType = style.CornerDots.Resolve(s.Shape.CornerDotStyle)
	p.opts.Foreground = frame.ParseHex(s.Style.ForegroundColor, color.RGBA{0, 0, 0, 255})
	p.opts.Background = frame.ParseHex(s.Style.BackgroundColor, color.RGBA{255, 255, 255, 255})
	p.opts.FrameActive = s.Frame.Active()
	p.mu.Unlock()

	uri, raw := p.resolveLogo(ctx, s.Logo)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen.Load() {
		// A newer customization superseded this one while the logo
		// resolved; discard silently.
		return
	}
	p.opts.LogoDataURI = uri
	p.opts.LogoPNG = raw
}

// Current returns the render options in effect.
func (p *Pipeline) Current() Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts
}

// State returns the customization state last applied.
func (p *Pipeline) State() customize.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Render produces the vector graphic for a payload string under the current
// options, composited with the active frame if one is selected.
func (p *Pipeline) Render(ctx context.Context, content string) (*etree.Document, error) {
	qrc, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		return nil, fmt.Errorf("render: encode matrix: %w", err)
	}

	bitmap, err := matrixBitmap(qrc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	p.mu.Lock()
	o := p.opts
	st := p.state
	p.mu.Unlock()

	doc := buildVector(bitmap, o)
	if st.Frame.Active() {
		doc = p.compositor.Composite(ctx, doc, st.Frame, o.Size)
	}
	return doc, nil
}

// ExportPNG writes a raster render of the payload to w through the matrix
// library's own writer, used as the frameless high-resolution download path.
func (p *Pipeline) ExportPNG(content string, w io.Writer, highRes bool) error {
	p.mu.Lock()
	o := p.opts
	p.mu.Unlock()

	qrc, err := qrcode.NewWith(content, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		return fmt.Errorf("export: encode matrix: %w", err)
	}

	var moduleSize uint8 = 16
	if highRes {
		moduleSize = 120
	}

	imageOpts := []standard.ImageOption{
		standard.WithQRWidth(moduleSize),
		standard.WithBorderWidth(int(moduleSize) * quietZoneModules),
		standard.WithFgColor(o.Foreground),
		standard.WithBgColor(o.Background),
	}
	imageOpts = append(imageOpts, style.RasterShapeOptions(o.DotsType)...)

	if len(o.LogoPNG) > 0 {
		logoPath, cleanup, err := spillLogo(o.LogoPNG)
		if err != nil {
			p.logger.Warn("could not stage logo for raster export", zap.Error(err))
		} else {
			defer cleanup()
			imageOpts = append(imageOpts, standard.WithLogoImageFilePNG(logoPath))
		}
	}

	tmp := filepath.Join(os.TempDir(), "qrstudio_export_"+uuid.NewString()+".png")
	defer os.Remove(tmp)

	writer, err := standard.New(tmp, imageOpts...)
	if err != nil {
		return fmt.Errorf("export: writer: %w", err)
	}
	if err := qrc.Save(writer); err != nil {
		return fmt.Errorf("export: render: %w", err)
	}
	writer.Close()

	f, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("export: read back: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("export: stream: %w", err)
	}
	return nil
}

// assetURL builds the public URL for a stored logo file id.
func (p *Pipeline) assetURL(fileID string) string {
	return p.codec.AssetURL(fileID)
}

// spillLogo stages in-memory logo bytes as a file for the raster writer,
// which only accepts file paths.
func spillLogo(data []byte) (string, func(), error) {
	path := filepath.Join(os.TempDir(), "qrstudio_logo_"+uuid.NewString()+".png")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
