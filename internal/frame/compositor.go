// Package frame composites a rendered QR vector graphic with a decorative
// frame template: template acquisition through a shared cache, clone and
// recolor, caption fitting, and QR embedding into the frame's coordinate
// space. A broken frame never prevents the QR from rendering; every failure
// degrades to the unframed graphic.
package frame

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrstudio/internal/customize"
)

// Compositor merges QR graphics with frame templates. It is stateless
// between calls except for the injected template cache.
type Compositor struct {
	cache    *TemplateCache
	measurer Measurer
	logger   *zap.Logger
}

// NewCompositor wires a compositor. The cache is shared process-wide; the
// measurer backs caption fitting.
func NewCompositor(cache *TemplateCache, measurer Measurer, logger *zap.Logger) *Compositor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compositor{cache: cache, measurer: measurer, logger: logger}
}

// Composite returns the QR graphic merged with the selected frame, sized to
// size logical pixels. With no active frame the input document is returned
// untouched. Template fetch or anchor failures log a warning and return the
// unframed QR, since the QR payload is the functionally critical output.
func (c *Compositor) Composite(ctx context.Context, qr *etree.Document, f customize.Frame, size int) *etree.Document {
	if !f.Active() {
		return qr
	}

	tpl, ok := Lookup(f.ID)
	if !ok {
		c.logger.Warn("unknown frame id, rendering unframed", zap.String("frame", f.ID))
		return qr
	}

	cached, err := c.cache.Get(ctx, tpl.URL)
	if err != nil {
		c.logger.Warn("frame template unavailable, rendering unframed",
			zap.String("frame", f.ID), zap.Error(err))
		return qr
	}

	qrRoot := qr.Root()
	if qrRoot == nil {
		c.logger.Warn("QR graphic has no root element, rendering unframed", zap.String("frame", f.ID))
		return qr
	}

	// Never mutate the cached original; it is shared across sessions.
	clone := cached.Copy()
	frameRoot := clone.Root()
	frameRoot.CreateAttr("width", strconv.Itoa(size))
	frameRoot.CreateAttr("height", strconv.Itoa(size))

	c.recolor(clone, frameRoot, f)
	c.fitLabel(clone, tpl, f)

	// Templates are authored in a fixed design space; the QR graphic arrives
	// in its own units. Rehome the document in the design space and fold the
	// unit conversion into the placement transform.
	span := viewBoxSpan(qrRoot)
	qrRoot.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", designSpan, designSpan))

	transform := fmt.Sprintf("scale(%s) translate(%s, %s)",
		fmtFloat(tpl.Scale), fmtFloat(tpl.OffsetX), fmtFloat(tpl.OffsetY))
	if k := float64(designSpan) / span; span > 0 && k != 1 {
		transform += fmt.Sprintf(" scale(%s)", fmtFloat(k))
	}

	// Wrap the QR's children in a group placed inside the frame's QR window,
	// then append the frame after it so the frame's opaque regions occlude
	// the QR margins outside the window.
	group := etree.NewElement("g")
	group.CreateAttr("transform", transform)
	for _, child := range qrRoot.ChildElements() {
		group.AddChild(child)
	}
	qrRoot.AddChild(group)
	qrRoot.AddChild(frameRoot)

	return qr
}

// viewBoxSpan extracts the width of an element's viewBox, or 0 when absent.
func viewBoxSpan(el *etree.Element) float64 {
	fields := strings.Fields(el.SelectAttrValue("viewBox", ""))
	if len(fields) != 4 {
		return 0
	}
	span, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0
	}
	return span
}

// recolor sets the template's primary color and, when the template exposes
// the secondary-fill anchor, a lightened variant of the same color.
func (c *Compositor) recolor(clone *etree.Document, frameRoot *etree.Element, f customize.Frame) {
	primary := FormatHex(ParseHex(f.Color, color.RGBA{0, 0, 0, 255}))
	frameRoot.CreateAttr("fill", primary)

	if accent := clone.FindElement("//*[@id='" + accentAnchorID + "']"); accent != nil {
		accent.CreateAttr("fill", LightenHex(primary, accentLightenPercent))
	}
}

// fitLabel writes the caption into the template's text anchor and shrinks
// its font size until the measured width fits the template's label box.
func (c *Compositor) fitLabel(clone *etree.Document, tpl Template, f customize.Frame) {
	label := clone.FindElement("//*[@id='" + labelAnchorID + "']")
	if label == nil {
		return
	}

	text := f.Text
	if strings.TrimSpace(text) == "" {
		// A single blank keeps the text node from collapsing.
		text = " "
	}
	label.SetText(text)

	fitted := FitLabelSize(c.measurer, text, tpl.DeclaredFontSize, tpl.LabelMaxWidth)
	label.CreateAttr("font-size", fmtFloat(fitted))

	if f.TextColor != "" {
		label.CreateAttr("fill", FormatHex(ParseHex(f.TextColor, color.RGBA{255, 255, 255, 255})))
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
