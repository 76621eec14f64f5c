package frame

import (
	"github.com/fogleman/gg"
)

// Measurer reports the rendered pixel width of text at a font size. The
// production implementation measures through an off-screen drawing context;
// tests substitute a deterministic fake.
type Measurer interface {
	MeasureWidth(text string, fontSize float64) (float64, error)
}

// FontMeasurer measures text with an off-screen gg context using a TTF font
// from disk.
type FontMeasurer struct {
	fontPath string
}

// NewFontMeasurer builds a measurer for the given font file.
func NewFontMeasurer(fontPath string) *FontMeasurer {
	return &FontMeasurer{fontPath: fontPath}
}

// MeasureWidth loads the face at the requested size and measures the string.
func (m *FontMeasurer) MeasureWidth(text string, fontSize float64) (float64, error) {
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(m.fontPath, fontSize); err != nil {
		return 0, err
	}
	w, _ := dc.MeasureString(text)
	return w, nil
}

// FitLabelSize shrinks a caption's font size in integer steps, starting from
// the template's declared size, until the measured width fits maxWidth or
// the size reaches the floor. Text that already fits keeps the declared
// size; the size never grows past it, even when the declared size is already
// at or below the floor.
func FitLabelSize(m Measurer, text string, declared, maxWidth float64) float64 {
	if declared <= labelMinFontSize {
		return declared
	}
	size := declared
	for size > labelMinFontSize {
		w, err := m.MeasureWidth(text, size)
		if err != nil {
			w = estimateWidth(text, size)
		}
		if w <= maxWidth {
			return size
		}
		size--
	}
	return labelMinFontSize
}

// estimateWidth approximates the advance width when no font is available, so
// a missing font file degrades the fit rather than blocking compositing.
func estimateWidth(text string, fontSize float64) float64 {
	return 0.6 * fontSize * float64(len([]rune(text)))
}
