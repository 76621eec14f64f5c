package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/cristianadrielbraun/qrstudio/internal/frame"
)

// finderSpan is the side length of a finder pattern in modules.
const finderSpan = 7

// matrixBitmap extracts the module matrix as a boolean grid by rendering the
// QR at one pixel per module and thresholding the result. The generator does
// not expose its matrix directly; this keeps it a black box.
func matrixBitmap(qrc *qrcode.QRCode) ([][]bool, error) {
	tmp := filepath.Join(os.TempDir(), "qrstudio_matrix_"+uuid.NewString()+".png")
	defer os.Remove(tmp)

	w, err := standard.New(tmp,
		standard.WithQRWidth(1),
		standard.WithBorderWidth(0),
		standard.WithBgColor(color.RGBA{255, 255, 255, 255}),
		standard.WithFgColor(color.RGBA{0, 0, 0, 255}),
	)
	if err != nil {
		return nil, fmt.Errorf("matrix writer: %w", err)
	}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("matrix render: %w", err)
	}
	w.Close()

	f, err := os.Open(tmp)
	if err != nil {
		return nil, fmt.Errorf("matrix read: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("matrix decode: %w", err)
	}

	dim := img.Bounds().Dx()
	bitmap := make([][]bool, dim)
	for y := 0; y < dim; y++ {
		bitmap[y] = make([]bool, dim)
		for x := 0; x < dim; x++ {
			r, _, _, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
			bitmap[y][x] = r < 32768
		}
	}
	return bitmap, nil
}

// buildVector turns a module bitmap into an SVG document. The viewBox is in
// module units so shapes stay crisp at any display size; width and height
// carry the logical pixel size. Finder patterns are drawn as styled glyphs,
// data modules per the resolved dots type.
func buildVector(bitmap [][]bool, o Options) *etree.Document {
	dim := len(bitmap)
	total := dim + 2*quietZoneModules

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", total, total))
	svg.CreateAttr("width", strconv.Itoa(o.Size))
	svg.CreateAttr("height", strconv.Itoa(o.Size))

	bg := frame.FormatHex(o.Background)
	if !o.FrameActive {
		bgRect := svg.CreateElement("rect")
		bgRect.CreateAttr("width", strconv.Itoa(total))
		bgRect.CreateAttr("height", strconv.Itoa(total))
		bgRect.CreateAttr("fill", bg)
	}

	fg := frame.FormatHex(o.Foreground)
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if !bitmap[y][x] || inFinder(x, y, dim) {
				continue
			}
			drawModule(svg, float64(x+quietZoneModules), float64(y+quietZoneModules), o.DotsType, fg)
		}
	}

	for _, origin := range [][2]int{{0, 0}, {dim - finderSpan, 0}, {0, dim - finderSpan}} {
		drawFinder(svg,
			float64(origin[0]+quietZoneModules), float64(origin[1]+quietZoneModules),
			o.CornerSquareType, o.CornerDotType, fg, bg)
	}

	if o.LogoDataURI != "" {
		drawLogo(svg, total, o.LogoDataURI)
	}

	return doc
}

// inFinder reports whether a module belongs to one of the three finder
// patterns, which are drawn as styled glyphs instead of per-module shapes.
func inFinder(x, y, dim int) bool {
	return (x < finderSpan && y < finderSpan) ||
		(x >= dim-finderSpan && y < finderSpan) ||
		(x < finderSpan && y >= dim-finderSpan)
}

func drawModule(svg *etree.Element, x, y float64, dotsType, fill string) {
	switch dotsType {
	case "dots":
		c := svg.CreateElement("circle")
		c.CreateAttr("cx", fmtNum(x+0.5))
		c.CreateAttr("cy", fmtNum(y+0.5))
		c.CreateAttr("r", "0.5")
		c.CreateAttr("fill", fill)
	case "rounded", "liquid", "chain":
		// Liquid and chain are raster-writer patterns; the vector path
		// approximates them with rounded modules.
		r := svg.CreateElement("rect")
		r.CreateAttr("x", fmtNum(x))
		r.CreateAttr("y", fmtNum(y))
		r.CreateAttr("width", "1")
		r.CreateAttr("height", "1")
		r.CreateAttr("rx", "0.25")
		r.CreateAttr("fill", fill)
	default: // square
		r := svg.CreateElement("rect")
		r.CreateAttr("x", fmtNum(x))
		r.CreateAttr("y", fmtNum(y))
		r.CreateAttr("width", "1")
		r.CreateAttr("height", "1")
		r.CreateAttr("fill", fill)
	}
}

// drawFinder renders one finder pattern as three stacked shapes: a 7x7
// outer in the corner-square style, a 5x5 punch in the background color and
// a 3x3 center in the corner-dot style.
func drawFinder(svg *etree.Element, x, y float64, squareType, dotType, fg, bg string) {
	drawFinderShape(svg, x, y, finderSpan, squareType, fg)
	drawFinderShape(svg, x+1, y+1, finderSpan-2, "inner-"+squareType, bg)
	drawFinderShape(svg, x+2, y+2, finderSpan-4, dotType, fg)
}

func drawFinderShape(svg *etree.Element, x, y, span float64, shapeType, fill string) {
	switch shapeType {
	case "dot", "inner-dot":
		c := svg.CreateElement("circle")
		c.CreateAttr("cx", fmtNum(x+span/2))
		c.CreateAttr("cy", fmtNum(y+span/2))
		c.CreateAttr("r", fmtNum(span/2))
		c.CreateAttr("fill", fill)
	default:
		r := svg.CreateElement("rect")
		r.CreateAttr("x", fmtNum(x))
		r.CreateAttr("y", fmtNum(y))
		r.CreateAttr("width", fmtNum(span))
		r.CreateAttr("height", fmtNum(span))
		if rx := finderRadius(shapeType, span); rx > 0 {
			r.CreateAttr("rx", fmtNum(rx))
		}
		r.CreateAttr("fill", fill)
	}
}

// finderRadius picks the corner radius for rounded finder variants,
// proportional to the shape's span.
func finderRadius(shapeType string, span float64) float64 {
	switch shapeType {
	case "rounded", "inner-rounded":
		return span * 0.25
	case "extra-rounded", "inner-extra-rounded":
		return span * 0.5
	}
	return 0
}

// drawLogo places the resolved logo over the matrix center with a white
// backing circle so the logo never sits directly on dark modules.
func drawLogo(svg *etree.Element, total int, dataURI string) {
	span := float64(total) / 5
	center := float64(total) / 2

	backing := svg.CreateElement("circle")
	backing.CreateAttr("cx", fmtNum(center))
	backing.CreateAttr("cy", fmtNum(center))
	backing.CreateAttr("r", fmtNum(span/2+0.5))
	backing.CreateAttr("fill", "#ffffff")

	img := svg.CreateElement("image")
	img.CreateAttr("x", fmtNum(center-span/2))
	img.CreateAttr("y", fmtNum(center-span/2))
	img.CreateAttr("width", fmtNum(span))
	img.CreateAttr("height", fmtNum(span))
	img.CreateAttr("href", dataURI)
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
