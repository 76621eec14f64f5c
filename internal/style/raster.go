package style

import (
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// RasterShapeOptions maps a resolved dots type onto the raster writer's
// shape options. Types the raster writer cannot express (rounded) keep the
// default rectangular modules.
func RasterShapeOptions(dotsType string) []standard.ImageOption {
	switch dotsType {
	case "dots":
		return []standard.ImageOption{standard.WithCircleShape()}
	case "liquid":
		return []standard.ImageOption{standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()})}
	case "chain":
		return []standard.ImageOption{standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()})}
	default:
		return nil
	}
}

// customShape adapts a drawing function from the shapes package to the
// writer's IShape interface.
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// DrawFinder reuses the same drawing function for finder patterns.
func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}
