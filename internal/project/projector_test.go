package project

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraphic(t *testing.T) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10">`+
			`<rect width="10" height="10" fill="#ffffff"/>`+
			`<rect x="2" y="2" width="6" height="6" fill="#000000"/>`+
			`</svg>`))
	return doc
}

func TestRasterize_ProducesPixelSquare(t *testing.T) {
	img, err := Rasterize(testGraphic(t), 40)

	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	// Center should be dark, corner light.
	r, g, b, _ := img.At(20, 20).RGBA()
	assert.Zero(t, r|g|b)
	r, _, _, _ = img.At(1, 1).RGBA()
	assert.NotZero(t, r)
}

func TestRasterize_InvalidSize(t *testing.T) {
	_, err := Rasterize(testGraphic(t), 0)

	assert.Error(t, err)
}

func TestProjector_ResizeClampsToBounds(t *testing.T) {
	p := NewProjector(80, 400, 1, nil)
	require.NoError(t, p.SetGraphic(testGraphic(t)))

	p.Resize(20, 20)
	require.NoError(t, p.RenderNow())
	assert.Equal(t, 80, p.Image().Bounds().Dx())

	p.Resize(5000, 5000)
	require.NoError(t, p.RenderNow())
	assert.Equal(t, 400, p.Image().Bounds().Dx())
}

func TestProjector_DevicePixelRatioScalesRaster(t *testing.T) {
	p := NewProjector(80, 400, 2, nil)
	require.NoError(t, p.SetGraphic(testGraphic(t)))
	p.Resize(100, 150)

	require.NoError(t, p.RenderNow())

	// Logical 100 (smaller edge) at DPR 2.
	assert.Equal(t, 200, p.Image().Bounds().Dx())
}

func TestProjector_DebouncedRenderEventuallyLands(t *testing.T) {
	p := NewProjector(80, 400, 1, nil)
	p.Resize(120, 120)

	// Rapid successive updates; only the latest projection matters.
	for i := 0; i < 5; i++ {
		require.NoError(t, p.SetGraphic(testGraphic(t)))
	}

	assert.Eventually(t, func() bool {
		img := p.Image()
		return img != nil && img.Bounds().Dx() == 120
	}, 2*time.Second, 10*time.Millisecond)
}

func TestProjector_ImageNilBeforeFirstRender(t *testing.T) {
	p := NewProjector(80, 400, 1, nil)

	assert.Nil(t, p.Image())
}

func TestProjector_RenderNowWithoutGraphicIsNoop(t *testing.T) {
	p := NewProjector(80, 400, 1, nil)

	require.NoError(t, p.RenderNow())
	assert.Nil(t, p.Image())
}

// Guards against regressions in background drawing: a graphic with a white
// background must not leave transparent pixels.
func TestRasterize_BackgroundOpaque(t *testing.T) {
	img, err := Rasterize(testGraphic(t), 40)

	require.NoError(t, err)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}
