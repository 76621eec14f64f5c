package render

import "image/color"

// DefaultSize is the baseline logical output size in pixels. Every render
// starts from this; projection to other display sizes happens downstream.
const DefaultSize = 300

// quietZoneModules is the fixed margin around the matrix, in module units.
const quietZoneModules = 2

// Options are the semantic render primitives derived from a Customization
// State: resolved shape types, parsed colors and the resolved logo image.
type Options struct {
	Size int

	DotsType         string
	CornerSquareType string
	CornerDotType    string

	Foreground color.RGBA
	Background color.RGBA
	// FrameActive hides the background: the frame supplies it.
	FrameActive bool

	// LogoDataURI is the resolved center image, inlined so rendering cannot
	// hit cross-origin or not-found failures. LogoPNG carries the raw bytes
	// when they are available for the raster export path.
	LogoDataURI string
	LogoPNG     []byte
}
