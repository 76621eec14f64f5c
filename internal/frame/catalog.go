package frame

// Template describes one decorative frame asset. Each template positions its
// QR window differently, so the scale and offsets applied to the embedded QR
// group are per-template constants tuned against the asset's geometry.
type Template struct {
	ID  string
	URL string

	// Caption metrics. DeclaredFontSize is the size authored into the
	// template's text anchor; the compositor only ever shrinks from it.
	DeclaredFontSize float64
	LabelMaxWidth    float64

	// QR window placement within the template's viewBox.
	Scale   float64
	OffsetX float64
	OffsetY float64
}

const (
	// Side length of the square design space templates are authored in. The
	// per-template scale and offsets are expressed in these units.
	designSpan = 300

	// Anchor ids the engine looks for inside a template.
	accentAnchorID = "qrstudio-accent"
	labelAnchorID  = "qrstudio-label"

	// Secondary fill is the frame color blended toward white.
	accentLightenPercent = 40

	// Caption shrink floor.
	labelMinFontSize = 8
)

var templates = []Template{
	{
		ID:               "frame-scan-me",
		URL:              "frames/scan-me.svg",
		DeclaredFontSize: 28,
		LabelMaxWidth:    200,
		Scale:            0.78,
		OffsetX:          33,
		OffsetY:          33,
	},
	{
		ID:               "frame-badge",
		URL:              "frames/badge.svg",
		DeclaredFontSize: 24,
		LabelMaxWidth:    180,
		Scale:            0.72,
		OffsetX:          42,
		OffsetY:          24,
	},
	{
		ID:               "frame-ribbon",
		URL:              "frames/ribbon.svg",
		DeclaredFontSize: 26,
		LabelMaxWidth:    190,
		Scale:            0.75,
		OffsetX:          37,
		OffsetY:          48,
	},
}

// Lookup resolves a frame id to its template descriptor.
func Lookup(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Templates lists the available frames for picker UIs.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}
