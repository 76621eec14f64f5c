// Package style maps the opaque style-option identifiers chosen in a picker
// UI to the semantic render primitives the matrix renderer consumes. Three
// catalogues exist (dots, corner squares, corner dots) and are resolved
// independently: a malformed id in one never invalidates the others.
package style

// Option ties a picker id to its display icon and the semantic type string
// consumed by the renderer.
type Option struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

// Catalogue is a static, ordered option table. The first entry is the
// documented default for unknown ids.
type Catalogue struct {
	name    string
	options []Option
}

// Resolve returns the semantic type for a picker id. Unknown ids resolve to
// the catalogue's first entry's type; Resolve never fails.
func (c Catalogue) Resolve(id string) string {
	for _, o := range c.options {
		if o.ID == id {
			return o.Type
		}
	}
	return c.options[0].Type
}

// IDForType is the inverse lookup, used only for display (pre-selecting the
// picker when editing a saved QR). Unknown types map to the default entry.
func (c Catalogue) IDForType(semanticType string) string {
	for _, o := range c.options {
		if o.Type == semanticType {
			return o.ID
		}
	}
	return c.options[0].ID
}

// Default returns the catalogue's default option.
func (c Catalogue) Default() Option { return c.options[0] }

// Options returns the catalogue entries in display order.
func (c Catalogue) Options() []Option { return c.options }

// Name identifies the catalogue in logs and API responses.
func (c Catalogue) Name() string { return c.name }

// Dots styles the data modules.
var Dots = Catalogue{
	name: "dots",
	options: []Option{
		{ID: "dots-square", Icon: "icons/dots-square.svg", Type: "square"},
		{ID: "dots-rounded", Icon: "icons/dots-rounded.svg", Type: "rounded"},
		{ID: "dots-circle", Icon: "icons/dots-circle.svg", Type: "dots"},
		{ID: "dots-liquid", Icon: "icons/dots-liquid.svg", Type: "liquid"},
		{ID: "dots-chain", Icon: "icons/dots-chain.svg", Type: "chain"},
	},
}

// CornerSquares styles the outer ring of the three finder patterns.
var CornerSquares = Catalogue{
	name: "corner-squares",
	options: []Option{
		{ID: "corner-square-square", Icon: "icons/corner-square-square.svg", Type: "square"},
		{ID: "corner-square-rounded", Icon: "icons/corner-square-rounded.svg", Type: "rounded"},
		{ID: "corner-square-extra-rounded", Icon: "icons/corner-square-extra-rounded.svg", Type: "extra-rounded"},
		{ID: "corner-square-dot", Icon: "icons/corner-square-dot.svg", Type: "dot"},
	},
}

// CornerDots styles the center of the three finder patterns.
var CornerDots = Catalogue{
	name: "corner-dots",
	options: []Option{
		{ID: "corner-dot-square", Icon: "icons/corner-dot-square.svg", Type: "square"},
		{ID: "corner-dot-rounded", Icon: "icons/corner-dot-rounded.svg", Type: "rounded"},
		{ID: "corner-dot-dot", Icon: "icons/corner-dot-dot.svg", Type: "dot"},
	},
}
