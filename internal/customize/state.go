// Package customize defines the four-part value object describing a QR's
// visual appearance, its defaults, normalization rules and storage form.
package customize

import "encoding/json"

// FrameNone is the frame id meaning "no frame". When it is active the other
// frame fields are unset.
const FrameNone = "frame-none"

// Frame selects a decorative frame template and its recolor/caption values.
type Frame struct {
	ID        string `json:"id"`
	Color     string `json:"color,omitempty"`
	TextColor string `json:"textColor,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Active reports whether a real frame is selected.
func (f Frame) Active() bool { return f.ID != "" && f.ID != FrameNone }

// Style selects the data-module shape and colors. BackgroundColor is
// meaningless while a frame is active, since the frame supplies the
// background; renderers must ignore it in that case.
type Style struct {
	DotsStyle       string `json:"dotsStyle"`
	ForegroundColor string `json:"foregroundColor"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Shape selects the finder-pattern styles.
type Shape struct {
	CornerSquareStyle string `json:"cornerSquareStyle"`
	CornerDotStyle    string `json:"cornerDotStyle"`
}

// LogoType tags the logo sub-record variant.
type LogoType string

const (
	LogoNone      LogoType = "none"
	LogoSuggested LogoType = "suggested"
	LogoUploaded  LogoType = "uploaded"
)

// Logo is a tagged union. For the uploaded variant exactly one of File and
// FileID is meaningful: File carries a not-yet-persisted in-memory upload
// and is never serialized, FileID references a stored file.
type Logo struct {
	Type   LogoType `json:"type"`
	ID     string   `json:"id,omitempty"`
	File   []byte   `json:"-"`
	FileID string   `json:"fileId,omitempty"`
}

// State is the full customization of one QR. It is created with defaults on
// builder entry, mutated per selector interaction, and serialized into the
// storage form on save.
type State struct {
	Frame Frame `json:"frame"`
	Style Style `json:"style"`
	Shape Shape `json:"shape"`
	Logo  Logo  `json:"logo"`
}

// Default is the state a fresh QR builder session starts from.
func Default() State {
	return State{
		Frame: Frame{ID: FrameNone},
		Style: Style{
			DotsStyle:       "dots-square",
			ForegroundColor: "#000000",
			BackgroundColor: "#ffffff",
		},
		Shape: Shape{
			CornerSquareStyle: "corner-square-square",
			CornerDotStyle:    "corner-dot-square",
		},
		Logo: Logo{Type: LogoNone},
	}
}

// Normalized enforces the cross-field invariants: frame-none clears the
// frame's color, text color and text; a logo transition to none clears both
// file references; a suggested logo carries only its catalogue id; an
// uploaded logo with a persisted reference drops the transient bytes.
func (s State) Normalized() State {
	out := s

	if out.Frame.ID == "" {
		out.Frame.ID = FrameNone
	}
	if !out.Frame.Active() {
		out.Frame = Frame{ID: FrameNone}
	}

	switch out.Logo.Type {
	case LogoSuggested:
		out.Logo.File = nil
		out.Logo.FileID = ""
	case LogoUploaded:
		out.Logo.ID = ""
		if out.Logo.FileID != "" {
			out.Logo.File = nil
		}
	default:
		out.Logo = Logo{Type: LogoNone}
	}

	return out
}

// MarshalStorage serializes the state for persistence. The transient logo
// bytes never reach storage; an uploaded logo persists only its FileID.
func (s State) MarshalStorage() ([]byte, error) {
	return json.Marshal(s.Normalized())
}

// FromStorage reconstructs a state saved by MarshalStorage.
func FromStorage(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s.Normalized(), nil
}
