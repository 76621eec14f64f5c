// Package payload maps typed form data to the exact byte string embedded in
// a QR symbol, and back. One codec exists per content type; the encode
// direction must round-trip through decode except where a content type's
// external protocol is lossy by definition.
package payload

import (
	"fmt"

	"go.uber.org/zap"
)

// ContentType is the closed enumeration of QR content kinds. It is fixed at
// QR creation time; changing it means creating a new QR.
type ContentType string

const (
	TypeWebsite  ContentType = "website"
	TypeAppLink  ContentType = "app-link"
	TypeSocial   ContentType = "social"
	TypeFeedback ContentType = "feedback"
	TypeWhatsApp ContentType = "whatsapp"
	TypeWiFi     ContentType = "wifi"
	TypeImage    ContentType = "image"
	TypePDF      ContentType = "pdf"
	TypeVideo    ContentType = "video"
)

// Types lists every content type, for request validation and iteration.
var Types = []ContentType{
	TypeWebsite, TypeAppLink, TypeSocial, TypeFeedback,
	TypeWhatsApp, TypeWiFi, TypeImage, TypePDF, TypeVideo,
}

// Valid reports whether t names a known content type.
func (t ContentType) Valid() bool {
	switch t {
	case TypeWebsite, TypeAppLink, TypeSocial, TypeFeedback,
		TypeWhatsApp, TypeWiFi, TypeImage, TypePDF, TypeVideo:
		return true
	}
	return false
}

// FormValues is the tagged union of per-content-type form records.
type FormValues interface {
	isFormValues()
}

// URLForm backs the website, app-link, social and feedback types; the codec
// is the identity function on the URL field.
type URLForm struct {
	URL string `json:"url"`
}

// WhatsAppForm holds a phone number and an optional pre-filled message.
type WhatsAppForm struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// WiFiForm holds the credentials encoded into a WIFI: payload. Field length
// validation happens in the form layer before the codec sees the values.
type WiFiForm struct {
	NetworkName       string `json:"networkName"`
	NetworkPassword   string `json:"networkPassword"`
	NetworkEncryption string `json:"networkEncryption"`
	IsHiddenNetwork   bool   `json:"isHiddenNetwork"`
}

// FileForm backs the file-carried types (image, PDF, video). FileID is the
// opaque reference issued by the upload collaborator; FileURL is only
// populated by decode, which cannot recover the original id.
type FileForm struct {
	FileID  string `json:"fileId,omitempty"`
	FileURL string `json:"fileUrl,omitempty"`
}

func (URLForm) isFormValues()      {}
func (WhatsAppForm) isFormValues() {}
func (WiFiForm) isFormValues()     {}
func (FileForm) isFormValues()     {}

// Codec encodes and decodes payload strings. AssetBase is the storage base
// URL used by the file-backed codecs; when unset those codecs fall back to a
// relative path and log a warning.
type Codec struct {
	AssetBase string
	Logger    *zap.Logger
}

// Encode turns form values into the payload string for the given content
// type. It returns an error only on a caller contract breach (mismatched
// form record, or a file codec invoked without an uploaded file reference);
// callers are expected to validate before encoding.
func (c Codec) Encode(t ContentType, v FormValues) (string, error) {
	switch t {
	case TypeWebsite, TypeAppLink, TypeSocial, TypeFeedback:
		f, ok := v.(URLForm)
		if !ok {
			return "", fmt.Errorf("encode %s: %w", t, errFormMismatch(v))
		}
		return f.URL, nil
	case TypeWhatsApp:
		f, ok := v.(WhatsAppForm)
		if !ok {
			return "", fmt.Errorf("encode %s: %w", t, errFormMismatch(v))
		}
		return encodeWhatsApp(f), nil
	case TypeWiFi:
		f, ok := v.(WiFiForm)
		if !ok {
			return "", fmt.Errorf("encode %s: %w", t, errFormMismatch(v))
		}
		return encodeWiFi(f), nil
	case TypeImage, TypePDF, TypeVideo:
		f, ok := v.(FileForm)
		if !ok {
			return "", fmt.Errorf("encode %s: %w", t, errFormMismatch(v))
		}
		return c.encodeFile(f)
	}
	return "", fmt.Errorf("encode: unknown content type %q", t)
}

// Decode reverses Encode for edit pre-filling. It never fails: input that
// does not match the expected grammar degrades to the content type's
// documented defaults.
func Decode(t ContentType, payload string) FormValues {
	switch t {
	case TypeWhatsApp:
		return decodeWhatsApp(payload)
	case TypeWiFi:
		return decodeWiFi(payload)
	case TypeImage, TypePDF, TypeVideo:
		return decodeFile(payload)
	default:
		// website, app-link, social, feedback: identity
		return URLForm{URL: payload}
	}
}

func errFormMismatch(v FormValues) error {
	return fmt.Errorf("form record %T does not belong to this content type", v)
}
