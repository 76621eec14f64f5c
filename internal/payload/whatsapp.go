package payload

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`[^0-9]`)
	// Fallback number extraction wants a plausible phone number, not any
	// stray digit pair inside message text.
	digitRun = regexp.MustCompile(`[0-9]{5,}`)
)

// encodeWhatsApp emits a wa.me click-to-chat URL. The number is normalized
// to digits and re-prefixed with +; a non-empty message travels
// percent-encoded in the text query parameter.
func encodeWhatsApp(f WhatsAppForm) string {
	number := "+" + nonDigits.ReplaceAllString(f.Number, "")
	payload := "https://wa.me/" + number
	if msg := strings.TrimSpace(f.Message); msg != "" {
		payload += "?text=" + url.QueryEscape(msg)
	}
	return payload
}

// decodeWhatsApp accepts both wa.me/<number> and
// {whatsapp.com|api.whatsapp.com}?phone=<number> shapes. Anything else falls
// back to extracting the first plausible digit run; the fallback is
// best-effort only and may misread digits inside free text.
func decodeWhatsApp(payload string) WhatsAppForm {
	raw := strings.TrimSpace(payload)
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	if u, err := url.Parse(candidate); err == nil {
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		switch host {
		case "wa.me":
			if number := strings.Trim(u.Path, "/"); number != "" {
				return WhatsAppForm{
					Number:  normalizeNumber(number),
					Message: messageParam(u),
				}
			}
		case "whatsapp.com", "api.whatsapp.com":
			if phone := u.Query().Get("phone"); phone != "" {
				return WhatsAppForm{
					Number:  normalizeNumber(phone),
					Message: messageParam(u),
				}
			}
		}
	}

	if m := digitRun.FindString(raw); m != "" {
		return WhatsAppForm{Number: "+" + m}
	}
	return WhatsAppForm{}
}

// messageParam reads the text query parameter. A literal "undefined" is an
// artifact of broken upstream writers and counts as absent.
func messageParam(u *url.URL) string {
	msg := u.Query().Get("text")
	if msg == "undefined" {
		return ""
	}
	return msg
}

func normalizeNumber(s string) string {
	return "+" + nonDigits.ReplaceAllString(s, "")
}
