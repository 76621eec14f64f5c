package payload

import (
	"fmt"
	"regexp"
	"strings"
)

// wifiPattern captures encryption, escaped SSID, escaped password and the
// hidden flag in one pass. The field bodies admit any escaped character or
// any character that is neither a bare backslash nor a field terminator.
var wifiPattern = regexp.MustCompile(`^WIFI:T:([^;]*);S:((?:\\.|[^\\;])*);P:((?:\\.|[^\\;])*);H:(true|false)?;`)

// encodeWiFi emits the WIFI: network config payload. Backslash is escaped
// first so that escaping the remaining special characters cannot
// double-escape an already-emitted backslash.
func encodeWiFi(f WiFiForm) string {
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;",
		f.NetworkEncryption,
		escapeWiFi(f.NetworkName),
		escapeWiFi(f.NetworkPassword),
		f.IsHiddenNetwork,
	)
}

// decodeWiFi reverses encodeWiFi. Input that does not match the grammar
// yields the documented defaults (WPA, empty credentials, not hidden).
func decodeWiFi(payload string) WiFiForm {
	m := wifiPattern.FindStringSubmatch(strings.TrimSpace(payload))
	if m == nil {
		return WiFiForm{NetworkEncryption: "WPA"}
	}
	return WiFiForm{
		NetworkEncryption: m[1],
		NetworkName:       unescapeWiFi(m[2]),
		NetworkPassword:   unescapeWiFi(m[3]),
		IsHiddenNetwork:   m[4] == "true",
	}
}

func escapeWiFi(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `;`, `\;`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}

// unescapeWiFi undoes escapeWiFi in the opposite order, finishing with the
// backslash so escaped backslashes cannot resurrect other escapes.
func unescapeWiFi(s string) string {
	s = strings.ReplaceAll(s, `\:`, `:`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\;`, `;`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
