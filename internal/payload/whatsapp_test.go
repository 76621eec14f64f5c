package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppEncode_NormalizesNumberAndEscapesMessage(t *testing.T) {
	c := Codec{}

	got, err := c.Encode(TypeWhatsApp, WhatsAppForm{
		Number:  "+1 (234) 567-8901",
		Message: "Hi!",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/+12345678901?text=Hi%21", got)
}

func TestWhatsAppEncode_EmptyMessageOmitsQuery(t *testing.T) {
	c := Codec{}

	got, err := c.Encode(TypeWhatsApp, WhatsAppForm{Number: "49 170 1234567", Message: "   "})

	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/+491701234567", got)
}

func TestWhatsAppRoundTrip(t *testing.T) {
	c := Codec{}
	cases := []struct {
		form       WhatsAppForm
		wantNumber string
		wantMsg    string
	}{
		{WhatsAppForm{Number: "+1 (234) 567-8901", Message: "Hi!"}, "+12345678901", "Hi!"},
		{WhatsAppForm{Number: "0049-170-1234567", Message: "Hello there, how are you?"}, "+00491701234567", "Hello there, how are you?"},
		{WhatsAppForm{Number: "12345678", Message: ""}, "+12345678", ""},
	}

	for _, tc := range cases {
		encoded, err := c.Encode(TypeWhatsApp, tc.form)
		require.NoError(t, err)

		got, ok := Decode(TypeWhatsApp, encoded).(WhatsAppForm)
		require.True(t, ok)
		assert.Equal(t, tc.wantNumber, got.Number)
		assert.Equal(t, tc.wantMsg, got.Message)
	}
}

func TestWhatsAppDecode_AcceptsPhoneQueryShapes(t *testing.T) {
	for _, payload := range []string{
		"https://api.whatsapp.com/send?phone=12345678901&text=Hi%21",
		"https://whatsapp.com/?phone=+1-234-567-8901&text=Hi%21",
	} {
		got, ok := Decode(TypeWhatsApp, payload).(WhatsAppForm)

		require.True(t, ok, payload)
		assert.Equal(t, "+12345678901", got.Number, payload)
		assert.Equal(t, "Hi!", got.Message, payload)
	}
}

func TestWhatsAppDecode_SchemelessWaMe(t *testing.T) {
	got, ok := Decode(TypeWhatsApp, "wa.me/12345678901").(WhatsAppForm)

	require.True(t, ok)
	assert.Equal(t, "+12345678901", got.Number)
	assert.Empty(t, got.Message)
}

func TestWhatsAppDecode_UndefinedTextIsAbsent(t *testing.T) {
	got, ok := Decode(TypeWhatsApp, "https://wa.me/+12345678901?text=undefined").(WhatsAppForm)

	require.True(t, ok)
	assert.Equal(t, "+12345678901", got.Number)
	assert.Empty(t, got.Message)
}

func TestWhatsAppDecode_FallbackExtractsFirstDigitRun(t *testing.T) {
	got, ok := Decode(TypeWhatsApp, "call me at 4917012345678 any time").(WhatsAppForm)

	require.True(t, ok)
	assert.Equal(t, "+4917012345678", got.Number)
	assert.Empty(t, got.Message)
}

func TestWhatsAppDecode_NoDigitsYieldsEmptyForm(t *testing.T) {
	got, ok := Decode(TypeWhatsApp, "no numbers here").(WhatsAppForm)

	require.True(t, ok)
	assert.Equal(t, WhatsAppForm{}, got)
}
