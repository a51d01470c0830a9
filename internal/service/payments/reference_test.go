package payments

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalReference_RoundTrip(t *testing.T) {
	ref := ExternalReference{Type: ReferenceBooking, ID: 17, Code: "EVLZ1760000000000abc123"}

	parsed, err := ParseExternalReference(ref.String())

	require.NoError(t, err)
	assert.Equal(t, ref, parsed)
	assert.Equal(t, "booking:17:EVLZ1760000000000abc123", ref.String())
}

func TestParseExternalReference_Invalid(t *testing.T) {
	for _, raw := range []string{"", "booking", "booking:1", "order:1:X", "plan:abc:X", "plan:-1:X", "plan:0:X"} {
		_, err := ParseExternalReference(raw)
		assert.ErrorIs(t, err, ErrInvalidExternalReference, raw)
	}
}

func TestNewPaymentCode(t *testing.T) {
	now := time.UnixMilli(1760000000000)

	a := NewPaymentCode("EVLZ", now)
	b := NewPaymentCode("EVLZ", now)

	assert.True(t, strings.HasPrefix(a, "EVLZ1760000000000"))
	assert.Len(t, a, len("EVLZ1760000000000")+6)
	assert.NotEqual(t, a, b)
}

func TestQRImageURL(t *testing.T) {
	got := QRImageURL("PIX|k@pix|EVLZ1|Corte social")

	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?size=220x220&data=PIX%7Ck%40pix%7CEVLZ1%7CCorte+social", got)
}
