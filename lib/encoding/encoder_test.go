package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldProps mirrors the shape of a time field's props.
type fieldProps struct {
	Kind   string
	Value  string
	Locked bool
}

func (p fieldProps) HXEncode() map[string]any {
	return map[string]any{"k": p.Kind, "v": p.Value, "l": p.Locked}
}

func (p *fieldProps) HXDecode(m map[string]any) error {
	p.Kind = String(m, "k")
	p.Value = String(m, "v")
	p.Locked = Bool(m, "l")
	return nil
}

func newTestEncoder(t *testing.T, key string) *Encoder {
	t.Helper()
	enc, err := NewEncoder([]byte(key))
	require.NoError(t, err)
	return enc
}

func TestNewEncoder_AnyKeyLength(t *testing.T) {
	for _, key := range []string{"", "short", strings.Repeat("k", 32), strings.Repeat("k", 48)} {
		_, err := NewEncoder([]byte(key))
		assert.NoError(t, err, "key length %d", len(key))
	}
}

func TestRoundTrip(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	original := fieldProps{Kind: "minute", Value: "07", Locked: true}

	for _, sensitive := range []bool{false, true} {
		encoded, err := enc.Encode(original, sensitive)
		require.NoError(t, err)
		assert.NotContains(t, encoded, "=", "must be raw URL encoding")

		var decoded fieldProps
		require.NoError(t, enc.Decode(encoded, sensitive, &decoded))
		assert.Equal(t, original, decoded)
	}
}

func TestSignedFormHasSignature(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	encoded, err := enc.Encode(fieldProps{Kind: "hour24"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(encoded, "."))
}

func TestDecode_TamperedSignature(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	encoded, err := enc.Encode(fieldProps{Kind: "hour24", Value: "10"}, false)
	require.NoError(t, err)

	other := newTestEncoder(t, "other-key")
	var decoded fieldProps
	assert.ErrorIs(t, other.Decode(encoded, false, &decoded), ErrSignatureInvalid)
}

func TestDecode_MissingSignature(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	var decoded fieldProps
	assert.ErrorIs(t, enc.Decode("abc", false, &decoded), ErrInvalidFormat)
}

func TestDecode_BadCiphertext(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	var decoded fieldProps

	assert.ErrorIs(t, enc.Decode("AA", true, &decoded), ErrDecryptFailed)
	assert.ErrorIs(t, enc.Decode("!!!", true, &decoded), ErrInvalidFormat)

	sealed, err := enc.Encode(fieldProps{Kind: "second"}, true)
	require.NoError(t, err)
	other := newTestEncoder(t, "other-key")
	assert.ErrorIs(t, other.Decode(sealed, true, &decoded), ErrDecryptFailed)
}

func TestEncryptionIsNonDeterministic(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	a, err := enc.Encode(fieldProps{Kind: "meridian", Value: "am"}, true)
	require.NoError(t, err)
	b, err := enc.Encode(fieldProps{Kind: "meridian", Value: "am"}, true)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncode_RequiresEncodable(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	_, err := enc.Encode(struct{}{}, false)
	assert.ErrorIs(t, err, ErrNotEncodable)

	var plain struct{}
	assert.ErrorIs(t, enc.Decode("a.b", false, &plain), ErrNotDecodable)
}
