// Package encoding packs component props into URL-safe strings.
//
// Props are serialized with msgpack and then either signed (HMAC-SHA256,
// visible but tamper-proof) or sealed with AES-256-GCM (opaque). Time
// component props are small (a kind tag and a few short strings), so the
// signed form stays well within URL length limits.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
	ErrNotEncodable     = errors.New("encoding: type does not implement Encodable")
	ErrNotDecodable     = errors.New("encoding: type does not implement Decodable")
)

// signatureSize is the truncated HMAC length in bytes.
const signatureSize = 16

// Encoder handles encoding and decoding of component props.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys that are not exactly 32 bytes are
// stretched with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) != 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encodable is implemented by props that flatten themselves to a map.
type Encodable interface {
	HXEncode() map[string]any
}

// Decodable is implemented by props that restore themselves from a map.
type Decodable interface {
	HXDecode(map[string]any) error
}

// Encode serializes v. If sensitive is true the result is encrypted;
// otherwise it is signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	enc, ok := v.(Encodable)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrNotEncodable, v)
	}

	packed, err := msgpack.Marshal(enc.HXEncode())
	if err != nil {
		return "", err
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// Decode restores v from an Encode result produced with the same mode.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	dec, ok := v.(Decodable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotDecodable, v)
	}

	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return dec.HXDecode(data)
}

// sign produces base64(data) "." base64(mac).
func (e *Encoder) sign(data []byte) string {
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:signatureSize])
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	body, sigPart, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:signatureSize]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if len(sealed) < e.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}

	nonce, ciphertext := sealed[:e.gcm.NonceSize()], sealed[e.gcm.NonceSize():]
	data, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}
	return data, nil
}

// String reads a string field from a decoded map.
func String(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool reads a boolean field from a decoded map.
func Bool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
