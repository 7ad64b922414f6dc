package hxtime

import "errors"

// Sentinel errors for component requests.
var (
	ErrNotFound         = errors.New("hxtime: resource not found")
	ErrDecryptFailed    = errors.New("hxtime: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxtime: signature verification failed")
	ErrInvalidFormat    = errors.New("hxtime: invalid parameter format")
	ErrHydrationFailed  = errors.New("hxtime: hydration failed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsBadRequest reports whether err was caused by the client: tampered or
// malformed props, or props a component refused during hydration.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat)
}
