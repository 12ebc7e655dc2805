package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Header carries the hex HMAC of the raw webhook body
	Header = "X-Webhook-Hmac"

	// AlgorithmHeader names the hash WAHA used
	AlgorithmHeader = "X-Webhook-Hmac-Algorithm"

	// Algorithm is the only hash WAHA signs with
	Algorithm = "sha512"

	// MinSecretBytes is the minimum size of a generated secret (192 bits)
	MinSecretBytes = 24

	// MaxSecretBytes is the maximum size of a generated secret (512 bits)
	MaxSecretBytes = 64
)

// SupportedAlgorithm reports whether name, as sent in AlgorithmHeader, is one
// Verify can check. An absent header is taken as the default algorithm.
func SupportedAlgorithm(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, Algorithm)
}

// Secret is the shared HMAC key configured on both WAHA and the dashboard
type Secret struct {
	raw []byte
}

// GenerateSecret creates a random secret between MinSecretBytes and MaxSecretBytes,
// rendered as hex so it can be pasted into WAHA's session config
func GenerateSecret(size int) (Secret, error) {
	if size < MinSecretBytes || size > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return Secret{}, fmt.Errorf("generating random bytes: %w", err)
	}

	return Secret{raw: []byte(hex.EncodeToString(bytes))}, nil
}

// ParseSecret wraps a configured key. WAHA uses the key text as-is.
func ParseSecret(key string) (Secret, error) {
	if strings.TrimSpace(key) == "" {
		return Secret{}, fmt.Errorf("secret cannot be empty")
	}
	return Secret{raw: []byte(key)}, nil
}

// String returns the key text
func (s Secret) String() string {
	return string(s.raw)
}

// Sign returns the hex HMAC-SHA512 of body
func Sign(secret Secret, body []byte) string {
	mac := hmac.New(sha512.New, secret.raw)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a hex signature using constant-time comparison
func Verify(secret Secret, body []byte, signature string) (bool, error) {
	if signature == "" {
		return false, fmt.Errorf("signature is empty")
	}

	expected, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}

	mac := hmac.New(sha512.New, secret.raw)
	mac.Write(body)
	calculated := mac.Sum(nil)

	// Use constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare(expected, calculated) == 1, nil
}

// Verifier checks incoming webhook bodies against one secret
type Verifier struct {
	secret Secret
}

// NewVerifier creates a verifier for the configured key
func NewVerifier(key string) (*Verifier, error) {
	secret, err := ParseSecret(key)
	if err != nil {
		return nil, fmt.Errorf("parsing webhook secret: %w", err)
	}
	return &Verifier{secret: secret}, nil
}

// Verify reports whether signature is a valid HMAC of body. Malformed
// signatures are treated as mismatches.
func (v *Verifier) Verify(body []byte, signature string) bool {
	ok, err := Verify(v.secret, body, signature)
	return err == nil && ok
}
