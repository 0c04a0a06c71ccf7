package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

const rawSecretBytes = 32

// NewSecret returns a high-entropy opaque secret suitable for refresh tokens
// and link-style verification codes.
func NewSecret() (string, error) {
	buf := make([]byte, rawSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewNumericCode returns a human-enterable code of the given number of digits,
// zero-padded, for SMS-style delivery.
func NewNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate numeric code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

// HashSecret derives the stored form of a presented secret. Lookups are always
// keyed on this hash, never on client-supplied identifiers.
func HashSecret(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// SecretMatches compares a presented secret against a stored hash in constant
// time.
func SecretMatches(storedHash, presented string) bool {
	computed := HashSecret(presented)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}
