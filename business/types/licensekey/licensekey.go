// Package licensekey represents a license key in the system.
package licensekey

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// Keys are three groups of six characters behind a fixed prefix.
var keyRegex = regexp.MustCompile(`^PJ-[A-Z0-9]{6}-[A-Z0-9]{6}-[A-Z0-9]{6}$`)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Key represents a license key in the system.
type Key struct {
	value string
}

// String returns the value of the key.
func (k Key) String() string {
	return k.value
}

// Equal provides support for the go-cmp package and testing.
func (k Key) Equal(k2 Key) bool {
	return k.value == k2.value
}

// MarshalText provides support for logging and any marshal needs.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.value), nil
}

// =============================================================================

// Parse normalizes and parses the value into a key. Normalization removes
// surrounding and embedded whitespace and upper-cases the value so the same
// key pasted in different shapes resolves to one canonical form.
func Parse(value string) (Key, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))

	if !keyRegex.MatchString(norm) {
		return Key{}, fmt.Errorf("invalid license key format")
	}

	return Key{norm}, nil
}

// MustParse parses the value and returns a key. If an error occurs the
// function panics.
func MustParse(value string) Key {
	k, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return k
}

// Generate creates a new random key.
func Generate() (Key, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return Key{}, fmt.Errorf("generating key: %w", err)
	}

	chars := make([]byte, 18)
	for i, b := range buf {
		chars[i] = alphabet[int(b)%len(alphabet)]
	}

	value := fmt.Sprintf("PJ-%s-%s-%s", chars[0:6], chars[6:12], chars[12:18])

	return Key{value}, nil
}
