// Package tokengen generates single-use access token codes.
package tokengen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the code alphabet: uppercase letters and digits with the
// visually ambiguous characters 0, O, I, 1 and L removed.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// DefaultLength matches the original deployment's six-character codes.
const DefaultLength = 6

// Generate returns one random code of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading randomness: %w", err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateUnique returns count distinct codes of the given length.
func GenerateUnique(count, length int) ([]string, error) {
	seen := make(map[string]struct{}, count)
	codes := make([]string, 0, count)
	for len(codes) < count {
		code, err := Generate(length)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// Normalize maps user input to canonical code form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
