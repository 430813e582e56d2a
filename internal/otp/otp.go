// Package otp generates short numeric one-time codes.
package otp

import (
	"crypto/rand"
	"fmt"
)

// Generate returns length uniformly-random decimal digits. Leading zeros
// are allowed, so the result is a string, never an integer.
func Generate(length int) (string, error) {
	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			// Reject bytes >= 250 so every digit stays uniform.
			if b >= 250 {
				continue
			}
			code = append(code, '0'+b%10)
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}
