// Package apikey generates and validates BugBountyKE-KSP API keys.
//
// Keys are the secret-key format the platform issues: an sk_ prefix
// (sk_test_ for test-environment keys) followed by 32 random
// alphanumeric characters. Generation uses crypto/rand.
package apikey

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	// Prefix marks a production key.
	Prefix = "sk_"
	// TestPrefix marks a test-environment key.
	TestPrefix = "sk_test_"

	// randomLength is the number of random characters after the prefix.
	randomLength = 32
	// minRandomLength is the shortest random suffix accepted as valid.
	minRandomLength = 8

	charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate returns a new random API key. Test keys carry the sk_test_
// prefix so they are distinguishable from production keys at a glance.
func Generate(test bool) (string, error) {
	prefix := Prefix
	if test {
		prefix = TestPrefix
	}

	buf := make([]byte, randomLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}

	return prefix + string(buf), nil
}

// GenerateBatch returns count freshly generated keys.
func GenerateBatch(count int, test bool) ([]string, error) {
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		key, err := Generate(test)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// IsValidFormat reports whether key looks like a platform-issued key:
// sk_ prefix followed by at least eight alphanumeric characters.
func IsValidFormat(key string) bool {
	if !strings.HasPrefix(key, Prefix) {
		return false
	}

	random := key[len(Prefix):]
	if len(random) < minRandomLength {
		return false
	}
	for _, c := range random {
		if !isAlphanumeric(c) {
			return false
		}
	}
	return true
}

// IsTestKey reports whether key is a test-environment key.
func IsTestKey(key string) bool {
	return strings.HasPrefix(key, TestPrefix)
}

func isAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Mask redacts a key for logging, keeping the sk_ prefix and the last
// visibleChars characters: sk_**************************abcd.
func Mask(key string, visibleChars int) string {
	if key == "" {
		return ""
	}
	if len(key) <= visibleChars {
		return strings.Repeat("*", len(key))
	}
	if len(key) <= len(Prefix)+visibleChars {
		return key
	}

	hidden := len(key) - len(Prefix) - visibleChars
	return Prefix + strings.Repeat("*", hidden) + key[len(key)-visibleChars:]
}

// Info summarizes a key without exposing its secret part.
type Info struct {
	Valid       bool
	Length      int
	Masked      string
	Environment string
}

// Inspect returns a log-safe summary of key.
func Inspect(key string) Info {
	info := Info{
		Valid:  IsValidFormat(key),
		Length: len(key),
		Masked: Mask(key, 4),
	}
	if info.Valid {
		if IsTestKey(key) {
			info.Environment = "test"
		} else {
			info.Environment = "production"
		}
	}
	return info
}
