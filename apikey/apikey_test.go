package apikey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("test key", func(t *testing.T) {
		key, err := Generate(true)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, TestPrefix))
		assert.Len(t, key, len(TestPrefix)+randomLength)
		assert.True(t, IsValidFormat(key))
	})

	t.Run("production key", func(t *testing.T) {
		key, err := Generate(false)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, Prefix))
		assert.False(t, IsTestKey(key))
		assert.True(t, IsValidFormat(key))
	})

	t.Run("keys are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			key, err := Generate(true)
			require.NoError(t, err)
			assert.False(t, seen[key], "duplicate key generated")
			seen[key] = true
		}
	})
}

func TestGenerateBatch(t *testing.T) {
	keys, err := GenerateBatch(5, true)
	require.NoError(t, err)
	assert.Len(t, keys, 5)
	for _, key := range keys {
		assert.True(t, IsValidFormat(key))
	}
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid production key", "sk_aB3dE5gH7jK9mN1pQr", true},
		{"valid test key", "sk_test_aB3dE5gH7jK9", true},
		{"empty", "", false},
		{"wrong prefix", "pk_aB3dE5gH7jK9mN1p", false},
		{"too short after prefix", "sk_abc12", false},
		{"non-alphanumeric suffix", "sk_abcd-efgh-ijkl", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidFormat(tt.key))
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		visible  int
		expected string
	}{
		{"normal key", "sk_abcdefghijkl", 4, "sk_*******ijkl"},
		{"empty", "", 4, ""},
		{"shorter than visible window", "sk", 4, "**"},
		{"exactly prefix plus visible", "sk_abcd", 4, "sk_abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mask(tt.key, tt.visible))
		})
	}
}

func TestInspect(t *testing.T) {
	t.Run("test key", func(t *testing.T) {
		info := Inspect("sk_test_aB3dE5gH7jK9")
		assert.True(t, info.Valid)
		assert.Equal(t, "test", info.Environment)
		assert.NotContains(t, info.Masked, "aB3dE5gH")
	})

	t.Run("production key", func(t *testing.T) {
		info := Inspect("sk_aB3dE5gH7jK9mN1pQr")
		assert.True(t, info.Valid)
		assert.Equal(t, "production", info.Environment)
	})

	t.Run("invalid key", func(t *testing.T) {
		info := Inspect("not-a-key")
		assert.False(t, info.Valid)
		assert.Empty(t, info.Environment)
	})
}
