// auth_test.go — Unit tests for API key hashing.
package middleware

import (
	"testing"
)

// TestHashAPIKey verifies that hashing is deterministic and produces
// SHA-256 sized output.
func TestHashAPIKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		key := "tp_determinism_test"
		hash1 := HashAPIKey(key)
		hash2 := HashAPIKey(key)
		if hash1 != hash2 {
			t.Errorf("HashAPIKey is not deterministic: %q != %q", hash1, hash2)
		}
	})

	t.Run("different inputs different outputs", func(t *testing.T) {
		hash1 := HashAPIKey("tp_key_one")
		hash2 := HashAPIKey("tp_key_two")
		if hash1 == hash2 {
			t.Error("HashAPIKey produced same hash for different inputs")
		}
	})

	// 256 bits = 64 hex chars
	t.Run("output length", func(t *testing.T) {
		hash := HashAPIKey("tp_any_key")
		if len(hash) != 64 {
			t.Errorf("HashAPIKey output length = %d, want 64", len(hash))
		}
	})

	t.Run("known vector", func(t *testing.T) {
		// SHA-256("abc")
		got := HashAPIKey("abc")
		want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
		if got != want {
			t.Errorf("HashAPIKey(\"abc\") = %q, want %q", got, want)
		}
	})
}
