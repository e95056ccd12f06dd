// apikeys_test.go — Unit tests for API key helpers.
package handlers

import (
	"strings"
	"testing"
)

func TestEffectiveRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		configured int
		want       int
	}{
		{"requested wins", 500, 250, 500},
		{"configured default used", 0, 250, 250},
		{"negative request falls back", -1, 250, 250},
		{"built-in fallback", 0, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectiveRateLimit(tt.requested, tt.configured); got != tt.want {
				t.Errorf("effectiveRateLimit(%d, %d) = %d, want %d", tt.requested, tt.configured, got, tt.want)
			}
		})
	}
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := generateAPIKey()
	if err != nil {
		t.Fatalf("generateAPIKey() error: %v", err)
	}
	if !strings.HasPrefix(key, "tp_") {
		t.Errorf("key %q missing tp_ prefix", key)
	}
	if len(key) != len("tp_")+32 {
		t.Errorf("key length = %d, want %d", len(key), len("tp_")+32)
	}

	other, err := generateAPIKey()
	if err != nil {
		t.Fatalf("generateAPIKey() error: %v", err)
	}
	if key == other {
		t.Error("two generated keys were identical")
	}
}
