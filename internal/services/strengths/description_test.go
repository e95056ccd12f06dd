// description_test.go — Unit tests for personalized description extraction.
package strengths

import (
	"testing"
)

func TestExtractDescription(t *testing.T) {
	cat := NewCatalog()

	tests := []struct {
		name   string
		window string
		want   string
	}{
		{
			name:   "first you paragraph",
			window: "\n\nYou bring energy to every task. You enjoy steady progress, and it shows.\n\nA later paragraph that should be ignored.",
			want:   "You bring energy to every task. You enjoy steady progress, and it shows.",
		},
		{
			name:   "window starting mid paragraph",
			window: "You keep going when others have stopped for the day.\n",
			want:   "You keep going when others have stopped for the day.",
		},
		{
			name:   "footer boilerplate trimmed",
			window: "\nYou keep going when others stop. Copyright © 2019 Gallup, Inc. All rights reserved.\n",
			want:   "You keep going when others stop.",
		},
		{
			name:   "pdf line wrapping collapsed",
			window: "\nYou approach every project with\nsteady effort and real\npersistence.\n\n",
			want:   "You approach every project with steady effort and real persistence.",
		},
		{
			name:   "too short rejected",
			window: "\nYou win often.\n\n",
			want:   "",
		},
		{
			name:   "no you paragraph",
			window: "This theme describes people who work hard and stay busy all day.\n",
			want:   "",
		},
		{
			name:   "empty window",
			window: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDescription(tt.window, cat); got != tt.want {
				t.Errorf("extractDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrimTrailingThemeName(t *testing.T) {
	cat := NewCatalog()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"theme name trimmed", "You act with care and patience. Learner", "You act with care and patience."},
		{"glyph variant trimmed", "You act with care and patience. Woo®", "You act with care and patience."},
		{"ordinary word kept", "You act with care and patience always", "You act with care and patience always"},
		{"theme mid sentence kept", "Your Learner side makes studying fun.", "Your Learner side makes studying fun."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimTrailingThemeName(tt.in, cat); got != tt.want {
				t.Errorf("trimTrailingThemeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
