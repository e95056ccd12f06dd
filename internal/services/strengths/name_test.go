// name_test.go — Unit tests for participant name extraction.
package strengths

import (
	"testing"
)

func TestExtractParticipantName(t *testing.T) {
	cat := NewCatalog()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "signature themes header",
			text: "Your Signature Themes\nJordan A. Rivera\n\nMany years of research...",
			want: "Jordan A. Rivera",
		},
		{
			name: "prepared for line",
			text: "CliftonStrengths 34\nPrepared for: Maya Lin\n",
			want: "Maya Lin",
		},
		{
			name: "report for line",
			text: "Strengths Insight Guide\nReport for: Sam Tanaka\n",
			want: "Sam Tanaka",
		},
		{
			name: "name field",
			text: "Survey Completion\nName: Priya Patel\nDate: 2024-01-15\n",
			want: "Priya Patel",
		},
		{
			name: "pipe separated header",
			text: "Jordan Lee | CliftonStrengths Top 5\nYour results are below.\n",
			want: "Jordan Lee",
		},
		{
			name: "first line fallback",
			text: "Dana Brooks\nYour results describe what you naturally do best.\n",
			want: "Dana Brooks",
		},
		{
			name: "theme name is rejected",
			text: "Prepared for: Self Assurance\nsome body text follows here\n",
			want: "",
		},
		{
			name: "no plausible header",
			text: "this report has no header line at all, just lowercase prose.\n",
			want: "",
		},
		{
			name: "single word is rejected",
			text: "Prepared for: Madonna\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractParticipantName(tt.text, cat); got != tt.want {
				t.Errorf("extractParticipantName() = %q, want %q", got, tt.want)
			}
		})
	}
}
