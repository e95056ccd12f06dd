// classify_test.go — Unit tests for report tier classification.
package strengths

import (
	"math"
	"testing"
)

func TestClassifyReport(t *testing.T) {
	tests := []struct {
		name       string
		themeCount int
		wantType   ReportType
		wantConf   float64
	}{
		{"no themes", 0, ReportTypeTop5, 0.0},
		{"one theme", 1, ReportTypeTop5, 0.3},
		{"two themes", 2, ReportTypeTop5, 0.6},
		{"three themes", 3, ReportTypeTop5, 0.7},
		{"four themes near top five", 4, ReportTypeTop5, 0.85},
		{"exact top five", 5, ReportTypeTop5, 0.95},
		{"six themes", 6, ReportTypeTop5, 0.85},
		{"seven themes", 7, ReportTypeTop5, 0.85},
		{"eight themes", 8, ReportTypeTop10, 0.85},
		{"exact top ten", 10, ReportTypeTop10, 0.95},
		{"twelve themes", 12, ReportTypeTop10, 0.85},
		{"thirty themes", 30, ReportTypeAll34, 0.9},
		{"exact full report", 34, ReportTypeAll34, 0.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotConf := classifyReport(tt.themeCount)
			if gotType != tt.wantType {
				t.Errorf("classifyReport(%d) type = %s, want %s", tt.themeCount, gotType, tt.wantType)
			}
			if math.Abs(gotConf-tt.wantConf) > 1e-9 {
				t.Errorf("classifyReport(%d) confidence = %v, want %v", tt.themeCount, gotConf, tt.wantConf)
			}
		})
	}
}
