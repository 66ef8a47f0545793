package guardian

import (
	"context"
	"strings"
	"testing"
)

func fairnessRowWithDiff(region string, diff float64) FairnessRow {
	return FairnessRow{
		CoverageRow: CoverageRow{Region: region},
		PercentDiff: diff,
	}
}

func TestRuleBasedSummarizerBands(t *testing.T) {
	s := NewRuleBasedSummarizer(15)
	ctx := context.Background()

	tests := []struct {
		name        string
		diff        float64
		wantSummary string
		wantActions int
	}{
		{"deeply underfunded", -50, "underfunded", 2},
		{"just past skew low", -15.01, "underfunded", 2},
		{"exactly at low threshold", -15, "fair range", 1},
		{"balanced", 0, "fair range", 1},
		{"exactly at high threshold", 15, "fair range", 1},
		{"just past skew high", 15.01, "more aid", 2},
		{"deeply overfunded", 50, "more aid", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight, err := s.Summarize(ctx, fairnessRowWithDiff("North", tt.diff))
			if err != nil {
				t.Fatalf("rule-based summarize must not fail: %v", err)
			}
			if insight.Region != "North" {
				t.Errorf("region = %s, want North", insight.Region)
			}
			if !strings.Contains(insight.Summary, tt.wantSummary) {
				t.Errorf("summary %q does not mention %q", insight.Summary, tt.wantSummary)
			}
			if !strings.Contains(insight.Summary, "North") {
				t.Errorf("summary %q does not name the region", insight.Summary)
			}
			if len(insight.Actions) != tt.wantActions {
				t.Errorf("got %d actions, want %d", len(insight.Actions), tt.wantActions)
			}
			if insight.Cause == "" {
				t.Error("cause must not be empty")
			}
		})
	}
}

func TestRuleBasedSummarizerReportsMagnitude(t *testing.T) {
	s := NewRuleBasedSummarizer(15)

	insight, err := s.Summarize(context.Background(), fairnessRowWithDiff("South", -42.5))
	if err != nil {
		t.Fatal(err)
	}
	// The underfunded narrative reports how far below average the region sits
	if !strings.Contains(insight.Summary, "42.5") {
		t.Errorf("summary %q does not carry the deviation magnitude", insight.Summary)
	}
}
