package guardian

import (
	"context"
	"fmt"

	"fairaid-guardian/llm"
)

// Insight is the guardian report for a single region: a narrative summary,
// the likely cause, and an ordered list of suggested actions
type Insight struct {
	Region  string   `json:"region"`
	Summary string   `json:"summary"`
	Cause   string   `json:"cause"`
	Actions []string `json:"actions"`
}

// Summarizer turns a region's fairness result into a guardian report.
// Implementations may call an external service and fail; a failure affects
// only the requested region, never the rest of the dashboard.
type Summarizer interface {
	Summarize(ctx context.Context, row FairnessRow) (Insight, error)
}

// RuleBasedSummarizer maps the percent deviation to one of three fixed
// narratives over the same funding-skew bands the fairness classifier uses.
// It is a total function: every deviation lands in exactly one band, with
// values exactly at the threshold falling in the balanced branch.
type RuleBasedSummarizer struct {
	skewPct float64
}

// NewRuleBasedSummarizer creates a rule-based summarizer with the given
// funding-skew threshold
func NewRuleBasedSummarizer(skewPct float64) *RuleBasedSummarizer {
	return &RuleBasedSummarizer{skewPct: skewPct}
}

// Summarize never fails; the error return exists to satisfy Summarizer
func (s *RuleBasedSummarizer) Summarize(ctx context.Context, row FairnessRow) (Insight, error) {
	diff := row.PercentDiff

	switch {
	case diff < -s.skewPct:
		return Insight{
			Region: row.Region,
			Summary: fmt.Sprintf("CRITICAL FINDING: Region %s is severely underfunded (%.1f%% below average). This suggests systemic exclusion or data gaps.",
				row.Region, -diff),
			Cause: "Potential cause: remote geography or lack of local registration offices.",
			Actions: []string{
				"Deploy mobile registration units immediately.",
				"Allocate emergency supplementary budget.",
			},
		}, nil
	case diff > s.skewPct:
		return Insight{
			Region: row.Region,
			Summary: fmt.Sprintf("RISK FINDING: Region %s is receiving significantly more aid (%.1f%% above average). This may indicate duplication or lax criteria.",
				row.Region, diff),
			Cause: "Potential cause: duplicate beneficiary lists or political bias.",
			Actions: []string{
				"Initiate audit of the beneficiary list.",
				"Enforce biometric deduplication.",
			},
		}, nil
	default:
		return Insight{
			Region: row.Region,
			Summary: fmt.Sprintf("POSITIVE: Region %s is within the fair range (%.1f%% deviation). Distribution is equitable.",
				row.Region, diff),
			Cause: "System appears to be working as intended.",
			Actions: []string{
				"Monitor for future changes.",
			},
		}, nil
	}
}

// CortexSummarizer delegates the narrative to an external LLM endpoint
// while keeping the cause and action list rule-based, so a model outage
// degrades the report rather than the recommendations.
type CortexSummarizer struct {
	client *llm.Client
	rules  *RuleBasedSummarizer
}

// NewCortexSummarizer creates an LLM-backed summarizer
func NewCortexSummarizer(client *llm.Client, rules *RuleBasedSummarizer) *CortexSummarizer {
	return &CortexSummarizer{client: client, rules: rules}
}

// Summarize builds a prompt from the region's figures and asks the model
// for the summary text. A failed call is surfaced to the caller for this
// region only.
func (s *CortexSummarizer) Summarize(ctx context.Context, row FairnessRow) (Insight, error) {
	prompt := fmt.Sprintf(`Write a two-sentence fairness finding for an aid program administrator.

REGION METRICS:
- Region: %s
- Beneficiaries reached: %d
- Total distributed: %.2f
- Average aid per record: %.2f
- Global average: %.2f
- Deviation from global average: %.1f%%
- Disparity status: %s
- Distribution type: %s

State whether the region is underfunded, overfunded, or balanced, and what the deviation implies for program integrity. Do not invent figures.`,
		row.Region, row.TotalBeneficiaries, row.TotalDistributed, row.AvgAmount,
		row.GlobalAvg, row.PercentDiff, row.Status, row.DistributionType)

	summary, err := s.client.Analyze(ctx, prompt)
	if err != nil {
		return Insight{}, fmt.Errorf("guardian summary for region %s failed: %w", row.Region, err)
	}

	insight, _ := s.rules.Summarize(ctx, row)
	insight.Summary = summary
	return insight, nil
}
