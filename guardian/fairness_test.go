package guardian

import (
	"math"
	"testing"

	"fairaid-guardian/config"
)

func testFairnessConfig() config.FairnessConfig {
	return config.FairnessConfig{
		ModerateDisparityPct: 10,
		HighDisparityPct:     20,
		FundingSkewPct:       15,
		DuplicateSpreadPct:   10,
	}
}

func TestGlobalAverageTrueMean(t *testing.T) {
	// North has two records at 100, South one at 400. The population mean
	// is 200; averaging the per-region means would give 250 and misgrade
	// every region whenever partition sizes differ.
	records := []Record{
		rec("B1", "North", 100),
		rec("B2", "North", 100),
		rec("B3", "South", 400),
	}

	got := GlobalAverage(records)
	if got != 200 {
		t.Fatalf("expected true global mean 200, got %f", got)
	}

	fc := NewFairnessClassifier(testFairnessConfig())
	rows := fc.Classify(AggregateCoverage(records), records)
	for _, row := range rows {
		if row.GlobalAvg != 200 {
			t.Errorf("region %s carries global avg %f, want 200", row.Region, row.GlobalAvg)
		}
	}
	for _, row := range rows {
		if row.Region == "North" && math.Abs(row.PercentDiff-(-50)) > 1e-9 {
			t.Errorf("North percent diff = %f, want -50", row.PercentDiff)
		}
	}
}

func TestGlobalAverageEmpty(t *testing.T) {
	if got := GlobalAverage(nil); got != 0 {
		t.Errorf("expected 0 for empty record set, got %f", got)
	}
}

func TestClassifyZeroGlobalAverage(t *testing.T) {
	// An all-zero dataset has no disparity to report: no fault, every
	// region comes out Fair and Balanced at 0%
	records := []Record{
		rec("B1", "North", 0),
		rec("B2", "South", 0),
	}

	fc := NewFairnessClassifier(testFairnessConfig())
	rows := fc.Classify(AggregateCoverage(records), records)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.PercentDiff != 0 || row.Status != StatusFair || row.DistributionType != TypeBalanced {
			t.Errorf("region %s: got (%f, %s, %s), want (0, Fair, Balanced)",
				row.Region, row.PercentDiff, row.Status, row.DistributionType)
		}
	}
}

func TestStatusBoundaries(t *testing.T) {
	fc := NewFairnessClassifier(testFairnessConfig())

	tests := []struct {
		diff float64
		want string
	}{
		{0, StatusFair},
		{-10, StatusFair},  // exactly at the moderate threshold stays Fair
		{10, StatusFair},
		{-10.01, StatusModerate},
		{10.01, StatusModerate},
		{-15, StatusModerate},
		{15, StatusModerate},
		{-20, StatusModerate}, // exactly at the high threshold stays Moderate
		{20, StatusModerate},
		{-20.01, StatusHigh},
		{20.01, StatusHigh},
		{25, StatusHigh},
		{-50, StatusHigh},
	}

	for _, tt := range tests {
		if got := fc.status(tt.diff); got != tt.want {
			t.Errorf("status(%f) = %s, want %s", tt.diff, got, tt.want)
		}
	}
}

func TestDistributionTypeBoundaries(t *testing.T) {
	fc := NewFairnessClassifier(testFairnessConfig())

	tests := []struct {
		diff float64
		want string
	}{
		{0, TypeBalanced},
		{-15, TypeBalanced}, // exactly at the skew threshold stays Balanced
		{15, TypeBalanced},
		{-15.01, TypeUnderfunded},
		{15.01, TypeOverfunded},
		{-20, TypeUnderfunded},
		{20, TypeOverfunded},
		{-50, TypeUnderfunded},
		{25, TypeOverfunded},
	}

	for _, tt := range tests {
		if got := fc.distributionType(tt.diff); got != tt.want {
			t.Errorf("distributionType(%f) = %s, want %s", tt.diff, got, tt.want)
		}
	}
}

func TestClassifyCardinality(t *testing.T) {
	records := []Record{
		rec("B1", "North", 100),
		rec("B2", "South", 50),
		rec("B3", "East", 75),
	}

	coverage := AggregateCoverage(records)
	fc := NewFairnessClassifier(testFairnessConfig())
	rows := fc.Classify(coverage, records)

	if len(rows) != len(coverage) {
		t.Fatalf("expected %d fairness rows, got %d", len(coverage), len(rows))
	}
	for i := range rows {
		if rows[i].Region != coverage[i].Region {
			t.Errorf("row %d: region %s does not match coverage %s", i, rows[i].Region, coverage[i].Region)
		}
	}
}
