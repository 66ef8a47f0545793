package guardian

import (
	"math"

	"fairaid-guardian/config"
)

// Disparity status labels
const (
	StatusFair     = "Fair"
	StatusModerate = "Moderate Disparity"
	StatusHigh     = "High Disparity"
)

// Distribution type labels
const (
	TypeUnderfunded = "Underfunded"
	TypeBalanced    = "Balanced"
	TypeOverfunded  = "Overfunded"
)

// FairnessRow extends a region's coverage stats with its deviation from the
// global average and the categorical labels derived from it
type FairnessRow struct {
	CoverageRow
	GlobalAvg        float64 `json:"global_avg"`
	PercentDiff      float64 `json:"percent_diff"`
	Status           string  `json:"status"`
	DistributionType string  `json:"distribution_type"`
}

// FairnessClassifier maps per-region averages to disparity labels.
// The status thresholds and the funding-skew threshold are independent
// tunables; neither is derived from the other.
type FairnessClassifier struct {
	cfg config.FairnessConfig
}

// NewFairnessClassifier creates a classifier with the given thresholds
func NewFairnessClassifier(cfg config.FairnessConfig) *FairnessClassifier {
	return &FairnessClassifier{cfg: cfg}
}

// GlobalAverage returns the true population mean over all records:
// sum of every amount divided by the total record count. This deliberately
// differs from averaging the per-region averages, which weights small
// regions as heavily as large ones and skews the disparity labels whenever
// region sizes differ. Returns 0 for an empty record set.
func GlobalAverage(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.AmountReceived
	}
	return sum / float64(len(records))
}

// Classify produces one FairnessRow per CoverageRow, same regions, same
// order. A zero global average (all-zero dataset) means there is no
// disparity to measure: every region reports 0% deviation, Fair, Balanced.
func (fc *FairnessClassifier) Classify(coverage []CoverageRow, records []Record) []FairnessRow {
	globalAvg := GlobalAverage(records)

	rows := make([]FairnessRow, len(coverage))
	for i, cov := range coverage {
		diff := 0.0
		if globalAvg != 0 {
			diff = (cov.AvgAmount - globalAvg) / globalAvg * 100
		}

		rows[i] = FairnessRow{
			CoverageRow:      cov,
			GlobalAvg:        globalAvg,
			PercentDiff:      diff,
			Status:           fc.status(diff),
			DistributionType: fc.distributionType(diff),
		}
	}
	return rows
}

// status buckets the absolute deviation. Comparisons are strict, so a
// deviation sitting exactly on a threshold falls in the milder bucket.
func (fc *FairnessClassifier) status(percentDiff float64) string {
	abs := math.Abs(percentDiff)
	switch {
	case abs > fc.cfg.HighDisparityPct:
		return StatusHigh
	case abs > fc.cfg.ModerateDisparityPct:
		return StatusModerate
	default:
		return StatusFair
	}
}

// distributionType buckets the signed deviation against the funding-skew
// threshold; exactly ±skew is Balanced
func (fc *FairnessClassifier) distributionType(percentDiff float64) string {
	switch {
	case percentDiff < -fc.cfg.FundingSkewPct:
		return TypeUnderfunded
	case percentDiff > fc.cfg.FundingSkewPct:
		return TypeOverfunded
	default:
		return TypeBalanced
	}
}
