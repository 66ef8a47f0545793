package guardian

// Anomaly type and risk labels
const (
	AnomalyDuplicateRecord = "Duplicate Record"

	RiskHigh   = "High"
	RiskMedium = "Medium"
)

// AnomalyRow flags a beneficiary identifier that appears more than once in
// the disbursement table
type AnomalyRow struct {
	BeneficiaryID string `json:"beneficiary_id"`
	RecordCount   int    `json:"record_count"`
	AnomalyType   string `json:"anomaly_type"`
	RiskScore     string `json:"risk_score"`
}

// AnomalyDetector finds duplicate-identifier records and grades their risk
type AnomalyDetector struct {
	// duplicateSpreadPct is the relative spread between a beneficiary's
	// smallest and largest duplicate amounts above which the duplicate is
	// graded High rather than Medium
	duplicateSpreadPct float64
}

// NewAnomalyDetector creates a detector with the given spread threshold
func NewAnomalyDetector(duplicateSpreadPct float64) *AnomalyDetector {
	return &AnomalyDetector{duplicateSpreadPct: duplicateSpreadPct}
}

// Detect emits one AnomalyRow per beneficiary identifier appearing two or
// more times, with the exact multiplicity. Rows come out in first-seen
// input order so repeated runs render identically.
//
// Risk grading: an exact re-entry of the same amount is graded Medium
// (likely a double submission); duplicates whose amounts spread apart by
// more than the threshold are graded High (the amount was changed between
// entries, the classic leakage pattern).
func (ad *AnomalyDetector) Detect(records []Record) []AnomalyRow {
	type group struct {
		count    int
		min, max float64
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, rec := range records {
		g, ok := groups[rec.BeneficiaryID]
		if !ok {
			groups[rec.BeneficiaryID] = &group{count: 1, min: rec.AmountReceived, max: rec.AmountReceived}
			order = append(order, rec.BeneficiaryID)
			continue
		}
		g.count++
		if rec.AmountReceived < g.min {
			g.min = rec.AmountReceived
		}
		if rec.AmountReceived > g.max {
			g.max = rec.AmountReceived
		}
	}

	rows := make([]AnomalyRow, 0)
	for _, id := range order {
		g := groups[id]
		if g.count < 2 {
			continue
		}
		rows = append(rows, AnomalyRow{
			BeneficiaryID: id,
			RecordCount:   g.count,
			AnomalyType:   AnomalyDuplicateRecord,
			RiskScore:     ad.riskScore(g.min, g.max),
		})
	}
	return rows
}

func (ad *AnomalyDetector) riskScore(minAmount, maxAmount float64) string {
	if maxAmount == minAmount {
		return RiskMedium
	}
	if minAmount == 0 {
		// Zero next to a non-zero amount is an unbounded spread
		return RiskHigh
	}
	spreadPct := (maxAmount - minAmount) / minAmount * 100
	if spreadPct > ad.duplicateSpreadPct {
		return RiskHigh
	}
	return RiskMedium
}
