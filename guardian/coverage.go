package guardian

import "sort"

// CoverageRow summarizes disbursements for one region.
//
// TotalBeneficiaries counts distinct beneficiary identifiers while
// AvgAmount averages over every record including duplicates. The asymmetry
// is intentional: a region whose rows are padded with duplicate entries
// shows an inflated average against its distinct headcount, which is
// exactly what the fairness view should surface.
type CoverageRow struct {
	Region             string  `json:"region"`
	TotalBeneficiaries int     `json:"total_beneficiaries"`
	TotalDistributed   float64 `json:"total_distributed"`
	AvgAmount          float64 `json:"avg_amount"`
}

type coverageAccumulator struct {
	ids   map[string]struct{}
	sum   float64
	count int
}

// AggregateCoverage partitions records by region and computes per-region
// distinct headcount, distributed total, and mean amount. Regions with no
// records produce no row. Output is sorted by region name for stable
// rendering.
func AggregateCoverage(records []Record) []CoverageRow {
	acc := make(map[string]*coverageAccumulator)

	for _, rec := range records {
		a, ok := acc[rec.Region]
		if !ok {
			a = &coverageAccumulator{ids: make(map[string]struct{})}
			acc[rec.Region] = a
		}
		a.ids[rec.BeneficiaryID] = struct{}{}
		a.sum += rec.AmountReceived
		a.count++
	}

	rows := make([]CoverageRow, 0, len(acc))
	for region, a := range acc {
		rows = append(rows, CoverageRow{
			Region:             region,
			TotalBeneficiaries: len(a.ids),
			TotalDistributed:   a.sum,
			AvgAmount:          a.sum / float64(a.count),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Region < rows[j].Region
	})

	return rows
}
