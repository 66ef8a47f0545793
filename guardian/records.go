// Package guardian implements the fairness and leakage analysis pipeline
// for public aid disbursement data.
//
// The pipeline is a single-pass batch over a flat table of disbursement
// records: coverage aggregation per region, fairness classification against
// the global average, and duplicate-record anomaly detection. Every stage
// is a pure transform from one immutable table to the next; nothing is
// mutated in place and every derived table is recomputed from the raw
// records on each refresh.
package guardian

import (
	"context"
	"time"
)

// Record is one aid disbursement event as seen by the pipeline.
// BeneficiaryID is not unique across records; repeated identifiers are a
// leakage signal handled by the anomaly detector, not an input error.
type Record struct {
	BeneficiaryID  string    `json:"beneficiary_id"`
	Region         string    `json:"region"`
	AgeGroup       string    `json:"age_group"`
	Gender         string    `json:"gender"`
	AmountReceived float64   `json:"amount_received"`
	DateReceived   time.Time `json:"date_received"`
}

// RecordSource supplies the flat disbursement table the pipeline runs on.
//
// Version returns a source-version token: two loads that would return the
// same table must return the same token. The pipeline uses it to invalidate
// cached snapshots, so a changing warehouse must change the token.
type RecordSource interface {
	Load(ctx context.Context) ([]Record, error)
	Version(ctx context.Context) (string, error)
}

// RegionLister is an optional RecordSource capability: sources that can
// answer the region list from an index implement it, sparing a full table
// load for the sidebar filter.
type RegionLister interface {
	Regions(ctx context.Context) ([]string, error)
}

// RecordPreviewer is an optional RecordSource capability for the raw-data
// preview panel: returns up to limit records plus the full table size.
type RecordPreviewer interface {
	RecentRecords(ctx context.Context, limit int) ([]Record, int, error)
}
