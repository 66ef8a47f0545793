package database

import "time"

// Beneficiary represents a single aid disbursement event.
// One beneficiary may appear in multiple rows; duplicated identifiers are
// not rejected at write time because duplication is itself a signal the
// anomaly detector reports on.
//
// Key Fields:
//   - BeneficiaryID: program identifier, NOT unique across rows
//   - Region: categorical grouping key for all coverage and fairness math
//   - AgeGroup/Gender: descriptive demographics, unused by the aggregations
//   - AmountReceived: disbursed amount, clamped to >= 0 at the source
//   - DateReceived: when the disbursement happened
type Beneficiary struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BeneficiaryID  string    `gorm:"size:20;index;not null" json:"beneficiary_id"`
	Region         string    `gorm:"size:50;index;not null" json:"region"`
	AgeGroup       string    `gorm:"size:10" json:"age_group"`
	Gender         string    `gorm:"size:5" json:"gender"`
	AmountReceived float64   `gorm:"type:decimal(15,2);not null" json:"amount_received"`
	DateReceived   time.Time `gorm:"index" json:"date_received"`
}

// TableName specifies the table name for Beneficiary
func (Beneficiary) TableName() string {
	return "demo_beneficiaries"
}
