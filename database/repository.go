package database

import (
	"fmt"
	"time"
)

// BeneficiaryRepository handles database operations for beneficiary
// disbursement records
type BeneficiaryRepository struct {
	db *Database
}

// NewBeneficiaryRepository creates a new beneficiary repository
func NewBeneficiaryRepository(db *Database) *BeneficiaryRepository {
	return &BeneficiaryRepository{db: db}
}

// InitSchema creates the beneficiaries table if it does not exist
func (r *BeneficiaryRepository) InitSchema() error {
	if err := r.db.DB().AutoMigrate(&Beneficiary{}); err != nil {
		return fmt.Errorf("failed to migrate beneficiaries schema: %w", err)
	}
	return nil
}

// GetAllRecords retrieves the full disbursement table in insertion order.
// The pipeline always works on the complete table; filtering happens in
// memory after aggregation.
func (r *BeneficiaryRepository) GetAllRecords() ([]Beneficiary, error) {
	var records []Beneficiary
	if err := r.db.DB().Order("id ASC").Find(&records).Error; err != nil {
		return nil, WrapSourceError("GetAllRecords", err)
	}
	return records, nil
}

// GetRecentRecords retrieves the most recent disbursements for the raw data
// preview panel
func (r *BeneficiaryRepository) GetRecentRecords(limit int) ([]Beneficiary, error) {
	var records []Beneficiary
	query := r.db.DB().Order("date_received DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, WrapSourceError("GetRecentRecords", err)
	}
	return records, nil
}

// GetDistinctRegions returns the region list for the dashboard filter
func (r *BeneficiaryRepository) GetDistinctRegions() ([]string, error) {
	var regions []string
	err := r.db.DB().Model(&Beneficiary{}).
		Distinct("region").
		Order("region ASC").
		Pluck("region", &regions).Error
	if err != nil {
		return nil, WrapSourceError("GetDistinctRegions", err)
	}
	return regions, nil
}

// CountRecords returns the number of disbursement rows. Combined with the
// latest disbursement date it forms the source-version token used for cache
// invalidation.
func (r *BeneficiaryRepository) CountRecords() (int64, error) {
	var count int64
	if err := r.db.DB().Model(&Beneficiary{}).Count(&count).Error; err != nil {
		return 0, WrapSourceError("CountRecords", err)
	}
	return count, nil
}

// GetLatestDisbursementDate returns the most recent date_received, or the
// zero time when the table is empty
func (r *BeneficiaryRepository) GetLatestDisbursementDate() (time.Time, error) {
	var latest *time.Time
	err := r.db.DB().Model(&Beneficiary{}).
		Select("MAX(date_received)").
		Scan(&latest).Error
	if err != nil {
		return time.Time{}, WrapSourceError("GetLatestDisbursementDate", err)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}

// BatchSaveRecords inserts disbursement records in batches. Used by demo
// seeding; duplicate beneficiary identifiers are allowed on purpose.
func (r *BeneficiaryRepository) BatchSaveRecords(records []Beneficiary) error {
	if len(records) == 0 {
		return nil
	}

	batchSize := 100
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		if err := r.db.DB().CreateInBatches(batch, len(batch)).Error; err != nil {
			return fmt.Errorf("BatchSaveRecords batch %d: %w", i/batchSize, err)
		}
	}

	return nil
}
