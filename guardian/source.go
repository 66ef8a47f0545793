package guardian

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fairaid-guardian/database"
)

// Synthetic generator parameters. Region bias skews aid amounts so the
// fairness classifier has disparities to find; the duplicated records get
// inflated amounts so they read as suspicious, not as clean re-entries.
var (
	syntheticRegions = []string{"North", "South", "East", "West"}
	syntheticBias    = map[string]float64{
		"North": 1.2,
		"South": 0.8,
		"East":  1.0,
		"West":  0.9,
	}
	syntheticAgeGroups = []string{"18-29", "30-49", "50-69", "70+"}
	syntheticGenders   = []string{"M", "F", "NB"}
)

const duplicateCount = 5

// SyntheticSource generates a deterministic in-memory disbursement table.
// The same seed and record count always produce the same table, so the
// version token is derived from those two values alone.
type SyntheticSource struct {
	seed   int64
	count  int
	anchor time.Time
}

// NewSyntheticSource creates a synthetic record source. count is the number
// of base records before duplicate injection.
func NewSyntheticSource(seed int64, count int) *SyntheticSource {
	return &SyntheticSource{
		seed:   seed,
		count:  count,
		anchor: time.Now().Truncate(24 * time.Hour),
	}
}

// Load generates the synthetic table
func (s *SyntheticSource) Load(ctx context.Context) ([]Record, error) {
	return s.Generate(), nil
}

// Version returns the seed-keyed source token
func (s *SyntheticSource) Version(ctx context.Context) (string, error) {
	return fmt.Sprintf("synthetic:%d:%d", s.seed, s.count), nil
}

// Generate builds the full synthetic dataset: count base records plus a
// handful of duplicated beneficiaries with inflated amounts
func (s *SyntheticSource) Generate() []Record {
	rng := rand.New(rand.NewSource(s.seed))

	records := make([]Record, 0, s.count+duplicateCount)
	for i := 0; i < s.count; i++ {
		region := syntheticRegions[rng.Intn(len(syntheticRegions))]
		baseIncome := 100 + rng.Float64()*4900

		// Aid amount: 10% of income scaled by regional bias, plus noise.
		// Negative raw values are clamped to zero at the source.
		amount := baseIncome*0.1*syntheticBias[region] + (rng.Float64()*100 - 50)
		if amount < 0 {
			amount = 0
		}

		records = append(records, Record{
			BeneficiaryID:  fmt.Sprintf("BEN-%05d", 10000+rng.Intn(90000)),
			Region:         region,
			AgeGroup:       syntheticAgeGroups[rng.Intn(len(syntheticAgeGroups))],
			Gender:         syntheticGenders[rng.Intn(len(syntheticGenders))],
			AmountReceived: roundCents(amount),
			DateReceived:   s.anchor.AddDate(0, 0, -rng.Intn(365)),
		})
	}

	// Inject duplicate records with a suspicious amount change
	for i := 0; i < duplicateCount && len(records) > 0; i++ {
		dupe := records[rng.Intn(len(records))]
		dupe.AmountReceived = roundCents(dupe.AmountReceived * 1.5)
		records = append(records, dupe)
	}

	return records
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// WarehouseSource loads the disbursement table from the PostgreSQL
// beneficiaries table. A load failure means the source is unavailable and
// is reported to the caller as-is; there is no retry.
type WarehouseSource struct {
	repo *database.BeneficiaryRepository
}

// NewWarehouseSource creates a warehouse-backed record source
func NewWarehouseSource(repo *database.BeneficiaryRepository) *WarehouseSource {
	return &WarehouseSource{repo: repo}
}

// Load fetches the full beneficiaries table
func (s *WarehouseSource) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.repo.GetAllRecords()
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			BeneficiaryID:  row.BeneficiaryID,
			Region:         row.Region,
			AgeGroup:       row.AgeGroup,
			Gender:         row.Gender,
			AmountReceived: row.AmountReceived,
			DateReceived:   row.DateReceived,
		}
	}
	return records, nil
}

// Regions answers the sidebar filter list from the warehouse index instead
// of a full table load
func (s *WarehouseSource) Regions(ctx context.Context) ([]string, error) {
	return s.repo.GetDistinctRegions()
}

// RecentRecords serves the raw-data preview straight from the warehouse,
// most recent disbursements first
func (s *WarehouseSource) RecentRecords(ctx context.Context, limit int) ([]Record, int, error) {
	rows, err := s.repo.GetRecentRecords(limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountRecords()
	if err != nil {
		return nil, 0, err
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			BeneficiaryID:  row.BeneficiaryID,
			Region:         row.Region,
			AgeGroup:       row.AgeGroup,
			Gender:         row.Gender,
			AmountReceived: row.AmountReceived,
			DateReceived:   row.DateReceived,
		}
	}
	return records, int(total), nil
}

// Version derives the source token from the row count and the latest
// disbursement date, so new loads invalidate cached snapshots
func (s *WarehouseSource) Version(ctx context.Context) (string, error) {
	count, err := s.repo.CountRecords()
	if err != nil {
		return "", err
	}
	latest, err := s.repo.GetLatestDisbursementDate()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("warehouse:%d:%d", count, latest.Unix()), nil
}
