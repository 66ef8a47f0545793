package guardian

import "testing"

func TestDetectNoDuplicates(t *testing.T) {
	detector := NewAnomalyDetector(10)

	rows := detector.Detect([]Record{
		rec("B1", "North", 100),
		rec("B2", "North", 150),
		rec("B3", "South", 50),
	})

	if len(rows) != 0 {
		t.Errorf("expected no anomalies, got %d", len(rows))
	}
	// The empty table must encode as [] in the dashboard JSON, not null
	if rows == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestDetectMultiplicity(t *testing.T) {
	detector := NewAnomalyDetector(10)

	rows := detector.Detect([]Record{
		rec("B1", "North", 100),
		rec("B2", "North", 100),
		rec("B1", "North", 100),
		rec("B1", "South", 100),
		rec("B3", "South", 100),
		rec("B3", "South", 100),
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 anomalies, got %d", len(rows))
	}

	// First-seen input order
	if rows[0].BeneficiaryID != "B1" || rows[1].BeneficiaryID != "B3" {
		t.Errorf("unexpected order: %s, %s", rows[0].BeneficiaryID, rows[1].BeneficiaryID)
	}
	if rows[0].RecordCount != 3 {
		t.Errorf("B1 record count = %d, want 3", rows[0].RecordCount)
	}
	if rows[1].RecordCount != 2 {
		t.Errorf("B3 record count = %d, want 2", rows[1].RecordCount)
	}
	for _, row := range rows {
		if row.AnomalyType != AnomalyDuplicateRecord {
			t.Errorf("anomaly type = %s, want %s", row.AnomalyType, AnomalyDuplicateRecord)
		}
	}
}

func TestDetectRiskGrading(t *testing.T) {
	detector := NewAnomalyDetector(10)

	tests := []struct {
		name    string
		amounts []float64
		want    string
	}{
		{"exact re-entry", []float64{100, 100}, RiskMedium},
		{"small spread", []float64{100, 105}, RiskMedium}, // 5% <= 10% threshold
		{"inflated duplicate", []float64{100, 150}, RiskHigh},
		{"zero next to non-zero", []float64{0, 80}, RiskHigh},
		{"both zero", []float64{0, 0}, RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []Record
			for _, amount := range tt.amounts {
				records = append(records, rec("DUP", "North", amount))
			}

			rows := detector.Detect(records)
			if len(rows) != 1 {
				t.Fatalf("expected 1 anomaly, got %d", len(rows))
			}
			if rows[0].RiskScore != tt.want {
				t.Errorf("risk = %s, want %s", rows[0].RiskScore, tt.want)
			}
		})
	}
}

func TestDetectEmpty(t *testing.T) {
	detector := NewAnomalyDetector(10)
	if rows := detector.Detect(nil); len(rows) != 0 {
		t.Errorf("expected no anomalies for empty input, got %d", len(rows))
	}
}
