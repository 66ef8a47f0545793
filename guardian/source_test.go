package guardian

import (
	"context"
	"reflect"
	"testing"
)

func TestSyntheticSourceDeterministic(t *testing.T) {
	a := NewSyntheticSource(42, 200).Generate()
	b := NewSyntheticSource(42, 200).Generate()

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must generate an identical dataset")
	}

	c := NewSyntheticSource(43, 200).Generate()
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should not generate identical datasets")
	}
}

func TestSyntheticSourceShape(t *testing.T) {
	records := NewSyntheticSource(42, 200).Generate()

	if len(records) != 200+duplicateCount {
		t.Fatalf("expected %d records, got %d", 200+duplicateCount, len(records))
	}

	regions := map[string]bool{}
	for _, r := range records {
		if r.AmountReceived < 0 {
			t.Errorf("amount %f violates the non-negative invariant", r.AmountReceived)
		}
		if r.BeneficiaryID == "" || r.Region == "" {
			t.Errorf("record missing identity fields: %+v", r)
		}
		regions[r.Region] = true
	}

	for _, region := range syntheticRegions {
		if !regions[region] {
			t.Errorf("region %s missing from generated dataset", region)
		}
	}
}

func TestSyntheticSourceInjectsDuplicates(t *testing.T) {
	records := NewSyntheticSource(42, 500).Generate()

	counts := map[string]int{}
	for _, r := range records {
		counts[r.BeneficiaryID]++
	}

	duplicated := 0
	for _, n := range counts {
		if n > 1 {
			duplicated++
		}
	}

	// At least the injected duplicates must be present; identifier
	// collisions in the base draw can add more
	if duplicated < duplicateCount {
		t.Errorf("expected at least %d duplicated identifiers, got %d", duplicateCount, duplicated)
	}
}

func TestSyntheticSourceVersionKeyedBySeed(t *testing.T) {
	ctx := context.Background()

	v1, err := NewSyntheticSource(42, 200).Version(ctx)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := NewSyntheticSource(42, 200).Version(ctx)
	if err != nil {
		t.Fatal(err)
	}
	v3, err := NewSyntheticSource(7, 200).Version(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if v1 != v2 {
		t.Errorf("same seed must yield the same version token: %s vs %s", v1, v2)
	}
	if v1 == v3 {
		t.Errorf("different seeds must yield different version tokens: %s", v1)
	}
}
