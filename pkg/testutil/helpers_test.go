package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/asset-allocation/internal/allocation"
)

func TestFindResult(t *testing.T) {
	results := []allocation.Result{
		{Name: "Asset A", Percentage: 0.5, Amount: 500},
		{Name: "Asset B", Percentage: 0.3, Amount: 300},
		{Name: "Another Asset", Percentage: 0.2, Amount: 200},
	}

	tests := []struct {
		name           string
		searchName     string
		expectFound    bool
		expectedAmount float64
	}{
		{"Find existing asset A", "Asset A", true, 500},
		{"Find existing asset B", "Asset B", true, 300},
		{"Find asset with longer name", "Another Asset", true, 200},
		{"Search for non-existent asset", "Non-existent", false, 0},
		{"Empty search name", "", false, 0},
		{"Case sensitive search", "asset a", false, 0},
		{"Partial name match", "Asset", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindResult(%q) = %+v, want nil", tt.searchName, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindResult(%q) = nil, want a result", tt.searchName)
			}
			if result.Amount != tt.expectedAmount {
				t.Errorf("FindResult(%q).Amount = %v, want %v", tt.searchName, result.Amount, tt.expectedAmount)
			}
		})
	}
}

func TestFindResultReturnsElementPointer(t *testing.T) {
	results := []allocation.Result{{Name: "A", Amount: 1}}
	FindResult(results, "A").Amount = 2
	if results[0].Amount != 2 {
		t.Errorf("FindResult should point into the slice, got amount %v", results[0].Amount)
	}
}

func TestFindResultEmptySlice(t *testing.T) {
	if FindResult(nil, "A") != nil {
		t.Error("FindResult on nil slice should return nil")
	}
}

func TestSumAmounts(t *testing.T) {
	results := []allocation.Result{{Amount: 0.1}, {Amount: 0.2}, {Amount: 0.7}}
	if got := SumAmounts(results); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("SumAmounts() = %v, want 1.0", got)
	}
	if got := SumAmounts(nil); got != 0 {
		t.Errorf("SumAmounts(nil) = %v, want 0", got)
	}
}
