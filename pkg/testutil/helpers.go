// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/asset-allocation/internal/allocation"
)

// FindResult finds an allocation result by asset name.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []allocation.Result, name string) *allocation.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// SumAmounts adds up the amounts of every result.
func SumAmounts(results []allocation.Result) float64 {
	var total float64
	for _, r := range results {
		total += r.Amount
	}
	return total
}
