// Package allocation resolves a validated plan against a total asset amount,
// groups the resulting allocations into asset categories and renders the
// text report.
package allocation

import (
	"errors"

	"github.com/iwvelando/asset-allocation/internal/plan"
	"github.com/iwvelando/asset-allocation/pkg/mathutil"
)

// ErrInvalidArgument matches every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a bad call-time parameter.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

// Is lets errors.Is(err, ErrInvalidArgument) match.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Result is one plan entry resolved to a monetary amount.
type Result struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	ID         string  `json:"id,omitempty"`
	Memo       string  `json:"memo,omitempty"`
}

// Calculate multiplies every entry's percentage by totalAssets. Results keep
// the plan's order and are not rounded.
func Calculate(p plan.Plan, totalAssets float64) ([]Result, error) {
	if !(totalAssets > 0) || !mathutil.IsFinite(totalAssets) {
		return nil, &InvalidArgumentError{Msg: "totalAssets must be positive"}
	}

	results := make([]Result, 0, len(p))
	for _, entry := range p {
		results = append(results, Result{
			Name:       entry.Name,
			Percentage: entry.Percentage,
			Amount:     totalAssets * entry.Percentage,
			ID:         entry.ID,
			Memo:       entry.Memo,
		})
	}
	return results, nil
}

// Summary bundles everything produced for one total asset amount.
type Summary struct {
	TotalAssets float64        `json:"totalAssets"`
	Results     []Result       `json:"results"`
	Categories  CategoryTotals `json:"categories"`
	Text        string         `json:"report"`
}

// Report runs Calculate, Categorize and RenderReport in sequence.
func Report(p plan.Plan, totalAssets float64, cfg ReportConfig) (Summary, error) {
	results, err := Calculate(p, totalAssets)
	if err != nil {
		return Summary{}, err
	}
	totals := Categorize(results)
	return Summary{
		TotalAssets: totalAssets,
		Results:     results,
		Categories:  totals,
		Text:        RenderReport(cfg, totalAssets, results, totals),
	}, nil
}
