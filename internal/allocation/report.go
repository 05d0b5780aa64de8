package allocation

import (
	"strings"

	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/format"
)

// ReportConfig controls the wording and number formatting of the text report.
type ReportConfig struct {
	Money      format.Money
	Title      string
	Disclaimer string
}

// DefaultReportConfig returns the standard report layout.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Money:      format.DefaultMoney(),
		Title:      constants.DefaultReportTitle,
		Disclaimer: constants.DefaultDisclaimer,
	}
}

// RenderReport builds the text report. It performs no I/O and returns the
// same bytes for the same inputs.
func RenderReport(cfg ReportConfig, totalAssets float64, results []Result, totals CategoryTotals) string {
	heavy := strings.Repeat("=", constants.BannerWidth)
	light := strings.Repeat("-", constants.BannerWidth)
	m := cfg.Money

	lines := []string{
		heavy,
		cfg.Title,
		heavy,
		"Total assets: " + m.Currency(totalAssets),
		"",
		"Allocation details:",
		light,
	}

	for _, r := range results {
		lines = append(lines,
			"• "+r.Name,
			"  Allocation: "+m.Percent(r.Percentage),
			"  Amount: "+m.Currency(r.Amount),
		)
		if r.ID != "" {
			lines = append(lines, "  Code: "+r.ID)
		}
		if r.Memo != "" {
			lines = append(lines, "  Memo: "+r.Memo)
		}
		lines = append(lines, "")
	}

	if totals.Len() > 1 {
		lines = append(lines, "Category summary:", light)
		totals.Each(func(total CategoryTotal) {
			lines = append(lines, "• "+string(total.Category)+": "+m.Percent(total.Percentage)+" ("+m.Currency(total.Amount)+")")
		})
		lines = append(lines, "")
	}

	lines = append(lines, heavy, cfg.Disclaimer)
	return strings.Join(lines, "\n")
}
