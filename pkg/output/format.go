// Package output provides alternative renderings of an allocation summary
// besides the plain text report.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/iwvelando/asset-allocation/internal/allocation"
	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/format"
)

// Render produces the summary in the requested output format. Text uses
// the summary's prerendered report.
func Render(outputFormat string, summary allocation.Summary, cfg allocation.ReportConfig) (string, error) {
	switch outputFormat {
	case constants.OutputFormatText, "":
		return summary.Text, nil
	case constants.OutputFormatJSON:
		return JSONString(summary)
	case constants.OutputFormatCSV:
		return CsvString(summary)
	case constants.OutputFormatMarkdown:
		return MarkdownString(summary, cfg), nil
	}
	return "", fmt.Errorf("unsupported output format %s", outputFormat)
}

// JSONString returns the summary as an indented JSON document.
func JSONString(summary allocation.Summary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// CsvString returns one row per allocation with unformatted numbers.
func CsvString(summary allocation.Summary) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	plain := format.Money{DecimalSeparator: "."}
	rows := [][]string{{"name", "category", "percentage", "amount", "id", "memo"}}
	for _, r := range summary.Results {
		rows = append(rows, []string{
			r.Name,
			string(allocation.CategoryOf(r.Name)),
			strconv.FormatFloat(r.Percentage, 'f', -1, 64),
			plain.Number(r.Amount),
			r.ID,
			r.Memo,
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarkdownString returns the summary as a markdown document with an
// allocation table and, when useful, a category table.
func MarkdownString(summary allocation.Summary, cfg allocation.ReportConfig) string {
	var b strings.Builder
	money := cfg.Money

	fmt.Fprintf(&b, "# %s\n\n", cfg.Title)
	fmt.Fprintf(&b, "**Total assets:** %s\n\n", money.Currency(summary.TotalAssets))

	b.WriteString("| Asset | Code | Allocation | Amount | Memo |\n")
	b.WriteString("|---|---|---:|---:|---|\n")
	for _, r := range summary.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			escapeCell(r.Name), escapeCell(r.ID), money.Percent(r.Percentage), money.Currency(r.Amount), escapeCell(r.Memo))
	}

	if summary.Categories.Len() > 1 {
		b.WriteString("\n## Categories\n\n")
		b.WriteString("| Category | Allocation | Amount |\n")
		b.WriteString("|---|---:|---:|\n")
		summary.Categories.Each(func(total allocation.CategoryTotal) {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", total.Category, money.Percent(total.Percentage), money.Currency(total.Amount))
		})
	}

	fmt.Fprintf(&b, "\n> %s\n", cfg.Disclaimer)
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderTerminal renders markdown for display in a terminal.
func RenderTerminal(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}
