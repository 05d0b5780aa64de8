// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/asset-allocation/pkg/constants"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{
	constants.OutputFormatText,
	constants.OutputFormatJSON,
	constants.OutputFormatCSV,
	constants.OutputFormatMarkdown,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s", strings.Join(OutputFormats, ", "), format)
}

// ParseTotalAssets parses a user-supplied amount. Thousands separators,
// surrounding blanks and a leading currency symbol are tolerated.
func ParseTotalAssets(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimLeft(cleaned, "¥$€£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	if cleaned == "" {
		return 0, fmt.Errorf("total assets is required")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid total assets %q: not a number", input)
	}
	return value, nil
}
