package validation

import (
	"fmt"

	"github.com/iwvelando/asset-allocation/internal/plan"
)

// LintPlan returns advisory notes about a plan that loaded successfully.
// None of them make a plan unusable.
func LintPlan(p plan.Plan) []string {
	var notes []string

	names := make(map[string]int)
	ids := make(map[string]int)
	for i, entry := range p {
		if first, ok := names[entry.Name]; ok {
			notes = append(notes, fmt.Sprintf("Entry %d repeats the name '%s' of entry %d", i, entry.Name, first))
		} else {
			names[entry.Name] = i
		}

		if entry.ID != "" {
			if first, ok := ids[entry.ID]; ok {
				notes = append(notes, fmt.Sprintf("Entry %d repeats the code '%s' of entry %d", i, entry.ID, first))
			} else {
				ids[entry.ID] = i
			}
		}

		if entry.Percentage == 0 {
			notes = append(notes, fmt.Sprintf("Entry %d ('%s') has a zero percentage", i, entry.Name))
		}
	}

	return notes
}
