package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/asset-allocation/internal/plan"
	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/validation"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	planFile string
	selector string

	stdout io.Writer
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check that a plan file is well-formed" }
func (*validateCmd) Usage() string {
	return `validate [-plan <file>] [-select <jsonpath>]

  Validates the plan and prints its entry count and percentage total.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.planFile, "plan", "", "plan file (JSON or YAML); defaults to the configured plan path")
	f.StringVar(&c.selector, "select", "", "JSONPath of the plan inside a larger document")
}

func (c *validateCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	p := message.NewPrinter(language.English)

	planPath := firstNonEmpty(c.planFile, a.conf.Plan.Path, constants.DefaultPlanFile)
	result, err := plan.ReadFile(planPath, firstNonEmpty(c.selector, a.conf.Plan.Select))
	if err != nil {
		_, _ = p.Fprintf(stdout, "✗ plan validation failed: %v\n", err)
		return subcommands.ExitFailure
	}
	logWarnings(a.logger, "validate", result.Warnings)

	_, _ = p.Fprintf(stdout, "✓ plan is valid\n")
	_, _ = p.Fprintf(stdout, "Entries: %d\n", len(result.Plan))
	_, _ = p.Fprintf(stdout, "Total percentage: %.3f\n", result.Sum())
	for _, warning := range result.Warnings {
		_, _ = p.Fprintf(stdout, "Warning: %s\n", warning.Message)
	}
	for _, note := range validation.LintPlan(result.Plan) {
		_, _ = p.Fprintf(stdout, "Note: %s\n", note)
	}
	return subcommands.ExitSuccess
}
