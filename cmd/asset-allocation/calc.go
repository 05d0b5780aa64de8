package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/iwvelando/asset-allocation/internal/allocation"
	"github.com/iwvelando/asset-allocation/internal/plan"
	"github.com/iwvelando/asset-allocation/pkg/constants"
	"github.com/iwvelando/asset-allocation/pkg/output"
	"github.com/iwvelando/asset-allocation/pkg/validation"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	planFile string
	selector string
	output   string
	format   string

	stdout io.Writer
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute the allocation for a total asset amount" }
func (*calcCmd) Usage() string {
	return `calc [-plan <file>] [-select <jsonpath>] [-output <file>] [-format text|json|csv|markdown] <total_assets>

  Splits total_assets according to the plan and prints the report.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.planFile, "plan", "", "plan file (JSON or YAML); defaults to the configured plan path")
	f.StringVar(&c.selector, "select", "", "JSONPath of the plan inside a larger document")
	f.StringVar(&c.output, "output", "", "write the report to this file instead of stdout")
	f.StringVar(&c.format, "format", "", "output format override: text, json, csv, markdown")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s", c.Usage())
		return subcommands.ExitUsageError
	}

	totalAssets, err := validation.ParseTotalAssets(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	outputFormat := firstNonEmpty(c.format, a.conf.Output.Format, constants.OutputFormatText)
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	planPath := firstNonEmpty(c.planFile, a.conf.Plan.Path, constants.DefaultPlanFile)
	result, err := plan.ReadFile(planPath, firstNonEmpty(c.selector, a.conf.Plan.Select))
	if err != nil {
		a.logger.Error("failed to load plan",
			zap.String("op", "calc"),
			zap.String("plan", planPath),
			zap.Error(err),
		)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logWarnings(a.logger, "calc", result.Warnings)

	reportCfg := a.conf.Report.Allocation()
	summary, err := allocation.Report(result.Plan, totalAssets, reportCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rendered, err := output.Render(outputFormat, summary, reportCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(rendered), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Report saved to: %s\n", c.output)
		return subcommands.ExitSuccess
	}

	if outputFormat == constants.OutputFormatMarkdown {
		if pretty, err := output.RenderTerminal(rendered, 0); err == nil {
			rendered = pretty
		} else {
			a.logger.Debug("markdown rendering failed, printing raw markdown",
				zap.String("op", "calc"),
				zap.Error(err),
			)
		}
	}

	fmt.Fprint(stdout, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(stdout)
	}
	return subcommands.ExitSuccess
}

func logWarnings(logger *zap.Logger, op string, warnings []plan.Warning) {
	for _, warning := range warnings {
		logger.Warn("Plan warning: "+warning.Message,
			zap.String("op", op),
			zap.String("code", warning.Code),
			zap.Float64("sum", warning.Sum),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
