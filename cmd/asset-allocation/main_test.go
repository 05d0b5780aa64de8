package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iwvelando/asset-allocation/internal/config"
)

const cliPlan = `[
  {"name": "A", "percentage": 0.6},
  {"name": "B", "percentage": 0.4}
]`

func testApp(t *testing.T) *app {
	t.Helper()
	conf, err := config.Default()
	require.NoError(t, err)
	return &app{conf: conf, logger: zap.NewNop()}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs, testApp(t))
}

func TestCalcPrintsReport(t *testing.T) {
	var out bytes.Buffer
	cmd := &calcCmd{stdout: &out}

	status := run(t, cmd, "-plan", writeFile(t, "plan.json", cliPlan), "1,000")
	require.Equal(t, subcommands.ExitSuccess, status)

	report := out.String()
	assert.Contains(t, report, "Total assets: ¥1,000.00")
	assert.Contains(t, report, "• A\n  Allocation: 60.0%\n  Amount: ¥600.00")
	assert.Contains(t, report, "• B\n  Allocation: 40.0%\n  Amount: ¥400.00")
	assert.NotContains(t, report, "Category summary:", "A and B are both in the Other category")
}

func TestCalcWritesOutputFile(t *testing.T) {
	var out bytes.Buffer
	cmd := &calcCmd{stdout: &out}
	target := filepath.Join(t.TempDir(), "report.csv")

	status := run(t, cmd, "-plan", writeFile(t, "plan.json", cliPlan), "-format", "csv", "-output", target, "1000")
	require.Equal(t, subcommands.ExitSuccess, status)

	assert.Equal(t, "Report saved to: "+target+"\n", out.String())
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name,category,percentage,amount,id,memo\n"))
	assert.Contains(t, string(data), "A,Other,0.6,600.00,,")
}

func TestCalcRejectsNonPositiveTotal(t *testing.T) {
	cmd := &calcCmd{stdout: &bytes.Buffer{}}
	status := run(t, cmd, "-plan", writeFile(t, "plan.json", cliPlan), "--", "-5")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestCalcUsageErrors(t *testing.T) {
	plan := writeFile(t, "plan.json", cliPlan)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &calcCmd{stdout: &bytes.Buffer{}}, "-plan", plan))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &calcCmd{stdout: &bytes.Buffer{}}, "-plan", plan, "abc"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &calcCmd{stdout: &bytes.Buffer{}}, "-plan", plan, "-format", "xml", "10"))
}

func TestCalcInvalidPlan(t *testing.T) {
	cmd := &calcCmd{stdout: &bytes.Buffer{}}
	status := run(t, cmd, "-plan", writeFile(t, "plan.json", `[{"name": "A"}]`), "1000")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestCalcMissingPlan(t *testing.T) {
	cmd := &calcCmd{stdout: &bytes.Buffer{}}
	status := run(t, cmd, "-plan", filepath.Join(t.TempDir(), "missing.json"), "1000")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestValidateReportsSummary(t *testing.T) {
	var out bytes.Buffer
	cmd := &validateCmd{stdout: &out}

	status := run(t, cmd, "-plan", writeFile(t, "plan.yaml", "- name: A\n  percentage: 0.5\n- name: A\n  percentage: 0.45\n"))
	require.Equal(t, subcommands.ExitSuccess, status)

	text := out.String()
	assert.Contains(t, text, "✓ plan is valid\n")
	assert.Contains(t, text, "Entries: 2\n")
	assert.Contains(t, text, "Total percentage: 0.950\n")
	assert.Contains(t, text, "Warning: total percentage is 0.950, not 1.0\n")
	assert.Contains(t, text, "Note: Entry 1 repeats the name 'A' of entry 0\n")
}

func TestValidateSelectsEmbeddedPlan(t *testing.T) {
	var out bytes.Buffer
	cmd := &validateCmd{stdout: &out}

	doc := `{"portfolio": ` + cliPlan + `}`
	status := run(t, cmd, "-plan", writeFile(t, "doc.json", doc), "-select", "$.portfolio")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "Total percentage: 1.000\n")
}

func TestValidateFailure(t *testing.T) {
	var out bytes.Buffer
	cmd := &validateCmd{stdout: &out}

	status := run(t, cmd, "-plan", writeFile(t, "plan.json", `{"name": "A"}`))
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out.String(), "✗ plan validation failed: plan not a sequence")
}

func TestInitializeLogger(t *testing.T) {
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", Format: "json"}, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = initializeLogger(config.LoggingConfig{Level: "warning"}, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))

	_, err = initializeLogger(config.LoggingConfig{Level: "loud"}, "")
	assert.Error(t, err)

	_, err = initializeLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)

	logFile := filepath.Join(t.TempDir(), "logs", "app.log")
	_, err = initializeLogger(config.LoggingConfig{OutputFile: logFile}, "")
	require.NoError(t, err)
	_, err = os.Stat(logFile)
	assert.NoError(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty())
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "8000", portOf(":8000"))
	assert.Equal(t, "9000", portOf("127.0.0.1:9000"))
	assert.Equal(t, "garbage", portOf("garbage"))
}
