package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"SIPCALC_LOG_LEVEL", "SIPCALC_CURRENCY", "SIPCALC_LOCALE", "SIPCALC_PORT", "SIPCALC_OUTPUT_DIR"} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCalculateConsole(t *testing.T) {
	out, err := execute(t, "calculate", "--lump-sum", "100000", "--monthly", "5000", "--step-up", "10", "--years", "1", "--rate", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO: Plan")
	assert.Contains(t, out, "76,047")
}

func TestCalculateCSV(t *testing.T) {
	out, err := execute(t, "calculate", "--lump-sum", "100000", "--monthly", "5000", "--step-up", "10", "--years", "1", "--rate", "12", "--format", "csv", "--name", "Mine")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Mine,100000.00,5000.00,10.00,1,12.00,60000.00,160000.00,112000.00,64046.64,176046.64,16046.64,"))
}

func TestCalculateRejectsEmptyPlan(t *testing.T) {
	_, err := execute(t, "calculate", "--years", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please enter at least one investment amount (SIP or Lump Sum)")
}

func TestCalculateRejectsZeroTenure(t *testing.T) {
	_, err := execute(t, "calculate", "--monthly", "5000", "--years", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Investment tenure must be greater than 0")

	_, err = execute(t, "calculate", "--monthly", "5000", "--years", "0", "--clamp")
	assert.NoError(t, err)
}

func TestCalculateClamp(t *testing.T) {
	_, err := execute(t, "calculate", "--monthly", "1000", "--years", "80", "--rate", "12")
	require.Error(t, err)

	out, err := execute(t, "calculate", "--monthly", "1000", "--years", "80", "--rate", "12", "--clamp", "--format", "detailed-csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 51)
}

func TestCalculateStartDate(t *testing.T) {
	out, err := execute(t, "calculate", "--monthly", "1000", "--years", "2", "--start", "2025-04-01", "--format", "detailed-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan,2,2027-03-31,2026-27,")

	_, err = execute(t, "calculate", "--monthly", "1000", "--start", "April")
	assert.Error(t, err)
}

func TestCalculateUnknownFormat(t *testing.T) {
	_, err := execute(t, "calculate", "--monthly", "1000", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestExampleThenRunAndCompare(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plan.yaml")
	out, err := execute(t, "example", file)
	require.NoError(t, err)
	assert.Contains(t, out, file)

	out, err = execute(t, "run", "--config", file, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Step-up SIP"`)
	assert.Contains(t, out, `"sensitivity"`)

	out, err = execute(t, "compare", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: Long Horizon")

	reports := filepath.Join(dir, "reports")
	out, err = execute(t, "run", file, "--format", "all", "--output", reports)
	require.NoError(t, err)
	entries, err := os.ReadDir(reports)
	require.NoError(t, err)
	assert.Len(t, entries, 7)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)
}

func TestSensitivityCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plan.yaml")
	_, err := execute(t, "example", file)
	require.NoError(t, err)

	out, err := execute(t, "sensitivity", "--config", file, "--base", "Flat SIP", "--param", "tenure_years=5:25:5")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS (base: Flat SIP")
	assert.Contains(t, out, "Most sensitive parameter: tenure_years")

	_, err = execute(t, "sensitivity", "--config", file, "--param", "tenure_years=5")
	assert.Error(t, err)
}

func TestParseSensitivityParameter(t *testing.T) {
	p, err := parseSensitivityParameter("step_up_percentage=0:20:5")
	require.NoError(t, err)
	assert.Equal(t, "step_up_percentage", p.Name)
	assert.Equal(t, 0.0, p.MinValue)
	assert.Equal(t, 20.0, p.MaxValue)
	assert.Equal(t, 5, p.Steps)

	for _, bad := range []string{"x", "x=1:2", "x=a:2:3", "x=1:b:3", "x=1:2:c"} {
		_, err := parseSensitivityParameter(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatsAndVersion(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "detailed-csv")
	assert.Contains(t, out, "verbose -> console")

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sipcalc dev\n", out)
}
