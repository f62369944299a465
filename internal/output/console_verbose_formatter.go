package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// ConsoleVerboseFormatter renders summary cards, the investment breakdown and
// the year-by-year table for every scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

const ruleWidth = 86

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cf := formatterFor(results)

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf, "STEP-UP SIP + LUMP SUM PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))

	for _, sc := range results.Scenarios {
		writeScenario(&buf, cf, sc)
	}

	if len(results.Scenarios) > 1 {
		writeComparison(&buf, cf, results)
	}
	if results.Sensitivity != nil {
		writeSensitivity(&buf, cf, results.Sensitivity)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "ASSUMPTIONS")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, cf *CurrencyFormatter, sc domain.ScenarioSummary) {
	in, r := sc.Input, sc.Result
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "SCENARIO: %s\n", sc.Name)
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "Inputs: lump sum %s, monthly SIP %s (%s in year 1), step-up %s every %d months, %d years at %s\n",
		cf.Format(in.InitialLumpSum), cf.Format(in.InitialMonthlyContribution), cf.Format(firstYearSIP(in.InitialMonthlyContribution)),
		FormatPercentage(in.StepUpPercentage), in.StepUpFrequencyMonths,
		in.TenureYears, FormatPercentage(in.AnnualReturnPercentage))
	if sc.StartDate != nil {
		fmt.Fprintf(buf, "Starting: %s\n", sc.StartDate.Format("January 2006"))
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "  %-22s %s\n", "Total Investment", cf.Format(r.TotalInvested))
	fmt.Fprintf(buf, "  %-22s %s\n", "Final Value", cf.Format(r.FinalValue))
	fmt.Fprintf(buf, "  %-22s %s\n", "Total Returns", cf.Format(r.TotalReturns))
	fmt.Fprintf(buf, "  %-22s %s\n", "Return %", FormatPercentage(r.ReturnPercentage))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "Investment Breakdown")
	if r.InitialLumpSum > 0 {
		fmt.Fprintf(buf, "  Lump sum:      invested %s, grows to %s (returns %s), %s of final value\n",
			cf.Format(r.InitialLumpSum), cf.Format(r.LumpSumFutureValue), cf.Format(r.LumpSumReturns), shareOf(r.LumpSumFutureValue, r.FinalValue))
	}
	if r.TotalContributions > 0 {
		fmt.Fprintf(buf, "  Step-up SIP:   invested %s, grows to %s (returns %s), %s of final value\n",
			cf.Format(r.TotalContributions), cf.Format(r.ContributionsFutureValue), cf.Format(r.ContributionsReturns), shareOf(r.ContributionsFutureValue, r.FinalValue))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "Year-by-Year Breakdown")
	fmt.Fprintf(buf, "%s %s %s %s %s\n",
		padRight("Year", 10), padLeft("SIP This Year", 18), padLeft("Total Invested", 18),
		padLeft("Value", 18), padLeft("Returns", 18))
	for _, y := range r.YearlyRecords {
		label := intToString(y.Year)
		if y.PeriodEnd != nil {
			label += " (" + y.PeriodEnd.Format("2006") + ")"
		}
		fmt.Fprintf(buf, "%s %s %s %s %s\n",
			padRight(label, 10),
			padLeft(cf.Format(y.ContributionThisYear), 18),
			padLeft(cf.Format(y.CumulativeInvested), 18),
			padLeft(cf.Format(y.ValueAtYearEnd), 18),
			padLeft(cf.Format(y.ReturnsAtYearEnd), 18))
	}
}

func writeComparison(buf *bytes.Buffer, cf *CurrencyFormatter, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(buf, "%s %s %s %s\n", padRight("Scenario", 28), padLeft("Invested", 18), padLeft("Final Value", 18), padLeft("Return %", 12))
	for _, sc := range results.Scenarios {
		fmt.Fprintf(buf, "%s %s %s %s\n",
			padRight(sc.Name, 28),
			padLeft(cf.Format(sc.Result.TotalInvested), 18),
			padLeft(cf.Format(sc.Result.FinalValue), 18),
			padLeft(FormatPercentage(sc.Result.ReturnPercentage), 12))
	}
	cmp := results.Comparison
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Highest final value:  %s (%s)\n", cmp.BestScenarioForValue, cf.Format(cmp.HighestFinalValue))
	if cmp.BestScenarioForReturn != "" {
		fmt.Fprintf(buf, "Best return on money: %s\n", cmp.BestScenarioForReturn)
	}
	rec := AnalyzeScenarios(results)
	fmt.Fprintf(buf, "Recommended: %s, ahead of the runner-up by %s\n", rec.ScenarioName, cf.Format(rec.RunnerUpGap))
}

func writeSensitivity(buf *bytes.Buffer, cf *CurrencyFormatter, sa *domain.SensitivityAnalysis) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS (base: %s, final value %s)\n", sa.BaseScenarioName, cf.Format(sa.BaseFinalValue))
	fmt.Fprintln(buf, strings.Repeat("=", ruleWidth))
	for _, res := range sa.Results {
		fmt.Fprintf(buf, "%s (base %g, spread %s)\n", res.Parameter.Name, res.BaseValue, cf.Format(res.Spread))
		for _, p := range res.Points {
			fmt.Fprintf(buf, "  %s %s %s\n",
				padLeft(fmt.Sprintf("%g", p.Value), 10),
				padLeft(cf.Format(p.FinalValue), 18),
				padLeft(FormatPercentage(p.ChangePercent), 10))
		}
	}
	if sa.MostSensitiveParameter != "" {
		fmt.Fprintf(buf, "Most sensitive parameter: %s\n", sa.MostSensitiveParameter)
	}
}
