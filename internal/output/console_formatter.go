package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cf := formatterFor(results)
	fmt.Fprintln(&buf, "STEP-UP SIP PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: Invested=%s Value=%s Returns=%s (%s)\n",
			sc.Name,
			cf.Format(r.TotalInvested),
			cf.Format(r.FinalValue),
			cf.Format(r.TotalReturns),
			FormatPercentage(r.ReturnPercentage),
		)
		fmt.Fprintf(&buf, "  LumpSum=%s->%s SIP=%s->%s Years=%d\n",
			cf.Format(r.InitialLumpSum), cf.Format(r.LumpSumFutureValue),
			cf.Format(r.TotalContributions), cf.Format(r.ContributionsFutureValue),
			len(r.YearlyRecords))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" && len(results.Scenarios) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (ahead by %s)\n", rec.ScenarioName, cf.Format(rec.RunnerUpGap))
	}
	return buf.Bytes(), nil
}
