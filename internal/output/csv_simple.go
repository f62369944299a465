package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "InitialLumpSum", "MonthlySIP", "StepUpPercent", "TenureYears", "AnnualReturnPercent", "TotalContributions", "TotalInvested", "LumpSumFutureValue", "ContributionsFutureValue", "FinalValue", "TotalReturns", "ReturnPercentage"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		in, r := sc.Input, sc.Result
		row := []string{
			sc.Name,
			FormatAmount(in.InitialLumpSum),
			FormatAmount(in.InitialMonthlyContribution),
			FormatAmount(in.StepUpPercentage),
			intToString(in.TenureYears),
			FormatAmount(in.AnnualReturnPercentage),
			FormatAmount(r.TotalContributions),
			FormatAmount(r.TotalInvested),
			FormatAmount(r.LumpSumFutureValue),
			FormatAmount(r.ContributionsFutureValue),
			FormatAmount(r.FinalValue),
			FormatAmount(r.TotalReturns),
			FormatAmount(r.ReturnPercentage),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
