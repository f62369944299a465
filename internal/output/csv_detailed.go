package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/pkg/dateutil"
)

// CSVDetailedExporter provides the yearly breakdown per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "PeriodEnd", "FinancialYear", "ContributionThisYear", "CumulativeInvested", "ValueAtYearEnd", "ReturnsAtYearEnd"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		for _, yr := range sc.Result.YearlyRecords {
			periodEnd, fy := "", ""
			if yr.PeriodEnd != nil {
				periodEnd = yr.PeriodEnd.Format("2006-01-02")
			}
			if sc.StartDate != nil {
				fy = dateutil.FinancialYearLabel(*sc.StartDate, yr.Year)
			}
			row := []string{
				sc.Name,
				intToString(yr.Year),
				periodEnd,
				fy,
				FormatAmount(yr.ContributionThisYear),
				FormatAmount(yr.CumulativeInvested),
				FormatAmount(yr.ValueAtYearEnd),
				FormatAmount(yr.ReturnsAtYearEnd),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
