package output

import (
	json "github.com/goccy/go-json"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON,
// adding the chart series of each scenario.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	charts := make(map[string]ChartSeries, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		charts[sc.Name] = BuildChartSeries(sc.Result.YearlyRecords)
	}
	doc := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation         `json:"recommendation"`
		Charts         map[string]ChartSeries `json:"charts"`
	}{results, AnalyzeScenarios(results), charts}
	return json.MarshalIndent(doc, "", "  ")
}
