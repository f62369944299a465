package output

import (
	"bytes"
	_ "embed"
	"html/template"

	json "github.com/goccy/go-json"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG growth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

// htmlScenario is a scenario plus its pre-rendered chart.
type htmlScenario struct {
	domain.ScenarioSummary
	Chart template.HTML
}

func newHTMLTemplate(cf *CurrencyFormatter) *template.Template {
	return template.Must(template.New("report").Funcs(template.FuncMap{
		"curr": cf.Format,
		"pct":  FormatPercentage,
		"json": jsonJS,
	}).Parse(htmlTemplateSource))
}

// jsonJS embeds v in a script block. Marshal failures abort template execution.
func jsonJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cf := formatterFor(results)

	scenarios := make([]htmlScenario, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		series := BuildChartSeries(sc.Result.YearlyRecords)
		scenarios = append(scenarios, htmlScenario{ScenarioSummary: sc, Chart: template.HTML(series.SVG())})
	}

	data := struct {
		*domain.ScenarioComparison
		Items          []htmlScenario
		Recommendation Recommendation
		Assumptions    []string
		CurrencyCode   string
	}{results, scenarios, AnalyzeScenarios(results), assumptionsFor(results), cf.Code()}
	if err := newHTMLTemplate(cf).Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
