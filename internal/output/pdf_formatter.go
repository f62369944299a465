package output

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// PDFFormatter renders an A4 report: one page of summary and breakdown per
// scenario, followed by the comparison and sensitivity tables.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

// pdfReport carries the document while sections are appended.
type pdfReport struct {
	pdf *fpdf.Fpdf
	cf  *CurrencyFormatter
}

// amount renders with the ISO code; the core PDF fonts have no rupee glyph.
func (r *pdfReport) amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if math.Round(v) < 0 {
		return "-" + r.cf.Code() + " " + r.cf.Number(-v)
	}
	return r.cf.Code() + " " + r.cf.Number(v)
}

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), cf: formatterFor(results)}
	r.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	r.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	r.pdf.SetFooterFunc(func() {
		r.pdf.SetY(-15)
		r.pdf.SetFont("Arial", "I", 8)
		r.pdf.SetTextColor(120, 120, 120)
		r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	for _, sc := range results.Scenarios {
		r.addScenario(sc)
	}
	if len(results.Scenarios) > 1 {
		r.addComparison(results)
	}
	if results.Sensitivity != nil {
		r.addSensitivity(results.Sensitivity)
	}
	r.addAssumptions(assumptionsFor(results))

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) sectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(102, 126, 234)
	y := r.pdf.GetY()
	r.pdf.Line(pdfMarginLeft, y, pdfMarginLeft+pdfContentWidth, y)
	r.pdf.Ln(4)
}

// table draws a header row and body rows; the first column is left aligned.
func (r *pdfReport) table(widths []float64, header []string, rows [][]string) {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(241, 242, 246)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetDrawColor(200, 200, 200)
	for i, h := range header {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			r.pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addScenario(sc domain.ScenarioSummary) {
	in, res := sc.Input, sc.Result
	r.pdf.AddPage()
	r.sectionHeader(sc.Name)

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(pdfContentWidth, 5, fmt.Sprintf(
		"Lump sum %s, monthly SIP %s, step-up %s every %d months, %d years at %s expected annual return.",
		r.amount(in.InitialLumpSum), r.amount(in.InitialMonthlyContribution),
		FormatPercentage(in.StepUpPercentage), in.StepUpFrequencyMonths,
		in.TenureYears, FormatPercentage(in.AnnualReturnPercentage)), "", "L", false)
	r.pdf.Ln(3)

	r.table([]float64{90, 90}, []string{"Summary", ""}, [][]string{
		{"Total Investment", r.amount(res.TotalInvested)},
		{"Final Value", r.amount(res.FinalValue)},
		{"Total Returns", r.amount(res.TotalReturns)},
		{"Return %", FormatPercentage(res.ReturnPercentage)},
	})

	breakdown := [][]string{}
	if res.InitialLumpSum > 0 {
		breakdown = append(breakdown, []string{"Lump sum", r.amount(res.InitialLumpSum), r.amount(res.LumpSumFutureValue), r.amount(res.LumpSumReturns)})
	}
	if res.TotalContributions > 0 {
		breakdown = append(breakdown, []string{"Step-up SIP", r.amount(res.TotalContributions), r.amount(res.ContributionsFutureValue), r.amount(res.ContributionsReturns)})
	}
	r.table([]float64{45, 45, 45, 45}, []string{"Component", "Invested", "Future Value", "Returns"}, breakdown)

	rows := make([][]string, 0, len(res.YearlyRecords))
	for _, y := range res.YearlyRecords {
		label := intToString(y.Year)
		if y.PeriodEnd != nil {
			label += " (" + y.PeriodEnd.Format("Jan 2006") + ")"
		}
		rows = append(rows, []string{label, r.amount(y.ContributionThisYear), r.amount(y.CumulativeInvested), r.amount(y.ValueAtYearEnd), r.amount(y.ReturnsAtYearEnd)})
	}
	r.table([]float64{36, 36, 36, 36, 36}, []string{"Year", "SIP This Year", "Total Invested", "Value", "Returns"}, rows)
}

func (r *pdfReport) addComparison(results *domain.ScenarioComparison) {
	r.pdf.AddPage()
	r.sectionHeader("Scenario Comparison")
	rows := make([][]string, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		rows = append(rows, []string{sc.Name, r.amount(sc.Result.TotalInvested), r.amount(sc.Result.FinalValue), FormatPercentage(sc.Result.ReturnPercentage)})
	}
	r.table([]float64{60, 40, 40, 40}, []string{"Scenario", "Invested", "Final Value", "Return %"}, rows)

	rec := AnalyzeScenarios(results)
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Recommended: %s (ahead by %s)", rec.ScenarioName, r.amount(rec.RunnerUpGap)), "", 1, "L", false, 0, "")
	if best := results.Comparison.BestScenarioForReturn; best != "" {
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.CellFormat(pdfContentWidth, 6, "Best return on money invested: "+best, "", 1, "L", false, 0, "")
	}
}

func (r *pdfReport) addSensitivity(sa *domain.SensitivityAnalysis) {
	r.pdf.AddPage()
	r.sectionHeader("Sensitivity Analysis")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.MultiCell(pdfContentWidth, 5, fmt.Sprintf("Base scenario %s, final value %s. Most sensitive parameter: %s.",
		sa.BaseScenarioName, r.amount(sa.BaseFinalValue), sa.MostSensitiveParameter), "", "L", false)
	r.pdf.Ln(3)
	for _, res := range sa.Results {
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("%s (base %g)", res.Parameter.Name, res.BaseValue), "", 1, "L", false, 0, "")
		rows := make([][]string, 0, len(res.Points))
		for _, p := range res.Points {
			rows = append(rows, []string{fmt.Sprintf("%g", p.Value), r.amount(p.FinalValue), r.amount(p.FinalValueChange), FormatPercentage(p.ChangePercent)})
		}
		r.table([]float64{30, 50, 50, 50}, []string{"Value", "Final Value", "Change", "Change %"}, rows)
	}
}

func (r *pdfReport) addAssumptions(assumptions []string) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range assumptions {
		r.pdf.MultiCell(pdfContentWidth, 5, "- "+a, "", "L", false)
	}
}
