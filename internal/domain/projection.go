package domain

import (
	"math"
	"time"

	json "github.com/goccy/go-json"
)

// ProjectionInput holds the six scalar inputs of a step-up SIP projection.
// Amounts are unitless; currency is a presentation concern.
type ProjectionInput struct {
	InitialLumpSum             float64 `yaml:"initial_lump_sum" json:"initial_lump_sum"`
	InitialMonthlyContribution float64 `yaml:"initial_monthly_contribution" json:"initial_monthly_contribution"`
	StepUpPercentage           float64 `yaml:"step_up_percentage" json:"step_up_percentage"`
	StepUpFrequencyMonths      int     `yaml:"step_up_frequency_months" json:"step_up_frequency_months"`
	TenureYears                int     `yaml:"tenure_years" json:"tenure_years"`
	AnnualReturnPercentage     float64 `yaml:"annual_return_percentage" json:"annual_return_percentage"`
}

// TotalMonths returns the number of monthly contributions over the tenure.
func (in ProjectionInput) TotalMonths() int { return in.TenureYears * 12 }

// MonthlyRate returns the monthly compounding rate as a fraction.
func (in ProjectionInput) MonthlyRate() float64 { return in.AnnualReturnPercentage / 100 / 12 }

// AnnualRate returns the annual compounding rate as a fraction.
func (in ProjectionInput) AnnualRate() float64 { return in.AnnualReturnPercentage / 100 }

// StepUpFactor returns the multiplier applied to the contribution at each step-up.
func (in ProjectionInput) StepUpFactor() float64 { return 1 + in.StepUpPercentage/100 }

// YearRecord is one row of the year-by-year breakdown
type YearRecord struct {
	Year                 int     `json:"year"`
	ContributionThisYear float64 `json:"contribution_this_year"`
	CumulativeInvested   float64 `json:"cumulative_invested"`
	ValueAtYearEnd       float64 `json:"value_at_year_end"`
	ReturnsAtYearEnd     float64 `json:"returns_at_year_end"`

	// PeriodEnd is the calendar end of the year when the plan has a start date.
	PeriodEnd *time.Time `json:"period_end,omitempty"`
}

// ProjectionResult is the terminal output of a projection.
type ProjectionResult struct {
	InitialLumpSum           float64      `json:"initial_lump_sum"`
	TotalContributions       float64      `json:"total_contributions"`
	LumpSumFutureValue       float64      `json:"lump_sum_future_value"`
	ContributionsFutureValue float64      `json:"contributions_future_value"`
	LumpSumReturns           float64      `json:"lump_sum_returns"`
	ContributionsReturns     float64      `json:"contributions_returns"`
	TotalInvested            float64      `json:"total_invested"`
	FinalValue               float64      `json:"final_value"`
	TotalReturns             float64      `json:"total_returns"`
	ReturnPercentage         float64      `json:"return_percentage"`
	YearlyRecords            []YearRecord `json:"yearly_records"`
}

// HasReturnPercentage reports whether ReturnPercentage is defined, i.e. the
// total invested amount was non-zero.
func (r ProjectionResult) HasReturnPercentage() bool {
	return !math.IsNaN(r.ReturnPercentage) && !math.IsInf(r.ReturnPercentage, 0)
}

// FinalYear returns the last yearly record, or false for an empty breakdown.
func (r ProjectionResult) FinalYear() (YearRecord, bool) {
	if len(r.YearlyRecords) == 0 {
		return YearRecord{}, false
	}
	return r.YearlyRecords[len(r.YearlyRecords)-1], true
}

// MarshalJSON encodes an undefined return percentage as null.
func (r ProjectionResult) MarshalJSON() ([]byte, error) {
	type plain ProjectionResult
	out := struct {
		plain
		ReturnPercentage *float64 `json:"return_percentage"`
	}{plain: plain(r)}
	if r.HasReturnPercentage() {
		pct := r.ReturnPercentage
		out.ReturnPercentage = &pct
	}
	return json.Marshal(out)
}

// Contribution is a single monthly SIP instalment.
type Contribution struct {
	Month  int     `json:"month"` // 1-based across the whole tenure
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// ScenarioSummary is a named projection plus presentation metadata.
type ScenarioSummary struct {
	Name      string           `json:"name"`
	Input     ProjectionInput  `json:"input"`
	Result    ProjectionResult `json:"result"`
	StartDate *time.Time       `json:"start_date,omitempty"`
}

// ScenarioComparison collects every scenario evaluated in a run.
type ScenarioComparison struct {
	Scenarios   []ScenarioSummary    `json:"scenarios"`
	Comparison  ComparisonAnalysis   `json:"comparison"`
	Sensitivity *SensitivityAnalysis `json:"sensitivity,omitempty"`
	Currency    string               `json:"currency"`
	Locale      string               `json:"locale"`
	Assumptions []string             `json:"assumptions"`
}

// ComparisonAnalysis ranks scenarios by outcome.
type ComparisonAnalysis struct {
	BestScenarioForValue  string  `json:"best_scenario_for_value"`
	BestScenarioForReturn string  `json:"best_scenario_for_return"`
	HighestFinalValue     float64 `json:"highest_final_value"`
	LowestTotalInvested   float64 `json:"lowest_total_invested"`
}
