package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/pkg/dateutil"
)

// ProjectFunc computes a projection. Project and ProjectIncremental both satisfy it.
type ProjectFunc func(domain.ProjectionInput) domain.ProjectionResult

// CalculationEngine runs named scenarios from a configuration through the
// projection engine and ranks them.
type CalculationEngine struct {
	Project ProjectFunc
	Debug   bool // log every yearly record
	Logger  Logger
}

// NewCalculationEngine creates an engine using the reference projection.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Project: Project,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunInput validates and projects a single plan.
func (ce *CalculationEngine) RunInput(name string, in domain.ProjectionInput) (*domain.ScenarioSummary, error) {
	log := withScenario(ce.Logger, name)
	if err := in.Validate(); err != nil {
		log.Errorf("rejected: %v", err)
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}
	if !in.AnnualStepUp() {
		log.Warnf("step-up every %d months is modelled as annual", in.StepUpFrequencyMonths)
	}

	result := ce.Project(in)
	log.Infof("projected %d years: invested=%.2f final=%.2f", in.TenureYears, result.TotalInvested, result.FinalValue)
	if ce.Debug {
		for _, y := range result.YearlyRecords {
			log.Debugf("year %2d contribution=%.2f invested=%.2f value=%.2f returns=%.2f",
				y.Year, y.ContributionThisYear, y.CumulativeInvested, y.ValueAtYearEnd, y.ReturnsAtYearEnd)
		}
	}
	if !result.HasReturnPercentage() {
		log.Warnf("return percentage undefined: total invested is zero")
	}

	return &domain.ScenarioSummary{Name: name, Input: in, Result: result}, nil
}

// RunScenario projects one configured scenario, attaching calendar period
// ends when the configuration has a start date.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary, err := ce.RunInput(scenario.Name, scenario.Resolve(config.Defaults))
	if err != nil {
		return nil, err
	}
	if config.StartDate != nil {
		start := *config.StartDate
		summary.StartDate = &start
		for i := range summary.Result.YearlyRecords {
			end := dateutil.PeriodEnd(start, summary.Result.YearlyRecords[i].Year)
			summary.Result.YearlyRecords[i].PeriodEnd = &end
		}
	}
	return summary, nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}
	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))
	for i := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
	}

	comparison := &domain.ScenarioComparison{
		Scenarios:   scenarios,
		Comparison:  CompareScenarios(scenarios),
		Currency:    config.Currency,
		Locale:      config.Locale,
		Assumptions: GenerateAssumptions(config),
	}

	if config.Sensitivity != nil {
		analysis, err := ce.RunSensitivity(ctx, config, config.Sensitivity)
		if err != nil {
			return nil, fmt.Errorf("sensitivity analysis failed: %w", err)
		}
		comparison.Sensitivity = analysis
	}
	return comparison, nil
}

// CompareScenarios picks the scenario with the highest final value and the one
// with the best return percentage. Ties keep the earlier scenario.
func CompareScenarios(scenarios []domain.ScenarioSummary) domain.ComparisonAnalysis {
	var out domain.ComparisonAnalysis
	if len(scenarios) == 0 {
		return out
	}
	bestReturn := math.Inf(-1)
	out.HighestFinalValue = math.Inf(-1)
	out.LowestTotalInvested = math.Inf(1)
	for _, sc := range scenarios {
		r := sc.Result
		if r.FinalValue > out.HighestFinalValue {
			out.HighestFinalValue = r.FinalValue
			out.BestScenarioForValue = sc.Name
		}
		if r.HasReturnPercentage() && r.ReturnPercentage > bestReturn {
			bestReturn = r.ReturnPercentage
			out.BestScenarioForReturn = sc.Name
		}
		if r.TotalInvested < out.LowestTotalInvested {
			out.LowestTotalInvested = r.TotalInvested
		}
	}
	return out
}

// GenerateAssumptions lists the modelling assumptions rendered in reports.
func GenerateAssumptions(config *domain.Configuration) []string {
	in := config.Defaults
	return []string{
		fmt.Sprintf("Expected annual return: %.2f%% (base plan)", in.AnnualReturnPercentage),
		fmt.Sprintf("SIP step-up: %.2f%% every %d months, applied from year 2", in.StepUpPercentage, in.StepUpFrequencyMonths),
		"Lump sum compounds annually; SIP instalments compound monthly at the annual rate / 12",
		"Each SIP instalment earns returns from the month it is made through the end of the period",
		"Figures are nominal: no inflation, taxes, fees or exit loads",
	}
}
