package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// DefaultSensitivityParameters sweeps the return rate and the step-up around typical values.
var DefaultSensitivityParameters = []domain.SensitivityParameter{
	{Name: domain.ParamAnnualReturn, MinValue: 6, MaxValue: 15, Steps: 10},
	{Name: domain.ParamStepUp, MinValue: 0, MaxValue: 20, Steps: 5},
}

// applyParameter returns in with the named parameter set to value.
func applyParameter(in domain.ProjectionInput, name string, value float64) (domain.ProjectionInput, error) {
	switch name {
	case domain.ParamAnnualReturn:
		in.AnnualReturnPercentage = value
	case domain.ParamStepUp:
		in.StepUpPercentage = value
	case domain.ParamMonthly:
		in.InitialMonthlyContribution = value
	case domain.ParamTenure:
		in.TenureYears = int(math.Round(value))
	default:
		return in, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return in, nil
}

func parameterValue(in domain.ProjectionInput, name string) float64 {
	switch name {
	case domain.ParamAnnualReturn:
		return in.AnnualReturnPercentage
	case domain.ParamStepUp:
		return in.StepUpPercentage
	case domain.ParamMonthly:
		return in.InitialMonthlyContribution
	case domain.ParamTenure:
		return float64(in.TenureYears)
	}
	return 0
}

// sweepValues returns Steps evenly spaced values from MinValue to MaxValue inclusive.
func sweepValues(p domain.SensitivityParameter) []float64 {
	if p.Steps <= 1 {
		return []float64{p.MinValue}
	}
	values := make([]float64, p.Steps)
	step := (p.MaxValue - p.MinValue) / float64(p.Steps-1)
	for i := range values {
		values[i] = p.MinValue + step*float64(i)
	}
	values[len(values)-1] = p.MaxValue
	return values
}

// SweepParameter projects base once per swept value of p.
func (ce *CalculationEngine) SweepParameter(base domain.ProjectionInput, baseResult domain.ProjectionResult, p domain.SensitivityParameter) (domain.SensitivityResult, error) {
	res := domain.SensitivityResult{Parameter: p, BaseValue: parameterValue(base, p.Name)}
	if p.MaxValue < p.MinValue {
		return res, fmt.Errorf("parameter %s: max_value %g is below min_value %g", p.Name, p.MaxValue, p.MinValue)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range sweepValues(p) {
		in, err := applyParameter(base, p.Name, v)
		if err != nil {
			return res, err
		}
		if err := in.Validate(); err != nil {
			return res, fmt.Errorf("parameter %s=%g: %w", p.Name, v, err)
		}
		r := ce.Project(in)
		change := r.FinalValue - baseResult.FinalValue
		point := domain.SensitivityPoint{
			Value:            v,
			FinalValue:       r.FinalValue,
			TotalInvested:    r.TotalInvested,
			FinalValueChange: change,
		}
		if baseResult.FinalValue != 0 {
			point.ChangePercent = change / baseResult.FinalValue * 100
		}
		res.Points = append(res.Points, point)
		lo = math.Min(lo, r.FinalValue)
		hi = math.Max(hi, r.FinalValue)
	}
	res.Spread = hi - lo
	return res, nil
}

// RunSensitivity sweeps each configured parameter around the base scenario.
// An empty base scenario name means the configuration defaults; no parameters
// means DefaultSensitivityParameters.
func (ce *CalculationEngine) RunSensitivity(ctx context.Context, config *domain.Configuration, sc *domain.SensitivityConfig) (*domain.SensitivityAnalysis, error) {
	base := config.Defaults
	name := "defaults"
	if sc.BaseScenarioName != "" {
		s, ok := config.FindScenario(sc.BaseScenarioName)
		if !ok {
			return nil, fmt.Errorf("base scenario %q not found", sc.BaseScenarioName)
		}
		base = s.Resolve(config.Defaults)
		name = s.Name
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base scenario %q: %w", name, err)
	}

	params := sc.Parameters
	if len(params) == 0 {
		params = DefaultSensitivityParameters
	}

	baseResult := ce.Project(base)
	analysis := &domain.SensitivityAnalysis{BaseScenarioName: name, BaseFinalValue: baseResult.FinalValue}
	widest := -1.0
	for _, p := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := ce.SweepParameter(base, baseResult, p)
		if err != nil {
			return nil, err
		}
		ce.Logger.Debugf("sensitivity %s: %d points, spread %.2f", p.Name, len(res.Points), res.Spread)
		if res.Spread > widest {
			widest = res.Spread
			analysis.MostSensitiveParameter = p.Name
		}
		analysis.Results = append(analysis.Results, res)
	}
	return analysis, nil
}
