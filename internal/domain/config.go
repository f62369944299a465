package domain

import "time"

// Configuration is the top-level YAML document: shared plan defaults plus
// named scenarios that override them.
type Configuration struct {
	Defaults    ProjectionInput    `yaml:"defaults" json:"defaults"`
	Scenarios   []Scenario         `yaml:"scenarios" json:"scenarios"`
	StartDate   *time.Time         `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	Currency    string             `yaml:"currency,omitempty" json:"currency,omitempty"`
	Locale      string             `yaml:"locale,omitempty" json:"locale,omitempty"`
	Sensitivity *SensitivityConfig `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// Scenario overrides any subset of the default plan. Nil fields inherit.
type Scenario struct {
	Name                       string   `yaml:"name" json:"name"`
	InitialLumpSum             *float64 `yaml:"initial_lump_sum,omitempty" json:"initial_lump_sum,omitempty"`
	InitialMonthlyContribution *float64 `yaml:"initial_monthly_contribution,omitempty" json:"initial_monthly_contribution,omitempty"`
	StepUpPercentage           *float64 `yaml:"step_up_percentage,omitempty" json:"step_up_percentage,omitempty"`
	StepUpFrequencyMonths      *int     `yaml:"step_up_frequency_months,omitempty" json:"step_up_frequency_months,omitempty"`
	TenureYears                *int     `yaml:"tenure_years,omitempty" json:"tenure_years,omitempty"`
	AnnualReturnPercentage     *float64 `yaml:"annual_return_percentage,omitempty" json:"annual_return_percentage,omitempty"`
}

// Resolve merges the scenario overrides onto base.
func (s Scenario) Resolve(base ProjectionInput) ProjectionInput {
	in := base
	if s.InitialLumpSum != nil {
		in.InitialLumpSum = *s.InitialLumpSum
	}
	if s.InitialMonthlyContribution != nil {
		in.InitialMonthlyContribution = *s.InitialMonthlyContribution
	}
	if s.StepUpPercentage != nil {
		in.StepUpPercentage = *s.StepUpPercentage
	}
	if s.StepUpFrequencyMonths != nil {
		in.StepUpFrequencyMonths = *s.StepUpFrequencyMonths
	}
	if s.TenureYears != nil {
		in.TenureYears = *s.TenureYears
	}
	if s.AnnualReturnPercentage != nil {
		in.AnnualReturnPercentage = *s.AnnualReturnPercentage
	}
	return in
}

// FindScenario returns the scenario with the given name.
func (c *Configuration) FindScenario(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
