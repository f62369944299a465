package domain

// Sensitivity parameter names.
const (
	ParamAnnualReturn = "annual_return_percentage"
	ParamStepUp       = "step_up_percentage"
	ParamMonthly      = "initial_monthly_contribution"
	ParamTenure       = "tenure_years"
)

// SensitivityParameter describes one parameter sweep.
type SensitivityParameter struct {
	Name     string  `yaml:"name" json:"name"`
	MinValue float64 `yaml:"min_value" json:"min_value"`
	MaxValue float64 `yaml:"max_value" json:"max_value"`
	Steps    int     `yaml:"steps" json:"steps"`
}

// SensitivityConfig selects the scenario and parameters for a sweep.
type SensitivityConfig struct {
	BaseScenarioName string                 `yaml:"base_scenario" json:"base_scenario"`
	Parameters       []SensitivityParameter `yaml:"parameters" json:"parameters"`
}

// SensitivityPoint is the outcome for one swept parameter value.
type SensitivityPoint struct {
	Value            float64 `json:"value"`
	FinalValue       float64 `json:"final_value"`
	TotalInvested    float64 `json:"total_invested"`
	FinalValueChange float64 `json:"final_value_change"`
	ChangePercent    float64 `json:"change_percent"`
}

// SensitivityResult holds all points for a single parameter.
type SensitivityResult struct {
	Parameter SensitivityParameter `json:"parameter"`
	BaseValue float64              `json:"base_value"`
	Points    []SensitivityPoint   `json:"points"`
	// Spread is max(FinalValue) - min(FinalValue) across the sweep.
	Spread float64 `json:"spread"`
}

// SensitivityAnalysis is the full sweep over every configured parameter.
type SensitivityAnalysis struct {
	BaseScenarioName       string              `json:"base_scenario_name"`
	BaseFinalValue         float64             `json:"base_final_value"`
	Results                []SensitivityResult `json:"results"`
	MostSensitiveParameter string              `json:"most_sensitive_parameter"`
}
