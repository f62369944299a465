package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rpgo/stepup-sip/internal/domain"
	"gopkg.in/yaml.v3"
)

// InvalidInputError is returned when a plan cannot be projected.
type InvalidInputError = domain.InvalidInputError

// ErrInvalidInput matches every InvalidInputError via errors.Is.
var ErrInvalidInput = domain.ErrInvalidInput

// InputParser handles parsing of input configuration files
type InputParser struct {
	Limits domain.Limits
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Limits: domain.DefaultLimits}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.Configuration{Defaults: domain.FormDefaults()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Prepare(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Prepare validates a decoded configuration. A configuration without
// scenarios becomes a single scenario named "Plan". Callers seed Defaults with
// domain.FormDefaults before decoding so that absent fields are filled and
// explicit zeros are rejected.
func (ip *InputParser) Prepare(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		config.Scenarios = []domain.Scenario{{Name: "Plan"}}
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// ValidateInput checks a single plan. Errors are *InvalidInputError.
func (ip *InputParser) ValidateInput(in domain.ProjectionInput) error {
	return in.ValidateWithLimits(ip.Limits)
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if strings.TrimSpace(scenario.Name) == "" {
			return fmt.Errorf("scenario %d: scenario name is required", i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true

		in := scenario.Resolve(config.Defaults)
		if err := ip.ValidateInput(in); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	if config.Sensitivity != nil {
		if err := ip.validateSensitivity(config); err != nil {
			return fmt.Errorf("sensitivity validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateSensitivity(config *domain.Configuration) error {
	sc := config.Sensitivity
	if sc.BaseScenarioName != "" {
		if _, ok := config.FindScenario(sc.BaseScenarioName); !ok {
			return fmt.Errorf("base scenario %q not found", sc.BaseScenarioName)
		}
	}
	for _, p := range sc.Parameters {
		switch p.Name {
		case domain.ParamAnnualReturn, domain.ParamStepUp, domain.ParamMonthly, domain.ParamTenure:
		default:
			return fmt.Errorf("unknown parameter %q", p.Name)
		}
		if p.Steps < 1 {
			return fmt.Errorf("parameter %s: steps must be at least 1", p.Name)
		}
		if p.MaxValue < p.MinValue {
			return fmt.Errorf("parameter %s: max_value cannot be below min_value", p.Name)
		}
	}
	return nil
}

// Clamp limits value to [min, max], the way the calculator form corrects
// out-of-range entries instead of rejecting them.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInput pulls every field of in into the accepted range. Tenure and
// amounts below their minimum are raised, never rejected.
func (ip *InputParser) ClampInput(in domain.ProjectionInput) domain.ProjectionInput {
	in.InitialLumpSum = math.Max(in.InitialLumpSum, 0)
	in.InitialMonthlyContribution = math.Max(in.InitialMonthlyContribution, 0)
	in.StepUpPercentage = Clamp(in.StepUpPercentage, 0, ip.Limits.MaxStepUpPercent)
	in.AnnualReturnPercentage = Clamp(in.AnnualReturnPercentage, ip.Limits.MinAnnualReturn, ip.Limits.MaxAnnualReturn)
	in.TenureYears = int(Clamp(float64(in.TenureYears), 1, float64(ip.Limits.MaxTenureYears)))
	return in
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	start, _ := time.Parse("2006-01-02", "2025-04-01")
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	return &domain.Configuration{
		Defaults: domain.ProjectionInput{
			InitialLumpSum:             100000,
			InitialMonthlyContribution: 5000,
			StepUpPercentage:           10,
			StepUpFrequencyMonths:      domain.AnnualStepUpMonths,
			TenureYears:                10,
			AnnualReturnPercentage:     12,
		},
		StartDate: &start,
		Currency:  "INR",
		Locale:    "en-IN",
		Scenarios: []domain.Scenario{
			{Name: "Step-up SIP"},
			{Name: "Flat SIP", StepUpPercentage: f(0)},
			{Name: "Long Horizon", TenureYears: n(20)},
			{Name: "Conservative", AnnualReturnPercentage: f(8)},
		},
		Sensitivity: &domain.SensitivityConfig{
			BaseScenarioName: "Step-up SIP",
			Parameters: []domain.SensitivityParameter{
				{Name: domain.ParamAnnualReturn, MinValue: 6, MaxValue: 15, Steps: 10},
				{Name: domain.ParamStepUp, MinValue: 0, MaxValue: 20, Steps: 5},
			},
		},
	}
}
