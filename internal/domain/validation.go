package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every *InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a projection input the engine must not be called with.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// AnnualStepUpMonths is the only step-up cadence the engine models.
const AnnualStepUpMonths = 12

// Limits bound the accepted input domain.
type Limits struct {
	MaxTenureYears   int
	MinAnnualReturn  float64
	MaxAnnualReturn  float64
	MaxStepUpPercent float64
}

// DefaultLimits mirror the bounds of the calculator form.
var DefaultLimits = Limits{
	MaxTenureYears:   50,
	MinAnnualReturn:  -100,
	MaxAnnualReturn:  100,
	MaxStepUpPercent: 100,
}

// Validate checks the input against DefaultLimits.
func (in ProjectionInput) Validate() error { return in.ValidateWithLimits(DefaultLimits) }

// ValidateWithLimits returns an *InvalidInputError for the first violated rule.
func (in ProjectionInput) ValidateWithLimits(l Limits) error {
	if in.InitialLumpSum <= 0 && in.InitialMonthlyContribution <= 0 {
		return &InvalidInputError{Reason: "Please enter at least one investment amount (SIP or Lump Sum)"}
	}
	if in.TenureYears <= 0 {
		return &InvalidInputError{Field: "tenure_years", Reason: "Investment tenure must be greater than 0"}
	}
	if l.MaxTenureYears > 0 && in.TenureYears > l.MaxTenureYears {
		return &InvalidInputError{Field: "tenure_years", Reason: fmt.Sprintf("investment tenure cannot exceed %d years", l.MaxTenureYears)}
	}
	if in.InitialLumpSum < 0 {
		return &InvalidInputError{Field: "initial_lump_sum", Reason: "lump sum cannot be negative"}
	}
	if in.InitialMonthlyContribution < 0 {
		return &InvalidInputError{Field: "initial_monthly_contribution", Reason: "monthly contribution cannot be negative"}
	}
	if in.StepUpPercentage < 0 || in.StepUpPercentage > l.MaxStepUpPercent {
		return &InvalidInputError{Field: "step_up_percentage", Reason: fmt.Sprintf("step-up must be between 0 and %g%%", l.MaxStepUpPercent)}
	}
	if in.StepUpFrequencyMonths <= 0 {
		return &InvalidInputError{Field: "step_up_frequency_months", Reason: "step-up frequency must be a positive number of months"}
	}
	if in.AnnualReturnPercentage < l.MinAnnualReturn || in.AnnualReturnPercentage > l.MaxAnnualReturn {
		return &InvalidInputError{Field: "annual_return_percentage", Reason: fmt.Sprintf("expected return must be between %g%% and %g%%", l.MinAnnualReturn, l.MaxAnnualReturn)}
	}
	return nil
}

// FormDefaults is the starting point for decoding a plan: fields absent from
// the document keep these values, explicit zeros overwrite them.
func FormDefaults() ProjectionInput {
	return ProjectionInput{
		StepUpFrequencyMonths: AnnualStepUpMonths,
		TenureYears:           1,
	}
}

// AnnualStepUp reports whether the input asks for the step-up cadence the
// engine models. Any other positive frequency is projected as annual.
func (in ProjectionInput) AnnualStepUp() bool {
	return in.StepUpFrequencyMonths == AnnualStepUpMonths
}
