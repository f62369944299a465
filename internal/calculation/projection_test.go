package calculation

import (
	"math"
	"testing"

	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() domain.ProjectionInput {
	return domain.ProjectionInput{
		InitialLumpSum:             100000,
		InitialMonthlyContribution: 5000,
		StepUpPercentage:           10,
		StepUpFrequencyMonths:      12,
		TenureYears:                1,
		AnnualReturnPercentage:     12,
	}
}

// relClose reports whether a and b agree to within tol relative to the larger magnitude.
func relClose(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b)/scale <= tol
}

func TestProjectConcreteScenario(t *testing.T) {
	r := Project(sampleInput())

	require.Len(t, r.YearlyRecords, 1)
	assert.InDelta(t, 60000, r.YearlyRecords[0].ContributionThisYear, 1e-9)
	assert.InDelta(t, 112000, r.LumpSumFutureValue, 1e-6)

	var want float64
	for m := 1; m <= 12; m++ {
		want += 5000 * math.Pow(1.01, float64(12-m+1))
	}
	assert.InDelta(t, want, r.ContributionsFutureValue, 1e-6)
	assert.InDelta(t, 64046.64, r.ContributionsFutureValue, 0.01)
	assert.InDelta(t, 176046.64, r.FinalValue, 0.01)
	assert.InDelta(t, 160000, r.TotalInvested, 1e-9)
	assert.InDelta(t, 16046.64, r.TotalReturns, 0.01)
	assert.InDelta(t, 12000, r.LumpSumReturns, 1e-6)
	assert.InDelta(t, 4046.64, r.ContributionsReturns, 0.01)
	assert.InDelta(t, 16046.64/160000*100, r.ReturnPercentage, 1e-4)
	assert.Equal(t, 100000.0, r.InitialLumpSum)
}

func TestProjectStepUpSchedule(t *testing.T) {
	in := sampleInput()
	in.TenureYears = 3
	r := Project(in)

	require.Len(t, r.YearlyRecords, 3)
	assert.InDelta(t, 60000, r.YearlyRecords[0].ContributionThisYear, 1e-9)
	assert.InDelta(t, 66000, r.YearlyRecords[1].ContributionThisYear, 1e-6)
	assert.InDelta(t, 72600, r.YearlyRecords[2].ContributionThisYear, 1e-6)
	assert.InDelta(t, 198600, r.TotalContributions, 1e-6)
	assert.InDelta(t, 100000*math.Pow(1.12, 3), r.LumpSumFutureValue, 1e-6)
}

func TestProjectZeroRateIdentity(t *testing.T) {
	in := sampleInput()
	in.TenureYears = 15
	in.AnnualReturnPercentage = 0
	r := Project(in)

	assert.Equal(t, r.TotalInvested, r.FinalValue)
	assert.Equal(t, 0.0, r.TotalReturns)
	for _, y := range r.YearlyRecords {
		assert.Equal(t, 0.0, y.ReturnsAtYearEnd, "year %d", y.Year)
	}
}

func TestProjectZeroStepUpConstancy(t *testing.T) {
	in := sampleInput()
	in.InitialMonthlyContribution = 1234.56
	in.StepUpPercentage = 0
	in.TenureYears = 20
	r := Project(in)

	for _, y := range r.YearlyRecords {
		assert.InDelta(t, 12*1234.56, y.ContributionThisYear, 1e-9, "year %d", y.Year)
		assert.Equal(t, r.YearlyRecords[0].ContributionThisYear, y.ContributionThisYear)
	}
}

func TestProjectTerminalConsistency(t *testing.T) {
	inputs := []domain.ProjectionInput{
		sampleInput(),
		{InitialLumpSum: 0, InitialMonthlyContribution: 2500, StepUpPercentage: 7.5, StepUpFrequencyMonths: 12, TenureYears: 30, AnnualReturnPercentage: 11},
		{InitialLumpSum: 500000, InitialMonthlyContribution: 0, StepUpPercentage: 10, StepUpFrequencyMonths: 12, TenureYears: 12, AnnualReturnPercentage: 9.5},
		{InitialLumpSum: 25000, InitialMonthlyContribution: 10000, StepUpPercentage: 15, StepUpFrequencyMonths: 12, TenureYears: 50, AnnualReturnPercentage: 14},
	}
	for _, in := range inputs {
		r := Project(in)
		last, ok := r.FinalYear()
		require.True(t, ok)
		assert.Equal(t, in.TenureYears, last.Year)
		assert.True(t, relClose(r.FinalValue, last.ValueAtYearEnd, 1e-6), "final %v vs last year %v", r.FinalValue, last.ValueAtYearEnd)
		assert.True(t, relClose(r.TotalInvested, last.CumulativeInvested, 1e-6))
		assert.True(t, relClose(r.TotalReturns, last.ReturnsAtYearEnd, 1e-6))
	}
}

func TestProjectMonotonicity(t *testing.T) {
	in := domain.ProjectionInput{
		InitialLumpSum:             50000,
		InitialMonthlyContribution: 3000,
		StepUpPercentage:           5,
		StepUpFrequencyMonths:      12,
		TenureYears:                25,
		AnnualReturnPercentage:     8,
	}
	r := Project(in)
	for i := 1; i < len(r.YearlyRecords); i++ {
		prev, cur := r.YearlyRecords[i-1], r.YearlyRecords[i]
		assert.Greater(t, cur.ValueAtYearEnd, prev.ValueAtYearEnd, "year %d", cur.Year)
		assert.GreaterOrEqual(t, cur.CumulativeInvested, prev.CumulativeInvested, "year %d", cur.Year)
	}
}

func TestProjectLumpSumOnly(t *testing.T) {
	in := domain.ProjectionInput{
		InitialLumpSum:         100000,
		StepUpPercentage:       10,
		StepUpFrequencyMonths:  12,
		TenureYears:            10,
		AnnualReturnPercentage: 12,
	}
	r := Project(in)

	assert.Equal(t, 0.0, r.TotalContributions)
	assert.Equal(t, 0.0, r.ContributionsFutureValue)
	assert.Equal(t, r.LumpSumFutureValue, r.FinalValue)
	assert.InDelta(t, 100000*math.Pow(1.12, 10), r.FinalValue, 1e-6)
	for _, y := range r.YearlyRecords {
		assert.InDelta(t, 100000*math.Pow(1.12, float64(y.Year)), y.ValueAtYearEnd, 1e-6)
		assert.Equal(t, 100000.0, y.CumulativeInvested)
	}
}

func TestProjectSIPOnly(t *testing.T) {
	in := sampleInput()
	in.InitialLumpSum = 0
	in.TenureYears = 5
	r := Project(in)

	assert.Equal(t, 0.0, r.LumpSumFutureValue)
	assert.Equal(t, 0.0, r.LumpSumReturns)
	assert.Equal(t, r.ContributionsFutureValue, r.FinalValue)
	assert.True(t, r.HasReturnPercentage())
}

func TestProjectZeroInvestedReturnPercentageUndefined(t *testing.T) {
	r := Project(domain.ProjectionInput{StepUpFrequencyMonths: 12, TenureYears: 3, AnnualReturnPercentage: 10})
	assert.True(t, math.IsNaN(r.ReturnPercentage))
	assert.False(t, r.HasReturnPercentage())
	assert.Len(t, r.YearlyRecords, 3)
}

func TestProjectSnapshotRevaluesToYearEnd(t *testing.T) {
	in := sampleInput()
	in.TenureYears = 2
	r := Project(in)

	// Year 1 snapshot compounds the first twelve instalments only to month 12.
	var want float64
	for m := 1; m <= 12; m++ {
		want += 5000 * math.Pow(1.01, float64(12-m+1))
	}
	want += 100000 * 1.12
	assert.InDelta(t, want, r.YearlyRecords[0].ValueAtYearEnd, 1e-6)
}

func TestProjectDeterministic(t *testing.T) {
	in := sampleInput()
	in.TenureYears = 20
	assert.Equal(t, Project(in), Project(in))
}

func TestProjectIncrementalEquivalence(t *testing.T) {
	inputs := []domain.ProjectionInput{
		sampleInput(),
		{InitialLumpSum: 100000, InitialMonthlyContribution: 5000, StepUpPercentage: 10, StepUpFrequencyMonths: 12, TenureYears: 40, AnnualReturnPercentage: 12},
		{InitialLumpSum: 0, InitialMonthlyContribution: 999.99, StepUpPercentage: 0, StepUpFrequencyMonths: 12, TenureYears: 25, AnnualReturnPercentage: 0},
		{InitialLumpSum: 1, InitialMonthlyContribution: 1, StepUpPercentage: 100, StepUpFrequencyMonths: 12, TenureYears: 50, AnnualReturnPercentage: 20},
		{InitialLumpSum: 75000, InitialMonthlyContribution: 1500, StepUpPercentage: 3, StepUpFrequencyMonths: 12, TenureYears: 8, AnnualReturnPercentage: -5},
	}
	for _, in := range inputs {
		ref := Project(in)
		inc := ProjectIncremental(in)
		require.Len(t, inc.YearlyRecords, len(ref.YearlyRecords))
		for i := range ref.YearlyRecords {
			a, b := ref.YearlyRecords[i], inc.YearlyRecords[i]
			assert.Equal(t, a.Year, b.Year)
			assert.True(t, relClose(a.ContributionThisYear, b.ContributionThisYear, 1e-9))
			assert.True(t, relClose(a.CumulativeInvested, b.CumulativeInvested, 1e-9))
			assert.True(t, relClose(a.ValueAtYearEnd, b.ValueAtYearEnd, 1e-9), "year %d: %v vs %v", a.Year, a.ValueAtYearEnd, b.ValueAtYearEnd)
		}
		assert.True(t, relClose(ref.FinalValue, inc.FinalValue, 1e-9))
		assert.True(t, relClose(ref.TotalContributions, inc.TotalContributions, 1e-9))
		assert.True(t, relClose(ref.ContributionsFutureValue, inc.ContributionsFutureValue, 1e-9))
		assert.Equal(t, ref.LumpSumFutureValue, inc.LumpSumFutureValue)
	}
}

func TestBuildContributionSchedule(t *testing.T) {
	in := sampleInput()
	in.TenureYears = 3
	s := BuildContributionSchedule(in)

	require.Len(t, s, 36)
	for i, c := range s {
		assert.Equal(t, i+1, c.Month)
		assert.Equal(t, i/12+1, c.Year)
	}
	assert.Equal(t, 5000.0, s[0].Amount)
	assert.Equal(t, 5000.0, s[11].Amount)
	assert.InDelta(t, 5500, s[12].Amount, 1e-9)
	assert.InDelta(t, 6050, s[35].Amount, 1e-9)

	assert.Nil(t, BuildContributionSchedule(domain.ProjectionInput{TenureYears: 0}))
}

func TestCompoundingPrimitives(t *testing.T) {
	assert.InDelta(t, 5050, ContributionFutureValue(5000, 0.01, 1), 1e-9)
	assert.Equal(t, 5000.0, ContributionFutureValue(5000, 0, 240))
	assert.InDelta(t, 125440, LumpSumValue(100000, 0.12, 2), 1e-6)
	assert.Equal(t, 0.0, LumpSumValue(0, 0.12, 30))
}

func TestValueAtMonthArbitraryTarget(t *testing.T) {
	schedule := []domain.Contribution{{Month: 1, Year: 1, Amount: 100}, {Month: 2, Year: 1, Amount: 100}}
	// month 1 compounds 3 months, month 2 compounds 2 months to the end of month 3
	want := 100*math.Pow(1.01, 3) + 100*math.Pow(1.01, 2)
	assert.InDelta(t, want, ValueAtMonth(schedule, 0.01, 3), 1e-12)
	assert.Equal(t, 0.0, ValueAtMonth(nil, 0.01, 12))
}
