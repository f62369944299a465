package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepValues(t *testing.T) {
	assert.Equal(t, []float64{6, 9, 12, 15}, sweepValues(domain.SensitivityParameter{MinValue: 6, MaxValue: 15, Steps: 4}))
	assert.Equal(t, []float64{5}, sweepValues(domain.SensitivityParameter{MinValue: 5, MaxValue: 10, Steps: 1}))
}

func TestRunSensitivityReturnRate(t *testing.T) {
	cfg := testConfiguration()
	sc := &domain.SensitivityConfig{
		BaseScenarioName: "Base",
		Parameters:       []domain.SensitivityParameter{{Name: domain.ParamAnnualReturn, MinValue: 8, MaxValue: 16, Steps: 5}},
	}
	a, err := NewCalculationEngine().RunSensitivity(context.Background(), cfg, sc)
	require.NoError(t, err)

	assert.Equal(t, "Base", a.BaseScenarioName)
	require.Len(t, a.Results, 1)
	res := a.Results[0]
	assert.Equal(t, 12.0, res.BaseValue)
	require.Len(t, res.Points, 5)
	for i := 1; i < len(res.Points); i++ {
		assert.Greater(t, res.Points[i].FinalValue, res.Points[i-1].FinalValue)
	}
	// the 12% point reproduces the base scenario
	assert.InDelta(t, 0, res.Points[2].FinalValueChange, 1e-6)
	assert.InDelta(t, res.Points[4].FinalValue-res.Points[0].FinalValue, res.Spread, 1e-6)
	assert.Equal(t, domain.ParamAnnualReturn, a.MostSensitiveParameter)
}

func TestRunSensitivityDefaults(t *testing.T) {
	a, err := NewCalculationEngine().RunSensitivity(context.Background(), testConfiguration(), &domain.SensitivityConfig{})
	require.NoError(t, err)
	assert.Equal(t, "defaults", a.BaseScenarioName)
	require.Len(t, a.Results, len(DefaultSensitivityParameters))
	assert.NotEmpty(t, a.MostSensitiveParameter)
}

func TestRunSensitivityTenure(t *testing.T) {
	sc := &domain.SensitivityConfig{Parameters: []domain.SensitivityParameter{{Name: domain.ParamTenure, MinValue: 5, MaxValue: 15, Steps: 3}}}
	a, err := NewCalculationEngine().RunSensitivity(context.Background(), testConfiguration(), sc)
	require.NoError(t, err)
	pts := a.Results[0].Points
	require.Len(t, pts, 3)
	assert.InDelta(t, 0, pts[1].FinalValueChange, 1e-6)
}

func TestRunSensitivityErrors(t *testing.T) {
	ce := NewCalculationEngine()
	ctx := context.Background()

	_, err := ce.RunSensitivity(ctx, testConfiguration(), &domain.SensitivityConfig{BaseScenarioName: "missing"})
	assert.ErrorContains(t, err, "not found")

	_, err = ce.RunSensitivity(ctx, testConfiguration(), &domain.SensitivityConfig{
		Parameters: []domain.SensitivityParameter{{Name: "inflation", MinValue: 1, MaxValue: 2, Steps: 2}},
	})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")

	_, err = ce.RunSensitivity(ctx, testConfiguration(), &domain.SensitivityConfig{
		Parameters: []domain.SensitivityParameter{{Name: domain.ParamAnnualReturn, MinValue: 10, MaxValue: 5, Steps: 2}},
	})
	assert.ErrorContains(t, err, "below min_value")

	_, err = ce.RunSensitivity(ctx, testConfiguration(), &domain.SensitivityConfig{
		Parameters: []domain.SensitivityParameter{{Name: domain.ParamTenure, MinValue: 0, MaxValue: 10, Steps: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunScenariosWithSensitivity(t *testing.T) {
	cfg := testConfiguration()
	cfg.Sensitivity = &domain.SensitivityConfig{BaseScenarioName: "Base"}
	cmp, err := NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, cmp.Sensitivity)
	assert.InDelta(t, cmp.Scenarios[0].Result.FinalValue, cmp.Sensitivity.BaseFinalValue, 1e-9)
}
