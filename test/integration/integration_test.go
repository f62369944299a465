package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/stepup-sip/internal/calculation"
	"github.com/rpgo/stepup-sip/internal/config"
	"github.com/rpgo/stepup-sip/internal/domain"
)

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	return cfg
}

func TestBasicCalculations(t *testing.T) {
	cfg := loadExample(t)
	require.NotNil(t, cfg.StartDate)
	assert.Equal(t, time.April, cfg.StartDate.Month())

	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, 2)

	for _, sc := range results.Scenarios {
		r := sc.Result
		require.Len(t, r.YearlyRecords, 10, sc.Name)
		assert.Greater(t, r.FinalValue, r.TotalInvested, sc.Name)
		assert.InDelta(t, r.TotalInvested+r.TotalReturns, r.FinalValue, 1e-6, sc.Name)
		assert.InDelta(t, r.LumpSumFutureValue+r.ContributionsFutureValue, r.FinalValue, 1e-6, sc.Name)
		last, _ := r.FinalYear()
		require.NotNil(t, last.PeriodEnd)
		assert.Equal(t, "2035-03-31", last.PeriodEnd.Format("2006-01-02"))
	}

	stepUp, flat := results.Scenarios[0].Result, results.Scenarios[1].Result
	assert.Greater(t, stepUp.FinalValue, flat.FinalValue)
	assert.InDelta(t, 600000, flat.TotalContributions, 1e-6)
	assert.Equal(t, stepUp.LumpSumFutureValue, flat.LumpSumFutureValue)
	assert.Equal(t, "Step-up SIP", results.Comparison.BestScenarioForValue)
}

func TestSensitivityFromConfig(t *testing.T) {
	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), loadExample(t))
	require.NoError(t, err)
	require.NotNil(t, results.Sensitivity)

	sa := results.Sensitivity
	assert.Equal(t, "Step-up SIP", sa.BaseScenarioName)
	require.Len(t, sa.Results, 2)
	assert.Len(t, sa.Results[0].Points, 4)
	assert.Len(t, sa.Results[1].Points, 3)
	assert.InDelta(t, results.Scenarios[0].Result.FinalValue, sa.BaseFinalValue, 1e-9)
}

func TestIncrementalEngineMatchesReference(t *testing.T) {
	cfg := loadExample(t)
	ref, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	engine.Project = calculation.ProjectIncremental
	inc, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	for i := range ref.Scenarios {
		assert.InEpsilon(t, ref.Scenarios[i].Result.FinalValue, inc.Scenarios[i].Result.FinalValue, 1e-9)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := calculation.NewCalculationEngine().RunScenarios(ctx, loadExample(t))
	assert.ErrorIs(t, err, context.Canceled)
}
