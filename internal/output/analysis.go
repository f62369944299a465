package output

import (
	"math"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string  `json:"scenario_name"`
	FinalValue       float64 `json:"final_value"`
	TotalInvested    float64 `json:"total_invested"`
	GainOverInvested float64 `json:"gain_over_invested"`
	ReturnPercentage float64 `json:"return_percentage"`
	// RunnerUpGap is how far ahead of the second-best scenario the winner finishes.
	RunnerUpGap float64 `json:"runner_up_gap"`
}

// MarshalJSON encodes an undefined return percentage as null.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	type plain Recommendation
	out := struct {
		plain
		ReturnPercentage *float64 `json:"return_percentage"`
	}{plain: plain(r)}
	if !math.IsNaN(r.ReturnPercentage) && !math.IsInf(r.ReturnPercentage, 0) {
		pct := r.ReturnPercentage
		out.ReturnPercentage = &pct
	}
	return json.Marshal(out)
}

// AnalyzeScenarios picks the scenario with the highest final value.
// Ties are broken by lower total invested, then by name.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	ranked := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Result, ranked[j].Result
		if a.FinalValue != b.FinalValue {
			return a.FinalValue > b.FinalValue
		}
		if a.TotalInvested != b.TotalInvested {
			return a.TotalInvested < b.TotalInvested
		}
		return ranked[i].Name < ranked[j].Name
	})
	best := ranked[0]
	rec := Recommendation{
		ScenarioName:     best.Name,
		FinalValue:       best.Result.FinalValue,
		TotalInvested:    best.Result.TotalInvested,
		GainOverInvested: best.Result.TotalReturns,
		ReturnPercentage: best.Result.ReturnPercentage,
	}
	if len(ranked) > 1 {
		rec.RunnerUpGap = best.Result.FinalValue - ranked[1].Result.FinalValue
	}
	return rec
}
