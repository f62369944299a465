package output

import "github.com/rpgo/stepup-sip/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered when a comparison carries none.
var DefaultAssumptions = []string{
	"Lump sum compounds annually at the expected return",
	"SIP instalments compound monthly at the expected return / 12",
	"SIP steps up once a year, from year 2",
	"Figures are nominal: no inflation, taxes, fees or exit loads",
}

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
