package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/stepup-sip/internal/domain"
)

// GenerateReport writes results in the named format (or "all") to dir and
// returns the files written.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, results, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	name, err := WriteFormatted(f, results, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
