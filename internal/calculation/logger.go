package calculation

import "strings"

// Logger is the logging surface used by the scenario runner. The projection
// functions themselves never log.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// scenarioLogger prefixes each message with the scenario name.
type scenarioLogger struct {
	next Logger
	name string
}

func withScenario(l Logger, name string) Logger {
	if _, ok := l.(NopLogger); ok {
		return l
	}
	return scenarioLogger{next: l, name: name}
}

func (s scenarioLogger) prefix(format string) string {
	return "[" + strings.ReplaceAll(s.name, "%", "%%") + "] " + format
}

func (s scenarioLogger) Debugf(format string, args ...any) { s.next.Debugf(s.prefix(format), args...) }
func (s scenarioLogger) Infof(format string, args ...any)  { s.next.Infof(s.prefix(format), args...) }
func (s scenarioLogger) Warnf(format string, args ...any)  { s.next.Warnf(s.prefix(format), args...) }
func (s scenarioLogger) Errorf(format string, args ...any) { s.next.Errorf(s.prefix(format), args...) }
