package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/stepup-sip/internal/calculation"
	"github.com/rpgo/stepup-sip/internal/config"
	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/internal/logging"
	"github.com/rpgo/stepup-sip/internal/output"
)

// Set by -ldflags at build time.
var version = "dev"

// app holds state shared by every command once the root pre-run has completed.
type app struct {
	settings config.Settings
	log      zerolog.Logger

	logLevel string
	logJSON  bool
	debug    bool
	envFile  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sipcalc",
		Short: "Step-up SIP and lump sum projection calculator",
		Long: `sipcalc projects the growth of a lump sum plus a monthly SIP whose
amount steps up once a year, and compares named plans side by side.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides "+config.EnvLogLevel)
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "emit logs as JSON lines")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every yearly record")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with "+config.EnvLogLevel+"-style settings")

	root.AddCommand(
		newCalculateCmd(a),
		newRunCmd(a, "run", "Run every scenario in a configuration file"),
		newRunCmd(a, "compare", "Compare two or more scenarios from a configuration file"),
		newSensitivityCmd(a),
		newExampleCmd(),
		newServeCmd(a),
		newFormatsCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.LogLevel = a.logLevel
	}
	if a.debug {
		settings.LogLevel = "debug"
	}
	a.settings = settings
	a.log = logging.New(stderr, settings.LogLevel, !a.logJSON)
	return nil
}

func (a *app) engine(incremental bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if incremental {
		engine.Project = calculation.ProjectIncremental
	}
	engine.Debug = a.debug
	engine.SetLogger(logging.NewZerologLogger(a.log, "calculation"))
	return engine
}

// applySettings fills presentation fields the configuration left empty.
func (a *app) applySettings(cfg *domain.Configuration) {
	if cfg.Currency == "" {
		cfg.Currency = a.settings.Currency
	}
	if cfg.Locale == "" {
		cfg.Locale = a.settings.Locale
	}
}

// render prints results to out, or writes report files when dir is set.
func (a *app) render(out io.Writer, results *domain.ScenarioComparison, format, dir string) error {
	if dir == "" && output.NormalizeFormatName(format) != "all" {
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("%w: %q (run 'sipcalc formats')", output.ErrUnsupportedFormat, format)
		}
		data, err := f.Format(results)
		if err != nil {
			return fmt.Errorf("%s formatter: %w", f.Name(), err)
		}
		_, err = out.Write(data)
		return err
	}
	if dir == "" {
		dir = a.settings.OutputDir
	}
	files, err := output.GenerateReport(results, format, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		a.log.Info().Str("file", f).Msg("report written")
		fmt.Fprintln(out, f)
	}
	return nil
}

func parseStartDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --start %q, want YYYY-MM-DD: %w", s, err)
	}
	return &t, nil
}
