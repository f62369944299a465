package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/stepup-sip/internal/calculation"
	"github.com/rpgo/stepup-sip/internal/config"
	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/internal/output"
	"github.com/rpgo/stepup-sip/internal/server"
)

func newCalculateCmd(a *app) *cobra.Command {
	var (
		in          domain.ProjectionInput
		name, start string
		format, dir string
		incremental bool
		clamp       bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Project a single plan from flags",
		Example: `  sipcalc calculate --lump-sum 100000 --monthly 5000 --step-up 10 --years 10 --rate 12
  sipcalc calculate --monthly 5000 --years 20 --rate 12 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if clamp {
				in = parser.ClampInput(in)
			}
			startDate, err := parseStartDate(start)
			if err != nil {
				return err
			}
			cfg := &domain.Configuration{
				Defaults:  in,
				Scenarios: []domain.Scenario{{Name: name}},
				StartDate: startDate,
			}
			a.applySettings(cfg)
			if err := parser.Prepare(cfg); err != nil {
				return err
			}
			results, err := a.engine(incremental).RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), results, format, dir)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.InitialLumpSum, "lump-sum", 0, "one-time investment at the start")
	f.Float64Var(&in.InitialMonthlyContribution, "monthly", 0, "first-year monthly SIP amount")
	f.Float64Var(&in.StepUpPercentage, "step-up", 0, "annual step-up of the SIP, percent")
	f.IntVar(&in.StepUpFrequencyMonths, "frequency", domain.AnnualStepUpMonths, "months between step-ups; other cadences are modelled as annual")
	f.IntVar(&in.TenureYears, "years", 1, "investment tenure in years")
	f.Float64Var(&in.AnnualReturnPercentage, "rate", 12, "expected annual return, percent")
	f.StringVar(&name, "name", "Plan", "scenario name shown in reports")
	f.StringVar(&start, "start", "", "first contribution month, YYYY-MM-DD")
	f.StringVarP(&format, "format", "f", "console", "output format (see 'sipcalc formats')")
	f.StringVarP(&dir, "output", "o", "", "write a report file to this directory instead of stdout")
	f.BoolVar(&incremental, "incremental", false, "use the single-pass projection")
	f.BoolVar(&clamp, "clamp", false, "pull out-of-range values into range instead of rejecting them")
	return cmd
}

func newRunCmd(a *app, use, short string) *cobra.Command {
	var (
		configFile  string
		format, dir string
		incremental bool
	)
	defaultFormat := "console"
	if use == "compare" {
		defaultFormat = "console-lite"
	}
	cmd := &cobra.Command{
		Use:   use + " [config.yaml]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				configFile = args[0]
			}
			if configFile == "" {
				return errors.New("a configuration file is required (--config or argument)")
			}
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			if use == "compare" && len(cfg.Scenarios) < 2 {
				return fmt.Errorf("compare needs at least two scenarios, %s has %d", configFile, len(cfg.Scenarios))
			}
			a.applySettings(cfg)
			a.log.Debug().Str("config", configFile).Int("scenarios", len(cfg.Scenarios)).Msg("configuration loaded")

			results, err := a.engine(incremental).RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), results, format, dir)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	f.StringVarP(&format, "format", "f", defaultFormat, "output format, or 'all' (see 'sipcalc formats')")
	f.StringVarP(&dir, "output", "o", "", "write report files to this directory instead of stdout")
	f.BoolVar(&incremental, "incremental", false, "use the single-pass projection")
	return cmd
}

func newSensitivityCmd(a *app) *cobra.Command {
	var (
		configFile  string
		base        string
		params      []string
		format, dir string
	)
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep parameters around a base scenario",
		Long: `Sweep one or more inputs across a range and report the final value at each step.
Parameters are given as name=min:max:steps, for example annual_return_percentage=6:15:10.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			a.applySettings(cfg)

			sc := domain.SensitivityConfig{BaseScenarioName: base}
			if cfg.Sensitivity != nil && base == "" && len(params) == 0 {
				sc = *cfg.Sensitivity
			}
			for _, p := range params {
				parsed, err := parseSensitivityParameter(p)
				if err != nil {
					return err
				}
				sc.Parameters = append(sc.Parameters, parsed)
			}
			cfg.Sensitivity = &sc
			if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
				return err
			}

			engine := a.engine(false)
			analysis, err := engine.RunSensitivity(cmd.Context(), cfg, &sc)
			if err != nil {
				return err
			}

			scenario := domain.Scenario{Name: analysis.BaseScenarioName}
			if s, ok := cfg.FindScenario(analysis.BaseScenarioName); ok {
				scenario = s
			}
			summary, err := engine.RunScenario(cmd.Context(), cfg, &scenario)
			if err != nil {
				return err
			}
			results := &domain.ScenarioComparison{
				Scenarios:   []domain.ScenarioSummary{*summary},
				Comparison:  calculation.CompareScenarios([]domain.ScenarioSummary{*summary}),
				Sensitivity: analysis,
				Currency:    cfg.Currency,
				Locale:      cfg.Locale,
				Assumptions: calculation.GenerateAssumptions(cfg),
			}
			return a.render(cmd.OutOrStdout(), results, format, dir)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	f.StringVar(&base, "base", "", "base scenario name (default: the configuration defaults)")
	f.StringArrayVarP(&params, "param", "p", nil, "parameter sweep name=min:max:steps (repeatable)")
	f.StringVarP(&format, "format", "f", "console", "output format (see 'sipcalc formats')")
	f.StringVarP(&dir, "output", "o", "", "write report files to this directory instead of stdout")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// parseSensitivityParameter parses name=min:max:steps.
func parseSensitivityParameter(s string) (domain.SensitivityParameter, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid --param %q, want name=min:max:steps", s)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid --param %q, want name=min:max:steps", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min in %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max in %q: %w", s, err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps in %q: %w", s, err)
	}
	return domain.SensitivityParameter{Name: strings.TrimSpace(name), MinValue: lo, MaxValue: hi, Steps: steps}, nil
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(cfg, filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = a.settings.Port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.engine(false), a.log.With().Str("component", "server").Logger())
			srv.Version = version
			return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default "+config.EnvPort+" or 8080)")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and aliases",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, n := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", n)
			}
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sipcalc %s\n", version)
		},
	}
}
