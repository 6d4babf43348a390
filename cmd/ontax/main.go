package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/config"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	logLevels = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}

	log = logrus.WithField("module", "ontax")
)

// options holds the persistent flags shared by every subcommand
type options struct {
	rulesPath string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ontax",
		Short:         "Ontario income tax calculator",
		Long:          "Computes the 2021 Ontario and federal income tax breakdown, CPP and EI deductions, and net pay for an annual income",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logLevels[strings.ToLower(opts.logLevel)]
			if !ok {
				return fmt.Errorf("log-level must be one of %v", levelNames())
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.rulesPath, "rules", "", "Path to a tax rules YAML file (default: built-in 2021 Ontario rules)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(calcCmd(opts))
	root.AddCommand(breakdownCmd(opts))
	root.AddCommand(compareCmd(opts))
	root.AddCommand(solveCmd(opts))
	root.AddCommand(fieldsCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd(opts))
	root.AddCommand(tuiCmd(opts))
	root.AddCommand(versionCmd())
	return root
}

func levelNames() []string {
	names := lo.Keys(logLevels)
	sort.Strings(names)
	return names
}

// loadEngine builds an engine from --rules, or the built-in rules when unset
func loadEngine(opts *options) (*calculation.CalculationEngine, error) {
	rules, err := config.NewInputParser().Load(opts.rulesPath)
	if err != nil {
		return nil, err
	}

	engine, err := calculation.NewCalculationEngineWithRules(*rules)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(log)

	source := opts.rulesPath
	if source == "" {
		source = "built-in"
	}
	log.WithFields(logrus.Fields{"rules": source, "dataYear": engine.DataYear}).Debug("engine ready")
	return engine, nil
}

// parseIncome accepts plain decimals with optional thousands separators and a leading $
func parseIncome(raw string) (decimal.Decimal, error) {
	return parseAmount("income", raw)
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), "$")
	return domain.ParseAmount(name, cleaned)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ontax %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(out, "built-in rules: %d\n", calculation.DefaultRules2021().Metadata.DataYear)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
