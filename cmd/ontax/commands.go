package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/ontax/internal/breakeven"
	"github.com/rgehrsitz/ontax/internal/compare"
	"github.com/rgehrsitz/ontax/internal/config"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/rgehrsitz/ontax/internal/output"
	"github.com/rgehrsitz/ontax/internal/server"
	"github.com/rgehrsitz/ontax/internal/tui"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func calcCmd(opts *options) *cobra.Command {
	var fieldName string
	var exact bool

	cmd := &cobra.Command{
		Use:   "calc <income>",
		Short: "Print a single breakdown field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseIncome(args[0])
			if err != nil {
				return err
			}
			field, err := domain.ParseField(fieldName)
			if err != nil {
				return err
			}
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}

			value, err := engine.TaxBreakdown(income, field)
			if err != nil {
				return err
			}

			switch {
			case exact:
				fmt.Fprintln(cmd.OutOrStdout(), value.String())
			case field.IsRate():
				fmt.Fprintln(cmd.OutOrStdout(), value.StringFixed(4))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), value.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fieldName, "field", "f", domain.DefaultField.String(), "Field to print (see 'ontax fields')")
	cmd.Flags().BoolVar(&exact, "exact", false, "Print the unrounded value")
	return cmd
}

func breakdownCmd(opts *options) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "breakdown <income>",
		Short: "Print the full tax breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := parseIncome(args[0])
			if err != nil {
				return err
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: unknown output format %q (valid: %s)", domain.ErrInvalidArgument, format, formatChoices())
			}
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}

			b, err := engine.Breakdown(income)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := output.WriteFormatted(f, b, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s breakdown to %s\n", f.Name(), outPath)
				return nil
			}

			data, err := f.Format(b)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format ("+formatChoices()+")")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write output to a file instead of stdout")
	return cmd
}

// formatChoices lists breakdown formats followed by their aliases
func formatChoices() string {
	return strings.Join(output.AvailableFormatterNames(), ", ") +
		"; aliases: " + strings.Join(output.AvailableFormatAliases(), ", ")
}

func compareCmd(opts *options) *cobra.Command {
	var format string
	var compact bool

	cmd := &cobra.Command{
		Use:   "compare <base-income> <income>...",
		Short: "Compare the breakdown of several incomes against a base",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			incomes := make([]decimal.Decimal, 0, len(args))
			for _, arg := range args {
				income, err := parseIncome(arg)
				if err != nil {
					return err
				}
				incomes = append(incomes, income)
			}
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), incomes[0], incomes[1:])
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "table", "console":
				tf := &compare.TableFormatter{}
				if compact {
					out = tf.FormatCompact(compSet) + "\n"
				} else {
					out = tf.Format(compSet)
				}
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("%w: unknown output format %q (valid: table, csv, json)", domain.ErrInvalidArgument, format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "One-line summary (table format only)")
	return cmd
}

func solveCmd(opts *options) *cobra.Command {
	var fieldName, format string

	cmd := &cobra.Command{
		Use:   "solve <target>...",
		Short: "Find the gross income at which a field reaches each target",
		Long:  "Searches, to the cent, for the lowest gross income whose breakdown field is at least the target (for example the income needed for a given net pay)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := domain.ParseField(fieldName)
			if err != nil {
				return err
			}
			targets := make([]decimal.Decimal, 0, len(args))
			for _, arg := range args {
				target, err := parseAmount("target", arg)
				if err != nil {
					return err
				}
				targets = append(targets, target)
			}
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)

			var out string
			if len(targets) == 1 {
				res, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{Field: field, Target: targets[0]})
				if err != nil {
					return err
				}
				out, err = formatSolve(format, res, func(tf *breakeven.TableFormatter) string { return tf.Format(res) })
				if err != nil {
					return err
				}
			} else {
				multi, err := solver.SolveMany(cmd.Context(), field, targets)
				if err != nil {
					return err
				}
				out, err = formatSolve(format, multi, func(tf *breakeven.TableFormatter) string { return tf.FormatMulti(multi) })
				if err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fieldName, "field", "f", domain.FieldNetPay.String(), "Amount field to solve for")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")
	return cmd
}

func formatSolve(format string, v any, table func(*breakeven.TableFormatter) string) (string, error) {
	switch format {
	case "table", "console":
		return table(&breakeven.TableFormatter{}), nil
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (valid: table, json)", domain.ErrInvalidArgument, format)
}

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the selectable breakdown fields",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range domain.AllFields() {
				marker := ""
				if f == domain.DefaultField {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s%s\n", f.String(), output.FieldLabel(f), marker)
			}
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules-file>",
		Short: "Validate a tax rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules file is valid (data year %d, %d federal brackets, %d provincial brackets)\n",
				rules.Metadata.DataYear, len(rules.Federal.Brackets), len(rules.Provincial.Brackets))
			return nil
		},
	}
}

func serveCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tax breakdowns over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := server.NewHandler(engine, log.WithField("component", "http"))
			return server.ListenAndServe(ctx, addr, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive breakdown calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(opts)
			if err != nil {
				return err
			}
			// engine debug lines would corrupt the alt screen
			engine.SetLogger(nil)

			p := tea.NewProgram(tui.NewModel(engine), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
