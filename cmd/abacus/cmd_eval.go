package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/engine"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		mode   string
		record bool
	)

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION...",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression and print the result.

With --record the calculation runs in the saved session and is added to
history; --mode then also changes the session angle mode.`,
		Example: `  abacus eval "sqrt(16) + 2^3"
  abacus eval --mode rad "sin(pi/2)"
  abacus eval --record "factorial(5)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")

			var parsed angle.Mode
			if mode != "" {
				m, err := angle.Parse(mode)
				if err != nil {
					return err
				}
				parsed = m
			}

			if !record {
				if !parsed.IsValid() {
					parsed = a.cfg.Angle()
				}
				v, err := engine.Default().EvaluateIn(expr, parsed)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), engine.FormatResult(v))

				return nil
			}

			sess, err := a.session()
			if err != nil {
				return err
			}
			if parsed.IsValid() {
				if err := sess.SetAngleMode(parsed); err != nil {
					return err
				}
			}
			item, err := sess.Submit(expr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.FormatResult(item.Result.Float64()))

			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "angle mode: deg, rad or grad")
	cmd.Flags().BoolVarP(&record, "record", "r", false, "record the calculation in history")

	return cmd
}
