package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/convert"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		category string
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units",
		Example: `  abacus convert 5 km mi --category length
  abacus convert 100 C F -c temperature
  abacus convert --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}

			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, c := range convert.Categories() {
					units, err := convert.Units(c)
					if err != nil {
						return err
					}
					keys := make([]string, 0, len(units))
					for _, u := range units {
						keys = append(keys, u.Key)
					}
					fmt.Fprintf(tw, "%s\t%s\n", c, strings.Join(keys, " "))
				}

				return tw.Flush()
			}

			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			c, err := convert.ParseCategory(category)
			if err != nil {
				return err
			}
			result, err := convert.Convert(value, args[1], args[2], c)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.String())

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(convert.Length), "unit category")
	cmd.Flags().BoolVar(&list, "list", false, "list categories and units")

	return cmd
}
