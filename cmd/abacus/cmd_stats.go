package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		since, until string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize numeric results in history",
		Long: `Summarize numeric results in history. --since and --until take RFC 3339
timestamps or durations such as 24h, counted back from now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			now := time.Now()
			start, err := parseTimeFlag(since, now)
			if err != nil {
				return fmt.Errorf("--since: %w", err)
			}
			end, err := parseTimeFlag(until, now)
			if err != nil {
				return fmt.Errorf("--until: %w", err)
			}

			var st stats.Statistics
			if start.IsZero() && end.IsZero() {
				st = sess.Statistics()
			} else {
				if end.IsZero() {
					end = now
				}
				st = stats.CalculateForPeriod(sess.History(), start, end)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(st)
			}

			fmt.Fprintf(out, "count:   %d\n", st.Count)
			fmt.Fprintf(out, "sum:     %s\n", engine.FormatResult(st.Sum))
			fmt.Fprintf(out, "average: %s\n", engine.FormatResult(st.Average))
			fmt.Fprintf(out, "min:     %s\n", engine.FormatResult(st.Min))
			fmt.Fprintf(out, "max:     %s\n", engine.FormatResult(st.Max))
			fmt.Fprintf(out, "median:  %s\n", engine.FormatResult(st.Median))

			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "start of the period")
	cmd.Flags().StringVar(&until, "until", "", "end of the period")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// parseTimeFlag accepts RFC 3339 or a duration before now. Empty yields the zero time.
func parseTimeFlag(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(-d), nil
	}

	return time.Parse(time.RFC3339, value)
}
