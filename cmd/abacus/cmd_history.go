package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage calculation history",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print items as JSON")

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			items := sess.History()
			if limit > 0 {
				items = sess.HistoryStore().Recent(limit)
			}

			return printItems(cmd.OutOrStdout(), items, asJSON)
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of items (0 for all)")

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find calculations whose expression contains QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			return printItems(cmd.OutOrStdout(), sess.HistoryStore().Search(args[0]), asJSON)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			store := sess.HistoryStore()
			if _, ok := store.Get(args[0]); !ok {
				return fmt.Errorf("no history item with id %q", args[0])
			}
			store.Delete(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])

			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			n := sess.HistoryStore().Len()
			sess.ClearHistory()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d items\n", n)

			return nil
		},
	}

	cmd.AddCommand(list, search, deleteCmd, clearCmd)

	return cmd
}

func printItems(w io.Writer, items []history.Item, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []history.Item{}
		}

		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "no history")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tEXPRESSION\tRESULT")
	for _, item := range items {
		result := item.Result.String()
		if item.Error != "" {
			result += " (" + item.Error + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Timestamp.Local().Format(time.DateTime), item.Expression, result)
	}

	return tw.Flush()
}
