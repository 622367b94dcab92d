package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/engine"
	"github.com/arloliu/abacus/internal/tui"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "abacus",
		Short: "A scientific calculator with persistent history",
		Long: `abacus evaluates math expressions with trigonometry, logarithms and factorials.

Run without arguments on a terminal to start the interactive calculator. When
stdin is not a terminal, every input line is calculated and recorded.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.isTerminal() {
				return runTUI(a, cmd)
			}

			return runLines(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $HOME/.abacus/abacus.yaml)")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory for the history database")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&a.inMemory, "in-memory", false, "keep state in memory only")

	root.AddCommand(
		newEvalCmd(a),
		newHistoryCmd(a),
		newStatsCmd(a),
		newConvertCmd(a),
		newTUICmd(a),
		newMCPCmd(a),
	)

	return root
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, cmd)
		},
	}
}

func runTUI(a *app, cmd *cobra.Command) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	return tui.Run(sess,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}

// runLines calculates each non-empty line of in and records it in history.
func runLines(a *app, in io.Reader, out io.Writer) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		item, err := sess.Submit(line)
		if err != nil {
			fmt.Fprintf(out, "%s = Error: %v\n", line, err)
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", line, engine.FormatResult(item.Result.Float64()))
	}

	return scanner.Err()
}
