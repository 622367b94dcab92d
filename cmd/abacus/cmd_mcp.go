package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/abacus/internal/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve calculator tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(sess,
				mcpserver.WithVersion(version),
				mcpserver.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			a.logger.Info("serving MCP on stdio")

			return srv.ServeStdio()
		},
	}
}
