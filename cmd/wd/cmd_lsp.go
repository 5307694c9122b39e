package main

import (
	"github.com/dhamidi/writedown/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, a.depthOptions()...)
			return server.RunStdio()
		},
	}
}
