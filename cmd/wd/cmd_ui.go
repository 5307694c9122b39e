package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dhamidi/writedown/ui"
	"github.com/spf13/cobra"
)

func newUICmd(a *app) *cobra.Command {
	var addr string
	var root string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.UI.Addr
			}
			if !cmd.Flags().Changed("root") {
				root = a.cfg.UI.Root
			}

			server, err := ui.NewServer(os.DirFS(root), a.depthOptions()...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			defer server.Close()

			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s\n", root, displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "address to listen on")
	cmd.Flags().StringVarP(&root, "root", "r", ".", "directory holding .wd documents")

	return cmd
}
