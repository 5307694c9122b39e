package main

import (
	"fmt"

	"github.com/dhamidi/writedown/format"
	"github.com/dhamidi/writedown/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a document and dump its tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Format
			}

			root, err := parser.Parse(src, a.parserOptions(name)...)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), format.HTMLOptions{
				Standalone: a.cfg.HTML.Standalone,
				Title:      a.cfg.HTML.Title,
			})
			if err != nil {
				return err
			}
			if err := encoder.Encode(root); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree, html)")

	return cmd
}
