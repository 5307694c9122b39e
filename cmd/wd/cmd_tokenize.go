package main

import (
	"fmt"

	"github.com/dhamidi/writedown/format"
	"github.com/dhamidi/writedown/parser"
	"github.com/spf13/cobra"
)

func newTokenizeCmd(a *app) *cobra.Command {
	var outputFormat string
	var color bool

	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "List the tokens of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			opts := format.TokenOptions{Color: color}
			switch outputFormat {
			case "text":
			case "json":
				opts.JSON = true
			default:
				return fmt.Errorf("unknown format: %s (expected text or json)", outputFormat)
			}

			enc := format.NewTokenEncoder(cmd.OutOrStdout(), opts)
			return enc.Encode(parser.NewTokenizer(src, name))
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&color, "color", false, "colorize token kinds")

	return cmd
}
