package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/writedown/format"
	"github.com/dhamidi/writedown/parser"
	"github.com/spf13/cobra"
)

func newHTMLCmd(a *app) *cobra.Command {
	var output string
	var standalone bool
	var title string

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Render a document as HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			root, err := parser.Parse(src, a.parserOptions(name)...)
			if err != nil {
				return err
			}

			opts := format.HTMLOptions{Standalone: a.cfg.HTML.Standalone, Title: a.cfg.HTML.Title}
			if cmd.Flags().Changed("standalone") {
				opts.Standalone = standalone
			}
			if cmd.Flags().Changed("title") {
				opts.Title = title
			}
			if opts.Title == "" {
				opts.Title = defaultTitle(root, name)
			}

			text, err := format.NewHTMLEncoder(nil, opts).MarshalText(root)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(text)
				return err
			}
			if err := os.WriteFile(output, text, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "emit a complete HTML document")
	cmd.Flags().StringVar(&title, "title", "", "document title for standalone output")

	return cmd
}

func defaultTitle(root *parser.Section, name string) string {
	if sections := root.Sections(); len(sections) > 0 {
		return sections[0].Title
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}
