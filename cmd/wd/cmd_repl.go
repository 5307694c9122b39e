package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/writedown/format"
	"github.com/dhamidi/writedown/parser"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".wd_history"
	promptMain  = "wd> "
	promptCont  = "... "
)

const replHelp = `Enter writedown text. Input is rendered once it parses; unterminated
constructs keep reading.

  :tokens   show tokens
  :tree     show the document tree
  :html     show HTML
  :help     show this text
  :quit     leave
`

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively tokenize and parse writedown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &repl{out: cmd.OutOrStdout(), mode: "tree", opts: a.depthOptions()}
			return r.run()
		},
	}
}

type repl struct {
	out  io.Writer
	mode string
	opts []parser.Option
}

func (r *repl) run() error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	for {
		src, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(r.out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.TrimSuffix(src, "\n"))

		if strings.HasPrefix(src, ":") {
			if r.command(strings.TrimSpace(src)) {
				break
			}
			continue
		}
		if err := r.eval(src); err != nil {
			fmt.Fprintln(r.out, err)
		}
	}

	if f, err := os.Create(histPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	} else {
		log.Debugf("save history: %v", err)
	}
	return nil
}

// command handles a ":name" line and reports whether the REPL should exit.
func (r *repl) command(line string) bool {
	switch line {
	case ":quit", ":exit", ":q":
		return true
	case ":tokens", ":tree", ":html":
		r.mode = strings.TrimPrefix(line, ":")
		fmt.Fprintf(r.out, "showing %s\n", r.mode)
	case ":help":
		fmt.Fprint(r.out, replHelp)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for help.\n", line)
	}
	return false
}

func (r *repl) eval(src string) error {
	if r.mode == "tokens" {
		enc := format.NewTokenEncoder(r.out, format.TokenOptions{Color: true})
		return enc.Encode(parser.NewTokenizer(src, ""))
	}

	root, err := parser.Parse(src, r.opts...)
	if err != nil {
		return err
	}
	if r.mode == "html" {
		return format.NewHTMLEncoder(r.out, format.HTMLOptions{}).Encode(root)
	}
	return format.NewTreeEncoder(r.out).Encode(root)
}

// complete reports whether src needs no further input: it either parses
// or fails for a reason more input cannot fix.
func complete(src string) bool {
	if strings.HasPrefix(src, ":") {
		return true
	}
	_, err := parser.Parse(src)
	return !parser.IsIncomplete(err)
}

// readByParseProbe reads lines until the buffer is complete. It returns
// false on end of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		b.WriteString(line)
		b.WriteByte('\n')

		if src := b.String(); complete(src) {
			return src, true
		}
	}
}
