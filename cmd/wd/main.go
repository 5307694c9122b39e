package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/writedown/config"
	"github.com/dhamidi/writedown/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("writedown.cli")

// app carries the settings shared by all commands.
type app struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:           "wd",
		Short:         "Tokenize, parse and render writedown documents",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default: discovered in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newHTMLCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newUICmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else if dir, err := os.Getwd(); err == nil {
		cfg, err := config.Discover(dir)
		switch {
		case err == nil:
			a.cfg = cfg
		case !errors.Is(err, config.ErrNotFound):
			return err
		}
	}

	verbosity := a.cfg.Log.Verbosity
	if a.verbose > verbosity {
		verbosity = a.verbose
	}
	var logPath *string
	if a.cfg.Log.File != "" {
		logPath = &a.cfg.Log.File
	}
	commonlog.Configure(verbosity, logPath)

	if a.cfg.Path != "" {
		log.Infof("using configuration %s", a.cfg.Path)
	}
	return nil
}

func (a *app) parserOptions(name string) []parser.Option {
	return append([]parser.Option{parser.WithFile(name)}, a.depthOptions()...)
}

func (a *app) depthOptions() []parser.Option {
	if a.cfg.Parser.MaxDepth > 0 {
		return []parser.Option{parser.WithMaxDepth(a.cfg.Parser.MaxDepth)}
	}
	return nil
}

// readInput returns the contents of the file named in args, or of stdin
// when args is empty, together with the name used in error positions.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read document: %w", err)
	}
	return string(data), args[0], nil
}
