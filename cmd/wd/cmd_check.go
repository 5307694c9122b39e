package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dhamidi/writedown/scanner"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse every .wd document below a directory and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			fsys := os.DirFS(dir)
			out := cmd.OutOrStdout()

			if watch {
				return watchDocuments(out, scanner.NewWatcher(fsys, ".", interval, a.depthOptions()...))
			}

			results, err := scanner.Check(fsys, ".", a.depthOptions()...)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.OK() {
					log.Debugf("%s: %d sections", r.Path, r.Sections)
					continue
				}
				failed++
				fmt.Fprintln(out, r.Error)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed to parse", failed, len(results))
			}
			fmt.Fprintf(out, "checked %d documents\n", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and re-check documents when they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval for --watch")

	return cmd
}

// watchDocuments reports every change until interrupted.
func watchDocuments(out io.Writer, w *scanner.Watcher) error {
	w.OnChange = func(r scanner.FileResult) {
		if r.OK() {
			fmt.Fprintf(out, "%s: ok\n", r.Path)
		} else {
			fmt.Fprintln(out, r.Error)
		}
	}
	w.OnRemove = func(name string) {
		log.Infof("%s removed", name)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	w.Start()
	<-sig
	w.Stop()
	return nil
}
