package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	watchOut  string
	watchMidi string
	quiet     time.Duration
)

func init() {
	watchCmd.Flags().IntVar(&snippet, "snippet", 1, "which \\gabcsnippet of a .tex file, 1..n")
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "lilypond output file (required)")
	watchCmd.Flags().StringVar(&watchMidi, "midi", "", "also write a midi file")
	watchCmd.Flags().DurationVar(&quiet, "quiet", 200*time.Millisecond, "how long the source must stay unchanged before converting")
	watchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file.gabc|file.tex>",
	Short: "Re-converts whenever the source changes",
	Long:  `Re-converts whenever the source changes, until interrupted`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], quiet, func() {
			err := convertFile(args[0], snippet, watchOut, watchMidi, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Could not convert %v: %v\n", args[0], err)
				return
			}
			fmt.Fprintf(os.Stderr, "Wrote %v\n", watchOut)
		})
	},
}

// watch calls convert once at the start and then once per burst of
// changes to path. It watches the parent directory so that a new file
// renamed over path counts as a change.
func watch(ctx context.Context, path string, quiet time.Duration, convert func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	debounced := debounce.New(quiet)
	run := func() {
		if ctx.Err() != nil {
			return
		}
		convert()
	}
	convert()

	for {
		select {
		case <-ctx.Done():
			// drop a conversion that is still waiting
			debounced(func() {})
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debounced(run)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}
