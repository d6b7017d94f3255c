package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-tagexpand/internal/config"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: MsgWatchShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, cfg, debounce)
		},
	}
	addSiteFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before a rebuild")
	return cmd
}

// watch builds once and then rebuilds after every burst of filesystem events
// under the template and input directories. Build failures are logged and the
// watch continues.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, cfg config.Config, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	output, _ := filepath.Abs(cfg.Output)
	for _, dir := range []string{cfg.Templates, cfg.Input} {
		if err := addRecursive(watcher, dir, output); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	rebuild := func() {
		if err := a.build(ctx, cfg, out); err != nil {
			a.logger.Error().Err(err).Msg("rebuild failed")
		}
	}
	rebuild()
	fmt.Fprintf(out, MsgWatching, strings.Join(watcher.WatchList(), ", "))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if skipEvent(event, output) {
				continue
			}
			a.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name, output); err != nil {
						a.logger.Warn().Err(err).Str("path", event.Name).Msg("cannot watch new directory")
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			rebuild()
		}
	}
}

// addRecursive watches root and every directory below it except hidden ones
// and the output directory.
func addRecursive(watcher *fsnotify.Watcher, root, output string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if abs, err := filepath.Abs(path); err == nil && abs == output {
			return fs.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// skipEvent drops events that cannot change the build: chmod only, editor
// swap files and anything written into the output directory.
func skipEvent(event fsnotify.Event, output string) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return true
	}
	if abs, err := filepath.Abs(event.Name); err == nil && output != "" {
		if abs == output || strings.HasPrefix(abs, output+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
