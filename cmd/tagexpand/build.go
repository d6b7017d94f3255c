package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-tagexpand/internal/config"
	"github.com/goliatone/go-tagexpand/internal/logging"
	"github.com/goliatone/go-tagexpand/pkg/site"
)

func addSiteFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	f := cmd.Flags()
	f.StringP("input", "i", defaults["input"].(string), "Directory holding the pages to expand")
	f.StringP("output", "o", defaults["output"].(string), "Directory expanded pages are written to")
	f.Int("concurrency", 0, "Pages expanded at once (0 uses GOMAXPROCS)")
	f.Bool("continue-on-error", false, "Keep building when a page fails")
}

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: MsgBuildShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			return a.build(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	addSiteFlags(cmd)
	return cmd
}

// build loads the templates afresh and expands the whole input tree.
func (a *app) build(ctx context.Context, cfg config.Config, out io.Writer) error {
	done := logging.Timed(a.logger, "build")
	defer done()

	e, err := a.engine(ctx, cfg)
	if err != nil {
		return err
	}
	opts := []site.Option{
		site.WithConcurrency(cfg.Concurrency),
		site.WithLogger(logging.Component(a.logger, "site")),
	}
	if cfg.ContinueOnError {
		opts = append(opts, site.WithContinueOnError())
	}
	builder, err := site.New(e, opts...)
	if err != nil {
		return err
	}

	report, err := builder.Build(ctx, cfg.Input, cfg.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, MsgBuildSummary, len(report.Pages), cfg.Output)
	for _, failed := range report.Failed {
		fmt.Fprintf(out, MsgBuildFailed, failed.Path, failed.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf(MsgPagesFailedFmt, len(report.Failed))
	}
	return nil
}
