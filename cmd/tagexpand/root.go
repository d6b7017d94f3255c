package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tagexpand "github.com/goliatone/go-tagexpand"
	"github.com/goliatone/go-tagexpand/internal/config"
	"github.com/goliatone/go-tagexpand/internal/logging"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by every subcommand of one root command.
type app struct {
	verbosity  int
	configFile string
	logger     zerolog.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// so tests can execute commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "tagexpand",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.Setup(a.verbosity, cmd.ErrOrStderr())
			a.logger.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := config.Defaults()
	pf := root.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVarP(&a.configFile, "config", "c", "", "Config file (default ./"+config.DefaultFile+" when present)")
	pf.StringP("templates", "t", defaults["templates"].(string), "Template directory")
	pf.StringSlice("extensions", defaults["extensions"].([]string), "Template file extensions")
	pf.Int("max-passes", 0, "Fail when a document has not settled after this many passes (0 disables)")
	pf.Bool("sanitize", false, "Sanitise rendered templates")
	pf.Bool("minify", false, "Minify collected CSS")

	root.AddCommand(
		newBuildCmd(a),
		newExpandCmd(a),
		newWatchCmd(a),
		newTagsCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) config(cmd *cobra.Command) (config.Config, error) {
	return config.Load(config.Options{File: a.configFile, Flags: cmd.Flags()})
}

func (a *app) engine(ctx context.Context, cfg config.Config) (*tagexpand.Engine, error) {
	opts := []tagexpand.Option{
		tagexpand.WithExtensions(cfg.Extensions...),
		tagexpand.WithMaxPasses(cfg.MaxPasses),
		tagexpand.WithLogger(logging.Component(a.logger, "engine")),
	}
	if cfg.Minify {
		opts = append(opts, tagexpand.WithMinifiedCSS())
	}
	if cfg.Sanitize {
		opts = append(opts, tagexpand.WithSanitizer())
	}
	return tagexpand.LoadDir(ctx, cfg.Templates, opts...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version, commit, date)
		},
	}
}
