package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: MsgTagsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			defs := e.Registry().Definitions()
			if len(defs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoTags)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tSOURCE\tSTYLESHEET")
			for _, def := range defs {
				stylesheet := def.Stylesheet
				if stylesheet == "" {
					stylesheet = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Tag, def.Source, stylesheet)
			}
			return w.Flush()
		},
	}
}
