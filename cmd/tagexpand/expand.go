package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExpandCmd(a *app) *cobra.Command {
	var fragment bool

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: MsgExpandShort,
		Long: `Expand reads a document from file, or from stdin when no file or "-" is
given, and writes the expanded document to stdout. With --fragment the input
is treated as body markup and collected CSS is emitted as a leading style
element.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !fragment {
				doc, err := e.ExpandDocument(cmd.Context(), src)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, doc)
				return err
			}

			markup, css, err := e.ExpandFragment(cmd.Context(), src)
			if err != nil {
				return err
			}
			if css != "" {
				fmt.Fprintf(out, "<style>%s</style>\n", css)
			}
			_, err = fmt.Fprintln(out, markup)
			return err
		},
	}
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Treat the input as a body fragment")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
