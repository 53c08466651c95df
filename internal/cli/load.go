package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arvados/sparql-client/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database string
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "load <ntriples-file>",
		Short:         "Import N-Triples into a local triple store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "local triple store database path (required)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runLoad(opts *LoadOptions, path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open input", err)
	}
	defer f.Close()

	g, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer g.Close()

	n, err := g.Load(cmd.Context(), f)
	if err != nil {
		return WrapExitError(ExitFailure, "load triples", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(map[string]int{"loaded": n})
	}
	return formatter.Success(fmt.Sprintf("loaded %d triples", n))
}
