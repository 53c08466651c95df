package cli

import (
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <definition-file>",
		Short: "Render a query definition to SPARQL text",
		Long: `Load a query definition (.yaml, .yml or .cue) and print the SPARQL
text it renders to.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := LoadQuery(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "load query definition", err)
			}
			if rootOpts.Verbose {
				q.Dump(cmd.ErrOrStderr())
			}

			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"query": q.String()})
			}
			return formatter.Success(q.String())
		},
	}

	return cmd
}
