package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arvados/sparql-client/client"
	"github.com/arvados/sparql-client/sparql"
	"github.com/arvados/sparql-client/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Endpoint string
	Database string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <definition-file>",
		Short: "Run a query against an endpoint or a local store",
		Long: `Load a query definition and execute it, either against a SPARQL
HTTP endpoint (--endpoint) or against a local SQLite triple store
(--db). ASK queries print the boolean, SELECT queries print one solution
per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "SPARQL endpoint URL")
	cmd.Flags().StringVar(&opts.Database, "db", "", "local triple store database path")

	return cmd
}

func runQuery(opts *QueryOptions, defPath string, cmd *cobra.Command) error {
	if (opts.Endpoint == "") == (opts.Database == "") {
		return WrapExitError(ExitCommandError, "exactly one of --endpoint or --db is required", nil)
	}

	q, err := LoadQuery(defPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load query definition", err)
	}
	if opts.Verbose {
		q.Dump(cmd.ErrOrStderr())
	}

	var (
		solutions []sparql.Solution
		boolean   bool
	)
	if opts.Endpoint != "" {
		solutions, boolean, err = runRemote(opts, cmd, q)
	} else {
		solutions, boolean, err = runLocal(opts, cmd, q)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "execute query", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if q.Form() == sparql.FormAsk {
		if opts.Format == "json" {
			return formatter.Success(map[string]bool{"boolean": boolean})
		}
		return formatter.Success(fmt.Sprintf("%t", boolean))
	}

	if opts.Format == "json" {
		rows := make([]map[string]string, len(solutions))
		for i, s := range solutions {
			row := make(map[string]string, len(s))
			for name, term := range s {
				row[name] = term.String()
			}
			rows[i] = row
		}
		return formatter.Success(rows)
	}
	for _, s := range solutions {
		if err := formatter.Success(s.String()); err != nil {
			return err
		}
	}
	return nil
}

func runRemote(opts *QueryOptions, cmd *cobra.Command, q *sparql.Query) ([]sparql.Solution, bool, error) {
	clientOpts := []client.Option{}
	if opts.Verbose {
		log := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
		clientOpts = append(clientOpts, client.WithLogger(log))
	}
	c := client.New(opts.Endpoint, clientOpts...)

	ctx := cmd.Context()
	if q.Form() == sparql.FormAsk {
		ok, err := c.Ask(ctx, q)
		return nil, ok, err
	}
	solutions, err := c.Select(ctx, q)
	return solutions, false, err
}

func runLocal(opts *QueryOptions, cmd *cobra.Command, q *sparql.Query) ([]sparql.Solution, bool, error) {
	g, err := store.Open(opts.Database)
	if err != nil {
		return nil, false, err
	}
	defer g.Close()

	ctx := cmd.Context()
	if q.Form() == sparql.FormAsk {
		ok, err := g.Ask(ctx, q)
		return nil, ok, err
	}
	solutions, err := g.Select(ctx, q)
	return solutions, false, err
}
