package store

import (
	"fmt"
	"strings"

	"github.com/arvados/sparql-client/rdf"
	"github.com/arvados/sparql-client/sparql"
)

// ErrNoPatterns is returned when compiling a query whose WHERE block is
// empty; there is no table access to compile it against.
var ErrNoPatterns = fmt.Errorf("query has no patterns to match")

// compiled is the output of compiling a query against the triples table.
type compiled struct {
	sql  string
	args []any
	vars []string // projection column order, matching the SELECT list
}

// Compile converts a query into a single parameterized SQL statement
// over the triples table. Returns the SQL, its placeholder arguments and
// the projected variable names in column order.
//
// Each pattern becomes a table alias; a variable shared between
// components becomes a join equality on its first-seen column, and a
// concrete term becomes an equality against a placeholder. Values are
// never interpolated into the SQL text.
func Compile(q *sparql.Query) (string, []any, []string, error) {
	c, err := compile(q)
	if err != nil {
		return "", nil, nil, err
	}
	return c.sql, c.args, c.vars, nil
}

func compile(q *sparql.Query) (*compiled, error) {
	patterns := q.Patterns()
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	var (
		varCols  = map[string]string{}
		varOrder []string
		conds    []string
		args     []any
	)
	for i, pat := range patterns {
		alias := fmt.Sprintf("t%d", i)
		cols := [3]string{"s", "p", "o"}
		for j, term := range pat.Terms() {
			col := alias + "." + cols[j]
			if term == nil {
				return nil, fmt.Errorf("pattern %d has a nil %s component", i, cols[j])
			}
			if v, ok := term.(rdf.Variable); ok {
				first, seen := varCols[v.Name]
				if !seen {
					varCols[v.Name] = col
					varOrder = append(varOrder, v.Name)
					continue
				}
				conds = append(conds, col+" = "+first)
				continue
			}
			conds = append(conds, col+" = ?")
			args = append(args, term.String())
		}
	}

	// An empty projection means "*": every variable the patterns bind,
	// in first-seen order.
	projected := projectedNames(q, varOrder)
	selectCols := make([]string, 0, len(projected))
	for _, name := range projected {
		col, ok := varCols[name]
		if !ok {
			// Projected but bound by no pattern: present in the result
			// shape, never bound.
			selectCols = append(selectCols, fmt.Sprintf(`NULL AS "%s"`, name))
			continue
		}
		selectCols = append(selectCols, fmt.Sprintf(`%s AS "%s"`, col, name))
	}
	if len(selectCols) == 0 {
		selectCols = []string{"1"}
	}

	opts := q.Options()

	var b strings.Builder
	b.WriteString("SELECT ")
	if opts.Distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(selectCols, ", "))
	b.WriteString(" FROM ")
	for i := range patterns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "triples t%d", i)
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	orderBy, err := orderClause(opts, varCols, projected, len(patterns))
	if err != nil {
		return nil, err
	}
	b.WriteString(orderBy)

	switch {
	case opts.Limit != nil:
		fmt.Fprintf(&b, " LIMIT %d", *opts.Limit)
		if opts.Offset != nil {
			fmt.Fprintf(&b, " OFFSET %d", *opts.Offset)
		}
	case opts.Offset != nil:
		// SQLite requires a LIMIT clause to carry an OFFSET; -1 means
		// unlimited.
		fmt.Fprintf(&b, " LIMIT -1 OFFSET %d", *opts.Offset)
	}

	return &compiled{sql: b.String(), args: args, vars: projected}, nil
}

// projectedNames resolves the projection: explicit variables if the
// query names any, otherwise every pattern variable in first-seen order.
func projectedNames(q *sparql.Query, varOrder []string) []string {
	vars := q.Variables()
	if len(vars) == 0 {
		return varOrder
	}
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// orderClause maps the query's ORDER BY names to sort terms. Without an
// explicit order, rows come back in insertion order of the matched
// triples so results stay deterministic.
//
// Under DISTINCT, SQLite only sorts on result columns, so sort terms
// reference the projection (by alias or ordinal) instead of base
// columns.
func orderClause(opts sparql.Options, varCols map[string]string, projected []string, patternCount int) (string, error) {
	inProjection := map[string]bool{}
	for _, name := range projected {
		inProjection[name] = true
	}

	var cols []string
	switch {
	case len(opts.OrderBy) > 0:
		for _, name := range opts.OrderBy {
			switch {
			case inProjection[name]:
				cols = append(cols, fmt.Sprintf(`"%s" COLLATE BINARY ASC`, name))
			case opts.Distinct:
				return "", fmt.Errorf("order by ?%s: variable must be projected in a DISTINCT query", name)
			default:
				col, ok := varCols[name]
				if !ok {
					return "", fmt.Errorf("order by ?%s: variable not bound by any pattern", name)
				}
				cols = append(cols, col+" COLLATE BINARY ASC")
			}
		}

	case opts.Distinct:
		for i := range projected {
			cols = append(cols, fmt.Sprintf("%d ASC", i+1))
		}
		if len(cols) == 0 {
			return "", nil
		}

	default:
		for i := 0; i < patternCount; i++ {
			cols = append(cols, fmt.Sprintf("t%d.id ASC", i))
		}
	}
	return " ORDER BY " + strings.Join(cols, ", "), nil
}
