package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arvados/sparql-client/rdf"
	"github.com/arvados/sparql-client/sparql"
)

// Select matches the query against the stored triples and returns one
// solution per result row.
//
// A query with no patterns matches the empty group once, yielding a
// single empty solution.
func (s *Store) Select(ctx context.Context, q *sparql.Query) ([]sparql.Solution, error) {
	if err := q.Err(); err != nil {
		return nil, err
	}
	if len(q.Patterns()) == 0 {
		return []sparql.Solution{{}}, nil
	}

	c, err := compile(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, c.sql, c.args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	var solutions []sparql.Solution
	for rows.Next() {
		solution, err := scanSolution(rows, c.vars)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, solution)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return solutions, nil
}

// Ask reports whether the query's patterns have at least one match. With
// no patterns the empty group matches trivially.
func (s *Store) Ask(ctx context.Context, q *sparql.Query) (bool, error) {
	if err := q.Err(); err != nil {
		return false, err
	}
	patterns := q.Patterns()
	if len(patterns) == 0 {
		return true, nil
	}

	// Existence only needs the join conditions, not the projection.
	probe := sparql.Select().Where(patterns...).Limit(1)
	c, err := compile(probe)
	if err != nil {
		return false, err
	}

	rows, err := s.db.QueryContext(ctx, c.sql, c.args...)
	if err != nil {
		return false, fmt.Errorf("execute ask: %w", err)
	}
	defer rows.Close()

	matched := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterate ask result: %w", err)
	}
	return matched, nil
}

// scanSolution reads one row into a solution, decoding each non-NULL
// column back into a term.
func scanSolution(rows *sql.Rows, vars []string) (sparql.Solution, error) {
	if len(vars) == 0 {
		// Ground query compiled with a constant SELECT list.
		var one int
		if err := rows.Scan(&one); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		return sparql.Solution{}, nil
	}

	cells := make([]sql.NullString, len(vars))
	targets := make([]any, len(vars))
	for i := range cells {
		targets[i] = &cells[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	solution := make(sparql.Solution, len(vars))
	for i, name := range vars {
		if !cells[i].Valid {
			continue
		}
		term, err := rdf.ParseTerm(cells[i].String)
		if err != nil {
			return nil, fmt.Errorf("decode ?%s binding %q: %w", name, cells[i].String, err)
		}
		solution[name] = term
	}
	return solution, nil
}
