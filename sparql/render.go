package sparql

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String renders the query as SPARQL text.
//
// The clause order is fixed: form keyword, DISTINCT, REDUCED, projection,
// WHERE block, ORDER BY, OFFSET, LIMIT. Tokens are joined with single
// spaces. Rendering is a pure read; calling it twice without intervening
// mutation yields identical text.
func (q *Query) String() string {
	tokens := []string{strings.ToUpper(string(q.form))}

	if q.form == FormSelect {
		if q.opts.Distinct {
			tokens = append(tokens, "DISTINCT")
		}
		if q.opts.Reduced {
			tokens = append(tokens, "REDUCED")
		}
		if len(q.vars) == 0 {
			tokens = append(tokens, "*")
		} else {
			for _, v := range q.vars {
				tokens = append(tokens, v.String())
			}
		}
	}

	tokens = append(tokens, "WHERE", "{")
	for _, p := range q.patterns {
		tokens = append(tokens, p.String())
	}
	tokens = append(tokens, "}")

	if len(q.opts.OrderBy) > 0 {
		tokens = append(tokens, "ORDER", "BY")
		for _, name := range q.opts.OrderBy {
			tokens = append(tokens, "?"+name)
		}
	}
	if q.opts.Offset != nil {
		tokens = append(tokens, "OFFSET", strconv.Itoa(*q.opts.Offset))
	}
	if q.opts.Limit != nil {
		tokens = append(tokens, "LIMIT", strconv.Itoa(*q.opts.Limit))
	}

	return strings.Join(tokens, " ")
}

// Inspect returns a diagnostic rendering combining the concrete type,
// the instance identity and the serialized query.
func (q *Query) Inspect() string {
	return fmt.Sprintf("#<%T:%p (%s)>", q, q, q.String())
}

// Dump writes the Inspect rendering to w, typically a diagnostic stream,
// and returns the query for further chaining.
func (q *Query) Dump(w io.Writer) *Query {
	fmt.Fprintln(w, q.Inspect())
	return q
}
