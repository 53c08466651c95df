package sparql

import (
	"strings"

	"github.com/arvados/sparql-client/rdf"
)

// Form identifies the query form. The two forms with defined semantics
// are FormAsk and FormSelect; New accepts other identifiers loosely and
// the serializer prints them upper-cased, with all SELECT-specific
// clauses suppressed.
type Form string

const (
	// FormAsk is the boolean pattern-existence form.
	FormAsk Form = "ask"
	// FormSelect is the variable-binding table form.
	FormSelect Form = "select"
)

// Options is the result-modifier record of a query. Offset and Limit are
// nil when unset; a set value is kept as given (the serializer prints it
// verbatim, validation is the caller's concern).
type Options struct {
	Distinct bool
	Reduced  bool
	OrderBy  []string
	Offset   *int
	Limit    *int
}

// clone deep-copies the record so constructed queries never alias
// caller-owned state.
func (o Options) clone() Options {
	out := Options{Distinct: o.Distinct, Reduced: o.Reduced}
	if o.OrderBy != nil {
		out.OrderBy = append([]string(nil), o.OrderBy...)
	}
	if o.Offset != nil {
		v := *o.Offset
		out.Offset = &v
	}
	if o.Limit != nil {
		v := *o.Limit
		out.Limit = &v
	}
	return out
}

// Query is a mutable ASK/SELECT query under construction. The zero value
// is not useful; use New, Ask, Select or the *With variants.
//
// Every mutator returns the receiver, so calls chain. Mutators never
// copy: branching one query into several derived ones is the caller's
// job.
type Query struct {
	form     Form
	vars     []rdf.Variable // projection, insertion-ordered, names unique
	patterns []rdf.Pattern
	opts     Options
	err      error
}

// New returns a query with the given form identifier, normalized via
// lowercasing. Unrecognized forms are kept as-is rather than rejected.
// Any configure callbacks run against the new instance before it is
// returned.
func New(form string, configure ...func(*Query)) *Query {
	q := &Query{form: Form(strings.ToLower(strings.TrimSpace(form)))}
	for _, fn := range configure {
		fn(q)
	}
	return q
}

// Ask returns a new ASK query.
func Ask() *Query {
	return &Query{form: FormAsk}
}

// AskWith returns a new ASK query with the given modifier record.
func AskWith(opts Options) *Query {
	return &Query{form: FormAsk, opts: opts.clone()}
}

// Select returns a new SELECT query projecting the given variable names,
// in argument order. With no names the projection renders as "*".
func Select(names ...string) *Query {
	return (&Query{}).Select(names...)
}

// SelectWith returns a new SELECT query with an explicit modifier record
// and projected variable names.
func SelectWith(opts Options, names ...string) *Query {
	q := &Query{opts: opts.clone()}
	return q.Select(names...)
}

// Ask sets the form to ASK. No other state is touched: patterns and
// modifiers survive, though SELECT-only modifiers stop being emitted.
func (q *Query) Ask() *Query {
	q.form = FormAsk
	return q
}

// Select sets the form to SELECT and rebuilds the projection from
// scratch: each name becomes a variable slot in argument order, first
// occurrence wins on duplicates, and any previously projected variables
// are replaced rather than merged.
func (q *Query) Select(names ...string) *Query {
	q.form = FormSelect
	q.vars = nil
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		v := rdf.NewVariable(name)
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		q.vars = append(q.vars, v)
	}
	return q
}

// Where appends patterns to the WHERE block. Append order is preserved
// exactly; nothing is reordered or deduplicated.
func (q *Query) Where(patterns ...rdf.Pattern) *Query {
	q.patterns = append(q.patterns, patterns...)
	return q
}

// WhereTriple coerces three loose components into a pattern and appends
// it. A coercion failure is recorded on the query (see Err) and the
// pattern is dropped.
func (q *Query) WhereTriple(s, p, o any) *Query {
	pat, err := rdf.NewPattern(s, p, o)
	if err != nil {
		if q.err == nil {
			q.err = err
		}
		return q
	}
	return q.Where(pat)
}

// Order replaces the ORDER BY variable list with the given names, in
// argument order. A leading "?" on a name is accepted and stripped.
func (q *Query) Order(names ...string) *Query {
	ordered := make([]string, len(names))
	for i, name := range names {
		ordered[i] = strings.TrimPrefix(name, "?")
	}
	q.opts.OrderBy = ordered
	return q
}

// OrderBy is an alias for Order.
func (q *Query) OrderBy(names ...string) *Query {
	return q.Order(names...)
}

// Distinct sets the DISTINCT flag; with no argument it sets it true.
func (q *Query) Distinct(state ...bool) *Query {
	q.opts.Distinct = len(state) == 0 || state[0]
	return q
}

// Reduced sets the REDUCED flag; with no argument it sets it true.
//
// DISTINCT and REDUCED are tracked independently and both are emitted
// when both are set, even though SPARQL treats them as mutually
// exclusive. Enforcing that is left to the caller.
func (q *Query) Reduced(state ...bool) *Query {
	q.opts.Reduced = len(state) == 0 || state[0]
	return q
}

// Offset sets the result offset. Equivalent to Slice(&start, nil).
func (q *Query) Offset(start int) *Query {
	return q.Slice(&start, nil)
}

// Limit sets the result limit. Equivalent to Slice(nil, &length).
func (q *Query) Limit(length int) *Query {
	return q.Slice(nil, &length)
}

// Slice sets offset and limit together. A nil argument leaves the
// corresponding modifier untouched rather than clearing it.
func (q *Query) Slice(start, length *int) *Query {
	if start != nil {
		v := *start
		q.opts.Offset = &v
	}
	if length != nil {
		v := *length
		q.opts.Limit = &v
	}
	return q
}

// Err returns the first pattern-coercion error recorded by WhereTriple,
// or nil.
func (q *Query) Err() error {
	return q.err
}

// Form returns the current form tag.
func (q *Query) Form() Form {
	return q.form
}

// Variables returns the projected variables in insertion order. The
// returned slice is a copy.
func (q *Query) Variables() []rdf.Variable {
	return append([]rdf.Variable(nil), q.vars...)
}

// Patterns returns the WHERE patterns in append order. The returned
// slice is a copy.
func (q *Query) Patterns() []rdf.Pattern {
	return append([]rdf.Pattern(nil), q.patterns...)
}

// Options returns a copy of the modifier record.
func (q *Query) Options() Options {
	return q.opts.clone()
}
