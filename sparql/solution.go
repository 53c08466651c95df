package sparql

import (
	"sort"
	"strings"

	"github.com/arvados/sparql-client/rdf"
)

// Solution is one row of a SELECT result: variable name to bound term.
// Unbound variables are absent from the map.
type Solution map[string]rdf.Term

// Bound reports whether the named variable has a binding.
func (s Solution) Bound(name string) bool {
	_, ok := s[name]
	return ok
}

// Get returns the term bound to the named variable, or nil.
func (s Solution) Get(name string) rdf.Term {
	return s[name]
}

// String renders the solution as "?a=<x> ?b=\"y\"" with variables in
// name order, for logs and test failure messages.
func (s Solution) String() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "?" + name + "=" + s[name].String()
	}
	return strings.Join(parts, " ")
}
