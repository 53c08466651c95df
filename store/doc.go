// Package store provides a SQLite-backed triple store that can match
// sparql queries locally.
//
// Triples are stored with each term in its N-Triples surface encoding,
// so term equality is plain text equality and rows round-trip through
// rdf.ParseTerm. A query is compiled to a single parameterized SQL
// statement: one triples-table alias per pattern, with shared variables
// unified by join equalities and concrete terms constrained by
// placeholders.
//
//	g, err := store.Open("graph.db")
//	...
//	rows, err := g.Select(ctx, sparql.Select("name").Where(pattern))
//
// Results come back in a deterministic order: the query's ORDER BY if it
// has one, otherwise insertion order of the matched rows.
package store
