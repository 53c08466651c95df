// Package sparql builds and serializes SPARQL ASK and SELECT queries.
//
// A Query is a mutable builder: factories return an instance and every
// mutator configures it in place and returns the same instance, so calls
// chain. String renders the current state as the exact token sequence a
// SPARQL endpoint expects.
//
//	q := sparql.Select("name").
//		Where(rdf.MustPattern("x", rdf.IRI{Value: "http://xmlns.com/foaf/0.1/name"}, "name")).
//		Order("name").
//		Limit(10)
//
//	fmt.Println(q) // SELECT ?name WHERE { ?x <http://xmlns.com/foaf/0.1/name> ?name . } ORDER BY ?name LIMIT 10
//
// The emitted clause order — form, DISTINCT/REDUCED, projection, WHERE
// block, ORDER BY, OFFSET, LIMIT — is the one legal SPARQL ordering and
// is fixed.
//
// Queries are not safe for concurrent mutation; each instance assumes a
// single owner. Rendering never mutates state, and rendering the same
// state twice yields identical text.
//
// Execution lives elsewhere: the store package matches queries against a
// local SQLite-backed graph, the client package runs them against an HTTP
// endpoint.
package sparql
