// Package client executes sparql queries against a remote SPARQL
// protocol endpoint over HTTP.
//
// Queries are sent form-encoded and results are decoded from the W3C
// SPARQL 1.1 JSON results format:
//
//	c := client.New("https://dbpedia.org/sparql")
//	rows, err := c.Select(ctx, sparql.Select("name").Where(pattern).Limit(10))
//
// The client is safe for concurrent use. Logging is off by default; pass
// WithLogger to get per-request debug events.
package client
