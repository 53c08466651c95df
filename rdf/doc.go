// Package rdf provides the term and triple-pattern model used by the
// query builder.
//
// Terms are immutable value types implementing the Term interface:
//
//   - IRI: an absolute IRI, rendered as <iri>
//   - BlankNode: a labeled blank node, rendered as _:label
//   - Literal: a plain, language-tagged or datatyped literal
//   - Variable: a named placeholder, rendered as ?name
//
// A Pattern is a (subject, predicate, object) triple template where any
// component may be a Variable. Pattern.String produces the SPARQL
// triple-pattern surface syntax, trailing dot included, which is what the
// sparql package splices into WHERE blocks.
//
// NewPattern and PatternFrom coerce loose Go values into terms: Term
// values pass through, strings become Variables, and other scalars become
// typed literals. Callers holding concrete IRIs or literals construct
// them explicitly.
package rdf
