package client

import (
	"fmt"

	"github.com/arvados/sparql-client/rdf"
	"github.com/arvados/sparql-client/sparql"
)

// Results is a W3C SPARQL 1.1 JSON results document. SELECT responses
// populate Head and Results; ASK responses populate Boolean.
type Results struct {
	Head    Head      `json:"head"`
	Results *Bindings `json:"results,omitempty"`
	Boolean *bool     `json:"boolean,omitempty"`
}

// Head lists the variables a SELECT response binds.
type Head struct {
	Vars []string `json:"vars"`
}

// Bindings wraps the result rows.
type Bindings struct {
	Bindings []map[string]Value `json:"bindings"`
}

// Value is one bound RDF term in the results document.
type Value struct {
	Type     string `json:"type"` // "uri", "literal", "typed-literal", "bnode"
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Term converts the wire value into an rdf term.
func (v Value) Term() (rdf.Term, error) {
	switch v.Type {
	case "uri":
		return rdf.IRI{Value: v.Value}, nil
	case "bnode":
		return rdf.BlankNode{ID: v.Value}, nil
	case "literal", "typed-literal":
		switch {
		case v.Lang != "":
			return rdf.NewLangLiteral(v.Value, v.Lang), nil
		case v.Datatype != "":
			return rdf.NewTypedLiteral(v.Value, v.Datatype), nil
		default:
			return rdf.NewLiteral(v.Value), nil
		}
	default:
		return nil, fmt.Errorf("unknown term type %q", v.Type)
	}
}

// Solutions converts a SELECT results document into solution rows.
func (r *Results) Solutions() ([]sparql.Solution, error) {
	if r.Results == nil {
		return nil, nil
	}
	solutions := make([]sparql.Solution, 0, len(r.Results.Bindings))
	for i, row := range r.Results.Bindings {
		solution := make(sparql.Solution, len(row))
		for name, value := range row {
			term, err := value.Term()
			if err != nil {
				return nil, fmt.Errorf("row %d, variable ?%s: %w", i, name, err)
			}
			solution[name] = term
		}
		solutions = append(solutions, solution)
	}
	return solutions, nil
}
