package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// TermKind identifies the concrete type of a Term.
type TermKind uint8

const (
	// KindIRI identifies an IRI term.
	KindIRI TermKind = iota
	// KindBlankNode identifies a blank node term.
	KindBlankNode
	// KindLiteral identifies a literal term.
	KindLiteral
	// KindVariable identifies a query variable.
	KindVariable
)

// Common XSD datatype IRIs used by literal coercion.
const (
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDouble  = "http://www.w3.org/2001/XMLSchema#double"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// Term is a value that can occupy a pattern component.
//
// String returns the SPARQL surface syntax of the term, not a display
// form: IRIs are angle-bracketed, literals are quoted and escaped.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI is an absolute IRI term.
type IRI struct {
	Value string
}

// Kind returns KindIRI.
func (i IRI) Kind() TermKind { return KindIRI }

// String returns the IRI wrapped in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode is a labeled blank node term.
type BlankNode struct {
	ID string
}

// NewBlankNode returns a blank node with a fresh, globally unique label.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "g" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// Kind returns KindBlankNode.
func (b BlankNode) Kind() TermKind { return KindBlankNode }

// String returns the label prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is a plain, language-tagged or datatyped literal term.
//
// Lexical forms are stored NFC-normalized so that equal literals compare
// equal regardless of the Unicode composition of their inputs.
type Literal struct {
	Lexical  string
	Lang     string
	Datatype string // datatype IRI, empty for plain and language-tagged literals
}

// NewLiteral returns a plain literal.
func NewLiteral(lexical string) Literal {
	return Literal{Lexical: norm.NFC.String(lexical)}
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: norm.NFC.String(lexical), Lang: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype IRI.
func NewTypedLiteral(lexical, datatype string) Literal {
	return Literal{Lexical: norm.NFC.String(lexical), Datatype: datatype}
}

// Kind returns KindLiteral.
func (l Literal) Kind() TermKind { return KindLiteral }

// String returns the quoted SPARQL form, with language tag or datatype
// suffix when present.
func (l Literal) String() string {
	quoted := quoteLiteral(l.Lexical)
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype != "" {
		return quoted + "^^<" + l.Datatype + ">"
	}
	return quoted
}

// quoteLiteral escapes and double-quotes a lexical form per the SPARQL
// string escape rules.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Variable is a named query placeholder.
type Variable struct {
	Name string
}

// NewVariable returns a variable with the given name. The leading "?" is
// stripped if present, so NewVariable("?x") and NewVariable("x") are the
// same variable.
func NewVariable(name string) Variable {
	return Variable{Name: strings.TrimPrefix(name, "?")}
}

// Kind returns KindVariable.
func (v Variable) Kind() TermKind { return KindVariable }

// String returns the name prefixed with "?".
func (v Variable) String() string { return "?" + v.Name }

// CoerceTerm converts a loose Go value into a Term.
//
// Term values pass through unchanged. Strings become Variables (callers
// holding IRIs or string literals construct them explicitly). Integers,
// floats and booleans become the corresponding XSD-typed literals.
func CoerceTerm(v any) (Term, error) {
	switch val := v.(type) {
	case Term:
		return val, nil
	case string:
		return NewVariable(val), nil
	case int:
		return NewTypedLiteral(fmt.Sprintf("%d", val), XSDInteger), nil
	case int64:
		return NewTypedLiteral(fmt.Sprintf("%d", val), XSDInteger), nil
	case float64:
		return NewTypedLiteral(fmt.Sprintf("%g", val), XSDDouble), nil
	case bool:
		return NewTypedLiteral(fmt.Sprintf("%t", val), XSDBoolean), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T into an RDF term", v)
	}
}
