package rdf

import (
	"fmt"
	"strings"
)

// PatternError reports input that could not be shaped into a triple
// pattern, either because a component would not coerce or because a flat
// argument list did not have subject/predicate/object arity.
type PatternError struct {
	Message string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return "pattern: " + e.Message
}

// Pattern is a (subject, predicate, object) triple template. Any
// component may be a Variable; a pattern with no variables is a ground
// triple.
type Pattern struct {
	S Term
	P Term
	O Term
}

// NewPattern builds a pattern from three loosely-typed components,
// coercing each via CoerceTerm.
func NewPattern(s, p, o any) (Pattern, error) {
	sub, err := CoerceTerm(s)
	if err != nil {
		return Pattern{}, &PatternError{Message: "subject: " + err.Error()}
	}
	pred, err := CoerceTerm(p)
	if err != nil {
		return Pattern{}, &PatternError{Message: "predicate: " + err.Error()}
	}
	obj, err := CoerceTerm(o)
	if err != nil {
		return Pattern{}, &PatternError{Message: "object: " + err.Error()}
	}
	return Pattern{S: sub, P: pred, O: obj}, nil
}

// PatternFrom builds a pattern from a flat component sequence. The
// sequence must have exactly three elements.
func PatternFrom(parts []any) (Pattern, error) {
	if len(parts) != 3 {
		return Pattern{}, &PatternError{
			Message: fmt.Sprintf("expected [subject, predicate, object], got %d components", len(parts)),
		}
	}
	return NewPattern(parts[0], parts[1], parts[2])
}

// MustPattern is NewPattern for statically known inputs; it panics on
// coercion failure.
func MustPattern(s, p, o any) Pattern {
	pat, err := NewPattern(s, p, o)
	if err != nil {
		panic(err)
	}
	return pat
}

// IsGround reports whether the pattern contains no variables.
func (p Pattern) IsGround() bool {
	for _, t := range p.Terms() {
		if t == nil || t.Kind() == KindVariable {
			return false
		}
	}
	return true
}

// Terms returns the three components in subject, predicate, object order.
func (p Pattern) Terms() [3]Term {
	return [3]Term{p.S, p.P, p.O}
}

// Variables returns the distinct variable names in the pattern, in
// component order.
func (p Pattern) Variables() []string {
	var names []string
	seen := map[string]bool{}
	for _, t := range p.Terms() {
		v, ok := t.(Variable)
		if !ok || seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		names = append(names, v.Name)
	}
	return names
}

// String returns the SPARQL triple-pattern syntax, trailing dot
// included: "?s ?p ?o .".
func (p Pattern) String() string {
	return strings.Join([]string{p.S.String(), p.P.String(), p.O.String(), "."}, " ")
}
