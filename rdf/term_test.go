package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRI_String(t *testing.T) {
	iri := IRI{Value: "http://example.org/thing"}
	assert.Equal(t, "<http://example.org/thing>", iri.String())
	assert.Equal(t, KindIRI, iri.Kind())
}

func TestBlankNode_String(t *testing.T) {
	b := BlankNode{ID: "b1"}
	assert.Equal(t, "_:b1", b.String())
	assert.Equal(t, KindBlankNode, b.Kind())
}

func TestNewBlankNode_FreshLabels(t *testing.T) {
	a := NewBlankNode()
	b := NewBlankNode()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotContains(t, a.ID, "-")
}

func TestVariable_String(t *testing.T) {
	v := NewVariable("name")
	assert.Equal(t, "?name", v.String())
	assert.Equal(t, KindVariable, v.Kind())
}

func TestNewVariable_StripsSigil(t *testing.T) {
	assert.Equal(t, NewVariable("x"), NewVariable("?x"))
}

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{
			name: "plain",
			lit:  NewLiteral("hello"),
			want: `"hello"`,
		},
		{
			name: "language tagged",
			lit:  NewLangLiteral("bonjour", "fr"),
			want: `"bonjour"@fr`,
		},
		{
			name: "datatyped",
			lit:  NewTypedLiteral("42", XSDInteger),
			want: `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		},
		{
			name: "escapes quotes and backslashes",
			lit:  NewLiteral(`say "hi" \ bye`),
			want: `"say \"hi\" \\ bye"`,
		},
		{
			name: "escapes control characters",
			lit:  NewLiteral("a\nb\tc"),
			want: `"a\nb\tc"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}

func TestNewLiteral_NormalizesNFC(t *testing.T) {
	// "é" as combining sequence (e + U+0301) vs precomposed U+00E9.
	decomposed := NewLiteral("café")
	precomposed := NewLiteral("café")

	assert.Equal(t, precomposed.Lexical, decomposed.Lexical)
	assert.Equal(t, precomposed.String(), decomposed.String())
}

func TestCoerceTerm(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Term
	}{
		{"term passthrough", IRI{Value: "http://example.org/"}, IRI{Value: "http://example.org/"}},
		{"string becomes variable", "name", NewVariable("name")},
		{"prefixed string becomes variable", "?name", NewVariable("name")},
		{"int becomes integer literal", 7, NewTypedLiteral("7", XSDInteger)},
		{"int64 becomes integer literal", int64(7), NewTypedLiteral("7", XSDInteger)},
		{"float becomes double literal", 2.5, NewTypedLiteral("2.5", XSDDouble)},
		{"bool becomes boolean literal", true, NewTypedLiteral("true", XSDBoolean)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceTerm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceTerm_Unsupported(t *testing.T) {
	_, err := CoerceTerm(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot coerce")
}
