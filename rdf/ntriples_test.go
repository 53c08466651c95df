package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTerm_RoundTrips(t *testing.T) {
	terms := []Term{
		IRI{Value: "http://example.org/thing"},
		BlankNode{ID: "b42"},
		NewVariable("name"),
		NewLiteral("plain"),
		NewLangLiteral("bonjour", "fr"),
		NewTypedLiteral("42", XSDInteger),
		NewLiteral(`quoted "text" with \ slash`),
		NewLiteral("line\nbreak"),
	}

	for _, term := range terms {
		t.Run(term.String(), func(t *testing.T) {
			parsed, err := ParseTerm(term.String())
			require.NoError(t, err)
			assert.Equal(t, term, parsed)
		})
	}
}

func TestParseTerm_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unterminated iri", "<http://example.org"},
		{"unterminated literal", `"abc`},
		{"bare word", "word"},
		{"empty blank label", "_:"},
		{"trailing garbage", "<http://example.org/a> extra"},
		{"bad escape", `"a\qb"`},
		{"unterminated datatype", `"1"^^<http://example`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTerm(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseTriple(t *testing.T) {
	line := `<http://example.org/a> <http://example.org/b> "chat"@fr .`

	triple, ok, err := ParseTriple(line)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, IRI{Value: "http://example.org/a"}, triple.S)
	assert.Equal(t, IRI{Value: "http://example.org/b"}, triple.P)
	assert.Equal(t, Literal{Lexical: "chat", Lang: "fr"}, triple.O)
	assert.True(t, triple.IsGround())
}

func TestParseTriple_SkipsBlankAndComments(t *testing.T) {
	for _, line := range []string{"", "   ", "# a comment"} {
		_, ok, err := ParseTriple(line)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestParseTriple_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing dot", `<http://example.org/a> <http://example.org/b> "c"`},
		{"too few terms", `<http://example.org/a> <http://example.org/b> .`},
		{"trailing content", `<http://example.org/a> <http://example.org/b> "c" . extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTriple(tt.line)
			assert.Error(t, err)
		})
	}
}
