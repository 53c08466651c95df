package rdf

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseTerm parses a single term in N-Triples/SPARQL surface syntax:
// <iri>, _:label, ?name, or a quoted literal with optional @lang or
// ^^<datatype> suffix. It is the inverse of Term.String.
func ParseTerm(s string) (Term, error) {
	term, rest, err := readTerm(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("trailing input after term: %q", rest)
	}
	return term, nil
}

// ParseTriple parses one N-Triples statement line into a ground Pattern.
// Blank lines and #-comment lines yield a zero Pattern and ok=false.
func ParseTriple(line string) (Pattern, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Pattern{}, false, nil
	}

	var terms []Term
	rest := trimmed
	for i := 0; i < 3; i++ {
		var (
			term Term
			err  error
		)
		term, rest, err = readTerm(rest)
		if err != nil {
			return Pattern{}, false, fmt.Errorf("component %d: %w", i+1, err)
		}
		terms = append(terms, term)
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	}
	if rest != "." {
		return Pattern{}, false, fmt.Errorf("statement must end with %q, got %q", ".", rest)
	}
	return Pattern{S: terms[0], P: terms[1], O: terms[2]}, true, nil
}

// readTerm consumes one term from the front of s and returns the
// remainder.
func readTerm(s string) (Term, string, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return nil, "", fmt.Errorf("empty input, expected a term")
	}

	switch s[0] {
	case '<':
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return nil, "", fmt.Errorf("unterminated IRI: %q", s)
		}
		return IRI{Value: s[1:end]}, s[end+1:], nil

	case '_':
		if !strings.HasPrefix(s, "_:") {
			return nil, "", fmt.Errorf("malformed blank node: %q", s)
		}
		rest := s[2:]
		end := len(rest)
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			end = i
		}
		if end == 0 {
			return nil, "", fmt.Errorf("blank node with empty label: %q", s)
		}
		return BlankNode{ID: rest[:end]}, rest[end:], nil

	case '?':
		rest := s[1:]
		end := len(rest)
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			end = i
		}
		if end == 0 {
			return nil, "", fmt.Errorf("variable with empty name: %q", s)
		}
		return Variable{Name: rest[:end]}, rest[end:], nil

	case '"':
		return readLiteral(s)

	default:
		return nil, "", fmt.Errorf("unrecognized term syntax: %q", s)
	}
}

// readLiteral consumes a quoted literal with optional @lang or
// ^^<datatype> suffix.
func readLiteral(s string) (Term, string, error) {
	var (
		b       strings.Builder
		escaped bool
		closed  int // index just past the closing quote
	)
	for i := 1; i < len(s); i++ {
		c := s[i]
		if escaped {
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteByte(c)
			default:
				return nil, "", fmt.Errorf("unsupported escape \\%c in literal", c)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			closed = i + 1
		default:
			b.WriteByte(c)
		}
		if closed != 0 {
			break
		}
	}
	if closed == 0 {
		return nil, "", fmt.Errorf("unterminated literal: %q", s)
	}

	lit := Literal{Lexical: b.String()}
	rest := s[closed:]

	switch {
	case strings.HasPrefix(rest, "@"):
		rest = rest[1:]
		end := len(rest)
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			end = i
		}
		if end == 0 {
			return nil, "", fmt.Errorf("literal with empty language tag")
		}
		lit.Lang = rest[:end]
		rest = rest[end:]

	case strings.HasPrefix(rest, "^^<"):
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, "", fmt.Errorf("unterminated datatype IRI")
		}
		lit.Datatype = rest[3:end]
		rest = rest[end+1:]
	}

	return lit, rest, nil
}
