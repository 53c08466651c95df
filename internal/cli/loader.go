package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/arvados/sparql-client/rdf"
	"github.com/arvados/sparql-client/sparql"
)

// QueryDef is the on-disk query definition format, loadable from YAML or
// CUE. Pattern rows are three-element [subject, predicate, object]
// lists.
type QueryDef struct {
	Form      string   `yaml:"form" json:"form"`
	Variables []string `yaml:"variables" json:"variables"`
	Patterns  [][]any  `yaml:"patterns" json:"patterns"`
	Distinct  bool     `yaml:"distinct" json:"distinct"`
	Reduced   bool     `yaml:"reduced" json:"reduced"`
	Order     []string `yaml:"order" json:"order"`
	Offset    *int     `yaml:"offset" json:"offset"`
	Limit     *int     `yaml:"limit" json:"limit"`
}

// LoadQuery reads a query definition file (.yaml, .yml or .cue) and
// builds the query it describes.
func LoadQuery(path string) (*sparql.Query, error) {
	def, err := LoadQueryDef(path)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

// LoadQueryDef reads a definition file without building the query.
func LoadQueryDef(path string) (*QueryDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLDef(data)
	case ".cue":
		return parseCUEDef(path, data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}

func parseYAMLDef(data []byte) (*QueryDef, error) {
	var def QueryDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse YAML definition: %w", err)
	}
	return &def, nil
}

func parseCUEDef(path string, data []byte) (*QueryDef, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile CUE definition: %w", err)
	}

	// Definitions may nest under a top-level "query" label or sit at
	// the file root.
	if nested := value.LookupPath(cue.ParsePath("query")); nested.Exists() {
		value = nested
	}

	var def QueryDef
	if err := value.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode CUE definition: %w", err)
	}
	return &def, nil
}

// Build constructs the query a definition describes.
func (d *QueryDef) Build() (*sparql.Query, error) {
	form := d.Form
	if form == "" {
		form = string(sparql.FormSelect)
	}

	q := sparql.New(form)
	if q.Form() == sparql.FormSelect {
		q.Select(d.Variables...)
	}

	for i, row := range d.Patterns {
		pattern, err := buildPattern(row)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i+1, err)
		}
		q.Where(pattern)
	}

	if d.Distinct {
		q.Distinct()
	}
	if d.Reduced {
		q.Reduced()
	}
	if len(d.Order) > 0 {
		q.Order(d.Order...)
	}
	q.Slice(d.Offset, d.Limit)

	return q, nil
}

// buildPattern maps a definition row to a pattern. String components
// carrying term syntax (<iri>, "literal", _:label, ?var) are parsed as
// such; bare strings become variables; other scalars become typed
// literals.
func buildPattern(row []any) (rdf.Pattern, error) {
	components := make([]any, len(row))
	for i, raw := range row {
		s, ok := raw.(string)
		if !ok {
			components[i] = raw
			continue
		}
		term, err := parseComponent(s)
		if err != nil {
			return rdf.Pattern{}, err
		}
		components[i] = term
	}
	return rdf.PatternFrom(components)
}

func parseComponent(s string) (rdf.Term, error) {
	if s == "" {
		return nil, fmt.Errorf("empty pattern component")
	}
	switch s[0] {
	case '<', '"', '_', '?':
		term, err := rdf.ParseTerm(s)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", s, err)
		}
		return term, nil
	default:
		return rdf.NewVariable(s), nil
	}
}
