package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvados/sparql-client/rdf"
	"github.com/arvados/sparql-client/sparql"
)

const (
	foafName = "http://xmlns.com/foaf/0.1/name"
	foafMbox = "http://xmlns.com/foaf/0.1/mbox"
)

func TestCompile_SinglePattern(t *testing.T) {
	q := sparql.Select("name").
		Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name"))

	sqlText, args, vars, err := Compile(q)
	require.NoError(t, err)

	assert.Equal(t, `SELECT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY t0.id ASC`, sqlText)
	assert.Equal(t, []any{"<" + foafName + ">"}, args)
	assert.Equal(t, []string{"name"}, vars)
}

func TestCompile_SharedVariableBecomesJoin(t *testing.T) {
	q := sparql.Select().
		Where(
			rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name"),
			rdf.MustPattern("x", rdf.IRI{Value: foafMbox}, "mbox"),
		)

	sqlText, args, vars, err := Compile(q)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT t0.s AS "x", t0.o AS "name", t1.o AS "mbox" FROM triples t0, triples t1 `+
			`WHERE t0.p = ? AND t1.s = t0.s AND t1.p = ? ORDER BY t0.id ASC, t1.id ASC`,
		sqlText)
	assert.Equal(t, []any{"<" + foafName + ">", "<" + foafMbox + ">"}, args)
	assert.Equal(t, []string{"x", "name", "mbox"}, vars)
}

func TestCompile_ValuesNeverInterpolated(t *testing.T) {
	dangerous := `"'; DROP TABLE triples; --"`
	q := sparql.Select("s").
		Where(rdf.MustPattern("s", rdf.IRI{Value: foafName}, rdf.NewLiteral("'; DROP TABLE triples; --")))

	sqlText, args, _, err := Compile(q)
	require.NoError(t, err)

	assert.NotContains(t, sqlText, "DROP TABLE")
	assert.Contains(t, args, dangerous)
}

func TestCompile_Modifiers(t *testing.T) {
	base := func() *sparql.Query {
		return sparql.Select("name").
			Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name"))
	}

	tests := []struct {
		name string
		q    *sparql.Query
		want string
	}{
		{
			name: "distinct orders on result ordinals",
			q:    base().Distinct(),
			want: `SELECT DISTINCT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY 1 ASC`,
		},
		{
			name: "explicit order uses projection alias",
			q:    base().Order("name"),
			want: `SELECT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY "name" COLLATE BINARY ASC`,
		},
		{
			name: "explicit order on unprojected variable uses base column",
			q: sparql.Select("name").
				Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name")).
				Order("x"),
			want: `SELECT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY t0.s COLLATE BINARY ASC`,
		},
		{
			name: "limit and offset",
			q:    base().Limit(5).Offset(10),
			want: `SELECT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY t0.id ASC LIMIT 5 OFFSET 10`,
		},
		{
			name: "offset without limit",
			q:    base().Offset(10),
			want: `SELECT t0.o AS "name" FROM triples t0 WHERE t0.p = ? ORDER BY t0.id ASC LIMIT -1 OFFSET 10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlText, _, _, err := Compile(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sqlText)
		})
	}
}

func TestCompile_ProjectedButUnboundVariableIsNull(t *testing.T) {
	q := sparql.Select("name", "ghost").
		Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name"))

	sqlText, _, vars, err := Compile(q)
	require.NoError(t, err)

	assert.Contains(t, sqlText, `NULL AS "ghost"`)
	assert.Equal(t, []string{"name", "ghost"}, vars)
}

func TestCompile_DistinctOrderRequiresProjection(t *testing.T) {
	q := sparql.Select("name").
		Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name")).
		Distinct().
		Order("x")

	_, _, _, err := Compile(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be projected")
}

func TestCompile_OrderByUnboundVariable(t *testing.T) {
	q := sparql.Select("name").
		Where(rdf.MustPattern("x", rdf.IRI{Value: foafName}, "name")).
		Order("ghost")

	_, _, _, err := Compile(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "?ghost")
}

func TestCompile_NoPatterns(t *testing.T) {
	_, _, _, err := Compile(sparql.Select("name"))
	assert.ErrorIs(t, err, ErrNoPatterns)
}

func TestCompile_GroundPatternSelectsConstant(t *testing.T) {
	q := sparql.Select().
		Where(rdf.Pattern{
			S: rdf.IRI{Value: "http://example.org/alice"},
			P: rdf.IRI{Value: foafName},
			O: rdf.NewLiteral("Alice"),
		})

	sqlText, args, vars, err := Compile(q)
	require.NoError(t, err)

	assert.Equal(t, `SELECT 1 FROM triples t0 WHERE t0.s = ? AND t0.p = ? AND t0.o = ? ORDER BY t0.id ASC`, sqlText)
	assert.Len(t, args, 3)
	assert.Empty(t, vars)
}
