package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_Text(t *testing.T) {
	path := writeDef(t, "query.yaml", `
form: ask
patterns:
  - ["?s", "?p", "?o"]
`)

	out, _, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "ASK WHERE { ?s ?p ?o . }\n", out)
}

func TestRender_JSON(t *testing.T) {
	path := writeDef(t, "query.yaml", `
form: select
variables: [name]
patterns:
  - ["?x", "<http://xmlns.com/foaf/0.1/name>", "?name"]
`)

	out, _, err := execute(t, "render", path, "--format", "json")
	require.NoError(t, err)

	var envelope struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, "ok", envelope.Status)
	assert.Equal(t, "SELECT ?name WHERE { ?x <http://xmlns.com/foaf/0.1/name> ?name . }", envelope.Data["query"])
}

func TestRender_VerboseDumpsToStderr(t *testing.T) {
	path := writeDef(t, "query.yaml", `
form: ask
patterns:
  - ["?s", "?p", "?o"]
`)

	_, errOut, err := execute(t, "render", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, errOut, "*sparql.Query")
	assert.Contains(t, errOut, "ASK WHERE { ?s ?p ?o . }")
}

func TestRender_BadDefinitionExitCode(t *testing.T) {
	path := writeDef(t, "query.yaml", `
form: ask
patterns:
  - ["?s"]
`)

	_, _, err := execute(t, "render", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "render", "whatever.yaml", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadAndQuery_LocalStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "triples.db")

	ntPath := filepath.Join(dir, "people.nt")
	require.NoError(t, os.WriteFile(ntPath, []byte(
		`<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .`+"\n"+
			`<http://example.org/bob> <http://xmlns.com/foaf/0.1/name> "Bob" .`+"\n",
	), 0o644))

	out, _, err := execute(t, "load", ntPath, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "loaded 2 triples\n", out)

	defPath := writeDef(t, "names.yaml", `
form: select
variables: [name]
patterns:
  - ["?x", "<http://xmlns.com/foaf/0.1/name>", "?name"]
order: [name]
`)

	out, _, err = execute(t, "query", defPath, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "?name=\"Alice\"\n?name=\"Bob\"\n", out)

	askPath := writeDef(t, "ask.yaml", `
form: ask
patterns:
  - ["?x", "<http://xmlns.com/foaf/0.1/name>", "\"Alice\""]
`)

	out, _, err = execute(t, "query", askPath, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestQuery_RequiresExactlyOneBackend(t *testing.T) {
	defPath := writeDef(t, "query.yaml", `
form: ask
patterns:
  - ["?s", "?p", "?o"]
`)

	_, _, err := execute(t, "query", defPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "query", defPath, "--db", "x.db", "--endpoint", "http://example.org/sparql")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
