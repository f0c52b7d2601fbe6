package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against a throwaway file store and in-memory publisher.
func run(t *testing.T, storeDir, stdin string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config=" + filepath.Join(storeDir, "missing.yaml"),
		"--store=file",
		"--store-dir=" + storeDir,
		"--publisher=memory",
		"--log-level=error",
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand_Stdin(t *testing.T) {
	out, err := run(t, t.TempDir(), `{"tokenName": "Foo", "tokenTicker": "FOO"}`, "render", "--sample=false", "--activate=false")
	require.NoError(t, err)
	assert.Contains(t, out, `dcterms:title "Foo" ;`)
	assert.True(t, strings.HasSuffix(out, ".\n"))
}

func TestRenderCommand_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tokenName: Foo
selectedOntologies: [skos]
shapes:
  - name: PersonShape
    constraints:
      - path: foaf:name
        minCount: 1
`), 0o644))

	out, err := run(t, dir, "", "render", path, "--sample=false", "--activate")
	require.NoError(t, err)
	assert.Contains(t, out, "@prefix skos: <http://www.w3.org/2004/02/skos/core#> .")
	assert.Contains(t, out, "    sh:minCount 1\n  ].")
}

func TestRenderCommand_Sample(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "render", "--sample", "--activate=false")
	require.NoError(t, err)
	assert.Equal(t, semtoken.New().Render(domain.NewDescriptor()), out)
}

func TestRenderCommand_Mermaid(t *testing.T) {
	t.Cleanup(func() { _ = renderCmd.Flags().Set("format", "turtle") })

	out, err := run(t, t.TempDir(), "", "render", "--sample", "--activate", "--format=mermaid")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `-- "foaf:maker" --> https___my_profile_example_com`)
	assert.Contains(t, out, "classDef highlighted")

	_, err = run(t, t.TempDir(), "", "render", "--sample", "--format=dot")
	assert.ErrorContains(t, err, "unknown format")
}

func TestDraftCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, `{"tokenName": "Café Token"}`, "draft", "save")
	require.NoError(t, err)
	assert.Contains(t, out, "Caf%C3%A9%20Token")

	out, err = run(t, dir, "", "draft", "list", "--json")
	require.NoError(t, err)
	var drafts []domain.DraftInfo
	require.NoError(t, json.Unmarshal([]byte(out), &drafts))
	require.Len(t, drafts, 1)
	assert.Equal(t, "Café Token", drafts[0].DisplayName)

	out, err = run(t, dir, "", "draft", "load", drafts[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, `"tokenTicker": "MST"`)

	_, err = run(t, dir, "", "draft", "delete", drafts[0].ID)
	require.NoError(t, err)

	_, err = run(t, dir, "", "draft", "load", drafts[0].ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestPublishCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), `{"tokenName": "Foo"}`, "publish", "--draft", "", "--json")
	require.NoError(t, err)

	var res semtoken.PublishResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, strings.HasPrefix(res.URI, "ipfs://"))
	assert.Contains(t, res.Turtle, `dcterms:title "Foo" ;`)
}

func TestVocabCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "vocab", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "foaf")
	assert.Contains(t, out, "xsd:decimal")

	out, err = run(t, t.TempDir(), "", "vocab", "foaf", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "@prefix foaf: <http://xmlns.com/foaf/0.1/> .")
	assert.Contains(t, out, "foaf:mbox\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "semtoken version "+semtoken.Version+"\n", out)
}

func TestInvalidStoreFlag(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"draft", "list", "--json=false", "--config=" + filepath.Join(dir, "missing.yaml"), "--store=s3"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestReadDescriptor(t *testing.T) {
	d, err := readDescriptor("-", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTokenName, d.Name)

	_, err = readDescriptor("", strings.NewReader(`nope`))
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)

	_, err = readDescriptor(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.Error(t, err)
}
