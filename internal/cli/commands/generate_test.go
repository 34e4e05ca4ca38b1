package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
prefix: /api
resources:
  - type: posts
    exposed: true
    attributes:
      - name: id
        type: uuid
        generated: true
        writable: false
      - name: title
        type: string
    routes:
      - path: /posts
        method: get
        kind: index
      - path: /posts/:id
        method: get
        kind: get
`

func resetGenerateFlags() {
	generateManifest = ""
	generateOutput = ""
	generatePrefix = ""
}

func TestGenerateCommand(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "resources.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0644))
	outputPath := filepath.Join(dir, "schema.json")

	cmd := NewGenerateCommand()
	cmd.SetArgs([]string{"--manifest", manifestPath, "--output", outputPath})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "http://json-schema.org/draft-06/schema#", doc["$schema"])

	definitions := doc["definitions"].(map[string]any)
	assert.Contains(t, definitions, "posts")
	assert.Contains(t, definitions, "errors")

	links := doc["links"].([]any)
	require.Len(t, links, 2)
	first := links[0].(map[string]any)
	assert.Equal(t, "/api/posts{?filter,sort,page,include}", first["href"])
}

func TestGenerateCommandIsByteStable(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "resources.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0644))

	firstPath := filepath.Join(dir, "first.json")
	secondPath := filepath.Join(dir, "second.json")

	for _, out := range []string{firstPath, secondPath} {
		cmd := NewGenerateCommand()
		cmd.SetArgs([]string{"--manifest", manifestPath, "--output", out})
		require.NoError(t, cmd.Execute())
	}

	first, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	second, err := os.ReadFile(secondPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCommandInvalidManifest(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "resources.yml")
	broken := `
resources:
  - type: posts
    relationships:
      - name: author
        cardinality: one
        destination: nobody
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(broken), 0644))

	cmd := NewGenerateCommand()
	cmd.SetArgs([]string{"--manifest", manifestPath, "--output", filepath.Join(dir, "schema.json")})
	err := cmd.Execute()
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "schema.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidateCommand(t *testing.T) {
	resetGenerateFlags()
	validateManifest = ""
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "resources.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0644))

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"--manifest", manifestPath})
	require.NoError(t, cmd.Execute())
}
