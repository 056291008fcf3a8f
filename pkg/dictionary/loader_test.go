package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliserve/cliserve/pkg/cmdtree"
)

func TestLoadEmbedded(t *testing.T) {
	raw, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	// The embedded asset must normalize cleanly.
	root, err := cmdtree.Build(raw)
	require.NoError(t, err)
	assert.NotNil(t, root.Walk([]string{"show", "ip", "interface", "brief"}))
	assert.True(t, root.Walk([]string{"configure", "terminal"}).IsCommand())
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	content := `
"show widgets":
  description: "Display widgets"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	raw, err := Load(path)
	require.NoError(t, err)
	require.Len(t, raw, 1)

	record, ok := raw["show widgets"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Display widgets", record["description"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParseJSONStyle(t *testing.T) {
	// YAML is a superset of JSON, so JSON assets parse too.
	raw, err := Parse([]byte(`{"show version": {"description": "v"}}`))
	require.NoError(t, err)
	record, ok := raw["show version"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "v", record["description"])
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte(""))
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("{{not yaml"))
	require.Error(t, err)
}
