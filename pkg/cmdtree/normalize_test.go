package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatFixture() map[string]any {
	return map[string]any{
		"show ip interface": map[string]any{
			"description": "D1",
		},
		"show ip isis status": map[string]any{
			"description": "D2",
			"syntax":      "show ip isis status",
			"params":      []any{"level"},
			"examples":    []any{"show ip isis status"},
		},
		"show version": "Display system version",
	}
}

func TestBuildFlat(t *testing.T) {
	root, err := Build(flatFixture())
	require.NoError(t, err)

	node := root.Walk([]string{"show", "ip", "interface"})
	require.NotNil(t, node)
	require.True(t, node.IsCommand())
	assert.Equal(t, "D1", node.Meta.Description)

	node = root.Walk([]string{"show", "ip", "isis", "status"})
	require.NotNil(t, node)
	require.True(t, node.IsCommand())
	assert.Equal(t, "D2", node.Meta.Description)
	assert.Equal(t, []string{"level"}, node.Meta.Params)

	// Bare string values become description-only metadata.
	node = root.Walk([]string{"show", "version"})
	require.True(t, node.IsCommand())
	assert.Equal(t, "Display system version", node.Meta.Description)
}

func TestBuildSharedPrefixesMerge(t *testing.T) {
	root, err := Build(flatFixture())
	require.NoError(t, err)

	// "show" and "show ip" are shared prefix nodes with no metadata of
	// their own, each holding the children of all commands under them.
	show := root.Walk([]string{"show"})
	require.NotNil(t, show)
	assert.False(t, show.IsCommand())
	assert.Equal(t, []string{"ip", "version"}, show.Tokens())

	ip := show.Child("ip")
	require.NotNil(t, ip)
	assert.Equal(t, []string{"interface", "isis"}, ip.Tokens())
}

func TestBuildLowercasesTokens(t *testing.T) {
	root, err := Build(map[string]any{
		"SHOW Running-Config": map[string]any{"description": "running"},
	})
	require.NoError(t, err)

	node := root.Walk([]string{"show", "running-config"})
	require.NotNil(t, node)
	assert.True(t, node.IsCommand())
}

func TestBuildSkipsMalformedEntries(t *testing.T) {
	root, err := Build(map[string]any{
		"":             map[string]any{"description": "empty key"},
		"   ":          map[string]any{"description": "blank key"},
		"show version": map[string]any{"description": "ok"},
	})
	require.NoError(t, err)

	// The bad entries vanish, the good one survives.
	assert.Equal(t, []string{"show"}, root.Tokens())
	assert.True(t, root.Walk([]string{"show", "version"}).IsCommand())
}

func TestBuildRejectsNonMapping(t *testing.T) {
	_, err := Build([]any{"show version"})
	require.Error(t, err)
	var normErr *NormalizationError
	require.ErrorAs(t, err, &normErr)
}

func TestBuildNested(t *testing.T) {
	raw := map[string]any{
		"show": map[string]any{
			"ip interface": map[string]any{
				OptionsKey: []any{"brief", "detail"},
			},
			"version": map[string]any{
				"description": "Display system version",
			},
		},
	}
	root, err := Build(raw)
	require.NoError(t, err)

	// Multi-word key contributes one level per token.
	iface := root.Walk([]string{"show", "ip", "interface"})
	require.NotNil(t, iface)
	assert.Equal(t, []string{"brief", "detail"}, iface.Tokens())

	// Options are zero-metadata leaves.
	brief := iface.Child("brief")
	require.NotNil(t, brief)
	assert.False(t, brief.IsCommand())

	// A detail record nested under a key attaches as metadata.
	version := root.Walk([]string{"show", "version"})
	require.True(t, version.IsCommand())
	assert.Equal(t, "Display system version", version.Meta.Description)
}

func TestBuildNestedPrefixSiblingsKeepMetadata(t *testing.T) {
	// Sibling keys where one is a prefix of the other must merge into
	// shared nodes without dropping metadata attached earlier.
	raw := map[string]any{
		"show": map[string]any{
			"running-config":     map[string]any{"description": "full config"},
			"running-config all": map[string]any{"description": "with defaults"},
		},
	}
	root, err := Build(raw)
	require.NoError(t, err)

	rc := root.Walk([]string{"show", "running-config"})
	require.True(t, rc.IsCommand())
	assert.Equal(t, "full config", rc.Meta.Description)

	all := rc.Child("all")
	require.True(t, all.IsCommand())
	assert.Equal(t, "with defaults", all.Meta.Description)
}

func TestBuildIdempotent(t *testing.T) {
	first, err := Build(flatFixture())
	require.NoError(t, err)
	second, err := Build(flatFixture())
	require.NoError(t, err)

	assertSameShape(t, first, second)
}

// assertSameShape checks key sets and metadata presence at every depth.
func assertSameShape(t *testing.T, a, b *Node) {
	t.Helper()
	assert.Equal(t, a.IsCommand(), b.IsCommand())
	require.Equal(t, a.Tokens(), b.Tokens())
	for _, tok := range a.Tokens() {
		assertSameShape(t, a.Child(tok), b.Child(tok))
	}
}

func TestCommandsReachMetadata(t *testing.T) {
	// Every inserted command string must be reachable token-by-token
	// and end on a node with metadata.
	raw := flatFixture()
	root, err := Build(raw)
	require.NoError(t, err)

	seen := 0
	root.WalkCommands(func(path []string, detail *Detail) {
		require.NotNil(t, detail)
		node := root.Walk(path)
		require.NotNil(t, node)
		assert.True(t, node.IsCommand())
		seen++
	})
	assert.Equal(t, len(raw), seen)
}

func TestWalkDeadEnd(t *testing.T) {
	root, err := Build(flatFixture())
	require.NoError(t, err)

	assert.Nil(t, root.Walk([]string{"show", "bogus"}))
	assert.Nil(t, root.Walk([]string{"nonexistent"}))
}
