package plugin_test

import (
	"testing"

	"github.com/blinklabs-io/agora/database/plugin"
	_ "github.com/blinklabs-io/agora/database/plugin/blob/badger"
	_ "github.com/blinklabs-io/agora/database/plugin/metadata/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultPluginsRegistered verifies that the storage plugins register
// themselves on import and are resolvable by the names the config defaults
// refer to.
func TestDefaultPluginsRegistered(t *testing.T) {
	blobPlugins := plugin.GetPlugins(plugin.PluginTypeBlob)
	require.NotEmpty(t, blobPlugins)
	found := false
	for _, p := range blobPlugins {
		if p.Name == "badger" {
			found = true
		}
	}
	assert.True(t, found, "badger blob plugin not registered")

	metadataPlugins := plugin.GetPlugins(plugin.PluginTypeMetadata)
	require.NotEmpty(t, metadataPlugins)
	found = false
	for _, p := range metadataPlugins {
		if p.Name == "sqlite" {
			found = true
		}
	}
	assert.True(t, found, "sqlite metadata plugin not registered")
}

func TestStartPluginNotFound(t *testing.T) {
	_, err := plugin.StartPlugin(
		plugin.PluginTypeBlob,
		"nonexistent",
		plugin.Args{},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
