// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type PluginType int

const (
	PluginTypeBlob PluginType = iota
	PluginTypeMetadata
)

// PluginTypeName returns the human-readable name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeBlob:
		return "blob"
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// Args carries the runtime parameters handed to a plugin constructor
type Args struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	DataDir      string
}

type PluginEntry struct {
	NewFunc     func(Args) Plugin
	Name        string
	Description string
	Type        PluginType
}

var (
	pluginEntries []PluginEntry
	pluginMutex   sync.RWMutex
)

// Register adds a plugin entry to the registry. It's meant to be called from
// a plugin package's init()
func Register(entry PluginEntry) {
	pluginMutex.Lock()
	defer pluginMutex.Unlock()
	pluginEntries = append(pluginEntries, entry)
}

// NewPlugin creates a plugin instance by type and name, or nil if no such
// plugin is registered
func NewPlugin(
	pluginType PluginType,
	pluginName string,
	args Args,
) Plugin {
	pluginMutex.RLock()
	defer pluginMutex.RUnlock()
	for _, entry := range pluginEntries {
		if entry.Type == pluginType && entry.Name == pluginName {
			return entry.NewFunc(args)
		}
	}
	return nil
}

// GetPlugins returns the registered plugin entries for the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	pluginMutex.RLock()
	defer pluginMutex.RUnlock()
	ret := []PluginEntry{}
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}
