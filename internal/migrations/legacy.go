// Package migrations upgrades credential files written by older releases.
package migrations

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// legacyVersion labels files written before the layout was versioned.
const legacyVersion = "0"

// LegacyCredentials is the unversioned layout: a top-level token key.
type LegacyCredentials struct {
	Token string `yaml:"token"`
}

// migrateFromLegacy accepts either a bare token or a LegacyCredentials
// mapping.
func migrateFromLegacy(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	entries := map[string]string{}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode {
		if token := strings.TrimSpace(root.Value); token != "" {
			entries["token"] = token
		}
		return entries, nil
	}

	var legacy LegacyCredentials
	if err := root.Decode(&legacy); err != nil {
		return nil, err
	}
	if legacy.Token != "" {
		entries["token"] = legacy.Token
	}
	return entries, nil
}
