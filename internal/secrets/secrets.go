// Package secrets resolves API keys from a TOML secrets file or the process
// environment, in that order.
package secrets

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Store holds provider API keys loaded from a secrets file. The zero value is
// an empty store; lookups against it fall through to the environment.
type Store struct {
	sections map[string]section
}

type section struct {
	APIKey string `toml:"api_key"`
}

// Open loads the secrets file at path. A missing or unreadable file is not an
// error: it yields an empty store, so the environment remains the only source.
func Open(path string) *Store {
	if path == "" {
		return &Store{}
	}
	if _, err := os.Stat(path); err != nil {
		return &Store{}
	}

	var sections map[string]section
	if _, err := toml.DecodeFile(path, &sections); err != nil {
		return &Store{}
	}
	return &Store{sections: sections}
}

// Lookup returns the API key for provider, preferring the store section over
// the envVar environment variable. The second return reports whether a
// non-empty value was found in either source.
func (s *Store) Lookup(provider, envVar string) (string, bool) {
	if s != nil {
		if sec, ok := s.sections[provider]; ok && sec.APIKey != "" {
			return sec.APIKey, true
		}
	}
	if v := os.Getenv(envVar); v != "" {
		return v, true
	}
	return "", false
}
