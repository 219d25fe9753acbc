// Package config manages the persisted CLI configuration: the API key and
// service URL stored in ~/.qualidoo/config.toml with owner-only permissions.
// Environment variables override the file, explicit values override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"
)

const (
	// API key to use instead of the persisted one
	EnvKeyAPIKey = "QUALIDOO_API_KEY"
	// Base URL of the Qualidoo API
	EnvKeyAPIURL = "QUALIDOO_API_URL"

	DefaultAPIURL = "https://qualidoo.aidooit.com"

	configFileName = "config.toml"
	settingAPIKey  = "api_key"
	settingAPIURL  = "api_url"
)

var apiKeyPattern = regexp.MustCompile(`^qdoo_[a-zA-Z0-9]{32,}$`)

// Store reads and writes the config file inside a fixed directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is created until the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns the store at ~/.qualidoo.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".qualidoo")), nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, configFileName)
}

// load reads the config file into a fresh viper instance. A missing file is
// not an error; it reads as an empty config.
func (s *Store) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.Path())
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", s.Path(), err)
	}
	return v, nil
}

func (s *Store) save(v *viper.Viper) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", s.dir, err)
	}
	if err := v.WriteConfigAs(s.Path()); err != nil {
		return fmt.Errorf("failed to write config %s: %w", s.Path(), err)
	}
	// The file holds a credential; keep it owner-only.
	return os.Chmod(s.Path(), 0o600)
}

// APIKey resolves the key to use: the environment variable wins over the
// persisted file. Empty means not logged in.
func (s *Store) APIKey() string {
	if key := os.Getenv(EnvKeyAPIKey); key != "" {
		return key
	}
	v, err := s.load()
	if err != nil {
		return ""
	}
	return v.GetString(settingAPIKey)
}

// APIURL resolves the service base URL: environment, then file, then the
// production default.
func (s *Store) APIURL() string {
	if u := os.Getenv(EnvKeyAPIURL); u != "" {
		return u
	}
	if v, err := s.load(); err == nil {
		if u := v.GetString(settingAPIURL); u != "" {
			return u
		}
	}
	return DefaultAPIURL
}

// StoredAPIKey returns the key from the file only, ignoring the
// environment. Used when displaying what is persisted.
func (s *Store) StoredAPIKey() (string, error) {
	v, err := s.load()
	if err != nil {
		return "", err
	}
	return v.GetString(settingAPIKey), nil
}

// SetAPIKey persists the key, preserving any other settings in the file.
func (s *Store) SetAPIKey(key string) error {
	v, err := s.load()
	if err != nil {
		return err
	}
	v.Set(settingAPIKey, key)
	return s.save(v)
}

// RemoveAPIKey deletes the persisted key. Returns true if one was stored.
func (s *Store) RemoveAPIKey() (bool, error) {
	v, err := s.load()
	if err != nil {
		return false, err
	}
	if v.GetString(settingAPIKey) == "" {
		return false, nil
	}

	// Viper has no unset; rewrite the file without the key.
	replacement := viper.New()
	replacement.SetConfigType("toml")
	for _, setting := range v.AllKeys() {
		if setting == settingAPIKey {
			continue
		}
		replacement.Set(setting, v.Get(setting))
	}
	if err := s.save(replacement); err != nil {
		return false, err
	}
	return true, nil
}

// ValidKeyFormat reports whether the key looks like a Qualidoo API key
// (qdoo_ prefix followed by at least 32 alphanumerics).
func ValidKeyFormat(key string) bool {
	return apiKeyPattern.MatchString(key)
}
