// Package config loads and persists user settings. Batch operations never
// read configuration themselves; they receive an immutable Settings
// snapshot taken when the batch starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPostfixes seed the postfix set with the standard BA2 name suffixes
// eligible for extraction.
var DefaultPostfixes = []string{"main.ba2", "materials.ba2", "misc.ba2", "scripts.ba2"}

// Settings is a read-only snapshot of user configuration.
type Settings struct {
	// Postfixes are lowercase substrings identifying archives eligible for
	// processing.
	Postfixes []string
	// Ignored holds ignore rules, either literal paths/substrings or
	// {regex}-delimited patterns.
	Ignored []string
	// IgnoreBadFiles records unreadable archives as new ignore rules.
	IgnoreBadFiles bool
	// AutoBackup moves extracted archives to a backup directory instead of
	// deleting them.
	AutoBackup bool
	// BackupPath overrides the backup directory. Relative paths resolve
	// against the archive's own directory.
	BackupPath string
	// ExtractionPath overrides the extraction destination. Relative paths
	// resolve against the archive's own directory.
	ExtractionPath string
	// BSArchPath is the path to the external BSArch executable.
	BSArchPath string
	// SavedDir is the last scanned mod folder.
	SavedDir string
	// SavedThreshold is the last threshold the user applied, in bytes.
	SavedThreshold int64
}

// Store loads and persists settings through a config file.
type Store struct {
	v    *viper.Viper
	path string
}

// NewStore opens the config file at path, falling back to
// <user config dir>/unpackrr/unpackrr.yaml when path is empty. A missing
// file is not an error; defaults apply until the first Save.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		path = filepath.Join(dir, "unpackrr", "unpackrr.yaml")
	}

	v := viper.New()
	v.SetDefault("extraction.postfixes", DefaultPostfixes)
	v.SetDefault("extraction.ignored", []string{})
	v.SetDefault("extraction.ignore_bad_files", true)
	v.SetDefault("extraction.auto_backup", true)
	v.SetDefault("saved.directory", "")
	v.SetDefault("saved.threshold", int64(0))
	v.SetDefault("advanced.extraction_path", "")
	v.SetDefault("advanced.backup_path", "")
	v.SetDefault("advanced.bsarch_path", "")

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	return &Store{v: v, path: path}, nil
}

// Path returns the config file location backing this store.
func (s *Store) Path() string { return s.path }

// Settings returns the current snapshot.
func (s *Store) Settings() Settings {
	return Settings{
		Postfixes:      validPostfixes(s.v.GetStringSlice("extraction.postfixes")),
		Ignored:        s.v.GetStringSlice("extraction.ignored"),
		IgnoreBadFiles: s.v.GetBool("extraction.ignore_bad_files"),
		AutoBackup:     s.v.GetBool("extraction.auto_backup"),
		BackupPath:     s.v.GetString("advanced.backup_path"),
		ExtractionPath: s.v.GetString("advanced.extraction_path"),
		BSArchPath:     s.v.GetString("advanced.bsarch_path"),
		SavedDir:       s.v.GetString("saved.directory"),
		SavedThreshold: s.v.GetInt64("saved.threshold"),
	}
}

// AddIgnored appends ignore rules, skipping entries already present.
func (s *Store) AddIgnored(rules ...string) {
	current := s.v.GetStringSlice("extraction.ignored")
	for _, r := range rules {
		if !slices.Contains(current, r) {
			current = append(current, r)
		}
	}
	s.v.Set("extraction.ignored", current)
}

// SetSavedDir records the last scanned mod folder.
func (s *Store) SetSavedDir(dir string) {
	s.v.Set("saved.directory", dir)
}

// SetSavedThreshold records the last applied threshold in bytes.
func (s *Store) SetSavedThreshold(bytes int64) {
	s.v.Set("saved.threshold", bytes)
}

// Save writes the config file, creating its directory if needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", s.path, err)
	}
	return nil
}

// validPostfixes drops entries that do not name .ba2 archives.
func validPostfixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if strings.HasSuffix(strings.ToLower(p), ".ba2") {
			out = append(out, p)
		}
	}
	return out
}
