// Package simconfig mirrors the teacher's central/node config split: an
// optional YAML run profile that supplies defaults, with CLI flags always
// winning over file-sourced values.
package simconfig

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
)

// Profile is the optional --config file. Every field is a default; a
// caller applies flag overrides on top with StringOr.
type Profile struct {
	RelationshipsPath string `yaml:"relationships"`
	AnnouncementsPath string `yaml:"announcements"`
	ROVAsnsPath       string `yaml:"rov_asns"`
	OutputPath        string `yaml:"output"`
	LogLevel          string `yaml:"log_level"`
	LogFile           string `yaml:"log_file"`
}

// Load reads and parses a YAML profile from path.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks that any log level set is one slog understands. Path
// fields are validated by the collaborators that open them, not here,
// since an empty path is legal at this layer (it just means "unset,
// fall back to the flag or the built-in default").
func (p *Profile) Validate() error {
	if p.LogLevel == "" {
		return nil
	}
	var lvl slog.Level
	return lvl.UnmarshalText([]byte(p.LogLevel))
}

// Level returns the profile's configured slog level, defaulting to Info.
func (p *Profile) Level() slog.Level {
	if p == nil || p.LogLevel == "" {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// StringOr returns override if it is non-empty, else fallback.
func StringOr(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
