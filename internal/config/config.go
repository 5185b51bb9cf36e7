// Package config holds the planner's settings file and the directory the
// desktop and terminal editors keep their state in.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName   = "starbuild"
	settingsFile = "settings.yaml"

	// HomeEnv overrides the settings directory.
	HomeEnv = "STARBUILD_HOME"

	DefaultDebounce = 2 * time.Second
	maxDebounce     = time.Minute
)

type Settings struct {
	Autosave         bool          `yaml:"autosave"`
	AutosaveFile     string        `yaml:"autosave_file"`
	AutosaveDebounce time.Duration `yaml:"autosave_debounce"`
	CatalogFile      string        `yaml:"catalog_file,omitempty"`
	CatalogCache     string        `yaml:"catalog_cache"`
	CatalogWiki      string        `yaml:"catalog_wiki,omitempty"`
	LogLevel         string        `yaml:"log_level"`
	UIScale          float64       `yaml:"ui_scale"`
	LastBuild        string        `yaml:"last_build,omitempty"`
}

// Dir is the per-user directory settings, the autosave file and the
// catalog cache live in.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.New("config directory not found")
	}
	return filepath.Join(base, appDirName), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// Defaults are the settings of a fresh install rooted at dir.
func Defaults(dir string) Settings {
	return Settings{
		Autosave:         true,
		AutosaveFile:     filepath.Join(dir, "autosave.json"),
		AutosaveDebounce: DefaultDebounce,
		CatalogCache:     filepath.Join(dir, "catalog.db"),
		LogLevel:         "info",
		UIScale:          1,
	}
}

// Load reads settings from path. A missing file yields the defaults for
// the file's directory; keys absent from the file keep their defaults.
func Load(path string) (Settings, error) {
	dir := filepath.Dir(path)
	s := Defaults(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	s.Normalize(dir)
	return s, nil
}

func Save(path string, s Settings) error {
	dir := filepath.Dir(path)
	s.Normalize(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	cleanup = false
	return nil
}

// Normalize clamps out-of-range values and fills blank paths with the
// defaults under dir.
func (s *Settings) Normalize(dir string) {
	def := Defaults(dir)
	s.AutosaveFile = strings.TrimSpace(s.AutosaveFile)
	if s.AutosaveFile == "" {
		s.AutosaveFile = def.AutosaveFile
	}
	s.CatalogCache = strings.TrimSpace(s.CatalogCache)
	if s.CatalogCache == "" {
		s.CatalogCache = def.CatalogCache
	}
	s.CatalogFile = strings.TrimSpace(s.CatalogFile)
	s.CatalogWiki = strings.TrimSpace(s.CatalogWiki)
	s.LastBuild = strings.TrimSpace(s.LastBuild)

	switch {
	case s.AutosaveDebounce < 0:
		s.AutosaveDebounce = 0
	case s.AutosaveDebounce > maxDebounce:
		s.AutosaveDebounce = maxDebounce
	}
	switch {
	case s.UIScale == 0:
		s.UIScale = 1
	case s.UIScale < 0.5:
		s.UIScale = 0.5
	case s.UIScale > 3:
		s.UIScale = 3
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if _, ok := levels[s.LogLevel]; !ok {
		s.LogLevel = def.LogLevel
	}
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func (s Settings) Level() slog.Level {
	if l, ok := levels[s.LogLevel]; ok {
		return l
	}
	return slog.LevelInfo
}

// Logger builds the text logger entry points hand to the store and the
// catalog loader.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.Level()}))
}
