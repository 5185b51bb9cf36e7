package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, "settings.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Autosave || s.AutosaveDebounce != DefaultDebounce || s.UIScale != 1 || s.LogLevel != "info" {
		t.Fatalf("defaults=%+v", s)
	}
	if s.AutosaveFile != filepath.Join(dir, "autosave.json") || s.CatalogCache != filepath.Join(dir, "catalog.db") {
		t.Fatalf("default paths=%+v", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.yaml")
	want := Defaults(filepath.Dir(path))
	want.Autosave = false
	want.AutosaveDebounce = 750 * time.Millisecond
	want.CatalogFile = "/data/catalog.json"
	want.LogLevel = "debug"
	want.UIScale = 1.5
	want.LastBuild = "/builds/escort.json"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v", info.Mode().Perm())
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "autosave_debounce: 750ms") {
		t.Fatalf("debounce not written as a duration:\n%s", raw)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip\n got %+v\nwant %+v", got, want)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("log_level: WARN\nautosave_debounce: 5s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LogLevel != "warn" || s.AutosaveDebounce != 5*time.Second || !s.Autosave || s.UIScale != 1 {
		t.Fatalf("settings=%+v", s)
	}
}

func TestNormalizeClamps(t *testing.T) {
	dir := t.TempDir()
	s := Settings{AutosaveDebounce: -time.Second, UIScale: 9, LogLevel: "loud", AutosaveFile: "  "}
	s.Normalize(dir)
	if s.AutosaveDebounce != 0 || s.UIScale != 3 || s.LogLevel != "info" || s.AutosaveFile != filepath.Join(dir, "autosave.json") {
		t.Fatalf("normalized=%+v", s)
	}
	s = Settings{AutosaveDebounce: time.Hour, UIScale: 0.1}
	s.Normalize(dir)
	if s.AutosaveDebounce != time.Minute || s.UIScale != 0.5 {
		t.Fatalf("normalized=%+v", s)
	}
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("autosave: [nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse settings") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	got, err := Path()
	if err != nil || got != filepath.Join(dir, "settings.yaml") {
		t.Fatalf("Path=%q err=%v", got, err)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Settings{LogLevel: "warn"}.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "k=v") {
		t.Fatalf("log output=%q", out)
	}
}
