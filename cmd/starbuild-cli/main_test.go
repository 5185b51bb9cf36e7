package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/catalog"
	"github.com/appengine-ltd/starbuild/internal/skills"
	"github.com/appengine-ltd/starbuild/internal/store"
)

type cliFixture struct {
	dir      string
	settings string
	build    string
}

func newFixture(t *testing.T) cliFixture {
	t.Helper()
	dir := t.TempDir()
	f := cliFixture{
		dir:      dir,
		settings: filepath.Join(dir, "settings.yaml"),
		build:    filepath.Join(dir, "defiant.json"),
	}
	st := store.New(store.Options{})
	st.SetShip("Defiant", &store.ShipRecord{Name: "Defiant", Tier: "T6"})
	st.ToggleSpaceSkill(skills.Tactical, 0)
	if !st.SaveToFile(f.build) {
		t.Fatalf("seed build")
	}
	return f
}

func (f cliFixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--settings", f.settings, "--log-level", "error"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogImportAndSearch(t *testing.T) {
	f := newFixture(t)
	doc := filepath.Join(f.dir, "catalog.json")
	snap := catalog.NewSnapshot(
		[]catalog.Item{
			{Name: "Phaser Beam Array", Category: build.ShipWeapon, Rarity: "Epic"},
			{Name: "Quantum Torpedo", Category: build.ForeWeapons},
		},
		nil,
		[]catalog.Ship{{Name: "Defiant", Tier: "T6", Fore: 4, Aft: 3}},
	)
	if err := catalog.WriteJSON(doc, snap); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	out, err := f.run(t, "", "catalog", "import", "--json", doc)
	if err != nil || !strings.Contains(out, "Imported 2 items and 1 ships") {
		t.Fatalf("import: %v\n%s", err, out)
	}
	out, err = f.run(t, "", "catalog", "search", "phaser", "beam")
	if err != nil || !strings.Contains(out, "Phaser Beam Array") {
		t.Fatalf("search: %v\n%s", err, out)
	}
	out, err = f.run(t, "", "catalog", "search", "-c", "fore_weapons", "torpedo")
	if err != nil || !strings.Contains(out, "Quantum Torpedo") {
		t.Fatalf("category search: %v\n%s", err, out)
	}
	if _, err := f.run(t, "", "catalog", "search", "-c", "bridge", "x"); err == nil {
		t.Fatalf("unknown category accepted")
	}
	out, err = f.run(t, "", "catalog", "status")
	if err != nil || !strings.Contains(out, "2 items, 1 ships") {
		t.Fatalf("status: %v\n%s", err, out)
	}

	exported := filepath.Join(f.dir, "export.json")
	if _, err := f.run(t, "", "catalog", "export", exported); err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := catalog.LoadJSON(exported)
	if err != nil || back.Len() != 2 {
		t.Fatalf("exported catalog: %v", err)
	}
}

func TestCatalogImportCargo(t *testing.T) {
	f := newFixture(t)
	items := filepath.Join(f.dir, "items.json")
	ships := filepath.Join(f.dir, "ships.json")
	if err := os.WriteFile(items, []byte(`[{"name":"Photon Torpedo","type":"Ship Fore Weapon","rarity":"Common"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ships, []byte(`[{"name":"Defiant","tier":"6","fore":4,"aft":3}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := f.run(t, "", "catalog", "import", "--items", items, "--ships", ships)
	if err != nil || !strings.Contains(out, "Imported 1 items and 1 ships") {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if _, err := f.run(t, "", "catalog", "import"); err == nil {
		t.Fatalf("empty import accepted")
	}
}

func TestBuildCommands(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "", "summary", f.build)
	if err != nil || !strings.Contains(out, "Defiant") {
		t.Fatalf("summary: %v\n%s", err, out)
	}
	out, err = f.run(t, "", "skills", "--bars", f.build)
	if err != nil || !strings.Contains(out, "SPACE SKILLS (1 points)") || !strings.Contains(out, "Tactical") {
		t.Fatalf("skills: %v\n%s", err, out)
	}
	out, err = f.run(t, "", "validate", f.build)
	if err == nil || !strings.Contains(err.Error(), "issue(s)") || out == "" {
		t.Fatalf("validate of an unnamed captain passed: %v\n%s", err, out)
	}
	if _, err := f.run(t, "", "summary", filepath.Join(f.dir, "missing.json")); err == nil {
		t.Fatalf("missing build accepted")
	}

	card := filepath.Join(f.dir, "card.png")
	if _, err := f.run(t, "", "card", f.build, card); err != nil {
		t.Fatalf("card: %v", err)
	}
	if info, err := os.Stat(card); err != nil || info.Size() == 0 {
		t.Fatalf("card not written: %v", err)
	}
}

func TestConsoleEditsAndSaves(t *testing.T) {
	f := newFixture(t)
	fresh := filepath.Join(f.dir, "new.json")
	out, err := f.run(t, "captain name Jadzia\nsave\nquit\n", "console", fresh)
	if err != nil {
		t.Fatalf("console: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved") {
		t.Fatalf("no save reported:\n%s", out)
	}
	st := store.New(store.Options{})
	if !st.LoadFromFile(fresh) || st.Summary().CharacterName != "Jadzia" {
		t.Fatalf("saved build=%+v", st.Summary())
	}
}
