package buildfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

func sampleBuild() build.Build {
	b := build.New()
	b.Space.Ship = "Odyssey Operations Cruiser"
	b.Space.ShipName = "USS Enterprise"
	b.Space.Tier = "T6"
	b.Space.ForeWeapons[0] = build.Equipment("Phaser Beam Array", "Mk XV", "[Acc]", "", "[CrtD]")
	b.Space.ForeWeapons[3] = build.Equipment("Dual Phaser Beam Bank", "Mk XII")
	b.Space.UniConsoles[2] = build.Item("Tachyon Inverter")
	b.Space.StarshipTraits[6] = build.Item("Emergency Weapon Cycle")
	b.Space.Boffs[5][3] = build.Item("Gravity Well III")
	b.Space.BoffSpecs[5] = "Science / Temporal"
	b.Space.DoffsSpec[1] = "Damage Control Engineer"
	b.Space.DoffsVariant[1] = "Chance to remove debuff"
	b.Ground.KitModules[5] = build.Equipment("Seeker Drone", "Mk XIV")
	b.Ground.BoffProfs[3] = "Tactical"
	b.Ground.GroundDesc = "away team notes"
	b.Captain = build.Captain{Name: "Data", Career: "Science", Faction: "Federation", Species: "Android", Elite: true}
	b.SpaceSkills.Sci[0] = true
	b.GroundSkills[3][1] = true
	b.Unlocks.Sci[4] = skills.Undecided
	b.Unlocks.Ground[0] = skills.Choice(1)
	b.SkillDesc.Space = "shield heavy"
	return b
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "build.json")
	want := sampleBuild()
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v want 0600", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", wantJSON, gotJSON)
	}
	for _, env := range []build.Environment{build.Space, build.Ground} {
		for _, c := range build.Categories(env) {
			w, g := want.Slots(env, c), got.Slots(env, c)
			for i := range w {
				if w[i].String() != g[i].String() {
					t.Fatalf("%s/%s[%d]: got %q want %q", env, c, i, g[i], w[i])
				}
			}
		}
	}
}

func TestLoadTruncatesLongArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.json")
	doc := `{
  "space": {
    "ship": "Defiant",
    "uni_consoles": ["A", "B", "C", "D", "E"],
    "eng_consoles": [null],
    "boffs": [[null, "Tactical Team I", null, null, "extra"], [], [], [], [], [], ["seventh station"]]
  },
  "ground_skills": [[true, true, false, false, false, false, true], [], [], [], [true]],
  "skill_unlocks": {"eng": [0, 1, null, null, -1, 3]}
}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Space.UniConsoles) != 3 || b.Space.UniConsoles[2].Item != "C" {
		t.Fatalf("unexpected uni consoles: %+v", b.Space.UniConsoles)
	}
	if b.Space.Boffs[0][1].Item != "Tactical Team I" {
		t.Fatalf("boff grid not merged: %+v", b.Space.Boffs[0])
	}
	if !b.GroundSkills.Active(0, 1) || b.GroundSkills.Total() != 2 {
		t.Fatalf("ground skills not merged: %+v", b.GroundSkills)
	}
	if b.Unlocks.Eng[4] != skills.Undecided {
		t.Fatalf("expected undecided ultimate, got %v", b.Unlocks.Eng[4])
	}
	if b.Space.Ship != "Defiant" {
		t.Fatalf("ship=%q", b.Space.Ship)
	}
}

func TestLoadIgnoresUnknownKeysAndBadShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift.json")
	doc := `{
  "format": 9,
  "space": {"ship": "Vor'cha", "warp_core_color": "blue", "devices": "not a list", "tier": 6},
  "captain": {"name": "Martok", "elite": "yes", "house": "Martok"}
}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Space.Ship != "Vor'cha" || b.Captain.Name != "Martok" {
		t.Fatalf("known keys not merged: %+v %+v", b.Space.Ship, b.Captain)
	}
	if b.Space.Tier != "" || b.Captain.Elite {
		t.Fatalf("mismatched scalars should keep defaults: tier=%q elite=%v", b.Space.Tier, b.Captain.Elite)
	}
	for _, s := range b.Space.Devices {
		if !s.Empty() {
			t.Fatalf("devices should stay empty: %+v", b.Space.Devices)
		}
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{\"space\": "), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "parse build") {
		t.Fatalf("expected parse error, got %v", err)
	}
	list := filepath.Join(dir, "list.json")
	if err := os.WriteFile(list, []byte("[1,2,3]"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(list); err == nil {
		t.Fatalf("expected error for non-object document")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.json")
	for i := 0; i < 3; i++ {
		if err := Save(path, sampleBuild()); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "build.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files: %v", names)
	}
}

func TestMergeKeepsDefaultWhenStoredShorter(t *testing.T) {
	def := map[string]any{"space": map[string]any{"traits": []any{nil, nil, nil}}}
	stored := map[string]any{"space": map[string]any{"traits": []any{"A"}}, "other": 1}
	out := Merge(def, stored)
	traits := out["space"].(map[string]any)["traits"].([]any)
	if len(traits) != 3 || traits[0] != "A" || traits[1] != nil {
		t.Fatalf("unexpected merge: %+v", traits)
	}
	if _, ok := out["other"]; ok {
		t.Fatalf("unknown key leaked into merge")
	}
}

func TestSkillTreeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Skill Tree.json")
	src := sampleBuild()
	if err := SaveSkills(path, src); err != nil {
		t.Fatalf("save skills: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc) != len(SkillSections) {
		t.Fatalf("skill file keys=%d want %d", len(doc), len(SkillSections))
	}
	if _, ok := doc["space"]; ok {
		t.Fatalf("skill file carries equipment")
	}

	other := build.New()
	other.Captain.Name = "Worf"
	other.Space.Ship = "Defiant"
	got, err := LoadSkills(path, other)
	if err != nil {
		t.Fatalf("load skills: %v", err)
	}
	if got.Captain.Name != "Worf" || got.Space.Ship != "Defiant" {
		t.Fatalf("skill load touched the build: %+v", got.Captain)
	}
	if got.SpaceSkills != src.SpaceSkills || got.GroundSkills != src.GroundSkills {
		t.Fatalf("skill trees differ after round trip")
	}
	if got.Unlocks.Sci[4] != skills.Undecided || got.Unlocks.Ground[0] != skills.Choice(1) {
		t.Fatalf("unlocks=%+v", got.Unlocks)
	}
	if got.SkillDesc.Space != "shield heavy" {
		t.Fatalf("skill desc=%q", got.SkillDesc.Space)
	}
}

func TestLoadSkillsAcceptsBuildFilesAndRejectsOthers(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "build.json")
	if err := Save(full, sampleBuild()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadSkills(full, build.New())
	if err != nil || !got.SpaceSkills.Sci[0] {
		t.Fatalf("load skills from build file: %v", err)
	}
	if got.Space.Ship != "" {
		t.Fatalf("equipment leaked from build file: %q", got.Space.Ship)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"captain":{"name":"Q"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	keep := build.New()
	keep.SpaceSkills.Tac[0] = true
	got, err = LoadSkills(empty, keep)
	if err == nil {
		t.Fatalf("file without skills accepted")
	}
	if !got.SpaceSkills.Tac[0] {
		t.Fatalf("failed load changed the tree")
	}
}
