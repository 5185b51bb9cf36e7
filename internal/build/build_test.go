package build

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/appengine-ltd/starbuild/internal/skills"
)

func TestSlotArraysMatchDeclaredLengths(t *testing.T) {
	b := New()
	for _, env := range []Environment{Space, Ground} {
		for _, c := range Categories(env) {
			got := len(b.Slots(env, c))
			if want := SlotCount(env, c); got != want || want == 0 {
				t.Fatalf("%s/%s: slots=%d want=%d", env, c, got, want)
			}
		}
	}
	if b.Slots(Ground, ForeWeapons) != nil {
		t.Fatalf("ground should have no fore weapons")
	}
	if b.Slots("orbit", Traits) != nil {
		t.Fatalf("unknown environment should yield nil")
	}
	if len(b.Boffs(Space)) != SpaceBoffStations || len(b.Boffs(Ground)) != GroundBoffStations {
		t.Fatalf("unexpected boff grid sizes")
	}
}

func TestSlotsWriteThrough(t *testing.T) {
	b := New()
	b.Slots(Space, TacConsoles)[2] = Item("Vulnerability Locator")
	if b.Space.TacConsoles[2].Item != "Vulnerability Locator" {
		t.Fatalf("write through slice did not reach build: %+v", b.Space.TacConsoles)
	}
}

func TestCloneSharesNoModifiers(t *testing.T) {
	b := New()
	b.Space.ForeWeapons[0] = Equipment("Phaser Beam Array", "Mk XV", "[Acc]", "[CrtD]")
	b.Space.Boffs[1][2] = Equipment("Attack Pattern Beta", "", "x")
	c := b.Clone()
	c.Space.ForeWeapons[0].Modifiers[0] = "[Dmg]"
	c.Space.Boffs[1][2].Modifiers[0] = "y"
	if b.Space.ForeWeapons[0].Modifiers[0] != "[Acc]" {
		t.Fatalf("clone aliased slot modifiers")
	}
	if b.Space.Boffs[1][2].Modifiers[0] != "x" {
		t.Fatalf("clone aliased boff modifiers")
	}
}

func TestSlotJSONForms(t *testing.T) {
	raw, err := json.Marshal([]Slot{{}, Item("Tactical Retrofit"), Equipment("Phaser Beam Array", "Mk XII", "[Acc]")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[null,{"item":"Tactical Retrofit"},{"item":"Phaser Beam Array","mark":"Mk XII","modifiers":["[Acc]"]}]`
	if string(raw) != want {
		t.Fatalf("marshal=%s want=%s", raw, want)
	}

	var decoded []Slot
	if err := json.Unmarshal([]byte(`[null, "", "Bare Name", {"item":"Obj","mark":"Mk II"}]`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded[0].Empty() || !decoded[1].Empty() {
		t.Fatalf("expected empty slots, got %+v", decoded[:2])
	}
	if decoded[2].Item != "Bare Name" || decoded[3].Mark != "Mk II" {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
}

func TestCaptainSetFieldTypes(t *testing.T) {
	var c Captain
	if !c.SetField("name", "Kirk") || c.Name != "Kirk" {
		t.Fatalf("expected name set")
	}
	if c.SetField("elite", "yes") {
		t.Fatalf("elite must take a bool")
	}
	if !c.SetField("elite", true) || !c.Elite {
		t.Fatalf("expected elite set")
	}
	if c.SetField("rank", "Admiral") {
		t.Fatalf("unknown field accepted")
	}
	if c.SetField("career", 3) {
		t.Fatalf("non-string career accepted")
	}
}

func TestValidateReportsMissingIdentity(t *testing.T) {
	b := New()
	issues := Validate(&b, nil, nil)
	fields := map[string]bool{}
	for _, is := range issues {
		fields[is.Field] = true
	}
	for _, want := range []string{"captain.name", "captain.career", "captain.faction", "captain.species", "space.ship"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %+v", want, issues)
		}
	}
}

func TestValidateStructuralProblems(t *testing.T) {
	b := New()
	b.Captain = Captain{Name: "Tuvok", Career: "Tactical", Faction: "Federation", Species: "Vulcan"}
	b.Space.Ship = "Odyssey"
	b.Space.AftWeapons[1] = Slot{Mark: "Mk X"}
	b.Ground.KitModules[0] = Slot{Modifiers: []string{"[Pen]"}}
	b.Space.ForeWeapons[4] = Item("Phaser Beam Array")
	b.Space.DoffsVariant[2] = "Maintenance Engineer"

	issues := Validate(&b, nil, Limits{ForeWeapons: 4})
	joined := make([]string, 0, len(issues))
	for _, is := range issues {
		joined = append(joined, is.String())
	}
	text := strings.Join(joined, "\n")
	for _, want := range []string{
		"space.aft_weapons[1]: mark on an empty slot",
		"ground.kit_modules[0]: modifiers on an empty slot",
		"space.fore_weapons[4]: ship only has 4 fore_weapons slots",
		"space.doffs_variant[2]",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "captain.") || strings.Contains(text, "no ship") {
		t.Fatalf("identity should be complete:\n%s", text)
	}
}

func TestValidateChecksSkillUnlocks(t *testing.T) {
	b := New()
	b.Unlocks.Tac[0] = skills.Choice(1)
	engine := skills.NewEngine(skills.DefaultLayout())
	found := false
	for _, is := range Validate(&b, engine, nil) {
		if strings.Contains(is.Message, "Tactical row") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unlock drift to be reported")
	}
}

func TestSummaryAndFileName(t *testing.T) {
	b := New()
	if s := Summarize(&b); s.HasSpaceEquipment || s.HasGroundEquipment {
		t.Fatalf("empty build reports equipment: %+v", s)
	}
	if got := Summarize(&b).SuggestedFileName(); got != "build.json" {
		t.Fatalf("default file name=%q", got)
	}
	b.Ground.Boffs[0][0] = Item("Medical Tricorder Scan")
	b.Captain.Name = "Jadzia"
	b.Space.Ship = "Defiant/Valiant"
	s := Summarize(&b)
	if s.HasSpaceEquipment || !s.HasGroundEquipment {
		t.Fatalf("unexpected equipment flags: %+v", s)
	}
	if got := s.SuggestedFileName(); got != "Jadzia - Defiant_Valiant.json" {
		t.Fatalf("file name=%q", got)
	}
}
