// Package store owns the build being edited. Every operation is total:
// bad environments, categories and indexes come back as false instead of
// panicking, and a rejected call leaves the build exactly as it was.
package store

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/buildfile"
	"github.com/appengine-ltd/starbuild/internal/skills"
)

// NoShip is the picker placeholder that clears the ship like "" does.
const NoShip = "<Pick Ship>"

const DefaultTier = "T6"

type Options struct {
	Autosave     bool
	AutosavePath string
	// Debounce coalesces autosaves that land within the window. Zero
	// writes synchronously on every accepted mutation.
	Debounce time.Duration
	Layout   skills.Layout
	Logger   *slog.Logger
	Now      func() time.Time
}

// ShipRecord is the part of a catalog ship the build copies.
type ShipRecord struct {
	Name        string
	Description string
	Tier        string
}

type Store struct {
	build  build.Build
	engine *skills.Engine
	log    *slog.Logger
	now    func() time.Time

	lastModified time.Time
	revision     uint64
	savedRev     uint64

	autosave autosaver
}

func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	layout := opts.Layout
	if layout.MaxSpacePoints == 0 {
		layout = skills.DefaultLayout()
	}
	if err := layout.Validate(); err != nil {
		logger.Warn("invalid skill layout, using default", "err", err)
		layout = skills.DefaultLayout()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Store{
		build:  build.New(),
		engine: skills.NewEngine(layout),
		log:    logger,
		now:    now,
	}
	s.lastModified = now()
	s.autosave = autosaver{
		enabled:  opts.Autosave,
		path:     strings.TrimSpace(opts.AutosavePath),
		debounce: opts.Debounce,
		log:      logger,
	}
	return s
}

func (s *Store) Engine() *skills.Engine { return s.engine }

// Build returns a deep copy that callers may keep or modify freely.
func (s *Store) Build() build.Build { return s.build.Clone() }

func (s *Store) LastModified() time.Time { return s.lastModified }

func (s *Store) markModified() {
	s.lastModified = s.now()
	s.revision++
	s.autosave.schedule(&s.build)
}

func (s *Store) SetEquipment(env build.Environment, c build.Category, index int, slot build.Slot) bool {
	slots := s.build.Slots(env, c)
	if index < 0 || index >= len(slots) {
		return false
	}
	slots[index] = slot.Clone()
	s.markModified()
	return true
}

func (s *Store) Equipment(env build.Environment, c build.Category, index int) (build.Slot, bool) {
	slots := s.build.Slots(env, c)
	if index < 0 || index >= len(slots) {
		return build.Slot{}, false
	}
	return slots[index].Clone(), true
}

func (s *Store) SetTrait(env build.Environment, c build.Category, index int, slot build.Slot) bool {
	if !build.IsTraitCategory(c) {
		return false
	}
	return s.SetEquipment(env, c, index, slot)
}

func (s *Store) Trait(env build.Environment, c build.Category, index int) (build.Slot, bool) {
	if !build.IsTraitCategory(c) {
		return build.Slot{}, false
	}
	return s.Equipment(env, c, index)
}

func (s *Store) SetBoffAbility(env build.Environment, station, rank int, slot build.Slot) bool {
	grid := s.build.Boffs(env)
	if station < 0 || station >= len(grid) || rank < 0 || rank >= build.BoffRanks {
		return false
	}
	grid[station][rank] = slot.Clone()
	s.markModified()
	return true
}

func (s *Store) BoffAbility(env build.Environment, station, rank int) (build.Slot, bool) {
	grid := s.build.Boffs(env)
	if station < 0 || station >= len(grid) || rank < 0 || rank >= build.BoffRanks {
		return build.Slot{}, false
	}
	return grid[station][rank].Clone(), true
}

// SetBoffSpec labels a station with its profession or specialization.
func (s *Store) SetBoffSpec(env build.Environment, station int, value string) bool {
	specs := s.build.BoffSpecs(env)
	if station < 0 || station >= len(specs) {
		return false
	}
	specs[station] = strings.TrimSpace(value)
	s.markModified()
	return true
}

// SetBoffProfession sets a ground station's profession.
func (s *Store) SetBoffProfession(station int, value string) bool {
	if station < 0 || station >= build.GroundBoffStations {
		return false
	}
	s.build.Ground.BoffProfs[station] = strings.TrimSpace(value)
	s.markModified()
	return true
}

// SetDoff writes a duty officer field. A new specialization invalidates
// whatever variant was picked for the old one.
func (s *Store) SetDoff(env build.Environment, index int, field build.DoffField, value string) bool {
	values := s.build.Doffs(env, field)
	if index < 0 || index >= len(values) {
		return false
	}
	value = strings.TrimSpace(value)
	if field == build.DoffSpec && values[index] != value {
		s.build.Doffs(env, build.DoffVariant)[index] = ""
	}
	values[index] = value
	s.markModified()
	return true
}

func (s *Store) Doff(env build.Environment, index int, field build.DoffField) (string, bool) {
	values := s.build.Doffs(env, field)
	if index < 0 || index >= len(values) {
		return "", false
	}
	return values[index], true
}

func (s *Store) SetCaptainField(field string, value any) bool {
	if !s.build.Captain.SetField(field, value) {
		return false
	}
	s.markModified()
	return true
}

func (s *Store) CaptainField(field string) (any, bool) {
	return s.build.Captain.Field(field)
}

// SetShip selects a hull. "" and NoShip blank every ship field together.
func (s *Store) SetShip(name string, record *ShipRecord) bool {
	name = strings.TrimSpace(name)
	sp := &s.build.Space
	if name == "" || name == NoShip {
		sp.Ship, sp.ShipName, sp.ShipDesc, sp.Tier = "", "", "", ""
		s.markModified()
		return true
	}
	sp.Ship = name
	sp.ShipName, sp.ShipDesc, sp.Tier = name, "", DefaultTier
	if record != nil {
		if n := strings.TrimSpace(record.Name); n != "" {
			sp.ShipName = n
		}
		sp.ShipDesc = record.Description
		if t := strings.TrimSpace(record.Tier); t != "" {
			sp.Tier = t
		}
	}
	s.markModified()
	return true
}

type TextField string

const (
	ShipNameField    TextField = "ship_name"
	ShipDescField    TextField = "ship_desc"
	GroundDescField  TextField = "ground_desc"
	SpaceSkillsDesc  TextField = "skill_desc.space"
	GroundSkillsDesc TextField = "skill_desc.ground"
)

func (s *Store) SetDescription(field TextField, text string) bool {
	switch field {
	case ShipNameField:
		s.build.Space.ShipName = text
	case ShipDescField:
		s.build.Space.ShipDesc = text
	case GroundDescField:
		s.build.Ground.GroundDesc = text
	case SpaceSkillsDesc:
		s.build.SkillDesc.Space = text
	case GroundSkillsDesc:
		s.build.SkillDesc.Ground = text
	default:
		return false
	}
	s.markModified()
	return true
}

type ClearScope string

const (
	ClearFull         ClearScope = "full"
	ClearSpace        ClearScope = "space"
	ClearGround       ClearScope = "ground"
	ClearCaptain      ClearScope = "captain"
	ClearSpaceSkills  ClearScope = "space_skills"
	ClearGroundSkills ClearScope = "ground_skills"
)

func ClearScopes() []ClearScope {
	return []ClearScope{ClearFull, ClearSpace, ClearGround, ClearCaptain, ClearSpaceSkills, ClearGroundSkills}
}

// Clear resets one subtree to its default. Clearing a skill tree also
// relocks its unlock rows and blanks its description.
func (s *Store) Clear(scope ClearScope) bool {
	empty := build.New()
	switch scope {
	case ClearFull:
		s.build = empty
	case ClearSpace:
		s.build.Space = empty.Space
	case ClearGround:
		s.build.Ground = empty.Ground
	case ClearCaptain:
		s.build.Captain = empty.Captain
	case ClearSpaceSkills:
		s.build.SpaceSkills = empty.SpaceSkills
		s.build.Unlocks.ClearSpace()
		s.build.SkillDesc.Space = ""
	case ClearGroundSkills:
		s.build.GroundSkills = empty.GroundSkills
		s.build.Unlocks.ClearGround()
		s.build.SkillDesc.Ground = ""
	default:
		return false
	}
	s.markModified()
	return true
}

func (s *Store) ToggleSpaceSkill(c skills.Career, id int) (skills.Transition, bool) {
	tr, ok := s.engine.ToggleSpace(&s.build.SpaceSkills, &s.build.Unlocks, c, id)
	if ok {
		s.markModified()
	}
	return tr, ok
}

func (s *Store) ToggleGroundSkill(group, id int) (skills.Transition, bool) {
	tr, ok := s.engine.ToggleGround(&s.build.GroundSkills, &s.build.Unlocks, group, id)
	if ok {
		s.markModified()
	}
	return tr, ok
}

func (s *Store) ToggleUnlock(bar skills.Bar, index int) bool {
	if !s.engine.ToggleUnlock(&s.build.SpaceSkills, &s.build.Unlocks, bar, index) {
		return false
	}
	s.markModified()
	return true
}

// LoadFromFile replaces the build with the merged file contents. On any
// failure the current build is kept.
func (s *Store) LoadFromFile(path string) bool {
	loaded, err := buildfile.Load(path)
	if err != nil {
		s.log.Warn("load build failed", "path", path, "err", err)
		return false
	}
	skills.Reconcile(&loaded.SpaceSkills, &loaded.GroundSkills, &loaded.Unlocks)
	s.build = loaded
	s.markModified()
	s.savedRev = s.revision
	s.log.Info("build loaded", "path", path)
	return true
}

// LoadSkillsFromFile replaces only the skill trees, unlocks and skill
// descriptions with those stored at path.
func (s *Store) LoadSkillsFromFile(path string) bool {
	loaded, err := buildfile.LoadSkills(path, s.build.Clone())
	if err != nil {
		s.log.Warn("load skill tree failed", "path", path, "err", err)
		return false
	}
	skills.Reconcile(&loaded.SpaceSkills, &loaded.GroundSkills, &loaded.Unlocks)
	s.build = loaded
	s.markModified()
	s.log.Info("skill tree loaded", "path", path)
	return true
}

// SaveSkillsToFile writes the skill part of the build on its own. It does
// not count as saving the build.
func (s *Store) SaveSkillsToFile(path string) bool {
	if err := buildfile.SaveSkills(path, s.build); err != nil {
		s.log.Warn("save skill tree failed", "path", path, "err", err)
		return false
	}
	s.log.Info("skill tree saved", "path", path)
	return true
}

func (s *Store) SaveToFile(path string) bool {
	if err := buildfile.Save(path, s.build); err != nil {
		s.log.Warn("save build failed", "path", path, "err", err)
		return false
	}
	s.savedRev = s.revision
	s.log.Info("build saved", "path", path)
	return true
}

func (s *Store) Summary() build.Summary {
	sum := build.Summarize(&s.build)
	sum.LastModified = s.lastModified
	return sum
}

// Validate runs the structural checks. limits caps space categories to the
// selected ship's slot counts and may be nil.
func (s *Store) Validate(limits build.Limits) []build.Issue {
	return build.Validate(&s.build, s.engine, limits)
}

// IsModified reports changes after since, or after the last explicit save
// or load when since is zero.
func (s *Store) IsModified(since time.Time) bool {
	if since.IsZero() {
		return s.revision != s.savedRev
	}
	return s.lastModified.After(since)
}

func (s *Store) SetAutosave(enabled bool) {
	s.autosave.mu.Lock()
	s.autosave.enabled = enabled
	s.autosave.mu.Unlock()
}

func (s *Store) SetAutosavePath(path string) {
	s.autosave.mu.Lock()
	s.autosave.path = strings.TrimSpace(path)
	s.autosave.mu.Unlock()
}

// Flush writes a pending debounced autosave immediately.
func (s *Store) Flush() error { return s.autosave.flush() }

// AutosaveStats reports completed and failed autosave writes.
func (s *Store) AutosaveStats() (writes, failures int) {
	s.autosave.mu.Lock()
	defer s.autosave.mu.Unlock()
	return s.autosave.writes, s.autosave.failures
}

type autosaver struct {
	mu       sync.Mutex
	enabled  bool
	path     string
	debounce time.Duration
	log      *slog.Logger

	pending  *build.Build
	timer    *time.Timer
	writes   int
	failures int
}

func (a *autosaver) schedule(b *build.Build) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scheduleLocked(b)
}

func (a *autosaver) scheduleLocked(b *build.Build) {
	if !a.enabled || a.path == "" {
		return
	}
	snapshot := b.Clone()
	a.pending = &snapshot
	if a.debounce <= 0 {
		_ = a.writeLocked()
		return
	}
	if a.timer == nil {
		// A callback that fired while flush held the lock finds a.timer
		// changed and leaves the newer timer alone.
		var self *time.Timer
		self = time.AfterFunc(a.debounce, func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if a.timer != self {
				return
			}
			a.timer = nil
			_ = a.writeLocked()
		})
		a.timer = self
	}
}

func (a *autosaver) flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked()
}

func (a *autosaver) flushLocked() error {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	return a.writeLocked()
}

func (a *autosaver) writeLocked() error {
	if a.pending == nil {
		return nil
	}
	snapshot := *a.pending
	a.pending = nil
	if err := buildfile.Save(a.path, snapshot); err != nil {
		a.failures++
		a.log.Warn("autosave failed", "path", a.path, "err", err)
		return err
	}
	a.writes++
	return nil
}
