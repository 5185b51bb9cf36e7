package buildfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appengine-ltd/starbuild/internal/build"
)

// Sections are the top-level keys a build document may carry. Anything
// else in a stored file is ignored.
var Sections = []string{"space", "ground", "captain", "space_skills", "ground_skills", "skill_unlocks", "skill_desc"}

// SkillSections are the keys a skill tree file carries.
var SkillSections = []string{"space_skills", "ground_skills", "skill_unlocks", "skill_desc"}

func Save(path string, b build.Build) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode build: %w", err)
	}
	return writeFile(path, data)
}

// SaveSkills writes only the skill trees, unlocks and skill descriptions of
// b, so a tree can be shared between builds.
func SaveSkills(path string, b build.Build) error {
	full, err := toDocument(b)
	if err != nil {
		return err
	}
	doc := make(map[string]any, len(SkillSections))
	for _, section := range SkillSections {
		doc[section] = full[section]
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode skill tree: %w", err)
	}
	return writeFile(path, data)
}

// LoadSkills merges the skill sections of the file at path over a default
// tree and installs the result in into. The rest of into is untouched. A
// full build file is accepted; its other sections are ignored.
func LoadSkills(path string, into build.Build) (build.Build, error) {
	doc, err := readDocument(path)
	if err != nil {
		return into, err
	}
	found := false
	for _, section := range SkillSections {
		if _, ok := doc[section]; ok {
			found = true
			break
		}
	}
	if !found {
		return into, fmt.Errorf("parse skill tree %s: no skill sections", path)
	}
	tree, err := decodeMerged(path, doc, SkillSections)
	if err != nil {
		return into, err
	}
	into.SpaceSkills = tree.SpaceSkills
	into.GroundSkills = tree.GroundSkills
	into.Unlocks = tree.Unlocks
	into.SkillDesc = tree.SkillDesc
	return into, nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".build-*.tmp")
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

// Load reads a build document and merges it into a fresh default build, so
// older or newer files can never change the shape of the slot arrays.
func Load(path string) (build.Build, error) {
	doc, err := readDocument(path)
	if err != nil {
		return build.Build{}, err
	}
	return decodeMerged(path, doc, Sections)
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stored, err := decodeGeneric(data)
	if err != nil {
		return nil, fmt.Errorf("parse build %s: %w", path, err)
	}
	doc, ok := stored.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse build %s: document is not an object", path)
	}
	return doc, nil
}

// decodeMerged merges the named sections of doc over the default build and
// decodes the result.
func decodeMerged(path string, doc map[string]any, sections []string) (build.Build, error) {
	def, err := toDocument(build.New())
	if err != nil {
		return build.Build{}, err
	}
	merged, err := json.Marshal(mergeInto(def, doc, sections))
	if err != nil {
		return build.Build{}, fmt.Errorf("encode merged build: %w", err)
	}
	out := build.New()
	if err := json.Unmarshal(merged, &out); err != nil {
		return build.Build{}, fmt.Errorf("decode build %s: %w", path, err)
	}
	return out, nil
}

func toDocument(b build.Build) (map[string]any, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode build: %w", err)
	}
	v, err := decodeGeneric(data)
	if err != nil {
		return nil, err
	}
	doc, _ := v.(map[string]any)
	return doc, nil
}

func decodeGeneric(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Merge copies the known sections of stored over def. Lists merge element
// by element up to the shorter length; values whose shape disagrees with
// the default are dropped.
func Merge(def, stored map[string]any) map[string]any {
	return mergeInto(def, stored, Sections)
}

func mergeInto(def, stored map[string]any, sections []string) map[string]any {
	for _, section := range sections {
		v, ok := stored[section]
		if !ok {
			continue
		}
		if cur, known := def[section]; known {
			def[section] = mergeValue(cur, v)
		}
	}
	return def
}

func mergeValue(def, stored any) any {
	switch d := def.(type) {
	case nil:
		return stored
	case map[string]any:
		s, ok := stored.(map[string]any)
		if !ok {
			return d
		}
		for key, cur := range d {
			if v, ok := s[key]; ok {
				d[key] = mergeValue(cur, v)
			}
		}
		return d
	case []any:
		s, ok := stored.([]any)
		if !ok {
			return d
		}
		for i := 0; i < len(d) && i < len(s); i++ {
			d[i] = mergeValue(d[i], s[i])
		}
		return d
	default:
		if stored == nil || sameScalar(def, stored) {
			return stored
		}
		return def
	}
}

func sameScalar(a, b any) bool {
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case json.Number:
		_, ok := b.(json.Number)
		return ok
	default:
		return false
	}
}
