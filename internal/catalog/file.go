package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type document struct {
	Items     []Item     `json:"items"`
	Modifiers []Modifier `json:"modifiers"`
	Ships     []Ship     `json:"ships"`
}

func LoadJSON(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return NewSnapshot(doc.Items, doc.Modifiers, doc.Ships), nil
}

func WriteJSON(path string, s *Snapshot) error {
	items, mods, ships := s.records()
	data, err := json.MarshalIndent(document{Items: items, Modifiers: mods, Ships: ships}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
