package build

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Slot is one addressable position in a slot array. A slot with an empty
// Item is empty; traits, abilities and doffs only use Item.
type Slot struct {
	Item      string   `json:"item"`
	Mark      string   `json:"mark,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

func Item(name string) Slot {
	return Slot{Item: strings.TrimSpace(name)}
}

func Equipment(name, mark string, modifiers ...string) Slot {
	s := Item(name)
	s.Mark = strings.TrimSpace(mark)
	if len(modifiers) > 0 {
		s.Modifiers = append([]string(nil), modifiers...)
	}
	return s
}

func (s Slot) Empty() bool {
	return strings.TrimSpace(s.Item) == ""
}

func (s Slot) Clone() Slot {
	if s.Modifiers != nil {
		s.Modifiers = append([]string(nil), s.Modifiers...)
	}
	return s
}

func (s Slot) String() string {
	if s.Empty() {
		return "-"
	}
	var b strings.Builder
	b.WriteString(s.Item)
	if s.Mark != "" {
		b.WriteString(" ")
		b.WriteString(s.Mark)
	}
	mods := make([]string, 0, len(s.Modifiers))
	for _, m := range s.Modifiers {
		if m != "" {
			mods = append(mods, m)
		}
	}
	if len(mods) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(mods, " "))
	}
	return b.String()
}

type slotJSON Slot

func (s Slot) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("null"), nil
	}
	return json.Marshal(slotJSON(s))
}

// UnmarshalJSON accepts null, the legacy "" empty marker, a bare item name
// and the object form. Any other value reads as an empty slot.
func (s *Slot) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = Slot{}
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = Item(name)
		return nil
	}
	if data[0] != '{' {
		*s = Slot{}
		return nil
	}
	var raw slotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("slot: %w", err)
	}
	*s = Slot(raw)
	return nil
}
