package catalog

import (
	"errors"
	"html"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrNotCargo = errors.New("catalog: not a cargo export")

// cargoRows yields the row objects of a wiki cargo export. Both the raw API
// response ({"cargoquery":[{"title":{...}}]}) and a bare array of rows are
// accepted.
func cargoRows(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotCargo
	}
	root := gjson.ParseBytes(data)
	if q := root.Get("cargoquery"); q.IsArray() {
		root = q
	}
	if !root.IsArray() {
		return nil, ErrNotCargo
	}
	var rows []gjson.Result
	root.ForEach(func(_, v gjson.Result) bool {
		if t := v.Get("title"); t.IsObject() {
			v = t
		}
		if v.IsObject() {
			rows = append(rows, v)
		}
		return true
	})
	return rows, nil
}

// ParseCargoItems reads the equipment and trait infobox table. Rows whose
// type has no category are skipped.
func ParseCargoItems(data []byte) ([]Item, error) {
	rows, err := cargoRows(data)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		typ := row.Get("type").String()
		category, ok := CategoryForType(typ)
		if !ok {
			continue
		}
		name := cleanCargoText(row.Get("name").String())
		if name == "" {
			continue
		}
		var tip []string
		for i := 1; i <= 9; i++ {
			if text := cleanCargoText(row.Get("text" + strconv.Itoa(i)).String()); text != "" {
				tip = append(tip, text)
			}
		}
		items = append(items, Item{
			Name:     name,
			Category: category,
			Type:     typ,
			Rarity:   row.Get("rarity").String(),
			Tooltip:  strings.Join(tip, "\n"),
		})
	}
	return items, nil
}

// ParseCargoModifiers reads the modifier table. A modifier listing several
// equipment types yields one record per resolvable type.
func ParseCargoModifiers(data []byte) ([]Modifier, error) {
	rows, err := cargoRows(data)
	if err != nil {
		return nil, err
	}
	var mods []Modifier
	for _, row := range rows {
		name := cleanCargoText(row.Get("modifier").String())
		if name == "" {
			continue
		}
		epic := row.Get("isepic").Bool()
		types := row.Get("type")
		add := func(t string) {
			if c, ok := CategoryForType(t); ok {
				mods = append(mods, Modifier{Name: name, Category: c, Epic: epic})
			}
		}
		if types.IsArray() {
			types.ForEach(func(_, t gjson.Result) bool {
				add(t.String())
				return true
			})
			continue
		}
		for _, t := range strings.Split(types.String(), ",") {
			add(t)
		}
	}
	return mods, nil
}

func ParseCargoShips(data []byte) ([]Ship, error) {
	rows, err := cargoRows(data)
	if err != nil {
		return nil, err
	}
	ships := make([]Ship, 0, len(rows))
	for _, row := range rows {
		name := cleanCargoText(row.Get("name").String())
		if name == "" {
			continue
		}
		tier := strings.TrimSpace(row.Get("tier").String())
		if tier != "" && !strings.HasPrefix(strings.ToUpper(tier), "T") {
			tier = "T" + tier
		}
		ships = append(ships, Ship{
			Name:         name,
			Tier:         tier,
			Description:  cleanCargoText(row.Get("type").String()),
			Fore:         int(row.Get("fore").Int()),
			Aft:          int(row.Get("aft").Int()),
			Devices:      int(row.Get("devices").Int()),
			Hangars:      int(row.Get("hangars").Int()),
			Tac:          int(row.Get("consolestac").Int()),
			Eng:          int(row.Get("consoleseng").Int()),
			Sci:          int(row.Get("consolessci").Int()),
			Uni:          int(row.Get("uniconsole").Int()),
			Experimental: cargoFlag(row.Get("experimental")),
			SecDef:       cargoFlag(row.Get("secdeflector")),
		})
	}
	return ships, nil
}

func cargoFlag(v gjson.Result) bool {
	switch strings.ToLower(strings.TrimSpace(v.String())) {
	case "", "0", "no", "false":
		return false
	default:
		return true
	}
}

func cleanCargoText(v string) string {
	return strings.TrimSpace(html.UnescapeString(v))
}
