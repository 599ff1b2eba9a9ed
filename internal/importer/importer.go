// Package importer parses inventory exports into (gift id, quantity) pairs.
// Parsing lives on the consumer side; the core applies the pairs and ignores
// unknown ids.
package importer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
)

// Item is one (gift id, quantity) pair from an inventory export.
type Item struct {
	ID     int `json:"id"`
	Number int `json:"number"`
}

// ErrUnrecognized is returned when the content matches neither the JSON
// export shape nor the loose id/number text shape.
var ErrUnrecognized = errors.New("unrecognized import format")

// Exports commonly arrive mangled by chat clients, so the fallback scanner
// accepts optional quotes of either kind and anything between the id and
// its number.
var itemPattern = regexp.MustCompile(`(?is)['"]?id['"]?\s*:\s*([0-9]+).*?['"]?number['"]?\s*:\s*([0-9]+)`)

// Parse extracts items from raw export text. It first tries the strict JSON
// shape `[{"item": [{"id": ..., "number": ...}, ...]}]`, then falls back to
// scanning for loose id/number pairs.
func Parse(content string) ([]Item, error) {
	var payload []struct {
		Item []Item `json:"item"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		if len(payload) > 0 && len(payload[0].Item) > 0 {
			return payload[0].Item, nil
		}
	}
	return parseLoose(content)
}

func parseLoose(content string) ([]Item, error) {
	matches := itemPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, ErrUnrecognized
	}
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		number, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, Item{ID: id, Number: number})
	}
	return items, nil
}
