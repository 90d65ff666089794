package faction

import (
	"encoding/json"
	"fmt"
)

// Document is the import/export wire format.
type Document struct {
	Factions   []Faction  `json:"factions"`
	Categories []Category `json:"categories"`
}

// Export serializes the store as pretty-printed JSON.
func Export(s *Store) ([]byte, error) {
	doc := Document{Factions: s.Factions, Categories: s.Categories}
	if doc.Factions == nil {
		doc.Factions = []Faction{}
	}
	if doc.Categories == nil {
		doc.Categories = []Category{}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing export: %w", err)
	}
	return out, nil
}

// Import parses an exported document, normalizes every faction record and
// replaces the store content. On any parse failure the store is left
// untouched and the error describes why.
//
// Field tolerance: a missing or non-array factions field imports as an
// empty list; a missing, non-array or empty categories field keeps the
// currently loaded registry (an empty registry would leave every faction
// unresolvable, so "no categories" always means "keep what we have").
func Import(s *Store, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing import: %w", err)
	}

	var records []record
	if msg, ok := raw["factions"]; ok {
		// Tolerate a wrong-typed field rather than failing the whole file.
		if err := json.Unmarshal(msg, &records); err != nil {
			records = nil
		}
	}
	factions := make([]Faction, 0, len(records))
	for _, r := range records {
		factions = append(factions, normalize(r))
	}

	var categories []Category
	if msg, ok := raw["categories"]; ok {
		if err := json.Unmarshal(msg, &categories); err != nil {
			categories = nil
		}
	}
	if len(categories) == 0 {
		categories = s.Categories
	}

	s.ReplaceAll(factions, categories)
	return nil
}
