package faction

import "strings"

// Store is the whole in-memory directory state: an ordered faction list plus
// the category registry that resolves their category ids.
type Store struct {
	Factions   []Faction
	Categories []Category
}

// NewStore returns an empty store carrying the built-in categories.
func NewStore() *Store {
	return &Store{Categories: DefaultCategories()}
}

// Filtered returns the factions passing the active category and search term,
// preserving store order. The term must already be trimmed and lowercased;
// an empty term matches everything, as does the "all" category.
func (s *Store) Filtered(activeCategory, term string) []Faction {
	out := make([]Faction, 0, len(s.Factions))
	for _, f := range s.Factions {
		if activeCategory != AllCategories && f.Category != activeCategory {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(f.Name), term) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Find returns the faction with the given id.
func (s *Store) Find(id string) (Faction, bool) {
	for _, f := range s.Factions {
		if f.ID == id {
			return f, true
		}
	}
	return Faction{}, false
}

// Upsert replaces the faction with the same id in place, keeping its list
// position, or appends when the id is new.
func (s *Store) Upsert(f Faction) {
	for i := range s.Factions {
		if s.Factions[i].ID == f.ID {
			s.Factions[i] = f
			return
		}
	}
	s.Factions = append(s.Factions, f)
}

// Remove deletes the faction with the given id. Removing an absent id is a
// no-op; a stale delete from a double click must not error.
func (s *Store) Remove(id string) {
	for i := range s.Factions {
		if s.Factions[i].ID == id {
			s.Factions = append(s.Factions[:i], s.Factions[i+1:]...)
			return
		}
	}
}

// Clear drops every faction. The category registry is untouched.
func (s *Store) Clear() {
	s.Factions = nil
}

// ReplaceAll swaps the entire store content. Used by import.
func (s *Store) ReplaceAll(factions []Faction, categories []Category) {
	s.Factions = factions
	s.Categories = categories
}

// CategoryName resolves a category id to its display name. Ids the registry
// cannot resolve render as a placeholder instead of erroring.
func (s *Store) CategoryName(id string) string {
	for _, c := range s.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "—"
}

// EditableCategory returns the first category usable on a faction, skipping
// the reserved "all" entry. New drafts default to it.
func (s *Store) EditableCategory() string {
	for _, c := range s.Categories {
		if c.ID != AllCategories {
			return c.ID
		}
	}
	return FallbackCategory
}
