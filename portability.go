package hawkfuel

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// exportVersion identifies the portability format.
const exportVersion = 1

// Export is the portable JSON representation of all local data.
type Export struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Slots      map[string]json.RawMessage `json:"slots"`
	Recipes    []Recipe                   `json:"recipes"`
	Templates  []MealTemplate             `json:"templates"`
}

// allSlots lists every slot included in an export.
var allSlots = []string{
	SlotUserProfile,
	SlotDailyTarget,
	SlotMacroGoals,
	SlotMicronutrientGoals,
	SlotPreferences,
	SlotFoodLog,
	SlotHistory,
	SlotFoodHistory,
	SlotFavorites,
	SlotRecentFoods,
	SlotWeightLog,
	SlotStreakData,
}

// ExportJSON writes all local data as a single JSON document.
func (s *Store) ExportJSON(w io.Writer) error {
	export := Export{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Slots:      make(map[string]json.RawMessage),
	}

	for _, slot := range allSlots {
		raw, ok, err := s.GetSlot(slot)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if ok {
			export.Slots[slot] = raw
		}
	}

	recipes, err := s.ListRecipes()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	export.Recipes = recipes

	templates, err := s.ListTemplates()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	export.Templates = templates

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}

// ImportJSON reads an export document and applies it: slots are replaced
// wholly, recipes and templates merge by id into the local collections.
func (s *Store) ImportJSON(r io.Reader) error {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return fmt.Errorf("import: decode: %w", err)
	}
	if export.Version != exportVersion {
		return fmt.Errorf("import: unsupported export version %d", export.Version)
	}

	for name, raw := range export.Slots {
		if err := s.SetSlot(name, raw); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	for _, recipe := range export.Recipes {
		if _, err := s.UpsertRecipe(recipe); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	for _, template := range export.Templates {
		if _, err := s.UpsertTemplate(template); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	return nil
}
