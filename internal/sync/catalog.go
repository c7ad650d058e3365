package sync

import (
	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

// Shape describes the structure of a record type's remote document.
type Shape int

const (
	// ShapeScalar documents carry the record's fields directly plus updatedAt.
	ShapeScalar Shape = iota

	// ShapeList documents wrap the record in {"items": [...], "updatedAt": ...}.
	ShapeList

	// ShapeDateKeyed documents map ISO dates to per-day values. Only the
	// current day is ever written; other days persist untouched.
	ShapeDateKeyed

	// ShapeCollection records live in their own local collections (not the
	// flat slots) and sync as a best-effort list document with per-item
	// merge semantics on download.
	ShapeCollection
)

// CatalogEntry maps one record type to its remote document shape and,
// for slot-backed types, the local store slot it mirrors.
type CatalogEntry struct {
	Type  record.Type
	Shape Shape
	Slot  string
}

// catalog is the fixed record catalog. The profile entry is a composite
// of five local slots and is assembled specially by the engine; its Slot
// field is empty.
var catalog = map[record.Type]CatalogEntry{
	record.Profile:     {Type: record.Profile, Shape: ShapeScalar},
	record.FoodLog:     {Type: record.FoodLog, Shape: ShapeDateKeyed, Slot: record.SlotFoodLog},
	record.History:     {Type: record.History, Shape: ShapeScalar, Slot: record.SlotHistory},
	record.FoodHistory: {Type: record.FoodHistory, Shape: ShapeScalar, Slot: record.SlotFoodHistory},
	record.Favorites:   {Type: record.Favorites, Shape: ShapeList, Slot: record.SlotFavorites},
	record.RecentFoods: {Type: record.RecentFoods, Shape: ShapeList, Slot: record.SlotRecentFoods},
	record.WeightLog:   {Type: record.WeightLog, Shape: ShapeList, Slot: record.SlotWeightLog},
	record.StreakData:  {Type: record.StreakData, Shape: ShapeScalar, Slot: record.SlotStreakData},
	record.Recipes:     {Type: record.Recipes, Shape: ShapeCollection},
	record.Templates:   {Type: record.Templates, Shape: ShapeCollection},
}

// Lookup returns the catalog entry for a record type.
func Lookup(t record.Type) (CatalogEntry, bool) {
	e, ok := catalog[t]
	return e, ok
}

// Entries returns all catalog entries in the fixed record-type order.
func Entries() []CatalogEntry {
	types := record.AllTypes()
	out := make([]CatalogEntry, 0, len(types))
	for _, t := range types {
		out = append(out, catalog[t])
	}
	return out
}

// batchedEntries returns the entries included in the atomic bulk-upload
// batch: every slot-backed type plus the composite profile, excluding the
// best-effort collection types.
func batchedEntries() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range Entries() {
		if e.Shape == ShapeCollection {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DocPath returns the remote document path for a user and record type:
// users/{userId}/data/{recordType}.
func DocPath(userID string, t record.Type) string {
	return "users/" + userID + "/data/" + string(t)
}
