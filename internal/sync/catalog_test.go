package sync

import (
	"testing"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

func TestDocPath(t *testing.T) {
	tests := []struct {
		userID string
		typ    record.Type
		want   string
	}{
		{"u1", record.Profile, "users/u1/data/profile"},
		{"u1", record.FoodLog, "users/u1/data/foodLog"},
		{"abc123", record.StreakData, "users/abc123/data/streakData"},
		{"u1", record.RecentFoods, "users/u1/data/recentFoods"},
	}
	for _, tt := range tests {
		if got := DocPath(tt.userID, tt.typ); got != tt.want {
			t.Errorf("DocPath(%q, %q) = %q, want %q", tt.userID, tt.typ, got, tt.want)
		}
	}
}

func TestCatalogCoversAllRecordTypes(t *testing.T) {
	for _, typ := range record.AllTypes() {
		entry, ok := Lookup(typ)
		if !ok {
			t.Errorf("record type %q missing from catalog", typ)
			continue
		}
		if entry.Type != typ {
			t.Errorf("catalog entry for %q has type %q", typ, entry.Type)
		}
	}
	if len(Entries()) != len(record.AllTypes()) {
		t.Errorf("Entries() = %d entries, want %d", len(Entries()), len(record.AllTypes()))
	}
}

func TestCatalogShapes(t *testing.T) {
	wantShapes := map[record.Type]Shape{
		record.Profile:     ShapeScalar,
		record.FoodLog:     ShapeDateKeyed,
		record.History:     ShapeScalar,
		record.FoodHistory: ShapeScalar,
		record.Favorites:   ShapeList,
		record.RecentFoods: ShapeList,
		record.WeightLog:   ShapeList,
		record.StreakData:  ShapeScalar,
		record.Recipes:     ShapeCollection,
		record.Templates:   ShapeCollection,
	}
	for typ, want := range wantShapes {
		entry, _ := Lookup(typ)
		if entry.Shape != want {
			t.Errorf("shape for %q = %v, want %v", typ, entry.Shape, want)
		}
	}
}

func TestBatchedEntriesExcludeCollections(t *testing.T) {
	for _, entry := range batchedEntries() {
		if entry.Shape == ShapeCollection {
			t.Errorf("collection type %q included in atomic batch", entry.Type)
		}
	}
	if got := len(batchedEntries()); got != 8 {
		t.Errorf("batched entries = %d, want 8", got)
	}
}

func TestLookupUnknownType(t *testing.T) {
	if _, ok := Lookup(record.Type("mealPlans")); ok {
		t.Error("Lookup accepted an unknown record type")
	}
}
