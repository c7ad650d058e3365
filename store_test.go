package hawkfuel

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "hawkfuel.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreSlotRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSlot(SlotUserProfile, json.RawMessage(`{"name":"Ada"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, ok, err := s.GetSlot(SlotUserProfile)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("slot not found after set")
	}
	var p UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("name = %q, want Ada", p.Name)
	}
}

func TestStoreSlotOverwrite(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSlotFrom(SlotDailyTarget, DailyTarget{Calories: 1800}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := s.SetSlotFrom(SlotDailyTarget, DailyTarget{Calories: 2100}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	var target DailyTarget
	ok, err := s.GetSlotInto(SlotDailyTarget, &target)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if target.Calories != 2100 {
		t.Errorf("calories = %d, want 2100", target.Calories)
	}
}

func TestStoreSlotMissing(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetSlot(SlotStreakData)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("missing slot reported as present")
	}

	var streak StreakData
	ok, err = s.GetSlotInto(SlotStreakData, &streak)
	if err != nil || ok {
		t.Errorf("GetSlotInto missing = ok %v err %v, want false nil", ok, err)
	}
}

func TestStoreMetadata(t *testing.T) {
	s := newTestStore(t)

	if v, err := s.GetMetadata("nope"); err != nil || v != "" {
		t.Errorf("missing metadata = %q, %v", v, err)
	}

	if err := s.SetMetadata("schema_note", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := s.GetMetadata("schema_note")
	if err != nil || v != "v1" {
		t.Errorf("metadata = %q, %v", v, err)
	}
}

func TestStoreLastSynced(t *testing.T) {
	s := newTestStore(t)

	if ts, err := s.LastSynced(); err != nil || !ts.IsZero() {
		t.Errorf("initial last-synced = %v, %v, want zero", ts, err)
	}

	at := time.Date(2025, 2, 23, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastSynced(at); err != nil {
		t.Fatalf("set: %v", err)
	}
	ts, err := s.LastSynced()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ts.Equal(at) {
		t.Errorf("last-synced = %v, want %v", ts, at)
	}
}

func TestStoreOnboardingFlag(t *testing.T) {
	s := newTestStore(t)

	if done, err := s.OnboardingComplete(); err != nil || done {
		t.Errorf("initial onboarding = %v, %v", done, err)
	}
	if err := s.MarkOnboardingComplete(); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if done, _ := s.OnboardingComplete(); !done {
		t.Error("onboarding not marked")
	}
}

func TestStoreUpsertRecipeAssignsID(t *testing.T) {
	s := newTestStore(t)

	r, err := s.UpsertRecipe(Recipe{Name: "chili", Servings: 4})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if r.ID == "" {
		t.Fatal("no id assigned")
	}

	recipes, err := s.ListRecipes()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "chili" {
		t.Errorf("recipes = %+v", recipes)
	}
}

func TestStoreUpsertRecipeEmptyName(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.UpsertRecipe(Recipe{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
}

func TestStoreUpsertRecipeMergesByID(t *testing.T) {
	s := newTestStore(t)

	r, err := s.UpsertRecipe(Recipe{Name: "chili"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	r.Name = "three-bean chili"
	if _, err := s.UpsertRecipe(r); err != nil {
		t.Fatalf("update: %v", err)
	}

	recipes, _ := s.ListRecipes()
	if len(recipes) != 1 {
		t.Fatalf("recipes = %d, want 1 (updated in place)", len(recipes))
	}
	if recipes[0].Name != "three-bean chili" {
		t.Errorf("name = %q", recipes[0].Name)
	}
}

func TestStoreDeleteRecipe(t *testing.T) {
	s := newTestStore(t)

	r, _ := s.UpsertRecipe(Recipe{Name: "chili"})
	if err := s.DeleteRecipe(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	recipes, _ := s.ListRecipes()
	if len(recipes) != 0 {
		t.Errorf("recipes = %d after delete", len(recipes))
	}
}

func TestStoreTemplates(t *testing.T) {
	s := newTestStore(t)

	tpl, err := s.UpsertTemplate(MealTemplate{
		Name: "usual breakfast",
		Entries: []FoodEntry{
			{Name: "oatmeal", Calories: 310},
			{Name: "coffee", Calories: 5},
		},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if tpl.ID == "" {
		t.Fatal("no id assigned")
	}

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 1 || len(templates[0].Entries) != 2 {
		t.Errorf("templates = %+v", templates)
	}
}

func TestStoreClosed(t *testing.T) {
	s := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, _, err := s.GetSlot(SlotUserProfile); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("GetSlot after close = %v, want ErrStoreClosed", err)
	}
	if err := s.SetSlot(SlotUserProfile, json.RawMessage(`{}`)); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("SetSlot after close = %v, want ErrStoreClosed", err)
	}
	if _, err := s.ListRecipes(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("ListRecipes after close = %v, want ErrStoreClosed", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hawkfuel.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetSlotFrom(SlotPreferences, Preferences{Units: "metric", WaterGoalML: 2000}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	var prefs Preferences
	ok, err := s2.GetSlotInto(SlotPreferences, &prefs)
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if prefs.WaterGoalML != 2000 {
		t.Errorf("water goal = %d, want 2000", prefs.WaterGoalML)
	}
}
