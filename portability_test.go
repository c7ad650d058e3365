package hawkfuel

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newOfflineClient(t)
	ctx := context.Background()

	if err := src.LogFood(ctx, FoodEntry{Name: "toast", Calories: 180}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := src.LogWater(ctx, 500); err != nil {
		t.Fatalf("water: %v", err)
	}
	recipe, err := src.SaveRecipe(ctx, Recipe{Name: "granola", Servings: 4})
	if err != nil {
		t.Fatalf("recipe: %v", err)
	}

	var buf bytes.Buffer
	if err := src.Store().ExportJSON(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newOfflineClient(t)
	if err := dst.Store().ImportJSON(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}

	day, err := dst.TodayLog()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(day.Entries) != 1 || day.Entries[0].Name != "toast" {
		t.Errorf("entries = %+v", day.Entries)
	}
	if day.Water != 500 {
		t.Errorf("water = %d, want 500", day.Water)
	}

	recipes, err := dst.Store().ListRecipes()
	if err != nil {
		t.Fatalf("recipes: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != recipe.ID {
		t.Errorf("recipes = %+v, want id %s carried over", recipes, recipe.ID)
	}
}

func TestImportMergesRecipesByID(t *testing.T) {
	src := newOfflineClient(t)
	ctx := context.Background()

	recipe, err := src.SaveRecipe(ctx, Recipe{Name: "granola", Servings: 4})
	if err != nil {
		t.Fatalf("recipe: %v", err)
	}

	var buf bytes.Buffer
	if err := src.Store().ExportJSON(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newOfflineClient(t)
	if _, err := dst.SaveRecipe(ctx, Recipe{Name: "smoothie"}); err != nil {
		t.Fatalf("local recipe: %v", err)
	}
	// pre-seed a stale copy of the imported recipe; import must update
	// it in place rather than duplicate it
	if _, err := dst.Store().UpsertRecipe(Recipe{ID: recipe.ID, Name: "old granola"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := dst.Store().ImportJSON(&buf); err != nil {
		t.Fatalf("import: %v", err)
	}

	recipes, err := dst.Store().ListRecipes()
	if err != nil {
		t.Fatalf("recipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("recipes = %d, want 2 (merged, not duplicated)", len(recipes))
	}
	byID := map[string]Recipe{}
	for _, r := range recipes {
		byID[r.ID] = r
	}
	if got := byID[recipe.ID].Name; got != "granola" {
		t.Errorf("merged recipe name = %q, want the imported copy to win", got)
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	client := newOfflineClient(t)
	err := client.Store().ImportJSON(strings.NewReader(`{"version": 99}`))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("error = %v, want version mismatch", err)
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	client := newOfflineClient(t)
	if err := client.Store().ImportJSON(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
