// Package record holds the vocabulary shared between the application
// surface and the sync engine: the record-type catalog, local slot
// names, and the data shapes that cross the local/cloud boundary.
package record

import "time"

// Type identifies one logical category of data synced between the
// local store and the cloud document store.
type Type string

const (
	Profile     Type = "profile"
	FoodLog     Type = "foodLog"
	History     Type = "history"
	FoodHistory Type = "foodHistory"
	Favorites   Type = "favorites"
	RecentFoods Type = "recentFoods"
	WeightLog   Type = "weightLog"
	StreakData  Type = "streakData"
	Recipes     Type = "recipes"
	Templates   Type = "templates"
)

// AllTypes returns every record type, in catalog order.
func AllTypes() []Type {
	return []Type{
		Profile,
		FoodLog,
		History,
		FoodHistory,
		Favorites,
		RecentFoods,
		WeightLog,
		StreakData,
		Recipes,
		Templates,
	}
}

// IsValid checks whether t is a known record type.
func (t Type) IsValid() bool {
	for _, valid := range AllTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// Local store slot names. Each slot holds one JSON value. The profile
// record is a composite of the first five slots; every other slot-backed
// record maps to exactly one slot.
const (
	SlotUserProfile        = "userProfile"
	SlotDailyTarget        = "dailyTarget"
	SlotMacroGoals         = "macroGoals"
	SlotMicronutrientGoals = "micronutrientGoals"
	SlotPreferences        = "preferences"
	SlotFoodLog            = "foodLog"
	SlotHistory            = "history"
	SlotFoodHistory        = "foodHistory"
	SlotFavorites          = "favorites"
	SlotRecentFoods        = "recentFoods"
	SlotWeightLog          = "weightLog"
	SlotStreakData         = "streakData"
)

// FoodEntry is one logged food item.
type FoodEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	ProteinG float64   `json:"proteinG"`
	CarbsG   float64   `json:"carbsG"`
	FatG     float64   `json:"fatG"`
	LoggedAt time.Time `json:"loggedAt"`
}

// ExerciseEntry is one logged exercise session.
type ExerciseEntry struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CaloriesBurned int       `json:"caloriesBurned"`
	LoggedAt       time.Time `json:"loggedAt"`
}

// DayLog is everything logged for a single calendar day.
type DayLog struct {
	Entries  []FoodEntry     `json:"entries"`
	Exercise []ExerciseEntry `json:"exercise"`
	Water    int             `json:"water"`
}

// Ingredient is one component of a recipe.
type Ingredient struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Calories int     `json:"calories"`
}

// Recipe is a user-defined multi-ingredient food.
type Recipe struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Servings           float64      `json:"servings"`
	CaloriesPerServing int          `json:"caloriesPerServing"`
	ProteinG           float64      `json:"proteinG"`
	CarbsG             float64      `json:"carbsG"`
	FatG               float64      `json:"fatG"`
	Ingredients        []Ingredient `json:"ingredients,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// MealTemplate is a reusable group of food entries logged together.
type MealTemplate struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Entries   []FoodEntry `json:"entries"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DateKey formats t as the calendar-day key used by the food log's
// date-keyed remote document and the history map.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
