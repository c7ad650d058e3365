package hawkfuel

import (
	"time"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

// RecordType identifies one logical category of data synced between the
// local store and the cloud document store. The enum lives in
// internal/record so the sync engine can share it without importing
// this package.
type RecordType = record.Type

const (
	RecordProfile     = record.Profile
	RecordFoodLog     = record.FoodLog
	RecordHistory     = record.History
	RecordFoodHistory = record.FoodHistory
	RecordFavorites   = record.Favorites
	RecordRecentFoods = record.RecentFoods
	RecordWeightLog   = record.WeightLog
	RecordStreakData  = record.StreakData
	RecordRecipes     = record.Recipes
	RecordTemplates   = record.Templates
)

// AllRecordTypes returns every record type, in catalog order.
func AllRecordTypes() []RecordType {
	return record.AllTypes()
}

// Local store slot names. Each slot holds one JSON value. The profile
// record is a composite of the first five slots; every other slot-backed
// record maps to exactly one slot.
const (
	SlotUserProfile        = record.SlotUserProfile
	SlotDailyTarget        = record.SlotDailyTarget
	SlotMacroGoals         = record.SlotMacroGoals
	SlotMicronutrientGoals = record.SlotMicronutrientGoals
	SlotPreferences        = record.SlotPreferences
	SlotFoodLog            = record.SlotFoodLog
	SlotHistory            = record.SlotHistory
	SlotFoodHistory        = record.SlotFoodHistory
	SlotFavorites          = record.SlotFavorites
	SlotRecentFoods        = record.SlotRecentFoods
	SlotWeightLog          = record.SlotWeightLog
	SlotStreakData         = record.SlotStreakData
)

// Sex is used by the energy-expenditure formulas.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// ActivityLevel scales BMR into daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// Goal is the user's weight objective.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// UserProfile holds the user's physical stats and objective.
type UserProfile struct {
	Name          string        `json:"name"`
	Sex           Sex           `json:"sex"`
	Age           int           `json:"age"`
	HeightCm      float64       `json:"heightCm"`
	WeightKg      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// DailyTarget is the computed calorie budget for one day.
type DailyTarget struct {
	Calories int `json:"calories"`
}

// MacroGoals are the daily macronutrient targets in grams.
type MacroGoals struct {
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

// MicronutrientGoals maps nutrient name to a daily target amount.
type MicronutrientGoals map[string]float64

// Preferences holds display and tracking preferences.
type Preferences struct {
	Units       string `json:"units"`
	Theme       string `json:"theme"`
	WaterGoalML int    `json:"waterGoalMl"`
}

// FoodEntry is one logged food item.
type FoodEntry = record.FoodEntry

// ExerciseEntry is one logged exercise session.
type ExerciseEntry = record.ExerciseEntry

// DayLog is everything logged for a single calendar day.
type DayLog = record.DayLog

// DaySummary is the aggregated record of one past day, kept in history.
type DaySummary struct {
	Calories         int     `json:"calories"`
	ProteinG         float64 `json:"proteinG"`
	CarbsG           float64 `json:"carbsG"`
	FatG             float64 `json:"fatG"`
	Water            int     `json:"water"`
	ExerciseCalories int     `json:"exerciseCalories"`
}

// History maps ISO dates (YYYY-MM-DD) to day summaries.
type History map[string]DaySummary

// FoodHistoryItem tracks how often a food has been logged.
type FoodHistoryItem struct {
	Count        int       `json:"count"`
	Calories     int       `json:"calories"`
	LastLoggedAt time.Time `json:"lastLoggedAt"`
}

// FoodHistory maps food name to aggregate logging stats.
type FoodHistory map[string]FoodHistoryItem

// FavoriteFood is a user-pinned food for quick logging.
type FavoriteFood struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

// WeightEntry is one weigh-in.
type WeightEntry struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	WeightKg float64 `json:"weightKg"`
}

// StreakData tracks consecutive logging days.
type StreakData struct {
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	LastLoggedDate string `json:"lastLoggedDate"` // YYYY-MM-DD
}

// Ingredient is one component of a recipe.
type Ingredient = record.Ingredient

// Recipe is a user-defined multi-ingredient food.
type Recipe = record.Recipe

// MealTemplate is a reusable group of food entries logged together.
type MealTemplate = record.MealTemplate

// DateKey formats t as the calendar-day key used by the food log's
// date-keyed remote document and the history map.
func DateKey(t time.Time) string {
	return record.DateKey(t)
}
