package hawkfuel

import "math"

// Calorie adjustments applied on top of maintenance for weight goals,
// roughly 0.5 kg per week in either direction.
const (
	loseDeficit = 500
	gainSurplus = 350

	// minCalories is the floor below which a computed target is clamped.
	minCalories = 1200
)

// Macro split applied to the calorie target: 30% protein, 40% carbs,
// 30% fat, using 4 kcal/g for protein and carbs and 9 kcal/g for fat.
const (
	proteinShare = 0.30
	carbsShare   = 0.40
	fatShare     = 0.30
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// BMR computes basal metabolic rate using the Mifflin-St Jeor equation.
func BMR(p UserProfile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the profile's activity level. Unknown levels fall
// back to sedentary.
func TDEE(p UserProfile) float64 {
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	return BMR(p) * mult
}

// Targets derives the daily calorie budget and macro goals from a profile.
func Targets(p UserProfile) (DailyTarget, MacroGoals) {
	calories := TDEE(p)
	switch p.Goal {
	case GoalLose:
		calories -= loseDeficit
	case GoalGain:
		calories += gainSurplus
	}
	if calories < minCalories {
		calories = minCalories
	}

	target := DailyTarget{Calories: int(math.Round(calories))}
	macros := MacroGoals{
		ProteinG: math.Round(calories * proteinShare / 4),
		CarbsG:   math.Round(calories * carbsShare / 4),
		FatG:     math.Round(calories * fatShare / 9),
	}
	return target, macros
}
