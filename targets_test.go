package hawkfuel

import (
	"math"
	"testing"
	"time"
)

func mustParseDay(t *testing.T, day string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse %q: %v", day, err)
	}
	return parsed
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestBMR(t *testing.T) {
	male := UserProfile{Sex: SexMale, Age: 30, HeightCm: 175, WeightKg: 70}
	// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
	if got := BMR(male); !almostEqual(got, 1648.75) {
		t.Errorf("male BMR = %v, want 1648.75", got)
	}

	female := UserProfile{Sex: SexFemale, Age: 30, HeightCm: 170, WeightKg: 65}
	// 10*65 + 6.25*170 - 5*30 - 161 = 1401.5
	if got := BMR(female); !almostEqual(got, 1401.5) {
		t.Errorf("female BMR = %v, want 1401.5", got)
	}
}

func TestTDEE(t *testing.T) {
	p := UserProfile{Sex: SexFemale, Age: 30, HeightCm: 170, WeightKg: 65, ActivityLevel: ActivityModerate}
	want := 1401.5 * 1.55
	if got := TDEE(p); !almostEqual(got, want) {
		t.Errorf("TDEE = %v, want %v", got, want)
	}
}

func TestTDEEUnknownActivityFallsBackToSedentary(t *testing.T) {
	p := UserProfile{Sex: SexMale, Age: 30, HeightCm: 175, WeightKg: 70, ActivityLevel: "couch"}
	want := 1648.75 * 1.2
	if got := TDEE(p); !almostEqual(got, want) {
		t.Errorf("TDEE = %v, want sedentary fallback %v", got, want)
	}
}

func TestTargetsGoalAdjustments(t *testing.T) {
	base := UserProfile{Sex: SexMale, Age: 30, HeightCm: 175, WeightKg: 70, ActivityLevel: ActivityModerate}

	maintain := base
	maintain.Goal = GoalMaintain
	maintainTarget, _ := Targets(maintain)

	lose := base
	lose.Goal = GoalLose
	loseTarget, _ := Targets(lose)
	if loseTarget.Calories != maintainTarget.Calories-500 {
		t.Errorf("lose target = %d, want maintain−500 = %d", loseTarget.Calories, maintainTarget.Calories-500)
	}

	gain := base
	gain.Goal = GoalGain
	gainTarget, _ := Targets(gain)
	if gainTarget.Calories != maintainTarget.Calories+350 {
		t.Errorf("gain target = %d, want maintain+350 = %d", gainTarget.Calories, maintainTarget.Calories+350)
	}
}

func TestTargetsFloor(t *testing.T) {
	tiny := UserProfile{Sex: SexFemale, Age: 80, HeightCm: 140, WeightKg: 40, ActivityLevel: ActivitySedentary, Goal: GoalLose}
	target, _ := Targets(tiny)
	if target.Calories != 1200 {
		t.Errorf("target = %d, want floor 1200", target.Calories)
	}
}

func TestTargetsMacroSplit(t *testing.T) {
	p := UserProfile{Sex: SexFemale, Age: 30, HeightCm: 170, WeightKg: 65, ActivityLevel: ActivityModerate, Goal: GoalMaintain}
	target, macros := Targets(p)

	calories := float64(target.Calories)
	// 30% protein and carbs at 4 kcal/g, 30% fat at 9 kcal/g; rounding
	// keeps each within a gram of the exact share
	if math.Abs(macros.ProteinG-calories*0.30/4) > 1 {
		t.Errorf("protein = %v for %v kcal", macros.ProteinG, calories)
	}
	if math.Abs(macros.CarbsG-calories*0.40/4) > 1 {
		t.Errorf("carbs = %v for %v kcal", macros.CarbsG, calories)
	}
	if math.Abs(macros.FatG-calories*0.30/9) > 1 {
		t.Errorf("fat = %v for %v kcal", macros.FatG, calories)
	}
}
