package hawkfuel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	isync "github.com/HlnefzgerSchoolAct/HawkFuel/internal/sync"
	"github.com/oklog/ulid/v2"
)

// Client is the main interface for tracking nutrition data. Local writes
// are synchronous and always succeed from the user's perspective; when a
// user is signed in, every mutation is additionally pushed to the cloud
// best-effort through the session bridge.
type Client struct {
	store  *Store
	engine *isync.Engine
	status *StatusTracker
	debug  *DebugLogger
	config Config

	mu     sync.Mutex
	bridge *isync.Bridge // nil when signed out
}

// New creates a new HawkFuel client.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := NewStore(cfg.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	debug, err := NewDebugLogger(cfg.Debug, cfg.DebugLogPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("client: %w", err)
	}

	var cloud isync.CloudStore
	if !cfg.IsOffline() {
		cloud = isync.NewHTTPClient(cfg.CloudURL, cfg.APIKey, cfg.DeviceID).WithLogger(debug)
	}

	status := NewStatusTracker()
	engine := isync.NewEngine(store, cloud).
		WithStatusReporter(status).
		WithLogger(debug)

	return &Client{
		store:  store,
		engine: engine,
		status: status,
		debug:  debug,
		config: cfg,
	}, nil
}

// Store exposes the underlying local store.
func (c *Client) Store() *Store { return c.store }

// SignIn runs the sign-in reconciliation for the given user and installs
// the session bridge so subsequent local mutations are pushed to the
// cloud. Safe to call in offline mode, where it does nothing.
func (c *Client) SignIn(ctx context.Context, userID string) error {
	if userID == "" {
		return &ValidationError{Field: "UserID", Message: "required for sign-in"}
	}

	err := c.engine.SyncOnSignIn(ctx, userID)

	c.mu.Lock()
	c.bridge = isync.NewBridge(c.engine, userID, c.status)
	c.mu.Unlock()

	return err
}

// SignOut discards the session bridge. Local-only mutations are no
// longer attempted against the network.
func (c *Client) SignOut() {
	c.mu.Lock()
	c.bridge = nil
	c.mu.Unlock()
}

// SignedInUser returns the active user id, or "" when signed out.
func (c *Client) SignedInUser() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bridge == nil {
		return ""
	}
	return c.bridge.UserID()
}

// Sync pushes all local data to the cloud. This is the manual retry path
// for a failed upload; errors propagate so the UI can keep offering retry.
func (c *Client) Sync(ctx context.Context) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	return c.engine.UploadLocalToCloud(ctx, userID)
}

// Pull overwrites local data from the cloud. Failures are absorbed and
// visible only through Status.
func (c *Client) Pull(ctx context.Context) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	return c.engine.DownloadCloudToLocal(ctx, userID)
}

// EraseCloudData deletes every remote document for the signed-in user.
// Best-effort; pairs with the auth provider's account deletion.
func (c *Client) EraseCloudData(ctx context.Context) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	return c.engine.DeleteUserCloudData(ctx, userID)
}

// Status returns the current sync state and the last successful sync time.
func (c *Client) Status() (SyncState, time.Time) {
	last, _ := c.store.LastSynced()
	if tracked := c.status.LastSynced(); tracked.After(last) {
		last = tracked
	}
	return c.status.State(), last
}

// SaveProfile stores the user profile, recomputes daily targets from it,
// and marks onboarding complete.
func (c *Client) SaveProfile(ctx context.Context, p UserProfile) error {
	if err := c.store.SetSlotFrom(SlotUserProfile, p); err != nil {
		return err
	}
	target, macros := Targets(p)
	if err := c.store.SetSlotFrom(SlotDailyTarget, target); err != nil {
		return err
	}
	if err := c.store.SetSlotFrom(SlotMacroGoals, macros); err != nil {
		return err
	}
	if err := c.store.MarkOnboardingComplete(); err != nil {
		return err
	}
	c.notify(ctx, RecordProfile, nil)
	return nil
}

// SavePreferences stores display and tracking preferences.
func (c *Client) SavePreferences(ctx context.Context, p Preferences) error {
	if err := c.store.SetSlotFrom(SlotPreferences, p); err != nil {
		return err
	}
	c.notify(ctx, RecordProfile, nil)
	return nil
}

// SaveMicronutrientGoals stores per-nutrient daily targets.
func (c *Client) SaveMicronutrientGoals(ctx context.Context, g MicronutrientGoals) error {
	if err := c.store.SetSlotFrom(SlotMicronutrientGoals, g); err != nil {
		return err
	}
	c.notify(ctx, RecordProfile, nil)
	return nil
}

// Profile returns the stored user profile, if onboarding has produced one.
func (c *Client) Profile() (UserProfile, bool, error) {
	var p UserProfile
	ok, err := c.store.GetSlotInto(SlotUserProfile, &p)
	return p, ok, err
}

// TodayLog returns everything logged today.
func (c *Client) TodayLog() (DayLog, error) {
	var day DayLog
	if _, err := c.store.GetSlotInto(SlotFoodLog, &day); err != nil {
		return DayLog{}, err
	}
	return day, nil
}

// LogFood appends a food entry to today's log and updates the dependent
// records: recent foods, food history, the daily history rollup, and the
// logging streak. Each changed record is pushed through the bridge.
func (c *Client) LogFood(ctx context.Context, entry FoodEntry) error {
	if entry.Name == "" {
		return ErrEmptyName
	}
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	day, err := c.TodayLog()
	if err != nil {
		return err
	}
	day.Entries = append(day.Entries, entry)
	if err := c.saveDayLog(ctx, day); err != nil {
		return err
	}

	if err := c.updateRecentFoods(ctx, entry); err != nil {
		return err
	}
	if err := c.updateFoodHistory(ctx, entry); err != nil {
		return err
	}
	if err := c.updateHistory(ctx, day); err != nil {
		return err
	}
	return c.updateStreak(ctx)
}

// LogExercise appends an exercise session to today's log.
func (c *Client) LogExercise(ctx context.Context, entry ExerciseEntry) error {
	if entry.Name == "" {
		return ErrEmptyName
	}
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	day, err := c.TodayLog()
	if err != nil {
		return err
	}
	day.Exercise = append(day.Exercise, entry)
	if err := c.saveDayLog(ctx, day); err != nil {
		return err
	}
	return c.updateHistory(ctx, day)
}

// LogWater adds to today's water total (milliliters).
func (c *Client) LogWater(ctx context.Context, ml int) error {
	day, err := c.TodayLog()
	if err != nil {
		return err
	}
	day.Water += ml
	if err := c.saveDayLog(ctx, day); err != nil {
		return err
	}
	return c.updateHistory(ctx, day)
}

// LogWeight records a weigh-in for today (or the entry's own date).
func (c *Client) LogWeight(ctx context.Context, entry WeightEntry) error {
	if entry.Date == "" {
		entry.Date = DateKey(time.Now())
	}

	var log []WeightEntry
	if _, err := c.store.GetSlotInto(SlotWeightLog, &log); err != nil {
		return err
	}
	// One entry per day: a second weigh-in replaces the first.
	replaced := false
	for i := range log {
		if log[i].Date == entry.Date {
			log[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		log = append(log, entry)
	}
	if err := c.store.SetSlotFrom(SlotWeightLog, log); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordWeightLog, log)
	return nil
}

// WeightLog returns all weigh-ins.
func (c *Client) WeightLog() ([]WeightEntry, error) {
	var log []WeightEntry
	if _, err := c.store.GetSlotInto(SlotWeightLog, &log); err != nil {
		return nil, err
	}
	return log, nil
}

// AddFavorite pins a food for quick logging. Adding an already-pinned
// food replaces it.
func (c *Client) AddFavorite(ctx context.Context, f FavoriteFood) error {
	if f.Name == "" {
		return ErrEmptyName
	}
	var favorites []FavoriteFood
	if _, err := c.store.GetSlotInto(SlotFavorites, &favorites); err != nil {
		return err
	}
	replaced := false
	for i := range favorites {
		if favorites[i].Name == f.Name {
			favorites[i] = f
			replaced = true
			break
		}
	}
	if !replaced {
		favorites = append(favorites, f)
	}
	if err := c.store.SetSlotFrom(SlotFavorites, favorites); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordFavorites, favorites)
	return nil
}

// Favorites returns the pinned foods.
func (c *Client) Favorites() ([]FavoriteFood, error) {
	var favorites []FavoriteFood
	if _, err := c.store.GetSlotInto(SlotFavorites, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// SaveRecipe upserts a recipe into the local collection and pushes the
// whole collection to the cloud.
func (c *Client) SaveRecipe(ctx context.Context, r Recipe) (Recipe, error) {
	stored, err := c.store.UpsertRecipe(r)
	if err != nil {
		return Recipe{}, err
	}
	c.notify(ctx, RecordRecipes, nil)
	return stored, nil
}

// SaveTemplate upserts a meal template into the local collection and
// pushes the whole collection to the cloud.
func (c *Client) SaveTemplate(ctx context.Context, t MealTemplate) (MealTemplate, error) {
	stored, err := c.store.UpsertTemplate(t)
	if err != nil {
		return MealTemplate{}, err
	}
	c.notify(ctx, RecordTemplates, nil)
	return stored, nil
}

// Close closes the client.
func (c *Client) Close() error {
	if err := c.debug.Close(); err != nil {
		c.debug.LogError("close", err)
	}
	return c.store.Close()
}

func (c *Client) requireUser() (string, error) {
	if c.config.IsOffline() {
		return "", ErrOffline
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bridge == nil {
		return "", ErrNotSignedIn
	}
	return c.bridge.UserID(), nil
}

func (c *Client) saveDayLog(ctx context.Context, day DayLog) error {
	if err := c.store.SetSlotFrom(SlotFoodLog, day); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordFoodLog, day)
	return nil
}

const recentFoodsLimit = 20

func (c *Client) updateRecentFoods(ctx context.Context, entry FoodEntry) error {
	var recents []FavoriteFood
	if _, err := c.store.GetSlotInto(SlotRecentFoods, &recents); err != nil {
		return err
	}

	item := FavoriteFood{
		Name:     entry.Name,
		Calories: entry.Calories,
		ProteinG: entry.ProteinG,
		CarbsG:   entry.CarbsG,
		FatG:     entry.FatG,
	}
	deduped := make([]FavoriteFood, 0, len(recents)+1)
	deduped = append(deduped, item)
	for _, r := range recents {
		if r.Name == item.Name {
			continue
		}
		deduped = append(deduped, r)
	}
	if len(deduped) > recentFoodsLimit {
		deduped = deduped[:recentFoodsLimit]
	}

	if err := c.store.SetSlotFrom(SlotRecentFoods, deduped); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordRecentFoods, deduped)
	return nil
}

func (c *Client) updateFoodHistory(ctx context.Context, entry FoodEntry) error {
	history := FoodHistory{}
	if _, err := c.store.GetSlotInto(SlotFoodHistory, &history); err != nil {
		return err
	}

	item := history[entry.Name]
	item.Count++
	item.Calories = entry.Calories
	item.LastLoggedAt = entry.LoggedAt
	history[entry.Name] = item

	if err := c.store.SetSlotFrom(SlotFoodHistory, history); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordFoodHistory, history)
	return nil
}

func (c *Client) updateHistory(ctx context.Context, day DayLog) error {
	history := History{}
	if _, err := c.store.GetSlotInto(SlotHistory, &history); err != nil {
		return err
	}

	summary := DaySummary{Water: day.Water}
	for _, e := range day.Entries {
		summary.Calories += e.Calories
		summary.ProteinG += e.ProteinG
		summary.CarbsG += e.CarbsG
		summary.FatG += e.FatG
	}
	for _, e := range day.Exercise {
		summary.ExerciseCalories += e.CaloriesBurned
	}
	history[DateKey(time.Now())] = summary

	if err := c.store.SetSlotFrom(SlotHistory, history); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordHistory, history)
	return nil
}

func (c *Client) updateStreak(ctx context.Context) error {
	var streak StreakData
	if _, err := c.store.GetSlotInto(SlotStreakData, &streak); err != nil {
		return err
	}

	today := DateKey(time.Now())
	if streak.LastLoggedDate == today {
		return nil
	}
	yesterday := DateKey(time.Now().AddDate(0, 0, -1))
	if streak.LastLoggedDate == yesterday {
		streak.Current++
	} else {
		streak.Current = 1
	}
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}
	streak.LastLoggedDate = today

	if err := c.store.SetSlotFrom(SlotStreakData, streak); err != nil {
		return err
	}
	c.notifyFrom(ctx, RecordStreakData, streak)
	return nil
}

// notify routes a changed record through the session bridge, if a user
// is signed in. Push failures never fail the local mutation; the status
// tracker carries them to the UI.
func (c *Client) notify(ctx context.Context, t RecordType, payload json.RawMessage) {
	c.mu.Lock()
	bridge := c.bridge
	c.mu.Unlock()

	if bridge == nil {
		return
	}
	if err := bridge.RecordChanged(ctx, t, payload); err != nil {
		c.debug.LogError("push "+string(t), err)
	}
}

func (c *Client) notifyFrom(ctx context.Context, t RecordType, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.debug.LogError("encode "+string(t), err)
		return
	}
	c.notify(ctx, t, payload)
}
