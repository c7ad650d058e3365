package hawkfuel

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/store/migrations"
	isync "github.com/HlnefzgerSchoolAct/HawkFuel/internal/sync"
	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Metadata keys used by the store.
const (
	metaLastSynced         = "last_synced"
	metaOnboardingComplete = "onboarding_complete"
)

// Store manages the local SQLite database: the flat key-value slots the
// UI reads and writes synchronously, the recipe and template collections,
// and sync bookkeeping metadata.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

var _ isync.LocalStore = (*Store)(nil)

// NewStore opens or creates the local store.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// GetSlot reads one named slot. The second return value reports whether
// the slot exists; absent slots are not an error.
func (s *Store) GetSlot(name string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get slot %s: %w", name, err)
	}
	return json.RawMessage(value), true, nil
}

// SetSlot replaces one named slot wholly.
func (s *Store) SetSlot(name string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, name, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: set slot %s: %w", name, err)
	}
	return nil
}

// GetSlotInto unmarshals a slot into v. Absent slots leave v untouched
// and report false.
func (s *Store) GetSlotInto(name string, v any) (bool, error) {
	raw, ok, err := s.GetSlot(name)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("store: decode slot %s: %w", name, err)
	}
	return true, nil
}

// SetSlotFrom marshals v into a slot.
func (s *Store) SetSlotFrom(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode slot %s: %w", name, err)
	}
	return s.SetSlot(name, raw)
}

// GetMetadata reads a metadata value. Returns "" when absent.
func (s *Store) GetMetadata(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: get metadata %s: %w", key, err)
	}
	return value, nil
}

// SetMetadata writes a metadata value.
func (s *Store) SetMetadata(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("store: set metadata %s: %w", key, err)
	}
	return nil
}

// LastSynced returns the time of the last successful bulk sync, or the
// zero time if no sync has completed.
func (s *Store) LastSynced() (time.Time, error) {
	v, err := s.GetMetadata(metaLastSynced)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse last_synced: %w", err)
	}
	return t, nil
}

// SetLastSynced records the time of a successful bulk sync.
func (s *Store) SetLastSynced(t time.Time) error {
	return s.SetMetadata(metaLastSynced, t.UTC().Format(time.RFC3339))
}

// OnboardingComplete reports whether onboarding has been completed.
func (s *Store) OnboardingComplete() (bool, error) {
	v, err := s.GetMetadata(metaOnboardingComplete)
	return v == "true", err
}

// MarkOnboardingComplete sets the onboarding flag. There is no way to
// unset it; a completed onboarding is never un-marked.
func (s *Store) MarkOnboardingComplete() error {
	return s.SetMetadata(metaOnboardingComplete, "true")
}

// ListRecipes returns all recipes ordered by name.
func (s *Store) ListRecipes() ([]Recipe, error) {
	rows, err := s.listCollection("recipes")
	if err != nil {
		return nil, err
	}
	recipes := make([]Recipe, 0, len(rows))
	for _, data := range rows {
		var r Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("store: decode recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// UpsertRecipe inserts or replaces a recipe by id. Recipes without an id
// are assigned a generated one. Returns the stored recipe.
func (s *Store) UpsertRecipe(r Recipe) (Recipe, error) {
	if r.Name == "" {
		return Recipe{}, ErrEmptyName
	}
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	data, err := json.Marshal(r)
	if err != nil {
		return Recipe{}, fmt.Errorf("store: encode recipe: %w", err)
	}
	if err := s.upsertCollection("recipes", r.ID, r.Name, data, r.CreatedAt, r.UpdatedAt); err != nil {
		return Recipe{}, err
	}
	return r, nil
}

// DeleteRecipe removes a recipe. Deleting a missing recipe is not an error.
func (s *Store) DeleteRecipe(id string) error {
	return s.deleteCollection("recipes", id)
}

// ListTemplates returns all meal templates ordered by name.
func (s *Store) ListTemplates() ([]MealTemplate, error) {
	rows, err := s.listCollection("templates")
	if err != nil {
		return nil, err
	}
	templates := make([]MealTemplate, 0, len(rows))
	for _, data := range rows {
		var t MealTemplate
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("store: decode template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// UpsertTemplate inserts or replaces a meal template by id. Templates
// without an id are assigned a generated one. Returns the stored template.
func (s *Store) UpsertTemplate(t MealTemplate) (MealTemplate, error) {
	if t.Name == "" {
		return MealTemplate{}, ErrEmptyName
	}
	if t.ID == "" {
		t.ID = ulid.Make().String()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	data, err := json.Marshal(t)
	if err != nil {
		return MealTemplate{}, fmt.Errorf("store: encode template: %w", err)
	}
	if err := s.upsertCollection("templates", t.ID, t.Name, data, t.CreatedAt, t.UpdatedAt); err != nil {
		return MealTemplate{}, err
	}
	return t, nil
}

// DeleteTemplate removes a template. Deleting a missing template is not
// an error.
func (s *Store) DeleteTemplate(id string) error {
	return s.deleteCollection("templates", id)
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) listCollection(table string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(fmt.Sprintf(`SELECT data FROM %s ORDER BY name, id`, table))
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", table, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", table, err)
		}
		out = append(out, json.RawMessage(data))
	}
	return out, rows.Err()
}

func (s *Store) upsertCollection(table, id, name string, data []byte, createdAt, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, name, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, table),
		id, name, string(data),
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: upsert %s: %w", table, err)
	}
	return nil
}

func (s *Store) deleteCollection(table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id); err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	return nil
}
