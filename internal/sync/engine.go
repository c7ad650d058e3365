// Package sync implements the reconciliation engine between the local
// store and the cloud document store.
//
// The local store is the source of truth for current application state;
// the cloud mirror is eventually consistent, written asynchronously and
// read only at sign-in or explicit retry. Conflicts resolve as last
// writer wins at whole-document granularity. If two devices sign in to a
// brand-new account near-simultaneously, both may observe no remote
// profile and both upload; the second batch overwrites the first. That
// race is a known, accepted gap.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

// StatusReporter observes sync engine outcomes for display.
// Implementations must tolerate calls from any goroutine.
type StatusReporter interface {
	// SyncStarted marks the beginning of a sync operation.
	SyncStarted()

	// SyncCompleted marks a successful sync finishing at the given time.
	SyncCompleted(at time.Time)

	// SyncFailed marks a failed sync.
	SyncFailed(err error)
}

// LocalStore defines the local persistence operations the engine needs.
// Implemented by the root store.
type LocalStore interface {
	GetSlot(name string) (json.RawMessage, bool, error)
	SetSlot(name string, value json.RawMessage) error
	OnboardingComplete() (bool, error)
	MarkOnboardingComplete() error
	SetLastSynced(t time.Time) error
	ListRecipes() ([]record.Recipe, error)
	UpsertRecipe(r record.Recipe) (record.Recipe, error)
	ListTemplates() ([]record.MealTemplate, error)
	UpsertTemplate(t record.MealTemplate) (record.MealTemplate, error)
}

// profileSlots are the five local slots merged into the composite remote
// profile document.
var profileSlots = []string{
	record.SlotUserProfile,
	record.SlotDailyTarget,
	record.SlotMacroGoals,
	record.SlotMicronutrientGoals,
	record.SlotPreferences,
}

const onboardingField = "onboardingComplete"

// Engine performs the per-record sync operations and the sign-in
// reconciliation decision between the local store and the cloud mirror.
//
// A nil cloud store means cloud sync is not configured; every operation
// then returns immediately without error (offline-only mode).
type Engine struct {
	local  LocalStore
	cloud  CloudStore
	status StatusReporter
	log    *DebugLogger
	now    func() time.Time
}

// NewEngine creates a sync engine. cloud may be nil for offline-only mode.
func NewEngine(local LocalStore, cloud CloudStore) *Engine {
	return &Engine{local: local, cloud: cloud, now: time.Now}
}

// WithStatusReporter sets the observer for sync outcomes.
func (e *Engine) WithStatusReporter(r StatusReporter) *Engine {
	e.status = r
	return e
}

// WithLogger sets the debug logger.
func (e *Engine) WithLogger(l *DebugLogger) *Engine {
	e.log = l
	return e
}

// WithClock overrides the engine's clock (for testing date-keyed writes).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Offline reports whether the engine has no cloud store configured.
func (e *Engine) Offline() bool { return e.cloud == nil }

// SyncOnSignIn runs the reconciliation decision for a fresh sign-in:
//
//   - cloud unconfigured: no-op
//   - remote profile exists: download everything, overwriting local slots
//   - no remote profile and non-trivial local data: upload everything
//     as a first-sign-in migration
//   - otherwise: fresh account, nothing to sync
//
// Download and probe failures are logged, reported to the status
// observer, and absorbed; failing the whole sign-in flow over a sync
// problem would be worse than a silently incomplete sync. Upload
// failures propagate so a retry path can surface them.
func (e *Engine) SyncOnSignIn(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}

	_, err := e.cloud.GetDocument(ctx, DocPath(userID, record.Profile))
	switch {
	case err == nil:
		return e.DownloadCloudToLocal(ctx, userID)

	case errors.Is(err, ErrNotFound):
		trivial, terr := e.localDataTrivial()
		if terr != nil {
			e.log.LogError("sign_in", terr)
			return nil
		}
		if trivial {
			return nil
		}
		return e.UploadLocalToCloud(ctx, userID)

	default:
		e.log.LogError("sign_in_probe", err)
		e.reportFailed(err)
		return nil
	}
}

// UploadLocalToCloud gathers every slot-backed record type's current
// local value and commits all of the corresponding remote documents in
// one atomic batch. Batch failures propagate to the caller for manual
// retry. Recipes and templates follow as a separate best-effort step
// whose failures are logged, never raised; the last-synced timestamp and
// sync-complete notification land regardless of that tail.
func (e *Engine) UploadLocalToCloud(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	e.reportStarted()

	writes, err := e.collectWrites(userID)
	if err != nil {
		e.reportFailed(err)
		return err
	}
	if err := e.cloud.CommitBatch(ctx, writes); err != nil {
		e.reportFailed(err)
		return fmt.Errorf("upload: %w", err)
	}

	e.finishBulk()

	if err := e.SyncRecipesToCloud(ctx, userID); err != nil {
		e.log.LogError("sync_recipes", err)
	}
	if err := e.SyncTemplatesToCloud(ctx, userID); err != nil {
		e.log.LogError("sync_templates", err)
	}
	return nil
}

// DownloadCloudToLocal fetches every record type's remote document and
// overwrites the corresponding local slots. Recipes and templates merge
// by id into the local collections instead of replacing them, preserving
// anything created before sign-in. An error anywhere aborts the remaining
// fetches and is logged, never returned: this runs inside sign-in flows.
func (e *Engine) DownloadCloudToLocal(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	e.reportStarted()

	if err := e.download(ctx, userID); err != nil {
		e.log.LogError("download", err)
		e.reportFailed(err)
		return nil
	}

	e.finishBulk()
	return nil
}

// SyncToCloud pushes one changed record to the cloud, following the
// shape rules per record type. The date-keyed food log is read-modify-
// write: the existing document is fetched and only today's key replaced,
// so other days are never clobbered. Unknown record type tags are a
// silent no-op; local state not yet wired into the catalog must never
// break a save. Transport failures propagate so the caller can surface a
// sync-error status.
func (e *Engine) SyncToCloud(ctx context.Context, userID string, t record.Type, payload json.RawMessage) error {
	if e.cloud == nil {
		return nil
	}

	entry, ok := Lookup(t)
	if !ok {
		e.log.LogSync("push", "ignoring unknown record type "+string(t))
		return nil
	}

	var doc Document
	switch {
	case t == record.Profile:
		// The composite profile is always rebuilt from the local slots;
		// the payload of whichever slot changed is not enough on its own.
		var err error
		doc, err = e.buildProfileDoc()
		if err != nil {
			return err
		}

	case entry.Shape == ShapeDateKeyed:
		existing, err := e.cloud.GetDocument(ctx, DocPath(userID, t))
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			existing = Document{}
		}
		doc, err = e.buildFoodLogDoc(existing, payload)
		if err != nil {
			return err
		}

	case entry.Shape == ShapeCollection:
		if t == record.Recipes {
			return e.SyncRecipesToCloud(ctx, userID)
		}
		return e.SyncTemplatesToCloud(ctx, userID)

	case entry.Shape == ShapeList:
		items, err := e.recordValue(entry.Slot, payload)
		if err != nil {
			return err
		}
		if items == nil {
			items = []any{}
		}
		doc = Document{"items": items}

	default: // ShapeScalar
		value, err := e.recordValue(entry.Slot, payload)
		if err != nil {
			return err
		}
		doc = Document{}
		if fields, ok := value.(map[string]any); ok {
			doc = fields
		}
	}

	doc[updatedAtField] = e.timestamp()
	return e.cloud.SetDocument(ctx, DocPath(userID, t), doc)
}

// SyncRecipesToCloud pushes the whole local recipe collection as one
// list-wrapped document.
func (e *Engine) SyncRecipesToCloud(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	recipes, err := e.local.ListRecipes()
	if err != nil {
		return err
	}
	doc, err := listDocument(recipes)
	if err != nil {
		return err
	}
	doc[updatedAtField] = e.timestamp()
	return e.cloud.SetDocument(ctx, DocPath(userID, record.Recipes), doc)
}

// SyncTemplatesToCloud pushes the whole local template collection as one
// list-wrapped document.
func (e *Engine) SyncTemplatesToCloud(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	templates, err := e.local.ListTemplates()
	if err != nil {
		return err
	}
	doc, err := listDocument(templates)
	if err != nil {
		return err
	}
	doc[updatedAtField] = e.timestamp()
	return e.cloud.SetDocument(ctx, DocPath(userID, record.Templates), doc)
}

// LoadRecipesFromCloud merges the remote recipe document into the local
// collection, upserting each item by id. Items without an id get a
// generated one. A missing remote document is not an error.
func (e *Engine) LoadRecipesFromCloud(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	doc, err := e.cloud.GetDocument(ctx, DocPath(userID, record.Recipes))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return e.mergeRecipes(doc)
}

// LoadTemplatesFromCloud merges the remote template document into the
// local collection, upserting each item by id.
func (e *Engine) LoadTemplatesFromCloud(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}
	doc, err := e.cloud.GetDocument(ctx, DocPath(userID, record.Templates))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return e.mergeTemplates(doc)
}

// DeleteUserCloudData deletes every record type's remote document. Each
// deletion is attempted independently; one failure never prevents
// attempting the rest. Failures are logged, not surfaced: erasure runs
// alongside account deletion, where a partial cleanup beats a failed flow.
func (e *Engine) DeleteUserCloudData(ctx context.Context, userID string) error {
	if e.cloud == nil {
		return nil
	}

	types := record.AllTypes()
	failed := 0
	for _, t := range types {
		if err := e.cloud.DeleteDocument(ctx, DocPath(userID, t)); err != nil {
			failed++
			e.log.LogError("delete_document", err)
		}
	}
	if failed > 0 {
		e.log.LogSync("erase", fmt.Sprintf("%d of %d deletions failed", failed, len(types)))
	}
	return nil
}

// ---- upload helpers ----

func (e *Engine) collectWrites(userID string) ([]DocumentWrite, error) {
	stamp := e.timestamp()
	var writes []DocumentWrite
	for _, entry := range batchedEntries() {
		var (
			doc Document
			err error
		)
		switch {
		case entry.Type == record.Profile:
			doc, err = e.buildProfileDoc()
		case entry.Shape == ShapeDateKeyed:
			doc, err = e.buildFoodLogDoc(Document{}, nil)
		case entry.Shape == ShapeList:
			var items any
			items, err = e.slotValue(entry.Slot)
			if items == nil {
				items = []any{}
			}
			doc = Document{"items": items}
		default:
			doc, err = e.slotObject(entry.Slot)
		}
		if err != nil {
			return nil, err
		}
		doc[updatedAtField] = stamp
		writes = append(writes, DocumentWrite{Path: DocPath(userID, entry.Type), Data: doc})
	}
	return writes, nil
}

func (e *Engine) buildProfileDoc() (Document, error) {
	doc := Document{}
	for _, slot := range profileSlots {
		value, err := e.slotValue(slot)
		if err != nil {
			return nil, err
		}
		if value != nil {
			doc[slot] = value
		}
	}
	complete, err := e.local.OnboardingComplete()
	if err != nil {
		return nil, err
	}
	doc[onboardingField] = complete
	return doc, nil
}

// buildFoodLogDoc layers today's local day log (or the pushed payload)
// over the existing remote date-keyed map, leaving other days untouched.
func (e *Engine) buildFoodLogDoc(existing Document, payload json.RawMessage) (Document, error) {
	doc := make(Document, len(existing)+2)
	for k, v := range existing {
		if k == updatedAtField {
			continue
		}
		doc[k] = v
	}

	today, err := e.recordValue(record.SlotFoodLog, payload)
	if err != nil {
		return nil, err
	}
	if today != nil {
		doc[record.DateKey(e.now())] = today
	}
	return doc, nil
}

// recordValue decodes the pushed payload if one was given, otherwise
// reads the record's local slot. Returns nil when neither exists.
func (e *Engine) recordValue(slot string, payload json.RawMessage) (any, error) {
	if payload != nil {
		var value any
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, fmt.Errorf("decode payload for %s: %w", slot, err)
		}
		return value, nil
	}
	return e.slotValue(slot)
}

func (e *Engine) slotValue(slot string) (any, error) {
	raw, ok, err := e.local.GetSlot(slot)
	if err != nil || !ok {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return value, nil
}

func (e *Engine) slotObject(slot string) (Document, error) {
	value, err := e.slotValue(slot)
	if err != nil {
		return nil, err
	}
	if fields, ok := value.(map[string]any); ok {
		return fields, nil
	}
	return Document{}, nil
}

func (e *Engine) localDataTrivial() (bool, error) {
	if _, ok, err := e.local.GetSlot(record.SlotUserProfile); err != nil {
		return false, err
	} else if ok {
		return false, nil
	}

	var day record.DayLog
	raw, ok, err := e.local.GetSlot(record.SlotFoodLog)
	if err != nil || !ok {
		return true, err
	}
	if err := json.Unmarshal(raw, &day); err != nil {
		return false, fmt.Errorf("decode slot %s: %w", record.SlotFoodLog, err)
	}
	return len(day.Entries) == 0, nil
}

// ---- download helpers ----

func (e *Engine) download(ctx context.Context, userID string) error {
	for _, entry := range Entries() {
		doc, err := e.cloud.GetDocument(ctx, DocPath(userID, entry.Type))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return err
		}
		if err := e.applyDocument(entry, doc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyDocument(entry CatalogEntry, doc Document) error {
	switch {
	case entry.Type == record.Profile:
		return e.applyProfileDoc(doc)

	case entry.Shape == ShapeDateKeyed:
		// Only today's entry hydrates local state; other days exist
		// remotely as historical record only.
		day, ok := doc[record.DateKey(e.now())]
		if !ok {
			return nil
		}
		return e.setSlotValue(entry.Slot, day)

	case entry.Shape == ShapeList:
		items, ok := doc["items"]
		if !ok || items == nil {
			items = []any{}
		}
		return e.setSlotValue(entry.Slot, items)

	case entry.Shape == ShapeCollection:
		if entry.Type == record.Recipes {
			return e.mergeRecipes(doc)
		}
		return e.mergeTemplates(doc)

	default: // ShapeScalar
		trimmed := make(Document, len(doc))
		for k, v := range doc {
			if k == updatedAtField {
				continue
			}
			trimmed[k] = v
		}
		return e.setSlotValue(entry.Slot, trimmed)
	}
}

func (e *Engine) applyProfileDoc(doc Document) error {
	for _, slot := range profileSlots {
		value, ok := doc[slot]
		if !ok || value == nil {
			continue
		}
		if err := e.setSlotValue(slot, value); err != nil {
			return err
		}
	}
	// The flag only ever flips forward: a completed onboarding is never
	// un-marked by a download.
	if complete, _ := doc[onboardingField].(bool); complete {
		return e.local.MarkOnboardingComplete()
	}
	return nil
}

func (e *Engine) mergeRecipes(doc Document) error {
	var items []record.Recipe
	if err := decodeItems(doc, &items); err != nil {
		return err
	}
	for _, r := range items {
		if _, err := e.local.UpsertRecipe(r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) mergeTemplates(doc Document) error {
	var items []record.MealTemplate
	if err := decodeItems(doc, &items); err != nil {
		return err
	}
	for _, t := range items {
		if _, err := e.local.UpsertTemplate(t); err != nil {
			return err
		}
	}
	return nil
}

// ---- shared helpers ----

func (e *Engine) setSlotValue(slot string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	return e.local.SetSlot(slot, raw)
}

func (e *Engine) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

func (e *Engine) reportStarted() {
	if e.status != nil {
		e.status.SyncStarted()
	}
}

func (e *Engine) reportFailed(err error) {
	if e.status != nil {
		e.status.SyncFailed(err)
	}
}

// finishBulk records the bulk operation's completion: the last-synced
// timestamp persists to the local store and the sync-complete
// notification reaches the status observer.
func (e *Engine) finishBulk() {
	at := e.now().UTC()
	if err := e.local.SetLastSynced(at); err != nil {
		e.log.LogError("set_last_synced", err)
	}
	if e.status != nil {
		e.status.SyncCompleted(at)
	}
}

// listDocument wraps a collection in the {"items": [...]} document shape.
func listDocument(collection any) (Document, error) {
	data, err := json.Marshal(collection)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		items = []any{}
	}
	if items == nil {
		items = []any{}
	}
	return Document{"items": items}, nil
}

// decodeItems unmarshals a list-wrapped document's items into target.
func decodeItems(doc Document, target any) error {
	items, ok := doc["items"]
	if !ok || items == nil {
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}
	return nil
}
