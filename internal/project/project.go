// Package project is the composition root: it owns one store per entity
// kind plus the editor settings, wires change notifications to the debounced
// autosave and export tasks, and moves content between the stores and the
// blob persistence layer.
//
// Persistence is fire-and-forget from the editing flow's perspective: a
// failed background write is logged and not retried; the next change
// schedules a fresh attempt. Loading is fail-soft: a missing or corrupt
// document falls back to built-in defaults and never aborts startup.
package project

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cardsmith/internal/blob"
	"cardsmith/internal/content"
	"cardsmith/internal/export"
	"cardsmith/internal/store"
)

// Project bundles the per-entity stores and their persistence wiring.
type Project struct {
	Cards      *store.Store[content.CardDescriptor]
	Events     *store.Store[content.EventDescriptor]
	Images     *store.Store[content.ImageDescriptor]
	Parameters *store.Store[content.ParameterDescriptor]
	Actions    *store.Store[content.ActionDescriptor]

	blobs *blob.Store
	logf  func(format string, args ...any)

	mu               sync.Mutex
	settings         content.Settings
	lastFingerprints map[string]string // by game-world document key
	loading          bool

	saveDebounce   *Debouncer
	exportDebounce *Debouncer
	unsubscribes   []func()
}

// Option configures a Project at construction.
type Option func(*Project)

// WithLogf sets the diagnostic sink for background write failures.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Project) { p.logf = logf }
}

// WithSettings overrides the initial settings (normally loaded from the
// settings document afterwards).
func WithSettings(s content.Settings) Option {
	return func(p *Project) { p.settings = s }
}

// New creates a project over a blob store and wires the debounced tasks:
// card/event/image changes schedule an export, any change schedules a
// content save.
func New(blobs *blob.Store, opts ...Option) *Project {
	p := &Project{
		Cards:  store.New[content.CardDescriptor]("card"),
		Events: store.New[content.EventDescriptor]("event"),
		Images: store.New[content.ImageDescriptor]("image"),
		Parameters: store.New[content.ParameterDescriptor]("param",
			store.WithProtection(func(d content.ParameterDescriptor) bool {
				return d.SystemParameter
			})),
		Actions:          store.New[content.ActionDescriptor]("action"),
		blobs:            blobs,
		logf:             func(string, ...any) {},
		settings:         content.DefaultSettings(),
		lastFingerprints: make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.saveDebounce = NewDebouncer(p.delay(p.settings.SaveDelay), p.backgroundSave)
	p.exportDebounce = NewDebouncer(p.delay(p.settings.ExportDelay), p.backgroundExport)

	exportAndSave := func() {
		if p.isLoading() {
			return
		}
		p.exportDebounce.Trigger()
		p.saveDebounce.Trigger()
	}
	saveOnly := func() {
		if p.isLoading() {
			return
		}
		p.saveDebounce.Trigger()
	}

	p.unsubscribes = append(p.unsubscribes,
		p.Cards.Subscribe(exportAndSave),
		p.Events.Subscribe(exportAndSave),
		p.Images.Subscribe(exportAndSave),
		p.Parameters.Subscribe(saveOnly),
		p.Actions.Subscribe(saveOnly),
	)
	return p
}

// Settings returns a copy of the current settings.
func (p *Project) Settings() content.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// UpdateSettings replaces the settings, adjusts the debounce windows, and
// schedules a save.
func (p *Project) UpdateSettings(s content.Settings) {
	p.mu.Lock()
	p.settings = s
	p.mu.Unlock()

	p.saveDebounce.SetDelay(p.delay(s.SaveDelay))
	p.exportDebounce.SetDelay(p.delay(s.ExportDelay))
	p.saveDebounce.Trigger()
}

// LoadContent reads every persisted document into the stores. Missing or
// corrupt documents fall back: parameters and actions to the built-in
// defaults, other collections to empty, settings to DefaultSettings.
// Returns an error only when the blob store itself fails.
func (p *Project) LoadContent(ctx context.Context) error {
	p.setLoading(true)
	defer p.setLoading(false)

	images, err := loadCollection[content.ImageDescriptor](ctx, p, blob.KeyImages, nil)
	if err != nil {
		return err
	}
	p.Images.Load(images)

	params, err := loadCollection(ctx, p, blob.KeyParameters, content.DefaultParameters())
	if err != nil {
		return err
	}
	p.Parameters.Load(params)

	cards, err := loadCollection[content.CardDescriptor](ctx, p, blob.KeyCards, nil)
	if err != nil {
		return err
	}
	p.Cards.Load(cards)

	events, err := loadCollection[content.EventDescriptor](ctx, p, blob.KeyEvents, nil)
	if err != nil {
		return err
	}
	p.Events.Load(events)

	p.Actions.Load(content.DefaultActions())

	settings := content.DefaultSettings()
	if data, found, err := p.blobs.Get(ctx, blob.KeySettings); err != nil {
		return err
	} else if found {
		if err := json.Unmarshal(data, &settings); err != nil {
			p.logf("settings document unreadable, using defaults: %v", err)
			settings = content.DefaultSettings()
		}
	}
	p.mu.Lock()
	p.settings = settings
	p.mu.Unlock()
	p.saveDebounce.SetDelay(p.delay(settings.SaveDelay))
	p.exportDebounce.SetDelay(p.delay(settings.ExportDelay))

	return nil
}

// loadCollection reads one entity-array document. A missing or unparseable
// document yields the fallback (fail-soft).
func loadCollection[T store.Entity[T]](ctx context.Context, p *Project, key string, fallback []T) ([]T, error) {
	data, found, err := p.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return fallback, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		p.logf("document %q unreadable, using defaults: %v", key, err)
		return fallback, nil
	}
	return items, nil
}

// SaveContent writes every collection and the settings to the blob store.
func (p *Project) SaveContent(ctx context.Context) error {
	writes := []struct {
		key   string
		value any
	}{
		{blob.KeyImages, p.Images.Items()},
		{blob.KeyParameters, p.Parameters.Items()},
		{blob.KeyCards, p.Cards.Items()},
		{blob.KeyEvents, p.Events.Items()},
		{blob.KeySettings, p.Settings()},
	}
	for _, w := range writes {
		data, err := json.Marshal(w.value)
		if err != nil {
			return err
		}
		if _, err := p.blobs.Put(ctx, w.key, data); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot bundles the current content set for file export.
func (p *Project) Snapshot() content.ContentBundle {
	settings := p.Settings()
	return content.ContentBundle{
		Images:     p.Images.Items(),
		Parameters: p.Parameters.Items(),
		Cards:      p.Cards.Items(),
		Events:     p.Events.Items(),
		Settings:   &settings,
	}.Normalize()
}

// LoadBundle bulk-replaces the content set from an imported bundle.
// Collections absent from the bundle come out empty, except parameters which
// fall back to the built-in set (the runtime depends on them).
func (p *Project) LoadBundle(bundle content.ContentBundle) {
	bundle = bundle.Normalize()
	p.Images.Load(bundle.Images)
	if len(bundle.Parameters) == 0 {
		p.Parameters.Load(content.DefaultParameters())
	} else {
		p.Parameters.Load(bundle.Parameters)
	}
	p.Cards.Load(bundle.Cards)
	p.Events.Load(bundle.Events)
	if p.Actions.Len() == 0 {
		p.Actions.Load(content.DefaultActions())
	}
	if bundle.Settings != nil {
		p.UpdateSettings(*bundle.Settings)
	}
}

// ExportNow runs the export pipeline and writes the game-world document
// under the current export target. When the document fingerprint matches the
// previous export to the same target key, the write is skipped and skipped is
// true. Fingerprints are tracked per key: changing the export target never
// skips the first write to the new target's document.
func (p *Project) ExportNow(ctx context.Context) (world export.GameWorld, skipped bool, err error) {
	world = export.Export(export.Input{
		Cards:  p.Cards.Items(),
		Events: p.Events.Items(),
		Images: p.Images.Items(),
	})

	fingerprint, err := export.Fingerprint(world)
	if err != nil {
		return export.GameWorld{}, false, err
	}

	p.mu.Lock()
	key := blob.GameWorldKey(p.settings.ExportTargetID)
	unchanged := fingerprint == p.lastFingerprints[key]
	p.mu.Unlock()

	if unchanged {
		return world, true, nil
	}

	data, err := json.Marshal(world)
	if err != nil {
		return export.GameWorld{}, false, err
	}
	if _, err := p.blobs.Put(ctx, key, data); err != nil {
		return export.GameWorld{}, false, err
	}

	p.mu.Lock()
	p.lastFingerprints[key] = fingerprint
	p.mu.Unlock()
	return world, false, nil
}

// Flush runs any pending debounced save/export immediately.
func (p *Project) Flush() {
	p.exportDebounce.Flush()
	p.saveDebounce.Flush()
}

// Close cancels pending background tasks and detaches store subscriptions.
// It does not close the blob store; the caller owns that.
func (p *Project) Close() {
	p.saveDebounce.Stop()
	p.exportDebounce.Stop()
	for _, unsub := range p.unsubscribes {
		unsub()
	}
	p.unsubscribes = nil
}

// backgroundSave is the debounced autosave task. Failures are logged, never
// retried; the next change schedules a fresh save.
func (p *Project) backgroundSave() {
	if err := p.SaveContent(context.Background()); err != nil {
		p.logf("background save failed: %v", err)
	}
}

// backgroundExport is the debounced export task.
func (p *Project) backgroundExport() {
	if _, _, err := p.ExportNow(context.Background()); err != nil {
		p.logf("background export failed: %v", err)
	}
}

func (p *Project) delay(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func (p *Project) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func (p *Project) isLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}
