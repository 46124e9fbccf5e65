package project

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardsmith/internal/blob"
	"cardsmith/internal/content"
	"cardsmith/internal/export"
	"cardsmith/internal/store"
)

func newTestProject(t *testing.T) (*Project, *blob.Store) {
	t.Helper()
	blobs, err := blob.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	t.Cleanup(func() { blobs.Close() })

	// Synchronous debounce so background tasks run inline.
	proj := New(blobs, WithSettings(content.Settings{
		ExportTargetID:   "default",
		DownloadFileName: "swipeforfuture.ces",
		SaveDelay:        0,
		ExportDelay:      0,
	}), WithLogf(t.Logf))
	t.Cleanup(proj.Close)
	return proj, blobs
}

// =============================================================================
// Load / save
// =============================================================================

func TestProject_LoadContentEmptyDatabase(t *testing.T) {
	proj, _ := newTestProject(t)
	require.NoError(t, proj.LoadContent(context.Background()))

	// No documents yet: parameters and actions come from the built-in
	// defaults, everything else stays empty.
	assert.Equal(t, 0, proj.Cards.Len())
	assert.Equal(t, 0, proj.Events.Len())
	assert.Equal(t, 0, proj.Images.Len())
	assert.Equal(t, 5, proj.Parameters.Len())
	assert.Equal(t, 2, proj.Actions.Len())
	assert.Equal(t, content.DefaultSettings(), proj.Settings())
}

func TestProject_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs, err := blob.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	defer blobs.Close()

	proj := New(blobs)
	created := proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})
	proj.Events.Create(content.EventDescriptor{Name: "Dry Season", Weight: 1})
	proj.Images.Create(content.ImageDescriptor{Name: "well", Src: "well.jpg"})
	require.NoError(t, proj.SaveContent(ctx))
	proj.Close()

	reloaded := New(blobs)
	defer reloaded.Close()
	require.NoError(t, reloaded.LoadContent(ctx))

	assert.Equal(t, 1, reloaded.Cards.Len())
	got, ok := reloaded.Cards.Read(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Drought", got.Name)
	assert.Equal(t, 1, reloaded.Events.Len())
	assert.Equal(t, 1, reloaded.Images.Len())
}

func TestProject_LoadContentFailSoftOnCorruptDocument(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)

	_, err := blobs.Put(ctx, blob.KeyCards, []byte("{corrupt"))
	require.NoError(t, err)
	_, err = blobs.Put(ctx, blob.KeyParameters, []byte("not even json"))
	require.NoError(t, err)
	_, err = blobs.Put(ctx, blob.KeySettings, []byte("[]"))
	require.NoError(t, err)

	require.NoError(t, proj.LoadContent(ctx))

	assert.Equal(t, 0, proj.Cards.Len())
	// Corrupt parameters fall back to the built-in set.
	assert.Equal(t, 5, proj.Parameters.Len())
	assert.Equal(t, content.DefaultSettings(), proj.Settings())
}

func TestProject_LoadContentRestoresSettings(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)

	saved := content.Settings{ExportTargetID: "staging", DownloadFileName: "x.ces", SaveDelay: 10, ExportDelay: 20}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	_, err = blobs.Put(ctx, blob.KeySettings, data)
	require.NoError(t, err)

	require.NoError(t, proj.LoadContent(ctx))
	assert.Equal(t, saved, proj.Settings())
}

func TestProject_LoadContentSuppressesTriggers(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)

	// Loading must not schedule saves or exports: with synchronous debounce
	// an unsuppressed trigger during LoadContent would write documents.
	require.NoError(t, proj.LoadContent(ctx))

	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

// =============================================================================
// Autosave / export wiring
// =============================================================================

func TestProject_CardChangeSchedulesSaveAndExport(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)
	require.NoError(t, proj.LoadContent(ctx))

	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	// Synchronous debounce: both documents exist immediately.
	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, blob.KeyCards)
	assert.Contains(t, keys, blob.GameWorldKey("default"))
}

func TestProject_ParameterChangeSavesWithoutExport(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)
	require.NoError(t, proj.LoadContent(ctx))

	proj.Parameters.Create(content.ParameterDescriptor{Name: "morale", Type: content.ParameterValue})

	keys, err := blobs.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, blob.KeyParameters)
	assert.NotContains(t, keys, blob.GameWorldKey("default"))
}

func TestProject_DebouncedFlow(t *testing.T) {
	ctx := context.Background()
	blobs, err := blob.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	defer blobs.Close()

	proj := New(blobs, WithSettings(content.Settings{
		ExportTargetID: "default", SaveDelay: 10, ExportDelay: 10,
	}))
	defer proj.Close()

	for i := 0; i < 5; i++ {
		proj.Cards.Create(content.CardDescriptor{Name: "burst", Type: content.CardAction})
	}

	require.Eventually(t, func() bool {
		keys, err := blobs.Keys(ctx)
		require.NoError(t, err)
		for _, k := range keys {
			if k == blob.GameWorldKey("default") {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	data, found, err := blobs.Get(ctx, blob.KeyCards)
	require.NoError(t, err)
	require.True(t, found)
	var cards []content.CardDescriptor
	require.NoError(t, json.Unmarshal(data, &cards))
	assert.Len(t, cards, 5)
}

// =============================================================================
// Export
// =============================================================================

func TestProject_ExportNowWritesDocument(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)

	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	world, skipped, err := proj.ExportNow(ctx)
	require.NoError(t, err)
	require.Len(t, world.Cards, 1)

	data, found, err := blobs.Get(ctx, blob.GameWorldKey("default"))
	require.NoError(t, err)
	require.True(t, found)

	var stored export.GameWorld
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, world, stored)
	_ = skipped
}

func TestProject_ExportNowSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	blobs, err := blob.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	defer blobs.Close()

	// Non-zero delays so store subscriptions do not export inline and
	// interleave with the explicit calls below.
	proj := New(blobs, WithSettings(content.Settings{
		ExportTargetID: "default", SaveDelay: 60000, ExportDelay: 60000,
	}))
	defer proj.Close()

	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	_, skipped, err := proj.ExportNow(ctx)
	require.NoError(t, err)
	assert.False(t, skipped)

	_, skipped, err = proj.ExportNow(ctx)
	require.NoError(t, err)
	assert.True(t, skipped)

	// A content change invalidates the fingerprint.
	proj.Cards.Create(content.CardDescriptor{Name: "Flood", Type: content.CardAction})
	_, skipped, err = proj.ExportNow(ctx)
	require.NoError(t, err)
	assert.False(t, skipped)
}

func TestProject_TargetChangeExportsToNewKey(t *testing.T) {
	ctx := context.Background()
	blobs, err := blob.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	defer blobs.Close()

	proj := New(blobs, WithSettings(content.Settings{
		ExportTargetID: "default", SaveDelay: 60000, ExportDelay: 60000,
	}))
	defer proj.Close()

	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	_, skipped, err := proj.ExportNow(ctx)
	require.NoError(t, err)
	require.False(t, skipped)

	// Unchanged content, but a brand-new target: the new target's document
	// does not exist yet, so the write must not be skipped.
	proj.UpdateSettings(content.Settings{ExportTargetID: "staging", SaveDelay: 60000, ExportDelay: 60000})
	_, skipped, err = proj.ExportNow(ctx)
	require.NoError(t, err)
	assert.False(t, skipped)

	_, found, err := blobs.Get(ctx, blob.GameWorldKey("staging"))
	require.NoError(t, err)
	assert.True(t, found)

	// Switching back to a target that already holds this exact document
	// skips again.
	proj.UpdateSettings(content.Settings{ExportTargetID: "default", SaveDelay: 60000, ExportDelay: 60000})
	_, skipped, err = proj.ExportNow(ctx)
	require.NoError(t, err)
	assert.True(t, skipped)
}

func TestProject_ExportTargetSelectsKey(t *testing.T) {
	ctx := context.Background()
	proj, blobs := newTestProject(t)

	proj.UpdateSettings(content.Settings{ExportTargetID: "staging"})
	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	_, _, err := proj.ExportNow(ctx)
	require.NoError(t, err)

	_, found, err := blobs.Get(ctx, blob.GameWorldKey("staging"))
	require.NoError(t, err)
	assert.True(t, found)
}

// =============================================================================
// Bundles and references
// =============================================================================

func TestProject_LoadBundle(t *testing.T) {
	proj, _ := newTestProject(t)

	settings := content.Settings{ExportTargetID: "imported", DownloadFileName: "x.ces"}
	proj.LoadBundle(content.ContentBundle{
		Cards:    []content.CardDescriptor{{ID: "card1", Name: "A", Type: content.CardAction}},
		Settings: &settings,
	})

	assert.Equal(t, 1, proj.Cards.Len())
	// Bundles without parameters fall back to the built-in set.
	assert.Equal(t, 5, proj.Parameters.Len())
	assert.Equal(t, 2, proj.Actions.Len())
	assert.Equal(t, "imported", proj.Settings().ExportTargetID)
}

func TestProject_SnapshotRoundTripsThroughLoadBundle(t *testing.T) {
	proj, _ := newTestProject(t)
	require.NoError(t, proj.LoadContent(context.Background()))
	proj.Cards.Create(content.CardDescriptor{Name: "Drought", Type: content.CardAction})

	snapshot := proj.Snapshot()

	other, _ := newTestProject(t)
	other.LoadBundle(snapshot)

	assert.Equal(t, snapshot, other.Snapshot())
}

func TestProject_SystemParametersProtected(t *testing.T) {
	proj, _ := newTestProject(t)
	require.NoError(t, proj.LoadContent(context.Background()))

	err := proj.Parameters.Delete(content.ParamMoney)
	assert.True(t, store.IsProtected(err))

	require.NoError(t, proj.Parameters.Delete("introduction-complete"))
}

func TestProject_DanglingReferences(t *testing.T) {
	proj, _ := newTestProject(t)

	eventCard := proj.Cards.Create(content.CardDescriptor{Name: "Messenger", Type: content.CardEvent})
	proj.Cards.Create(content.CardDescriptor{
		Name: "Drought", Type: content.CardAction, ImageID: "gone",
	})
	proj.Cards.Create(content.CardDescriptor{
		Name: "Chain", Type: content.CardEvent,
		Actions: []content.ActionData{
			{ActionID: content.ActionLeft, NextCardID: eventCard.ID},
			{ActionID: content.ActionRight, NextCardID: "missing"},
		},
	})
	proj.Events.Create(content.EventDescriptor{Name: "ok", InitialCardID: eventCard.ID})
	proj.Events.Create(content.EventDescriptor{Name: "broken", InitialCardID: "missing"})

	refs := proj.DanglingReferences()
	require.Len(t, refs, 3)

	fields := make([]string, 0, len(refs))
	for _, r := range refs {
		fields = append(fields, r.Field)
	}
	assert.Contains(t, fields, "imageId")
	assert.Contains(t, fields, "actions[right].nextCardId")
	assert.Contains(t, fields, "initialCardId")
}
