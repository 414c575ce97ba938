package archive_test

import (
	"testing"
	"time"

	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *archive.Store {
	t.Helper()

	store, err := archive.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_PutList(t *testing.T) {
	store := openStore(t)

	for i, tn := range []tone.Tone{tone.Casual, tone.Friendly, tone.Casual} {
		_, err := store.Put(archive.Entry{
			Topic:       "topic",
			Tone:        tn,
			Content:     "content",
			WordCount:   i + 1,
			GeneratedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		entries, err := store.List(0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, 3, entries[0].WordCount)
		assert.Equal(t, 1, entries[2].WordCount)
		for _, e := range entries {
			assert.NotEmpty(t, e.ID)
		}
	})

	t.Run("limit", func(t *testing.T) {
		entries, err := store.List(2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 3, entries[0].WordCount)
	})

	t.Run("tone filter", func(t *testing.T) {
		entries, err := store.List(0, tone.Friendly)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, tone.Friendly, entries[0].Tone)
	})

	t.Run("limit counts matching entries only", func(t *testing.T) {
		entries, err := store.List(1, tone.Casual)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 3, entries[0].WordCount)

		entries, err = store.List(5, tone.Casual)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[1].WordCount)
	})
}

func TestStore_Get(t *testing.T) {
	store := openStore(t)

	stored, err := store.Put(archive.Entry{Topic: "Go", GeneratedAt: base})
	require.NoError(t, err)

	for i := range 50 {
		_, err := store.Put(archive.Entry{Topic: "filler", GeneratedAt: base.Add(time.Duration(i+1) * time.Second)})
		require.NoError(t, err)
	}

	got, err := store.Get(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Topic)
	assert.Equal(t, stored.ID, got.ID)

	_, err = store.Get("missing")
	require.ErrorIs(t, err, archive.ErrNotFound)
}

func TestStore_OnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := archive.Open(dir)
	require.NoError(t, err)
	_, err = store.Put(archive.Entry{Topic: "persisted", GeneratedAt: base})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = archive.Open(dir)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted", entries[0].Topic)

	got, err := store.Get(entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Topic)
}

func TestRecorder(t *testing.T) {
	store := openStore(t)
	rec := archive.NewRecorder(store, nil)

	completed := session.Event{
		SessionID: "s1",
		Kind:      session.EventGenerationCompleted,
		Snapshot: session.Snapshot{
			ID:     "s1",
			Status: session.StatusReady,
			Artifact: &session.Artifact{
				Topic:       "Go",
				Tone:        tone.Persuasive,
				Content:     "Go is great",
				WordCount:   3,
				GeneratedAt: base,
			},
		},
	}

	t.Run("ignores other events", func(t *testing.T) {
		_, ok := rec.Record(session.Event{Kind: session.EventGenerationStarted})
		assert.False(t, ok)
	})

	t.Run("archives completions only", func(t *testing.T) {
		for _, ev := range []session.Event{{Kind: session.EventReset}, completed} {
			rec.Record(ev)
		}

		entries, err := store.List(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "s1", entries[0].SessionID)
		assert.Equal(t, tone.Persuasive, entries[0].Tone)
		assert.Equal(t, "Go is great", entries[0].Content)
	})
}
