package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "state", FileName))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func resolution(n int, source alert.Source) alert.Resolution {
	return alert.Resolution{
		SessionID: fmt.Sprintf("session-%d", n),
		Title:     "Deploy",
		Message:   "Proceed?",
		Index:     n % 2,
		Button:    []string{"Cancel", "Deploy"}[n%2],
		Source:    source,
		At:        time.Date(2026, 1, 2, 3, 4, n, 0, time.UTC),
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, resolution(1, alert.SourceTap)))
	require.NoError(t, s.Record(ctx, resolution(2, alert.SourceTimeout)))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	newest := entries[0]
	assert.Equal(t, "session-2", newest.SessionID)
	assert.Equal(t, 0, newest.Index)
	assert.Equal(t, "Cancel", newest.Button)
	assert.Equal(t, alert.SourceTimeout, newest.Source)
	assert.True(t, newest.At.Equal(time.Date(2026, 1, 2, 3, 4, 2, 0, time.UTC)))
	assert.Equal(t, "session-1", entries[1].SessionID)
}

func TestRecordIgnoresDuplicateSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := resolution(1, alert.SourceTap)
	require.NoError(t, s.Record(ctx, first))
	dup := first
	dup.Index = 0
	require.NoError(t, s.Record(ctx, dup))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Index)
}

func TestRecordRequiresSessionID(t *testing.T) {
	s := newTestStore(t)
	require.Error(t, s.Record(context.Background(), alert.Resolution{Source: alert.SourceTap}))
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Record(ctx, resolution(i, alert.SourceTap)))
	}

	entries, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "session-5", entries[0].SessionID)
	assert.Equal(t, "session-4", entries[1].SessionID)

	_, err = s.List(ctx, -1)
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestPruneKeepsNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Record(ctx, resolution(i, alert.SourceTap)))
	}

	removed, err := s.Prune(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "session-3", entries[2].SessionID)

	_, err = s.Prune(ctx, -1)
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), resolution(1, alert.SourceTap)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
