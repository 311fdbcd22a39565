package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/internal/adapter/storage"
	"tasknest/internal/core/domain"
)

func newStore(t *testing.T) (*storage.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	return storage.NewFileStore(path), path
}

func TestLoad_MissingFileIsEmptyCollection(t *testing.T) {
	store, _ := newStore(t)

	tasks, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newStore(t)

	parent := domain.Task{
		ID:          "11111111-aaaa-bbbb-cccc-000000000001",
		Description: "Plan trip",
		Priority:    domain.PriorityHigh,
		CreatedAt:   time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC),
		Subtasks:    []string{"11111111-aaaa-bbbb-cccc-000000000002"},
	}
	child := domain.Task{
		ID:          "11111111-aaaa-bbbb-cccc-000000000002",
		Description: "Book flight",
		Completed:   true,
		Priority:    domain.PriorityLow,
		CreatedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		ParentID:    parent.ID,
		Subtasks:    []string{},
	}

	require.NoError(t, store.Save(context.Background(), []domain.Task{parent, child}))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, parent.ID, got[0].ID)
	assert.Equal(t, "Plan trip", got[0].Description)
	assert.False(t, got[0].Completed)
	assert.Equal(t, domain.PriorityHigh, got[0].Priority)
	assert.True(t, got[0].CreatedAt.Equal(parent.CreatedAt))
	assert.Empty(t, got[0].ParentID)
	assert.Equal(t, []string{child.ID}, got[0].Subtasks)

	assert.Equal(t, child.ID, got[1].ID)
	assert.True(t, got[1].Completed)
	assert.Equal(t, domain.PriorityLow, got[1].Priority)
	assert.True(t, got[1].CreatedAt.Equal(child.CreatedAt))
	assert.Equal(t, parent.ID, got[1].ParentID)
	assert.Empty(t, got[1].Subtasks)
}

func TestLoad_MalformedFile(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoad_DefaultsForMissingOptionalFields(t *testing.T) {
	store, path := newStore(t)
	raw := `{"tasks":[{"id":"t1","description":"legacy record","completed":false,"created_at":"2026-01-02T03:04:05.000000000Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	tasks, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Empty(t, tasks[0].ParentID)
	assert.NotNil(t, tasks[0].Subtasks)
	assert.Empty(t, tasks[0].Subtasks)
}

func TestLoad_InvalidPriorityFailsLikeConstruction(t *testing.T) {
	store, path := newStore(t)
	raw := `{"tasks":[{"id":"t1","description":"bad","priority":"urgent","created_at":"2026-01-02T03:04:05.000000000Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestLoad_MissingDescriptionFailsLikeConstruction(t *testing.T) {
	store, path := newStore(t)
	raw := `{"tasks":[{"id":"t1","created_at":"2026-01-02T03:04:05.000000000Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store, path := newStore(t)

	task, err := domain.NewTask("tidy", domain.PriorityMedium, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), []domain.Task{task}))
	// Overwrite to exercise the rename-over-existing path too.
	require.NoError(t, store.Save(context.Background(), []domain.Task{task}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestSave_CreatesDataDirectory(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "nested", "tasks.json"))

	task, err := domain.NewTask("tidy", domain.PriorityMedium, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), []domain.Task{task}))

	tasks, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
