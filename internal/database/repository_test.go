package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/focuskeeper/focuskeeper/internal/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

func event(ts time.Time, class string, ok bool) *models.MinimizeEvent {
	return &models.MinimizeEvent{
		Timestamp:     ts,
		TargetTitle:   "Trae - project",
		WindowTitle:   class + " window",
		ClassName:     class,
		Handle:        42,
		Succeeded:     ok,
		DisplayServer: "x11",
	}
}

func TestLatestAndGetByID(t *testing.T) {
	repo := newTestRepo(t)

	latest, err := repo.GetLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	now := time.Now()
	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{event(now.Add(-time.Minute), "Notepad", true)}))
	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{event(now, "Calculator", false)}))

	latest, err = repo.GetLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "Calculator", latest.ClassName)
	assert.False(t, latest.Succeeded, "a failed attempt must be stored as failed")

	byID, err := repo.GetByID(latest.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.WindowTitle, byID.WindowTitle)

	_, err = repo.GetByID(latest.ID + 100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateBatchAndEventsSince(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	require.NoError(t, repo.CreateBatch(nil))
	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{
		event(now.Add(-2*time.Hour), "Old", true),
		event(now.Add(-time.Minute), "Notepad", true),
		event(now, "Notepad", true),
	}))

	events, err := repo.GetEventsSince(now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
}

func TestWindowSummarySince(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{
		event(now, "Notepad", true),
		event(now, "Notepad", true),
		event(now, "Notepad", false),
		event(now, "Calculator", true),
	}))

	summaries, err := repo.GetWindowSummarySince(now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Notepad", summaries[0].ClassName)
	assert.Equal(t, int64(2), summaries[0].Minimized)
	assert.Equal(t, int64(1), summaries[0].Failed)
	assert.Equal(t, "Calculator", summaries[1].ClassName)
	assert.Equal(t, int64(1), summaries[1].Minimized)
}

func TestDeleteOldEvents(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{
		event(now.AddDate(0, 0, -40), "Old", true),
		event(now, "New", true),
	}))

	n, err := repo.DeleteOldEvents(now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	events, err := repo.GetEventsSince(time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "New", events[0].ClassName)
}

func TestErrorLogAndClear(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	require.NoError(t, repo.CreateErrorLog(&models.ErrorLog{
		Timestamp: now.Add(-2 * time.Hour),
		Kind:      "focus",
		ErrorMsg:  "BadWindow",
	}))
	require.NoError(t, repo.CreateErrorLog(&models.ErrorLog{
		Timestamp: now,
		Kind:      "enumeration",
		ErrorMsg:  "connection lost",
	}))
	require.NoError(t, repo.CreateBatch([]*models.MinimizeEvent{event(now, "Notepad", true)}))

	logs, err := repo.GetErrorsSince(now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "enumeration", logs[0].Kind)

	n, err := repo.CountErrorsSince(now.Add(-3 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.Clear())

	events, err := repo.GetEventsSince(time.Time{})
	require.NoError(t, err)
	assert.Empty(t, events)
	logs, err = repo.GetErrorsSince(time.Time{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
