package database

import (
	"time"

	"github.com/focuskeeper/focuskeeper/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for minimize events
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserts the events of one focus change in a single statement
func (r *Repository) CreateBatch(events []*models.MinimizeEvent) error {
	if len(events) == 0 {
		return nil
	}
	result := r.db.Create(&events)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert minimize events")
	}
	return nil
}

// GetByID retrieves a minimize event by its ID
func (r *Repository) GetByID(id uint) (*models.MinimizeEvent, error) {
	var event models.MinimizeEvent
	result := r.db.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get minimize event")
	}
	return &event, nil
}

// GetEventsSince retrieves all minimize events since a given time
func (r *Repository) GetEventsSince(since time.Time) ([]*models.MinimizeEvent, error) {
	var events []*models.MinimizeEvent
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&events)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query minimize events")
	}

	return events, nil
}

// GetWindowSummarySince returns minimize counts per window class since a given time
func (r *Repository) GetWindowSummarySince(since time.Time) ([]models.WindowSummary, error) {
	var summaries []models.WindowSummary

	result := r.db.Model(&models.MinimizeEvent{}).
		Select("class_name, " +
			"SUM(CASE WHEN succeeded THEN 1 ELSE 0 END) as minimized, " +
			"SUM(CASE WHEN succeeded THEN 0 ELSE 1 END) as failed").
		Where("timestamp >= ?", since).
		Group("class_name").
		Order("minimized DESC, class_name ASC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query window summary")
	}

	return summaries, nil
}

// DeleteOldEvents deletes events older than a specified date (soft delete)
func (r *Repository) DeleteOldEvents(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.MinimizeEvent{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old events")
	}
	return result.RowsAffected, nil
}

// GetLatest retrieves the most recent minimize event
func (r *Repository) GetLatest() (*models.MinimizeEvent, error) {
	var event models.MinimizeEvent
	result := r.db.Order("timestamp DESC").First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest event")
	}
	return &event, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// GetErrorsSince retrieves error logs since a given time, newest first
func (r *Repository) GetErrorsSince(since time.Time) ([]*models.ErrorLog, error) {
	var logs []*models.ErrorLog
	result := r.db.Where("timestamp >= ?", since).Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error logs")
	}
	return logs, nil
}

// CountErrorsSince counts error logs since a given time
func (r *Repository) CountErrorsSince(since time.Time) (int64, error) {
	var n int64
	result := r.db.Model(&models.ErrorLog{}).Where("timestamp >= ?", since).Count(&n)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to count error logs")
	}
	return n, nil
}

// Clear removes all minimize events and error logs from the database
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM minimize_events"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear minimize events")
	}
	if result := r.db.Exec("DELETE FROM error_logs"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear error logs")
	}
	return nil
}
