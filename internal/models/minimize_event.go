package models

import (
	"time"

	"gorm.io/gorm"
)

// MinimizeEvent records one attempt to minimize a window after a target
// window took focus.
type MinimizeEvent struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time      `gorm:"not null;index" json:"timestamp"`
	TargetTitle   string         `gorm:"not null" json:"target_title"`
	WindowTitle   string         `gorm:"not null" json:"window_title"`
	ClassName     string         `gorm:"not null;index" json:"class_name"`
	ProcessName   string         `json:"process_name,omitempty"`
	Handle        uint64         `gorm:"not null" json:"handle"`
	Succeeded     bool           `gorm:"not null" json:"succeeded"`
	ErrorMsg      string         `json:"error_msg,omitempty"`
	DisplayServer string         `gorm:"not null" json:"display_server"` // "x11" or "win32"
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// WindowSummary aggregates minimize events for one window class.
type WindowSummary struct {
	ClassName  string  `json:"class_name"`
	Minimized  int64   `json:"minimized"`
	Failed     int64   `json:"failed"`
	Percentage float64 `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period         ReportPeriod    `json:"period"`
	Windows        []WindowSummary `json:"windows"`
	TotalMinimized int64           `json:"total_minimized"`
	TotalFailed    int64           `json:"total_failed"`
	MonitorErrors  int64           `json:"monitor_errors"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
