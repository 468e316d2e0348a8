package domain

import (
	"time"

	apperrors "github.com/lucascardosonobody/roleta-raspadinha2/internal/core/errors"
)

// ScheduleStatus tracks the lifecycle of a scheduled draw or scratch-card window.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// ClockFormat is the wall-clock format used for schedule window bounds.
// Times are stored as zero-padded HH:MM strings so lexical comparison
// matches chronological order.
const (
	ClockFormat = "15:04"
	DateFormat  = "2006-01-02"
)

// PrizeWindow assigns a prize to a sub-window of a scheduled event.
type PrizeWindow struct {
	PrizeID   int64  `json:"prizeId"`
	PrizeName string `json:"prizeName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Covers reports whether the window is open at the given HH:MM clock value.
func (w PrizeWindow) Covers(clock string) bool {
	return w.StartTime <= clock && w.EndTime >= clock
}

// Schedule is a dated window during which draws or scratch-cards run, with
// per-prize sub-windows.
type Schedule struct {
	ID           int64
	Date         string // DateFormat
	StartTime    string // ClockFormat
	EndTime      string // ClockFormat
	PrizeWindows []PrizeWindow
	Status       ScheduleStatus
	CreatedAt    time.Time
}

// ScheduleParams holds the input for creating a schedule.
type ScheduleParams struct {
	Date         string
	StartTime    string
	EndTime      string
	PrizeWindows []PrizeWindow
}

// NewSchedule validates the input and builds a pending schedule.
func NewSchedule(params ScheduleParams) (*Schedule, error) {
	if _, err := time.Parse(DateFormat, params.Date); err != nil {
		return nil, apperrors.ErrScheduleDateInvalid
	}

	start := params.StartTime
	if start == "" {
		start = "00:00"
	}
	end := params.EndTime
	if end == "" {
		end = "23:59"
	}
	if _, err := time.Parse(ClockFormat, start); err != nil {
		return nil, apperrors.ErrScheduleTimeInvalid
	}
	if _, err := time.Parse(ClockFormat, end); err != nil {
		return nil, apperrors.ErrScheduleTimeInvalid
	}
	if end < start {
		return nil, apperrors.ErrScheduleTimeInvalid
	}

	return &Schedule{
		Date:         params.Date,
		StartTime:    start,
		EndTime:      end,
		PrizeWindows: params.PrizeWindows,
		Status:       ScheduleStatusPending,
	}, nil
}

// IsOpenAt reports whether the schedule window covers the given instant.
func (s *Schedule) IsOpenAt(now time.Time) bool {
	if s.Date != now.Format(DateFormat) {
		return false
	}
	clock := now.Format(ClockFormat)
	return s.StartTime <= clock && s.EndTime >= clock
}

// ActivePrizes returns the prize windows open at the given instant.
func (s *Schedule) ActivePrizes(now time.Time) []PrizeWindow {
	clock := now.Format(ClockFormat)
	active := make([]PrizeWindow, 0, len(s.PrizeWindows))
	for _, w := range s.PrizeWindows {
		if w.Covers(clock) {
			active = append(active, w)
		}
	}
	return active
}

// Setting is one key/value configuration row.
type Setting struct {
	ID        int64
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Seeded setting keys.
const (
	SettingAutoDrawEnabled      = "auto_draw_enabled"
	SettingParticipantsRequired = "participants_required"
	SettingLastAutoDraw         = "last_auto_draw"
)
