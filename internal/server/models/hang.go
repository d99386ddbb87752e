package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
)

type Hang struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Location     string     `json:"location"`
	MaxAttendees int        `json:"max_attendees"`
	Type         HangType   `json:"type"`
	Status       HangStatus `json:"status"`
	HostID       string     `json:"host_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HangFields are the host-editable fields of a hang.
type HangFields struct {
	Title        string
	Description  string
	Date         string
	Time         string
	Location     string
	MaxAttendees int
	Type         HangType
}

// Normalize trims text fields, checks required ones and applies defaults
// for capacity and type. The first missing field is reported.
func (f HangFields) Normalize() (HangFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.Location = strings.TrimSpace(f.Location)

	required := []struct {
		name  string
		value string
	}{
		{"title", f.Title},
		{"date", f.Date},
		{"time", f.Time},
		{"location", f.Location},
	}
	for _, r := range required {
		if r.value == "" {
			return HangFields{}, common.MissingField(r.name)
		}
	}

	if f.MaxAttendees <= 0 {
		f.MaxAttendees = common.DefaultMaxAttendees
	}

	t, err := ParseHangType(string(f.Type))
	if err != nil {
		return HangFields{}, err
	}
	f.Type = t

	return f, nil
}

// Apply copies the editable fields onto h.
func (f HangFields) Apply(h *Hang) {
	h.Title = f.Title
	h.Description = f.Description
	h.Date = f.Date
	h.Time = f.Time
	h.Location = f.Location
	h.MaxAttendees = f.MaxAttendees
	h.Type = f.Type
}
