package models

import "time"

// Attendee is the RSVP record. At most one exists per (HangID, UserID).
type Attendee struct {
	ID        string     `json:"id"`
	HangID    string     `json:"hang_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
