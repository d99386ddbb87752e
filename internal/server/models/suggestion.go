package models

import "time"

type Suggestion struct {
	ID        string         `json:"id"`
	HangID    string         `json:"hang_id"`
	UserID    string         `json:"user_id"`
	Type      SuggestionType `json:"type"`
	Content   string         `json:"content"`
	Votes     int64          `json:"votes"`
	CreatedAt time.Time      `json:"created_at"`
}
