package models

import "time"

// User is a stable identity. Name and AvatarURL are empty until the user sets them.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Named reports whether the user has completed onboarding.
func (u *User) Named() bool {
	return u != nil && u.Name != ""
}
