package services

import "github.com/dmitrijs2005/letshang/internal/server/models"

// Stats summarises a viewer's hang list.
type Stats struct {
	Hangs     int `json:"hangs"`
	Going     int `json:"going"`
	Attendees int `json:"attendees"`
}

// Summarize counts the hangs, the hangs the viewer is going to, and every
// attendee record regardless of status.
func Summarize(views []models.HangView) Stats {
	st := Stats{Hangs: len(views)}
	for i := range views {
		if r := views[i].ViewerRSVP; r != nil && *r == models.RSVPGoing {
			st.Going++
		}
		st.Attendees += len(views[i].Attendees)
	}
	return st
}
