package models

// AttendeeView is an Attendee joined with its user.
type AttendeeView struct {
	Attendee
	User User `json:"user"`
}

// SuggestionView is a Suggestion joined with its author.
type SuggestionView struct {
	Suggestion
	User User `json:"user"`
}

// HangView is the aggregated, point-in-time representation of a hang.
// It is rebuilt on every read and never persisted.
type HangView struct {
	Hang
	Host        User             `json:"host"`
	Attendees   []AttendeeView   `json:"attendees"`
	Suggestions []SuggestionView `json:"suggestions"`
	ViewerRSVP  *RSVPStatus      `json:"viewer_rsvp"`
}

// NewHangView starts a view with empty, non-nil collections.
func NewHangView(h Hang, host User) HangView {
	return HangView{
		Hang:        h,
		Host:        host,
		Attendees:   []AttendeeView{},
		Suggestions: []SuggestionView{},
	}
}

// ResolveViewer sets ViewerRSVP from the attendee list; nil when the viewer
// has no record or viewerID is empty.
func (v *HangView) ResolveViewer(viewerID string) {
	v.ViewerRSVP = nil
	if viewerID == "" {
		return
	}
	for _, a := range v.Attendees {
		if a.UserID == viewerID {
			st := a.Status
			v.ViewerRSVP = &st
			return
		}
	}
}

// GoingCount counts attendees whose status is going.
func (v *HangView) GoingCount() int {
	n := 0
	for _, a := range v.Attendees {
		if a.Status == RSVPGoing {
			n++
		}
	}
	return n
}
