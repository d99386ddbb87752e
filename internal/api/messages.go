package api

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type GetProfileRequest struct{}

type ProfileResponse struct {
	User models.User `json:"user"`
	// AvatarDownloadURL is a short-lived URL for User.AvatarURL, if set.
	AvatarDownloadURL string `json:"avatar_download_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type PresignAvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

type PresignAvatarUploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

type ListActiveHangsRequest struct{}

type ListActiveHangsResponse struct {
	Hangs []models.HangView `json:"hangs"`
}

// HangInput carries hang fields as typed into a form. MaxAttendees is text;
// anything that is not a positive integer becomes the default capacity. On
// the wire max_attendees may be a JSON string or a number.
type HangInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	MaxAttendees string `json:"max_attendees"`
	Type         string `json:"type"`
}

func (in *HangInput) UnmarshalJSON(data []byte) error {
	type plain HangInput
	aux := struct {
		*plain
		MaxAttendees json.RawMessage `json:"max_attendees"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.MaxAttendees = ""
	raw := bytes.TrimSpace(aux.MaxAttendees)
	switch {
	case len(raw) == 0 || string(raw) == "null":
	case raw[0] == '"':
		return json.Unmarshal(raw, &in.MaxAttendees)
	default:
		in.MaxAttendees = string(raw)
	}
	return nil
}

func (in HangInput) Fields() models.HangFields {
	return models.HangFields{
		Title:        in.Title,
		Description:  in.Description,
		Date:         in.Date,
		Time:         in.Time,
		Location:     in.Location,
		MaxAttendees: models.ParseMaxAttendees(in.MaxAttendees),
		Type:         models.HangType(in.Type),
	}
}

type CreateHangRequest struct {
	Hang HangInput `json:"hang"`
}

type UpdateHangRequest struct {
	HangID string    `json:"hang_id"`
	Hang   HangInput `json:"hang"`
}

// HangRequest addresses a single hang (GetHang, CancelHang, CompleteHang, ShareHang).
type HangRequest struct {
	HangID string `json:"hang_id"`
}

type HangResponse struct {
	Hang models.Hang `json:"hang"`
}

type HangViewResponse struct {
	Hang models.HangView `json:"hang"`
}

type SetRSVPRequest struct {
	HangID string `json:"hang_id"`
	Status string `json:"status"`
}

type AttendeeResponse struct {
	Attendee models.Attendee `json:"attendee"`
}

type AddSuggestionRequest struct {
	HangID  string `json:"hang_id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type SuggestionResponse struct {
	Suggestion models.Suggestion `json:"suggestion"`
}

type VoteSuggestionRequest struct {
	SuggestionID string `json:"suggestion_id"`
}

type VoteSuggestionResponse struct {
	Votes int64 `json:"votes"`
}

type ShareResponse struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type GetStatsRequest struct{}

type StatsResponse struct {
	Hangs     int `json:"hangs"`
	Going     int `json:"going"`
	Attendees int `json:"attendees"`
}
