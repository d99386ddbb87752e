package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

// SharePayload is a deep link to a hang plus a message to send along with it.
type SharePayload struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type ShareService struct {
	aggregation *AggregationService
	baseURL     string
}

func NewShareService(a *AggregationService, baseURL string) *ShareService {
	return &ShareService{aggregation: a, baseURL: baseURL}
}

// Share loads the hang and builds its payload.
func (s *ShareService) Share(ctx context.Context, hangID, viewerID string) (*SharePayload, error) {
	v, err := s.aggregation.GetHang(ctx, hangID, viewerID)
	if err != nil {
		return nil, err
	}
	p := BuildShare(s.baseURL, v)
	return &p, nil
}

// ShareLink returns <base>?hang=<id>, keeping any query already on base.
func ShareLink(baseURL, hangID string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + "?hang=" + url.QueryEscape(hangID)
	}
	q := u.Query()
	q.Set("hang", hangID)
	u.RawQuery = q.Encode()
	return u.String()
}

// BuildShare derives the payload from a view. The count is of attendees
// whose status is going.
func BuildShare(baseURL string, v *models.HangView) SharePayload {
	link := ShareLink(baseURL, v.ID)
	text := fmt.Sprintf("Join me for %s!\n\n%s at %s\n%s\n%d/%d people going\n\nRSVP here: %s",
		v.Title, v.Date, v.Time, v.Location, v.GoingCount(), v.MaxAttendees, link)
	return SharePayload{URL: link, Text: text}
}
