// Package session holds a signed-in user's client state: the profile and
// the active hang list. Every successful mutation is followed by a full
// reload of the list.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/models"
)

var (
	ErrBusy      = errors.New("another change is in progress")
	ErrSignedOut = errors.New("not signed in")
	// ErrReloadFailed means the change was saved but the hang list could not
	// be refreshed afterwards. The change must not be retried.
	ErrReloadFailed = errors.New("change saved, reload failed")
)

// Backend is the subset of hangclient.Client a session uses.
type Backend interface {
	SetAccessToken(token string)
	GetProfile(ctx context.Context) (*api.ProfileResponse, error)
	UpdateProfile(ctx context.Context, name, avatarURL string) (*api.ProfileResponse, error)
	ListActiveHangs(ctx context.Context) ([]models.HangView, error)
	CreateHang(ctx context.Context, in api.HangInput) (*models.Hang, error)
	UpdateHang(ctx context.Context, hangID string, in api.HangInput) (*models.Hang, error)
	CancelHang(ctx context.Context, hangID string) (*models.Hang, error)
	CompleteHang(ctx context.Context, hangID string) (*models.Hang, error)
	SetRSVP(ctx context.Context, hangID, status string) (*models.Attendee, error)
	AddSuggestion(ctx context.Context, hangID, typ, content string) (*models.Suggestion, error)
	VoteSuggestion(ctx context.Context, suggestionID string) (int64, error)
}

type AuthEvent int

const (
	SignedIn AuthEvent = iota
	SignedOut
)

type Session struct {
	backend Backend
	logger  logging.Logger

	// inflight admits one mutation at a time.
	inflight sync.Mutex

	mu       sync.RWMutex
	signedIn bool
	profile  *models.User
	hangs    []models.HangView
}

func New(b Backend, l logging.Logger) *Session {
	return &Session{backend: b, logger: l.With("module", "session"), hangs: []models.HangView{}}
}

// HandleAuth reacts to an identity change. SignedIn installs the token and
// loads the profile and hang list; SignedOut drops all state.
func (s *Session) HandleAuth(ctx context.Context, ev AuthEvent, token string) error {
	switch ev {
	case SignedIn:
		s.backend.SetAccessToken(token)
		s.mu.Lock()
		s.signedIn = true
		s.mu.Unlock()
		s.logger.Info(ctx, "signed in")
		if err := s.loadProfile(ctx); err != nil {
			return err
		}
		return s.Reload(ctx)
	case SignedOut:
		s.backend.SetAccessToken("")
		s.mu.Lock()
		s.signedIn = false
		s.profile = nil
		s.hangs = []models.HangView{}
		s.mu.Unlock()
		s.logger.Info(ctx, "signed out")
		return nil
	default:
		return common.ErrorValidation
	}
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// Profile returns a copy of the loaded profile, or nil.
func (s *Session) Profile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// NeedsOnboarding reports whether the signed-in user has no display name yet.
func (s *Session) NeedsOnboarding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn && (s.profile == nil || s.profile.Name == "")
}

// Hangs returns the last loaded list.
func (s *Session) Hangs() []models.HangView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HangView, len(s.hangs))
	copy(out, s.hangs)
	return out
}

func (s *Session) loadProfile(ctx context.Context) error {
	resp, err := s.backend.GetProfile(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading profile failed", "error", err)
		return err
	}
	s.mu.Lock()
	u := resp.User
	s.profile = &u
	s.mu.Unlock()
	return nil
}

// Reload replaces the hang list with a fresh copy from the server. A user
// still onboarding gets an empty list.
func (s *Session) Reload(ctx context.Context) error {
	if !s.SignedIn() {
		return ErrSignedOut
	}
	hangs, err := s.backend.ListActiveHangs(ctx)
	if errors.Is(err, common.ErrorProfileIncomplete) {
		hangs, err = []models.HangView{}, nil
	}
	if err != nil {
		s.logger.Error(ctx, "loading hangs failed", "error", err)
		return err
	}
	s.mu.Lock()
	s.hangs = hangs
	s.mu.Unlock()
	return nil
}

// mutate runs fn under the in-flight guard and reloads on success. A failed
// reload after a saved change is reported as ErrReloadFailed, never as the
// change's own error.
func (s *Session) mutate(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if !s.SignedIn() {
		return ErrSignedOut
	}
	if !s.inflight.TryLock() {
		return ErrBusy
	}
	defer s.inflight.Unlock()

	if err := fn(ctx); err != nil {
		s.logger.Warn(ctx, "mutation failed", "op", op, "error", err)
		return err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn(ctx, "reload after mutation failed", "op", op, "error", err)
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return nil
}

func (s *Session) UpdateProfile(ctx context.Context, name, avatarURL string) error {
	return s.mutate(ctx, "update_profile", func(ctx context.Context) error {
		resp, err := s.backend.UpdateProfile(ctx, name, avatarURL)
		if err != nil {
			return err
		}
		s.mu.Lock()
		u := resp.User
		s.profile = &u
		s.mu.Unlock()
		return nil
	})
}

func (s *Session) CreateHang(ctx context.Context, in api.HangInput) (*models.Hang, error) {
	var h *models.Hang
	err := s.mutate(ctx, "create_hang", func(ctx context.Context) (err error) {
		h, err = s.backend.CreateHang(ctx, in)
		return err
	})
	return h, err
}

func (s *Session) UpdateHang(ctx context.Context, hangID string, in api.HangInput) error {
	return s.mutate(ctx, "update_hang", func(ctx context.Context) error {
		_, err := s.backend.UpdateHang(ctx, hangID, in)
		return err
	})
}

func (s *Session) CancelHang(ctx context.Context, hangID string) error {
	return s.mutate(ctx, "cancel_hang", func(ctx context.Context) error {
		_, err := s.backend.CancelHang(ctx, hangID)
		return err
	})
}

func (s *Session) CompleteHang(ctx context.Context, hangID string) error {
	return s.mutate(ctx, "complete_hang", func(ctx context.Context) error {
		_, err := s.backend.CompleteHang(ctx, hangID)
		return err
	})
}

func (s *Session) SetRSVP(ctx context.Context, hangID, status string) error {
	return s.mutate(ctx, "set_rsvp", func(ctx context.Context) error {
		_, err := s.backend.SetRSVP(ctx, hangID, status)
		return err
	})
}

func (s *Session) AddSuggestion(ctx context.Context, hangID, typ, content string) error {
	return s.mutate(ctx, "add_suggestion", func(ctx context.Context) error {
		_, err := s.backend.AddSuggestion(ctx, hangID, typ, content)
		return err
	})
}

func (s *Session) VoteSuggestion(ctx context.Context, suggestionID string) error {
	return s.mutate(ctx, "vote_suggestion", func(ctx context.Context) error {
		_, err := s.backend.VoteSuggestion(ctx, suggestionID)
		return err
	})
}
