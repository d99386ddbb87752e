package repomanager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/attendees"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/hangs"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/users"
)

// Constraint violations reported by the in-memory store, mirroring the
// foreign and primary keys of the SQL schema.
var (
	ErrForeignKey   = errors.New("foreign key violation")
	ErrDuplicateKey = errors.New("duplicate key value")
)

type memState struct {
	users       map[string]models.User
	hangs       []models.Hang
	attendees   []models.Attendee
	suggestions []models.Suggestion
}

func (s *memState) clone() *memState {
	c := &memState{
		users:       make(map[string]models.User, len(s.users)),
		hangs:       slices.Clone(s.hangs),
		attendees:   slices.Clone(s.attendees),
		suggestions: slices.Clone(s.suggestions),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func (s *memState) hangIndex(id string) int {
	return slices.IndexFunc(s.hangs, func(h models.Hang) bool { return h.ID == id })
}

type memoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

// MemoryRepositoryManager keeps all records in process. Every repository call
// is atomic; WithTx works on a copy of the state that replaces the original
// only on success.
type MemoryRepositoryManager struct {
	store *memoryStore
	tx    *memState
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		store: &memoryStore{
			state: &memState{users: map[string]models.User{}},
			now:   func() time.Time { return time.Now().UTC() },
		},
	}
}

func (m *MemoryRepositoryManager) do(fn func(s *memState, now time.Time) error) error {
	if m.tx != nil {
		return fn(m.tx, m.store.now())
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(m.store.state, m.store.now())
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Close() error                        { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository             { return memUsers{m} }
func (m *MemoryRepositoryManager) Hangs() hangs.Repository             { return memHangs{m} }
func (m *MemoryRepositoryManager) Attendees() attendees.Repository     { return memAttendees{m} }
func (m *MemoryRepositoryManager) Suggestions() suggestions.Repository { return memSuggestions{m} }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn TxFunc) error {
	if m.tx != nil {
		return fn(ctx, m)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	work := m.store.state.clone()
	if err := fn(ctx, &MemoryRepositoryManager{store: m.store, tx: work}); err != nil {
		return err
	}
	m.store.state = work
	return nil
}

// WithSnapshot holds the store lock for the duration of fn, so no write can
// interleave with the reads.
func (m *MemoryRepositoryManager) WithSnapshot(ctx context.Context, fn TxFunc) error {
	return m.WithTx(ctx, fn)
}

type memUsers struct{ m *MemoryRepositoryManager }

func (r memUsers) Create(_ context.Context, id string) error {
	return r.m.do(func(s *memState, now time.Time) error {
		if _, ok := s.users[id]; !ok {
			s.users[id] = models.User{ID: id, CreatedAt: now, UpdatedAt: now}
		}
		return nil
	})
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	var out *models.User
	err := r.m.do(func(s *memState, _ time.Time) error {
		u, ok := s.users[id]
		if !ok {
			return common.ErrorNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r memUsers) SaveProfile(_ context.Context, user *models.User) error {
	return r.m.do(func(s *memState, now time.Time) error {
		u, ok := s.users[user.ID]
		if !ok {
			u = models.User{ID: user.ID, CreatedAt: now}
		}
		u.Name = user.Name
		u.AvatarURL = user.AvatarURL
		u.UpdatedAt = now
		s.users[user.ID] = u

		user.CreatedAt = u.CreatedAt
		user.UpdatedAt = u.UpdatedAt
		return nil
	})
}

type memHangs struct{ m *MemoryRepositoryManager }

func (r memHangs) Create(_ context.Context, hang *models.Hang) error {
	return r.m.do(func(s *memState, now time.Time) error {
		if _, ok := s.users[hang.HostID]; !ok {
			return fmt.Errorf("db error: %w: hangs.host_id", ErrForeignKey)
		}
		if s.hangIndex(hang.ID) >= 0 {
			return fmt.Errorf("db error: %w: hangs.id", ErrDuplicateKey)
		}
		hang.CreatedAt, hang.UpdatedAt = now, now
		s.hangs = append(s.hangs, *hang)
		return nil
	})
}

func (r memHangs) GetByID(_ context.Context, id string) (*models.Hang, error) {
	var out *models.Hang
	err := r.m.do(func(s *memState, _ time.Time) error {
		i := s.hangIndex(id)
		if i < 0 {
			return common.ErrorNotFound
		}
		h := s.hangs[i]
		out = &h
		return nil
	})
	return out, err
}

func (r memHangs) UpdateFields(_ context.Context, hang *models.Hang) error {
	return r.m.do(func(s *memState, now time.Time) error {
		i := s.hangIndex(hang.ID)
		if i < 0 || s.hangs[i].Status != models.HangStatusActive {
			return common.ErrorHangNotActive
		}
		stored := &s.hangs[i]
		models.HangFields{
			Title:        hang.Title,
			Description:  hang.Description,
			Date:         hang.Date,
			Time:         hang.Time,
			Location:     hang.Location,
			MaxAttendees: hang.MaxAttendees,
			Type:         hang.Type,
		}.Apply(stored)
		stored.UpdatedAt = now
		hang.UpdatedAt = now
		return nil
	})
}

func (r memHangs) SetStatus(_ context.Context, id string, from, to models.HangStatus) error {
	return r.m.do(func(s *memState, now time.Time) error {
		i := s.hangIndex(id)
		if i < 0 || s.hangs[i].Status != from {
			return common.ErrorHangNotActive
		}
		s.hangs[i].Status = to
		s.hangs[i].UpdatedAt = now
		return nil
	})
}

func (r memHangs) ListWithHost(_ context.Context, status models.HangStatus) ([]models.HangView, error) {
	result := []models.HangView{}
	err := r.m.do(func(s *memState, _ time.Time) error {
		for i := len(s.hangs) - 1; i >= 0; i-- {
			if h := s.hangs[i]; h.Status == status {
				result = append(result, models.NewHangView(h, s.users[h.HostID]))
			}
		}
		return nil
	})
	return result, err
}

func (r memHangs) GetWithHost(_ context.Context, id string) (*models.HangView, error) {
	var out *models.HangView
	err := r.m.do(func(s *memState, _ time.Time) error {
		i := s.hangIndex(id)
		if i < 0 {
			return common.ErrorNotFound
		}
		v := models.NewHangView(s.hangs[i], s.users[s.hangs[i].HostID])
		out = &v
		return nil
	})
	return out, err
}

type memAttendees struct{ m *MemoryRepositoryManager }

func (r memAttendees) Upsert(_ context.Context, a *models.Attendee) error {
	return r.m.do(func(s *memState, now time.Time) error {
		for i := range s.attendees {
			stored := &s.attendees[i]
			if stored.HangID == a.HangID && stored.UserID == a.UserID {
				stored.Status = a.Status
				a.ID, a.CreatedAt = stored.ID, stored.CreatedAt
				return nil
			}
		}
		if s.hangIndex(a.HangID) < 0 {
			return fmt.Errorf("db error: %w: attendees.hang_id", ErrForeignKey)
		}
		if _, ok := s.users[a.UserID]; !ok {
			return fmt.Errorf("db error: %w: attendees.user_id", ErrForeignKey)
		}
		a.CreatedAt = now
		s.attendees = append(s.attendees, *a)
		return nil
	})
}

func (r memAttendees) ListByHang(_ context.Context, hangID string) ([]models.AttendeeView, error) {
	return r.list(func(s *memState, a models.Attendee) bool { return a.HangID == hangID })
}

func (r memAttendees) ListByHangStatus(_ context.Context, status models.HangStatus) ([]models.AttendeeView, error) {
	return r.list(func(s *memState, a models.Attendee) bool {
		i := s.hangIndex(a.HangID)
		return i >= 0 && s.hangs[i].Status == status
	})
}

func (r memAttendees) list(match func(*memState, models.Attendee) bool) ([]models.AttendeeView, error) {
	result := []models.AttendeeView{}
	err := r.m.do(func(s *memState, _ time.Time) error {
		for _, a := range s.attendees {
			if match(s, a) {
				result = append(result, models.AttendeeView{Attendee: a, User: s.users[a.UserID]})
			}
		}
		return nil
	})
	return result, err
}

type memSuggestions struct{ m *MemoryRepositoryManager }

func (r memSuggestions) Create(_ context.Context, sg *models.Suggestion) error {
	return r.m.do(func(s *memState, now time.Time) error {
		if s.hangIndex(sg.HangID) < 0 {
			return fmt.Errorf("db error: %w: suggestions.hang_id", ErrForeignKey)
		}
		if _, ok := s.users[sg.UserID]; !ok {
			return fmt.Errorf("db error: %w: suggestions.user_id", ErrForeignKey)
		}
		sg.Votes = 0
		sg.CreatedAt = now
		s.suggestions = append(s.suggestions, *sg)
		return nil
	})
}

func (r memSuggestions) IncrementVotes(_ context.Context, id string) (int64, error) {
	var votes int64
	err := r.m.do(func(s *memState, _ time.Time) error {
		for i := range s.suggestions {
			if s.suggestions[i].ID == id {
				s.suggestions[i].Votes++
				votes = s.suggestions[i].Votes
				return nil
			}
		}
		return common.ErrorNotFound
	})
	return votes, err
}

func (r memSuggestions) ListByHang(_ context.Context, hangID string) ([]models.SuggestionView, error) {
	return r.list(func(s *memState, sg models.Suggestion) bool { return sg.HangID == hangID })
}

func (r memSuggestions) ListByHangStatus(_ context.Context, status models.HangStatus) ([]models.SuggestionView, error) {
	return r.list(func(s *memState, sg models.Suggestion) bool {
		i := s.hangIndex(sg.HangID)
		return i >= 0 && s.hangs[i].Status == status
	})
}

func (r memSuggestions) list(match func(*memState, models.Suggestion) bool) ([]models.SuggestionView, error) {
	result := []models.SuggestionView{}
	err := r.m.do(func(s *memState, _ time.Time) error {
		for _, sg := range s.suggestions {
			if match(s, sg) {
				result = append(result, models.SuggestionView{Suggestion: sg, User: s.users[sg.UserID]})
			}
		}
		return nil
	})
	return result, err
}
