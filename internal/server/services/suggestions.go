package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SuggestionService is an append-only ledger of suggestions with a vote
// counter that only ever grows. Voters are not recorded.
type SuggestionService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSuggestionService(m repomanager.RepositoryManager, l logging.Logger) *SuggestionService {
	return &SuggestionService{repomanager: m, logger: l.With("module", "suggestions")}
}

func (s *SuggestionService) AddSuggestion(ctx context.Context, hangID, userID, typ, content string) (*models.Suggestion, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrorEmptyContent
	}
	st, err := models.ParseSuggestionType(typ)
	if err != nil {
		return nil, err
	}
	if err := checkID(hangID); err != nil {
		return nil, err
	}

	sg := &models.Suggestion{ID: uuid.NewString(), HangID: hangID, UserID: userID, Type: st, Content: content}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		if _, err := m.Hangs().GetByID(ctx, hangID); err != nil {
			return err
		}
		return m.Suggestions().Create(ctx, sg)
	})
	metrics.ObserveMutation("add_suggestion", err)
	if err != nil {
		s.logger.Error(ctx, "adding suggestion failed", "hang_id", hangID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("error adding suggestion: %w", err)
	}

	s.logger.Info(ctx, "suggestion added", "hang_id", hangID, "suggestion_id", sg.ID, "type", st)
	return sg, nil
}

// VoteSuggestion adds one vote and returns the new total. The increment
// happens in storage, so concurrent votes are never lost.
func (s *SuggestionService) VoteSuggestion(ctx context.Context, suggestionID, voterID string) (int64, error) {
	if err := requireIdentity(voterID); err != nil {
		return 0, err
	}
	if err := checkID(suggestionID); err != nil {
		return 0, err
	}

	votes, err := s.repomanager.Suggestions().IncrementVotes(ctx, suggestionID)
	metrics.ObserveMutation("vote_suggestion", err)
	if err != nil {
		return 0, fmt.Errorf("error voting: %w", err)
	}
	metrics.Votes.Inc()

	s.logger.Debug(ctx, "vote recorded", "suggestion_id", suggestionID, "votes", votes)
	return votes, nil
}
