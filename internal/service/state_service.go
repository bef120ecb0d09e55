package service

import (
	"context"

	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/store"
)

type StateService struct {
	store *store.Store
}

func NewStateService(st *store.Store) *StateService {
	return &StateService{store: st}
}

func (s *StateService) Snapshot(ctx context.Context) domain.Snapshot {
	return s.store.Snapshot(ctx)
}

// Scoreboard derives the accepted-deal tallies from the current state.
func (s *StateService) Scoreboard(ctx context.Context) []domain.ScoreRow {
	snap := s.store.Snapshot(ctx)
	return domain.ComputeScoreboard(snap.Users, snap.Deals)
}
