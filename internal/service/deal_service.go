package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/store"
)

type DealService struct {
	store *store.Store
}

func NewDealService(st *store.Store) *DealService {
	return &DealService{store: st}
}

type CreateDealInput struct {
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	OfferText   string
	RequestText string
}

// Create validates the referential rules the store deliberately leaves to
// its callers: both parties must exist and a user cannot deal with
// themselves. Users are never deleted, so the existence checks cannot go
// stale between here and the store mutation.
func (s *DealService) Create(ctx context.Context, input CreateDealInput) (*domain.Deal, error) {
	if input.FromUserID == input.ToUserID {
		return nil, domain.ErrSelfDeal
	}
	if _, err := s.store.GetUser(ctx, input.FromUserID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, input.ToUserID); err != nil {
		return nil, err
	}

	return s.store.AddDeal(ctx, input.FromUserID, input.ToUserID, input.OfferText, input.RequestText)
}

// Decide sets a pending deal to ACCEPTED or REJECTED.
func (s *DealService) Decide(ctx context.Context, dealID uuid.UUID, status domain.DealStatus) (*domain.Deal, error) {
	return s.store.SetDealStatus(ctx, dealID, status)
}
