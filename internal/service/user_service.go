package service

import (
	"context"

	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/store"
)

type UserService struct {
	store *store.Store
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// Register creates a user. Names are not unique; every registration yields
// a fresh id, so a retried request creates a duplicate user.
func (s *UserService) Register(ctx context.Context, name string) (*domain.User, error) {
	return s.store.AddUser(ctx, name)
}
