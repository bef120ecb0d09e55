package service

import (
	"github.com/noam/deal-board/internal/config"
	"github.com/noam/deal-board/internal/store"
)

type Services struct {
	User  *UserService
	Deal  *DealService
	State *StateService
}

func NewServices(st *store.Store, cfg *config.Config) *Services {
	return &Services{
		User:  NewUserService(st),
		Deal:  NewDealService(st),
		State: NewStateService(st),
	}
}
