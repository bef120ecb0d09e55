package handlers

import (
	"net/http"

	"github.com/noam/deal-board/internal/service"
)

type StateHandler struct {
	stateService *service.StateService
}

func NewStateHandler(stateService *service.StateService) *StateHandler {
	return &StateHandler{stateService: stateService}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateService.Snapshot(r.Context()))
}

func (h *StateHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateService.Scoreboard(r.Context()))
}
