package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/service"
)

type DealHandler struct {
	dealService *service.DealService
}

func NewDealHandler(dealService *service.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

type CreateDealRequest struct {
	FromUserID  string `json:"fromUserId"`
	ToUserID    string `json:"toUserId"`
	OfferText   string `json:"offerText"`
	RequestText string `json:"requestText"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fromUserID, err := uuid.Parse(req.FromUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing fields")
		return
	}
	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing fields")
		return
	}

	deal, err := h.dealService.Create(r.Context(), service.CreateDealInput{
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		OfferText:   req.OfferText,
		RequestText: req.RequestText,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "missing fields")
		case errors.Is(err, domain.ErrSelfDeal):
			respondError(w, http.StatusBadRequest, "cannot create a deal with yourself")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusBadRequest, "unknown user")
		default:
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	dealID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparseable id cannot belong to any deal
		respondError(w, http.StatusNotFound, "deal not found")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deal, err := h.dealService.Decide(r.Context(), dealID, domain.DealStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "invalid status")
		case errors.Is(err, domain.ErrDealNotFound):
			respondError(w, http.StatusNotFound, "deal not found")
		case errors.Is(err, domain.ErrDealDecided):
			respondError(w, http.StatusConflict, "deal is already decided")
		default:
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, deal)
}
