package domain

import (
	"time"

	"github.com/google/uuid"
)

type DealStatus string

const (
	DealStatusPending  DealStatus = "PENDING"
	DealStatusAccepted DealStatus = "ACCEPTED"
	DealStatusRejected DealStatus = "REJECTED"
)

// IsDecision reports whether s is a terminal status a recipient can set.
func (s DealStatus) IsDecision() bool {
	return s == DealStatusAccepted || s == DealStatusRejected
}

// Deal is a proposed barter between two users: FromUserID offers OfferText
// in exchange for RequestText from ToUserID. A deal starts PENDING and is
// decided at most once; decided deals are immutable.
type Deal struct {
	ID          uuid.UUID  `json:"id"`
	FromUserID  uuid.UUID  `json:"fromUserId"`
	ToUserID    uuid.UUID  `json:"toUserId"`
	OfferText   string     `json:"offerText"`
	RequestText string     `json:"requestText"`
	Status      DealStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
}

// Snapshot is a complete, detached copy of the board state, in insertion
// order. It is what viewers receive on connect and on every mutation.
type Snapshot struct {
	Users []User `json:"users"`
	Deals []Deal `json:"deals"`
}
