package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/noam/deal-board/internal/domain"
)

// Listener receives the full board state after every successful mutation.
type Listener func(domain.Snapshot)

// Store is the single authoritative holder of users and deals. It lives in
// process memory only; state is lost on restart. All mutations go through
// the write lock, and change listeners run under that same lock, so every
// emitted snapshot reflects a fully applied mutation and events arrive in
// mutation order.
type Store struct {
	mu        sync.RWMutex
	users     []*domain.User
	usersByID map[uuid.UUID]*domain.User
	deals     []*domain.Deal
	dealsByID map[uuid.UUID]*domain.Deal
	listeners []Listener
	now       func() time.Time
}

func New() *Store {
	return &Store{
		usersByID: make(map[uuid.UUID]*domain.User),
		dealsByID: make(map[uuid.UUID]*domain.Deal),
		now:       time.Now,
	}
}

// Subscribe registers a change listener. All subscriptions must happen
// before the store starts taking mutations.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) AddUser(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.users = append(s.users, user)
	s.usersByID[user.ID] = user

	s.notify()

	copied := *user
	return &copied, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// AddDeal appends a new PENDING deal. Only field presence is validated
// here; referential rules (existing users, no self-deals) belong to the
// caller.
func (s *Store) AddDeal(ctx context.Context, fromUserID, toUserID uuid.UUID, offerText, requestText string) (*domain.Deal, error) {
	offerText = strings.TrimSpace(offerText)
	requestText = strings.TrimSpace(requestText)
	if fromUserID == uuid.Nil || toUserID == uuid.Nil || offerText == "" || requestText == "" {
		return nil, domain.ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deal := &domain.Deal{
		ID:          uuid.New(),
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		OfferText:   offerText,
		RequestText: requestText,
		Status:      domain.DealStatusPending,
		CreatedAt:   s.now(),
	}
	s.deals = append(s.deals, deal)
	s.dealsByID[deal.ID] = deal

	s.notify()

	copied := *deal
	return &copied, nil
}

// SetDealStatus decides a pending deal. A deal is decided at most once:
// re-deciding fails with ErrDealDecided.
func (s *Store) SetDealStatus(ctx context.Context, id uuid.UUID, status domain.DealStatus) (*domain.Deal, error) {
	if !status.IsDecision() {
		return nil, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.dealsByID[id]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	if deal.Status != domain.DealStatusPending {
		return nil, domain.ErrDealDecided
	}

	decidedAt := s.now()
	deal.Status = status
	deal.DecidedAt = &decidedAt

	s.notify()

	copied := *deal
	return &copied, nil
}

// Snapshot returns a detached copy of the full state in insertion order.
func (s *Store) Snapshot(ctx context.Context) domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Users: make([]domain.User, 0, len(s.users)),
		Deals: make([]domain.Deal, 0, len(s.deals)),
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, *u)
	}
	for _, d := range s.deals {
		deal := *d
		if d.DecidedAt != nil {
			decidedAt := *d.DecidedAt
			deal.DecidedAt = &decidedAt
		}
		snap.Deals = append(snap.Deals, deal)
	}
	return snap
}

// notify runs all listeners with a fresh snapshot. Must be called with the
// write lock held so event order matches mutation order.
func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}
