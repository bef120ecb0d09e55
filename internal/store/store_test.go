package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  error
	}{
		{
			name:    "empty name",
			input:   "",
			wantErr: domain.ErrNameRequired,
		},
		{
			name:    "whitespace-only name",
			input:   "   \t ",
			wantErr: domain.ErrNameRequired,
		},
		{
			name:     "valid name",
			input:    "Alice",
			wantName: "Alice",
		},
		{
			name:     "name is trimmed",
			input:    "  Bob  ",
			wantName: "Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			user, err := st.AddUser(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestStore_AddUser_UniqueIDs(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	// Duplicate names are allowed; ids must still differ
	first, err := st.AddUser(ctx, "Alice")
	require.NoError(t, err)
	second, err := st.AddUser(ctx, "Alice")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestStore_AddUser_InsertionOrder(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	names := []string{"Alice", "Bob", "Carol"}
	for _, name := range names {
		_, err := st.AddUser(ctx, name)
		require.NoError(t, err)
	}

	snap := st.Snapshot(ctx)
	require.Len(t, snap.Users, 3)
	for i, name := range names {
		assert.Equal(t, name, snap.Users[i].Name)
	}
}

func TestStore_AddDeal(t *testing.T) {
	ctx := context.Background()
	from := uuid.New()
	to := uuid.New()

	tests := []struct {
		name        string
		from        uuid.UUID
		to          uuid.UUID
		offerText   string
		requestText string
		wantErr     error
	}{
		{
			name:        "missing from user",
			from:        uuid.Nil,
			to:          to,
			offerText:   "coffee",
			requestText: "tea",
			wantErr:     domain.ErrMissingFields,
		},
		{
			name:        "missing to user",
			from:        from,
			to:          uuid.Nil,
			offerText:   "coffee",
			requestText: "tea",
			wantErr:     domain.ErrMissingFields,
		},
		{
			name:        "empty offer",
			from:        from,
			to:          to,
			offerText:   "",
			requestText: "tea",
			wantErr:     domain.ErrMissingFields,
		},
		{
			name:        "whitespace request",
			from:        from,
			to:          to,
			offerText:   "coffee",
			requestText: "  ",
			wantErr:     domain.ErrMissingFields,
		},
		{
			name:        "valid deal",
			from:        from,
			to:          to,
			offerText:   "coffee",
			requestText: "tea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			deal, err := st.AddDeal(ctx, tt.from, tt.to, tt.offerText, tt.requestText)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.DealStatusPending, deal.Status)
			assert.Nil(t, deal.DecidedAt)
			assert.False(t, deal.CreatedAt.IsZero())
			assert.Equal(t, tt.from, deal.FromUserID)
			assert.Equal(t, tt.to, deal.ToUserID)
		})
	}
}

func TestStore_SetDealStatus(t *testing.T) {
	ctx := context.Background()

	newDeal := func(t *testing.T, st *store.Store) *domain.Deal {
		t.Helper()
		deal, err := st.AddDeal(ctx, uuid.New(), uuid.New(), "coffee", "tea")
		require.NoError(t, err)
		return deal
	}

	t.Run("unknown deal id", func(t *testing.T) {
		st := store.New()
		_, err := st.SetDealStatus(ctx, uuid.New(), domain.DealStatusAccepted)
		assert.ErrorIs(t, err, domain.ErrDealNotFound)
	})

	t.Run("invalid status values", func(t *testing.T) {
		st := store.New()
		deal := newDeal(t, st)

		for _, status := range []domain.DealStatus{"", "PENDING", "accepted", "DONE"} {
			_, err := st.SetDealStatus(ctx, deal.ID, status)
			assert.ErrorIs(t, err, domain.ErrInvalidStatus, "status %q", status)
		}
	})

	t.Run("accept sets status and decidedAt together", func(t *testing.T) {
		st := store.New()
		deal := newDeal(t, st)

		decided, err := st.SetDealStatus(ctx, deal.ID, domain.DealStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusAccepted, decided.Status)
		require.NotNil(t, decided.DecidedAt)
		assert.False(t, decided.DecidedAt.IsZero())
	})

	t.Run("reject", func(t *testing.T) {
		st := store.New()
		deal := newDeal(t, st)

		decided, err := st.SetDealStatus(ctx, deal.ID, domain.DealStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusRejected, decided.Status)
		assert.NotNil(t, decided.DecidedAt)
	})

	t.Run("a deal is decided at most once", func(t *testing.T) {
		st := store.New()
		deal := newDeal(t, st)

		_, err := st.SetDealStatus(ctx, deal.ID, domain.DealStatusAccepted)
		require.NoError(t, err)

		_, err = st.SetDealStatus(ctx, deal.ID, domain.DealStatusRejected)
		assert.ErrorIs(t, err, domain.ErrDealDecided)

		// The first decision stands
		snap := st.Snapshot(ctx)
		require.Len(t, snap.Deals, 1)
		assert.Equal(t, domain.DealStatusAccepted, snap.Deals[0].Status)
	})
}

func TestStore_GetUser(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	user, err := st.AddUser(ctx, "Alice")
	require.NoError(t, err)

	found, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Alice", found.Name)

	_, err = st.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	user, err := st.AddUser(ctx, "Alice")
	require.NoError(t, err)
	_, err = st.AddDeal(ctx, user.ID, uuid.New(), "coffee", "tea")
	require.NoError(t, err)

	snap := st.Snapshot(ctx)
	snap.Users[0].Name = "Mallory"
	snap.Deals[0].Status = domain.DealStatusAccepted

	fresh := st.Snapshot(ctx)
	assert.Equal(t, "Alice", fresh.Users[0].Name)
	assert.Equal(t, domain.DealStatusPending, fresh.Deals[0].Status)
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	var events []domain.Snapshot
	st.Subscribe(func(snap domain.Snapshot) {
		events = append(events, snap)
	})

	alice, err := st.AddUser(ctx, "Alice")
	require.NoError(t, err)
	bob, err := st.AddUser(ctx, "Bob")
	require.NoError(t, err)
	deal, err := st.AddDeal(ctx, alice.ID, bob.ID, "coffee", "tea")
	require.NoError(t, err)
	_, err = st.SetDealStatus(ctx, deal.ID, domain.DealStatusAccepted)
	require.NoError(t, err)

	// One event per successful mutation, each containing that mutation's effect
	require.Len(t, events, 4)
	assert.Len(t, events[0].Users, 1)
	assert.Len(t, events[1].Users, 2)
	require.Len(t, events[2].Deals, 1)
	assert.Equal(t, domain.DealStatusPending, events[2].Deals[0].Status)
	require.Len(t, events[3].Deals, 1)
	assert.Equal(t, domain.DealStatusAccepted, events[3].Deals[0].Status)
}

func TestStore_FailedMutationEmitsNoEvent(t *testing.T) {
	st := store.New()
	ctx := context.Background()

	var events int
	st.Subscribe(func(domain.Snapshot) { events++ })

	_, err := st.AddUser(ctx, "  ")
	assert.Error(t, err)
	_, err = st.AddDeal(ctx, uuid.New(), uuid.New(), "", "")
	assert.Error(t, err)
	_, err = st.SetDealStatus(ctx, uuid.New(), domain.DealStatusAccepted)
	assert.Error(t, err)

	assert.Zero(t, events)
}
