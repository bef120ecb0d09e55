package handlers_test

import (
	"net/http"
	"testing"

	"github.com/noam/deal-board/internal/domain"
	"github.com/noam/deal-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getState(t *testing.T, ts *testutil.TestServer) domain.Snapshot {
	t.Helper()

	resp, err := http.Get(ts.APIURL("/state"))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var snap domain.Snapshot
	testutil.AssertJSONResponse(t, resp, &snap)
	return snap
}

func TestStateHandler_GetState(t *testing.T) {
	ts := testutil.NewTestServer(t)

	snap := getState(t, ts)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Deals)

	alice := testutil.NewUserBuilder().WithName("Alice").Build(t, ts)
	bob := testutil.NewUserBuilder().WithName("Bob").Build(t, ts)
	deal := testutil.NewDealBuilder(alice, bob).WithOffer("coffee", "tea").Build(t, ts)

	snap = getState(t, ts)
	require.Len(t, snap.Users, 2)
	assert.Equal(t, "Alice", snap.Users[0].Name)
	assert.Equal(t, "Bob", snap.Users[1].Name)
	require.Len(t, snap.Deals, 1)
	assert.Equal(t, deal.ID, snap.Deals[0].ID)
	assert.Equal(t, domain.DealStatusPending, snap.Deals[0].Status)

	testutil.DecideDeal(t, ts, deal, domain.DealStatusAccepted)

	snap = getState(t, ts)
	assert.Equal(t, domain.DealStatusAccepted, snap.Deals[0].Status)
	assert.NotNil(t, snap.Deals[0].DecidedAt)
}

func TestStateHandler_GetScoreboard(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice := testutil.NewUserBuilder().WithName("Alice").Build(t, ts)
	bob := testutil.NewUserBuilder().WithName("Bob").Build(t, ts)

	deal := testutil.NewDealBuilder(alice, bob).WithOffer("coffee", "tea").Build(t, ts)
	testutil.DecideDeal(t, ts, deal, domain.DealStatusAccepted)

	resp, err := http.Get(ts.APIURL("/scoreboard"))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var rows []domain.ScoreRow
	testutil.AssertJSONResponse(t, resp, &rows)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, 1, rows[0].Net)
	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, -1, rows[1].Net)
}
