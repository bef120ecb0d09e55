package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/noam/deal-board/internal/domain"
	"github.com/stretchr/testify/require"
)

// PostJSON sends a JSON POST to the test server and returns the response.
func PostJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err, "failed to marshal request body")

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err, "request failed")
	return resp
}

// UserBuilder registers users through the HTTP API.
type UserBuilder struct {
	name string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{name: "testuser"}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) Build(t *testing.T, ts *TestServer) *domain.User {
	t.Helper()

	resp := PostJSON(t, ts.APIURL("/users"), map[string]string{"name": b.name})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "user registration failed")

	var user domain.User
	AssertJSONResponse(t, resp, &user)
	return &user
}

// DealBuilder creates deals through the HTTP API.
type DealBuilder struct {
	from        *domain.User
	to          *domain.User
	offerText   string
	requestText string
}

func NewDealBuilder(from, to *domain.User) *DealBuilder {
	return &DealBuilder{
		from:        from,
		to:          to,
		offerText:   "coffee",
		requestText: "tea",
	}
}

func (b *DealBuilder) WithOffer(offer, request string) *DealBuilder {
	b.offerText = offer
	b.requestText = request
	return b
}

func (b *DealBuilder) Build(t *testing.T, ts *TestServer) *domain.Deal {
	t.Helper()

	resp := PostJSON(t, ts.APIURL("/deals"), map[string]string{
		"fromUserId":  b.from.ID.String(),
		"toUserId":    b.to.ID.String(),
		"offerText":   b.offerText,
		"requestText": b.requestText,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "deal creation failed")

	var deal domain.Deal
	AssertJSONResponse(t, resp, &deal)
	return &deal
}

// DecideDeal sets a deal's status through the HTTP API and requires success.
func DecideDeal(t *testing.T, ts *TestServer, deal *domain.Deal, status domain.DealStatus) *domain.Deal {
	t.Helper()

	url := ts.APIURL(fmt.Sprintf("/deals/%s/status", deal.ID))
	resp := PostJSON(t, url, map[string]string{"status": string(status)})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "status change failed")

	var decided domain.Deal
	AssertJSONResponse(t, resp, &decided)
	return &decided
}
