package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Deal struct {
	ID          string `json:"id"`
	FromUserID  string `json:"fromUserId"`
	ToUserID    string `json:"toUserId"`
	OfferText   string `json:"offerText"`
	RequestText string `json:"requestText"`
	Status      string `json:"status"`
}

type State struct {
	Users []User `json:"users"`
	Deals []Deal `json:"deals"`
}

type ScoreRow struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	OwedTo int    `json:"owedTo"`
	Owes   int    `json:"owes"`
	Net    int    `json:"net"`
}

func (c *APIClient) RegisterUser(name string) (*User, error) {
	var user User
	if err := c.post("/users", map[string]string{"name": name}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) GetState() (*State, error) {
	var state State
	if err := c.get("/state", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *APIClient) CreateDeal(fromUserID, toUserID, offerText, requestText string) (*Deal, error) {
	var deal Deal
	err := c.post("/deals", map[string]string{
		"fromUserId":  fromUserID,
		"toUserId":    toUserID,
		"offerText":   offerText,
		"requestText": requestText,
	}, &deal)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (c *APIClient) SetDealStatus(dealID, status string) (*Deal, error) {
	var deal Deal
	err := c.post(fmt.Sprintf("/deals/%s/status", dealID), map[string]string{"status": status}, &deal)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (c *APIClient) GetScoreboard() ([]ScoreRow, error) {
	var rows []ScoreRow
	if err := c.get("/scoreboard", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *APIClient) post(path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *APIClient) get(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
