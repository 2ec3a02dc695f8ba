package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// CreatePlayerResponse is returned by POST /api/player/create.
type CreatePlayerResponse struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

// CompleteMissionResponse is returned by POST /api/player/{id}/mission/complete.
type CompleteMissionResponse struct {
	Message string  `json:"message"`
	Rewards Rewards `json:"rewards"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client is a Backend served by a remote API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the API rooted at baseURL
// (for example "http://localhost:8001").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks that the API is reachable.
func (c *Client) Health(ctx context.Context) error {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("backend: unhealthy: %s", resp.Message)
	}
	return nil
}

// CreatePlayer implements Backend.
func (c *Client) CreatePlayer(ctx context.Context, name string) (string, error) {
	var resp CreatePlayerResponse
	q := url.Values{"name": {name}}
	if err := c.do(ctx, http.MethodPost, "/api/player/create", q, &resp); err != nil {
		return "", err
	}
	return resp.PlayerID, nil
}

// GetPlayer implements Backend.
func (c *Client) GetPlayer(ctx context.Context, id string) (PlayerRecord, error) {
	var p PlayerRecord
	err := c.do(ctx, http.MethodGet, "/api/player/"+url.PathEscape(id), nil, &p)
	return p, err
}

// SetPlayerPosition implements Backend.
func (c *Client) SetPlayerPosition(ctx context.Context, id string, x, y float64) error {
	q := url.Values{
		"x": {strconv.FormatFloat(x, 'f', -1, 64)},
		"y": {strconv.FormatFloat(y, 'f', -1, 64)},
	}
	return c.do(ctx, http.MethodPut, "/api/player/"+url.PathEscape(id)+"/position", q, nil)
}

// PurchaseBicycle implements Backend.
func (c *Client) PurchaseBicycle(ctx context.Context, id, bicycleID string) (PlayerRecord, error) {
	var p PlayerRecord
	q := url.Values{"bicycle_id": {bicycleID}}
	err := c.do(ctx, http.MethodPost, "/api/player/"+url.PathEscape(id)+"/purchase_bicycle", q, &p)
	return p, err
}

// StartMission implements Backend.
func (c *Client) StartMission(ctx context.Context, id, missionID string) error {
	q := url.Values{"mission_id": {missionID}}
	return c.do(ctx, http.MethodPost, "/api/player/"+url.PathEscape(id)+"/mission/start", q, nil)
}

// CompleteMission implements Backend.
func (c *Client) CompleteMission(ctx context.Context, id, missionID string) (Rewards, error) {
	var resp CompleteMissionResponse
	q := url.Values{"mission_id": {missionID}}
	if err := c.do(ctx, http.MethodPost, "/api/player/"+url.PathEscape(id)+"/mission/complete", q, &resp); err != nil {
		return Rewards{}, err
	}
	return resp.Rewards, nil
}

// ListBicycles implements Backend.
func (c *Client) ListBicycles(ctx context.Context) ([]Bicycle, error) {
	var out []Bicycle
	err := c.do(ctx, http.MethodGet, "/api/bicycles", nil, &out)
	return out, err
}

// ListShops implements Backend.
func (c *Client) ListShops(ctx context.Context) ([]ShopInfo, error) {
	var out []ShopInfo
	err := c.do(ctx, http.MethodGet, "/api/shops", nil, &out)
	return out, err
}

// ListMissions implements Backend.
func (c *Client) ListMissions(ctx context.Context) ([]MissionInfo, error) {
	var out []MissionInfo
	err := c.do(ctx, http.MethodGet, "/api/missions", nil, &out)
	return out, err
}

// do sends a request with query parameters and decodes a JSON response into out
// (when out is non-nil). API errors are mapped back to the package sentinels.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &body)

	if sentinel := ErrorForCode(body.Code); sentinel != nil {
		return fmt.Errorf("backend: %s: %w", body.Detail, sentinel)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("backend: %s: %w", resp.Status, ErrNotFound)
	}

	detail := body.Detail
	if detail == "" {
		detail = strings.TrimSpace(string(data))
	}
	return fmt.Errorf("backend: unexpected status %s: %s", resp.Status, detail)
}

var _ Backend = (*Client)(nil)
