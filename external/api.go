package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PlaceBetResponse is the upstream answer to a bet placement. BetID is
// empty when the upstream omitted it; callers must treat that as a
// failed placement.
type PlaceBetResponse struct {
	BetID string
	Raw   json.RawMessage
}

// RecommendedBetResponse carries the upstream bet suggestion.
type RecommendedBetResponse struct {
	Bet int64 `json:"bet"`
}

// WinResponse carries a bet outcome. Win is zero for a lost bet.
type WinResponse struct {
	Win     int64  `json:"win"`
	Message string `json:"message"`
}

// BalanceResponse carries the balance held by the upstream system.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// Auth authenticates the user with the upstream API.
func (c *Client) Auth(ctx context.Context, creds Credentials, userID *int64) error {
	_, err := c.Call(ctx, "/auth", http.MethodPost, creds, struct{}{}, userID)
	return err
}

// PlaceBet places a bet of the given amount with the upstream API.
func (c *Client) PlaceBet(ctx context.Context, creds Credentials, amount int64, userID *int64) (*PlaceBetResponse, error) {
	raw, err := c.Call(ctx, "/bet", http.MethodPost, creds, map[string]int64{"bet": amount}, userID)
	if err != nil {
		return nil, err
	}

	// Some upstream deployments return bet_id as a number, others as a
	// string; normalize to string either way.
	var parsed struct {
		BetID any `json:"bet_id"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed bet placement response: %w", err)
	}
	resp := &PlaceBetResponse{Raw: raw}
	switch v := parsed.BetID.(type) {
	case nil:
	case string:
		resp.BetID = v
	case float64:
		resp.BetID = fmt.Sprintf("%.0f", v)
	default:
		resp.BetID = fmt.Sprint(v)
	}
	return resp, nil
}

// RecommendedBet fetches the suggested bet amount for the user.
func (c *Client) RecommendedBet(ctx context.Context, creds Credentials, userID *int64) (*RecommendedBetResponse, error) {
	raw, err := c.Call(ctx, "/bet", http.MethodGet, creds, nil, userID)
	if err != nil {
		return nil, err
	}
	var resp RecommendedBetResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed recommended bet response: %w", err)
	}
	return &resp, nil
}

// Win queries the outcome of a previously placed bet.
func (c *Client) Win(ctx context.Context, creds Credentials, betID string, userID *int64) (*WinResponse, error) {
	raw, err := c.Call(ctx, "/win", http.MethodPost, creds, map[string]string{"bet_id": betID}, userID)
	if err != nil {
		return nil, err
	}
	var resp WinResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed win response: %w", err)
	}
	return &resp, nil
}

// Balance fetches the user's balance from the upstream API.
func (c *Client) Balance(ctx context.Context, creds Credentials, userID *int64) (*BalanceResponse, error) {
	raw, err := c.Call(ctx, "/balance", http.MethodPost, creds, struct{}{}, userID)
	if err != nil {
		return nil, err
	}
	var resp BalanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed balance response: %w", err)
	}
	return &resp, nil
}

// SetBalance pushes a balance value to the upstream API.
func (c *Client) SetBalance(ctx context.Context, creds Credentials, amount int64, userID *int64) (*BalanceResponse, error) {
	raw, err := c.Call(ctx, "/balance", http.MethodPost, creds, map[string]int64{"balance": amount}, userID)
	if err != nil {
		return nil, err
	}
	var resp BalanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed balance response: %w", err)
	}
	return &resp, nil
}
