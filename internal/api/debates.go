package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/debatehub/console/internal/debate"
)

func (c *Client) GetDebate(ctx context.Context, id int64) (*debate.Debate, error) {
	var resp struct {
		Data debate.Debate `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/debates/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListDebates(ctx context.Context) ([]debate.Debate, error) {
	var resp struct {
		Data []debate.Debate `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/debates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateDebate(ctx context.Context, title, description string) (*debate.Debate, error) {
	body := map[string]string{"title": title, "description": description}
	var resp struct {
		Data debate.Debate `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/debates", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteDebate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/debates/%d", id), nil, nil)
}

func (c *Client) ListParticipants(ctx context.Context, debateID int64) ([]debate.Participant, error) {
	var resp struct {
		Data []debate.Participant `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/debates/%d/participants", debateID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListArguments fetches the chronological history seed for a debate.
func (c *Client) ListArguments(ctx context.Context, debateID int64) ([]debate.Argument, error) {
	var resp struct {
		Data []debate.Argument `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/arguments/%d", debateID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateStatus requests a lifecycle transition and returns the
// authoritative status the server settled on.
func (c *Client) UpdateStatus(ctx context.Context, debateID int64, status debate.Status) (debate.Status, error) {
	body := map[string]debate.Status{"status": status}
	var resp struct {
		Status debate.Status `json:"status"`
	}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/debates/%d/status", debateID), body, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
