package api

import (
	"context"
	"net/http"

	"github.com/debatehub/console/internal/debate"
)

// SuggestQuestion asks the AI moderator collaborator for a follow-up
// question given the debate topic and the prior argument contents.
// An empty suggestion is a valid response and means "nothing to add".
func (c *Client) SuggestQuestion(ctx context.Context, topic string, history []string) (string, error) {
	body := struct {
		Topic   string   `json:"topic"`
		History []string `json:"history"`
	}{Topic: topic, History: history}

	var resp struct {
		Data struct {
			Suggestion string `json:"suggestion"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai-moderator/suggest-question", body, &resp); err != nil {
		return "", err
	}
	return resp.Data.Suggestion, nil
}

// Me returns the authenticated account behind the ambient credentials.
func (c *Client) Me(ctx context.Context) (*debate.User, error) {
	var resp struct {
		Data debate.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// RefreshToken rotates the session cookie. The jar keeps whatever the
// server sets; callers only care whether the refresh succeeded.
func (c *Client) RefreshToken(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/refresh-token", nil, nil)
}
