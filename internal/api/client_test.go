package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/debatehub/console/internal/debate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second)
}

func TestGetDebate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/debates/7", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id":         7,
				"title":      "UBI for all?",
				"status":     "active",
				"created_by": 42,
			},
		})
	})

	d, err := c.GetDebate(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), d.ID)
	require.Equal(t, "UBI for all?", d.Title)
	require.Equal(t, debate.StatusActive, d.Status)
	require.Equal(t, int64(42), d.CreatedBy)
}

func TestGetDebate_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetDebate(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListArguments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/arguments/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"type": "argument", "temp_id": "a", "content": "first"},
				{"type": "argument", "temp_id": "b", "content": "second"},
			},
		})
	})

	args, err := c.ListArguments(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, args, 2)
	require.Equal(t, "a", args[0].TempID)
	require.Equal(t, "second", args[1].Content)
}

func TestUpdateStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/debates/7/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "active", body["status"])

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "active"})
	})

	got, err := c.UpdateStatus(context.Background(), 7, debate.StatusActive)
	require.NoError(t, err)
	require.Equal(t, debate.StatusActive, got)
}

func TestSuggestQuestion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ai-moderator/suggest-question", r.URL.Path)

		var body struct {
			Topic   string   `json:"topic"`
			History []string `json:"history"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "UBI for all?", body.Topic)
		require.Len(t, body.History, 3)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"suggestion": "What about inflation?"},
		})
	})

	s, err := c.SuggestQuestion(context.Background(), "UBI for all?", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, "What about inflation?", s)
}

func TestCreateAndDeleteDebate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/debates":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "UBI for all?", body["title"])
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 11, "title": body["title"], "status": "pending"},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/debates/11":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})

	d, err := c.CreateDebate(context.Background(), "UBI for all?", "basic income")
	require.NoError(t, err)
	require.Equal(t, int64(11), d.ID)
	require.Equal(t, debate.StatusPending, d.Status)

	require.NoError(t, c.DeleteDebate(context.Background(), 11))
}

func TestListDebates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/debates", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "title": "first", "status": "active"},
				{"id": 2, "title": "second", "status": "pending"},
			},
		})
	})

	ds, err := c.ListDebates(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, 2)
	require.Equal(t, "second", ds[1].Title)
}

func TestMeAndRefreshToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 42, "fullName": "Ada Lovelace"},
			})
		case "/auth/refresh-token":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh"})
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	})

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "Ada Lovelace", u.FullName)

	require.NoError(t, c.RefreshToken(context.Background()))
}

func TestServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListParticipants(context.Background(), 7)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
