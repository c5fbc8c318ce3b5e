package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/makebuild-code/slidenav/pkg/adapters/http"
	"github.com/makebuild-code/slidenav/pkg/adapters/memory"
	"github.com/makebuild-code/slidenav/pkg/deck"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/session"
)

const testDeck = `
title: Signup
slides:
  - id: welcome
    buttons:
      - name: next
        role: next
  - id: profile
    fields:
      - name: name
        required: true
    buttons:
      - name: back
        role: prev
      - name: next
        role: next
  - id: done
    buttons:
      - name: submit
        role: submit
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	d, err := deck.Parse([]byte(testDeck))
	require.NoError(t, err)
	handler := httpadapter.NewHandler(d, session.NewManager(memory.NewStore()))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeSession(t *testing.T, resp *http.Response) (out struct {
	SessionID string                 `json:"session_id"`
	Position  *domain.Position       `json:"position"`
	SlideID   string                 `json:"slide_id"`
	Decisions []domain.DecisionEvent `json:"decisions"`
}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Deck(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/deck")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Title       string `json:"title"`
		TotalSlides int    `json:"total_slides"`
		Slides      []struct {
			Index int    `json:"index"`
			ID    string `json:"id"`
		} `json:"slides"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Signup", body.Title)
	assert.Equal(t, 3, body.TotalSlides)
	require.Len(t, body.Slides, 3)
	assert.Equal(t, "profile", body.Slides[1].ID)
}

func TestHandler_Navigate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Next Creates Session And Advances", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/alice/navigate", map[string]any{"direction": "next"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		out := decodeSession(t, resp)
		assert.Equal(t, "alice", out.SessionID)
		assert.Equal(t, 1, out.Position.CurrentIndex)
		assert.Equal(t, "profile", out.SlideID)
		assert.Equal(t, []int{0, 1}, out.Position.History)
	})

	t.Run("Validation Blocks Without Answers", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/alice/navigate", map[string]any{"direction": "next"})
		out := decodeSession(t, resp)

		assert.Equal(t, 1, out.Position.CurrentIndex, "blocked navigation leaves the position unchanged")
		require.NotEmpty(t, out.Decisions)
		assert.Equal(t, domain.DecisionBlocked, out.Decisions[0].Decision)
	})

	t.Run("Answers Satisfy Validation", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/alice/navigate", map[string]any{
			"direction": "next",
			"answers":   map[string]string{"name": "Alice"},
		})
		out := decodeSession(t, resp)
		assert.Equal(t, 2, out.Position.CurrentIndex)
		assert.Equal(t, "done", out.SlideID)
	})

	t.Run("Prev Never Validated", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/alice/navigate", map[string]any{"direction": "prev"})
		out := decodeSession(t, resp)
		assert.Equal(t, 1, out.Position.CurrentIndex)
		assert.Equal(t, 2, out.Position.MaxVisitedIndex, "watermark survives going back")
	})

	t.Run("Absolute Target", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/alice/navigate", map[string]any{"target": 0})
		out := decodeSession(t, resp)
		assert.Equal(t, 0, out.Position.CurrentIndex)
	})

	t.Run("History Accumulates Across Requests", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/sessions/alice")
		require.NoError(t, err)
		out := decodeSession(t, resp)
		assert.Equal(t, []int{0, 1, 2, 1, 0}, out.Position.History)
	})

	t.Run("Missing Direction And Target", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/bob/navigate", map[string]any{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/sessions/bob/navigate", "application/json",
			bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions/carol/navigate", map[string]any{"direction": "next"})
	decodeSession(t, resp)

	t.Run("Get", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/sessions/carol")
		require.NoError(t, err)
		out := decodeSession(t, resp)
		assert.Equal(t, 1, out.Position.CurrentIndex)
	})

	t.Run("List", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/sessions")
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string][]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["sessions"], "carol")
	})

	t.Run("Reset", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/sessions/carol/reset", map[string]any{})
		out := decodeSession(t, resp)
		assert.Equal(t, 0, out.Position.CurrentIndex)
		assert.Equal(t, []int{0}, out.Position.History)
	})

	t.Run("Delete", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/carol", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		getResp, err := http.Get(srv.URL + "/sessions/carol")
		require.NoError(t, err)
		getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestHandler_GetUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/sessions/nobody")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
