package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{URL: url, Credentials: auth.Static("sk-test")})
	require.NoError(t, err)
	return c
}

func TestClient_Stream_SendsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var payload chatapi.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gpt-4o-mini", payload.Model)
		require.True(t, payload.Stream)
		require.Equal(t, []chatapi.ChatMessage{{Role: schema.User, Content: "hi"}}, payload.Messages)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	resp, err := newTestClient(t, srv.URL).Stream(context.Background(), chatapi.ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []chatapi.ChatMessage{{Role: schema.User, Content: "hi"}},
		Stream:   true,
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "data: [DONE]\n\n", string(body))
}

func TestClient_Stream_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "rate limited\n")
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL).Stream(context.Background(), chatapi.ChatRequest{Model: "m", Stream: true})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	require.Equal(t, "rate limited", statusErr.Body)
	require.Equal(t, "upstream request failed with status 429: rate limited", err.Error())
}

func TestClient_Stream_ErrorBodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, strings.Repeat("x", 3*maxErrorBodyBytes))
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(t, srv.URL).Stream(context.Background(), chatapi.ChatRequest{Model: "m", Stream: true})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Len(t, statusErr.Body, maxErrorBodyBytes)
}

func TestClient_Stream_CredentialError(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	c.credentials = auth.Static("")
	_, err := c.Stream(context.Background(), chatapi.ChatRequest{Model: "m", Stream: true})
	require.ErrorIs(t, err, ErrCredential)
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}
