package bridge

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBasePath(t *testing.T) {
	require.Equal(t, "/v1", normalizeBasePath(""))
	require.Equal(t, "/api", normalizeBasePath("api/"))
	require.Equal(t, "/", normalizeBasePath("/"))
	require.Equal(t, "/v1/chat", joinPath("/v1/", "chat"))
}

func TestErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://x/", nil)
	resp := ErrorResponse(req, &CallError{Kind: KindRequest, Err: errors.New("boom")})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "500 Internal Server Error", resp.Status)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, `{"error":"boom"}`, string(body))
	require.EqualValues(t, len(body), resp.ContentLength)
}

func TestWriteError_EmptyMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, &CallError{})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestIntercepts(t *testing.T) {
	cfg, err := resolveConfig(Config{Credentials: staticTestProvider{}, InterceptURL: "https://ui.example/api/chat"})
	require.NoError(t, err)
	tr := &Transport{target: cfg.InterceptURL}

	cases := []struct {
		method string
		url    string
		want   bool
	}{
		{http.MethodPost, "https://ui.example/api/chat", true},
		{http.MethodPost, "https://UI.example/api/chat/", true},
		{http.MethodPost, "https://ui.example/api/chat?x=1", true},
		{http.MethodGet, "https://ui.example/api/chat", false},
		{http.MethodPut, "https://ui.example/api/chat", false},
		{http.MethodPost, "http://ui.example/api/chat", false},
		{http.MethodPost, "https://ui.example/api/other", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.url, nil)
		require.Equal(t, tc.want, tr.intercepts(req), "%s %s", tc.method, tc.url)
	}
}

type staticTestProvider struct{}

func (staticTestProvider) Credential(context.Context) (string, error) { return "k", nil }
