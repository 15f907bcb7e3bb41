package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LubyRuffy/deltabridge"
	"github.com/LubyRuffy/deltabridge/auth"
	"github.com/LubyRuffy/deltabridge/bridge"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *http.Client {
	t.Helper()
	up := httptest.NewServer(handler)
	t.Cleanup(up.Close)

	tr, err := bridge.NewTransport(bridge.Config{UpstreamURL: up.URL, Credentials: auth.Static("sk-test")}, nil)
	require.NoError(t, err)
	return &http.Client{Transport: tr}
}

func TestRun(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a<b\"}}]}\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"!\"}}]}\n\ndata: [DONE]\n\n")
	})

	var raw bytes.Buffer
	require.NoError(t, run(client, deltabridge.DefaultInterceptURL, "hi", false, &raw))
	require.Equal(t,
		"event: message.delta\ndata: {\"text\":\"a<b\",\"content\":\"a<b\",\"type\":\"text\"}\n\n"+
			"event: message.delta\ndata: {\"text\":\"!\",\"content\":\"!\",\"type\":\"text\"}\n\n",
		raw.String())

	var text bytes.Buffer
	require.NoError(t, run(client, deltabridge.DefaultInterceptURL, "hi", true, &text))
	require.Equal(t, "a<b!\n", text.String())
}

func TestRun_UpstreamError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	err := run(client, deltabridge.DefaultInterceptURL, "hi", false, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
	require.Contains(t, err.Error(), "429")
}
