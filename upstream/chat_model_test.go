package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"
)

func newDeltaServer(t *testing.T, check func(payload chatapi.ChatRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload chatapi.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if check != nil {
			check(payload)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hel\"}}]}\n\n")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatModel_Generate(t *testing.T) {
	srv := newDeltaServer(t, func(payload chatapi.ChatRequest) {
		require.Equal(t, []chatapi.ChatMessage{
			{Role: schema.System, Content: "sys"},
			{Role: schema.User, Content: "hi"},
		}, payload.Messages)
	})

	m, err := NewChatModel(newTestClient(t, srv.URL), "gpt-4o-mini")
	require.NoError(t, err)

	msg, err := m.Generate(context.Background(), []*schema.Message{
		schema.SystemMessage("sys"),
		schema.UserMessage("hi"),
		schema.ToolMessage("ignored", "call_1"),
	})
	require.NoError(t, err)
	require.Equal(t, schema.Assistant, msg.Role)
	require.Equal(t, "hello", msg.Content)
}

func TestChatModel_Stream(t *testing.T) {
	srv := newDeltaServer(t, nil)

	m, err := NewChatModel(newTestClient(t, srv.URL), "gpt-4o-mini")
	require.NoError(t, err)

	sr, err := m.Stream(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.NoError(t, err)
	defer sr.Close()

	var deltas []string
	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		deltas = append(deltas, msg.Content)
	}
	require.Equal(t, []string{"hel", "lo"}, deltas)
}

func TestChatModel_WithTools(t *testing.T) {
	m, err := NewChatModel(newTestClient(t, "http://127.0.0.1:1"), "m")
	require.NoError(t, err)

	_, err = m.WithTools(nil)
	require.NoError(t, err)
	_, err = m.WithTools([]*schema.ToolInfo{{Name: "search"}})
	require.Error(t, err)
}
