package chatapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_JSONShape(t *testing.T) {
	data, err := json.Marshal(ChatRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: schema.User, Content: "hi"}},
		Stream:   true,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"model":"gpt-4o-mini","messages":[{"role":"user","content":"hi"}],"stream":true}`, string(data))
}

func TestChatChunk_DeltaText(t *testing.T) {
	var chunk ChatChunk
	require.NoError(t, json.Unmarshal([]byte(`{"choices":[{"delta":{"content":"Hi"}},{"delta":{"content":"x"}}]}`), &chunk))
	require.Equal(t, "Hi", chunk.DeltaText())

	require.Equal(t, "", ChatChunk{}.DeltaText())

	chunk = ChatChunk{}
	require.NoError(t, json.Unmarshal([]byte(`{"choices":[{"delta":{"role":"assistant"}}]}`), &chunk))
	require.Equal(t, "", chunk.DeltaText())
}

func TestNewDeltaPayload_FieldOrder(t *testing.T) {
	data, err := json.Marshal(NewDeltaPayload("Hi"))
	require.NoError(t, err)
	require.Equal(t, `{"text":"Hi","content":"Hi","type":"text"}`, string(data))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	require.True(t, strings.HasPrefix(a, "dbr-"))
	require.Len(t, a, len("dbr-")+8)
	require.NotEqual(t, a, b)
}
