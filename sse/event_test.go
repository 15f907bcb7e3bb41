package sse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDelta(t *testing.T) {
	text, err := DecodeDelta([]byte(`{"choices":[{"delta":{"content":"Hi"}}]}`))
	require.NoError(t, err)
	require.Equal(t, "Hi", text)

	text, err = DecodeDelta([]byte(`{"choices":[]}`))
	require.NoError(t, err)
	require.Equal(t, "", text)

	_, err = DecodeDelta([]byte(`{"choices":[{"delta":{"content":"Hi`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedFragment))
}

func TestAppendDeltaEvent_WireFormat(t *testing.T) {
	out := AppendDeltaEvent(nil, "Hi")
	require.Equal(t, "event: message.delta\ndata: {\"text\":\"Hi\",\"content\":\"Hi\",\"type\":\"text\"}\n\n", string(out))
}

func TestAppendDeltaEvent_EscapesQuotesButNotHTML(t *testing.T) {
	out := AppendDeltaEvent([]byte("prefix|"), "a<b & \"c\"\n")
	require.Equal(t, "prefix|event: message.delta\ndata: {\"text\":\"a<b & \\\"c\\\"\\n\",\"content\":\"a<b & \\\"c\\\"\\n\",\"type\":\"text\"}\n\n", string(out))
}
