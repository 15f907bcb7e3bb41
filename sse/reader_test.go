package sse

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

const sampleStream = "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\n" +
	"data: {broken\n\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\" there\"}}]}\n\n" +
	"data: [DONE]\n\n"

func TestReader_OneByteAtATime(t *testing.T) {
	src := &closeRecorder{Reader: iotest.OneByteReader(strings.NewReader(sampleStream))}
	r := NewReader(src, nil)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, event("Hi")+event(" there"), string(out))
	require.Equal(t, StateDone, r.Recoder().State())
	require.True(t, r.Recoder().SentinelSeen())

	require.NoError(t, r.Close())
	require.True(t, src.closed)
}

func TestReader_SmallDestinationBuffer(t *testing.T) {
	r := NewReader(io.NopCloser(strings.NewReader(sampleStream)), nil)

	var got []byte
	p := make([]byte, 5)
	for {
		n, err := r.Read(p)
		got = append(got, p[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	require.Equal(t, event("Hi")+event(" there"), string(got))
}

func TestReader_PropagatesSourceError(t *testing.T) {
	boom := errors.New("connection reset")
	src := io.MultiReader(
		strings.NewReader("data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n"),
		iotest.ErrReader(boom),
	)
	r := NewReader(io.NopCloser(src), nil)

	out, err := io.ReadAll(r)
	require.ErrorIs(t, err, boom)
	require.Equal(t, event("Hi"), string(out))
	require.Equal(t, StateDone, r.Recoder().State())
}

func TestScanDeltas(t *testing.T) {
	var deltas []string
	err := ScanDeltas(context.Background(), iotest.HalfReader(strings.NewReader(sampleStream)), nil, func(s string) error {
		deltas = append(deltas, s)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Hi", " there"}, deltas)
}

func TestScanDeltas_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ScanDeltas(context.Background(), strings.NewReader(sampleStream), nil, func(string) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestScanDeltas_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ScanDeltas(ctx, strings.NewReader(sampleStream), nil, func(string) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
