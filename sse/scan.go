package sse

import (
	"context"
	"errors"
	"io"
)

// ScanDeltas 读取整个上游流，按顺序对每个非空 delta 调用 onDelta。
// 读到 EOF 时返回 nil；ctx 取消或 onDelta 出错时提前返回。
func ScanDeltas(ctx context.Context, body io.Reader, observer Observer, onDelta func(string) error) error {
	dec := NewDecoder(observer)
	defer dec.Close()

	buf := make([]byte, readBufferSize)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := body.Read(buf)
		if n > 0 {
			if ferr := dec.Feed(buf[:n], onDelta); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
