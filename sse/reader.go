package sse

import (
	"errors"
	"io"
)

const readBufferSize = 32 << 10

// Reader 以拉取方式驱动 Recoder：每次从上游读一块，转换后交给调用方。
// 上游 EOF 或读错误都会让 Recoder 进入 DONE。
type Reader struct {
	src io.ReadCloser
	rec *Recoder
	buf []byte
	out []byte
	err error
}

// NewReader 包装上游响应体，observer 可为 nil。
func NewReader(src io.ReadCloser, observer Observer) *Reader {
	return &Reader{
		src: src,
		rec: NewRecoder(observer),
		buf: make([]byte, readBufferSize),
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	for len(r.out) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		n, err := r.src.Read(r.buf)
		if n > 0 {
			out, ferr := r.rec.OnChunk(r.buf[:n])
			if ferr != nil {
				r.err = ferr
				continue
			}
			r.out = out
		}
		if err != nil {
			r.rec.Close()
			if errors.Is(err, io.EOF) {
				err = io.EOF
			}
			r.err = err
		}
	}

	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

// Close 关闭上游响应体，并让 Recoder 进入 DONE。
func (r *Reader) Close() error {
	r.rec.Close()
	return r.src.Close()
}

// Recoder 返回底层 Recoder，用于读取完成信号。
func (r *Reader) Recoder() *Recoder {
	return r.rec
}
