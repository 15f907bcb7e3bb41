package sse

// Recoder 是单条响应流的转换状态机：STREAMING → DONE，不可重启。
type Recoder struct {
	dec      *Decoder
	observer Observer
	events   int
}

// NewRecoder 创建 Recoder，observer 可为 nil。
func NewRecoder(observer Observer) *Recoder {
	observer = observerOrNop(observer)
	return &Recoder{dec: NewDecoder(observer), observer: observer}
}

// OnChunk 处理一个上游字节块，返回本块产生的下游字节（可能为空）。
// 返回的字节总是由完整事件组成。流结束后调用返回 ErrClosed。
func (r *Recoder) OnChunk(chunk []byte) ([]byte, error) {
	var out []byte
	err := r.dec.Feed(chunk, func(text string) error {
		out = AppendDeltaEvent(out, text)
		r.events++
		r.observer.EventEmitted(text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close 在上游字节源结束时调用，进入 DONE。
func (r *Recoder) Close() {
	r.dec.Close()
}

func (r *Recoder) State() State {
	return r.dec.State()
}

func (r *Recoder) SentinelSeen() bool {
	return r.dec.SentinelSeen()
}

// Events 返回已输出的事件数。
func (r *Recoder) Events() int {
	return r.events
}
