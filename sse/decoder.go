package sse

import (
	"bytes"
	"errors"
)

// ErrClosed 表示对已结束的流继续喂入数据。
var ErrClosed = errors.New("sse: stream already done")

// State 是一条响应流的状态。
type State int

const (
	StateStreaming State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "streaming"
}

// Decoder 把上游字节块解码为 delta 文本序列。
//
// [DONE] 哨兵只被记录（SentinelSeen），不会改变状态；流的结束由 Close 驱动。
// 两个信号彼此独立，调用方可以任选其一判断完成。
type Decoder struct {
	splitter LineSplitter
	observer Observer
	state    State
	sentinel bool
}

// NewDecoder 创建 Decoder，observer 可为 nil。
func NewDecoder(observer Observer) *Decoder {
	return &Decoder{observer: observerOrNop(observer)}
}

// Feed 处理一个字节块，对每个非空 delta 按到达顺序调用 onDelta。
// JSON 错误只会丢弃对应行，不会返回；只有 onDelta 的错误或 ErrClosed 会返回。
func (d *Decoder) Feed(chunk []byte, onDelta func(text string) error) error {
	if d.state == StateDone {
		return ErrClosed
	}

	for _, raw := range d.splitter.Split(chunk) {
		line := ClassifyLine(raw)
		switch line.Kind {
		case LineSentinel:
			d.sentinel = true
			d.observer.SentinelSeen()
		case LineData:
			text, err := DecodeDelta(line.Payload)
			if err != nil {
				d.observer.FragmentDropped(line.Payload, err)
				continue
			}
			if text == "" {
				continue
			}
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close 标记流结束。carry 中未结束的行直接丢弃，不做 flush。可重复调用。
func (d *Decoder) Close() {
	if d.state == StateDone {
		return
	}
	if tail := d.splitter.Pending(); len(bytes.TrimSpace(tail)) > 0 {
		d.observer.FragmentDropped(tail, ErrUnterminatedLine)
	}
	d.splitter.Reset()
	d.state = StateDone
}

// State 返回当前状态。
func (d *Decoder) State() State {
	return d.state
}

// SentinelSeen 报告是否已经收到 data: [DONE]。
func (d *Decoder) SentinelSeen() bool {
	return d.sentinel
}
