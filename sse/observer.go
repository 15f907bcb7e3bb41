package sse

// Observer 接收转换过程中的旁路信号，用于日志与指标。实现不应阻塞。
type Observer interface {
	// EventEmitted 在输出一个 message.delta 事件后调用。
	EventEmitted(text string)
	// FragmentDropped 在丢弃一段无法使用的上游内容时调用。
	FragmentDropped(fragment []byte, err error)
	// SentinelSeen 在遇到 data: [DONE] 时调用。
	SentinelSeen()
}

type nopObserver struct{}

func (nopObserver) EventEmitted(string)            {}
func (nopObserver) FragmentDropped([]byte, error) {}
func (nopObserver) SentinelSeen()                  {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
