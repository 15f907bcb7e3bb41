package sse

import (
	"bytes"

	"github.com/LubyRuffy/deltabridge/chatapi"
)

// LineSplitter 按行切分连续到达的字节块。
// 不以换行结尾的部分保存在 carry 中，与下一块拼接后再切分。
type LineSplitter struct {
	carry []byte
}

// Split 返回本块中所有完整的行（不含换行符，末尾的 '\r' 会被去掉）。
// 返回的切片只在下一次调用 Split 之前有效。
func (s *LineSplitter) Split(chunk []byte) [][]byte {
	data := chunk
	if len(s.carry) > 0 {
		data = make([]byte, 0, len(s.carry)+len(chunk))
		data = append(append(data, s.carry...), chunk...)
	}

	var lines [][]byte
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, bytes.TrimSuffix(data[:idx], []byte{'\r'}))
		data = data[idx+1:]
	}
	s.carry = bytes.Clone(data)
	return lines
}

// Pending 返回尚未形成完整行的尾部。
func (s *LineSplitter) Pending() []byte {
	return s.carry
}

// Reset 丢弃 carry。
func (s *LineSplitter) Reset() {
	s.carry = nil
}

// LineKind 是一行上游文本的分类。
type LineKind int

const (
	LineIgnored LineKind = iota
	LineBlank
	LineSentinel
	LineData
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineSentinel:
		return "sentinel"
	case LineData:
		return "data"
	default:
		return "ignored"
	}
}

const dataPrefix = "data: "

var sentinelLine = []byte(dataPrefix + chatapi.DoneSentinel)

// Line 是归类后的一行。Payload 仅在 Kind 为 LineData 时有值，指向原始行。
type Line struct {
	Kind    LineKind
	Payload []byte
}

// ClassifyLine 对一行做归类。哨兵行允许前后有空白。
func ClassifyLine(line []byte) Line {
	trimmed := bytes.TrimSpace(line)
	switch {
	case len(trimmed) == 0:
		return Line{Kind: LineBlank}
	case bytes.Equal(trimmed, sentinelLine):
		return Line{Kind: LineSentinel}
	case bytes.HasPrefix(line, []byte(dataPrefix)):
		return Line{Kind: LineData, Payload: line[len(dataPrefix):]}
	default:
		return Line{Kind: LineIgnored}
	}
}
