package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/LubyRuffy/deltabridge/chatapi"
)

// ErrorKind 标识调用在哪一步失败。
type ErrorKind string

const (
	KindRequest           ErrorKind = "request"
	KindCredential        ErrorKind = "credential"
	KindUpstreamTransport ErrorKind = "upstream_transport"
	KindUpstreamStatus    ErrorKind = "upstream_status"
)

// CallError 是 Orchestrator.Call 唯一的错误类型。StatusCode 仅在 KindUpstreamStatus 时有值。
type CallError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *CallError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *CallError) Unwrap() error { return e.Err }

func errorKind(err error) ErrorKind {
	var callErr *CallError
	if errors.As(err, &callErr) && callErr != nil {
		return callErr.Kind
	}
	return KindRequest
}

func errorBody(err error) []byte {
	message := "internal error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	data, _ := json.Marshal(chatapi.ErrorBody{Error: message})
	return data
}

// WriteError 把翻译路径的错误写成 500 + {"error": "..."}。
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(errorBody(err))
}

// ErrorResponse 是 WriteError 在 RoundTripper 一侧的对应物。
func ErrorResponse(req *http.Request, err error) *http.Response {
	body := errorBody(err)
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)),
		StatusCode:    http.StatusInternalServerError,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(chatapi.ErrorBody{Error: message})
}
