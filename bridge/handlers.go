package bridge

import (
	"errors"
	"net/http"
	"time"

	"github.com/LubyRuffy/deltabridge"
	"github.com/LubyRuffy/deltabridge/chatapi"
	"github.com/LubyRuffy/deltabridge/observability"
)

type handler struct {
	orchestrator *Orchestrator
	now          func() time.Time
}

// Handlers 返回 models 与 chat 两个 net/http handler。
func Handlers(cfg Config) (modelsHandler http.HandlerFunc, chatHandler http.HandlerFunc, err error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	o, err := newOrchestrator(resolved)
	if err != nil {
		return nil, nil, err
	}
	h := &handler{orchestrator: o, now: time.Now}
	return h.handleModels, h.handleChat, nil
}

func (h *handler) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	models := deltabridge.ListModels(h.orchestrator.Model())
	list := make([]chatapi.Model, 0, len(models))
	now := h.now().Unix()
	for _, m := range models {
		list = append(list, chatapi.Model{
			ID:      m.ID,
			Object:  "model",
			Created: now,
			OwnedBy: "upstream",
		})
	}
	writeJSON(w, chatapi.ModelList{Object: "list", Data: list})
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		observability.CallsTotal.WithLabelValues("http", string(KindRequest)).Inc()
		WriteError(w, errors.New("streaming not supported"))
		return
	}

	body, err := readRequestBody(r)
	if err != nil {
		observability.CallsTotal.WithLabelValues("http", string(KindRequest)).Inc()
		WriteError(w, &CallError{Kind: KindRequest, Err: err})
		return
	}

	stream, err := h.orchestrator.Call(r.Context(), body)
	if err != nil {
		observability.CallsTotal.WithLabelValues("http", string(errorKind(err))).Inc()
		WriteError(w, err)
		return
	}
	defer stream.Body.Close()
	observability.CallsTotal.WithLabelValues("http", "ok").Inc()

	setSSEHeaders(w)
	w.Header().Set("X-Request-Id", stream.RequestID)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	buf := make([]byte, 32<<10)
	for {
		n, err := stream.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			flusher.Flush()
		}
		if err != nil {
			return
		}
	}
}
