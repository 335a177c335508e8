package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/handler"
)

const maxBodyBytes = 1 << 20

// adapt translates a plain HTTP request into the gateway event shape, runs
// the handler and writes its response back.
func (s *Server) adapt(name string, h handler.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := toRequest(r)

		slog.Debug("Received request", "handler", name, "method", req.HTTPMethod)

		resp, err := h.Handle(r.Context(), req)
		if err != nil {
			slog.Error("Handler failed", "handler", name, "error", err)
			resp = handler.Error(http.StatusInternalServerError, err.Error())
		}

		writeResponse(w, name, resp)
	}
}

func writeResponse(w http.ResponseWriter, name string, resp *apimodels.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.WriteString(w, resp.Body); err != nil {
		slog.Warn("Failed to write response body", "handler", name, "error", err)
	}
}

// toRequest never fails: a POST body that is not {"message": ...} JSON is
// treated as an empty message, which only the chat handler reads.
func toRequest(r *http.Request) *apimodels.Request {
	req := &apimodels.Request{HTTPMethod: r.Method}

	if q := r.URL.Query(); len(q) > 0 {
		req.QueryStringParameters = make(map[string]string, len(q))
		for k := range q {
			req.QueryStringParameters[k] = q.Get(k)
		}
	}

	if r.Method != http.MethodPost || r.Body == nil {
		return req
	}
	defer r.Body.Close()

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		if err != io.EOF {
			slog.Debug("Ignoring undecodable request body", "error", err)
		}
		return req
	}
	req.Message = body.Message

	return req
}
