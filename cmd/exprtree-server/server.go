package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kr/pretty"

	"github.com/njchilds90/exprtree"
)

type server struct {
	cfg    Config
	logger hclog.Logger
}

func newServer(cfg Config, logger hclog.Logger) *server {
	return &server{cfg: cfg, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// writeJSON encodes v before writing the header. A value that cannot be
// encoded is answered with a 500.
func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding response", "error", err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(map[string]string{"error": "internal error: response could not be encoded"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(b, '\n'))
}

// POST /tool — handle a tool call
func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("panic in /tool", "panic", rec, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req exprtree.ToolRequest
	if err := dec.Decode(&req); err != nil {
		s.logger.Debug("rejected tool call", "error", err)
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}
	if s.logger.IsTrace() {
		s.logger.Trace("tool request", "request", pretty.Sprint(req))
	}

	start := time.Now()
	resp := exprtree.HandleToolCall(req)
	if resp.Error != "" {
		s.logger.Info("tool call failed", "tool", req.Tool, "error", resp.Error)
	} else {
		s.logger.Debug("tool call", "tool", req.Tool, "duration", time.Since(start))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GET /schema — return tool schema for agent registration
func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, exprtree.ToolSpec())
}

// GET /health — liveness check
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ErrorLog:          s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}
}
