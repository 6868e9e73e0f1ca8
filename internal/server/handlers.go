package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	ga "github.com/njchilds90/goalgebra"
)

var validate = validator.New()

var knownTools = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range ga.ToolNames() {
		m[name] = true
	}
	return m
}()

// DecodeToolRequest reads exactly one JSON tool request from r. Unknown
// fields and trailing data are rejected.
func DecodeToolRequest(r io.Reader) (ga.ToolRequest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var req ga.ToolRequest
	if err := dec.Decode(&req); err != nil {
		return ga.ToolRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return ga.ToolRequest{}, errors.New("invalid JSON: trailing data")
	}
	if err := validate.Struct(req); err != nil {
		return ga.ToolRequest{}, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// handleTool executes one tool call. Tool-level failures are reported in
// the response body with status 200, as the tool protocol expects.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	defer r.Body.Close()

	req, err := DecodeToolRequest(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	label := req.Tool
	if !knownTools[label] {
		label = "unknown"
	}

	ctx, span := s.tracer.Start(r.Context(), "tool."+label,
		trace.WithAttributes(
			attribute.String("tool.name", req.Tool),
			attribute.String("request.id", chimiddleware.GetReqID(r.Context())),
		),
	)
	defer span.End()

	start := time.Now()
	resp := ga.HandleToolCallContext(ctx, req, ga.ToolOptions{MaxSteps: s.cfg.Rearrange.MaxSteps})
	elapsed := time.Since(start)

	status := "ok"
	if resp.Error != "" {
		status = "error"
		span.SetStatus(codes.Error, resp.Error)
	}
	s.metrics.RecordTool(label, status, elapsed.Seconds())

	s.logger.Debug("tool call",
		zap.String("tool", req.Tool),
		zap.String("status", status),
		zap.Duration("duration", elapsed),
		zap.String("request_id", chimiddleware.GetReqID(ctx)),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, ga.MCPToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
