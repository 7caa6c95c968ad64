// Package httpapi exposes the X12 parsing pipeline over HTTP. The
// surface is a single POST /x12 endpoint accepting a JSON-wrapped X12
// payload and returning either parsed models or raw segments.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/healthx12/x12"
)

// responseHeader selects the response shape: "models" (default) or
// "segments"
const responseHeader = "X12-Response"

// Request is the POST /x12 request body
type Request struct {
	X12 string `json:"x12"`
}

// errorResponse is the JSON error body
type errorResponse struct {
	Detail string `json:"detail"`
}

// Server wraps the HTTP listener and router
type Server struct {
	addr   string
	logger *slog.Logger
	http   *http.Server
}

// New builds a Server listening on the given address
func New(addr string, logger *slog.Logger) *Server {
	s := &Server{addr: addr, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Post("/x12", s.postX12)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until the context is
// canceled or the listener fails
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", s.addr)
		errCh <- s.http.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second,
		)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info(
			"request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) postX12(w http.ResponseWriter, r *http.Request) {
	var req Request
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if err := json.Unmarshal(body, &req); err != nil || req.X12 == "" {
		s.writeError(
			w,
			http.StatusBadRequest,
			`Invalid request. Expected {"x12": <x12 message string>}`,
		)
		return
	}

	mode := strings.ToLower(r.Header.Get(responseHeader))
	if mode != "segments" {
		mode = "models"
	}

	var payload any
	if mode == "segments" {
		payload, err = segmentPayload(req.X12)
	} else {
		payload, err = modelPayload(req.X12)
	}
	if err != nil {
		s.logger.Warn("parse failed", "error", err)
		s.writeError(
			w,
			http.StatusBadRequest,
			"Invalid X12 payload. To troubleshoot please run the x12 CLI",
		)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// segmentPayload tokenizes the message, mapping each segment to
// position-keyed fields (ISA00, ISA01, ...)
func segmentPayload(message string) (any, error) {
	tokenizer, err := x12.Segments(strings.NewReader(message))
	if err != nil {
		return nil, err
	}
	var out []map[string]string
	for {
		token, err := tokenizer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		segment := make(map[string]string, len(token.Fields))
		for i, v := range token.Fields {
			segment[fmt.Sprintf("%s%02d", token.ID, i)] = v
		}
		out = append(out, segment)
	}
	return out, nil
}

// modelPayload runs the full pipeline, returning one payload per
// transaction model along with its diagnostics
func modelPayload(message string) (any, error) {
	models, err := x12.Models(strings.NewReader(message))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(models))
	for _, m := range models {
		entry := map[string]any{
			"transactionSetCode": m.TransactionCode,
			"controlNumber":      m.ControlNumber,
			"version":            m.Version,
			"valid":              m.Valid(),
			"payload":            m.Payload(),
		}
		if len(m.Diagnostics) > 0 {
			entry["diagnostics"] = m.Diagnostics
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
