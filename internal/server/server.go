// Package server exposes the projection engine as a JSON API over fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/stepup-sip/internal/calculation"
	"github.com/rpgo/stepup-sip/internal/config"
	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/internal/output"
)

// Routes served by Handler.
const (
	RouteHealth     = "/api/v1/health"
	RouteProjection = "/api/v1/projection"
	RouteScenarios  = "/api/v1/scenarios"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ProjectionRequest is a single plan. Name defaults to "Plan".
type ProjectionRequest struct {
	Name string `json:"name,omitempty"`
	domain.ProjectionInput
}

// ProjectionResponse is a projected plan with its chart series.
type ProjectionResponse struct {
	*domain.ScenarioSummary
	Chart output.ChartSeries `json:"chart"`
}

// Server handles API requests. Engine and Parser are read-only once serving.
type Server struct {
	Engine  *calculation.CalculationEngine
	Parser  *config.InputParser
	Log     zerolog.Logger
	Version string
}

// New creates a server over engine with the default input limits.
func New(engine *calculation.CalculationEngine, log zerolog.Logger) *Server {
	return &Server{Engine: engine, Parser: config.NewInputParser(), Log: log}
}

// Handler routes a request and logs its outcome.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	switch string(ctx.Path()) {
	case RouteHealth:
		if s.allow(ctx, fasthttp.MethodGet) {
			s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok", "version": s.Version})
		}
	case RouteProjection:
		if s.allow(ctx, fasthttp.MethodPost) {
			s.handleProjection(ctx)
		}
	case RouteScenarios:
		if s.allow(ctx, fasthttp.MethodPost) {
			s.handleScenarios(ctx)
		}
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found", "")
	}
	s.Log.Info().
		Str("method", string(ctx.Method())).
		Str("path", string(ctx.Path())).
		Int("status", ctx.Response.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", "")
	return false
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	req := ProjectionRequest{ProjectionInput: domain.FormDefaults()}
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}
	if req.Name == "" {
		req.Name = "Plan"
	}
	in := req.ProjectionInput
	if err := s.Parser.ValidateInput(in); err != nil {
		s.writeInputError(ctx, err)
		return
	}
	summary, err := s.Engine.RunInput(req.Name, in)
	if err != nil {
		s.writeInputError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, ProjectionResponse{
		ScenarioSummary: summary,
		Chart:           output.BuildChartSeries(summary.Result.YearlyRecords),
	})
}

// handleScenarios runs a full configuration. The optional "format" query
// argument renders the comparison with a registered formatter instead of JSON.
func (s *Server) handleScenarios(ctx *fasthttp.RequestCtx) {
	cfg := domain.Configuration{Defaults: domain.FormDefaults()}
	if err := json.Unmarshal(ctx.PostBody(), &cfg); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	var formatter output.Formatter
	if name := string(ctx.QueryArgs().Peek("format")); name != "" {
		if formatter = output.GetFormatterByName(name); formatter == nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("%v: %q", output.ErrUnsupportedFormat, name), "")
			return
		}
	}

	if err := s.Parser.Prepare(&cfg); err != nil {
		s.writeInputError(ctx, err)
		return
	}
	results, err := s.Engine.RunScenarios(ctx, &cfg)
	if err != nil {
		s.writeInputError(ctx, err)
		return
	}

	if formatter == nil {
		s.writeJSON(ctx, fasthttp.StatusOK, results)
		return
	}
	body, err := formatter.Format(results)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error(), "")
		return
	}
	ctx.SetContentType(contentType(formatter))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func contentType(f output.Formatter) string {
	switch output.Extension(f) {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	case "pdf":
		return "application/pdf"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// writeInputError maps validation failures to 422 and anything else to 500.
func (s *Server) writeInputError(ctx *fasthttp.RequestCtx, err error) {
	var invalid *config.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, invalid.Reason, invalid.Field)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error(), "")
	default:
		// Structural configuration problems (duplicate names, bad sensitivity ranges).
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error(), "")
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.Log.Error().Err(err).Msg("encode response")
		ctx.Error(`{"status":500,"message":"encoding failed"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message, field string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, Field: field})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "sipcalc",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(addr) }()
	s.Log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.Log.Info().Msg("shutting down")
		return srv.Shutdown()
	}
}
