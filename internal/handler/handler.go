package handler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/analyzer"
	"github.com/sozercan/tokenscope/internal/config"
)

const tokenIDParam = "token_id"

// Handler is the common request→response contract of every entrypoint.
type Handler interface {
	Handle(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error)

func (f HandlerFunc) Handle(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
	return f(ctx, req)
}

// Service is the part of the analyzer the handlers drive.
type Service interface {
	Analyze(ctx context.Context, tokenID string) analyzer.Outcome
	Lookup(ctx context.Context, tokenID string) analyzer.Outcome
	Chat(ctx context.Context, message string) analyzer.Outcome
}

var registry = map[string]func(Service) Handler{
	"analyze":    Analyze,
	"chat":       Chat,
	"token_info": TokenInfo,
	"health":     func(Service) Handler { return Health() },
}

// Names lists the handler names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a configured handler name.
func Lookup(name string, svc Service) (Handler, error) {
	build, ok := registry[config.NormalizeHandler(name)]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return build(svc), nil
}

// withPreflight answers OPTIONS before anything else runs.
func withPreflight(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
		if req.IsPreflight() {
			slog.Debug("Answering CORS pre-flight")
			return Preflight(), nil
		}
		return next(ctx, req)
	}
}

// tokenID extracts token_id; absent or blank both count as missing.
func tokenID(req *apimodels.Request) (string, bool) {
	id, ok := req.Param(tokenIDParam)
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// Analyze runs the token analysis for the token_id query parameter.
func Analyze(svc Service) Handler {
	return withPreflight(func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
		id, ok := tokenID(req)
		if !ok {
			slog.Warn("Missing token_id in query parameters")
			return Assemble(analyzer.Outcome{Kind: analyzer.OutcomeMissingParameter})
		}
		return Assemble(svc.Analyze(ctx, id))
	})
}

// TokenInfo returns the raw audit and price data for token_id.
func TokenInfo(svc Service) Handler {
	return withPreflight(func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
		id, ok := tokenID(req)
		if !ok {
			slog.Warn("Missing token_id in query parameters")
			return Assemble(analyzer.Outcome{Kind: analyzer.OutcomeMissingParameter})
		}
		return Assemble(svc.Lookup(ctx, id))
	})
}

// Chat answers the free-text message field.
func Chat(svc Service) Handler {
	return withPreflight(func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
		return Assemble(svc.Chat(ctx, req.Message))
	})
}

// Health reports liveness without touching any dependency.
func Health() Handler {
	return withPreflight(func(ctx context.Context, req *apimodels.Request) (*apimodels.Response, error) {
		return Assemble(analyzer.Success(map[string]string{"status": "ok"}))
	})
}
