package kit

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// Endpoint is a transport-agnostic action function.
// Each action (transliterate, variants, list profiles) is an Endpoint.
// HTTP handlers and MCP tools both dispatch to the same Endpoints.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with cross-cutting concerns (request ids, logging).
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

// NewRequestID returns a fresh, time-ordered request id.
func NewRequestID() string {
	return ulid.Make().String()
}

// RequestID assigns a ULID to calls whose context carries none.
func RequestID() Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			if GetRequestID(ctx) == "" {
				ctx = WithRequestID(ctx, NewRequestID())
			}
			return next(ctx, request)
		}
	}
}

// Logging logs every call of the named endpoint at debug level, and failed
// calls at warn level.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", name,
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"duration", time.Since(start),
			}
			if p := GetProfile(ctx); p != "" {
				attrs = append(attrs, "profile", p)
			}
			if err != nil {
				logger.Warn("endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("endpoint", attrs...)
			}
			return resp, err
		}
	}
}
