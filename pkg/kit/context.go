package kit

import "context"

type contextKey string

const (
	TransportKey contextKey = "kit_transport" // "http", "mcp"
	RequestIDKey contextKey = "kit_request_id"
	ProfileKey   contextKey = "kit_profile"
)

// Transport names.
const (
	TransportHTTP = "http"
	TransportMCP  = "mcp"
)

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return TransportHTTP
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

// WithProfile records the profile a request was served with, for logging.
func WithProfile(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ProfileKey, id)
}
func GetProfile(ctx context.Context) string {
	v, _ := ctx.Value(ProfileKey).(string)
	return v
}
