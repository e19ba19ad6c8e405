package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hazyhaar/greeklish/pkg/filter"
	"github.com/hazyhaar/greeklish/pkg/kit"
	"github.com/hazyhaar/greeklish/pkg/profile"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// requestIDHeader carries the request id in both directions.
const requestIDHeader = "X-Request-ID"

// NewRouter returns an http.Handler with all greeklish API routes, the MCP
// streamable HTTP transport mounted on /mcp.
func NewRouter(reg *profile.Registry, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	eps := newEndpoints(reg, logger)
	h := &handler{eps: eps, reg: reg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/transliterate/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/transliterate/batch", h.handleTransliterateBatch)
	mux.HandleFunc("GET /v1/transliterate/{term}", h.handleTransliterateTerm)
	mux.HandleFunc("GET /v1/variants/{term}", h.handleVariants)
	mux.HandleFunc("POST /v1/filter", h.handleFilter)
	mux.HandleFunc("GET /v1/profiles", h.handleListProfiles)
	mux.HandleFunc("GET /v1/rules", h.handleRules)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.Handle("/mcp", server.NewStreamableHTTPServer(newMCPServer(eps)))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(securityHeaders(mux))
}

type handler struct {
	eps *endpoints
	reg *profile.Registry
}

// requestContext tags the request context with its transport, request id and
// profile, echoing the id back to the client.
func requestContext(w http.ResponseWriter, r *http.Request, profileID string) context.Context {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = kit.NewRequestID()
	}
	w.Header().Set(requestIDHeader, id)
	ctx := kit.WithTransport(r.Context(), kit.TransportHTTP)
	ctx = kit.WithRequestID(ctx, id)
	if profileID != "" {
		ctx = kit.WithProfile(ctx, profileID)
	}
	return ctx
}

// --- transliterate single term ---

func (h *handler) handleTransliterateTerm(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile")
	resp, err := h.eps.transliterateTerm(requestContext(w, r, profileID), &termReq{
		Term:    r.PathValue("term"),
		Profile: profileID,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- transliterate batch ---

type httpBatchRequest struct {
	Terms   []string `json:"terms"`
	Profile string   `json:"profile,omitempty"`
}

func (h *handler) handleTransliterateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.eps.transliterateBatch(requestContext(w, r, req.Profile), &batchReq{
		Terms:   req.Terms,
		Profile: req.Profile,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- variants ---

func (h *handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile")
	resp, err := h.eps.greekVariants(requestContext(w, r, profileID), &termReq{
		Term:    r.PathValue("term"),
		Profile: profileID,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- token filter ---

type httpFilterRequest struct {
	Tokens  []filter.Token `json:"tokens"`
	Profile string         `json:"profile,omitempty"`
}

func (h *handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256*1024) // 256 KiB max
	var req httpFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.eps.filterTokens(requestContext(w, r, req.Profile), &filterReq{
		Tokens:  req.Tokens,
		Profile: req.Profile,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list profiles ---

func (h *handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.listProfiles(requestContext(w, r, ""), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- rules ---

func (h *handler) handleRules(w http.ResponseWriter, r *http.Request) {
	req := &rulesReq{}
	if v := r.URL.Query().Get("special"); v != "" {
		special, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "special must be a boolean")
			return
		}
		req.Special = special
	}
	resp, err := h.eps.listRules(requestContext(w, r, ""), req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Profiles int    `json:"profiles"`
	Default  string `json:"default"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Profiles: h.reg.Count(),
		Default:  h.reg.Default(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeEndpointError maps endpoint errors to HTTP status codes.
func writeEndpointError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// securityHeaders adds the standard response hardening headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
