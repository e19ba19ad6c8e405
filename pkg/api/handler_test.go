package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/hazyhaar/greeklish/pkg/profile"
)

func setupRegistry(t *testing.T) *profile.Registry {
	t.Helper()
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "narrow.yaml"), []byte(`id: narrow
max_expansions: 2
greek_variants: false
`), 0o644)
	os.WriteFile(filepath.Join(dir, "plain.yaml"), []byte(`id: plain
greek_variants: false
normalize: greek_lowercase
`), 0o644)
	reg := profile.NewRegistry(dir, discardLogger())
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(setupRegistry(t), discardLogger())
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTransliterateTerm(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "GET", "/v1/transliterate/"+url.PathEscape("ομπρελα"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	res := decode[profile.Result](t, rec)
	want := []string{
		"omprela", "obrela", "omprelo", "obrelo", "omprelou", "obrelou",
		"ompreloy", "omprelu", "obreloy", "obrelu", "omprelwn", "obrelwn",
		"omprelon", "omprelvn", "obrelon", "obrelvn", "omprelas", "obrelas",
		"ompreles", "obreles",
	}
	if !res.Applicable || res.Profile != profile.DefaultID || !slices.Equal(res.Spellings, want) {
		t.Errorf("result = %+v", res)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestTransliterateTerm_Profile(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "GET", "/v1/transliterate/"+url.PathEscape("αυτοκινητο")+"?profile=narrow", "")
	res := decode[profile.Result](t, rec)
	if !slices.Equal(res.Spellings, []string{"autokinhto", "aftokinhto"}) {
		t.Errorf("spellings = %v", res.Spellings)
	}

	// plain normalizes before generating.
	rec = do(t, h, "GET", "/v1/transliterate/"+url.PathEscape("ΨΉ")+"?profile=plain", "")
	res = decode[profile.Result](t, rec)
	if res.Normalized != "ψη" || !slices.Equal(res.Spellings, []string{"psh", "psi"}) {
		t.Errorf("result = %+v", res)
	}
}

func TestTransliterateTerm_NotApplicable(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "GET", "/v1/transliterate/mobile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"spellings":[]`) {
		t.Errorf("body = %s, want empty spellings array", rec.Body)
	}
}

func TestTransliterateTerm_Errors(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"unknown profile", "/v1/transliterate/" + url.PathEscape("ψη") + "?profile=nope", http.StatusNotFound},
		{"term too long", "/v1/transliterate/" + url.PathEscape(strings.Repeat("α", maxTermRunes+1)), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "GET", tt.target, "")
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if body := decode[map[string]string](t, rec); body["error"] == "" {
				t.Errorf("missing error message: %s", rec.Body)
			}
		})
	}
}

func TestTransliterateBatch(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "POST", "/v1/transliterate/batch", `{"terms":["ψη","mobile"],"profile":"plain"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	resp := decode[batchResponse](t, rec)
	if resp.Profile != "plain" || len(resp.Results) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if !slices.Equal(resp.Results[0].Spellings, []string{"psh", "psi"}) {
		t.Errorf("results[0] = %+v", resp.Results[0])
	}
	if resp.Results[1].Applicable || len(resp.Results[1].Spellings) != 0 {
		t.Errorf("results[1] = %+v", resp.Results[1])
	}
}

func TestTransliterateBatch_Errors(t *testing.T) {
	h := setupRouter(t)

	many, _ := json.Marshal(map[string]any{"terms": slices.Repeat([]string{"ψη"}, maxBatchTerms+1)})
	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{"terms":`, http.StatusBadRequest},
		{"empty", `{"terms":[]}`, http.StatusBadRequest},
		{"too many", string(many), http.StatusBadRequest},
		{"empty term", `{"terms":["ψη",""]}`, http.StatusBadRequest},
		{"unknown profile", `{"terms":["ψη"],"profile":"nope"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, "POST", "/v1/transliterate/batch", tt.body); rec.Code != tt.code {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.code, rec.Body)
			}
		})
	}

	if rec := do(t, h, "GET", "/v1/transliterate/batch", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET batch status = %d, want 405", rec.Code)
	}
}

func TestVariants(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "GET", "/v1/variants/"+url.PathEscape("κουρεματοσ"), "")
	res := decode[profile.VariantsResult](t, rec)
	want := []string{"κουρεματοσ", "κουρεμα", "κουρεματων", "κουρεματα"}
	if !res.Applicable || !slices.Equal(res.Variants, want) {
		t.Errorf("result = %+v", res)
	}
}

func TestFilter(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "POST", "/v1/filter", `{"profile":"plain","tokens":[
		{"term":"mobile","position":0,"start":0,"end":6},
		{"term":"ψη","position":1,"start":7,"end":11}
	]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	resp := decode[filterResponse](t, rec)
	var terms []string
	for _, tok := range resp.Tokens {
		terms = append(terms, tok.Term)
	}
	if !slices.Equal(terms, []string{"mobile", "ψη", "psi", "psh"}) {
		t.Fatalf("terms = %v", terms)
	}
	if last := resp.Tokens[3]; last.Position != 1 || last.Start != 7 || last.End != 11 || last.Type != "greeklish_word" {
		t.Errorf("generated token = %+v", last)
	}

	if rec := do(t, h, "POST", "/v1/filter", `{"tokens":[],"profile":"nope"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown profile status = %d", rec.Code)
	}
}

func TestFilter_Limits(t *testing.T) {
	h := setupRouter(t)

	tests := []struct {
		name   string
		tokens []map[string]any
		code   int
	}{
		{"token at limit", []map[string]any{{"term": strings.Repeat("α", maxTermRunes)}}, http.StatusOK},
		{"oversized token", []map[string]any{{"term": "ψη"}, {"term": strings.Repeat("α", 30001)}}, http.StatusBadRequest},
		{"too many tokens", slices.Repeat([]map[string]any{{"term": "x"}}, maxFilterToken+1), http.StatusBadRequest},
		{"empty token passes", []map[string]any{{"term": ""}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]any{"tokens": tt.tokens})
			rec := do(t, h, "POST", "/v1/filter", string(body))
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d: %.200s", rec.Code, tt.code, rec.Body)
			}
		})
	}
}

func TestListProfiles(t *testing.T) {
	h := setupRouter(t)

	resp := decode[profilesResponse](t, do(t, h, "GET", "/v1/profiles", ""))
	if resp.Default != profile.DefaultID || len(resp.Profiles) != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRules(t *testing.T) {
	h := setupRouter(t)

	resp := decode[rulesResponse](t, do(t, h, "GET", "/v1/rules?special=true", ""))
	if !resp.Special || len(resp.Characters) != 24 || len(resp.Digraphs) != 10 || len(resp.Suffixes) != 22 {
		t.Fatalf("resp sizes = %d %d %d", len(resp.Characters), len(resp.Digraphs), len(resp.Suffixes))
	}
	for _, c := range resp.Characters {
		if c.Key == "ψ" && !slices.Equal(c.Replacements, []string{"c", "ps"}) {
			t.Errorf("ψ = %v", c.Replacements)
		}
	}
	if d := resp.Digraphs[0]; d.Key != "αι" || !slices.Equal(d.Replacements, []string{"ai", "e"}) {
		t.Errorf("first digraph = %+v", d)
	}
	if s := resp.Suffixes[0]; s.Key != "ματοσ" {
		t.Errorf("first suffix = %+v", s)
	}

	if rec := do(t, h, "GET", "/v1/rules?special=maybe", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)

	resp := decode[healthResponse](t, do(t, h, "GET", "/v1/health", ""))
	if resp.Status != "ok" || resp.Profiles != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, "GET", "/v1/profiles", "")
	if id := rec.Header().Get(requestIDHeader); len(id) != 26 {
		t.Errorf("generated request id = %q", id)
	}

	req := httptest.NewRequest("GET", "/v1/profiles", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if id := rec.Header().Get(requestIDHeader); id != "abc" {
		t.Errorf("echoed request id = %q", id)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestCORS(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest("OPTIONS", "/v1/transliterate/batch", nil)
	req.Header.Set("Origin", "https://search.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest("GET", "/v1/health", nil)
	req.Header.Set("Origin", "https://search.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
