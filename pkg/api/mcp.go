package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/greeklish/pkg/kit"
	"github.com/hazyhaar/greeklish/pkg/profile"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
const Version = "0.3.0"

// NewMCPServer returns an MCP server exposing the greeklish tools.
func NewMCPServer(reg *profile.Registry, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	return newMCPServer(newEndpoints(reg, logger))
}

func newMCPServer(eps *endpoints) *server.MCPServer {
	srv := server.NewMCPServer("greeklish", Version, server.WithToolCapabilities(false))
	registerMCPTools(srv, eps)
	return srv
}

// registerMCPTools registers the greeklish MCP tools on the server.
func registerMCPTools(srv *server.MCPServer, eps *endpoints) {
	registerTransliterateTerm(srv, eps)
	registerTransliterateBatch(srv, eps)
	registerGreekVariants(srv, eps)
	registerListProfiles(srv, eps)
	registerListRules(srv, eps)
}

func profileArg(args map[string]any) string {
	v, _ := args["profile"].(string)
	return strings.TrimSpace(v)
}

func withProfile(id string) func(context.Context) context.Context {
	if id == "" {
		return nil
	}
	return func(ctx context.Context) context.Context { return kit.WithProfile(ctx, id) }
}

func registerTransliterateTerm(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("transliterate_term",
		mcp.WithDescription("Generate the Latin-alphabet (greeklish) spellings of a Greek word, including spellings of its inflected forms."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The Greek word, lowercase and unaccented unless the profile normalizes")),
		mcp.WithString("profile", mcp.Description("Profile id (default profile when omitted)")),
	)

	kit.RegisterMCPTool(srv, tool, eps.transliterateTerm, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		p := profileArg(args)
		return &kit.MCPDecodeResult{Request: &termReq{Term: term, Profile: p}, EnrichCtx: withProfile(p)}, nil
	})
}

func registerTransliterateBatch(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("transliterate_batch",
		mcp.WithDescription(fmt.Sprintf("Generate greeklish spellings for multiple Greek words (up to %d).", maxBatchTerms)),
		mcp.WithString("terms", mcp.Required(), mcp.Description("Comma-separated list of Greek words")),
		mcp.WithString("profile", mcp.Description("Profile id (default profile when omitted)")),
	)

	kit.RegisterMCPTool(srv, tool, eps.transliterateBatch, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		termsStr, _ := args["terms"].(string)
		var terms []string
		for _, t := range strings.Split(termsStr, ",") {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		p := profileArg(args)
		return &kit.MCPDecodeResult{Request: &batchReq{Terms: terms, Profile: p}, EnrichCtx: withProfile(p)}, nil
	})
}

func registerGreekVariants(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("greek_variants",
		mcp.WithDescription("List the inflected Greek forms the reverse stemmer derives from a word."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The Greek word")),
		mcp.WithString("profile", mcp.Description("Profile id, selects the normalizer")),
	)

	kit.RegisterMCPTool(srv, tool, eps.greekVariants, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		p := profileArg(args)
		return &kit.MCPDecodeResult{Request: &termReq{Term: term, Profile: p}, EnrichCtx: withProfile(p)}, nil
	})
}

func registerListProfiles(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("list_profiles",
		mcp.WithDescription("List the loaded filter profiles with their generation settings."),
	)

	kit.RegisterMCPTool(srv, tool, eps.listProfiles, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}

func registerListRules(srv *server.MCPServer, eps *endpoints) {
	tool := mcp.NewTool("list_rules",
		mcp.WithDescription("Show the character, digraph and suffix tables used for generation."),
		mcp.WithBoolean("special", mcp.Description("Show the keyboard-layout character mapping")),
	)

	kit.RegisterMCPTool(srv, tool, eps.listRules, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		special, _ := req.GetArguments()["special"].(bool)
		return &kit.MCPDecodeResult{Request: &rulesReq{Special: special}}, nil
	})
}
