package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/hazyhaar/greeklish/pkg/filter"
	"github.com/hazyhaar/greeklish/pkg/greeklish"
	"github.com/hazyhaar/greeklish/pkg/kit"
	"github.com/hazyhaar/greeklish/pkg/profile"
)

// Limits shared by HTTP and MCP.
const (
	maxBatchTerms  = 100
	maxFilterToken = 1000
	maxTermRunes   = 256
)

// errInvalidRequest marks errors caused by the caller's input.
var errInvalidRequest = errors.New("invalid request")

// Shared request/response types used by both HTTP and MCP transports.

type termReq struct {
	Term    string
	Profile string
}

type batchReq struct {
	Terms   []string
	Profile string
}

type filterReq struct {
	Tokens  []filter.Token
	Profile string
}

type rulesReq struct {
	Special bool
}

type batchResponse struct {
	Profile string            `json:"profile"`
	Results []*profile.Result `json:"results"`
}

type profilesResponse struct {
	Default  string         `json:"default"`
	Profiles []profile.Info `json:"profiles"`
}

type filterResponse struct {
	Profile string         `json:"profile"`
	Tokens  []filter.Token `json:"tokens"`
}

type ruleInfo struct {
	Key          string   `json:"key"`
	Replacements []string `json:"replacements"`
}

type rulesResponse struct {
	Special    bool       `json:"special"`
	Characters []ruleInfo `json:"characters"`
	Digraphs   []ruleInfo `json:"digraphs"`
	Suffixes   []ruleInfo `json:"suffixes"`
}

// endpoints holds the kit.Endpoints backed by the registry, each wrapped
// with request ids and logging.
type endpoints struct {
	transliterateTerm  kit.Endpoint
	transliterateBatch kit.Endpoint
	greekVariants      kit.Endpoint
	listProfiles       kit.Endpoint
	listRules          kit.Endpoint
	filterTokens       kit.Endpoint
}

func newEndpoints(reg *profile.Registry, logger *slog.Logger) *endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &endpoints{
		transliterateTerm:  wrap("transliterate_term", transliterateTermEndpoint(reg)),
		transliterateBatch: wrap("transliterate_batch", transliterateBatchEndpoint(reg)),
		greekVariants:      wrap("greek_variants", greekVariantsEndpoint(reg)),
		listProfiles:       wrap("list_profiles", listProfilesEndpoint(reg)),
		listRules:          wrap("list_rules", listRulesEndpoint()),
		filterTokens:       wrap("filter_tokens", filterTokensEndpoint(reg)),
	}
}

func checkTerm(term string) error {
	if term == "" {
		return fmt.Errorf("%w: missing term", errInvalidRequest)
	}
	if n := utf8.RuneCountInString(term); n > maxTermRunes {
		return fmt.Errorf("%w: term too long (max %d characters, got %d)", errInvalidRequest, maxTermRunes, n)
	}
	return nil
}

func transliterateTermEndpoint(reg *profile.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*termReq)
		if err := checkTerm(req.Term); err != nil {
			return nil, err
		}
		return reg.Transliterate(req.Term, req.Profile)
	}
}

func transliterateBatchEndpoint(reg *profile.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Terms) == 0 {
			return nil, fmt.Errorf("%w: terms array is empty", errInvalidRequest)
		}
		if len(req.Terms) > maxBatchTerms {
			return nil, fmt.Errorf("%w: too many terms (max %d, got %d)", errInvalidRequest, maxBatchTerms, len(req.Terms))
		}
		for _, term := range req.Terms {
			if err := checkTerm(term); err != nil {
				return nil, err
			}
		}
		// Resolve once so a concurrent reload cannot split the batch
		// across two versions of the profile.
		p, err := reg.Get(req.Profile)
		if err != nil {
			return nil, err
		}
		results := make([]*profile.Result, len(req.Terms))
		for i, term := range req.Terms {
			results[i] = p.Transliterate(term)
		}
		return batchResponse{Profile: p.Manifest.ID, Results: results}, nil
	}
}

func greekVariantsEndpoint(reg *profile.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*termReq)
		if err := checkTerm(req.Term); err != nil {
			return nil, err
		}
		return reg.Variants(req.Term, req.Profile)
	}
}

func listProfilesEndpoint(reg *profile.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return profilesResponse{Default: reg.Default(), Profiles: reg.ListProfiles()}, nil
	}
}

func filterTokensEndpoint(reg *profile.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*filterReq)
		if len(req.Tokens) > maxFilterToken {
			return nil, fmt.Errorf("%w: too many tokens (max %d, got %d)", errInvalidRequest, maxFilterToken, len(req.Tokens))
		}
		for i, tok := range req.Tokens {
			if n := utf8.RuneCountInString(tok.Term); n > maxTermRunes {
				return nil, fmt.Errorf("%w: token %d too long (max %d characters, got %d)", errInvalidRequest, i, maxTermRunes, n)
			}
		}
		p, err := reg.Get(req.Profile)
		if err != nil {
			return nil, err
		}
		return filterResponse{Profile: p.Manifest.ID, Tokens: filter.New(p).Apply(req.Tokens)}, nil
	}
}

func listRulesEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		special := false
		if req, ok := request.(*rulesReq); ok && req != nil {
			special = req.Special
		}
		return describeRules(special), nil
	}
}

// describeRules renders the declared tables. Digraphs are listed with the
// Latin renderings of their placeholder.
func describeRules(special bool) rulesResponse {
	mapping := greeklish.Mapping(special)
	resp := rulesResponse{Special: special}

	for _, r := range greeklish.Alphabet {
		repl, _ := mapping.Lookup(r)
		resp.Characters = append(resp.Characters, ruleInfo{Key: string(r), Replacements: repl})
	}
	digraphs := greeklish.Digraphs()
	for i := 0; i < digraphs.Len(); i++ {
		d := digraphs.At(i)
		placeholder := []rune(d.Replacements[0])[0]
		repl, _ := mapping.Lookup(placeholder)
		resp.Digraphs = append(resp.Digraphs, ruleInfo{Key: d.Key, Replacements: repl})
	}
	suffixes := greeklish.SuffixRules()
	for i := 0; i < suffixes.Len(); i++ {
		s := suffixes.At(i)
		resp.Suffixes = append(resp.Suffixes, ruleInfo{Key: s.Key, Replacements: s.Replacements})
	}
	return resp
}
