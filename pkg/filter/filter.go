// Package filter adapts greeklish generation to a token stream, the way an
// analysis chain inserts synonyms: every Greek token is followed by its Latin
// spellings at the same position.
package filter

// TokenType marks tokens produced by the filter.
const TokenType = "greeklish_word"

// Token is one term of an analyzed text.
type Token struct {
	Term     string `json:"term"`
	Position int    `json:"position"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Type     string `json:"type,omitempty"`
}

// Converter produces the spellings of a term. ok is false when the term is
// not eligible and must pass through unchanged.
//
// Both *greeklish.Converter and *profile.Profile satisfy it.
type Converter interface {
	Convert(term string) (spellings []string, ok bool)
}

// Filter injects greeklish tokens after each eligible token.
type Filter struct {
	conv Converter
}

// New returns a Filter using conv.
func New(conv Converter) *Filter {
	return &Filter{conv: conv}
}

// Apply returns tokens with the generated spellings inserted after their
// source token. Generated tokens share the source position and offsets and
// come out in reverse generation order.
func (f *Filter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok)
		out = append(out, f.expand(tok)...)
	}
	return out
}

// expand returns the generated tokens for tok, already in emission order.
func (f *Filter) expand(tok Token) []Token {
	spellings, ok := f.conv.Convert(tok.Term)
	if !ok || len(spellings) == 0 {
		return nil
	}
	gen := make([]Token, 0, len(spellings))
	for i := len(spellings) - 1; i >= 0; i-- {
		gen = append(gen, Token{
			Term:     spellings[i],
			Position: tok.Position,
			Start:    tok.Start,
			End:      tok.End,
			Type:     TokenType,
		})
	}
	return gen
}

// TokenSource is the upstream of a Stream.
type TokenSource interface {
	Next() (Token, bool)
}

// Stream pulls tokens from a source and interleaves the generated ones.
// Each Stream keeps its own pending buffer; a Stream is not safe for
// concurrent use but any number of Streams may share one Filter.
type Stream struct {
	f       *Filter
	src     TokenSource
	pending []Token
}

// Stream wraps src.
func (f *Filter) Stream(src TokenSource) *Stream {
	return &Stream{f: f, src: src}
}

// Next returns the next token, or false when the source is exhausted and no
// generated tokens remain.
func (s *Stream) Next() (Token, bool) {
	if len(s.pending) > 0 {
		tok := s.pending[0]
		s.pending = s.pending[1:]
		return tok, true
	}
	tok, ok := s.src.Next()
	if !ok {
		return Token{}, false
	}
	s.pending = s.f.expand(tok)
	return tok, true
}

// SliceSource serves tokens from a slice.
type SliceSource struct {
	tokens []Token
}

// NewSliceSource returns a TokenSource over tokens.
func NewSliceSource(tokens []Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// Next implements TokenSource.
func (s *SliceSource) Next() (Token, bool) {
	if len(s.tokens) == 0 {
		return Token{}, false
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, true
}

// Collect drains a stream.
func Collect(s *Stream) []Token {
	var out []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}
