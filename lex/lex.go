// Package lex implements the longest-match literal-alphabet tokenizer: C2
// of the engine. A Config declares the literal token alphabet and an
// ordered chain of preprocessors; Lex runs both passes over a token.Source.
//
// Grounded on internal/tunascript/lexer.go's match-rule scanning loop,
// generalized from its single lex-mode literal matching into the vector-of-
// literals longest-match-with-declaration-order-tiebreak model this engine's
// grammar describes.
package lex

import (
	"sort"
	"unicode/utf8"

	"github.com/dekarrin/ruda/token"
)

// Preprocessor refines the raw token stream after the initial scan, e.g.
// fusing a run of digit literals into a single "number" token. It receives
// the source and the tokens produced so far and returns the replacement
// stream, or an error if the input can't be refined.
type Preprocessor func(src token.Source, tokens []token.Token) ([]token.Token, *PreprocessorError)

// literalEntry is one declared token string, remembering its original
// position in Config.TokenKinds so that longest-match ties break in favor
// of earlier declarations.
type literalEntry struct {
	lit   string
	order int
}

// Config is the declarative lexer description: the literal alphabet the
// scanner matches against, and the preprocessor chain run after scanning.
type Config struct {
	TokenKinds    []string
	Preprocessors []Preprocessor

	byFirstRune map[rune][]literalEntry
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{byFirstRune: make(map[rune][]literalEntry)}
}

// AddToken declares a literal in the token alphabet. Order of declaration
// matters: it is the tiebreaker when two literals of the same length both
// match at a position.
func (c *Config) AddToken(lit string) {
	if lit == "" {
		return
	}
	if c.byFirstRune == nil {
		c.byFirstRune = make(map[rune][]literalEntry)
	}
	c.TokenKinds = append(c.TokenKinds, lit)
	first, _ := utf8.DecodeRuneInString(lit)
	entry := literalEntry{lit: lit, order: len(c.TokenKinds) - 1}
	bucket := append(c.byFirstRune[first], entry)
	sort.SliceStable(bucket, func(i, j int) bool {
		return len(bucket[i].lit) > len(bucket[j].lit)
	})
	c.byFirstRune[first] = bucket
}

// AddTokens declares several literals in order; see AddToken.
func (c *Config) AddTokens(lits []string) {
	for _, l := range lits {
		c.AddToken(l)
	}
}

// AddPreprocessor appends a preprocessor to the chain run after scanning.
func (c *Config) AddPreprocessor(p Preprocessor) {
	c.Preprocessors = append(c.Preprocessors, p)
}

// longestMatchAt returns the literal (if any) that matches text at byte
// offset pos, preferring the longest match and, among equal lengths, the
// one declared first.
func (c *Config) longestMatchAt(text string, pos int) (string, bool) {
	if c.byFirstRune == nil {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	bucket, ok := c.byFirstRune[r]
	if !ok {
		return "", false
	}
	best := ""
	bestOrder := -1
	for _, entry := range bucket {
		if best != "" && len(entry.lit) < len(best) {
			break // bucket is sorted longest-first; nothing further can win
		}
		if pos+len(entry.lit) > len(text) {
			continue
		}
		if text[pos:pos+len(entry.lit)] != entry.lit {
			continue
		}
		if best == "" || entry.order < bestOrder {
			best = entry.lit
			bestOrder = entry.order
		}
	}
	return best, best != ""
}

// Lex runs the raw scan followed by the preprocessor chain over text,
// returning the final token stream or the first PreprocessorError raised.
func Lex(cfg *Config, src token.Source) ([]token.Token, *PreprocessorError) {
	toks := scan(cfg, src.Text())
	for _, p := range cfg.Preprocessors {
		refined, err := p(src, toks)
		if err != nil {
			return nil, err
		}
		toks = refined
	}
	return toks, nil
}

// scan performs the raw longest-match tokenization pass: every byte of
// text is covered by exactly one token, whitespace runs collapse to a
// single Whitespace token, each line ending (\n or \r\n) becomes one Eol
// token, and
// a synthetic zero-length Eof token is appended at the end.
func scan(cfg *Config, text string) []token.Token {
	var toks []token.Token
	line, col := 1, 0
	pos := 0

	var pendingStart, pendingCol int
	pendingLine := 0
	hasPending := false

	flushText := func(end int) {
		if hasPending && end > pendingStart {
			toks = append(toks, token.Token{
				Kind:  token.KindText(),
				Index: pendingStart,
				Len:   end - pendingStart,
				Loc:   token.Location{Line: pendingLine, Column: pendingCol},
			})
		}
		hasPending = false
	}

	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])

		// End of line: \n or \r\n, collapsed to one Eol token.
		if r == '\n' || (r == '\r' && pos+1 < len(text) && text[pos+1] == '\n') {
			flushText(pos)
			eolLen := size
			if r == '\r' {
				eolLen += 1 // the following \n
			}
			toks = append(toks, token.Token{
				Kind:  token.KindControl(token.Eol),
				Index: pos,
				Len:   eolLen,
				Loc:   token.Location{Line: line, Column: col},
			})
			pos += eolLen
			line++
			col = 0
			continue
		}

		// Whitespace: runs of space/tab collapse to one token.
		if r == ' ' || r == '\t' {
			flushText(pos)
			start := pos
			startCol := col
			for pos < len(text) {
				r2, size2 := utf8.DecodeRuneInString(text[pos:])
				if r2 != ' ' && r2 != '\t' {
					break
				}
				pos += size2
				col++
			}
			toks = append(toks, token.Token{
				Kind:  token.KindWhitespace(),
				Index: start,
				Len:   pos - start,
				Loc:   token.Location{Line: line, Column: startCol},
			})
			continue
		}

		if lit, ok := cfg.longestMatchAt(text, pos); ok {
			flushText(pos)
			toks = append(toks, token.Token{
				Kind:  token.KindLiteral(lit),
				Index: pos,
				Len:   len(lit),
				Loc:   token.Location{Line: line, Column: col},
			})
			// advance column/line by scalar count of the consumed literal
			for i := 0; i < len(lit); {
				_, s := utf8.DecodeRuneInString(lit[i:])
				col++
				i += s
			}
			pos += len(lit)
			continue
		}

		if !hasPending {
			hasPending = true
			pendingStart = pos
			pendingLine = line
			pendingCol = col
		}
		pos += size
		col++
	}
	flushText(pos)

	toks = append(toks, token.Token{
		Kind:  token.KindControl(token.Eof),
		Index: len(text),
		Len:   0,
		Loc:   token.Location{Line: line, Column: col},
	})
	return toks
}
