// Package ruda wires a lexer, a grammar, and an entry node name into one
// Parser: the library's single entry point, owning both the tokenizer and
// the rule interpreter behind one façade.
package ruda

import (
	"io"

	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/lex"
	"github.com/dekarrin/ruda/parse"
	"github.com/dekarrin/ruda/token"
)

// Parser owns a lexer configuration and a grammar and runs both over input
// text to produce a parse tree.
type Parser struct {
	Lexer   *lex.Config
	Grammar *grammar.Grammar
	debug   io.Writer
}

// New builds a Parser from a lexer configuration and a grammar. The
// grammar's own Entry/EOF fields govern where parsing starts and whether
// the whole input must be consumed.
func New(lexer *lex.Config, g *grammar.Grammar) *Parser {
	return &Parser{Lexer: lexer, Grammar: g, debug: io.Discard}
}

// SetDebugWriter redirects Print/Debug parameter and command output for
// every subsequent Parse call. The default is io.Discard.
func (p *Parser) SetDebugWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	p.debug = w
}

// Validate statically checks p.Grammar against p.Lexer's declared token
// alphabet, reporting structural defects and stylistic warnings without
// running a parse.
func (p *Parser) Validate() grammar.ValidationResult {
	return grammar.Validate(p.Grammar, p.Lexer.TokenKinds)
}

// Parse tokenizes text and runs the grammar's entry node over the result,
// returning the constructed tree or the first lex/parse error encountered.
func (p *Parser) Parse(text string) (*parse.Result, error) {
	src := token.NewSource(text)
	toks, perr := lex.Lex(p.Lexer, src)
	if perr != nil {
		return nil, perr
	}
	eng := parse.New(p.Grammar, src, toks)
	eng.SetDebugWriter(p.debug)
	return eng.Parse()
}

// document is the serializable shape of a Parser: the lexer's literal
// alphabet (preprocessors are code, not data, so they aren't part of it)
// plus the grammar.
type document struct {
	TokenKinds []string         `json:"token_kinds" toml:"token_kinds"`
	Grammar    *grammar.Grammar `json:"grammar" toml:"grammar"`
}

func (p *Parser) toDocument() *document {
	return &document{TokenKinds: p.Lexer.TokenKinds, Grammar: p.Grammar}
}

func fromDocument(d *document) *Parser {
	lexer := lex.NewConfig()
	lexer.AddTokens(d.TokenKinds)
	return New(lexer, d.Grammar)
}
