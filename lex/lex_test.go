package lex

import (
	"testing"

	"github.com/dekarrin/ruda/token"
	"github.com/stretchr/testify/assert"
)

func arithmeticConfig() *Config {
	cfg := NewConfig()
	cfg.AddTokens([]string{"+", "-", "*", "/", "(", ")", "==", "="})
	return cfg
}

func Test_Lex_longestMatchWins(t *testing.T) {
	cfg := arithmeticConfig()
	src := token.NewSource("a == b")

	toks, perr := Lex(cfg, src)

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	// a, ws, ==, ws, b, eof
	if !assert.Len(toks, 6) {
		return
	}
	assert.True(toks[2].Kind.Equal(token.KindLiteral("==")))
}

func Test_Lex_everyByteCoveredExactlyOnce(t *testing.T) {
	cfg := arithmeticConfig()
	text := "foo + (bar * 2)\n  baz"
	src := token.NewSource(text)

	toks, perr := Lex(cfg, src)

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	pos := 0
	for _, tk := range toks {
		assert.Equal(pos, tk.Index, "token %+v does not start where the previous one ended", tk)
		pos += tk.Len
	}
	assert.Equal(len(text), pos)
}

func Test_Lex_collapsesWhitespaceAndEol(t *testing.T) {
	cfg := arithmeticConfig()
	src := token.NewSource("a    b\n\nc")

	toks, perr := Lex(cfg, src)

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	var kinds []token.Tag
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind.Tag)
	}
	// the space run collapses to one Whitespace token; each of the two line
	// terminators yields its own Eol, and the trailing Eof closes the stream
	assert.Equal([]token.Tag{
		token.Text, token.Whitespace, token.Text, token.Control, token.Control, token.Text, token.Control,
	}, kinds)
}

func Test_Lex_appendsTrailingEof(t *testing.T) {
	cfg := arithmeticConfig()
	src := token.NewSource("x")

	toks, perr := Lex(cfg, src)

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	last := toks[len(toks)-1]
	assert.Equal(token.Control, last.Kind.Tag)
	assert.Equal(token.Eof, last.Kind.Control)
	assert.Equal(0, last.Len)
	assert.Equal(len(src.Text()), last.Index)
}

func Test_Lex_emptyInputYieldsOnlyEof(t *testing.T) {
	cfg := arithmeticConfig()
	src := token.NewSource("")

	toks, perr := Lex(cfg, src)

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	assert.Len(toks, 1)
	assert.Equal(token.Eof, toks[0].Kind.Control)
}

func Test_Lex_longerLiteralBeatsEarlierShorterPrefix(t *testing.T) {
	cfg := NewConfig()
	// "=" is declared first, but "==" is longer and also matches, so the
	// longest match wins over declaration order.
	cfg.AddTokens([]string{"=", "=="})

	toks, perr := Lex(cfg, token.NewSource("=="))

	assert := assert.New(t)
	if !assert.Nil(perr) {
		return
	}
	if !assert.Len(toks, 2) {
		return
	}
	assert.True(toks[0].Kind.Equal(token.KindLiteral("==")))
}

func Test_Lex_runsPreprocessorChain(t *testing.T) {
	cfg := arithmeticConfig()
	var seen int
	cfg.AddPreprocessor(func(src token.Source, toks []token.Token) ([]token.Token, *PreprocessorError) {
		seen = len(toks)
		return toks, nil
	})

	_, perr := Lex(cfg, token.NewSource("a + b"))

	assert := assert.New(t)
	assert.Nil(perr)
	assert.Greater(seen, 0)
}

func Test_Lex_stopsChainOnFirstPreprocessorError(t *testing.T) {
	cfg := arithmeticConfig()
	calledSecond := false
	cfg.AddPreprocessor(func(src token.Source, toks []token.Token) ([]token.Token, *PreprocessorError) {
		return nil, NewPreprocessorError(src, token.Location{Line: 1, Column: 0}, "boom")
	})
	cfg.AddPreprocessor(func(src token.Source, toks []token.Token) ([]token.Token, *PreprocessorError) {
		calledSecond = true
		return toks, nil
	})

	_, perr := Lex(cfg, token.NewSource("a"))

	assert := assert.New(t)
	if !assert.NotNil(perr) {
		return
	}
	assert.False(calledSecond)
	assert.Equal("boom", perr.Message)
}

func Test_PreprocessorError_FullMessage_withoutLocation(t *testing.T) {
	err := &PreprocessorError{Message: "no location here"}

	assert := assert.New(t)
	assert.Contains(err.FullMessage(), "no location here")
}
