package parse

import (
	"testing"

	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/lex"
	"github.com/dekarrin/ruda/token"
	"github.com/stretchr/testify/assert"
)

// letBindingGrammar builds a tiny "let x = 1;" grammar: a word literal, two
// leaf nodes bound to attributes, and EOF required.
func letBindingGrammar() (*lex.Config, *grammar.Grammar) {
	lexCfg := lex.NewConfig()
	lexCfg.AddTokens([]string{"=", ";"})

	g := grammar.New()
	g.AddNode("ident", []grammar.Rule{
		grammar.Is(grammar.Token(grammar.TextKind()), nil, nil),
	}, nil)
	g.AddNode("number", []grammar.Rule{
		grammar.Is(grammar.Token(grammar.TextKind()), nil, nil),
	}, nil)
	g.AddNode("entry", []grammar.Rule{
		grammar.Is(grammar.Word("let"), nil, nil),
		grammar.Is(grammar.Node("ident"), nil, []grammar.Parameter{grammar.Set("name")}),
		grammar.Is(grammar.Token(grammar.Literal("=")), nil, nil),
		grammar.Is(grammar.Node("number"), nil, []grammar.Parameter{grammar.Set("value")}),
		grammar.Is(grammar.Token(grammar.Literal(";")), nil, nil),
	}, map[string]grammar.VariableKind{
		"name":  grammar.KindNode,
		"value": grammar.KindNode,
	})
	g.EOF = true

	return lexCfg, g
}

func parseWith(lexCfg *lex.Config, g *grammar.Grammar, text string) (*Result, error) {
	src := token.NewSource(text)
	toks, perr := lex.Lex(lexCfg, src)
	if perr != nil {
		return nil, perr
	}
	return New(g, src, toks).Parse()
}

func Test_Engine_parsesLetBinding(t *testing.T) {
	lexCfg, g := letBindingGrammar()

	result, err := parseWith(lexCfg, g, "let x = 1;")

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	name, ok := result.Entry.TryGetNode("name")
	if !assert.True(ok) {
		return
	}
	value, ok := result.Entry.TryGetNode("value")
	if !assert.True(ok) {
		return
	}

	src := token.NewSource("let x = 1;")
	assert.Equal("x", StringifyNode(src, name.Node))
	assert.Equal("1", StringifyNode(src, value.Node))
}

func Test_Engine_missingSemicolonFails(t *testing.T) {
	lexCfg, g := letBindingGrammar()

	_, err := parseWith(lexCfg, g, "let x = 1")

	assert := assert.New(t)
	if !assert.Error(err) {
		return
	}
	perr, ok := err.(*Error)
	if !assert.True(ok) {
		return
	}
	assert.Equal(ErrExpectedToken, perr.Kind)
}

func Test_Engine_requiresEofWhenSet(t *testing.T) {
	lexCfg, g := letBindingGrammar()

	_, err := parseWith(lexCfg, g, "let x = 1; let y = 2;")

	assert := assert.New(t)
	if !assert.Error(err) {
		return
	}
	perr, ok := err.(*Error)
	if !assert.True(ok) {
		return
	}
	assert.Equal(ErrMissingEof, perr.Kind)
}

func Test_Engine_isOneOfChoosesMatchingAlt(t *testing.T) {
	lexCfg := lex.NewConfig()
	lexCfg.AddTokens([]string{"+", "-"})

	g := grammar.New()
	g.AddNode("entry", []grammar.Rule{
		grammar.IsOneOf([]grammar.Alt{
			{Token: grammar.Token(grammar.Literal("+")), Params: []grammar.Parameter{grammar.True("sawPlus")}},
			{Token: grammar.Token(grammar.Literal("-")), Params: []grammar.Parameter{grammar.True("sawMinus")}},
		}),
	}, map[string]grammar.VariableKind{"sawPlus": grammar.KindBoolean, "sawMinus": grammar.KindBoolean})

	result, err := parseWith(lexCfg, g, "-")

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.False(result.Entry.GetBool("sawPlus"))
	assert.True(result.Entry.GetBool("sawMinus"))
}

func Test_Engine_isOneOfReportsExpectedListOnTotalMiss(t *testing.T) {
	lexCfg := lex.NewConfig()
	lexCfg.AddTokens([]string{"+", "-"})

	g := grammar.New()
	g.AddNode("entry", []grammar.Rule{
		grammar.IsOneOf([]grammar.Alt{
			{Token: grammar.Token(grammar.Literal("+"))},
			{Token: grammar.Token(grammar.Literal("-"))},
		}),
	}, nil)

	_, err := parseWith(lexCfg, g, "*")

	assert := assert.New(t)
	if !assert.Error(err) {
		return
	}
	perr := err.(*Error)
	assert.Equal(ErrExpectedOneOf, perr.Kind)
	assert.Len(perr.ExpectedList, 2)
}

func Test_Engine_whileAccumulatesNodeList(t *testing.T) {
	lexCfg := lex.NewConfig()
	lexCfg.AddTokens([]string{","})

	g := grammar.New()
	g.AddNode("item", []grammar.Rule{
		grammar.Is(grammar.Token(grammar.TextKind()), nil, nil),
	}, nil)
	g.AddNode("entry", []grammar.Rule{
		grammar.Is(grammar.Node("item"), nil, []grammar.Parameter{grammar.Set("items")}),
		grammar.While(grammar.Token(grammar.Literal(",")), []grammar.Rule{
			grammar.Is(grammar.Node("item"), nil, []grammar.Parameter{grammar.Set("items")}),
		}, nil),
	}, map[string]grammar.VariableKind{"items": grammar.KindNodeList})

	result, err := parseWith(lexCfg, g, "a,b,c")

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.Len(result.Entry.GetList("items"), 3)
}

func Test_Engine_hardErrorPropagatesThroughMaybe(t *testing.T) {
	lexCfg := lex.NewConfig()
	lexCfg.AddTokens([]string{"(", ")"})

	g := grammar.New()
	g.AddNode("paren", []grammar.Rule{
		grammar.Is(grammar.Token(grammar.Literal("(")), nil, nil),
		grammar.CommandRule(grammar.HardErrorCommand(true)),
		grammar.Is(grammar.Token(grammar.Literal(")")), nil, nil),
	}, nil)
	g.AddNode("entry", []grammar.Rule{
		grammar.Maybe(grammar.Node("paren"), nil, nil, nil),
	}, nil)

	// "(x" opens a paren but never closes it; once HardErrorCommand has run,
	// the resulting ExpectedToken failure must propagate through the
	// enclosing Maybe instead of being trapped as an ordinary soft miss.
	_, err := parseWith(lexCfg, g, "(x")

	assert := assert.New(t)
	if !assert.Error(err) {
		return
	}
	perr := err.(*Error)
	assert.True(perr.Hard)
}

func Test_Engine_cursorMonotonicOnSuccess(t *testing.T) {
	lexCfg, g := letBindingGrammar()

	src := token.NewSource("let x = 1;")
	toks, perr := lex.Lex(lexCfg, src)
	if !assert.Nil(t, perr) {
		return
	}

	eng := New(g, src, toks)
	cur := &Cursor{}
	globals := newAttrMap(g.Globals)
	_, err := eng.parseNode(g.EntryName(), cur, globals)

	assert := assert.New(t)
	if !assert.Nil(err) {
		return
	}
	assert.GreaterOrEqual(cur.Idx, 0)
}
