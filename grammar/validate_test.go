package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Validate_passesMinimalGrammar(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("x")), nil, nil),
	}, nil)

	result := Validate(g, []string{"x"})

	assert := assert.New(t)
	assert.True(result.Pass())
	assert.Empty(result.Errors)
}

func Test_Validate_flagsNodeNotFound(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Node("missing"), nil, nil),
	}, nil)

	result := Validate(g, nil)

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("NodeNotFound", result.Errors[0].Kind)
	assert.Equal("missing", result.Errors[0].Name)
}

func Test_Validate_flagsEnumeratorNotFound(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Enumerator("missing"), nil, nil),
	}, nil)

	result := Validate(g, nil)

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("EnumeratorNotFound", result.Errors[0].Kind)
}

func Test_Validate_flagsTokenNotFound(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("+")), nil, nil),
	}, nil)

	result := Validate(g, []string{"-"})

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("TokenNotFound", result.Errors[0].Kind)
	assert.Equal("+", result.Errors[0].Name)
}

func Test_Validate_flagsVariableNotFoundOnSet(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("x")), nil, []Parameter{Set("undeclared")}),
	}, nil)

	result := Validate(g, []string{"x"})

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("VariableNotFound", result.Errors[0].Kind)
}

func Test_Validate_flagsCantUseVariableOnKindMismatch(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("x")), nil, []Parameter{Increment("flag")}),
	}, map[string]VariableKind{"flag": KindBoolean})

	result := Validate(g, []string{"x"})

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("CantUseVariable", result.Errors[0].Kind)
}

func Test_Validate_flagsCantUseVariableOnSetOfNonNodeKind(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("x")), nil, []Parameter{Set("count")}),
	}, map[string]VariableKind{"count": KindNumber})

	result := Validate(g, []string{"x"})

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("CantUseVariable", result.Errors[0].Kind)
	assert.Equal("count", result.Errors[0].Name)
}

func Test_Validate_flagsLabelNotFound(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		CommandRule(GotoCommand("nowhere")),
	}, nil)

	result := Validate(g, nil)

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("LabelNotFound", result.Errors[0].Kind)
}

func Test_Validate_gotoResolvesLabelInSameRuleList(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		CommandRule(GotoCommand("done")),
		CommandRule(LabelCommand("done")),
	}, nil)

	result := Validate(g, nil)

	assert := assert.New(t)
	assert.True(result.Pass())
}

func Test_Validate_warnsUnusedVariable(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Token(Literal("x")), nil, nil),
	}, map[string]VariableKind{"count": KindNumber})

	result := Validate(g, []string{"x"})

	assert := assert.New(t)
	if !assert.Len(result.Warnings, 1) {
		return
	}
	assert.Equal("UnusedVariable", result.Warnings[0].Kind)
}

func Test_Validate_warnsUsedDeprecatedOnAny(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		Is(Any(), nil, nil),
	}, nil)

	result := Validate(g, nil)

	assert := assert.New(t)
	if !assert.Len(result.Warnings, 1) {
		return
	}
	assert.Equal("UsedDeprecated", result.Warnings[0].Kind)
	assert.True(result.Pass())
	assert.False(result.Success())
}

func Test_Validate_warnsUnusualToken(t *testing.T) {
	g := New()

	result := Validate(g, []string{"1st"})

	assert := assert.New(t)
	if !assert.Len(result.Warnings, 1) {
		return
	}
	assert.Equal("UnusualToken", result.Warnings[0].Kind)
}

func Test_Validate_flagsEmptyToken(t *testing.T) {
	g := New()

	result := Validate(g, []string{""})

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("EmptyToken", result.Errors[0].Kind)
}

func Test_Validate_compareChecksNodeLocalVariables(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		CommandRule(Compare("a", "b", Equal, nil)),
	}, map[string]VariableKind{"a": KindNumber, "b": KindNumber})

	result := Validate(g, nil)

	assert := assert.New(t)
	assert.True(result.Pass())
}

func Test_Validate_compareFlagsNumberMismatch(t *testing.T) {
	g := New()
	g.AddNode("entry", []Rule{
		CommandRule(Compare("a", "b", Equal, nil)),
	}, map[string]VariableKind{"a": KindNumber, "b": KindBoolean})

	result := Validate(g, nil)

	assert := assert.New(t)
	if !assert.Len(result.Errors, 1) {
		return
	}
	assert.Equal("CantUseVariable", result.Errors[0].Kind)
}
