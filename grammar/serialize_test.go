package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleGrammar() *Grammar {
	g := New()
	g.SetGlobal("depth", KindNumber)
	g.AddEnumerator("op", []MatchToken{Token(Literal("+")), Token(Literal("-"))})
	g.AddNode("entry", []Rule{
		Is(Token(Literal("(")), []Rule{
			Maybe(Enumerator("op"), nil, nil, []Parameter{IncrementGlobal("depth")}),
			CommandRule(Compare("value", "value", Equal, []Rule{CommandRule(PrintCommand("matched"))})),
		}, []Parameter{NodeStart()}),
		Isnt(Token(Literal(")")), nil, []Parameter{HardError(true)}),
	}, map[string]VariableKind{"value": KindNode})
	g.Entry = "entry"
	g.EOF = true
	return g
}

func Test_JSON_roundTrip(t *testing.T) {
	g := sampleGrammar()

	data, err := EncodeJSON(g)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}

	got, err := DecodeJSON(data)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(g, got)
}

func Test_TOML_roundTrip(t *testing.T) {
	g := sampleGrammar()

	data, err := SaveTOML(g)
	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}

	got, err := LoadTOML(data)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(g, got)
}

func Test_Binary_roundTrip(t *testing.T) {
	g := sampleGrammar()

	data := EncodeBinary(g)
	got, err := DecodeBinary(data)

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(g, got)
}
