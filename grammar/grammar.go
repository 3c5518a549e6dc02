// Package grammar defines the in-memory grammar model (nodes, rules,
// enumerators, globals, parameters, commands) and its static validator.
//
// Variant types are represented as discriminated structs (a Kind string
// plus the payload field(s) that kind uses) rather than a parallel
// interface-per-variant hierarchy, so every type here serializes through
// encoding/json and BurntSushi/toml by plain struct reflection with no
// custom marshaling code required.
package grammar

// VariableKind is the declared type of a node attribute or a global.
type VariableKind string

const (
	KindNode     VariableKind = "node"
	KindNodeList VariableKind = "node_list"
	KindBoolean  VariableKind = "boolean"
	KindNumber   VariableKind = "number"
)

// TokenKindRef is a serializable mirror of token.Kind, used wherever a
// grammar needs to name a token classification as data (MatchToken's
// "token" variant).
type TokenKindRef struct {
	Tag     string `json:"tag" toml:"tag"` // "text","literal","complex","whitespace","eol","eof"
	Literal string `json:"literal,omitempty" toml:"literal,omitempty"`
	Complex string `json:"complex,omitempty" toml:"complex,omitempty"`
}

// Literal builds a TokenKindRef matching an exact literal.
func Literal(lit string) TokenKindRef { return TokenKindRef{Tag: "literal", Literal: lit} }

// TextKind builds a TokenKindRef matching the Text classification.
func TextKind() TokenKindRef { return TokenKindRef{Tag: "text"} }

// ComplexKind builds a TokenKindRef matching a preprocessor-assigned tag.
func ComplexKind(tag string) TokenKindRef { return TokenKindRef{Tag: "complex", Complex: tag} }

// WhitespaceKind builds a TokenKindRef matching whitespace.
func WhitespaceKind() TokenKindRef { return TokenKindRef{Tag: "whitespace"} }

// EolKind and EofKind build TokenKindRefs matching the control tokens.
func EolKind() TokenKindRef { return TokenKindRef{Tag: "eol"} }
func EofKind() TokenKindRef { return TokenKindRef{Tag: "eof"} }

// MatchToken is what a rule compares the current cursor position against:
// a literal token kind, a named sub-node, an exact word, a named
// enumerator's alternatives, or (deprecated) any single token.
type MatchToken struct {
	Kind      string       `json:"kind" toml:"kind"` // "token","node","word","enumerator","any"
	TokenKind TokenKindRef `json:"token_kind,omitempty" toml:"token_kind,omitempty"`
	Name      string       `json:"name,omitempty" toml:"name,omitempty"` // node or enumerator name
	Word      string       `json:"word,omitempty" toml:"word,omitempty"`
}

func Token(tk TokenKindRef) MatchToken  { return MatchToken{Kind: "token", TokenKind: tk} }
func Node(name string) MatchToken       { return MatchToken{Kind: "node", Name: name} }
func Word(word string) MatchToken       { return MatchToken{Kind: "word", Word: word} }
func Enumerator(name string) MatchToken { return MatchToken{Kind: "enumerator", Name: name} }
func Any() MatchToken                   { return MatchToken{Kind: "any"} }

// Parameter is an action applied when a rule's MatchToken succeeds:
// binding the matched value to an attribute, adjusting a counter or flag,
// pinning a node's byte range, or emitting a control message.
type Parameter struct {
	Kind    string `json:"kind" toml:"kind"`
	Name    string `json:"name,omitempty" toml:"name,omitempty"`
	Bool    bool   `json:"bool,omitempty" toml:"bool,omitempty"`
	Label   string `json:"label,omitempty" toml:"label,omitempty"`
	N       int    `json:"n,omitempty" toml:"n,omitempty"`
	Message string `json:"message,omitempty" toml:"message,omitempty"`
}

func Set(name string) Parameter             { return Parameter{Kind: "set", Name: name} }
func Global(name string) Parameter          { return Parameter{Kind: "global", Name: name} }
func Increment(name string) Parameter       { return Parameter{Kind: "increment", Name: name} }
func Decrement(name string) Parameter       { return Parameter{Kind: "decrement", Name: name} }
func IncrementGlobal(name string) Parameter { return Parameter{Kind: "increment_global", Name: name} }
func DecrementGlobal(name string) Parameter { return Parameter{Kind: "decrement_global", Name: name} }
func True(name string) Parameter            { return Parameter{Kind: "true", Name: name} }
func False(name string) Parameter           { return Parameter{Kind: "false", Name: name} }
func TrueGlobal(name string) Parameter      { return Parameter{Kind: "true_global", Name: name} }
func FalseGlobal(name string) Parameter     { return Parameter{Kind: "false_global", Name: name} }
func HardError(set bool) Parameter          { return Parameter{Kind: "hard_error", Bool: set} }
func NodeStart() Parameter                  { return Parameter{Kind: "node_start"} }
func NodeEnd() Parameter                    { return Parameter{Kind: "node_end"} }
func Goto(label string) Parameter           { return Parameter{Kind: "goto", Label: label} }
func Break(n int) Parameter                 { return Parameter{Kind: "break", N: n} }
func Return() Parameter                     { return Parameter{Kind: "return"} }
func Back(n int) Parameter                  { return Parameter{Kind: "back", N: n} }
func Print(message string) Parameter        { return Parameter{Kind: "print", Message: message} }
func Debug() Parameter                      { return Parameter{Kind: "debug"} }

// Comparison is the relational operator a Compare command tests.
type Comparison string

const (
	Equal              Comparison = "eq"
	NotEqual           Comparison = "neq"
	GreaterThan        Comparison = "gt"
	LessThan           Comparison = "lt"
	GreaterThanOrEqual Comparison = "gte"
	LessThanOrEqual    Comparison = "lte"
)

// Command is a standalone grammar action that doesn't gate on a token
// match: comparing two attributes, raising a message error, forcing the
// node's hard-error flag, jumping to a label, declaring a label, or
// emitting a diagnostic.
type Command struct {
	Kind       string     `json:"kind" toml:"kind"` // "compare","error","hard_error","goto","label","print"
	Left       string     `json:"left,omitempty" toml:"left,omitempty"`
	Right      string     `json:"right,omitempty" toml:"right,omitempty"`
	Comparison Comparison `json:"comparison,omitempty" toml:"comparison,omitempty"`
	Rules      []Rule     `json:"rules,omitempty" toml:"rules,omitempty"`
	Message    string     `json:"message,omitempty" toml:"message,omitempty"`
	Set        bool       `json:"set,omitempty" toml:"set,omitempty"`
	Label      string     `json:"label,omitempty" toml:"label,omitempty"`
}

func Compare(left, right string, cmp Comparison, rules []Rule) Command {
	return Command{Kind: "compare", Left: left, Right: right, Comparison: cmp, Rules: rules}
}
func ErrorCommand(message string) Command { return Command{Kind: "error", Message: message} }
func HardErrorCommand(set bool) Command   { return Command{Kind: "hard_error", Set: set} }
func GotoCommand(label string) Command    { return Command{Kind: "goto", Label: label} }
func LabelCommand(name string) Command    { return Command{Kind: "label", Label: name} }
func PrintCommand(message string) Command { return Command{Kind: "print", Message: message} }

// Alt is one alternative of an IsOneOf/MaybeOneOf/UntilOneOf rule: a token
// to try matching, the rules to run on a match, and the parameters to
// apply.
type Alt struct {
	Token  MatchToken  `json:"token" toml:"token"`
	Rules  []Rule      `json:"rules,omitempty" toml:"rules,omitempty"`
	Params []Parameter `json:"parameters,omitempty" toml:"parameters,omitempty"`
}

// Rule is one step of a node's rule list. Which fields are meaningful
// depends on Kind; see the constructor functions below for the shape each
// variant expects.
type Rule struct {
	Kind      string      `json:"kind" toml:"kind"`
	Token     *MatchToken `json:"token,omitempty" toml:"token,omitempty"`
	Rules     []Rule      `json:"rules,omitempty" toml:"rules,omitempty"`
	Params    []Parameter `json:"parameters,omitempty" toml:"parameters,omitempty"`
	IsRules   []Rule      `json:"is_rules,omitempty" toml:"is_rules,omitempty"`
	IsntRules []Rule      `json:"isnt_rules,omitempty" toml:"isnt_rules,omitempty"`
	Alts      []Alt       `json:"alternatives,omitempty" toml:"alternatives,omitempty"`
	Command   *Command    `json:"command,omitempty" toml:"command,omitempty"`
}

func Is(t MatchToken, rules []Rule, params []Parameter) Rule {
	return Rule{Kind: "is", Token: &t, Rules: rules, Params: params}
}
func Isnt(t MatchToken, rules []Rule, params []Parameter) Rule {
	return Rule{Kind: "isnt", Token: &t, Rules: rules, Params: params}
}
func IsOneOf(alts []Alt) Rule { return Rule{Kind: "is_one_of", Alts: alts} }
func Maybe(t MatchToken, isRules, isntRules []Rule, params []Parameter) Rule {
	return Rule{Kind: "maybe", Token: &t, IsRules: isRules, IsntRules: isntRules, Params: params}
}
func MaybeOneOf(alts []Alt, isntRules []Rule) Rule {
	return Rule{Kind: "maybe_one_of", Alts: alts, IsntRules: isntRules}
}
func While(t MatchToken, rules []Rule, params []Parameter) Rule {
	return Rule{Kind: "while", Token: &t, Rules: rules, Params: params}
}
func Loop(rules []Rule) Rule { return Rule{Kind: "loop", Rules: rules} }
func Until(t MatchToken, rules []Rule, params []Parameter) Rule {
	return Rule{Kind: "until", Token: &t, Rules: rules, Params: params}
}
func UntilOneOf(alts []Alt) Rule { return Rule{Kind: "until_one_of", Alts: alts} }
func CommandRule(c Command) Rule { return Rule{Kind: "command", Command: &c} }

// Enumerator is a named, ordered set of alternative MatchTokens, tried in
// declaration order wherever the grammar references it by name.
type Enumerator struct {
	Name   string       `json:"name" toml:"name"`
	Values []MatchToken `json:"values" toml:"values"`
}

// NodeDef is one node's rule list and the attributes it declares.
type NodeDef struct {
	Name      string                  `json:"name" toml:"name"`
	Rules     []Rule                  `json:"rules" toml:"rules"`
	Variables map[string]VariableKind `json:"variables,omitempty" toml:"variables,omitempty"`
}

// Grammar is the full declarative grammar: every node, every enumerator,
// the global attributes threaded through the whole parse, the entry node
// name, and the eof mode flag (require the cursor to reach end-of-input
// for a parse to be considered complete).
type Grammar struct {
	Nodes       map[string]*NodeDef     `json:"nodes" toml:"nodes"`
	Enumerators map[string]*Enumerator  `json:"enumerators,omitempty" toml:"enumerators,omitempty"`
	Globals     map[string]VariableKind `json:"globals,omitempty" toml:"globals,omitempty"`
	Entry       string                  `json:"entry" toml:"entry"`
	EOF         bool                    `json:"eof" toml:"eof"`
}

// DefaultEntry is the entry node name used when a Grammar doesn't set one.
const DefaultEntry = "entry"

// New returns an empty Grammar with the default entry node name.
func New() *Grammar {
	return &Grammar{
		Nodes:       make(map[string]*NodeDef),
		Enumerators: make(map[string]*Enumerator),
		Globals:     make(map[string]VariableKind),
		Entry:       DefaultEntry,
	}
}

// AddNode declares a node with the given rules and attribute types.
func (g *Grammar) AddNode(name string, rules []Rule, variables map[string]VariableKind) {
	g.Nodes[name] = &NodeDef{Name: name, Rules: rules, Variables: variables}
}

// AddEnumerator declares a named ordered set of alternatives.
func (g *Grammar) AddEnumerator(name string, values []MatchToken) {
	g.Enumerators[name] = &Enumerator{Name: name, Values: values}
}

// SetGlobal declares a global attribute's type.
func (g *Grammar) SetGlobal(name string, kind VariableKind) {
	g.Globals[name] = kind
}

// EntryName returns the configured entry node, defaulting to DefaultEntry.
func (g *Grammar) EntryName() string {
	if g.Entry == "" {
		return DefaultEntry
	}
	return g.Entry
}
