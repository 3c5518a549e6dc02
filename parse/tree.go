// Package parse implements the recursive-descent rule interpreter (C5) and
// the typed tree access API (C6).
//
// Grounded on _examples/original_source/src/parser.rs, the Rust crate's
// parser engine: Cursor clone-and-restore backtracking, a LIFO control-
// message bus drained once per rule-list iteration, and hard-vs-soft error
// severity gating which failures a Maybe/IsOneOf/While can trap.
package parse

import (
	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/token"
)

// Cursor is the parser's position in the token stream. ToAdvance defers a
// one-token consume until the next time the cursor is read: a rule that
// just matched a token can still apply parameters (NodeEnd, Set, ...)
// referencing that token before the cursor physically moves past it.
type Cursor struct {
	Idx       int
	ToAdvance bool
}

// Child is a tree node's attribute value when that attribute holds an
// alternative: either a sub-node or a matched token, never both.
type Child struct {
	Node  *Node
	Token token.Token
	isTok bool
}

// ByteRange implements token.Ranged so a Child can be stringified directly.
func (c Child) ByteRange() (int, int) {
	if c.isTok {
		return c.Token.ByteRange()
	}
	if c.Node != nil {
		return c.Node.FirstByte, c.Node.LastByte
	}
	return 0, 0
}

// IsToken reports whether this Child holds a token rather than a node.
func (c Child) IsToken() bool { return c.isTok }

func tokenChild(t token.Token) Child { return Child{Token: t, isTok: true} }
func nodeChild(n *Node) Child        { return Child{Node: n} }

// Value is the runtime storage for one node or global attribute. Which
// field is meaningful is determined by Kind, matching the attribute's
// declared grammar.VariableKind.
type Value struct {
	Kind   grammar.VariableKind
	Node   *Child // KindNode: at most one bound child
	List   []Child
	Bool   bool
	Number int32
}

func zeroValue(kind grammar.VariableKind) *Value {
	v := &Value{Kind: kind}
	if kind == grammar.KindNodeList {
		v.List = []Child{}
	}
	return v
}

type attrMap map[string]*Value

func newAttrMap(defs map[string]grammar.VariableKind) attrMap {
	m := make(attrMap, len(defs))
	for name, kind := range defs {
		m[name] = zeroValue(kind)
	}
	return m
}

// Node is one constructed tree node: the grammar node name it was matched
// against, its attribute values, the byte range of source text it
// covers, and whether its own HardError parameter or command has set the
// hard-error flag.
type Node struct {
	Name      string
	Attrs     attrMap
	FirstByte int
	LastByte  int
	HardError bool

	lastByteSet bool
}

func newNode(name string, def *grammar.NodeDef) *Node {
	return &Node{Name: name, Attrs: newAttrMap(def.Variables)}
}

// Result is the outcome of a successful parse: the root node and the final
// state of every global attribute.
type Result struct {
	Entry   *Node
	Globals attrMap
}
