package parse

import (
	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/token"
)

// ByteRange implements token.Ranged, so a Node can be passed directly to
// token.Source.Stringify/StringifyRange.
func (n *Node) ByteRange() (int, int) { return n.FirstByte, n.LastByte }

// GetNumber returns the current value of a Number attribute, or 0 if attr
// isn't declared or isn't a Number.
func (n *Node) GetNumber(attr string) int32 {
	v, ok := n.Attrs[attr]
	if !ok || v.Kind != grammar.KindNumber {
		return 0
	}
	return v.Number
}

// GetBool returns the current value of a Boolean attribute, or false if
// attr isn't declared or isn't a Boolean.
func (n *Node) GetBool(attr string) bool {
	v, ok := n.Attrs[attr]
	if !ok || v.Kind != grammar.KindBoolean {
		return false
	}
	return v.Bool
}

// TryGetNode returns the bound value of a Node-kind attribute and whether
// one has in fact been set (Set/Global never fired, or attr holds a
// different kind, both report false).
func (n *Node) TryGetNode(attr string) (Child, bool) {
	v, ok := n.Attrs[attr]
	if !ok || v.Kind != grammar.KindNode || v.Node == nil {
		return Child{}, false
	}
	return *v.Node, true
}

// GetList returns the accumulated children of a NodeList attribute, or nil
// if attr isn't declared or isn't a NodeList.
func (n *Node) GetList(attr string) []Child {
	v, ok := n.Attrs[attr]
	if !ok || v.Kind != grammar.KindNodeList {
		return nil
	}
	return v.List
}

// StringifyNode returns the exact source text a node's byte range covers.
func StringifyNode(src token.Source, n *Node) string {
	return src.Stringify(n)
}

// StringifyNodesRange returns the source text spanning from the start of a
// to the end of b (whitespace between them included), regardless of which
// one occurs first in the source.
func StringifyNodesRange(src token.Source, a, b token.Ranged) string {
	return src.StringifyRange(a, b)
}
