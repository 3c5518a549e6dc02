package parse

import (
	"fmt"

	"github.com/dekarrin/ruda/grammar"
)

func (e *Engine) applyParams(params []grammar.Parameter, val Child, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	for _, p := range params {
		if err := e.applyParam(p, val, cur, globals, node, bus); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyParam(p grammar.Parameter, val Child, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	switch p.Kind {
	case "set":
		return e.bindAttr(node.Attrs, p.Name, val, cur)
	case "global":
		return e.bindAttr(globals, p.Name, val, cur)
	case "increment":
		return e.adjustNumber(node.Attrs, p.Name, 1, cur)
	case "decrement":
		return e.adjustNumber(node.Attrs, p.Name, -1, cur)
	case "increment_global":
		return e.adjustNumber(globals, p.Name, 1, cur)
	case "decrement_global":
		return e.adjustNumber(globals, p.Name, -1, cur)
	case "true":
		return e.setBool(node.Attrs, p.Name, true, cur)
	case "false":
		return e.setBool(node.Attrs, p.Name, false, cur)
	case "true_global":
		return e.setBool(globals, p.Name, true, cur)
	case "false_global":
		return e.setBool(globals, p.Name, false, cur)
	case "hard_error":
		node.HardError = p.Bool
	case "node_start":
		node.FirstByte = e.toks[cur.Idx].Index
	case "node_end":
		t := e.toks[cur.Idx]
		node.LastByte = t.Index + t.Len
		node.lastByteSet = true
	case "goto":
		bus.push(ctrl{kind: ctrlGoto, label: p.Label})
	case "break":
		n := p.N
		if n <= 0 {
			n = 1
		}
		bus.push(ctrl{kind: ctrlBreak, n: n})
	case "return":
		bus.push(ctrl{kind: ctrlReturn})
	case "back":
		n := p.N
		if n <= 0 {
			n = 1
		}
		bus.push(ctrl{kind: ctrlBack, n: n})
	case "print":
		fmt.Fprintln(e.debug, p.Message)
	case "debug":
		fmt.Fprintf(e.debug, "%s: %+v\n", node.Name, node.Attrs)
	}
	return nil
}

func (e *Engine) bindAttr(m attrMap, name string, val Child, cur *Cursor) *Error {
	v, ok := m[name]
	if !ok {
		return e.structural(ErrVariableNotFound, name, cur)
	}
	switch v.Kind {
	case grammar.KindNode:
		c := val
		v.Node = &c
	case grammar.KindNodeList:
		v.List = append(v.List, val)
	default:
		return (&Error{Kind: ErrCannotSetVariable, Hard: true, VarName: name, VarKind: v.Kind}).withLocation(e.src, e.current(cur).Loc)
	}
	return nil
}

func (e *Engine) adjustNumber(m attrMap, name string, delta int32, cur *Cursor) *Error {
	v, ok := m[name]
	if !ok {
		return e.structural(ErrVariableNotFound, name, cur)
	}
	if v.Kind != grammar.KindNumber {
		return (&Error{Kind: ErrUncountableVariable, Hard: true, VarName: name, VarKind: v.Kind}).withLocation(e.src, e.current(cur).Loc)
	}
	v.Number += delta
	return nil
}

func (e *Engine) setBool(m attrMap, name string, value bool, cur *Cursor) *Error {
	v, ok := m[name]
	if !ok {
		return e.structural(ErrVariableNotFound, name, cur)
	}
	if v.Kind != grammar.KindBoolean {
		return (&Error{Kind: ErrCannotSetVariable, Hard: true, VarName: name, VarKind: v.Kind}).withLocation(e.src, e.current(cur).Loc)
	}
	v.Bool = value
	return nil
}
