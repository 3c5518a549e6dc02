package parse

import (
	"fmt"

	"github.com/dekarrin/ruda/grammar"
)

func (e *Engine) execIs(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	ok, val, softErr, hardErr := e.matchToken(*r.Token, cur, globals, true)
	if hardErr != nil {
		return hardErr
	}
	if !ok {
		return softErr
	}
	if err := e.applyParams(r.Params, val, cur, globals, node, bus); err != nil {
		return err
	}
	if val.IsToken() {
		cur.ToAdvance = true
	}
	nested, err := e.parseRules(r.Rules, cur, globals, node)
	if err != nil {
		return err
	}
	if nested.kind != ctrlOk {
		bus.push(nested)
	}
	return nil
}

func (e *Engine) execIsnt(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	saved := *cur
	ok, _, _, hardErr := e.matchToken(*r.Token, cur, globals, true)
	if hardErr != nil {
		return hardErr
	}
	if ok {
		t := e.current(cur)
		*cur = saved
		return (&Error{Kind: ErrExpectedToNotBe, Found: t.Kind.Human()}).withLocation(e.src, t.Loc)
	}
	if err := e.applyParams(r.Params, Child{}, cur, globals, node, bus); err != nil {
		return err
	}
	nested, err := e.parseRules(r.Rules, cur, globals, node)
	if err != nil {
		return err
	}
	if nested.kind != ctrlOk {
		bus.push(nested)
	}
	return nil
}

func (e *Engine) execIsOneOf(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	var expected []string
	for _, alt := range r.Alts {
		saved := *cur
		ok, val, _, hardErr := e.matchToken(alt.Token, cur, globals, true)
		if hardErr != nil {
			return hardErr
		}
		if !ok {
			*cur = saved
			expected = append(expected, humanizeMatchToken(alt.Token))
			continue
		}
		if err := e.applyParams(alt.Params, val, cur, globals, node, bus); err != nil {
			return err
		}
		if val.IsToken() {
			cur.ToAdvance = true
		}
		nested, err := e.parseRules(alt.Rules, cur, globals, node)
		if err != nil {
			return err
		}
		if nested.kind != ctrlOk {
			bus.push(nested)
		}
		return nil
	}
	t := e.current(cur)
	return (&Error{Kind: ErrExpectedOneOf, ExpectedList: expected, Found: t.Kind.Human()}).withLocation(e.src, t.Loc)
}

func (e *Engine) execMaybe(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	saved := *cur
	ok, val, _, hardErr := e.matchToken(*r.Token, cur, globals, true)
	if hardErr != nil {
		return hardErr
	}
	var rules []grammar.Rule
	if ok {
		if err := e.applyParams(r.Params, val, cur, globals, node, bus); err != nil {
			return err
		}
		if val.IsToken() {
			cur.ToAdvance = true
		}
		rules = r.IsRules
	} else {
		*cur = saved
		rules = r.IsntRules
	}
	nested, err := e.parseRules(rules, cur, globals, node)
	if err != nil {
		return err
	}
	if nested.kind != ctrlOk {
		bus.push(nested)
	}
	return nil
}

func (e *Engine) execMaybeOneOf(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	for _, alt := range r.Alts {
		saved := *cur
		ok, val, _, hardErr := e.matchToken(alt.Token, cur, globals, true)
		if hardErr != nil {
			return hardErr
		}
		if !ok {
			*cur = saved
			continue
		}
		if err := e.applyParams(alt.Params, val, cur, globals, node, bus); err != nil {
			return err
		}
		if val.IsToken() {
			cur.ToAdvance = true
		}
		nested, err := e.parseRules(alt.Rules, cur, globals, node)
		if err != nil {
			return err
		}
		if nested.kind != ctrlOk {
			bus.push(nested)
		}
		return nil
	}
	nested, err := e.parseRules(r.IsntRules, cur, globals, node)
	if err != nil {
		return err
	}
	if nested.kind != ctrlOk {
		bus.push(nested)
	}
	return nil
}

// execWhile attempts its token exactly once; the calling parseRules loop
// re-enters this same rule (without advancing) for as long as it keeps
// matching, so the "repeat" in "while the token matches, repeat" comes from
// the caller's rule-index loop, not from a loop in here.
func (e *Engine) execWhile(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) (bool, *Error) {
	saved := *cur
	ok, val, _, hardErr := e.matchToken(*r.Token, cur, globals, true)
	if hardErr != nil {
		return false, hardErr
	}
	if !ok {
		*cur = saved
		return false, nil
	}
	if err := e.applyParams(r.Params, val, cur, globals, node, bus); err != nil {
		return false, err
	}
	if val.IsToken() {
		cur.ToAdvance = true
	}
	nested, err := e.parseRules(r.Rules, cur, globals, node)
	if err != nil {
		return false, err
	}
	if nested.kind != ctrlOk {
		bus.push(nested)
	}
	return true, nil
}

func (e *Engine) execUntil(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	for {
		e.settle(cur)
		ok, val, _, hardErr := e.matchToken(*r.Token, cur, globals, false)
		if hardErr != nil {
			return hardErr
		}
		if ok {
			if err := e.applyParams(r.Params, val, cur, globals, node, bus); err != nil {
				return err
			}
			cur.ToAdvance = true
			nested, err := e.parseRules(r.Rules, cur, globals, node)
			if err != nil {
				return err
			}
			if nested.kind != ctrlOk {
				bus.push(nested)
			}
			return nil
		}
		t := e.toks[cur.Idx]
		if isEof(t) {
			return (&Error{Kind: ErrCouldNotFindToken, Expected: humanizeMatchToken(*r.Token), Found: t.Kind.Human()}).withLocation(e.src, t.Loc)
		}
		cur.Idx++
	}
}

func (e *Engine) execUntilOneOf(r grammar.Rule, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	var expected []string
	for _, alt := range r.Alts {
		expected = append(expected, humanizeMatchToken(alt.Token))
	}
	for {
		e.settle(cur)
		matched := false
		for _, alt := range r.Alts {
			saved := *cur
			ok, val, _, hardErr := e.matchToken(alt.Token, cur, globals, false)
			if hardErr != nil {
				return hardErr
			}
			if !ok {
				*cur = saved
				continue
			}
			if err := e.applyParams(alt.Params, val, cur, globals, node, bus); err != nil {
				return err
			}
			cur.ToAdvance = true
			nested, err := e.parseRules(alt.Rules, cur, globals, node)
			if err != nil {
				return err
			}
			if nested.kind != ctrlOk {
				bus.push(nested)
			}
			matched = true
			break
		}
		if matched {
			return nil
		}
		t := e.toks[cur.Idx]
		if isEof(t) {
			return (&Error{Kind: ErrCouldNotFindToken, ExpectedList: expected, Found: t.Kind.Human()}).withLocation(e.src, t.Loc)
		}
		cur.Idx++
	}
}

func (e *Engine) execCommand(c grammar.Command, cur *Cursor, globals attrMap, node *Node, bus *msgBus) *Error {
	switch c.Kind {
	case "compare":
		left, lok := node.Attrs[c.Left]
		right, rok := node.Attrs[c.Right]
		if !lok {
			return e.structural(ErrVariableNotFound, c.Left, cur)
		}
		if !rok {
			return e.structural(ErrVariableNotFound, c.Right, cur)
		}
		if compareValues(left, right, c.Comparison) {
			nested, err := e.parseRules(c.Rules, cur, globals, node)
			if err != nil {
				return err
			}
			if nested.kind != ctrlOk {
				bus.push(nested)
			}
		}
		return nil
	case "error":
		t := e.current(cur)
		return (&Error{Kind: ErrMessage, Message: c.Message}).withLocation(e.src, t.Loc)
	case "hard_error":
		node.HardError = c.Set
		return nil
	case "goto":
		bus.push(ctrl{kind: ctrlGoto, label: c.Label})
		return nil
	case "label":
		return nil
	case "print":
		fmt.Fprintln(e.debug, c.Message)
		return nil
	}
	return nil
}

func compareValues(l, r *Value, cmp grammar.Comparison) bool {
	switch l.Kind {
	case grammar.KindNumber:
		if r.Kind != grammar.KindNumber {
			return false
		}
		switch cmp {
		case grammar.Equal:
			return l.Number == r.Number
		case grammar.NotEqual:
			return l.Number != r.Number
		case grammar.GreaterThan:
			return l.Number > r.Number
		case grammar.LessThan:
			return l.Number < r.Number
		case grammar.GreaterThanOrEqual:
			return l.Number >= r.Number
		case grammar.LessThanOrEqual:
			return l.Number <= r.Number
		}
	case grammar.KindBoolean:
		if r.Kind != grammar.KindBoolean {
			return false
		}
		switch cmp {
		case grammar.Equal:
			return l.Bool == r.Bool
		case grammar.NotEqual:
			return l.Bool != r.Bool
		}
	case grammar.KindNode:
		if r.Kind != grammar.KindNode {
			return false
		}
		eq := nodeValuesEqual(l, r)
		switch cmp {
		case grammar.Equal:
			return eq
		case grammar.NotEqual:
			return !eq
		}
	case grammar.KindNodeList:
		// No defined ordering/equality for lists; only NotEqual holds.
		return cmp == grammar.NotEqual
	}
	return false
}

func nodeValuesEqual(l, r *Value) bool {
	if l.Node == nil && r.Node == nil {
		return true
	}
	if l.Node == nil || r.Node == nil {
		return false
	}
	lc, rc := *l.Node, *r.Node
	if lc.IsToken() != rc.IsToken() {
		return false
	}
	if lc.IsToken() {
		return lc.Token.Kind.Equal(rc.Token.Kind)
	}
	if lc.Node == nil || rc.Node == nil {
		return lc.Node == rc.Node
	}
	return lc.Node.Name == rc.Node.Name
}
