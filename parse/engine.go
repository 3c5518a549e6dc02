package parse

import (
	"io"

	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/token"
)

// Engine runs a Grammar's rule interpreter over a fixed token stream. One
// Engine parses exactly one input; construct a new one per call to Parse.
type Engine struct {
	g     *grammar.Grammar
	src   token.Source
	toks  []token.Token
	debug io.Writer
}

// New builds an Engine ready to parse toks (the output of lex.Lex over src)
// against g.
func New(g *grammar.Grammar, src token.Source, toks []token.Token) *Engine {
	return &Engine{g: g, src: src, toks: toks, debug: io.Discard}
}

// SetDebugWriter redirects Print/Debug parameter and command output. The
// default is io.Discard.
func (e *Engine) SetDebugWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	e.debug = w
}

// Parse runs the grammar's entry node against the full token stream. If the
// grammar's EOF flag is set, the cursor (after skipping trailing whitespace
// and line breaks) must land on the synthetic end-of-input token or the
// parse fails with ErrMissingEof even though the entry node itself matched.
func (e *Engine) Parse() (*Result, error) {
	cur := &Cursor{}
	globals := newAttrMap(e.g.Globals)
	node, err := e.parseNode(e.g.EntryName(), cur, globals)
	if err != nil {
		return nil, err
	}
	if e.g.EOF {
		e.skipTrivia(cur)
		t := e.current(cur)
		if !(t.Kind.Tag == token.Control && t.Kind.Control == token.Eof) {
			return nil, (&Error{Kind: ErrMissingEof, Found: t.Kind.Human()}).withLocation(e.src, t.Loc)
		}
	}
	return &Result{Entry: node, Globals: globals}, nil
}

// settle applies a cursor's deferred advance, if any, so Idx refers to the
// next token that hasn't yet been consumed.
func (e *Engine) settle(cur *Cursor) {
	if cur.ToAdvance {
		cur.Idx++
		cur.ToAdvance = false
	}
	if cur.Idx >= len(e.toks) {
		cur.Idx = len(e.toks) - 1
	}
}

// current settles the cursor and returns the token it now points to.
func (e *Engine) current(cur *Cursor) token.Token {
	e.settle(cur)
	return e.toks[cur.Idx]
}

// skipTrivia settles the cursor and then advances past any run of
// Whitespace/Eol tokens, stopping at the first significant token (or the
// trailing Eof).
func (e *Engine) skipTrivia(cur *Cursor) {
	e.settle(cur)
	for cur.Idx < len(e.toks)-1 {
		k := e.toks[cur.Idx].Kind
		if k.Tag == token.Whitespace || (k.Tag == token.Control && k.Control == token.Eol) {
			cur.Idx++
			continue
		}
		break
	}
}

// structural builds a hard, always-propagating error for a defect a
// validated grammar should never produce (a dangling node/enumerator/label/
// variable reference).
func (e *Engine) structural(kind ErrorKind, name string, cur *Cursor) *Error {
	t := e.current(cur)
	err := &Error{Kind: kind, Hard: true, Expected: name, VarName: name, Found: t.Kind.Human()}
	return err.withLocation(e.src, t.Loc)
}

type ctrlKind int

const (
	ctrlOk ctrlKind = iota
	ctrlReturn
	ctrlBreak
	ctrlGoto
	ctrlBack
)

// ctrl is one control message on the LIFO bus: Return unwinds to the
// enclosing node's result immediately; Break(n)/Back(n) count down as they
// cross rule-list boundaries; Goto searches the current rule list for a
// matching Label before re-propagating outward.
type ctrl struct {
	kind  ctrlKind
	n     int
	label string
}

type msgBus []ctrl

func (b *msgBus) push(c ctrl) { *b = append(*b, c) }

func (b *msgBus) pop() (ctrl, bool) {
	if len(*b) == 0 {
		return ctrl{}, false
	}
	n := len(*b) - 1
	c := (*b)[n]
	*b = (*b)[:n]
	return c, true
}

// parseNode constructs a Node from its grammar definition and runs its rule
// list. The node's byte range defaults to [first token consumed, end of
// last token consumed) unless a NodeStart/NodeEnd parameter overrides it.
func (e *Engine) parseNode(name string, cur *Cursor, globals attrMap) (*Node, *Error) {
	def, ok := e.g.Nodes[name]
	if !ok {
		return nil, e.structural(ErrNodeNotFound, name, cur)
	}
	node := newNode(name, def)
	node.FirstByte = e.current(cur).Index

	result, err := e.parseRules(def.Rules, cur, globals, node)

	if !node.lastByteSet {
		idx := cur.Idx
		if idx >= len(e.toks) {
			idx = len(e.toks) - 1
		}
		t := e.toks[idx]
		node.LastByte = t.Index + t.Len
	}

	if err != nil {
		if err.Node == nil {
			err.Node = node
		}
		return node, err
	}
	switch result.kind {
	case ctrlOk, ctrlReturn:
		return node, nil
	case ctrlBreak:
		e2 := e.structural(ErrCannotBreak, "", cur)
		e2.N = result.n
		e2.Node = node
		return node, e2
	case ctrlBack:
		e2 := e.structural(ErrCannotGoBack, "", cur)
		e2.N = result.n
		e2.Node = node
		return node, e2
	case ctrlGoto:
		e2 := e.structural(ErrLabelNotFound, result.label, cur)
		e2.Node = node
		return node, e2
	}
	return node, nil
}

// parseRules runs one rule list to completion: a sequential scan that
// While/Loop can make re-visit the same index (by declining to advance),
// draining a per-scope LIFO message bus once after every rule so Goto/
// Break/Return/Back are resolved (or re-propagated) as soon as they fire
// rather than only at the end of the list.
func (e *Engine) parseRules(rules []grammar.Rule, cur *Cursor, globals attrMap, node *Node) (ctrl, *Error) {
	bus := &msgBus{}
	i := 0
	for i < len(rules) {
		r := rules[i]
		advance := true
		var err *Error

		switch r.Kind {
		case "is":
			err = e.execIs(r, cur, globals, node, bus)
		case "isnt":
			err = e.execIsnt(r, cur, globals, node, bus)
		case "is_one_of":
			err = e.execIsOneOf(r, cur, globals, node, bus)
		case "maybe":
			err = e.execMaybe(r, cur, globals, node, bus)
		case "maybe_one_of":
			err = e.execMaybeOneOf(r, cur, globals, node, bus)
		case "while":
			var matched bool
			matched, err = e.execWhile(r, cur, globals, node, bus)
			if err == nil && matched {
				advance = false
			}
		case "loop":
			var nested ctrl
			nested, err = e.parseRules(r.Rules, cur, globals, node)
			if err == nil && nested.kind != ctrlOk {
				bus.push(nested)
			}
			advance = false
		case "until":
			err = e.execUntil(r, cur, globals, node, bus)
		case "until_one_of":
			err = e.execUntilOneOf(r, cur, globals, node, bus)
		case "command":
			err = e.execCommand(*r.Command, cur, globals, node, bus)
		}

		if err != nil {
			return ctrl{}, err
		}
		if advance {
			i++
		}

		for {
			msg, ok := bus.pop()
			if !ok {
				break
			}
			switch msg.kind {
			case ctrlReturn:
				return ctrl{kind: ctrlReturn}, nil
			case ctrlBreak:
				if msg.n <= 1 {
					return ctrl{kind: ctrlOk}, nil
				}
				return ctrl{kind: ctrlBreak, n: msg.n - 1}, nil
			case ctrlBack:
				if msg.n <= i {
					i -= msg.n
				} else {
					return ctrl{kind: ctrlBack, n: msg.n - i}, nil
				}
			case ctrlGoto:
				found := -1
				for j := range rules {
					rr := rules[j]
					if rr.Kind == "command" && rr.Command != nil && rr.Command.Kind == "label" && rr.Command.Label == msg.label {
						found = j
						break
					}
				}
				if found >= 0 {
					i = found
				} else {
					return ctrl{kind: ctrlGoto, label: msg.label}, nil
				}
			}
		}
	}
	return ctrl{kind: ctrlOk}, nil
}
