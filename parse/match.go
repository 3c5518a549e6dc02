package parse

import (
	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/token"
)

func isEof(t token.Token) bool {
	return t.Kind.Tag == token.Control && t.Kind.Control == token.Eof
}

func tokenKindFromRef(ref grammar.TokenKindRef) token.Kind {
	switch ref.Tag {
	case "literal":
		return token.KindLiteral(ref.Literal)
	case "complex":
		return token.KindComplex(ref.Complex)
	case "whitespace":
		return token.KindWhitespace()
	case "eol":
		return token.KindControl(token.Eol)
	case "eof":
		return token.KindControl(token.Eof)
	default:
		return token.KindText()
	}
}

func humanizeMatchToken(mt grammar.MatchToken) string {
	switch mt.Kind {
	case "token":
		return tokenKindFromRef(mt.TokenKind).Human()
	case "word":
		return "word " + mt.Word
	case "node":
		return "node " + mt.Name
	case "enumerator":
		return "enumerator " + mt.Name
	case "any":
		return "any token"
	default:
		return mt.Kind
	}
}

func enumeratorNames(enum *grammar.Enumerator) []string {
	names := make([]string, len(enum.Values))
	for i, v := range enum.Values {
		names[i] = humanizeMatchToken(v)
	}
	return names
}

// matchToken tests mt against the cursor's current position. skipTrivia
// controls whether leading Whitespace/Eol tokens are transparently skipped
// before the comparison — true for every rule variant except the manual
// one-token-at-a-time scan Until/UntilOneOf perform, which must be able to
// match (or consume) trivia itself.
//
// On a match, ok is true and val carries the bound value (a token or, for
// MatchToken "node", the freshly parsed sub-node). On a miss that is just
// an ordinary backtrackable failure, ok is false and softErr describes it.
// hardErr is only set for failures that must propagate unconditionally: a
// dangling enumerator reference, a nested node whose HardError flag was set
// when it failed, or a nested node whose failure was already hard.
func (e *Engine) matchToken(mt grammar.MatchToken, cur *Cursor, globals attrMap, skipTrivia bool) (ok bool, val Child, softErr *Error, hardErr *Error) {
	switch mt.Kind {
	case "token":
		if skipTrivia {
			e.skipTrivia(cur)
		} else {
			e.settle(cur)
		}
		t := e.toks[cur.Idx]
		want := tokenKindFromRef(mt.TokenKind)
		if t.Kind.Equal(want) {
			return true, tokenChild(t), nil, nil
		}
		return false, Child{}, (&Error{Kind: ErrExpectedToken, Expected: want.Human(), Found: t.Kind.Human()}).withLocation(e.src, t.Loc), nil

	case "word":
		if skipTrivia {
			e.skipTrivia(cur)
		} else {
			e.settle(cur)
		}
		t := e.toks[cur.Idx]
		if t.Kind.Tag == token.Text && e.src.Stringify(t) == mt.Word {
			return true, tokenChild(t), nil, nil
		}
		return false, Child{}, (&Error{Kind: ErrExpectedWord, Expected: mt.Word, Found: t.Kind.Human()}).withLocation(e.src, t.Loc), nil

	case "enumerator":
		enum, found := e.g.Enumerators[mt.Name]
		if !found {
			return false, Child{}, nil, e.structural(ErrEnumeratorNotFound, mt.Name, cur)
		}
		if skipTrivia {
			e.skipTrivia(cur)
		} else {
			e.settle(cur)
		}
		for _, alt := range enum.Values {
			saved := *cur
			altOk, altVal, _, altHard := e.matchToken(alt, cur, globals, false)
			if altHard != nil {
				return false, Child{}, nil, altHard
			}
			if altOk {
				return true, altVal, nil, nil
			}
			*cur = saved
		}
		t := e.current(cur)
		return false, Child{}, (&Error{Kind: ErrExpectedOneOf, ExpectedList: enumeratorNames(enum), Found: t.Kind.Human()}).withLocation(e.src, t.Loc), nil

	case "node":
		if skipTrivia {
			e.skipTrivia(cur)
		} else {
			e.settle(cur)
		}
		sub, err := e.parseNode(mt.Name, cur, globals)
		if err != nil {
			hard := err.Hard
			if sub != nil && sub.HardError {
				hard = true
			}
			if hard {
				err.Hard = true
				return false, Child{}, nil, err
			}
			return false, Child{}, err, nil
		}
		return true, nodeChild(sub), nil, nil

	case "any":
		if skipTrivia {
			e.skipTrivia(cur)
		} else {
			e.settle(cur)
		}
		return true, tokenChild(e.toks[cur.Idx]), nil, nil
	}
	return false, Child{}, nil, nil
}
