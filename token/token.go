// Package token defines the immutable text source and the token value type
// shared by the lexer, grammar, and parser packages.
package token

import "unicode/utf8"

// Location is a position in a text source. Line is 1-indexed; Column is a
// 0-indexed count of Unicode scalar values since the start of Line.
type Location struct {
	Line   int
	Column int
}

// ControlKind distinguishes the two synthetic control tokens a lexer can
// produce: end-of-line and end-of-input.
type ControlKind int

const (
	Eol ControlKind = iota
	Eof
)

func (c ControlKind) String() string {
	if c == Eol {
		return "end of line"
	}
	return "end of input"
}

// Tag identifies which variant of Kind a given value holds.
type Tag int

const (
	// Text is a run of input that matched none of a lexer's declared
	// literals and was not whitespace or an end-of-line marker.
	Text Tag = iota
	// Literal is an exact match of one of the lexer's declared token
	// strings.
	Literal
	// Complex is a token classified by a preprocessor rather than the raw
	// scan (e.g. fusing a run of digit literals into a "number").
	Complex
	// Whitespace is a run of collapsed space/tab characters.
	Whitespace
	// Control is one of the synthetic Eol/Eof markers.
	Control
)

// Kind is a tagged union describing what a Token represents. Only the
// field(s) relevant to Tag are meaningful.
type Kind struct {
	Tag     Tag
	Literal string      // valid when Tag == Literal
	Complex string      // valid when Tag == Complex
	Control ControlKind // valid when Tag == Control
}

// KindText returns the Kind for an unclassified run of text.
func KindText() Kind { return Kind{Tag: Text} }

// KindLiteral returns the Kind for an exact literal match.
func KindLiteral(lit string) Kind { return Kind{Tag: Literal, Literal: lit} }

// KindComplex returns the Kind for a preprocessor-assigned tag.
func KindComplex(tag string) Kind { return Kind{Tag: Complex, Complex: tag} }

// KindWhitespace returns the Kind for a run of collapsed whitespace.
func KindWhitespace() Kind { return Kind{Tag: Whitespace} }

// KindControl returns the Kind for one of the synthetic control tokens.
func KindControl(c ControlKind) Kind { return Kind{Tag: Control, Control: c} }

// Equal reports whether two Kinds represent the same classification.
func (k Kind) Equal(other Kind) bool {
	if k.Tag != other.Tag {
		return false
	}
	switch k.Tag {
	case Literal:
		return k.Literal == other.Literal
	case Complex:
		return k.Complex == other.Complex
	case Control:
		return k.Control == other.Control
	default:
		return true
	}
}

// Human returns a human-readable description of the kind, suitable for use
// in error messages ("end of input", "'+='", "text").
func (k Kind) Human() string {
	switch k.Tag {
	case Literal:
		return "'" + k.Literal + "'"
	case Complex:
		return k.Complex
	case Whitespace:
		return "whitespace"
	case Control:
		return k.Control.String()
	default:
		return "text"
	}
}

// Token is a single lexical unit: a classification plus the byte range of
// the source text it covers and the location its first scalar value starts
// at.
type Token struct {
	Kind  Kind
	Index int // byte offset into the source text
	Len   int // byte length; 0 only for the synthetic Eof token
	Loc   Location
}

// ByteRange returns the half-open [start, end) byte range the token covers.
func (t Token) ByteRange() (int, int) { return t.Index, t.Index + t.Len }

// Ranged is implemented by anything with a byte range into a Source, which
// is all that is needed to extract its source text.
type Ranged interface {
	ByteRange() (int, int)
}

// Source is an immutable view of the text being lexed and parsed. It is the
// single owner of the backing bytes; tokens and nodes only carry byte
// offsets into it.
type Source struct {
	text string
}

// NewSource wraps text as an immutable Source.
func NewSource(text string) Source { return Source{text: text} }

// Text returns the full source text.
func (s Source) Text() string { return s.text }

// Len returns the byte length of the source text.
func (s Source) Len() int { return len(s.text) }

// Slice returns the substring of the source text in [start, end). Out-of-
// range or inverted bounds are clamped rather than panicking, since error
// paths sometimes carry partially-consistent byte ranges.
func (s Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start > end {
		return ""
	}
	return s.text[start:end]
}

// Stringify returns the exact source text a token covers.
func (s Source) Stringify(t Ranged) string {
	start, end := t.ByteRange()
	return s.Slice(start, end)
}

// StringifyRange returns the source text spanning from the start of a to
// the end of b, inclusive of anything between them (whitespace included).
// If a's range comes after b's, the two are swapped so the result is always
// a non-negative span. When the resulting span is empty, an empty string is
// returned without allocating.
func (s Source) StringifyRange(a, b Ranged) string {
	aStart, aEnd := a.ByteRange()
	bStart, bEnd := b.ByteRange()
	start, end := aStart, bEnd
	if bStart < aStart {
		start, end = bStart, aEnd
	}
	if start == end {
		return ""
	}
	return s.Slice(start, end)
}

// LocationAt recomputes the (line, column) of a byte offset from scratch by
// scanning from the start of the text. It is meant for diagnostics over
// byte offsets that don't come from a live lexer scan (e.g. validator
// messages), not for the hot tokenization path.
func (s Source) LocationAt(byteOffset int) Location {
	if byteOffset > len(s.text) {
		byteOffset = len(s.text)
	}
	loc := Location{Line: 1, Column: 0}
	i := 0
	for i < byteOffset {
		r, size := utf8.DecodeRuneInString(s.text[i:])
		if r == '\n' {
			loc.Line++
			loc.Column = 0
		} else {
			loc.Column++
		}
		i += size
	}
	return loc
}
