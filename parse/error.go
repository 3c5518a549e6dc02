package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/ruda/grammar"
	"github.com/dekarrin/ruda/token"
)

// ErrorKind identifies which error taxonomy an Error carries. The
// first group (ExpectedToken..Eof) is user-facing: they
// describe a defect in the input text against an otherwise-valid grammar.
// The second group (NodeNotFound..CannotBreak) indicates the grammar
// itself is malformed in a way Validate should have already caught.
type ErrorKind string

const (
	ErrExpectedToken     ErrorKind = "ExpectedToken"
	ErrExpectedWord      ErrorKind = "ExpectedWord"
	ErrExpectedOneOf     ErrorKind = "ExpectedOneOf"
	ErrExpectedToNotBe   ErrorKind = "ExpectedToNotBe"
	ErrCouldNotFindToken ErrorKind = "CouldNotFindToken"
	ErrMessage           ErrorKind = "Message"
	ErrMissingEof        ErrorKind = "MissingEof"
	ErrEof               ErrorKind = "Eof"

	ErrNodeNotFound        ErrorKind = "NodeNotFound"
	ErrEnumeratorNotFound  ErrorKind = "EnumeratorNotFound"
	ErrVariableNotFound    ErrorKind = "VariableNotFound"
	ErrLabelNotFound       ErrorKind = "LabelNotFound"
	ErrCannotSetVariable   ErrorKind = "CannotSetVariable"
	ErrUncountableVariable ErrorKind = "UncountableVariable"
	ErrCannotGoBack        ErrorKind = "CannotGoBack"
	ErrCannotBreak         ErrorKind = "CannotBreak"
)

// Error is the single error type the parser produces. Severity (Hard)
// determines whether an enclosing Maybe/IsOneOf/While/UntilOneOf can trap
// it as a backtrackable miss: soft errors can be trapped, hard errors
// (either explicitly promoted via the HardError parameter/command, or one
// of the structural kinds a validated grammar should never produce)
// propagate through every enclosing optional construct.
type Error struct {
	Kind ErrorKind
	Hard bool
	Loc  token.Location

	Expected     string
	ExpectedList []string
	Found        string
	Message      string
	VarName      string
	VarKind      grammar.VariableKind
	N            int

	Node *Node // deepest node under construction when the error was raised

	source    token.Source
	hasSource bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrExpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case ErrExpectedWord:
		return fmt.Sprintf("expected word %q, found %s", e.Expected, e.Found)
	case ErrExpectedOneOf:
		return fmt.Sprintf("expected one of [%s], found %s", strings.Join(e.ExpectedList, ", "), e.Found)
	case ErrExpectedToNotBe:
		return fmt.Sprintf("did not expect %s", e.Found)
	case ErrCouldNotFindToken:
		return fmt.Sprintf("could not find %s before end of input", e.Expected)
	case ErrMessage:
		return e.Message
	case ErrMissingEof:
		return "expected end of input"
	case ErrEof:
		return "unexpected end of input"
	case ErrNodeNotFound:
		return fmt.Sprintf("node %q not found", e.Expected)
	case ErrEnumeratorNotFound:
		return fmt.Sprintf("enumerator %q not found", e.Expected)
	case ErrVariableNotFound:
		return fmt.Sprintf("variable %q not found", e.VarName)
	case ErrLabelNotFound:
		return fmt.Sprintf("label %q not found", e.Expected)
	case ErrCannotSetVariable:
		return fmt.Sprintf("cannot set variable %q of kind %s", e.VarName, e.VarKind)
	case ErrUncountableVariable:
		return fmt.Sprintf("variable %q of kind %s cannot be counted", e.VarName, e.VarKind)
	case ErrCannotGoBack:
		return fmt.Sprintf("cannot go back %d steps", e.N)
	case ErrCannotBreak:
		return fmt.Sprintf("cannot break %d levels", e.N)
	default:
		return string(e.Kind)
	}
}

func (e *Error) withLocation(src token.Source, loc token.Location) *Error {
	e.Loc = loc
	e.source = src
	e.hasSource = true
	return e
}

// FullMessage lays out the offending source line with a cursor under the
// failing column, the same presentation lex.PreprocessorError uses.
func (e *Error) FullMessage() string {
	if !e.hasSource {
		return e.Error()
	}
	lineText := sourceLine(e.source, e.Loc.Line)
	cursorLine := strings.Repeat(" ", e.Loc.Column) + "^"
	block := rosed.Edit(lineText + "\n" + cursorLine).Wrap(100).String()
	return block + "\n" + e.Error()
}

func sourceLine(src token.Source, line int) string {
	text := src.Text()
	cur := 1
	start := 0
	for i := 0; i < len(text); i++ {
		if cur == line {
			start = i
			break
		}
		if text[i] == '\n' {
			cur++
		}
	}
	end := start
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return text[start:end]
}
