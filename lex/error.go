package lex

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/ruda/token"
)

// PreprocessorError is raised by a Preprocessor that cannot refine the
// token stream it was given (e.g. an unterminated multi-token construct).
// Grounded on internal/tunascript/error.go's SyntaxError: a message plus an
// optional source-line-and-cursor rendering.
type PreprocessorError struct {
	Message string
	Loc     token.Location
	source  token.Source
	hasLoc  bool
}

// NewPreprocessorError builds a PreprocessorError anchored at loc within
// src, used for rendering the offending line in FullMessage.
func NewPreprocessorError(src token.Source, loc token.Location, message string) *PreprocessorError {
	return &PreprocessorError{Message: message, Loc: loc, source: src, hasLoc: true}
}

func (e *PreprocessorError) Error() string {
	if !e.hasLoc {
		return fmt.Sprintf("preprocessor error: %s", e.Message)
	}
	return fmt.Sprintf("preprocessor error: around line %d, col %d: %s", e.Loc.Line, e.Loc.Column, e.Message)
}

// Line returns the 1-indexed line the error occurred on, or 0 if unset.
func (e *PreprocessorError) Line() int {
	if !e.hasLoc {
		return 0
	}
	return e.Loc.Line
}

// FullMessage lays out the offending source line with a cursor under the
// failing column beneath the error text.
func (e *PreprocessorError) FullMessage() string {
	if !e.hasLoc {
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
