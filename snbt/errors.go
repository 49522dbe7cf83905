package snbt

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/nbt/errs"
)

// SyntaxError describes invalid SNBT text. It matches errs.ErrSyntax with errors.Is.
type SyntaxError struct {
	Offset int // byte offset into the input
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Msg    string
}

func newSyntaxError(src string, off int, format string, args ...any) *SyntaxError {
	if off > len(src) {
		off = len(src)
	}

	line, lineStart := 1, 0
	for i := 0; i < off; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	return &SyntaxError{
		Offset: off,
		Line:   line,
		Column: utf8.RuneCountInString(src[lineStart:off]) + 1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", errs.ErrSyntax, e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return errs.ErrSyntax
}
