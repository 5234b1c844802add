package sparql

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a syntax problem with its position in the input.
type ParseError struct {
	Line    int // 1-based line number
	Col     int // 1-based column (bytes from line start)
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// newParseError builds a ParseError for an offset into input.
func newParseError(input string, pos int, format string, args ...any) *ParseError {
	if pos > len(input) {
		pos = len(input)
	}
	line := strings.Count(input[:pos], "\n") + 1
	col := pos - strings.LastIndexByte(input[:pos], '\n')
	return &ParseError{Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}
