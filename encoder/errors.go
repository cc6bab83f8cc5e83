package encoder

import (
	"fmt"

	"github.com/sicxe-asm/core/assembler"
)

// EncodingError reports a Pass 2 failure with the source statement that
// triggered it attached, so callers can print a listing-style message
// without threading position information through every call site.
type EncodingError struct {
	Stmt    *assembler.Stmt
	Message string
	Wrapped error
}

func (e *EncodingError) Error() string {
	loc := ""
	if e.Stmt != nil {
		loc = fmt.Sprintf("%s:%d: ", e.Stmt.Section, e.Stmt.LineNo)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s%s: %v", loc, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s%s", loc, e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError builds an EncodingError carrying stmt's location.
func NewEncodingError(stmt *assembler.Stmt, message string) *EncodingError {
	return &EncodingError{Stmt: stmt, Message: message}
}

// WrapEncodingError attaches stmt's location to an existing error. A nil
// err returns nil; an already-wrapped EncodingError passes through
// unchanged.
func WrapEncodingError(stmt *assembler.Stmt, err error) error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EncodingError); ok {
		return ee
	}
	return &EncodingError{Stmt: stmt, Message: "failed to encode statement", Wrapped: err}
}
