package expr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies evaluation failures.
type Kind int

const (
	// None is the kind of a nil error.
	None Kind = iota
	// Syntax means the input does not reduce via the grammar.
	Syntax
	// Math means the input is well formed but its value is undefined or not finite.
	Math
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Syntax:
		return "syntax"
	case Math:
		return "math"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SyntaxError reports input that could not be parsed.
type SyntaxError struct {
	// Pos is the rune offset at which parsing failed.
	Pos int
	Msg string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", err.Pos, err.Msg)
}

// MathError reports an operation whose result is undefined or not finite.
type MathError struct {
	// Op is the operator or function that failed.
	Op  string
	Msg string
}

func (err *MathError) Error() string {
	return fmt.Sprintf("math error in %s: %s", err.Op, err.Msg)
}

// KindOf returns the kind of err, looking through errors wrapped with
// github.com/pkg/errors. Errors that are neither a *SyntaxError nor a *MathError
// are reported as Syntax.
func KindOf(err error) Kind {
	if err == nil {
		return None
	}

	switch errors.Cause(err).(type) {
	case *MathError:
		return Math
	default:
		return Syntax
	}
}

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
