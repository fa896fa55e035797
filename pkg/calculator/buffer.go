package calculator

import (
	"github.com/charithe/scicalc/pkg/expr"
)

// MaxCharacters is the default display width.
const MaxCharacters = 22

// Display texts shown after a failed evaluation.
const (
	SyntaxErrorText = "Syntax Error"
	MathErrorText   = "Math Error"
)

// State of a Buffer.
type State int

const (
	// Editing means the content is an expression, possibly a previous result.
	Editing State = iota
	// ErrorDisplayed means the content is an error text and the next edit clears it.
	ErrorDisplayed
)

func (s State) String() string {
	if s == ErrorDisplayed {
		return "error"
	}
	return "editing"
}

// Buffer holds the expression being composed on the keypad.
// This is not thread-safe and should only be accessed by a single goroutine.
type Buffer struct {
	content []rune
	width   int
	state   State
	errKind expr.Kind
}

// NewBuffer creates an empty buffer holding at most width characters. A
// non-positive width selects MaxCharacters; widths too narrow for the error
// texts are widened to fit them.
func NewBuffer(width int) *Buffer {
	if width <= 0 {
		width = MaxCharacters
	}
	if width < len(SyntaxErrorText) {
		width = len(SyntaxErrorText)
	}
	return &Buffer{width: width}
}

// Append adds token to the end of the expression. A constant or an opening
// parenthesis typed straight after a number gets an explicit '*' in front.
// When the result would not fit, the oldest characters are dropped.
func (b *Buffer) Append(token string) {
	if b.state == ErrorDisplayed {
		b.Clear()
	}

	if n := len(b.content); n > 0 && startsNumber(b.content[n-1]) && impliesMultiply(token) {
		token = "*" + token
	}

	ins := []rune(token)
	if len(ins) > b.width {
		ins = ins[len(ins)-b.width:]
	}

	if over := len(b.content) + len(ins) - b.width; over > 0 {
		b.content = append(b.content[:0], b.content[over:]...)
	}

	b.content = append(b.content, ins...)
}

// DeleteLast removes the last character. On an error display it clears the
// whole buffer instead.
func (b *Buffer) DeleteLast() {
	if b.state == ErrorDisplayed {
		b.Clear()
		return
	}

	if n := len(b.content); n > 0 {
		b.content = b.content[:n-1]
	}
}

// Clear empties the buffer and leaves any error state.
func (b *Buffer) Clear() {
	b.content = b.content[:0]
	b.state = Editing
	b.errKind = expr.None
}

// Evaluate replaces the expression with its value, or with an error text, and
// returns the new display. Values too long for the display are rounded.
func (b *Buffer) Evaluate() string {
	v, err := expr.Evaluate(string(b.content))
	if err != nil {
		b.fail(expr.KindOf(err))
		return b.Display()
	}

	b.content = append(b.content[:0], []rune(expr.FormatWidth(v, b.width))...)
	b.state = Editing
	b.errKind = expr.None
	return b.Display()
}

func (b *Buffer) fail(kind expr.Kind) {
	text := SyntaxErrorText
	if kind == expr.Math {
		text = MathErrorText
	} else {
		kind = expr.Syntax
	}

	b.content = append(b.content[:0], []rune(text)...)
	b.state = ErrorDisplayed
	b.errKind = kind
}

// Display returns the text to render.
func (b *Buffer) Display() string {
	return string(b.content)
}

// State returns whether the buffer is being edited or showing an error.
func (b *Buffer) State() State {
	return b.state
}

// ErrorKind returns the kind of the displayed error, or expr.None while editing.
func (b *Buffer) ErrorKind() expr.Kind {
	return b.errKind
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.content)
}

func startsNumber(r rune) bool {
	return expr.IsDigit(r) || r == '.'
}

func impliesMultiply(token string) bool {
	return token == "π" || token == "e" || token == "("
}
