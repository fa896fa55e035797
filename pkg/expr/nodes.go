package expr

import (
	"math"
	"strconv"
)

// A Node is a parsed sub-expression.
type Node interface {
	// Eval computes the value of the sub-expression. The result is always
	// finite when the error is nil.
	Eval() (float64, error)

	// String returns a fully parenthesised form of the sub-expression.
	String() string
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (n *Number) Eval() (float64, error) {
	return finite("number", n.Value)
}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Const is a named constant: π or e.
type Const struct {
	Name  string
	Value float64
}

func (c *Const) Eval() (float64, error) {
	return c.Value, nil
}

func (c *Const) String() string {
	return c.Name
}

// Neg negates its operand.
type Neg struct {
	X Node
}

func (n *Neg) Eval() (float64, error) {
	v, err := n.X.Eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *Neg) String() string {
	return "-" + n.X.String()
}

// BinaryOp is one of + - * / ^ applied to two operands.
type BinaryOp struct {
	Op    string
	Left  Node
	Right Node
}

func (b *BinaryOp) Eval() (float64, error) {
	x, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	y, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case "+":
		return finite(b.Op, x+y)
	case "-":
		return finite(b.Op, x-y)
	case "*":
		return finite(b.Op, x*y)
	case "/":
		if y == 0 {
			return 0, &MathError{Op: b.Op, Msg: "division by zero"}
		}
		return finite(b.Op, x/y)
	case "^":
		return finite(b.Op, math.Pow(x, y))
	default:
		return 0, &MathError{Op: b.Op, Msg: "unknown operator"}
	}
}

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + b.Op + b.Right.String() + ")"
}

// Call applies a one-argument function. Name is one of sin, cos, tan, ln, log,
// sqrt or abs.
type Call struct {
	Name string
	Arg  Node
}

func (c *Call) Eval() (float64, error) {
	x, err := c.Arg.Eval()
	if err != nil {
		return 0, err
	}

	switch c.Name {
	case "sin":
		return finite(c.Name, math.Sin(x))
	case "cos":
		return finite(c.Name, math.Cos(x))
	case "tan":
		return finite(c.Name, math.Tan(x))
	case "ln", "log":
		if x <= 0 {
			return 0, &MathError{Op: c.Name, Msg: "logarithm of a non-positive number"}
		}
		if c.Name == "ln" {
			return finite(c.Name, math.Log(x))
		}
		return finite(c.Name, math.Log10(x))
	case "sqrt":
		return finite(c.Name, math.Sqrt(x))
	case "abs":
		return math.Abs(x), nil
	default:
		return 0, &MathError{Op: c.Name, Msg: "unknown function"}
	}
}

func (c *Call) String() string {
	if c.Name == "abs" {
		return "|" + c.Arg.String() + "|"
	}
	return c.Name + "(" + c.Arg.String() + ")"
}

func finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, &MathError{Op: op, Msg: "result is not a number"}
	}
	if math.IsInf(v, 0) {
		return 0, &MathError{Op: op, Msg: "result is infinite"}
	}
	return v, nil
}
