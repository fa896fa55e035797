package calculator

import (
	"strings"

	"github.com/charithe/scicalc/pkg/expr"
	"github.com/charithe/scicalc/pkg/v1pb"
	"github.com/pkg/errors"
)

// Tokens lists everything a keypad button can append.
var Tokens = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".",
	"+", "-", "*", "/", "(", ")", "^", "^2", "^3", "|",
	"π", "e", "sin(", "cos(", "tan(", "ln(", "log(", "√(",
}

var validTokens = func() map[string]bool {
	m := make(map[string]bool, len(Tokens))
	for _, t := range Tokens {
		m[t] = true
	}
	return m
}()

// Spellings accepted from text front ends for keys that are awkward to type.
var tokenAliases = map[string]string{
	"pi":    "π",
	"sqrt(": "√(",
	"x²":    "^2",
	"x³":    "^3",
	"×":     "*",
	"÷":     "/",
	"−":     "-",
}

// ValidToken reports whether token is a keypad token.
func ValidToken(token string) bool {
	return validTokens[token]
}

// ParseKey converts the text of a key press into a key event. "C" clears,
// "DEL" deletes, "=" evaluates and everything else must be a keypad token.
func ParseKey(key string) (*v1pb.KeyEvent, error) {
	k := strings.TrimSpace(key)
	switch strings.ToUpper(k) {
	case "C", "AC", "CLEAR":
		return &v1pb.KeyEvent{Action: v1pb.CLEAR}, nil
	case "DEL", "DELETE", "BACKSPACE":
		return &v1pb.KeyEvent{Action: v1pb.DELETE}, nil
	case "=":
		return &v1pb.KeyEvent{Action: v1pb.EQUALS}, nil
	}

	if alias, ok := tokenAliases[k]; ok {
		k = alias
	}

	if !ValidToken(k) {
		return nil, errors.Errorf("unknown key %q", key)
	}

	return &v1pb.KeyEvent{Action: v1pb.APPEND, Token: k}, nil
}

// Apply performs the key event on b.
func Apply(b *Buffer, ev *v1pb.KeyEvent) error {
	switch ev.GetAction() {
	case v1pb.APPEND:
		if !ValidToken(ev.GetToken()) {
			return errors.Errorf("unknown token %q", ev.GetToken())
		}
		b.Append(ev.GetToken())
	case v1pb.DELETE:
		b.DeleteLast()
	case v1pb.CLEAR:
		b.Clear()
	case v1pb.EQUALS:
		b.Evaluate()
	default:
		return errors.Errorf("unknown action: %s", ev.GetAction())
	}

	return nil
}

func displayUpdate(b *Buffer) *v1pb.DisplayUpdate {
	return &v1pb.DisplayUpdate{
		Display: b.Display(),
		Error:   errorKindToPB(b.ErrorKind()),
	}
}

func errorKindToPB(k expr.Kind) v1pb.ErrorKind {
	switch k {
	case expr.Syntax:
		return v1pb.SYNTAX
	case expr.Math:
		return v1pb.MATH
	default:
		return v1pb.NONE
	}
}
