// Package expr parses and evaluates the expressions composed on a scientific
// calculator keypad.
//
// The grammar, from lowest to highest precedence:
//
//	expr  := term (('+' | '-') term)*
//	term  := power (('*' | '/') power)*
//	power := unary ('^' power)?
//	unary := '-'? atom
//	atom  := NUMBER | 'π' | 'e' | FUNC '(' expr ')' | '√(' expr ')' | '(' expr ')' | '|' expr '|'
//
// FUNC is one of sin, cos, tan, ln and log (base 10). Exponentiation is right
// associative and the unary minus binds tighter than it, so "-2^2" is 4.
//
// Absolute value bars do not nest: a bar that appears while another pair is
// still open is a syntax error.
//
// Every failure is either a *SyntaxError or a *MathError; KindOf tells them
// apart.
package expr
