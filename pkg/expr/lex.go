package expr

import (
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	// tokenNum is a numeric literal, possibly with a decimal exponent.
	tokenNum
	// tokenIdent is a constant or function name, including π and √.
	tokenIdent
	// tokenOp is one of + - * / ^.
	tokenOp
	tokenOpen
	tokenClose
	// tokenBar is the absolute value delimiter |.
	tokenBar
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenNum:
		return "number"
	case tokenIdent:
		return "identifier"
	case tokenOp:
		return "operator"
	case tokenOpen:
		return "("
	case tokenClose:
		return ")"
	case tokenBar:
		return "|"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex splits src into tokens. The returned slice always ends with a tokenEOF.
func lex(src string) ([]token, error) {
	rs := []rune(src)
	var toks []token

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case IsDigit(r) || r == '.':
			end, err := scanNumber(rs, i)
			if err != nil {
				return nil, err
			}
			text := string(rs[i:end])
			// Out of range literals parse to ±Inf or 0; evaluation reports the former.
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
					return nil, syntaxErrorf(i, "malformed number %q", text)
				}
			}
			toks = append(toks, token{kind: tokenNum, text: text, num: v, pos: i})
			i = end
		case r == 'π' || r == '√':
			toks = append(toks, token{kind: tokenIdent, text: string(r), pos: i})
			i++
		case isLetter(r):
			end := i
			for end < len(rs) && isLetter(rs[end]) {
				end++
			}
			toks = append(toks, token{kind: tokenIdent, text: string(rs[i:end]), pos: i})
			i = end
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks = append(toks, token{kind: tokenOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokenOpen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokenClose, text: ")", pos: i})
			i++
		case r == '|':
			toks = append(toks, token{kind: tokenBar, text: "|", pos: i})
			i++
		default:
			return nil, syntaxErrorf(i, "unexpected character %q", r)
		}
	}

	return append(toks, token{kind: tokenEOF, pos: len(rs)}), nil
}

// scanNumber returns the end of the numeric literal starting at rs[start].
// The exponent is only consumed when at least one digit follows the e, so that
// "2e" stays a number followed by the constant e.
func scanNumber(rs []rune, start int) (int, error) {
	i := start
	digits := 0
	for i < len(rs) && IsDigit(rs[i]) {
		i++
		digits++
	}

	if i < len(rs) && rs[i] == '.' {
		i++
		for i < len(rs) && IsDigit(rs[i]) {
			i++
			digits++
		}
	}

	if digits == 0 {
		return 0, syntaxErrorf(start, "decimal point without digits")
	}

	if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
		j := i + 1
		if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
			j++
		}
		if j < len(rs) && IsDigit(rs[j]) {
			for j < len(rs) && IsDigit(rs[j]) {
				j++
			}
			i = j
		}
	}

	return i, nil
}

// IsDigit reports whether r is one of 0-9. Nothing else counts as a digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
