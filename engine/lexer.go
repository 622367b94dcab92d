package engine

import (
	"strings"
)

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
	tokenCaret
	tokenLParen
	tokenRParen
	tokenComma
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "end of input"
	case tokenNumber:
		return "number"
	case tokenIdent:
		return "identifier"
	case tokenPlus:
		return "'+'"
	case tokenMinus:
		return "'-'"
	case tokenStar:
		return "'*'"
	case tokenSlash:
		return "'/'"
	case tokenPercent:
		return "'%'"
	case tokenCaret:
		return "'^'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenComma:
		return "','"
	default:
		return "token"
	}
}

type token struct {
	typ  tokenType
	text string
	pos  int
}

var singleCharTokens = map[byte]tokenType{
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenStar,
	'/': tokenSlash,
	'%': tokenPercent,
	'^': tokenCaret,
	'(': tokenLParen,
	')': tokenRParen,
	',': tokenComma,
}

// tokenize splits a sanitized expression into tokens, ending with tokenEOF.
func tokenize(input string) ([]token, error) {
	var tokens []token

	for pos := 0; pos < len(input); {
		ch := input[pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			pos++
		case isDigit(ch) || ch == '.':
			end := scanNumber(input, pos)
			if end == pos {
				return nil, errorf(KindSyntax, "unexpected '.' at %d", pos)
			}
			tokens = append(tokens, token{typ: tokenNumber, text: input[pos:end], pos: pos})
			pos = end
		case isLetter(ch):
			end := pos + 1
			for end < len(input) && (isLetter(input[end]) || isDigit(input[end])) {
				end++
			}
			tokens = append(tokens, token{typ: tokenIdent, text: input[pos:end], pos: pos})
			pos = end
		default:
			typ, ok := singleCharTokens[ch]
			if !ok {
				return nil, errorf(KindSyntax, "unexpected character %q at %d", ch, pos)
			}
			tokens = append(tokens, token{typ: typ, text: string(ch), pos: pos})
			pos++
		}
	}

	return append(tokens, token{typ: tokenEOF, pos: len(input)}), nil
}

// scanNumber returns the end offset of the numeric literal starting at pos.
// It accepts 12, 1.5, .5, 5. and an exponent suffix such as e3, E-3 or e+3.
// An 'e' not followed by digits is left for the identifier scanner, so 2e reads as 2*e.
func scanNumber(input string, pos int) int {
	end := pos
	for end < len(input) && isDigit(input[end]) {
		end++
	}
	intDigits := end - pos

	fracDigits := 0
	if end < len(input) && input[end] == '.' {
		end++
		for end < len(input) && isDigit(input[end]) {
			end++
			fracDigits++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return pos
	}

	if end < len(input) && (input[end] == 'e' || input[end] == 'E') {
		exp := end + 1
		if exp < len(input) && (input[exp] == '+' || input[exp] == '-') {
			exp++
		}
		if exp < len(input) && isDigit(input[exp]) {
			for exp < len(input) && isDigit(input[exp]) {
				exp++
			}
			end = exp
		}
	}

	return end
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// describe renders a token for syntax error details.
func (t token) describe() string {
	if t.typ == tokenNumber || t.typ == tokenIdent {
		return t.typ.String() + " " + strings.TrimSpace(t.text)
	}

	return t.typ.String()
}
