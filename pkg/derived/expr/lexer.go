package expr

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
	pos  int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	next := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}

	emit := func(kind tokenKind, raw string, start int) {
		tokens = append(tokens, token{kind: kind, raw: raw, pos: start})
	}

	for i < len(input) {
		start := i
		ch := input[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch ch {
		case '(':
			i++
			emit(tokenLParen, "(", start)
			continue
		case ')':
			i++
			emit(tokenRParen, ")", start)
			continue
		case '+':
			i++
			emit(tokenPlus, "+", start)
			continue
		case '-':
			i++
			emit(tokenMinus, "-", start)
			continue
		case '*':
			i++
			emit(tokenStar, "*", start)
			continue
		case '/':
			i++
			emit(tokenSlash, "/", start)
			continue
		case '!':
			i++
			if next() == '=' {
				i++
				if next() == '=' {
					i++
				}
				emit(tokenNeq, "!=", start)
				continue
			}
			emit(tokenNot, "!", start)
			continue
		case '=':
			i++
			if next() != '=' {
				return nil, fmt.Errorf("%w: unexpected '=' at %d; use '=='", ErrSyntax, start)
			}
			i++
			if next() == '=' {
				i++
			}
			emit(tokenEq, "==", start)
			continue
		case '<':
			i++
			if next() == '=' {
				i++
				emit(tokenLte, "<=", start)
				continue
			}
			emit(tokenLt, "<", start)
			continue
		case '>':
			i++
			if next() == '=' {
				i++
				emit(tokenGte, ">=", start)
				continue
			}
			emit(tokenGt, ">", start)
			continue
		case '&':
			i++
			if next() != '&' {
				return nil, fmt.Errorf("%w: unexpected '&' at %d; use '&&'", ErrSyntax, start)
			}
			i++
			emit(tokenAnd, "&&", start)
			continue
		case '|':
			i++
			if next() != '|' {
				return nil, fmt.Errorf("%w: unexpected '|' at %d; use '||'", ErrSyntax, start)
			}
			i++
			emit(tokenOr, "||", start)
			continue
		case '"', '\'':
			value, end, err := readString(input, i)
			if err != nil {
				return nil, err
			}
			i = end
			emit(tokenString, value, start)
			continue
		}

		switch {
		case isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])):
			i = scanNumber(input, i)
			emit(tokenNumber, input[start:i], start)
		case isIdentStart(ch):
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				emit(tokenBool, strings.ToLower(raw), start)
			default:
				emit(tokenIdentifier, raw, start)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, ch, start)
		}
	}

	return tokens, nil
}

func readString(input string, start int) (string, int, error) {
	quote := input[start]
	var out strings.Builder
	i := start + 1
	for i < len(input) {
		c := input[i]
		i++
		switch {
		case c == '\\':
			if i >= len(input) {
				return "", 0, fmt.Errorf("%w: unterminated string literal at %d", ErrSyntax, start)
			}
			esc := input[i]
			i++
			switch esc {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			default:
				out.WriteByte(esc)
			}
		case c == quote:
			return out.String(), i, nil
		default:
			out.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated string literal at %d", ErrSyntax, start)
}

func scanNumber(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			i = j
			for i < len(input) && isDigit(input[i]) {
				i++
			}
		}
	}
	return i
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || c == '$' || (c|0x20 >= 'a' && c|0x20 <= 'z') || c >= 0x80 }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
