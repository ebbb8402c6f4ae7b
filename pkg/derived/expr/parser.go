package expr

import (
	"fmt"
	"strconv"
)

// Program is a parsed expression ready to be evaluated against any number of
// environments.
type Program struct {
	source string
	root   node
}

// Source returns the text the program was parsed from.
func (p *Program) Source() string { return p.source }

// Identifiers lists the names referenced by the program in first-use order.
func (p *Program) Identifiers() []string {
	var out []string
	seen := make(map[string]struct{})
	walk(p.root, func(n node) {
		if id, ok := n.(identNode); ok {
			if _, dup := seen[id.name]; !dup {
				seen[id.name] = struct{}{}
				out = append(out, id.name)
			}
		}
	})
	return out
}

// Parse compiles input against the grammar
//
//	or         = and { "||" and }
//	and        = equality { "&&" equality }
//	equality   = comparison { ("==" | "!=") comparison }
//	comparison = additive { ("<" | "<=" | ">" | ">=") additive }
//	additive   = term { ("+" | "-") term }
//	term       = unary { ("*" | "/") unary }
//	unary      = ("-" | "+" | "!") unary | primary
//	primary    = number | string | "true" | "false" | identifier | "(" or ")"
//
// "===" and "!==" are accepted as spellings of "==" and "!=".
func Parse(input string) (*Program, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}

	stream := &tokenStream{tokens: tokens}
	root, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		tok := stream.tokens[stream.pos]
		return nil, fmt.Errorf("%w: unexpected token %q at %d", ErrSyntax, tok.raw, tok.pos)
	}
	return &Program{source: input, root: root}, nil
}

// Eval evaluates the program. Identifiers resolve through env; a missing
// binding is an error.
func (p *Program) Eval(env map[string]Value) (Value, error) {
	return p.root.eval(env)
}

// Evaluate parses and evaluates input in one step.
func Evaluate(input string, env map[string]Value) (Value, error) {
	program, err := Parse(input)
	if err != nil {
		return Value{}, err
	}
	return program.Eval(env)
}

type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) peek() (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *tokenStream) match(kinds ...tokenKind) (token, bool) {
	tok, ok := s.peek()
	if !ok {
		return token{}, false
	}
	for _, kind := range kinds {
		if tok.kind == kind {
			s.pos++
			return tok, true
		}
	}
	return token{}, false
}

type parseFunc func(*tokenStream) (node, error)

// parseBinary parses a left-associative chain of operand (op operand)*.
func parseBinary(stream *tokenStream, operand parseFunc, build func(op tokenKind, left, right node) node, ops ...tokenKind) (node, error) {
	left, err := operand(stream)
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := stream.match(ops...)
		if !ok {
			return left, nil
		}
		right, err := operand(stream)
		if err != nil {
			return nil, err
		}
		left = build(tok.kind, left, right)
	}
}

func parseOr(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseAnd, func(_ tokenKind, l, r node) node {
		return orNode{left: l, right: r}
	}, tokenOr)
}

func parseAnd(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseEquality, func(_ tokenKind, l, r node) node {
		return andNode{left: l, right: r}
	}, tokenAnd)
}

func parseEquality(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseComparison, newBinary, tokenEq, tokenNeq)
}

func parseComparison(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseAdditive, newBinary, tokenLt, tokenLte, tokenGt, tokenGte)
}

func parseAdditive(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseTerm, newBinary, tokenPlus, tokenMinus)
}

func parseTerm(stream *tokenStream) (node, error) {
	return parseBinary(stream, parseUnary, newBinary, tokenStar, tokenSlash)
}

func newBinary(op tokenKind, left, right node) node {
	return binaryNode{op: op, left: left, right: right}
}

func parseUnary(stream *tokenStream) (node, error) {
	if tok, ok := stream.match(tokenMinus, tokenPlus, tokenNot); ok {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return unaryNode{op: tok.kind, inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (node, error) {
	tok, ok := stream.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	stream.pos++

	switch tok.kind {
	case tokenLParen:
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if _, ok := stream.match(tokenRParen); !ok {
			return nil, fmt.Errorf("%w: missing closing ')' for '(' at %d", ErrSyntax, tok.pos)
		}
		return inner, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number literal %q", ErrSyntax, tok.raw)
		}
		return literalNode{value: Number(f)}, nil
	case tokenString:
		return literalNode{value: String(tok.raw)}, nil
	case tokenBool:
		return literalNode{value: Bool(tok.raw == "true")}, nil
	case tokenIdentifier:
		return identNode{name: tok.raw}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %q at %d", ErrSyntax, tok.raw, tok.pos)
	}
}
