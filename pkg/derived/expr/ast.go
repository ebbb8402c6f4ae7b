package expr

import (
	"fmt"
	"math"
)

type node interface {
	eval(env map[string]Value) (Value, error)
}

type literalNode struct {
	value Value
}

func (n literalNode) eval(map[string]Value) (Value, error) { return n.value, nil }

type identNode struct {
	name string
}

func (n identNode) eval(env map[string]Value) (Value, error) {
	value, ok := env[n.name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownIdentifier, n.name)
	}
	return value, nil
}

type unaryNode struct {
	op    tokenKind
	inner node
}

func (n unaryNode) eval(env map[string]Value) (Value, error) {
	value, err := n.inner.eval(env)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case tokenNot:
		return Bool(!value.Truthy()), nil
	case tokenMinus:
		return Number(-value.Float()), nil
	default:
		return Number(value.Float()), nil
	}
}

type orNode struct {
	left  node
	right node
}

func (n orNode) eval(env map[string]Value) (Value, error) {
	left, err := n.left.eval(env)
	if err != nil {
		return Value{}, err
	}
	if left.Truthy() {
		return left, nil
	}
	return n.right.eval(env)
}

type andNode struct {
	left  node
	right node
}

func (n andNode) eval(env map[string]Value) (Value, error) {
	left, err := n.left.eval(env)
	if err != nil {
		return Value{}, err
	}
	if !left.Truthy() {
		return left, nil
	}
	return n.right.eval(env)
}

type binaryNode struct {
	op    tokenKind
	left  node
	right node
}

func (n binaryNode) eval(env map[string]Value) (Value, error) {
	left, err := n.left.eval(env)
	if err != nil {
		return Value{}, err
	}
	right, err := n.right.eval(env)
	if err != nil {
		return Value{}, err
	}

	switch n.op {
	case tokenPlus:
		if left.Kind == KindString || right.Kind == KindString {
			return String(left.String() + right.String()), nil
		}
		return Number(left.Float() + right.Float()), nil
	case tokenMinus:
		return Number(left.Float() - right.Float()), nil
	case tokenStar:
		return Number(left.Float() * right.Float()), nil
	case tokenSlash:
		return Number(left.Float() / right.Float()), nil
	case tokenEq:
		return Bool(looseEqual(left, right)), nil
	case tokenNeq:
		return Bool(!looseEqual(left, right)), nil
	case tokenLt, tokenLte, tokenGt, tokenGte:
		return Bool(compare(n.op, left, right)), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported operator", ErrSyntax)
	}
}

// looseEqual compares values of the same kind directly and coerces mixed
// kinds to numbers.
func looseEqual(left, right Value) bool {
	if left.Kind == right.Kind {
		switch left.Kind {
		case KindString:
			return left.Str == right.Str
		case KindBool:
			return left.Bool == right.Bool
		default:
			return left.Num == right.Num
		}
	}
	return left.Float() == right.Float()
}

// compare orders two strings lexically and anything else numerically. NaN
// never compares.
func compare(op tokenKind, left, right Value) bool {
	if left.Kind == KindString && right.Kind == KindString {
		switch op {
		case tokenLt:
			return left.Str < right.Str
		case tokenLte:
			return left.Str <= right.Str
		case tokenGt:
			return left.Str > right.Str
		default:
			return left.Str >= right.Str
		}
	}
	l, r := left.Float(), right.Float()
	if math.IsNaN(l) || math.IsNaN(r) {
		return false
	}
	switch op {
	case tokenLt:
		return l < r
	case tokenLte:
		return l <= r
	case tokenGt:
		return l > r
	default:
		return l >= r
	}
}

func walk(n node, visit func(node)) {
	if n == nil {
		return
	}
	visit(n)
	switch typed := n.(type) {
	case unaryNode:
		walk(typed.inner, visit)
	case orNode:
		walk(typed.left, visit)
		walk(typed.right, visit)
	case andNode:
		walk(typed.left, visit)
		walk(typed.right, visit)
	case binaryNode:
		walk(typed.left, visit)
		walk(typed.right, visit)
	}
}
