package eval

import (
	"math"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateBoolExpr implements spec §4.10's boolean sub-grammar:
// short-circuiting or/and, unary not, and a comparison leaf (which may
// itself degenerate to isTruthy).
func evaluateBoolExpr(expr ast.BoolExpr, ctx *rtctx.Context) (bool, error) {
	switch n := expr.(type) {
	case *ast.OrExpr:
		l, err := evaluateBoolExpr(n.Left, ctx)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evaluateBoolExpr(n.Right, ctx)
	case *ast.AndExpr:
		l, err := evaluateBoolExpr(n.Left, ctx)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evaluateBoolExpr(n.Right, ctx)
	case *ast.NotExpr:
		v, err := evaluateBoolExpr(n.Operand, ctx)
		if err != nil {
			return false, err
		}
		return !v, nil
	case *ast.ComparisonExpr:
		return evaluateComparison(n, ctx)
	default:
		return false, rillerr.New(rillerr.CodeTypeError, expr.Position(), "unsupported boolean expression")
	}
}

// evaluateComparison implements spec §4.10: ==/!= use deepEquals;
// ordering operators compare numbers numerically when both sides are
// numbers, else lexicographically by formatValue; no operator degenerates
// to isTruthy(left).
func evaluateComparison(n *ast.ComparisonExpr, ctx *rtctx.Context) (bool, error) {
	left, err := Evaluate(n.Left, ctx)
	if err != nil {
		return false, err
	}
	if n.Op == "" {
		return value.IsTruthy(left), nil
	}
	right, err := Evaluate(n.Right, ctx)
	if err != nil {
		return false, err
	}
	switch n.Op {
	case "==":
		return value.DeepEqual(left, right), nil
	case "!=":
		return !value.DeepEqual(left, right), nil
	case "<", ">", "<=", ">=":
		ln, lok := left.(value.Num)
		rn, rok := right.(value.Num)
		if lok && rok {
			return compareOrdered(float64(ln), float64(rn), n.Op), nil
		}
		cmp := value.CompareStrings(value.FormatValue(left), value.FormatValue(right))
		return compareOrdered(cmp, 0, n.Op), nil
	default:
		return false, rillerr.TypeError(n.Position(), "unsupported comparison operator "+n.Op)
	}
}

func compareOrdered(a, b float64, op string) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}
	return false
}

// evaluateArith implements spec §4.10's binary arithmetic over numbers.
func evaluateArith(n *ast.BinaryArith, ctx *rtctx.Context) (value.Value, error) {
	l, err := evalToNumber(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	r, err := evalToNumber(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "+":
		return value.Num(l + r), nil
	case "-":
		return value.Num(l - r), nil
	case "*":
		return value.Num(l * r), nil
	case "/":
		if r == 0 {
			return nil, rillerr.TypeError(n.Position(), "division by zero")
		}
		return value.Num(l / r), nil
	case "%":
		if r == 0 {
			return nil, rillerr.TypeError(n.Position(), "modulo by zero")
		}
		return value.Num(math.Mod(l, r)), nil
	default:
		return nil, rillerr.TypeError(n.Position(), "unsupported arithmetic operator "+n.Op)
	}
}

func evaluateUnaryMinus(n *ast.UnaryMinus, ctx *rtctx.Context) (value.Value, error) {
	v, err := evalToNumber(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	return value.Num(-v), nil
}

// evalToNumber evaluates expr and requires a number result, naming the
// inferred type on mismatch (spec §4.10: "Operands that are variables
// must resolve to numbers ... otherwise a type error naming the
// inferred type").
func evalToNumber(expr ast.Expression, ctx *rtctx.Context) (float64, error) {
	v, err := Evaluate(expr, ctx)
	if err != nil {
		return 0, err
	}
	num, ok := v.(value.Num)
	if !ok {
		return 0, rillerr.TypeError(expr.Position(), "expected a number, got "+value.InferType(v))
	}
	return float64(num), nil
}
