package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

func asInt(v *value.Value, op string) (int64, error) {
	if v == nil || v.Kind != value.Int {
		return 0, &value.TypeError{Op: op, Expected: "Int", Got: kindOf(v)}
	}
	return v.IntVal, nil
}

// evalIntBinary threads lhs branches against rhs branches (cross product)
// and applies combine to each pair's Int operands.
func (e *Evaluator) evalIntBinary(n *ast.Node, ctx state.Context, op string, combine func(a, b int64) (*value.Value, error)) ([]state.Context, error) {
	lhsBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	var out []state.Context
	for _, l := range lhsBranches {
		lv, err := asInt(l.Result, op)
		if err != nil {
			return nil, err
		}
		rhsBranches, err := e.Eval(n.Children[1], l)
		if err != nil {
			return nil, err
		}
		for _, r := range rhsBranches {
			rv, err := asInt(r.Result, op)
			if err != nil {
				return nil, err
			}
			res, err := combine(lv, rv)
			if err != nil {
				return nil, err
			}
			out = append(out, r.WithResult(res))
		}
	}
	return out, nil
}

func (e *Evaluator) evalIntArith(n *ast.Node, ctx state.Context, op func(a, b int64) int64) ([]state.Context, error) {
	return e.evalIntBinary(n, ctx, n.Kind.String(), func(a, b int64) (*value.Value, error) {
		return value.NewInt(op(a, b)), nil
	})
}

func (e *Evaluator) evalIntCompare(n *ast.Node, ctx state.Context, cmp func(a, b int64) bool) ([]state.Context, error) {
	return e.evalIntBinary(n, ctx, n.Kind.String(), func(a, b int64) (*value.Value, error) {
		return value.NewBool(cmp(a, b)), nil
	})
}

func (e *Evaluator) evalMod(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	return e.evalIntBinary(n, ctx, "Mod", func(a, b int64) (*value.Value, error) {
		if b == 0 {
			return nil, errors.New(errors.DomainError, n.Pos, "modulus by zero")
		}
		m := a % b
		if m < 0 {
			m += b
		}
		return value.NewInt(m), nil
	})
}

func (e *Evaluator) evalNeg(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	branches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	out := make([]state.Context, len(branches))
	for i, b := range branches {
		v, err := asInt(b.Result, "Neg")
		if err != nil {
			return nil, err
		}
		out[i] = b.WithResult(value.NewInt(-v))
	}
	return out, nil
}

func (e *Evaluator) evalRange(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	return e.evalIntBinary(n, ctx, "Range", func(a, b int64) (*value.Value, error) {
		return value.IntRange(a, b)
	})
}
