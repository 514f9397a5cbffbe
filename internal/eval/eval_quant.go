package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// combo is one cartesian-product assignment produced by expandBinds: the
// context with every binder's pattern bound, plus the raw per-binder
// domain values in order (needed by KFuncLit to build its domain keys
// and by set-filter to recover which element survived).
type combo struct {
	ctx        state.Context
	domainVals []*value.Value
}

// bindPattern binds v into ctx under pattern, which is either a bare
// KIdent or a KTuple of KIdent leaves destructuring a tuple-shaped v.
func bindPattern(ctx state.Context, pattern *ast.Node, v *value.Value) (state.Context, error) {
	switch pattern.Kind {
	case ast.KIdent:
		return ctx.WithBinding(pattern.Text, v), nil
	case ast.KTuple:
		if v.Kind != value.Tuple || len(v.Items) != len(pattern.Children) {
			return ctx, errors.New(errors.TypeMismatch, pattern.Pos, "tuple pattern arity mismatch")
		}
		out := ctx
		for i, name := range pattern.Children {
			out = out.WithBinding(name.Text, v.Items[i])
		}
		return out, nil
	default:
		return ctx, errors.New(errors.AssertionFailure, pattern.Pos, "invalid binder pattern kind %s", pattern.Kind)
	}
}

// expandBinds evaluates a chain of KQuantBind nodes left to right and
// returns one combo per cartesian-product assignment of their domains.
func (e *Evaluator) expandBinds(binds []*ast.Node, ctx state.Context) ([]combo, error) {
	combos := []combo{{ctx: ctx}}
	for _, bind := range binds {
		pattern, domainNode := bind.Children[0], bind.Children[1]
		var next []combo
		for _, c := range combos {
			domBranches, err := e.Eval(domainNode, c.ctx)
			if err != nil {
				return nil, err
			}
			for _, domCtx := range domBranches {
				if domCtx.Result == nil || domCtx.Result.Kind != value.Set {
					return nil, errors.New(errors.TypeMismatch, bind.Pos, "binder domain must be a Set")
				}
				for _, dv := range domCtx.Result.Elems {
					boundCtx, err := bindPattern(domCtx, pattern, dv)
					if err != nil {
						return nil, err
					}
					next = append(next, combo{
						ctx:        boundCtx,
						domainVals: append(append([]*value.Value{}, c.domainVals...), dv),
					})
				}
			}
		}
		combos = next
	}
	return combos, nil
}

// evalForall implements `\A v \in S : P`: never forks, collapses to a
// single Bool result with the parent's state untouched regardless of
// what evaluating P would otherwise have assigned.
func (e *Evaluator) evalForall(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	bind, body := n.Children[0], n.Children[1]
	combos, err := e.expandBinds([]*ast.Node{bind}, ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range combos {
		branches, err := e.Eval(body, c.ctx)
		if err != nil {
			return nil, err
		}
		if !anyTrue(branches) {
			return one(ctx.WithResult(value.NewBool(false))), nil
		}
	}
	return one(ctx.WithResult(value.NewBool(true))), nil
}

// evalExists implements `\E v \in S : P`: a disjunction over every
// domain element, merged through the same branchMerge policy as \/.
func (e *Evaluator) evalExists(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	bind, body := n.Children[0], n.Children[1]
	combos, err := e.expandBinds([]*ast.Node{bind}, ctx)
	if err != nil {
		return nil, err
	}
	var trueBranches []state.Context
	for _, c := range combos {
		branches, err := e.Eval(body, c.ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			if isTrue(b.Result) {
				trueBranches = append(trueBranches, b)
			}
		}
	}
	return branchMerge(ctx, trueBranches), nil
}
