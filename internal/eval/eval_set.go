package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// evalBinaryValues threads lhs branches against rhs branches (cross
// product) and applies combine to each resulting pair of Values. Used by
// every binary operator whose operand types combine does its own
// checking on (set algebra, :>, @@, \o).
func (e *Evaluator) evalBinaryValues(n *ast.Node, ctx state.Context, combine func(a, b *value.Value) (*value.Value, error)) ([]state.Context, error) {
	lhsBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	var out []state.Context
	for _, l := range lhsBranches {
		rhsBranches, err := e.Eval(n.Children[1], l)
		if err != nil {
			return nil, err
		}
		for _, r := range rhsBranches {
			res, err := combine(l.Result, r.Result)
			if err != nil {
				return nil, err
			}
			out = append(out, r.WithResult(res))
		}
	}
	return out, nil
}

func (e *Evaluator) evalUnaryValue(n *ast.Node, ctx state.Context, fn func(v *value.Value) (*value.Value, error)) ([]state.Context, error) {
	branches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	out := make([]state.Context, len(branches))
	for i, b := range branches {
		res, err := fn(b.Result)
		if err != nil {
			return nil, err
		}
		out[i] = b.WithResult(res)
	}
	return out, nil
}

func (e *Evaluator) evalSetBinary(n *ast.Node, ctx state.Context, op func(a, b *value.Value) (*value.Value, error)) ([]state.Context, error) {
	return e.evalBinaryValues(n, ctx, op)
}

func (e *Evaluator) evalSetUnary(n *ast.Node, ctx state.Context, op func(v *value.Value) (*value.Value, error)) ([]state.Context, error) {
	return e.evalUnaryValue(n, ctx, op)
}

func (e *Evaluator) evalTuple(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	curCtx := ctx
	items := make([]*value.Value, len(n.Children))
	for i, c := range n.Children {
		branches, err := e.Eval(c, curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		items[i] = curCtx.Result
	}
	return one(curCtx.WithResult(value.NewTuple(items...))), nil
}

func (e *Evaluator) evalSetLit(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	curCtx := ctx
	items := make([]*value.Value, len(n.Children))
	for i, c := range n.Children {
		branches, err := e.Eval(c, curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		items[i] = curCtx.Result
	}
	s, err := value.NewSet(items...)
	if err != nil {
		return nil, err
	}
	return one(curCtx.WithResult(s)), nil
}

// evalSetMap evaluates `{ expr : bind1, bind2, ... }`: the cartesian
// product of every binder's domain, with expr evaluated once per combo.
func (e *Evaluator) evalSetMap(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	expr := n.Children[0]
	binds := n.Children[1:]
	combos, err := e.expandBinds(binds, ctx)
	if err != nil {
		return nil, err
	}
	elems := make([]*value.Value, 0, len(combos))
	for _, c := range combos {
		branches, err := e.Eval(expr, c.ctx)
		if err != nil {
			return nil, err
		}
		elems = append(elems, branches[0].Result)
	}
	s, err := value.NewSet(elems...)
	if err != nil {
		return nil, err
	}
	return one(ctx.WithResult(s)), nil
}

// evalSetFilter evaluates `{ bind : pred }`, keeping the binder's domain
// elements for which pred holds.
func (e *Evaluator) evalSetFilter(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	bind, pred := n.Children[0], n.Children[1]
	combos, err := e.expandBinds([]*ast.Node{bind}, ctx)
	if err != nil {
		return nil, err
	}
	var kept []*value.Value
	for _, c := range combos {
		predBranches, err := e.Eval(pred, c.ctx)
		if err != nil {
			return nil, err
		}
		if anyTrue(predBranches) {
			kept = append(kept, c.domainVals[0])
		}
	}
	s, err := value.NewSet(kept...)
	if err != nil {
		return nil, err
	}
	return one(ctx.WithResult(s)), nil
}

// cartesianValues computes the n-ary cartesian product of several value
// lists, used by evalSetOfRecords to combine per-field domains.
func cartesianValues(lists [][]*value.Value) [][]*value.Value {
	combos := [][]*value.Value{{}}
	for _, list := range lists {
		var next [][]*value.Value
		for _, c := range combos {
			for _, v := range list {
				row := append(append([]*value.Value{}, c...), v)
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}
