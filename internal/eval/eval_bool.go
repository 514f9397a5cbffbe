package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

func isTrue(v *value.Value) bool { return v != nil && v.Kind == value.Bool && v.BoolVal }

func anyTrue(branches []state.Context) bool {
	for _, b := range branches {
		if isTrue(b.Result) {
			return true
		}
	}
	return false
}

func asBool(v *value.Value, op string) (bool, error) {
	if v == nil || v.Kind != value.Bool {
		return false, &value.TypeError{Op: op, Expected: "Bool", Got: kindOf(v)}
	}
	return v.BoolVal, nil
}

func kindOf(v *value.Value) value.Kind {
	if v == nil {
		return value.Kind(-1)
	}
	return v.Kind
}

func (e *Evaluator) evalNot(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	branches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	out := make([]state.Context, len(branches))
	for i, b := range branches {
		bv, err := asBool(b.Result, "Not")
		if err != nil {
			return nil, err
		}
		out[i] = b.WithResult(value.NewBool(!bv))
	}
	return out, nil
}

func (e *Evaluator) evalImplies(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	lhsBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	var out []state.Context
	for _, l := range lhsBranches {
		lv, err := asBool(l.Result, "Implies")
		if err != nil {
			return nil, err
		}
		if !lv {
			out = append(out, l.WithResult(value.NewBool(true)))
			continue
		}
		rhsBranches, err := e.Eval(n.Children[1], l)
		if err != nil {
			return nil, err
		}
		out = append(out, rhsBranches...)
	}
	return out, nil
}

// evalConjList threads state left to right across a `/\` list: once a
// branch's running result goes false it is carried unchanged (not
// re-extended) for the remaining conjuncts.
func (e *Evaluator) evalConjList(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	contexts := []state.Context{ctx.WithResult(nil)}
	for _, child := range n.Children {
		var next []state.Context
		for _, c := range contexts {
			if c.Result != nil {
				running, err := asBool(c.Result, "ConjList")
				if err != nil {
					return nil, err
				}
				if !running {
					next = append(next, c)
					continue
				}
			}
			branches, err := e.Eval(child, c)
			if err != nil {
				return nil, err
			}
			for _, b := range branches {
				bv, err := asBool(b.Result, "ConjList")
				if err != nil {
					return nil, err
				}
				result := bv
				if c.Result != nil {
					prev, _ := asBool(c.Result, "ConjList")
					result = prev && bv
				}
				next = append(next, b.WithResult(value.NewBool(result)))
			}
		}
		contexts = next
	}
	return contexts, nil
}

// evalDisjList implements `\/` with the branch-merging policy shared
// with \E via branchMerge.
func (e *Evaluator) evalDisjList(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	var trueBranches []state.Context
	for _, child := range n.Children {
		branches, err := e.Eval(child, ctx)
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

// branchMerge collapses a disjunctive construct's (\/, \E) kept (true)
// branches into a single TRUE context with the parent's unchanged
// state, unless at least one branch assigned a state variable the
// parent had not yet assigned — in which case every kept branch is
// preserved so the nondeterministic choice survives into the caller.
func branchMerge(parent state.Context, branches []state.Context) []state.Context {
	if len(branches) == 0 {
		return []state.Context{parent.WithResult(value.NewBool(false))}
	}
	for _, b := range branches {
		if assignsNewVar(parent.State, b.State) {
			return branches
		}
	}
	return []state.Context{parent.WithResult(value.NewBool(true))}
}

func assignsNewVar(parent, child state.State) bool {
	for _, name := range child.Names() {
		if child.IsAssigned(name) && !parent.IsAssigned(name) {
			return true
		}
	}
	return false
}

func (e *Evaluator) evalEq(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	lhsNode, rhsNode := n.Children[0], n.Children[1]

	if key, ok := e.resolveAssignTarget(lhsNode, ctx); ok {
		if !ctx.State.IsAssigned(key) {
			rhsBranches, err := e.Eval(rhsNode, ctx)
			if err != nil {
				return nil, err
			}
			out := make([]state.Context, len(rhsBranches))
			for i, b := range rhsBranches {
				out[i] = b.WithState(b.State.WithVar(key, b.Result)).WithResult(value.NewBool(true))
			}
			return out, nil
		}
		assigned := ctx.State.Get(key)
		rhsBranches, err := e.Eval(rhsNode, ctx)
		if err != nil {
			return nil, err
		}
		out := make([]state.Context, len(rhsBranches))
		for i, b := range rhsBranches {
			eq, err := value.Equal(assigned, b.Result)
			if err != nil {
				return nil, err
			}
			out[i] = b.WithResult(value.NewBool(eq))
		}
		return out, nil
	}

	lhsBranches, err := e.Eval(lhsNode, ctx)
	if err != nil {
		return nil, err
	}
	var out []state.Context
	for _, l := range lhsBranches {
		rhsBranches, err := e.Eval(rhsNode, l)
		if err != nil {
			return nil, err
		}
		for _, r := range rhsBranches {
			eq, err := value.Equal(l.Result, r.Result)
			if err != nil {
				return nil, err
			}
			out = append(out, r.WithResult(value.NewBool(eq)))
		}
	}
	return out, nil
}

func (e *Evaluator) evalNeq(n *ast.Node, ctx state.Context) ([]state.Context, error) {
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
			eq, err := value.Equal(l.Result, r.Result)
			if err != nil {
				return nil, err
			}
			out = append(out, r.WithResult(value.NewBool(!eq)))
		}
	}
	return out, nil
}

// resolveAssignTarget reports whether n is an assignable variable
// reference in ctx's current mode: X' always qualifies; bare X
// qualifies only when ctx.UnprimedAssignAllowed (Init evaluation).
func (e *Evaluator) resolveAssignTarget(n *ast.Node, ctx state.Context) (key string, ok bool) {
	switch n.Kind {
	case ast.KPrimed:
		inner := n.Children[0]
		if inner.Kind == ast.KIdent && e.Mod.IsVariable(inner.Text) {
			return inner.Text + "'", true
		}
	case ast.KIdent:
		if ctx.UnprimedAssignAllowed && e.Mod.IsVariable(n.Text) {
			return n.Text, true
		}
	}
	return "", false
}
