package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

func (e *Evaluator) evalIf(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	condBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	var out []state.Context
	for _, c := range condBranches {
		cv, err := asBool(c.Result, "If")
		if err != nil {
			return nil, err
		}
		var branches []state.Context
		if cv {
			branches, err = e.Eval(n.Children[1], c)
		} else {
			branches, err = e.Eval(n.Children[2], c)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, branches...)
	}
	return out, nil
}

func (e *Evaluator) evalCase(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	curCtx := ctx
	for _, arm := range n.Children {
		if arm.Text == "OTHER" {
			return e.Eval(arm.Children[0], curCtx)
		}
		condBranches, err := e.Eval(arm.Children[0], curCtx)
		if err != nil {
			return nil, err
		}
		c := condBranches[0]
		cv, err := asBool(c.Result, "Case")
		if err != nil {
			return nil, err
		}
		if cv {
			return e.Eval(arm.Children[1], c)
		}
	}
	return nil, errors.New(errors.NonexhaustiveCase, n.Pos, "CASE: no arm matched and no OTHER present")
}

func (e *Evaluator) evalLet(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	defs := n.Children[:len(n.Children)-1]
	body := n.Children[len(n.Children)-1]
	augmented := e.Mod.WithLocalDefs(defs)
	sub := &Evaluator{Mod: augmented, Logger: e.Logger}
	return sub.Eval(body, ctx)
}

func (e *Evaluator) evalChoose(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	bind, pred := n.Children[0], n.Children[1]
	pattern, domainNode := bind.Children[0], bind.Children[1]

	domBranches, err := e.Eval(domainNode, ctx)
	if err != nil {
		return nil, err
	}
	domCtx := domBranches[0]
	if domCtx.Result.Kind != value.Set {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "CHOOSE domain must be a Set")
	}
	sorted, err := value.SortByFingerprint(domCtx.Result.Elems)
	if err != nil {
		return nil, err
	}
	for _, dv := range sorted {
		boundCtx, err := bindPattern(domCtx, pattern, dv)
		if err != nil {
			return nil, err
		}
		predBranches, err := e.Eval(pred, boundCtx)
		if err != nil {
			return nil, err
		}
		if anyTrue(predBranches) {
			return one(ctx.WithResult(dv)), nil
		}
	}
	return nil, errors.New(errors.NoWitness, n.Pos, "CHOOSE: no witness satisfies the predicate")
}

// evalUnchanged implements UNCHANGED arg: arg is an identifier, a tuple
// of identifiers, or an operator name expanding to one of those.
func (e *Evaluator) evalUnchanged(arg *ast.Node, ctx state.Context) ([]state.Context, error) {
	switch arg.Kind {
	case ast.KIdent:
		if e.Mod.IsVariable(arg.Text) {
			v := ctx.State.Get(arg.Text)
			if v == nil {
				return nil, errors.New(errors.UnboundIdentifier, arg.Pos, "%s is not yet assigned", arg.Text)
			}
			return one(ctx.WithState(ctx.State.WithVar(arg.Text+"'", v)).WithResult(value.NewBool(true))), nil
		}
		if op, ok := e.Mod.LookupOp(arg.Text); ok {
			return e.evalUnchanged(op.Body, ctx)
		}
		return nil, errors.New(errors.UnboundIdentifier, arg.Pos, "unbound identifier %q in UNCHANGED", arg.Text)
	case ast.KTuple:
		curCtx := ctx
		for _, item := range arg.Children {
			branches, err := e.evalUnchanged(item, curCtx)
			if err != nil {
				return nil, err
			}
			curCtx = branches[0]
		}
		return one(curCtx.WithResult(value.NewBool(true))), nil
	default:
		return nil, errors.New(errors.TypeMismatch, arg.Pos, "UNCHANGED argument must be a variable, tuple of variables, or a definition naming one")
	}
}

// evalEnabled approximates ENABLED: evaluates its argument and surfaces
// whether any branch succeeded true, discarding any state extension
// that evaluation would otherwise have produced — ENABLED never
// commits to the action it inspects.
func (e *Evaluator) evalEnabled(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	branches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	return one(ctx.WithResult(value.NewBool(anyTrue(branches)))), nil
}
