package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/module"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// evalFuncLit evaluates `[v1 \in S1, v2 \in S2, ... |-> body]`: the
// domain is the cartesian product of the binders, keyed by the raw
// domain value when there is one binder and by a Tuple of them
// otherwise.
func (e *Evaluator) evalFuncLit(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	binds := n.Children[:len(n.Children)-1]
	body := n.Children[len(n.Children)-1]
	combos, err := e.expandBinds(binds, ctx)
	if err != nil {
		return nil, err
	}
	domain := make([]*value.Value, 0, len(combos))
	rng := make([]*value.Value, 0, len(combos))
	for _, c := range combos {
		var key *value.Value
		if len(c.domainVals) == 1 {
			key = c.domainVals[0]
		} else {
			key = value.NewTuple(c.domainVals...)
		}
		branches, err := e.Eval(body, c.ctx)
		if err != nil {
			return nil, err
		}
		domain = append(domain, key)
		rng = append(rng, branches[0].Result)
	}
	return one(ctx.WithResult(value.NewFcn(domain, rng))), nil
}

func (e *Evaluator) evalApply(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	baseBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	curCtx := baseBranches[0]
	base := curCtx.Result

	argVals := make([]*value.Value, 0, len(n.Children)-1)
	for _, a := range n.Children[1:] {
		branches, err := e.Eval(a, curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		argVals = append(argVals, curCtx.Result)
	}

	var arg *value.Value
	if len(argVals) == 1 {
		arg = argVals[0]
	} else {
		arg = value.NewTuple(argVals...)
	}

	result, err := value.Apply(base, arg)
	if err != nil {
		return nil, errors.New(errors.DomainError, n.Pos, "%s", err)
	}
	return one(curCtx.WithResult(result)), nil
}

func (e *Evaluator) evalSetOfFuncs(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	domBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	domSet := domBranches[0].Result
	rngBranches, err := e.Eval(n.Children[1], domBranches[0])
	if err != nil {
		return nil, err
	}
	rngSet := rngBranches[0].Result
	if domSet.Kind != value.Set || rngSet.Kind != value.Set {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "[S -> T] requires S and T to be Sets")
	}
	funcs, err := allFunctions(domSet.Elems, rngSet.Elems)
	if err != nil {
		return nil, err
	}
	s, err := value.NewSet(funcs...)
	if err != nil {
		return nil, err
	}
	return one(rngBranches[0].WithResult(s)), nil
}

// allFunctions enumerates every function domain -> codomain as a FcnRcd.
func allFunctions(domain, codomain []*value.Value) ([]*value.Value, error) {
	if len(domain) == 0 {
		return []*value.Value{value.NewFcn(nil, nil)}, nil
	}
	var results []*value.Value
	var rec func(idx int, rng []*value.Value)
	rec = func(idx int, rng []*value.Value) {
		if idx == len(domain) {
			results = append(results, value.NewFcn(domain, append([]*value.Value{}, rng...)))
			return
		}
		for _, v := range codomain {
			rec(idx+1, append(rng, v))
		}
	}
	rec(0, nil)
	return results, nil
}

func (e *Evaluator) evalSetOfRecords(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	var fieldNames []string
	var fieldDomains [][]*value.Value
	curCtx := ctx
	for i := 0; i < len(n.Children); i += 2 {
		fieldNames = append(fieldNames, n.Children[i].Text)
		branches, err := e.Eval(n.Children[i+1], curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		if curCtx.Result.Kind != value.Set {
			return nil, errors.New(errors.TypeMismatch, n.Pos, "record field %q domain must be a Set", fieldNames[len(fieldNames)-1])
		}
		fieldDomains = append(fieldDomains, curCtx.Result.Elems)
	}

	var recs []*value.Value
	for _, row := range cartesianValues(fieldDomains) {
		fields := make(map[string]*value.Value, len(fieldNames))
		for i, name := range fieldNames {
			fields[name] = row[i]
		}
		recs = append(recs, value.NewRecord(fields))
	}
	s, err := value.NewSet(recs...)
	if err != nil {
		return nil, err
	}
	return one(curCtx.WithResult(s)), nil
}

func (e *Evaluator) evalRecordLit(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	fields := make(map[string]*value.Value, len(n.Children)/2)
	curCtx := ctx
	for i := 0; i < len(n.Children); i += 2 {
		name := n.Children[i].Text
		branches, err := e.Eval(n.Children[i+1], curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		fields[name] = curCtx.Result
	}
	return one(curCtx.WithResult(value.NewRecord(fields))), nil
}

func (e *Evaluator) evalFieldAccess(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	branches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	curCtx := branches[0]
	field := n.Children[1].Text
	v, err := value.FieldAccess(curCtx.Result, field)
	if err != nil {
		return nil, errors.New(errors.DomainError, n.Pos, "%s", err)
	}
	return one(curCtx.WithResult(v)), nil
}

// evalExcept evaluates `[f EXCEPT !p1 = e1, !p2 = e2, ...]`, composing
// each arm's update on the running value left to right.
func (e *Evaluator) evalExcept(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	baseBranches, err := e.Eval(n.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	curCtx := baseBranches[0]
	cur := curCtx.Result

	for _, arm := range n.Children[1:] {
		selectors := arm.Children[:len(arm.Children)-1]
		rhsNode := arm.Children[len(arm.Children)-1]

		var args []*value.Value
		for _, sel := range selectors {
			switch sel.Kind {
			case ast.KPathField:
				args = append(args, value.NewStr(sel.Text))
			case ast.KPathIndex:
				for _, a := range sel.Children {
					branches, err := e.Eval(a, curCtx)
					if err != nil {
						return nil, err
					}
					curCtx = branches[0]
					args = append(args, curCtx.Result)
				}
			default:
				return nil, errors.New(errors.AssertionFailure, sel.Pos, "invalid EXCEPT path selector %s", sel.Kind)
			}
		}

		prevVal, err := value.ApplyPath(cur, args)
		if err != nil {
			return nil, errors.New(errors.DomainError, arm.Pos, "%s", err)
		}
		rhsBranches, err := e.Eval(rhsNode, curCtx.WithPrevFuncValue(prevVal))
		if err != nil {
			return nil, err
		}
		curCtx = rhsBranches[0]
		newVal, err := value.UpdatePath(cur, args, curCtx.Result)
		if err != nil {
			return nil, errors.New(errors.DomainError, arm.Pos, "%s", err)
		}
		cur = newVal
	}

	return one(curCtx.WithResult(cur)), nil
}

// materializeFunc evaluates a module-level function definition
// `Name[v \in S] == body` into a concrete FcnRcd value.
func (e *Evaluator) materializeFunc(fd *module.FuncDef, ctx state.Context) (*value.Value, error) {
	combos, err := e.expandBinds(fd.Binds, ctx)
	if err != nil {
		return nil, err
	}
	domain := make([]*value.Value, 0, len(combos))
	rng := make([]*value.Value, 0, len(combos))
	for _, c := range combos {
		var key *value.Value
		if len(c.domainVals) == 1 {
			key = c.domainVals[0]
		} else {
			key = value.NewTuple(c.domainVals...)
		}
		branches, err := e.Eval(fd.Body, c.ctx)
		if err != nil {
			return nil, err
		}
		domain = append(domain, key)
		rng = append(rng, branches[0].Result)
	}
	return value.NewFcn(domain, rng), nil
}
