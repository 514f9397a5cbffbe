package eval

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// evalCall dispatches `name(args...)`: either one of the five builtin
// operators that have no dedicated ast.Kind (Cardinality, Len, Head,
// Tail, Append), or a user-defined operator, substituting args as
// fresh bindings that shadow any existing ones of the same name.
func (e *Evaluator) evalCall(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	baseNode := n.Children[0]
	if baseNode.Kind != ast.KIdent {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "call target must be an operator name")
	}
	name := baseNode.Text
	argNodes := n.Children[1:]

	switch name {
	case "Cardinality":
		return e.callUnary(n, ctx, argNodes, func(v *value.Value) (*value.Value, error) {
			c, err := value.Cardinality(v)
			return value.NewInt(c), err
		})
	case "Len":
		return e.callUnary(n, ctx, argNodes, func(v *value.Value) (*value.Value, error) {
			c, err := value.Len(v)
			return value.NewInt(c), err
		})
	case "Head":
		return e.callUnary(n, ctx, argNodes, value.Head)
	case "Tail":
		return e.callUnary(n, ctx, argNodes, value.Tail)
	case "Append":
		return e.callBinary(n, ctx, argNodes, value.Append)
	}

	op, ok := e.Mod.LookupOp(name)
	if !ok {
		return nil, errors.New(errors.UnboundIdentifier, n.Pos, "unbound operator %q", name)
	}
	if len(op.Params) != len(argNodes) {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "operator %s takes %d argument(s), got %d", name, len(op.Params), len(argNodes))
	}

	curCtx := ctx
	argVals := make([]*value.Value, len(argNodes))
	for i, a := range argNodes {
		branches, err := e.Eval(a, curCtx)
		if err != nil {
			return nil, err
		}
		curCtx = branches[0]
		argVals[i] = curCtx.Result
	}

	callCtx := curCtx
	for i, p := range op.Params {
		callCtx = callCtx.WithBinding(p, argVals[i])
	}
	return e.Eval(op.Body, callCtx)
}

func (e *Evaluator) callUnary(n *ast.Node, ctx state.Context, args []*ast.Node, fn func(*value.Value) (*value.Value, error)) ([]state.Context, error) {
	if len(args) != 1 {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "%s takes exactly 1 argument", n.Children[0].Text)
	}
	branches, err := e.Eval(args[0], ctx)
	if err != nil {
		return nil, err
	}
	curCtx := branches[0]
	res, err := fn(curCtx.Result)
	if err != nil {
		return nil, errors.New(errors.DomainError, n.Pos, "%s", err)
	}
	return one(curCtx.WithResult(res)), nil
}

func (e *Evaluator) callBinary(n *ast.Node, ctx state.Context, args []*ast.Node, fn func(a, b *value.Value) (*value.Value, error)) ([]state.Context, error) {
	if len(args) != 2 {
		return nil, errors.New(errors.TypeMismatch, n.Pos, "%s takes exactly 2 arguments", n.Children[0].Text)
	}
	firstBranches, err := e.Eval(args[0], ctx)
	if err != nil {
		return nil, err
	}
	curCtx := firstBranches[0]
	secondBranches, err := e.Eval(args[1], curCtx)
	if err != nil {
		return nil, err
	}
	curCtx = secondBranches[0]
	res, err := fn(firstBranches[0].Result, curCtx.Result)
	if err != nil {
		return nil, errors.New(errors.DomainError, n.Pos, "%s", err)
	}
	return one(curCtx.WithResult(res)), nil
}
