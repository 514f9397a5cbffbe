// Package eval implements the recursive evaluator: given a syntax node
// and a Context, it returns a non-empty list of Contexts, one per
// nondeterministic evaluation branch. It is the one component every
// other piece of the core (state enumerators, public facade) calls
// into.
package eval

import (
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/module"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// Evaluator holds the read-only module definitions a run evaluates
// against, plus an optional trace logger, constructor-injected rather
// than pulled from a package-level global.
type Evaluator struct {
	Mod    *module.Module
	Logger hclog.Logger
}

// New builds an Evaluator. A nil logger defaults to hclog.NewNullLogger,
// so callers that don't want tracing never need a nil check.
func New(mod *module.Module, logger hclog.Logger) *Evaluator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Evaluator{Mod: mod, Logger: logger}
}

// Eval is the evaluator's single entry point, dispatched exhaustively
// over ast.Kind.
func (e *Evaluator) Eval(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	switch n.Kind {
	case ast.KError:
		return nil, errors.New(errors.ParseError, n.Pos, "%s", n.Err)

	case ast.KNumber:
		iv, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return nil, errors.New(errors.TypeMismatch, n.Pos, "invalid integer literal %q", n.Text)
		}
		return one(ctx.WithResult(value.NewInt(iv))), nil

	case ast.KBool:
		return one(ctx.WithResult(value.NewBool(n.Text == "TRUE"))), nil

	case ast.KString:
		return one(ctx.WithResult(value.NewStr(n.Text))), nil

	case ast.KBooleanSet:
		s, err := value.NewSet(value.NewBool(true), value.NewBool(false))
		if err != nil {
			return nil, err
		}
		return one(ctx.WithResult(s)), nil

	case ast.KIdent:
		return e.resolveIdent(n, ctx)

	case ast.KPrimed:
		return e.Eval(n.Children[0], ctx.WithPrimedScope(true))

	case ast.KNot:
		return e.evalNot(n, ctx)
	case ast.KImplies:
		return e.evalImplies(n, ctx)
	case ast.KEq:
		return e.evalEq(n, ctx)
	case ast.KNeq:
		return e.evalNeq(n, ctx)
	case ast.KConjList:
		return e.evalConjList(n, ctx)
	case ast.KDisjList:
		return e.evalDisjList(n, ctx)

	case ast.KLt:
		return e.evalIntCompare(n, ctx, func(a, b int64) bool { return a < b })
	case ast.KLe:
		return e.evalIntCompare(n, ctx, func(a, b int64) bool { return a <= b })
	case ast.KGt:
		return e.evalIntCompare(n, ctx, func(a, b int64) bool { return a > b })
	case ast.KGe:
		return e.evalIntCompare(n, ctx, func(a, b int64) bool { return a >= b })

	case ast.KPlus:
		return e.evalIntArith(n, ctx, func(a, b int64) int64 { return a + b })
	case ast.KMinus:
		return e.evalIntArith(n, ctx, func(a, b int64) int64 { return a - b })
	case ast.KMul:
		return e.evalIntArith(n, ctx, func(a, b int64) int64 { return a * b })
	case ast.KMod:
		return e.evalMod(n, ctx)
	case ast.KNeg:
		return e.evalNeg(n, ctx)
	case ast.KRange:
		return e.evalRange(n, ctx)

	case ast.KUnion:
		return e.evalSetBinary(n, ctx, value.Union)
	case ast.KIntersect:
		return e.evalSetBinary(n, ctx, value.Intersect)
	case ast.KSetMinus:
		return e.evalSetBinary(n, ctx, value.Difference)
	case ast.KCartesian:
		return e.evalSetBinary(n, ctx, value.Cartesian)
	case ast.KPowerset:
		return e.evalSetUnary(n, ctx, value.Powerset)
	case ast.KDomain:
		return e.evalSetUnary(n, ctx, value.Domain)

	case ast.KFuncLit:
		return e.evalFuncLit(n, ctx)
	case ast.KApply:
		return e.evalApply(n, ctx)
	case ast.KSetOfFuncs:
		return e.evalSetOfFuncs(n, ctx)
	case ast.KSetOfRecords:
		return e.evalSetOfRecords(n, ctx)
	case ast.KRecordLit:
		return e.evalRecordLit(n, ctx)
	case ast.KFieldAccess:
		return e.evalFieldAccess(n, ctx)
	case ast.KExcept:
		return e.evalExcept(n, ctx)
	case ast.KFuncPair:
		return e.evalBinaryValues(n, ctx, func(a, b *value.Value) (*value.Value, error) { return value.FuncPair(a, b), nil })
	case ast.KFuncMerge:
		return e.evalBinaryValues(n, ctx, value.Compose)
	case ast.KConcat:
		return e.evalBinaryValues(n, ctx, value.Concat)

	case ast.KCall:
		return e.evalCall(n, ctx)

	case ast.KTuple:
		return e.evalTuple(n, ctx)
	case ast.KSetLit:
		return e.evalSetLit(n, ctx)
	case ast.KSetMap:
		return e.evalSetMap(n, ctx)
	case ast.KSetFilter:
		return e.evalSetFilter(n, ctx)

	case ast.KForall:
		return e.evalForall(n, ctx)
	case ast.KExists:
		return e.evalExists(n, ctx)

	case ast.KIf:
		return e.evalIf(n, ctx)
	case ast.KCase:
		return e.evalCase(n, ctx)
	case ast.KLet:
		return e.evalLet(n, ctx)
	case ast.KChoose:
		return e.evalChoose(n, ctx)

	case ast.KUnchanged:
		return e.evalUnchanged(n.Children[0], ctx)
	case ast.KEnabled:
		return e.evalEnabled(n, ctx)
	case ast.KAt:
		if ctx.PrevFuncValue == nil {
			return nil, errors.New(errors.AssertionFailure, n.Pos, "'@' used outside an EXCEPT arm")
		}
		return one(ctx.WithResult(ctx.PrevFuncValue)), nil

	default:
		return nil, errors.New(errors.AssertionFailure, n.Pos, "eval: unhandled node kind %s", n.Kind)
	}
}

func one(c state.Context) []state.Context { return []state.Context{c} }

func (e *Evaluator) resolveIdent(n *ast.Node, ctx state.Context) ([]state.Context, error) {
	name := n.Text

	if e.Mod.IsVariable(name) {
		key := name
		if ctx.PrimedScope {
			key = name + "'"
		}
		if !ctx.State.Has(key) {
			return nil, errors.New(errors.UnboundIdentifier, n.Pos, "variable %s is not in scope here", key)
		}
		v := ctx.State.Get(key)
		if v == nil {
			return nil, errors.New(errors.UnboundIdentifier, n.Pos, "%s is not yet assigned", key)
		}
		return one(ctx.WithResult(v)), nil
	}

	if v, ok := ctx.LookupBinding(name); ok {
		return one(ctx.WithResult(v)), nil
	}

	if op, ok := e.Mod.LookupOp(name); ok {
		if len(op.Params) > 0 {
			return nil, errors.New(errors.TypeMismatch, n.Pos, "operator %s requires %d argument(s)", name, len(op.Params))
		}
		return e.Eval(op.Body, ctx)
	}

	if fd, ok := e.Mod.LookupFunc(name); ok {
		v, err := e.materializeFunc(fd, ctx)
		if err != nil {
			return nil, err
		}
		return one(ctx.WithResult(v)), nil
	}

	if v, ok := ctx.LookupConstant(name); ok {
		return one(ctx.WithResult(v)), nil
	}

	return nil, errors.New(errors.UnboundIdentifier, n.Pos, "unbound identifier %q", name)
}
