// Package tla is the public facade: load a module, resolve its
// constants, check its ASSUME statements, and run the three state
// enumerators against it. Everything else in this module is an
// implementation detail this package fronts.
package tla

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/enum"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/eval"
	"github.com/cwbudde/gotla/internal/module"
	"github.com/cwbudde/gotla/internal/parser"
	"github.com/cwbudde/gotla/internal/rewriter"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithLogger sets the trace logger threaded through the evaluator and the
// state enumerators (Init, Next, Reachable); the module extractor takes
// no logger. Defaults to a null
// logger, so callers that never set one get silence without needing nil
// checks of their own.
func WithLogger(l hclog.Logger) Option {
	return func(it *Interpreter) { it.logger = l }
}

// WithMaxStates bounds Reachable's search to at most n distinct states.
// 0 (the default) means unbounded.
func WithMaxStates(n int) Option {
	return func(it *Interpreter) { it.maxStates = n }
}

// Interpreter runs the core pipeline against one loaded Module at a
// time; it holds no per-module state of its own, so one Interpreter can
// load and run many modules.
type Interpreter struct {
	logger    hclog.Logger
	maxStates int
}

// New builds an Interpreter from the given options.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Module is a parsed, rewritten, extracted module together with its
// resolved constant values, ready for state enumeration.
type Module struct {
	mod       *module.Module
	constants map[string]*value.Value
}

// Variables returns the module's declared VARIABLE names, in
// declaration order.
func (m *Module) Variables() []string { return m.mod.Variables }

// LoadModule parses src, rewrites it, extracts its module structure,
// resolves every declared CONSTANT against constantExprs (TLA+ source
// text, evaluated in declaration order so later constants may reference
// earlier ones), and checks every ASSUME statement against the resolved
// constants before returning. Fails fast if any ASSUME evaluates to
// FALSE.
func (it *Interpreter) LoadModule(src string, constantExprs map[string]string) (*Module, error) {
	tree := parser.New(src).ParseModule()
	if errNode := ast.FindFirstError(tree); errNode != nil {
		return nil, errors.New(errors.ParseError, errNode.Pos, "%s", errNode.Err)
	}

	rewritten, err := rewriter.New().Rewrite(tree)
	if err != nil {
		return nil, err
	}

	mod, err := module.Extract(rewritten)
	if err != nil {
		return nil, err
	}

	constants, err := it.resolveConstants(mod, constantExprs)
	if err != nil {
		return nil, err
	}

	if err := it.checkAssumes(mod, constants); err != nil {
		return nil, err
	}

	return &Module{mod: mod, constants: constants}, nil
}

func (it *Interpreter) resolveConstants(mod *module.Module, exprs map[string]string) (map[string]*value.Value, error) {
	resolved := make(map[string]*value.Value, len(mod.Constants))
	for _, name := range mod.Constants {
		src, ok := exprs[name]
		if !ok {
			return nil, fmt.Errorf("tla: no value supplied for CONSTANT %s", name)
		}
		v, err := it.EvalConstantExpr(mod, src, resolved)
		if err != nil {
			return nil, fmt.Errorf("tla: evaluating CONSTANT %s: %w", name, err)
		}
		resolved[name] = v
	}
	return resolved, nil
}

// EvalConstantExpr evaluates a standalone expression (no state variables
// in scope) against an already-resolved constants table. LoadModule uses
// it for each CONSTANT; it is exported so a caller can evaluate one
// constant's value in isolation.
func (it *Interpreter) EvalConstantExpr(mod *module.Module, src string, constants map[string]*value.Value) (*value.Value, error) {
	tree := parser.New(src).ParseExpr()
	if errNode := ast.FindFirstError(tree); errNode != nil {
		return nil, errors.New(errors.ParseError, errNode.Pos, "%s", errNode.Err)
	}
	rewritten, err := rewriter.New().Rewrite(tree)
	if err != nil {
		return nil, err
	}
	ctx := state.NewContext(state.New(nil), constants, false)
	branches, err := eval.New(mod, it.logger).Eval(rewritten, ctx)
	if err != nil {
		return nil, err
	}
	return branches[0].Result, nil
}

func (it *Interpreter) checkAssumes(mod *module.Module, constants map[string]*value.Value) error {
	e := eval.New(mod, it.logger)
	for _, assume := range mod.Assumes {
		ctx := state.NewContext(state.New(nil), constants, false)
		branches, err := e.Eval(assume, ctx)
		if err != nil {
			return err
		}
		if len(branches) == 0 || branches[0].Result == nil || branches[0].Result.Kind != value.Bool {
			return errors.New(errors.TypeMismatch, assume.Pos, "ASSUME must evaluate to a Bool")
		}
		if !branches[0].Result.BoolVal {
			return errors.New(errors.AssertionFailure, assume.Pos, "ASSUME does not hold for the given constants")
		}
	}
	return nil
}

// InitialStates computes Init's states.
func (it *Interpreter) InitialStates(m *Module) ([]state.State, error) {
	return enum.Init(m.mod, m.constants, it.logger)
}

// NextStates computes Next's successors of s.
func (it *Interpreter) NextStates(m *Module, s state.State) ([]state.State, error) {
	return enum.Next(m.mod, s, m.constants, it.logger)
}

// Reachable runs the bounded breadth-first search over Init/Next,
// returning every distinct state reached and the edges between them.
func (it *Interpreter) Reachable(m *Module) ([]state.State, []enum.Edge, error) {
	return enum.Reachable(m.mod, m.constants, it.maxStates, it.logger)
}
