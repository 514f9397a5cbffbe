// Package enum implements the state enumerators: Init-state generation,
// Next-state generation from a given state, and Reachable breadth-first
// search over the two with fingerprint-based deduplication.
package enum

import (
	"container/list"

	"github.com/hashicorp/go-hclog"

	"github.com/cwbudde/gotla/internal/eval"
	"github.com/cwbudde/gotla/internal/module"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// Edge is one (predecessor, successor) step recorded during a
// reachability search, identified by state fingerprint.
type Edge struct {
	From value.Fingerprint
	To   value.Fingerprint
}

func defaultLogger(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}

func isTrueResult(v *value.Value) bool {
	return v != nil && v.Kind == value.Bool && v.BoolVal
}

// Init evaluates Init against a Context with every declared variable
// unassigned and unprimed assignment allowed. Only TRUE branches survive;
// their states are deduplicated by fingerprint.
func Init(mod *module.Module, constants map[string]*value.Value, logger hclog.Logger) ([]state.State, error) {
	logger = defaultLogger(logger)
	initDef, err := mod.RequireInit()
	if err != nil {
		return nil, err
	}

	e := eval.New(mod, logger)
	ctx := state.NewContext(state.New(mod.Variables), constants, true)
	branches, err := e.Eval(initDef.Body, ctx)
	if err != nil {
		return nil, err
	}

	seen := map[value.Fingerprint]bool{}
	var out []state.State
	for _, b := range branches {
		if !isTrueResult(b.Result) {
			continue
		}
		fp, err := b.State.Fingerprint()
		if err != nil {
			return nil, err
		}
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, b.State)
	}
	logger.Debug("init states computed", "count", len(out))
	return out, nil
}

// Next evaluates Next from s: s extended with one unassigned primed
// slot per variable, unprimed assignment disallowed. A branch
// survives only if it is TRUE and every primed variable ended up
// assigned; surviving branches are deprimed into successor states and
// deduplicated by fingerprint.
func Next(mod *module.Module, s state.State, constants map[string]*value.Value, logger hclog.Logger) ([]state.State, error) {
	logger = defaultLogger(logger)
	nextDef, err := mod.RequireNext()
	if err != nil {
		return nil, err
	}

	e := eval.New(mod, logger)
	ctx := state.NewContext(s.WithPrimedSlots(mod.Variables), constants, false)
	branches, err := e.Eval(nextDef.Body, ctx)
	if err != nil {
		return nil, err
	}

	seen := map[value.Fingerprint]bool{}
	var out []state.State
	for _, b := range branches {
		if !isTrueResult(b.Result) {
			continue
		}
		if !b.State.AllPrimedAssigned(mod.Variables) {
			logger.Debug("discarding branch with an unassigned primed variable")
			continue
		}
		succ := b.State.Deprime()
		fp, err := succ.Fingerprint()
		if err != nil {
			return nil, err
		}
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, succ)
	}
	return out, nil
}

// Reachable runs a breadth-first search seeded by Init, expanding each
// state with Next and deduplicating by fingerprint, recording every
// (predecessor, successor) edge along the way. maxStates bounds the
// number of distinct states visited; 0 means unbounded.
func Reachable(mod *module.Module, constants map[string]*value.Value, maxStates int, logger hclog.Logger) ([]state.State, []Edge, error) {
	logger = defaultLogger(logger)

	initStates, err := Init(mod, constants, logger)
	if err != nil {
		return nil, nil, err
	}

	seen := map[value.Fingerprint]state.State{}
	var order []value.Fingerprint
	queue := list.New()

	enqueue := func(s state.State) error {
		fp, err := s.Fingerprint()
		if err != nil {
			return err
		}
		if _, ok := seen[fp]; ok {
			return nil
		}
		if maxStates > 0 && len(order) >= maxStates {
			return nil
		}
		seen[fp] = s
		order = append(order, fp)
		queue.PushBack(s)
		return nil
	}

	for _, s := range initStates {
		if err := enqueue(s); err != nil {
			return nil, nil, err
		}
	}

	var edges []Edge
	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(state.State)
		fromFP, err := front.Fingerprint()
		if err != nil {
			return nil, nil, err
		}

		succs, err := Next(mod, front, constants, logger)
		if err != nil {
			return nil, nil, err
		}
		for _, succ := range succs {
			toFP, err := succ.Fingerprint()
			if err != nil {
				return nil, nil, err
			}
			edges = append(edges, Edge{From: fromFP, To: toFP})
			if err := enqueue(succ); err != nil {
				return nil, nil, err
			}
		}
	}

	if maxStates > 0 && len(order) >= maxStates {
		logger.Debug("reachability search stopped at max-states bound", "bound", maxStates)
	}

	states := make([]state.State, 0, len(order))
	for _, fp := range order {
		states = append(states, seen[fp])
	}
	return states, edges, nil
}
