// Package state implements the interpreter's State and Context types:
// the variable-name-to-Value map the evaluator threads through a run,
// and the immutable-by-convention Context each evaluator call forks
// along its branches.
package state

import (
	"sort"

	"github.com/cwbudde/gotla/internal/value"
)

// State is a total-or-partial assignment of declared variable names to
// Values. A name present in vars with a nil Value is declared but
// unassigned; a name absent from vars was never declared at all.
type State struct {
	vars map[string]*value.Value
}

// New builds a State with every name in declared present and unassigned.
func New(declared []string) State {
	vars := make(map[string]*value.Value, len(declared))
	for _, n := range declared {
		vars[n] = nil
	}
	return State{vars: vars}
}

// Has reports whether name is a declared key (assigned or not).
func (s State) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// IsAssigned reports whether name is declared and currently bound.
func (s State) IsAssigned(name string) bool {
	v, ok := s.vars[name]
	return ok && v != nil
}

// Get returns the value bound to name, or nil if unassigned/undeclared.
func (s State) Get(name string) *value.Value {
	return s.vars[name]
}

// WithVar returns a new State identical to s except name now maps to v.
// Forking never mutates the receiver.
func (s State) WithVar(name string, v *value.Value) State {
	cp := make(map[string]*value.Value, len(s.vars)+1)
	for k, val := range s.vars {
		cp[k] = val
	}
	cp[name] = v
	return State{vars: cp}
}

// Names returns every key in s, declared or primed, in no particular
// order.
func (s State) Names() []string {
	out := make([]string, 0, len(s.vars))
	for k := range s.vars {
		out = append(out, k)
	}
	return out
}

// Deprime drops every unprimed entry and renames each primed key X' back
// to X. The result is the successor state handed to the caller after a
// Next evaluation.
func (s State) Deprime() State {
	cp := make(map[string]*value.Value, len(s.vars))
	for k, v := range s.vars {
		if isPrimed(k) {
			cp[unprime(k)] = v
		}
	}
	return State{vars: cp}
}

// WithPrimedSlots returns a new State extending s with one unassigned
// primed slot per name in declared, the setup a Next evaluation starts
// from.
func (s State) WithPrimedSlots(declared []string) State {
	cp := make(map[string]*value.Value, len(s.vars)+len(declared))
	for k, v := range s.vars {
		cp[k] = v
	}
	for _, n := range declared {
		cp[prime(n)] = nil
	}
	return State{vars: cp}
}

// AllPrimedAssigned reports whether every primed key in declared is
// bound. A Next branch that fails this check is discarded.
func (s State) AllPrimedAssigned(declared []string) bool {
	for _, n := range declared {
		if !s.IsAssigned(prime(n)) {
			return false
		}
	}
	return true
}

// Fingerprint returns the canonical hash of s: the sorted (name, value
// fingerprint) pairs, used for Init/Reachable deduplication.
func (s State) Fingerprint() (value.Fingerprint, error) {
	names := s.Names()
	sort.Strings(names)

	pairs := make([]*value.Value, 0, 2*len(names))
	for _, n := range names {
		v := s.vars[n]
		if v == nil {
			v = value.NewStr("$unassigned")
		}
		pairs = append(pairs, value.NewStr(n), v)
	}
	return value.NewTuple(pairs...).Fingerprint()
}

func prime(name string) string   { return name + "'" }
func isPrimed(name string) bool  { return len(name) > 0 && name[len(name)-1] == '\'' }
func unprime(name string) string { return name[:len(name)-1] }
