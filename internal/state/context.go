package state

import "github.com/cwbudde/gotla/internal/value"

// Context is the bundle threaded through every evaluator call: a result
// value, the state under construction, quantifier bindings, constants,
// the previous-function-value slot EXCEPT's `@` resolves against, and
// two mode flags controlling assignment. Contexts are forked by
// copy-on-write; every With* method returns a new Context and never
// mutates the receiver. The read-only definitions table is passed
// alongside Context as a separate argument to the evaluator rather than
// embedded here, since internal/eval is the only consumer that needs
// both and internal/state must not import internal/module to avoid a
// cycle.
type Context struct {
	Result *value.Value
	State  State

	Bindings  map[string]*value.Value
	Constants map[string]*value.Value

	// PrevFuncValue is what `@` resolves to inside an EXCEPT RHS.
	PrevFuncValue *value.Value

	// PrimedScope is set while evaluating inside a `'` subtree, so
	// identifier resolution looks up X' instead of X.
	PrimedScope bool

	// UnprimedAssignAllowed is true during Init evaluation (where `=`
	// may bind an unassigned unprimed variable) and false during Next
	// evaluation (where only primed variables may be freshly bound).
	UnprimedAssignAllowed bool
}

// NewContext builds the root Context for one predicate evaluation.
func NewContext(s State, constants map[string]*value.Value, unprimedAssignAllowed bool) Context {
	return Context{
		State:                 s,
		Bindings:              map[string]*value.Value{},
		Constants:             constants,
		UnprimedAssignAllowed: unprimedAssignAllowed,
	}
}

// WithResult returns a copy of c with Result replaced.
func (c Context) WithResult(v *value.Value) Context {
	c.Result = v
	return c
}

// WithState returns a copy of c with State replaced.
func (c Context) WithState(s State) Context {
	c.State = s
	return c
}

// WithBinding returns a copy of c with name bound to v in Bindings.
func (c Context) WithBinding(name string, v *value.Value) Context {
	cp := make(map[string]*value.Value, len(c.Bindings)+1)
	for k, val := range c.Bindings {
		cp[k] = val
	}
	cp[name] = v
	c.Bindings = cp
	return c
}

// WithPrevFuncValue returns a copy of c with PrevFuncValue replaced, for
// evaluating one EXCEPT arm's RHS.
func (c Context) WithPrevFuncValue(v *value.Value) Context {
	c.PrevFuncValue = v
	return c
}

// WithPrimedScope returns a copy of c with PrimedScope set to on.
func (c Context) WithPrimedScope(on bool) Context {
	c.PrimedScope = on
	return c
}

// LookupBinding resolves name in quantifier bindings.
func (c Context) LookupBinding(name string) (*value.Value, bool) {
	v, ok := c.Bindings[name]
	return v, ok
}

// LookupConstant resolves name in the constants table.
func (c Context) LookupConstant(name string) (*value.Value, bool) {
	v, ok := c.Constants[name]
	return v, ok
}
