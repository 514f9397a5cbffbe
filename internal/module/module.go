// Package module implements the module extractor: a single top-down
// walk of a rewritten module tree collecting constant and variable
// declarations, operator and function definitions, module-level ASSUME
// statements, and the flattened list of Next's top-level actions.
package module

import (
	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/token"
)

// OpDef is an operator definition: name, ordered parameter names, body.
type OpDef struct {
	Name   string
	Params []string
	Body   *ast.Node
}

// FuncDef is a function definition (`Name[v \in S] == body`): name,
// quantifier-bound list, body.
type FuncDef struct {
	Name  string
	Binds []*ast.Node // KQuantBind nodes
	Body  *ast.Node
}

// Module is the extractor's output: everything the evaluator and state
// enumerators need to run.
type Module struct {
	Constants []string
	Variables []string
	Ops       map[string]*OpDef
	Funcs     map[string]*FuncDef
	Assumes   []*ast.Node

	// Actions is Next's top-level disjunct list if Next's body is a
	// KDisjList; otherwise it is the single-element list [Next's body].
	Actions []*ast.Node
}

// LookupOp returns the operator definition named name, if any.
func (m *Module) LookupOp(name string) (*OpDef, bool) {
	d, ok := m.Ops[name]
	return d, ok
}

// LookupFunc returns the function definition named name, if any.
func (m *Module) LookupFunc(name string) (*FuncDef, bool) {
	d, ok := m.Funcs[name]
	return d, ok
}

// IsConstant reports whether name was declared CONSTANT.
func (m *Module) IsConstant(name string) bool {
	for _, c := range m.Constants {
		if c == name {
			return true
		}
	}
	return false
}

// IsVariable reports whether name was declared VARIABLE.
func (m *Module) IsVariable(name string) bool {
	for _, v := range m.Variables {
		if v == name {
			return true
		}
	}
	return false
}

// Extract walks root (already rewritten by internal/rewriter) once and
// builds a Module. Fails if multiple Init or Next definitions exist.
func Extract(root *ast.Node) (*Module, error) {
	m := &Module{Ops: map[string]*OpDef{}, Funcs: map[string]*FuncDef{}}

	if root.Kind != ast.KModule {
		return nil, errors.New(errors.AssertionFailure, root.Pos, "Extract: expected KModule root, got %s", root.Kind)
	}

	var initCount, nextCount int
	for _, top := range root.Children {
		switch top.Kind {
		case ast.KConstantDecl:
			m.Constants = append(m.Constants, identListText(top)...)
		case ast.KVariableDecl:
			m.Variables = append(m.Variables, identListText(top)...)
		case ast.KAssume:
			m.Assumes = append(m.Assumes, top.Children[0])
		case ast.KOpDef:
			def := extractOpDef(top)
			if def.Name == "Init" {
				initCount++
			}
			if def.Name == "Next" {
				nextCount++
			}
			m.Ops[def.Name] = def
		case ast.KFuncDef:
			def := extractFuncDef(top)
			m.Funcs[def.Name] = def
		}
	}

	if initCount > 1 {
		return nil, errors.New(errors.AssertionFailure, root.Pos, "multiple Init definitions")
	}
	if nextCount > 1 {
		return nil, errors.New(errors.AssertionFailure, root.Pos, "multiple Next definitions")
	}

	if next, ok := m.Ops["Next"]; ok {
		if next.Body.Kind == ast.KDisjList {
			m.Actions = append([]*ast.Node{}, next.Body.Children...)
		} else {
			m.Actions = []*ast.Node{next.Body}
		}
	}

	return m, nil
}

// WithLocalDefs returns a shallow copy of m with defs (KOpDef/KFuncDef
// nodes from a LET) added to its Ops/Funcs tables, shadowing any
// module-level definition of the same name. Used by internal/eval to
// give a LET body a definitions table that also sees its local defs,
// without m itself ever holding LET-scoped names.
func (m *Module) WithLocalDefs(defs []*ast.Node) *Module {
	cp := &Module{
		Constants: m.Constants,
		Variables: m.Variables,
		Ops:       make(map[string]*OpDef, len(m.Ops)+len(defs)),
		Funcs:     make(map[string]*FuncDef, len(m.Funcs)),
		Assumes:   m.Assumes,
		Actions:   m.Actions,
	}
	for k, v := range m.Ops {
		cp.Ops[k] = v
	}
	for k, v := range m.Funcs {
		cp.Funcs[k] = v
	}
	for _, d := range defs {
		switch d.Kind {
		case ast.KOpDef:
			def := extractOpDef(d)
			cp.Ops[def.Name] = def
		case ast.KFuncDef:
			def := extractFuncDef(d)
			cp.Funcs[def.Name] = def
		}
	}
	return cp
}

// RequireInit returns Init's definition or an error if it is missing.
func (m *Module) RequireInit() (*OpDef, error) {
	d, ok := m.Ops["Init"]
	if !ok {
		return nil, errors.New(errors.AssertionFailure, token.Position{}, "module has no Init definition")
	}
	return d, nil
}

// RequireNext returns Next's definition or an error if it is missing.
func (m *Module) RequireNext() (*OpDef, error) {
	d, ok := m.Ops["Next"]
	if !ok {
		return nil, errors.New(errors.AssertionFailure, token.Position{}, "module has no Next definition")
	}
	return d, nil
}

func identListText(declNode *ast.Node) []string {
	var names []string
	for _, c := range declNode.Children {
		names = append(names, c.Text)
	}
	return names
}

// extractOpDef reads a KOpDef node shaped [name KIdent, KParamList, body].
func extractOpDef(n *ast.Node) *OpDef {
	name := n.Children[0].Text
	paramList := n.Children[1]
	body := n.Children[2]
	var params []string
	for _, p := range paramList.Children {
		params = append(params, p.Text)
	}
	return &OpDef{Name: name, Params: params, Body: body}
}

// extractFuncDef reads a KFuncDef node shaped [name KIdent, ...binds, body].
func extractFuncDef(n *ast.Node) *FuncDef {
	name := n.Children[0].Text
	body := n.Children[len(n.Children)-1]
	binds := n.Children[1 : len(n.Children)-1]
	return &FuncDef{Name: name, Binds: binds, Body: body}
}
