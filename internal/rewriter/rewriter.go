// Package rewriter implements a fixed-point syntax normalization over a
// parsed module tree: multi-bound quantifiers are split into
// right-nested single-binder chains, and bare `e \in S` / `e \notin S`
// membership tests are desugared into `\E k \in S : e = k` (or its
// negation) so the evaluator only ever has to handle one membership
// construct (\E) instead of two. Rewriting never mutates the input tree
// in place; each pass builds a fresh tree and the loop repeats until a
// pass produces no change. Any parse-error node present before or after
// normalization fails the whole module.
package rewriter

import (
	"fmt"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
)

// Rewriter applies the fixpoint normalization to one module's tree. Each
// Rewriter instance owns its own fresh-name counter starting at $k1, so
// the names it generates are unique among the trees it rewrites; two
// instances generate the same sequence of names.
type Rewriter struct {
	counter int
}

// New returns a Rewriter ready to process one module tree.
func New() *Rewriter {
	return &Rewriter{}
}

func (r *Rewriter) freshName() string {
	r.counter++
	return fmt.Sprintf("$k%d", r.counter)
}

// Rewrite runs the fixpoint loop over root and returns the normalized
// tree, or a ParseError if root contains an error node either before or
// after normalization.
func (r *Rewriter) Rewrite(root *ast.Node) (*ast.Node, error) {
	if errNode := ast.FindFirstError(root); errNode != nil {
		return nil, errors.New(errors.ParseError, errNode.Pos, "%s", errNode.Err)
	}

	cur := root
	for {
		next, changed := r.applyOnce(cur)
		if errNode := ast.FindFirstError(next); errNode != nil {
			return nil, errors.New(errors.ParseError, errNode.Pos, "%s", errNode.Err)
		}
		if !changed {
			return next, nil
		}
		cur = next
	}
}

// applyOnce rewrites children bottom-up, then checks whether the
// (already-rewritten) node itself matches one of the two normalization
// rules. It never mutates the input tree in place.
func (r *Rewriter) applyOnce(n *ast.Node) (*ast.Node, bool) {
	if n == nil {
		return nil, false
	}

	changedAny := false
	newChildren := make([]*ast.Node, len(n.Children))
	for i, c := range n.Children {
		nc, ch := r.applyOnce(c)
		newChildren[i] = nc
		if ch {
			changedAny = true
		}
	}
	m := &ast.Node{Kind: n.Kind, Text: n.Text, Pos: n.Pos, Err: n.Err, Children: newChildren}

	switch m.Kind {
	case ast.KForall, ast.KExists:
		if len(m.Children) > 2 {
			return splitQuantifier(m), true
		}
	case ast.KIn:
		return r.desugarIn(m), true
	}
	return m, changedAny
}

// splitQuantifier rewrites `\E v1 \in S1, v2 \in S2 : P` into
// `\E v1 \in S1 : \E v2 \in S2 : P` (and likewise for \A).
func splitQuantifier(m *ast.Node) *ast.Node {
	body := m.Children[len(m.Children)-1]
	binds := m.Children[:len(m.Children)-1]
	nested := body
	for i := len(binds) - 1; i >= 0; i-- {
		nested = ast.New(m.Kind, binds[i].Pos, binds[i], nested)
	}
	return nested
}

// desugarIn rewrites `e \in S` into `\E k \in S : e = k` for a fresh k.
func (r *Rewriter) desugarIn(m *ast.Node) *ast.Node {
	lhs, dom := m.Children[0], m.Children[1]
	name := r.freshName()
	pos := m.Pos
	bind := ast.New(ast.KQuantBind, pos, ast.Leaf(ast.KIdent, pos, name), dom)
	eq := ast.New(ast.KEq, pos, lhs, ast.Leaf(ast.KIdent, pos, name))
	return ast.New(ast.KExists, pos, bind, eq)
}

// RewriteSource parses source with parse, then rewrites it, returning
// both the pre- and post-rewrite trees so callers can print either.
func RewriteSource(parse func(string) *ast.Node, source string) (*ast.Node, *ast.Node, error) {
	raw := parse(source)
	rewritten, err := New().Rewrite(raw)
	if err != nil {
		return raw, nil, err
	}
	return raw, rewritten, nil
}
