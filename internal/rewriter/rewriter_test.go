package rewriter

import (
	"testing"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/parser"
)

func rewriteSrc(t *testing.T, src string) *ast.Node {
	t.Helper()
	tree := parser.New(src).ParseExpr()
	out, err := New().Rewrite(tree)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	return out
}

func TestDesugarsMembership(t *testing.T) {
	n := rewriteSrc(t, `x \in S`)
	if n.Kind != ast.KExists {
		t.Fatalf("got %s, want Exists after desugaring", n.Kind)
	}
	bind := n.Children[0]
	if bind.Kind != ast.KQuantBind {
		t.Fatalf("first child kind = %s, want QuantBind", bind.Kind)
	}
	body := n.Children[1]
	if body.Kind != ast.KEq {
		t.Fatalf("body kind = %s, want Eq", body.Kind)
	}
}

func TestDesugarMembershipFreshNamesUnique(t *testing.T) {
	r := New()
	tree := parser.New(`x \in S /\ y \in T`).ParseExpr()
	out, err := r.Rewrite(tree)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	var binders []string
	ast.Walk(out, func(n *ast.Node) {
		if n.Kind == ast.KQuantBind {
			binders = append(binders, n.Children[0].Text)
		}
	})
	if len(binders) != 2 {
		t.Fatalf("got %d binders, want 2", len(binders))
	}
	if binders[0] == binders[1] {
		t.Errorf("fresh names collide: %q", binders[0])
	}
}

func TestSplitsMultiBindQuantifier(t *testing.T) {
	n := rewriteSrc(t, `\E a \in A, b \in B : a = b`)
	if n.Kind != ast.KExists {
		t.Fatalf("got %s, want Exists", n.Kind)
	}
	if len(n.Children) != 2 {
		t.Fatalf("outer Exists should have exactly 1 bind + 1 body, got %d children", len(n.Children))
	}
	inner := n.Children[1]
	if inner.Kind != ast.KExists {
		t.Fatalf("inner body kind = %s, want nested Exists", inner.Kind)
	}
	if len(inner.Children) != 2 {
		t.Fatalf("inner Exists should also have exactly 1 bind, got %d children", len(inner.Children))
	}
}

func TestRewriteFailsOnParseError(t *testing.T) {
	tree := parser.New(`x +`).ParseExpr()
	if _, err := New().Rewrite(tree); err == nil {
		t.Fatal("expected Rewrite to fail on a parse error")
	}
}

func TestRewriteIsNoopOnAlreadyNormalized(t *testing.T) {
	n := rewriteSrc(t, `x = 1`)
	if n.Kind != ast.KEq {
		t.Fatalf("got %s, want Eq unchanged", n.Kind)
	}
}
