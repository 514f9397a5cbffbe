package ast_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/parser"
	"github.com/cwbudde/gotla/internal/rewriter"
)

func rewrittenSprint(t *testing.T, src string) string {
	t.Helper()
	tree := parser.New(src).ParseExpr()
	if errNode := ast.FindFirstError(tree); errNode != nil {
		t.Fatalf("parse error: %s", errNode.Err)
	}
	rewritten, err := rewriter.New().Rewrite(tree)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	return ast.Sprint(rewritten)
}

func TestSprintArithmetic(t *testing.T) {
	got := rewrittenSprint(t, "1 + 2 * 3")
	if got != "1 + 2 * 3" {
		t.Errorf("Sprint = %q, want %q", got, "1 + 2 * 3")
	}
}

func TestSprintConjunctionAndDisjunction(t *testing.T) {
	got := rewrittenSprint(t, "x > 0 /\\ y > 0")
	if got != "x > 0 /\\ y > 0" {
		t.Errorf("Sprint = %q, want %q", got, "x > 0 /\\ y > 0")
	}

	got = rewrittenSprint(t, "x > 0 \\/ y > 0")
	if got != "x > 0 \\/ y > 0" {
		t.Errorf("Sprint = %q, want %q", got, "x > 0 \\/ y > 0")
	}
}

func TestSprintRecordLitAndFieldAccess(t *testing.T) {
	got := rewrittenSprint(t, "[a |-> 1, b |-> 2].a")
	if got != "[a |-> 1, b |-> 2].a" {
		t.Errorf("Sprint = %q, want %q", got, "[a |-> 1, b |-> 2].a")
	}
}

func TestSprintExcept(t *testing.T) {
	got := rewrittenSprint(t, "[f EXCEPT ![1] = 2]")
	if got != "[f EXCEPT ![1] = 2]" {
		t.Errorf("Sprint = %q, want %q", got, "[f EXCEPT ![1] = 2]")
	}
}

func TestSprintIfAndCase(t *testing.T) {
	got := rewrittenSprint(t, "IF x THEN 1 ELSE 2")
	if got != "IF x THEN 1 ELSE 2" {
		t.Errorf("Sprint = %q, want %q", got, "IF x THEN 1 ELSE 2")
	}

	got = rewrittenSprint(t, "CASE x -> 1 [] OTHER -> 2")
	if got != "CASE x -> 1 [] OTHER -> 2" {
		t.Errorf("Sprint = %q, want %q", got, "CASE x -> 1 [] OTHER -> 2")
	}
}

// A membership test is desugared by the rewriter into \E before Sprint
// ever sees it, so printing it back shows the desugared \E form, not
// the original \in.
func TestSprintDesugaredMembershipShowsExists(t *testing.T) {
	got := rewrittenSprint(t, "x \\in S")
	if !strings.Contains(got, "\\E") || !strings.Contains(got, "\\in S") {
		t.Errorf("Sprint = %q, want a desugared \\E ... \\in S form", got)
	}
}

func TestSprintMultiBinderQuantifierSplitsToNested(t *testing.T) {
	got := rewrittenSprint(t, "\\A a \\in S, b \\in T : a = b")
	if strings.Count(got, "\\A") != 2 {
		t.Errorf("Sprint = %q, want two nested \\A after splitting", got)
	}
}
