package parser

import (
	"testing"

	"github.com/cwbudde/gotla/internal/ast"
)

func parseExprString(t *testing.T, src string) *ast.Node {
	t.Helper()
	p := New(src)
	n := p.ParseExpr()
	if n.Kind == ast.KError {
		t.Fatalf("parse error: %s", n.Err)
	}
	return n
}

func TestParseRecordLiteralVsSetOfRecords(t *testing.T) {
	rec := parseExprString(t, `[a |-> 1, b |-> 2]`)
	if rec.Kind != ast.KRecordLit {
		t.Errorf("got %s, want RecordLit", rec.Kind)
	}

	setOfRec := parseExprString(t, `[a: {1,2}, b: {3,4}]`)
	if setOfRec.Kind != ast.KSetOfRecords {
		t.Errorf("got %s, want SetOfRecords", setOfRec.Kind)
	}
}

func TestParseFuncLitVsSetOfFuncs(t *testing.T) {
	fn := parseExprString(t, `[i \in 1..3 |-> i * 2]`)
	if fn.Kind != ast.KFuncLit {
		t.Errorf("got %s, want FuncLit", fn.Kind)
	}

	setFn := parseExprString(t, `[1..3 -> BOOLEAN]`)
	if setFn.Kind != ast.KSetOfFuncs {
		t.Errorf("got %s, want SetOfFuncs", setFn.Kind)
	}
}

func TestParseExcept(t *testing.T) {
	n := parseExprString(t, `[f EXCEPT ![1] = 2, ![2] = @ + 1]`)
	if n.Kind != ast.KExcept {
		t.Fatalf("got %s, want Except", n.Kind)
	}
	if len(n.Children) != 3 { // base + 2 arms
		t.Errorf("Except children = %d, want 3", len(n.Children))
	}
}

func TestParseSetFilterVsSetMap(t *testing.T) {
	filter := parseExprString(t, `{x \in S : x > 0}`)
	if filter.Kind != ast.KSetFilter {
		t.Errorf("got %s, want SetFilter", filter.Kind)
	}

	m := parseExprString(t, `{x + 1 : x \in S}`)
	if m.Kind != ast.KSetMap {
		t.Errorf("got %s, want SetMap", m.Kind)
	}

	lit := parseExprString(t, `{1, 2, 3}`)
	if lit.Kind != ast.KSetLit || len(lit.Children) != 3 {
		t.Errorf("got %s with %d children, want SetLit with 3", lit.Kind, len(lit.Children))
	}
}

func TestParseQuantifiersAndControlForms(t *testing.T) {
	cases := map[string]ast.Kind{
		`\E x \in S : x > 0`:      ast.KExists,
		`\A x \in S : x > 0`:      ast.KForall,
		`CHOOSE x \in S : x > 0`:  ast.KChoose,
		`IF TRUE THEN 1 ELSE 2`:   ast.KIf,
		`CASE TRUE -> 1 [] OTHER -> 2`: ast.KCase,
		`LET x == 1 IN x + 1`:     ast.KLet,
	}
	for src, want := range cases {
		n := parseExprString(t, src)
		if n.Kind != want {
			t.Errorf("parse(%q) = %s, want %s", src, n.Kind, want)
		}
	}
}

func TestParseConjunctionList(t *testing.T) {
	n := parseExprString(t, "/\\ x = 1\n/\\ y = 2\n/\\ z = 3")
	if n.Kind != ast.KConjList {
		t.Fatalf("got %s, want ConjList", n.Kind)
	}
	if len(n.Children) != 3 {
		t.Errorf("ConjList children = %d, want 3", len(n.Children))
	}
}

func TestParseModuleWithHeaderAndFooter(t *testing.T) {
	src := `
---- MODULE Test ----
VARIABLE x
Init == x = 0
Next == x' = x + 1
====
`
	p := New(src)
	m := p.ParseModule()
	if m.Kind != ast.KModule {
		t.Fatalf("got %s, want Module", m.Kind)
	}
	if len(m.Children) != 3 {
		t.Errorf("module children = %d, want 3 (VARIABLE, Init, Next)", len(m.Children))
	}
}

func TestParseMembershipDesugarTarget(t *testing.T) {
	n := parseExprString(t, `x \in S`)
	if n.Kind != ast.KIn {
		t.Fatalf("got %s, want In (desugared later by the rewriter)", n.Kind)
	}
}
