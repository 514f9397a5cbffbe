package ast

import (
	"testing"

	"github.com/cwbudde/gotla/internal/token"
)

func TestFindFirstErrorNested(t *testing.T) {
	pos := token.Position{Line: 3, Column: 4}
	bad := ErrorNode(pos, "boom")
	root := New(KModule, token.Position{}, New(KConjList, token.Position{}, Leaf(KBool, token.Position{}, "TRUE"), bad))

	found := FindFirstError(root)
	if found == nil {
		t.Fatal("expected to find the error node")
	}
	if found.Err != "boom" {
		t.Errorf("Err = %q, want %q", found.Err, "boom")
	}
	if found.Pos != pos {
		t.Errorf("Pos = %v, want %v", found.Pos, pos)
	}
}

func TestFindFirstErrorNoneFound(t *testing.T) {
	root := New(KConjList, token.Position{}, Leaf(KBool, token.Position{}, "TRUE"))
	if FindFirstError(root) != nil {
		t.Error("expected no error node")
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	root := New(KTuple, token.Position{},
		Leaf(KNumber, token.Position{}, "1"),
		Leaf(KNumber, token.Position{}, "2"))

	var count int
	Walk(root, func(*Node) { count++ })
	if count != 3 {
		t.Errorf("Walk visited %d nodes, want 3", count)
	}
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	if KModule.String() != "Module" {
		t.Errorf("KModule.String() = %q, want Module", KModule.String())
	}
	if Kind(-1).String() != "UNKNOWN" {
		t.Errorf("unknown Kind.String() = %q, want UNKNOWN", Kind(-1).String())
	}
}
