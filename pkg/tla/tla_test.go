package tla

import (
	"strings"
	"testing"
)

func TestLoadModuleResolvesConstantsInOrder(t *testing.T) {
	it := New()
	m, err := it.LoadModule(`
CONSTANT N
CONSTANT M
VARIABLE x
Init == x = N
Next == x' = x + M
`, map[string]string{"N": "3", "M": "N + 1"})
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	initStates, err := it.InitialStates(m)
	if err != nil {
		t.Fatalf("InitialStates: %v", err)
	}
	if len(initStates) != 1 || initStates[0].Get("x").IntVal != 3 {
		t.Fatalf("initial states = %v, want a single state with x=3", initStates)
	}

	succs, err := it.NextStates(m, initStates[0])
	if err != nil {
		t.Fatalf("NextStates: %v", err)
	}
	if len(succs) != 1 || succs[0].Get("x").IntVal != 7 {
		t.Fatalf("successors = %v, want a single state with x=7 (3 + (N+1)=4)", succs)
	}
}

func TestLoadModuleMissingConstantFails(t *testing.T) {
	it := New()
	_, err := it.LoadModule(`
CONSTANT N
VARIABLE x
Init == x = N
Next == x' = x
`, nil)
	if err == nil {
		t.Fatal("expected an error for a missing constant value")
	}
}

func TestLoadModuleAssumeHoldsSucceeds(t *testing.T) {
	it := New()
	_, err := it.LoadModule(`
CONSTANT N
ASSUME N > 0
VARIABLE x
Init == x = N
Next == x' = x
`, map[string]string{"N": "5"})
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
}

func TestLoadModuleAssumeFailsFast(t *testing.T) {
	it := New()
	_, err := it.LoadModule(`
CONSTANT N
ASSUME N > 0
VARIABLE x
Init == x = N
Next == x' = x
`, map[string]string{"N": "-1"})
	if err == nil {
		t.Fatal("expected an ASSUME violation error")
	}
	if !strings.Contains(err.Error(), "ASSUME") {
		t.Errorf("error = %v, want it to mention ASSUME", err)
	}
}

func TestReachableRespectsMaxStatesOption(t *testing.T) {
	it := New(WithMaxStates(2))
	m, err := it.LoadModule(`
VARIABLE x
Init == x = 0
Next == x' = x + 1
`, nil)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	states, edges, err := it.Reachable(m)
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("got %d states, want 2 (max-states bound)", len(states))
	}
	if len(edges) == 0 {
		t.Error("expected at least one recorded edge")
	}
}

func TestVariablesReflectsDeclarationOrder(t *testing.T) {
	it := New()
	m, err := it.LoadModule(`
VARIABLES a, b
Init == a = 0 /\ b = 0
Next == a' = a /\ b' = b
`, nil)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	vars := m.Variables()
	if len(vars) != 2 || vars[0] != "a" || vars[1] != "b" {
		t.Errorf("Variables() = %v, want [a b]", vars)
	}
}
