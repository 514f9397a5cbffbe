package itf

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/gotla/internal/enum"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	return string(b)
}

func TestEncodeValuePrimitives(t *testing.T) {
	enc, err := EncodeValue(value.NewInt(42))
	if err != nil {
		t.Fatalf("EncodeValue(Int): %v", err)
	}
	snaps.MatchSnapshot(t, "int_value", marshal(t, enc))

	enc, err = EncodeValue(value.NewBool(true))
	if err != nil {
		t.Fatalf("EncodeValue(Bool): %v", err)
	}
	snaps.MatchSnapshot(t, "bool_value", marshal(t, enc))

	enc, err = EncodeValue(value.NewStr("hello"))
	if err != nil {
		t.Fatalf("EncodeValue(Str): %v", err)
	}
	snaps.MatchSnapshot(t, "string_value", marshal(t, enc))
}

func TestEncodeValueSetIsFingerprintSorted(t *testing.T) {
	s, err := value.NewSet(value.NewInt(3), value.NewInt(1), value.NewInt(2))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	enc, err := EncodeValue(s)
	if err != nil {
		t.Fatalf("EncodeValue(Set): %v", err)
	}
	snaps.MatchSnapshot(t, "set_value", marshal(t, enc))
}

func TestEncodeValueTuple(t *testing.T) {
	enc, err := EncodeValue(value.NewTuple(value.NewInt(1), value.NewInt(2), value.NewInt(3)))
	if err != nil {
		t.Fatalf("EncodeValue(Tuple): %v", err)
	}
	snaps.MatchSnapshot(t, "tuple_value", marshal(t, enc))
}

func TestEncodeValueRecord(t *testing.T) {
	r := value.NewRecord(map[string]*value.Value{
		"a": value.NewInt(1),
		"b": value.NewInt(2),
	})
	enc, err := EncodeValue(r)
	if err != nil {
		t.Fatalf("EncodeValue(Record): %v", err)
	}
	snaps.MatchSnapshot(t, "record_value", marshal(t, enc))
}

func TestEncodeValueMap(t *testing.T) {
	f := value.NewFcn(
		[]*value.Value{value.NewInt(2), value.NewInt(1)},
		[]*value.Value{value.NewStr("b"), value.NewStr("a")},
	)
	enc, err := EncodeValue(f)
	if err != nil {
		t.Fatalf("EncodeValue(FcnRcd): %v", err)
	}
	snaps.MatchSnapshot(t, "map_value", marshal(t, enc))
}

func TestEncodeStateKeysSorted(t *testing.T) {
	s := state.New([]string{"x", "a", "m"}).
		WithVar("x", value.NewInt(1)).
		WithVar("a", value.NewInt(2)).
		WithVar("m", value.NewInt(3))

	enc, err := EncodeState(s, []string{"x", "a", "m"})
	if err != nil {
		t.Fatalf("EncodeState: %v", err)
	}
	snaps.MatchSnapshot(t, "state_value", marshal(t, enc))
}

func TestEncodeStateFailsOnUnassignedVariable(t *testing.T) {
	s := state.New([]string{"x"})
	if _, err := EncodeState(s, []string{"x"}); err == nil {
		t.Fatal("expected an error for an unassigned variable")
	}
}

func TestEncodeReachableIncludesEdges(t *testing.T) {
	s0 := state.New([]string{"x"}).WithVar("x", value.NewInt(0))
	s1 := state.New([]string{"x"}).WithVar("x", value.NewInt(1))

	fp0, err := s0.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fp1, err := s1.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	out, err := EncodeReachable([]state.State{s0, s1}, []enum.Edge{{From: fp0, To: fp1}}, []string{"x"})
	if err != nil {
		t.Fatalf("EncodeReachable: %v", err)
	}
	if len(out.States) != 2 {
		t.Errorf("got %d states, want 2", len(out.States))
	}
	if len(out.Edges) != 1 || out.Edges[0].From != fp0 || out.Edges[0].To != fp1 {
		t.Errorf("edges = %v, want one edge %d -> %d", out.Edges, fp0, fp1)
	}
}
