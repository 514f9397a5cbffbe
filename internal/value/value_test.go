package value

import "testing"

func mustFp(t *testing.T, v *Value) Fingerprint {
	t.Helper()
	fp, err := v.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	return fp
}

func TestFingerprintScalarsDistinct(t *testing.T) {
	vals := []*Value{NewInt(1), NewInt(2), NewBool(true), NewBool(false), NewStr("a"), NewStr("b")}
	seen := map[Fingerprint]string{}
	for _, v := range vals {
		fp := mustFp(t, v)
		if other, ok := seen[fp]; ok {
			t.Errorf("fingerprint collision between %q and %q", other, v.String())
		}
		seen[fp] = v.String()
	}
}

func TestFingerprintStableAcrossClone(t *testing.T) {
	orig, err := NewSet(NewInt(1), NewInt(2), NewInt(3))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	clone, err := NewSet(NewInt(3), NewInt(2), NewInt(1))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if mustFp(t, orig) != mustFp(t, clone) {
		t.Errorf("fingerprint not invariant under element reordering")
	}
}

func TestSetUnionCommutative(t *testing.T) {
	a, _ := NewSet(NewInt(1), NewInt(2))
	b, _ := NewSet(NewInt(2), NewInt(3))

	ab, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	ba, err := Union(b, a)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if mustFp(t, ab) != mustFp(t, ba) {
		t.Errorf("Union not commutative by fingerprint")
	}
}

func TestSetIntersectCommutative(t *testing.T) {
	a, _ := NewSet(NewInt(1), NewInt(2))
	b, _ := NewSet(NewInt(2), NewInt(3))

	ab, err := Intersect(a, b)
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	ba, err := Intersect(b, a)
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	if mustFp(t, ab) != mustFp(t, ba) {
		t.Errorf("Intersect not commutative by fingerprint")
	}
}

func TestSetUniquifiesOnConstruction(t *testing.T) {
	s, err := NewSet(NewInt(1), NewInt(1), NewInt(2))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	card, err := Cardinality(s)
	if err != nil {
		t.Fatalf("Cardinality: %v", err)
	}
	if card != 2 {
		t.Errorf("Cardinality() = %d, want 2", card)
	}
}

func TestPowersetSize(t *testing.T) {
	s, _ := NewSet(NewInt(1), NewInt(2), NewInt(3))
	pow, err := Powerset(s)
	if err != nil {
		t.Fatalf("Powerset: %v", err)
	}
	card, _ := Cardinality(pow)
	if card != 8 {
		t.Errorf("Powerset card = %d, want 8", card)
	}
}

func TestFcnRcdUpdateIdempotent(t *testing.T) {
	f := NewFcn([]*Value{NewInt(1), NewInt(2)}, []*Value{NewInt(10), NewInt(20)})
	for _, d := range f.Domain {
		cur, err := Apply(f, d)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		updated, err := Update(f, d, cur)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if mustFp(t, updated) != mustFp(t, f) {
			t.Errorf("self-update with existing value changed fingerprint")
		}
	}
}

func TestTupleToFcnRoundTrip(t *testing.T) {
	tup := NewTuple(NewInt(10), NewInt(20), NewInt(30))
	fcn, err := ToFcn(tup)
	if err != nil {
		t.Fatalf("ToFcn: %v", err)
	}
	back, err := ToTuple(fcn)
	if err != nil {
		t.Fatalf("ToTuple: %v", err)
	}
	if mustFp(t, back) != mustFp(t, tup) {
		t.Errorf("Tuple -> FcnRcd -> Tuple round trip changed fingerprint")
	}
}

func TestSequenceOpsOnTuple(t *testing.T) {
	s := NewTuple(NewInt(1), NewInt(2))

	head, err := Head(s)
	if err != nil || head.IntVal != 1 {
		t.Errorf("Head() = %v, %v; want 1, nil", head, err)
	}
	tail, err := Tail(s)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if n, _ := Len(tail); n != 1 {
		t.Errorf("Len(Tail(s)) = %d, want 1", n)
	}

	appended, err := Append(s, NewInt(3))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if n, _ := Len(appended); n != 3 {
		t.Errorf("Len(Append(s,3)) = %d, want 3", n)
	}

	concatted, err := Concat(s, s)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if n, _ := Len(concatted); n != 4 {
		t.Errorf("Len(Concat(s,s)) = %d, want 4", n)
	}
}

func TestHeadTailEmptyFails(t *testing.T) {
	empty := NewTuple()
	if _, err := Head(empty); err == nil {
		t.Error("Head(<<>>) should fail")
	}
	if _, err := Tail(empty); err == nil {
		t.Error("Tail(<<>>) should fail")
	}
}

func TestComposeDomainUnionLeftWins(t *testing.T) {
	a := NewFcn([]*Value{NewInt(1)}, []*Value{NewInt(100)})
	b := NewFcn([]*Value{NewInt(1), NewInt(2)}, []*Value{NewInt(999), NewInt(200)})

	composed, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	v1, err := Apply(composed, NewInt(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v1.IntVal != 100 {
		t.Errorf("Compose should keep a's value on overlap, got %d", v1.IntVal)
	}
	v2, err := Apply(composed, NewInt(2))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v2.IntVal != 200 {
		t.Errorf("Compose should bring in b's non-overlapping value, got %d", v2.IntVal)
	}
}

func TestApplyOutOfDomainFails(t *testing.T) {
	f := NewFcn([]*Value{NewInt(1)}, []*Value{NewInt(10)})
	if _, err := Apply(f, NewInt(2)); err == nil {
		t.Error("Apply outside domain should fail")
	}
}

func TestUpdatePathNested(t *testing.T) {
	inner := NewRecord(map[string]*Value{"a": NewInt(0)})
	outer := NewRecord(map[string]*Value{"r": inner})

	updated, err := UpdatePath(outer, []*Value{NewStr("r"), NewStr("a")}, NewInt(5))
	if err != nil {
		t.Fatalf("UpdatePath: %v", err)
	}
	inner2, err := Apply(updated, NewStr("r"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	a, err := Apply(inner2, NewStr("a"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.IntVal != 5 {
		t.Errorf("UpdatePath did not propagate, got %d", a.IntVal)
	}
}

func TestFuncPairAndMerge(t *testing.T) {
	pair := FuncPair(NewInt(1), NewInt(100))
	v, err := Apply(pair, NewInt(1))
	if err != nil || v.IntVal != 100 {
		t.Errorf("Apply(1 :> 100, 1) = %v, %v; want 100, nil", v, err)
	}

	merged, err := Compose(pair, FuncPair(NewInt(2), NewInt(200)))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	v, err = Apply(merged, NewInt(2))
	if err != nil || v.IntVal != 200 {
		t.Errorf("Apply((1 :> 100) @@ (2 :> 200), 2) = %v, %v; want 200, nil", v, err)
	}
}

func TestIntRangeEmptyWhenDescending(t *testing.T) {
	r, err := IntRange(5, 1)
	if err != nil {
		t.Fatalf("IntRange: %v", err)
	}
	card, _ := Cardinality(r)
	if card != 0 {
		t.Errorf("IntRange(5,1) should be empty, got card %d", card)
	}
}

func TestEqualRoutesThroughFingerprint(t *testing.T) {
	a, _ := NewSet(NewInt(1), NewInt(2))
	b, _ := NewSet(NewInt(2), NewInt(1))
	eq, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !eq {
		t.Error("sets with same elements in different order should be Equal")
	}
}
