package value

import "fmt"

// Len returns the length of a Tuple, or a FcnRcd usable as a sequence
// (integral domain {1..n}).
func Len(v *Value) (int64, error) {
	t, err := asTuple(v, "Len")
	if err != nil {
		return 0, err
	}
	return int64(len(t.Items)), nil
}

// Head returns the first element; fails on an empty sequence.
func Head(v *Value) (*Value, error) {
	t, err := asTuple(v, "Head")
	if err != nil {
		return nil, err
	}
	if len(t.Items) == 0 {
		return nil, fmt.Errorf("Head: empty sequence")
	}
	return t.Items[0], nil
}

// Tail returns all but the first element; fails on an empty sequence.
func Tail(v *Value) (*Value, error) {
	t, err := asTuple(v, "Tail")
	if err != nil {
		return nil, err
	}
	if len(t.Items) == 0 {
		return nil, fmt.Errorf("Tail: empty sequence")
	}
	return NewTuple(t.Items[1:]...), nil
}

// Append returns the sequence with e appended.
func Append(v, e *Value) (*Value, error) {
	t, err := asTuple(v, "Append")
	if err != nil {
		return nil, err
	}
	return NewTuple(append(append([]*Value{}, t.Items...), e)...), nil
}

// Concat implements `a \o b`, sequence concatenation.
func Concat(a, b *Value) (*Value, error) {
	ta, err := asTuple(a, "Concat")
	if err != nil {
		return nil, err
	}
	tb, err := asTuple(b, "Concat")
	if err != nil {
		return nil, err
	}
	return NewTuple(append(append([]*Value{}, ta.Items...), tb.Items...)...), nil
}

// ToFcn views a Tuple as a FcnRcd with domain {1..n}.
func ToFcn(v *Value) (*Value, error) {
	t, err := asTuple(v, "ToFcn")
	if err != nil {
		return nil, err
	}
	dom := make([]*Value, len(t.Items))
	for i := range t.Items {
		dom[i] = NewInt(int64(i + 1))
	}
	return &Value{Kind: FcnRcd, Domain: dom, Range: append([]*Value{}, t.Items...)}, nil
}

// ToTuple views a FcnRcd with integral domain {1..n} as a Tuple; fails
// otherwise.
func ToTuple(v *Value) (*Value, error) {
	if v.Kind == Tuple {
		return v, nil
	}
	if v.Kind != FcnRcd {
		return nil, &TypeError{Op: "ToTuple", Expected: "FcnRcd or Tuple", Got: v.Kind}
	}
	n := len(v.Domain)
	items := make([]*Value, n)
	for i := 0; i < n; i++ {
		want := int64(i + 1)
		idx, err := indexOfInt(v.Domain, want)
		if err != nil {
			return nil, fmt.Errorf("ToTuple: domain is not {1..%d}", n)
		}
		items[i] = v.Range[idx]
	}
	return NewTuple(items...), nil
}

func indexOfInt(dom []*Value, want int64) (int, error) {
	for i, d := range dom {
		if d.Kind == Int && d.IntVal == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("value %d not found in domain", want)
}

// asTuple accepts a Tuple directly, or coerces a FcnRcd with integral
// {1..n} domain into one, since every sequence operator must accept
// both representations.
func asTuple(v *Value, op string) (*Value, error) {
	switch v.Kind {
	case Tuple:
		return v, nil
	case FcnRcd:
		return ToTuple(v)
	default:
		return nil, &TypeError{Op: op, Expected: "Tuple or sequence-shaped FcnRcd", Got: v.Kind}
	}
}
