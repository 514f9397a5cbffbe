package value

import "fmt"

// NewFcn builds a function from parallel domain/range slices.
func NewFcn(domain, rng []*Value) *Value {
	return &Value{Kind: FcnRcd, Domain: append([]*Value{}, domain...), Range: append([]*Value{}, rng...)}
}

// NewRecord builds a record: a FcnRcd whose domain is entirely Str keys.
func NewRecord(fields map[string]*Value) *Value {
	dom := make([]*Value, 0, len(fields))
	rng := make([]*Value, 0, len(fields))
	for k, v := range fields {
		dom = append(dom, NewStr(k))
		rng = append(rng, v)
	}
	return &Value{Kind: FcnRcd, Domain: dom, Range: rng, IsRecord: true}
}

// Domain returns the FcnRcd's domain as a Set.
func Domain(v *Value) (*Value, error) {
	if v.Kind != FcnRcd {
		return nil, &TypeError{Op: "Domain", Expected: "FcnRcd", Got: v.Kind}
	}
	return NewSet(v.Domain...)
}

// Values returns the FcnRcd's range as a Set.
func Values(v *Value) (*Value, error) {
	if v.Kind != FcnRcd {
		return nil, &TypeError{Op: "Values", Expected: "FcnRcd", Got: v.Kind}
	}
	return NewSet(v.Range...)
}

// Apply applies f to arg, matching by fingerprint; fails if arg is
// outside f's domain.
func Apply(f, arg *Value) (*Value, error) {
	switch f.Kind {
	case FcnRcd:
		idx, err := indexOfFingerprint(f.Domain, arg)
		if err != nil {
			return nil, fmt.Errorf("DomainError: %w", err)
		}
		return f.Range[idx], nil
	case Tuple:
		if arg.Kind != Int {
			return nil, &TypeError{Op: "Apply", Expected: "Int index into Tuple", Got: arg.Kind}
		}
		i := arg.IntVal
		if i < 1 || i > int64(len(f.Items)) {
			return nil, fmt.Errorf("DomainError: index %d out of range 1..%d", i, len(f.Items))
		}
		return f.Items[i-1], nil
	default:
		return nil, &TypeError{Op: "Apply", Expected: "FcnRcd or Tuple", Got: f.Kind}
	}
}

// ApplyPath applies f recursively to a chain of arguments: f[a][b][c].
func ApplyPath(f *Value, args []*Value) (*Value, error) {
	cur := f
	for _, a := range args {
		next, err := Apply(cur, a)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Update returns a new FcnRcd equal to f except that arg now maps to v.
// arg must already be in f's domain; extending the domain is not supported.
func Update(f, arg, v *Value) (*Value, error) {
	if f.Kind != FcnRcd {
		return nil, &TypeError{Op: "Update", Expected: "FcnRcd", Got: f.Kind}
	}
	idx, err := indexOfFingerprint(f.Domain, arg)
	if err != nil {
		return nil, fmt.Errorf("DomainError: %w", err)
	}
	newRange := append([]*Value{}, f.Range...)
	newRange[idx] = v
	return &Value{Kind: FcnRcd, Domain: f.Domain, Range: newRange, IsRecord: f.IsRecord}, nil
}

// UpdatePath returns a new FcnRcd with the value at the nested path
// args[0][args[1]]...[args[n-1]] replaced by v, rebuilding every
// intermediate function along the path.
func UpdatePath(f *Value, args []*Value, v *Value) (*Value, error) {
	if len(args) == 0 {
		return v, nil
	}
	if len(args) == 1 {
		return Update(f, args[0], v)
	}
	inner, err := Apply(f, args[0])
	if err != nil {
		return nil, err
	}
	newInner, err := UpdatePath(inner, args[1:], v)
	if err != nil {
		return nil, err
	}
	return Update(f, args[0], newInner)
}

// Compose returns a.compose(b): domain union, a's values win on overlap.
// This backs the `@@` operator.
func Compose(a, b *Value) (*Value, error) {
	if a.Kind != FcnRcd || b.Kind != FcnRcd {
		return nil, &TypeError{Op: "Compose", Expected: "FcnRcd", Got: a.Kind}
	}
	dom := append([]*Value{}, a.Domain...)
	rng := append([]*Value{}, a.Range...)
	for i, d := range b.Domain {
		if _, err := indexOfFingerprint(a.Domain, d); err != nil {
			dom = append(dom, d)
			rng = append(rng, b.Range[i])
		}
	}
	return &Value{Kind: FcnRcd, Domain: dom, Range: rng, IsRecord: a.IsRecord && b.IsRecord}, nil
}

// FuncPair builds the one-element function `a :> b`.
func FuncPair(a, b *Value) *Value {
	return &Value{Kind: FcnRcd, Domain: []*Value{a}, Range: []*Value{b}, IsRecord: a.Kind == Str}
}

// FieldAccess implements record field access `r.f`, equivalent to `r["f"]`.
func FieldAccess(r *Value, field string) (*Value, error) {
	return Apply(r, NewStr(field))
}

func indexOfFingerprint(dom []*Value, arg *Value) (int, error) {
	target, err := arg.Fingerprint()
	if err != nil {
		return 0, err
	}
	for i, d := range dom {
		fp, err := d.Fingerprint()
		if err != nil {
			return 0, err
		}
		if fp == target {
			return i, nil
		}
	}
	return 0, fmt.Errorf("argument not in domain")
}
