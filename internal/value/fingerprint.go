package value

import (
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/mitchellh/hashstructure"
)

// Fingerprint is the canonical hash used for value equality, set
// deduplication and state deduplication throughout the interpreter.
type Fingerprint uint64

var cborEncMode = func() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("value: building canonical cbor encoder: " + err.Error())
	}
	return m
}()

// canonicalForm is the intermediate shape Fingerprint canonicalizes a
// Value into before hashing: Set elements and FcnRcd domain/range pairs
// are sorted by child fingerprint first, so the final byte encoding (and
// therefore the hash) is invariant under the Value's internal ordering.
// This mirrors the canonicalize-then-hash pattern used elsewhere in the
// ecosystem for deterministic structural hashing, swapping the final
// digest step for hashstructure.Hash.
type canonicalForm struct {
	K        uint8
	I        int64
	B        bool
	S        string
	Elems    []canonicalForm
	Items    []canonicalForm
	Domain   []canonicalForm
	Range    []canonicalForm
	IsRecord bool
}

// Fingerprint computes v's canonical hash.
func (v *Value) Fingerprint() (Fingerprint, error) {
	cf, err := canonicalize(v)
	if err != nil {
		return 0, err
	}
	data, err := cborEncMode.Marshal(cf)
	if err != nil {
		return 0, err
	}
	h, err := hashstructure.Hash(data, nil)
	if err != nil {
		return 0, err
	}
	return Fingerprint(h), nil
}

type fpChild struct {
	fp Fingerprint
	cf canonicalForm
}

func canonicalize(v *Value) (canonicalForm, error) {
	switch v.Kind {
	case Int:
		return canonicalForm{K: uint8(Int), I: v.IntVal}, nil
	case Bool:
		return canonicalForm{K: uint8(Bool), B: v.BoolVal}, nil
	case Str:
		return canonicalForm{K: uint8(Str), S: v.StrVal}, nil
	case Tuple:
		items := make([]canonicalForm, len(v.Items))
		for i, e := range v.Items {
			cf, err := canonicalize(e)
			if err != nil {
				return canonicalForm{}, err
			}
			items[i] = cf
		}
		return canonicalForm{K: uint8(Tuple), Items: items}, nil
	case Set:
		children, err := canonicalizeSorted(v.Elems)
		if err != nil {
			return canonicalForm{}, err
		}
		return canonicalForm{K: uint8(Set), Elems: children}, nil
	case FcnRcd:
		return canonicalizeFcnRcd(v)
	default:
		return canonicalForm{}, &TypeError{Op: "Fingerprint", Expected: "a known Kind", Got: v.Kind}
	}
}

// canonicalizeFcnRcd sorts (domain, range) pairs by the domain element's
// own fingerprint, so `[a|->1,b|->2]` and `[b|->2,a|->1]` hash alike.
func canonicalizeFcnRcd(v *Value) (canonicalForm, error) {
	type pair struct {
		domFp Fingerprint
		dom   canonicalForm
		rng   canonicalForm
	}
	pairs := make([]pair, len(v.Domain))
	for i := range v.Domain {
		domFp, err := v.Domain[i].Fingerprint()
		if err != nil {
			return canonicalForm{}, err
		}
		domCf, err := canonicalize(v.Domain[i])
		if err != nil {
			return canonicalForm{}, err
		}
		rngCf, err := canonicalize(v.Range[i])
		if err != nil {
			return canonicalForm{}, err
		}
		pairs[i] = pair{domFp: domFp, dom: domCf, rng: rngCf}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].domFp < pairs[j].domFp })

	dom := make([]canonicalForm, len(pairs))
	rng := make([]canonicalForm, len(pairs))
	for i, p := range pairs {
		dom[i] = p.dom
		rng[i] = p.rng
	}
	return canonicalForm{K: uint8(FcnRcd), Domain: dom, Range: rng, IsRecord: v.IsRecord}, nil
}

func canonicalizeSorted(vals []*Value) ([]canonicalForm, error) {
	children := make([]fpChild, len(vals))
	for i, e := range vals {
		fp, err := e.Fingerprint()
		if err != nil {
			return nil, err
		}
		cf, err := canonicalize(e)
		if err != nil {
			return nil, err
		}
		children[i] = fpChild{fp: fp, cf: cf}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].fp < children[j].fp })
	out := make([]canonicalForm, len(children))
	for i, c := range children {
		out[i] = c.cf
	}
	return out, nil
}

// SortByFingerprint returns vals in a deterministic, fingerprint-sorted
// order. Used by CHOOSE for deterministic domain iteration and by ITF
// serialization, which sorts set/domain elements by fingerprint rather
// than by string representation.
func SortByFingerprint(vals []*Value) ([]*Value, error) {
	type item struct {
		fp Fingerprint
		v  *Value
	}
	items := make([]item, len(vals))
	for i, v := range vals {
		fp, err := v.Fingerprint()
		if err != nil {
			return nil, err
		}
		items[i] = item{fp: fp, v: v}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].fp < items[j].fp })
	out := make([]*Value, len(items))
	for i, it := range items {
		out[i] = it.v
	}
	return out, nil
}
