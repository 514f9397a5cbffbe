// Package itf serializes values and states to the Informal Trace Format:
// each value wrapped as {"#type": T, "#value": v}, states as a JSON
// object of variable name to ITF value with keys sorted.
package itf

import (
	"fmt"
	"sort"

	"github.com/cwbudde/gotla/internal/enum"
	"github.com/cwbudde/gotla/internal/state"
	"github.com/cwbudde/gotla/internal/value"
)

// wrapper is the {"#type": T, "#value": v} envelope every ITF value gets.
type wrapper struct {
	Type  string      `json:"#type"`
	Value interface{} `json:"#value"`
}

// EncodeValue renders v as an ITF-wrapped JSON-ready shape. Sets and
// function domains are emitted in fingerprint-sorted order, since
// stringification gives no principled normal form to sort by; record
// fields become a JSON object, whose keys encoding/json sorts
// alphabetically.
func EncodeValue(v *value.Value) (interface{}, error) {
	switch v.Kind {
	case value.Int:
		return wrapper{Type: "int", Value: v.IntVal}, nil
	case value.Bool:
		return wrapper{Type: "bool", Value: v.BoolVal}, nil
	case value.Str:
		return wrapper{Type: "string", Value: v.StrVal}, nil
	case value.Tuple:
		items, err := encodeAll(v.Items)
		if err != nil {
			return nil, err
		}
		return wrapper{Type: "tup", Value: items}, nil
	case value.Set:
		sorted, err := value.SortByFingerprint(v.Elems)
		if err != nil {
			return nil, err
		}
		elems, err := encodeAll(sorted)
		if err != nil {
			return nil, err
		}
		return wrapper{Type: "set", Value: elems}, nil
	case value.FcnRcd:
		if v.IsRecord {
			return encodeRecord(v)
		}
		return encodeMap(v)
	default:
		return nil, fmt.Errorf("itf: unhandled value kind %s", v.Kind)
	}
}

func encodeAll(vals []*value.Value) ([]interface{}, error) {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		enc, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func encodeRecord(v *value.Value) (interface{}, error) {
	fields := make(map[string]interface{}, len(v.Domain))
	for i, d := range v.Domain {
		enc, err := EncodeValue(v.Range[i])
		if err != nil {
			return nil, err
		}
		fields[d.StrVal] = enc
	}
	return wrapper{Type: "record", Value: fields}, nil
}

// encodeMap renders a non-record FcnRcd as ITF's "map" variant: a list of
// [key, value] pairs, ordered by the domain element's fingerprint.
func encodeMap(v *value.Value) (interface{}, error) {
	idx := make([]int, len(v.Domain))
	fps := make([]value.Fingerprint, len(v.Domain))
	for i, d := range v.Domain {
		fp, err := d.Fingerprint()
		if err != nil {
			return nil, err
		}
		idx[i] = i
		fps[i] = fp
	}
	sort.Slice(idx, func(a, b int) bool { return fps[idx[a]] < fps[idx[b]] })

	entries := make([][2]interface{}, len(idx))
	for i, di := range idx {
		k, err := EncodeValue(v.Domain[di])
		if err != nil {
			return nil, err
		}
		val, err := EncodeValue(v.Range[di])
		if err != nil {
			return nil, err
		}
		entries[i] = [2]interface{}{k, val}
	}
	return wrapper{Type: "map", Value: entries}, nil
}

// DecodeValue parses an ITF-wrapped shape (as produced by json.Unmarshal
// into interface{}) back into a Value. It is the inverse of EncodeValue,
// used by the CLI to read back a state dumped by an earlier `init`,
// `next` or `reachable` call.
func DecodeValue(raw interface{}) (*value.Value, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("itf: expected an object with #type/#value, got %T", raw)
	}
	typ, _ := obj["#type"].(string)
	val := obj["#value"]

	switch typ {
	case "int":
		n, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("itf: #type int with non-numeric #value")
		}
		return value.NewInt(int64(n)), nil
	case "bool":
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("itf: #type bool with non-boolean #value")
		}
		return value.NewBool(b), nil
	case "string":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("itf: #type string with non-string #value")
		}
		return value.NewStr(s), nil
	case "tup":
		items, err := decodeAll(val)
		if err != nil {
			return nil, err
		}
		return value.NewTuple(items...), nil
	case "set":
		items, err := decodeAll(val)
		if err != nil {
			return nil, err
		}
		return value.NewSet(items...)
	case "record":
		fields, ok := val.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("itf: #type record with non-object #value")
		}
		out := make(map[string]*value.Value, len(fields))
		for k, v := range fields {
			dv, err := DecodeValue(v)
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return value.NewRecord(out), nil
	case "map":
		pairs, ok := val.([]interface{})
		if !ok {
			return nil, fmt.Errorf("itf: #type map with non-array #value")
		}
		domain := make([]*value.Value, len(pairs))
		rng := make([]*value.Value, len(pairs))
		for i, p := range pairs {
			pair, ok := p.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("itf: map entry %d is not a [key, value] pair", i)
			}
			k, err := DecodeValue(pair[0])
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(pair[1])
			if err != nil {
				return nil, err
			}
			domain[i] = k
			rng[i] = v
		}
		return value.NewFcn(domain, rng), nil
	default:
		return nil, fmt.Errorf("itf: unrecognized #type %q", typ)
	}
}

func decodeAll(raw interface{}) ([]*value.Value, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("itf: expected a JSON array, got %T", raw)
	}
	out := make([]*value.Value, len(items))
	for i, it := range items {
		v, err := DecodeValue(it)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// DecodeState parses a JSON object of variable name to ITF value (as
// produced by EncodeState) back into a State declaring exactly
// variables.
func DecodeState(raw map[string]interface{}, variables []string) (state.State, error) {
	s := state.New(variables)
	for name, enc := range raw {
		if !s.Has(name) {
			return state.State{}, fmt.Errorf("itf: state names undeclared variable %q", name)
		}
		v, err := DecodeValue(enc)
		if err != nil {
			return state.State{}, fmt.Errorf("itf: decoding variable %q: %w", name, err)
		}
		s = s.WithVar(name, v)
	}
	return s, nil
}

// EncodeState renders s as a JSON object of variable name to ITF value.
// encoding/json sorts map[string]... keys alphabetically on marshal,
// which is how the keys end up sorted in the emitted document.
func EncodeState(s state.State, variables []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(variables))
	for _, name := range variables {
		v := s.Get(name)
		if v == nil {
			return nil, fmt.Errorf("itf: variable %q is unassigned", name)
		}
		enc, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		out[name] = enc
	}
	return out, nil
}

func EncodeStates(states []state.State, variables []string) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, len(states))
	for i, s := range states {
		enc, err := EncodeState(s, variables)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// edgeJSON is one reachability edge, fingerprints rendered as plain
// numbers so the result round-trips through encoding/json unchanged.
type edgeJSON struct {
	From value.Fingerprint `json:"from"`
	To   value.Fingerprint `json:"to"`
}

// Reachable is the top-level shape `tla reachable` prints: a states
// array plus the edges recorded during the breadth-first search.
type Reachable struct {
	States []map[string]interface{} `json:"states"`
	Edges  []edgeJSON               `json:"edges"`
}

func EncodeReachable(states []state.State, edges []enum.Edge, variables []string) (*Reachable, error) {
	encStates, err := EncodeStates(states, variables)
	if err != nil {
		return nil, err
	}
	encEdges := make([]edgeJSON, len(edges))
	for i, e := range edges {
		encEdges[i] = edgeJSON{From: e.From, To: e.To}
	}
	return &Reachable{States: encStates, Edges: encEdges}, nil
}
