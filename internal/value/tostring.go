package value

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders v in TLA+'s own concrete syntax, used for trace logging
// and CLI diagnostics. The ITF encoder in internal/itf does not use
// this; it builds its own typed JSON wrapper instead.
func (v *Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.IntVal, 10)
	case Bool:
		if v.BoolVal {
			return "TRUE"
		}
		return "FALSE"
	case Str:
		return strconv.Quote(v.StrVal)
	case Tuple:
		parts := make([]string, len(v.Items))
		for i, e := range v.Items {
			parts[i] = e.String()
		}
		return "<<" + strings.Join(parts, ", ") + ">>"
	case Set:
		sorted, err := SortByFingerprint(v.Elems)
		if err != nil {
			sorted = v.Elems
		}
		parts := make([]string, len(sorted))
		for i, e := range sorted {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case FcnRcd:
		if v.IsRecord {
			return v.recordString()
		}
		return v.fcnString()
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.Kind)
	}
}

func (v *Value) recordString() string {
	parts := make([]string, len(v.Domain))
	for i, d := range v.Domain {
		parts[i] = fmt.Sprintf("%s |-> %s", d.StrVal, v.Range[i].String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Value) fcnString() string {
	parts := make([]string, len(v.Domain))
	for i, d := range v.Domain {
		parts[i] = fmt.Sprintf("%s :> %s", d.String(), v.Range[i].String())
	}
	return "(" + strings.Join(parts, " @@ ") + ")"
}
