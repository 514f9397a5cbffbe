// Package ast defines the syntax tree this interpreter's core consumes.
// Per the interpreter's external-interfaces contract, a real front end is
// expected to hand the core a labeled syntax tree (tree-sitter shaped);
// this package's Node is that shape, and internal/parser is this module's
// own producer of it.
package ast

import "github.com/cwbudde/gotla/internal/token"

// Kind labels the syntactic role of a Node. The evaluator in
// internal/eval switches exhaustively on Kind.
type Kind int

const (
	KError Kind = iota
	KModule

	KConstantDecl
	KVariableDecl
	KOpDef
	KFuncDef
	KAssume

	KIdent
	KNumber
	KString
	KBool
	KBooleanSet // the builtin BOOLEAN constant

	KPrimed

	KNot
	KImplies
	KEq
	KNeq
	KIn
	KLt
	KLe
	KGt
	KGe

	KPlus
	KMinus
	KMul
	KMod
	KNeg
	KRange

	KUnion
	KIntersect
	KSetMinus
	KCartesian
	KPowerset
	KDomain

	KFuncLit
	KApply
	KSetOfFuncs
	KSetOfRecords
	KRecordLit
	KFieldAccess
	KExcept
	KExceptArm  // one !path = expr arm inside EXCEPT
	KPathField  // .field selector in an EXCEPT path
	KPathIndex  // [args] selector in an EXCEPT path
	KFuncPair   // a :> b
	KFuncMerge  // f @@ g

	KConcat
	KCall

	KTuple
	KSetLit
	KSetMap
	KSetFilter

	KForall
	KExists
	KQuantBind // one `name \in domain` binder

	KIf
	KCase
	KCaseArm
	KLet
	KChoose

	KConjList
	KDisjList

	KUnchanged
	KEnabled
	KAt

	KParamList
)

// Node is one element of the syntax tree. Composite nodes carry their
// sub-nodes in Children; leaves carry their literal text in Text.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Pos      token.Position

	// Err holds the diagnostic message for a KError node.
	Err string
}

// New builds a Node with the given kind, position and children.
func New(kind Kind, pos token.Position, children ...*Node) *Node {
	return &Node{Kind: kind, Pos: pos, Children: children}
}

// Leaf builds a leaf Node carrying literal text (identifiers, numbers,
// strings, booleans).
func Leaf(kind Kind, pos token.Position, text string) *Node {
	return &Node{Kind: kind, Pos: pos, Text: text}
}

// ErrorNode builds a KError node carrying a parse diagnostic.
func ErrorNode(pos token.Position, msg string) *Node {
	return &Node{Kind: KError, Pos: pos, Err: msg}
}

// Walk calls fn for n and recursively for every descendant, pre-order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindFirstError returns the first KError node in the tree, if any.
func FindFirstError(n *Node) *Node {
	var found *Node
	Walk(n, func(c *Node) {
		if found == nil && c.Kind == KError {
			found = c
		}
	})
	return found
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	KError: "Error", KModule: "Module",
	KConstantDecl: "ConstantDecl", KVariableDecl: "VariableDecl",
	KOpDef: "OpDef", KFuncDef: "FuncDef", KAssume: "Assume",
	KIdent: "Ident", KNumber: "Number", KString: "String", KBool: "Bool",
	KBooleanSet: "BooleanSet", KPrimed: "Primed",
	KNot: "Not", KImplies: "Implies",
	KEq: "Eq", KNeq: "Neq", KIn: "In", KLt: "Lt", KLe: "Le", KGt: "Gt", KGe: "Ge",
	KPlus: "Plus", KMinus: "Minus", KMul: "Mul", KMod: "Mod", KNeg: "Neg", KRange: "Range",
	KUnion: "Union", KIntersect: "Intersect", KSetMinus: "SetMinus",
	KCartesian: "Cartesian", KPowerset: "Powerset", KDomain: "Domain",
	KFuncLit: "FuncLit", KApply: "Apply", KSetOfFuncs: "SetOfFuncs", KSetOfRecords: "SetOfRecords",
	KRecordLit: "RecordLit", KFieldAccess: "FieldAccess", KExcept: "Except",
	KExceptArm: "ExceptArm", KPathField: "PathField", KPathIndex: "PathIndex",
	KFuncPair: "FuncPair", KFuncMerge: "FuncMerge",
	KConcat: "Concat", KCall: "Call",
	KTuple: "Tuple", KSetLit: "SetLit", KSetMap: "SetMap", KSetFilter: "SetFilter",
	KForall: "Forall", KExists: "Exists", KQuantBind: "QuantBind",
	KIf: "If", KCase: "Case", KCaseArm: "CaseArm", KLet: "Let", KChoose: "Choose",
	KConjList: "ConjList", KDisjList: "DisjList",
	KUnchanged: "Unchanged", KEnabled: "Enabled", KAt: "At",
	KParamList: "ParamList",
}
