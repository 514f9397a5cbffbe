package ast

import "strings"

// Sprint renders n back into TLA+'s own concrete syntax: one switch over
// Kind instead of one method per AST type, since this tree has a single
// Node type for every production. Used by `tla parse` to show a module
// before and after rewriting.
func Sprint(n *Node) string {
	var sb strings.Builder
	sprintNode(&sb, n)
	return sb.String()
}

func sprintNode(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KError:
		sb.WriteString("<error: " + n.Err + ">")
	case KModule:
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			sprintNode(sb, c)
		}
	case KConstantDecl:
		sb.WriteString("CONSTANT " + identListText(n))
	case KVariableDecl:
		sb.WriteString("VARIABLE " + identListText(n))
	case KAssume:
		sb.WriteString("ASSUME ")
		sprintNode(sb, n.Children[0])
	case KOpDef:
		sb.WriteString(n.Children[0].Text)
		if params := n.Children[1].Children; len(params) > 0 {
			sb.WriteString("(")
			for i, p := range params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.Text)
			}
			sb.WriteString(")")
		}
		sb.WriteString(" == ")
		sprintNode(sb, n.Children[2])
	case KFuncDef:
		sb.WriteString(n.Children[0].Text + "[")
		binds := n.Children[1 : len(n.Children)-1]
		sprintCommaList(sb, binds)
		sb.WriteString("] == ")
		sprintNode(sb, n.Children[len(n.Children)-1])

	case KIdent, KNumber, KBool:
		sb.WriteString(n.Text)
	case KString:
		sb.WriteString("\"" + n.Text + "\"")
	case KBooleanSet:
		sb.WriteString("BOOLEAN")
	case KPrimed:
		sprintNode(sb, n.Children[0])
		sb.WriteString("'")
	case KAt:
		sb.WriteString("@")

	case KNot:
		sb.WriteString("~")
		sprintNode(sb, n.Children[0])
	case KImplies:
		sprintBinary(sb, n, "=>")
	case KEq:
		sprintBinary(sb, n, "=")
	case KNeq:
		sprintBinary(sb, n, "#")
	case KIn:
		sprintBinary(sb, n, "\\in")
	case KLt:
		sprintBinary(sb, n, "<")
	case KLe:
		sprintBinary(sb, n, "<=")
	case KGt:
		sprintBinary(sb, n, ">")
	case KGe:
		sprintBinary(sb, n, ">=")
	case KPlus:
		sprintBinary(sb, n, "+")
	case KMinus:
		sprintBinary(sb, n, "-")
	case KMul:
		sprintBinary(sb, n, "*")
	case KMod:
		sprintBinary(sb, n, "%")
	case KNeg:
		sb.WriteString("-")
		sprintNode(sb, n.Children[0])
	case KRange:
		sprintBinary(sb, n, "..")
	case KUnion:
		sprintBinary(sb, n, "\\union")
	case KIntersect:
		sprintBinary(sb, n, "\\intersect")
	case KSetMinus:
		sprintBinary(sb, n, "\\")
	case KCartesian:
		sprintBinary(sb, n, "\\X")
	case KPowerset:
		sb.WriteString("SUBSET ")
		sprintNode(sb, n.Children[0])
	case KDomain:
		sb.WriteString("DOMAIN ")
		sprintNode(sb, n.Children[0])
	case KConcat:
		sprintBinary(sb, n, "\\o")

	case KFuncLit:
		sb.WriteString("[")
		binds := n.Children[:len(n.Children)-1]
		sprintCommaList(sb, binds)
		sb.WriteString(" |-> ")
		sprintNode(sb, n.Children[len(n.Children)-1])
		sb.WriteString("]")
	case KApply:
		sprintNode(sb, n.Children[0])
		sb.WriteString("[")
		sprintCommaList(sb, n.Children[1:])
		sb.WriteString("]")
	case KSetOfFuncs:
		sb.WriteString("[")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" -> ")
		sprintNode(sb, n.Children[1])
		sb.WriteString("]")
	case KSetOfRecords:
		sprintFieldList(sb, n, ": ")
	case KRecordLit:
		sprintFieldList(sb, n, " |-> ")
	case KFieldAccess:
		sprintNode(sb, n.Children[0])
		sb.WriteString("." + n.Children[1].Text)
	case KExcept:
		sb.WriteString("[")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" EXCEPT ")
		for i, arm := range n.Children[1:] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sprintNode(sb, arm)
		}
		sb.WriteString("]")
	case KExceptArm:
		sb.WriteString("!")
		for _, p := range n.Children[:len(n.Children)-1] {
			sprintNode(sb, p)
		}
		sb.WriteString(" = ")
		sprintNode(sb, n.Children[len(n.Children)-1])
	case KPathField:
		sb.WriteString("." + n.Text)
	case KPathIndex:
		sb.WriteString("[")
		sprintCommaList(sb, n.Children)
		sb.WriteString("]")
	case KFuncPair:
		sprintBinary(sb, n, ":>")
	case KFuncMerge:
		sprintBinary(sb, n, "@@")

	case KCall:
		sprintNode(sb, n.Children[0])
		sb.WriteString("(")
		sprintCommaList(sb, n.Children[1:])
		sb.WriteString(")")

	case KTuple:
		sb.WriteString("<<")
		sprintCommaList(sb, n.Children)
		sb.WriteString(">>")
	case KSetLit:
		sb.WriteString("{")
		sprintCommaList(sb, n.Children)
		sb.WriteString("}")
	case KSetMap:
		sb.WriteString("{")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" : ")
		sprintCommaList(sb, n.Children[1:])
		sb.WriteString("}")
	case KSetFilter:
		sb.WriteString("{")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" : ")
		sprintNode(sb, n.Children[1])
		sb.WriteString("}")

	case KForall, KExists:
		if n.Kind == KForall {
			sb.WriteString("\\A ")
		} else {
			sb.WriteString("\\E ")
		}
		binds := n.Children[:len(n.Children)-1]
		sprintCommaList(sb, binds)
		sb.WriteString(" : ")
		sprintNode(sb, n.Children[len(n.Children)-1])
	case KQuantBind:
		sprintNode(sb, n.Children[0])
		sb.WriteString(" \\in ")
		sprintNode(sb, n.Children[1])

	case KIf:
		sb.WriteString("IF ")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" THEN ")
		sprintNode(sb, n.Children[1])
		sb.WriteString(" ELSE ")
		sprintNode(sb, n.Children[2])
	case KCase:
		sb.WriteString("CASE ")
		for i, arm := range n.Children {
			if i > 0 {
				sb.WriteString(" [] ")
			}
			sprintNode(sb, arm)
		}
	case KCaseArm:
		if n.Text == "OTHER" {
			sb.WriteString("OTHER -> ")
			sprintNode(sb, n.Children[0])
			return
		}
		sprintNode(sb, n.Children[0])
		sb.WriteString(" -> ")
		sprintNode(sb, n.Children[1])
	case KLet:
		sb.WriteString("LET ")
		defs := n.Children[:len(n.Children)-1]
		for i, d := range defs {
			if i > 0 {
				sb.WriteString(" ")
			}
			sprintNode(sb, d)
		}
		sb.WriteString(" IN ")
		sprintNode(sb, n.Children[len(n.Children)-1])
	case KChoose:
		sb.WriteString("CHOOSE ")
		sprintNode(sb, n.Children[0])
		sb.WriteString(" : ")
		sprintNode(sb, n.Children[1])

	case KConjList:
		sprintJunction(sb, n, "/\\")
	case KDisjList:
		sprintJunction(sb, n, "\\/")

	case KUnchanged:
		sb.WriteString("UNCHANGED ")
		sprintNode(sb, n.Children[0])
	case KEnabled:
		sb.WriteString("ENABLED ")
		sprintNode(sb, n.Children[0])

	default:
		sb.WriteString("<" + n.Kind.String() + ">")
	}
}

func sprintBinary(sb *strings.Builder, n *Node, op string) {
	sprintNode(sb, n.Children[0])
	sb.WriteString(" " + op + " ")
	sprintNode(sb, n.Children[1])
}

func sprintJunction(sb *strings.Builder, n *Node, op string) {
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(" " + op + " ")
		}
		sprintNode(sb, c)
	}
}

func sprintCommaList(sb *strings.Builder, nodes []*Node) {
	for i, c := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sprintNode(sb, c)
	}
}

func sprintFieldList(sb *strings.Builder, n *Node, sep string) {
	sb.WriteString("[")
	for i := 0; i < len(n.Children); i += 2 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n.Children[i].Text + sep)
		sprintNode(sb, n.Children[i+1])
	}
	sb.WriteString("]")
}

func identListText(n *Node) string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Text
	}
	return strings.Join(names, ", ")
}
