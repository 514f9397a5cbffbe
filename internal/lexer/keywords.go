package lexer

var keywords = map[string]TokenType{
	"CONSTANT":  CONSTANT,
	"CONSTANTS": CONSTANTS,
	"VARIABLE":  VARIABLE,
	"VARIABLES": VARIABLES,
	"EXTENDS":   EXTENDS,
	"ASSUME":    ASSUME,
	"LET":       LET,
	"IN":        IN,
	"IF":        IF,
	"THEN":      THEN,
	"ELSE":      ELSE,
	"CASE":      CASE,
	"OTHER":     OTHER,
	"CHOOSE":    CHOOSE,
	"ENABLED":   ENABLED,
	"UNCHANGED": UNCHANGED,
	"SUBSET":    SUBSET,
	"DOMAIN":    DOMAIN,
	"EXCEPT":    EXCEPT,
	"TRUE":      TRUE,
	"FALSE":     FALSE,
	"BOOLEAN":   BOOLEANKW,
}

// LookupIdent classifies IDENT text as a keyword TokenType, or returns
// IDENT unchanged if it is not a reserved word. TLA+ keywords are
// case-sensitive.
func LookupIdent(text string) TokenType {
	if tt, ok := keywords[text]; ok {
		return tt
	}
	return IDENT
}

// String renders a human-readable token type name, used in error messages.
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	default:
		for text, tt := range keywords {
			if tt == t {
				return text
			}
		}
		return "OP"
	}
}
