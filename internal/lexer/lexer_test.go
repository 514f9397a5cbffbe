package lexer

import "testing"

func TestNextTokenOperators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"==", DEFEQ},
		{"/\\", LAND},
		{"\\/", LOR},
		{"/=", NEQ},
		{"=>", IMPLIES},
		{"<=>", IFF},
		{"<=", LE},
		{">=", GE},
		{"..", DOTDOT},
		{"|->", MAPSTO},
		{"->", ARROW},
		{"<<", LANGLE},
		{">>", RANGLE},
		{"@@", ATAT},
		{":>", COLONGT},
		{"[]", CASEBAR},
		{"\\in", IN_OP},
		{"\\notin", NOTIN},
		{"\\cup", CUP},
		{"\\cap", CAP},
		{"\\X", TIMES},
		{"\\A", FORALL},
		{"\\E", EXISTS},
		{"\\o", CIRC},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			got := l.NextToken()
			if got.Type != tt.want {
				t.Errorf("NextToken(%q) = %s, want %s", tt.input, got.Type, tt.want)
			}
		})
	}
}

func TestNextTokenKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"CONSTANT", CONSTANT},
		{"VARIABLES", VARIABLES},
		{"EXCEPT", EXCEPT},
		{"ENABLED", ENABLED},
		{"UNCHANGED", UNCHANGED},
		{"CHOOSE", CHOOSE},
		{"TRUE", TRUE},
		{"FALSE", FALSE},
		{"OTHER", OTHER},
		{"BOOLEAN", BOOLEANKW},
		{"notakeyword", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			got := l.NextToken()
			if got.Type != tt.want {
				t.Errorf("NextToken(%q) = %s, want %s", tt.input, got.Type, tt.want)
			}
		})
	}
}

func TestNextTokenNumberAndString(t *testing.T) {
	l := New(`42 "hello\nworld"`)
	num := l.NextToken()
	if num.Type != NUMBER || num.Literal != "42" {
		t.Errorf("got %v, want NUMBER 42", num)
	}
	str := l.NextToken()
	if str.Type != STRING || str.Literal != "hello\nworld" {
		t.Errorf("got %v, want STRING hello\\nworld", str)
	}
}

func TestSkipsLineAndBlockComments(t *testing.T) {
	l := New("x \\* line comment\ny (* block *) z")
	var lits []string
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		lits = append(lits, tok.Literal)
	}
	want := []string{"x", "y", "z"}
	if len(lits) != len(want) {
		t.Fatalf("got %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestNestedBlockComments(t *testing.T) {
	l := New("a (* outer (* inner *) still outer *) b")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != "a" || second.Literal != "b" {
		t.Errorf("got %q, %q; want a, b", first.Literal, second.Literal)
	}
}

func TestPositionTracksLineAndColumn(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	if first.Pos.Line != 1 {
		t.Errorf("first token line = %d, want 1", first.Pos.Line)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Pos.Line)
	}
}

func TestIllegalBackslashRecordsError(t *testing.T) {
	l := New(`\q`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error to be recorded")
	}
}
