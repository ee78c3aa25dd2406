package source

import "testing"

func kinds(tokens []Token) []TokenKind {
	var out []TokenKind
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "generic closing brackets stay separate",
			input: "Map<String, List<Integer>>",
			want:  []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenComma, TokenIdent, TokenLT, TokenIdent, TokenGT, TokenGT, TokenEOF},
		},
		{
			name:  "comments are skipped",
			input: "/** doc */ class // trailing\n A /* x */ {}",
			want:  []TokenKind{TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF},
		},
		{
			name:  "varargs and method reference",
			input: "String... args; Foo::new",
			want:  []TokenKind{TokenIdent, TokenEllipsis, TokenIdent, TokenSemicolon, TokenIdent, TokenColonColon, TokenNew, TokenEOF},
		},
		{
			name:  "literals",
			input: `'x' "new A() {}" 0x1FL 1.5e3f .5 """` + "\nnew B() {}\n" + `"""`,
			want:  []TokenKind{TokenCharLiteral, TokenStringLiteral, TokenIntLiteral, TokenFloatLiteral, TokenFloatLiteral, TokenTextBlock, TokenEOF},
		},
		{
			name:  "operators",
			input: "a <<= b && c -> d != e",
			want:  []TokenKind{TokenIdent, TokenOperator, TokenIdent, TokenOperator, TokenIdent, TokenArrow, TokenIdent, TokenOperator, TokenIdent, TokenEOF},
		},
		{
			name:  "intersection bound",
			input: "T extends A & B",
			want:  []TokenKind{TokenIdent, TokenExtends, TokenIdent, TokenBitAnd, TokenIdent, TokenEOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Tokenize([]byte(tt.input), "Test.java"))
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerContextualKeywords(t *testing.T) {
	tokens := Tokenize([]byte("non-sealed record var"), "Test.java")
	want := []string{"non-sealed", "record", "var"}
	for i, lit := range want {
		if tokens[i].Kind != TokenIdent || tokens[i].Literal != lit {
			t.Errorf("token %d = %v %q, want identifier %q", i, tokens[i].Kind, tokens[i].Literal, lit)
		}
	}
}

func TestLexerUnicodeIdentifiers(t *testing.T) {
	tokens := Tokenize([]byte("class Größe { int ñ; }"), "Test.java")
	if tokens[1].Kind != TokenIdent || tokens[1].Literal != "Größe" {
		t.Errorf("token 1 = %v %q, want identifier Größe", tokens[1].Kind, tokens[1].Literal)
	}
	if tokens[4].Literal != "ñ" {
		t.Errorf("token 4 = %q, want ñ", tokens[4].Literal)
	}
	if tokens[2].Span.Start.Column != 13 {
		t.Errorf("column of '{' = %d, want 13", tokens[2].Span.Start.Column)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize([]byte("class A {\n  int x;\n}"), "A.java")
	x := tokens[4]
	if x.Literal != "x" {
		t.Fatalf("token 4 = %q, want x", x.Literal)
	}
	if x.Span.Start.Line != 2 || x.Span.Start.Column != 7 {
		t.Errorf("x at %d:%d, want 2:7", x.Span.Start.Line, x.Span.Start.Column)
	}
	if !x.Span.Contains(2, 7) || x.Span.Contains(2, 8) {
		t.Error("span of x should cover exactly column 7")
	}
}
