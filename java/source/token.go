package source

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the 1-based line and column fall inside the span.
func (s Span) Contains(line, column int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column >= s.End.Column {
		return false
	}
	return true
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock

	// Keywords
	TokenAbstract
	TokenBoolean
	TokenByte
	TokenChar
	TokenClass
	TokenDefault
	TokenDouble
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFloat
	TokenImplements
	TokenImport
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSynchronized
	TokenThis
	TokenThrows
	TokenTransient
	TokenVoid
	TokenVolatile
	// TokenKeyword covers reserved words that never start a declaration.
	TokenKeyword

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon
	TokenAssign
	TokenLT
	TokenGT
	TokenQuestion
	TokenBitAnd
	TokenArrow
	// TokenOperator covers every other operator.
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenKeyword:       "Keyword",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenColonColon:    "::",
	TokenAssign:        "=",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenQuestion:      "?",
	TokenBitAnd:        "&",
	TokenArrow:         "->",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	for word, kind := range keywords {
		if kind == k {
			return word
		}
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"boolean":      TokenBoolean,
	"byte":         TokenByte,
	"char":         TokenChar,
	"class":        TokenClass,
	"default":      TokenDefault,
	"double":       TokenDouble,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"float":        TokenFloat,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,

	"assert":     TokenKeyword,
	"break":      TokenKeyword,
	"case":       TokenKeyword,
	"catch":      TokenKeyword,
	"const":      TokenKeyword,
	"continue":   TokenKeyword,
	"do":         TokenKeyword,
	"else":       TokenKeyword,
	"finally":    TokenKeyword,
	"for":        TokenKeyword,
	"goto":       TokenKeyword,
	"if":         TokenKeyword,
	"instanceof": TokenKeyword,
	"return":     TokenKeyword,
	"switch":     TokenKeyword,
	"throw":      TokenKeyword,
	"try":        TokenKeyword,
	"while":      TokenKeyword,
	"true":       TokenKeyword,
	"false":      TokenKeyword,
	"null":       TokenKeyword,
}

// Contextual keywords such as record, sealed, permits and var are lexed as
// identifiers; the scanner recognises them by position.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var primitiveKinds = map[TokenKind]bool{
	TokenBoolean: true,
	TokenByte:    true,
	TokenChar:    true,
	TokenDouble:  true,
	TokenFloat:   true,
	TokenInt:     true,
	TokenLong:    true,
	TokenShort:   true,
	TokenVoid:    true,
}

func (k TokenKind) IsPrimitive() bool {
	return primitiveKinds[k]
}
