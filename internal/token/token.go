package token

import "fmt"

// TokenType is a string alias for token types
// Using string makes debugging easier (we can print "+" instead of a number)
type TokenType string

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool { return p.Line > 0 && p.Column > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token struct holds the type, literal value and where it starts
// For example: Token{Type: INT, Literal: "5", Line: 3, Column: 9}
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) Pos() Position { return Position{Line: t.Line, Column: t.Column} }

// Token constants - these are the vocabulary of the source language
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown/invalid character
	EOF     TokenType = "EOF"     // End of file, tells parser we're done

	// Identifiers and literals
	IDENT TokenType = "IDENT" // Variable names: x, y, foo
	INT   TokenType = "INT"   // Integers: 1, 42, 999
	FLOAT TokenType = "FLOAT" // Floating-point: 3.14

	// Arithmetic
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	// Relational
	LT     TokenType = "<"
	GT     TokenType = ">"
	LT_EQ  TokenType = "<="
	GT_EQ  TokenType = ">="
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="

	// Logical
	BANG TokenType = "!"
	AND  TokenType = "&&"
	OR   TokenType = "||"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	INT_TYPE   TokenType = "INT_TYPE"
	FLOAT_TYPE TokenType = "FLOAT_TYPE"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	WHILE      TokenType = "WHILE"
	FOR        TokenType = "FOR"
)

// keywords maps string identifiers to their token type
// This lets us distinguish between "while" (keyword) and "x" (identifier)
var keywords = map[string]TokenType{
	"int":   INT_TYPE,
	"float": FLOAT_TYPE,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"for":   FOR,
}

// LookupIdent checks if an identifier is a keyword
// If "if" is in keywords map, returns IF token type
// Otherwise returns IDENT (it's a variable name)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
