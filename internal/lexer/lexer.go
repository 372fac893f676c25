package lexer

import "tacgen/internal/token"

// Lexer holds the state while tokenizing input
// It reads character by character, like a tape reader
type Lexer struct {
	input        string // The source code
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position (after current char)
	ch           byte   // Current character under examination
	line         int    // Line of ch, 1-based
	column       int    // Column of ch, 1-based
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar() // Initialize with first character
	return l
}

// readChar advances to the next character
// Think of it like moving the tape forward one position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	// If we've reached the end, set ch to 0 (NUL byte, signifies EOF)
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

// peekChar looks at the next character without consuming it
// Used for two-character tokens like == and <=
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token from input
func (l *Lexer) NextToken() (tok token.Token) {
	l.skipIgnored()

	line, col := l.line, l.column
	defer func() {
		tok.Line = line
		tok.Column = col
	}()

	switch l.ch {
	case '=':
		tok = l.oneOrTwo('=', token.ASSIGN, token.EQ)
	case '!':
		tok = l.oneOrTwo('=', token.BANG, token.NOT_EQ)
	case '<':
		tok = l.oneOrTwo('=', token.LT, token.LT_EQ)
	case '>':
		tok = l.oneOrTwo('=', token.GT, token.GT_EQ)
	case '&':
		tok = l.oneOrTwo('&', token.ILLEGAL, token.AND)
	case '|':
		tok = l.oneOrTwo('|', token.ILLEGAL, token.OR)
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case '{':
		tok = newToken(token.LBRACE, l.ch)
	case '}':
		tok = newToken(token.RBRACE, l.ch)
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok // Already advanced past identifier
		} else if isDigit(l.ch) {
			tok.Type, tok.Literal = l.readNumber()
			return tok // Already advanced past number
		}
		tok = newToken(token.ILLEGAL, l.ch)
	}

	l.readChar() // Advance to next character for next call
	return tok
}

// oneOrTwo builds either the single-character token or, when the next
// character is second, the two-character one.
func (l *Lexer) oneOrTwo(second byte, single, double token.TokenType) token.Token {
	if l.peekChar() != second {
		return newToken(single, l.ch)
	}
	ch := l.ch
	l.readChar()
	return token.Token{Type: double, Literal: string(ch) + string(l.ch)}
}
