package scicalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Text is the source text of the token. For function tokens in RPN
	// output, it is the function name.
	Text string
	// Kind is the kind of the token.
	Kind TokenKind
	// Pos is the 1-based rune column of the first rune of the token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// is reports whether t is the operator op.
func (t Token) is(op string) bool {
	return t.Kind == TokenOp && t.Text == op
}

// TokenKind identifies the kind of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a number literal.
	TokenNum
	// TokenIdent is a constant or function name.
	TokenIdent
	// TokenOp is an operator, bracket, or argument separator.
	TokenOp
	// TokenUnknown is a rune that is not part of the expression language.
	TokenUnknown
	// TokenFunc is a function call. It only appears in converter output.
	TokenFunc
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenIdent:
		return "Ident"
	case TokenOp:
		return "Op"
	case TokenUnknown:
		return "Unknown"
	case TokenFunc:
		return "Func"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are lexed as one-rune operator tokens,
// including brackets and the argument separator.
const Operators = "+-*/^(),!%"

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var operstrs = byteidcs(Operators)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// Tokenize splits an expression into tokens. It never fails; runes outside
// the expression language become TokenUnknown tokens, which the converter
// rejects. Only space, tab, and newline separate tokens. Identifiers are
// ASCII letters, digits, and underscores, plus π on its own.
func Tokenize(src string) []Token {
	scan := lex(strings.NewReader(src))
	var toks []Token
	for {
		tok, ok := scan.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peekDigit reports whether the next rune is an ASCII digit without
// consuming it.
func (l *lexer) peekDigit() bool {
	r, err := l.readRune()
	if err != nil {
		return false
	}
	l.unreadRune()
	return isDigit(r)
}

// next scans the next token from the input. The second result is false once
// the input is exhausted.
func (l *lexer) next() (Token, bool) {
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.rune}
		r, err := l.readRune()
		if err != nil {
			// strings.Reader only ever reports io.EOF.
			if !errors.Is(err, io.EOF) {
				panic(err)
			}
			return Token{}, false
		}
		switch {
		case isSpace(r):
			continue
		case isDigit(r), r == '.' && l.peekDigit():
			l.unreadRune()
			l.scanNum()
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			return tok, true
		case r == 'π':
			// π stands alone as an alias of pi.
			tok.Text = string(r)
			tok.Kind = TokenIdent
			return tok, true
		case r == '_', isLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, true
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Text = operstrs[k]
				tok.Kind = TokenOp
				return tok, true
			}
			tok.Text = string(r)
			tok.Kind = TokenUnknown
			return tok, true
		}
	}
}

// scanNum scans the maximal run of digits and dots. Malformed runs like
// 1.2.3 are left for the evaluator's number parser.
func (l *lexer) scanNum() {
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		if !isDigit(r) && r != '.' {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		switch {
		case r == '_', isLetter(r), isDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isLetter reports whether r is an ASCII letter. Other letters are unknown
// runes.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isSpace reports whether r separates tokens. Other whitespace, like \r or
// a no-break space, is an unknown rune.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
