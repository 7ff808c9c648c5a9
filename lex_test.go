package scicalc

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \t \n ", nil},
		// only space, tab, and newline are spaces
		{"\r", []Token{{Text: "\r", Kind: TokenUnknown, Pos: 1}}},
		{"1\v2", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "\v", Kind: TokenUnknown, Pos: 2}, {Text: "2", Kind: TokenNum, Pos: 3}}},
		{"\f", []Token{{Text: "\f", Kind: TokenUnknown, Pos: 1}}},
		{"1\u00a0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "\u00a0", Kind: TokenUnknown, Pos: 2}}},
		{"\u2003", []Token{{Text: "\u2003", Kind: TokenUnknown, Pos: 1}}},
		// numbers
		{"0", []Token{{Text: "0", Kind: TokenNum, Pos: 1}}},
		{"9876543210", []Token{{Text: "9876543210", Kind: TokenNum, Pos: 1}}},
		{"1 0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "0", Kind: TokenNum, Pos: 3}}},
		{"1.0", []Token{{Text: "1.0", Kind: TokenNum, Pos: 1}}},
		{".5", []Token{{Text: ".5", Kind: TokenNum, Pos: 1}}},
		{"1.", []Token{{Text: "1.", Kind: TokenNum, Pos: 1}}},
		{"1.1.1", []Token{{Text: "1.1.1", Kind: TokenNum, Pos: 1}}},
		{"-1", []Token{{Text: "-", Kind: TokenOp, Pos: 1}, {Text: "1", Kind: TokenNum, Pos: 2}}},
		{"1e1", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "e1", Kind: TokenIdent, Pos: 2}}},
		{"1+0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "+", Kind: TokenOp, Pos: 2}, {Text: "0", Kind: TokenNum, Pos: 3}}},
		{"1a", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "a", Kind: TokenIdent, Pos: 2}}},
		// a lone dot is not a number
		{".", []Token{{Text: ".", Kind: TokenUnknown, Pos: 1}}},
		{". 5", []Token{{Text: ".", Kind: TokenUnknown, Pos: 1}, {Text: "5", Kind: TokenNum, Pos: 3}}},
		{".x", []Token{{Text: ".", Kind: TokenUnknown, Pos: 1}, {Text: "x", Kind: TokenIdent, Pos: 2}}},
		// identifiers
		{"e", []Token{{Text: "e", Kind: TokenIdent, Pos: 1}}},
		{"e1", []Token{{Text: "e1", Kind: TokenIdent, Pos: 1}}},
		{"π", []Token{{Text: "π", Kind: TokenIdent, Pos: 1}}},
		{"2π", []Token{{Text: "2", Kind: TokenNum, Pos: 1}, {Text: "π", Kind: TokenIdent, Pos: 2}}},
		{"piπ", []Token{{Text: "pi", Kind: TokenIdent, Pos: 1}, {Text: "π", Kind: TokenIdent, Pos: 3}}},
		// identifiers are ASCII
		{"é", []Token{{Text: "é", Kind: TokenUnknown, Pos: 1}}},
		{"aé", []Token{{Text: "a", Kind: TokenIdent, Pos: 1}, {Text: "é", Kind: TokenUnknown, Pos: 2}}},
		{"ж1", []Token{{Text: "ж", Kind: TokenUnknown, Pos: 1}, {Text: "1", Kind: TokenNum, Pos: 2}}},
		{"_1234_", []Token{{Text: "_1234_", Kind: TokenIdent, Pos: 1}}},
		{"sin(", []Token{{Text: "sin", Kind: TokenIdent, Pos: 1}, {Text: "(", Kind: TokenOp, Pos: 4}}},
		// operators
		{"+-*/^(),!%", []Token{
			{Text: "+", Kind: TokenOp, Pos: 1},
			{Text: "-", Kind: TokenOp, Pos: 2},
			{Text: "*", Kind: TokenOp, Pos: 3},
			{Text: "/", Kind: TokenOp, Pos: 4},
			{Text: "^", Kind: TokenOp, Pos: 5},
			{Text: "(", Kind: TokenOp, Pos: 6},
			{Text: ")", Kind: TokenOp, Pos: 7},
			{Text: ",", Kind: TokenOp, Pos: 8},
			{Text: "!", Kind: TokenOp, Pos: 9},
			{Text: "%", Kind: TokenOp, Pos: 10},
		}},
		{"a--b", []Token{{Text: "a", Kind: TokenIdent, Pos: 1}, {Text: "-", Kind: TokenOp, Pos: 2}, {Text: "-", Kind: TokenOp, Pos: 3}, {Text: "b", Kind: TokenIdent, Pos: 4}}},
		// unknown runes
		{"$", []Token{{Text: "$", Kind: TokenUnknown, Pos: 1}}},
		{"a$", []Token{{Text: "a", Kind: TokenIdent, Pos: 1}, {Text: "$", Kind: TokenUnknown, Pos: 2}}},
		{"$0", []Token{{Text: "$", Kind: TokenUnknown, Pos: 1}, {Text: "0", Kind: TokenNum, Pos: 2}}},
		{"[1]", []Token{{Text: "[", Kind: TokenUnknown, Pos: 1}, {Text: "1", Kind: TokenNum, Pos: 2}, {Text: "]", Kind: TokenUnknown, Pos: 3}}},
		{"×", []Token{{Text: "×", Kind: TokenUnknown, Pos: 1}}},
		// positions count runes, not bytes
		{"π+1", []Token{{Text: "π", Kind: TokenIdent, Pos: 1}, {Text: "+", Kind: TokenOp, Pos: 2}, {Text: "1", Kind: TokenNum, Pos: 3}}},
	}
	for _, c := range cases {
		got := Tokenize(c.src)
		if !reflect.DeepEqual(got, c.tokens) {
			t.Errorf("scanning %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, got)
		}
	}
}

func TestOperatorsLexAsOps(t *testing.T) {
	for _, r := range Operators {
		toks := Tokenize(string(r))
		if len(toks) != 1 || toks[0].Kind != TokenOp || toks[0].Text != string(r) {
			t.Errorf("%c lexed as %v", r, toks)
		}
	}
}
