package scicalc

import (
	"strconv"
	"strings"
)

// Neg is the operator text used in RPN output for unary minus, to keep it
// distinct from binary subtraction.
const Neg = "u-"

// RPNToken is a token in Reverse Polish Notation order, as produced by
// ToRPN.
type RPNToken struct {
	Token
	// Argc is the number of arguments of a TokenFunc. It is zero for all
	// other kinds.
	Argc int
}

func (t RPNToken) String() string {
	if t.Kind == TokenFunc {
		return t.Text + "/" + strconv.Itoa(t.Argc)
	}
	return t.Text
}

// Expr is a parsed expression that can be evaluated any number of times.
type Expr struct {
	rpn []RPNToken
}

// Parse tokenizes an expression and converts it to RPN.
func Parse(src string) (*Expr, error) {
	rpn, err := ToRPN(Tokenize(src))
	if err != nil {
		return nil, err
	}
	return &Expr{rpn: rpn}, nil
}

// RPN returns a copy of the expression's RPN program.
func (e *Expr) RPN() []RPNToken {
	return append([]RPNToken(nil), e.rpn...)
}

// String formats the RPN program with spaces between tokens, e.g.
// "2 3 4 * +" or "3 1 2 min/3".
func (e *Expr) String() string {
	var b strings.Builder
	for i, t := range e.rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields reports whether an operator already on the stack, top, must be
// output before p is pushed.
func (p operator) yields(top operator) bool {
	if p.right {
		return top.prec > p.prec
	}
	return top.prec >= p.prec
}

// opprec gets the operator for a token string. Precedences are doubled so
// that unary minus can sit between ^ and !. Unknown operators get the lowest
// precedence; the evaluator rejects them.
func opprec(text string) operator {
	switch text {
	case "!":
		return operator{10, false}
	case Neg:
		return operator{9, true}
	case "^":
		return operator{8, true}
	case "*", "/", "%":
		return operator{6, false}
	case "+", "-":
		return operator{4, false}
	default:
		return operator{}
	}
}

// pending is an entry on the converter's operator stack: an operator, an
// open parenthesis, or a function marker carrying its argument count so far.
type pending struct {
	tok  Token
	fn   bool
	argc int
}

func (p *pending) open() bool {
	return !p.fn && p.tok.is("(")
}

// unaryAfter reports whether a - following prev is unary minus.
func unaryAfter(prev Token) bool {
	if prev.Kind != TokenOp {
		return false
	}
	switch prev.Text {
	case "+", "-", "*", "/", "^", "(", ",", "%":
		return true
	}
	return false
}

// ToRPN converts infix tokens to Reverse Polish Notation using the
// shunting-yard algorithm, extended with function calls, unary minus, and
// postfix factorial. Each input token except (, ), and , yields exactly one
// output token; a function name becomes a TokenFunc carrying its argument
// count.
func ToRPN(tokens []Token) ([]RPNToken, error) {
	out := make([]RPNToken, 0, len(tokens))
	var stack []pending
	// emit moves the top of the stack to the output.
	emit := func() {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, RPNToken{Token: p.tok})
	}
	// unwind emits operators until an open parenthesis is on top. It reports
	// whether one was found.
	unwind := func() bool {
		for len(stack) > 0 {
			if stack[len(stack)-1].open() {
				return true
			}
			emit()
		}
		return false
	}
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenUnknown:
			return nil, errAt(UnknownToken, tok)
		case TokenNum:
			out = append(out, RPNToken{Token: tok})
			continue
		case TokenIdent:
			if i+1 < len(tokens) && tokens[i+1].is("(") {
				stack = append(stack, pending{tok: tok, fn: true})
				continue
			}
			out = append(out, RPNToken{Token: tok})
			continue
		case TokenOp: // below
		default:
			return nil, errAt(UnexpectedToken, tok)
		}

		switch tok.Text {
		case ",":
			if !unwind() {
				return nil, errAt(MisplacedComma, tok)
			}
			if k := len(stack) - 2; k >= 0 && stack[k].fn {
				stack[k].argc++
			}
		case "(":
			if k := len(stack) - 1; k >= 0 && stack[k].fn && stack[k].argc == 0 {
				// The marker was pushed for the identifier just before this
				// parenthesis. A first argument exists unless the list is
				// empty.
				if i+1 >= len(tokens) || !tokens[i+1].is(")") {
					stack[k].argc = 1
				}
			}
			stack = append(stack, pending{tok: tok})
		case ")":
			if !unwind() {
				return nil, errAt(MismatchedParentheses, tok)
			}
			stack = stack[:len(stack)-1]
			if k := len(stack) - 1; k >= 0 && stack[k].fn {
				fn := stack[k]
				stack = stack[:k]
				if fn.argc < 1 {
					return nil, errAt(ZeroArgumentFunctionCall, fn.tok)
				}
				f := fn.tok
				f.Kind = TokenFunc
				out = append(out, RPNToken{Token: f, Argc: fn.argc})
			}
		case "!":
			// A sign immediately before the operand belongs to it: -3! is
			// (-3)!.
			for len(stack) > 0 && stack[len(stack)-1].tok.is(Neg) {
				emit()
			}
			out = append(out, RPNToken{Token: tok})
		default:
			if tok.Text == "-" && (i == 0 || unaryAfter(tokens[i-1])) {
				tok.Text = Neg
			}
			p := opprec(tok.Text)
			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.fn || top.open() || !p.yields(opprec(top.tok.Text)) {
					break
				}
				emit()
			}
			stack = append(stack, pending{tok: tok})
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		switch {
		case p.open():
			return nil, errAt(MismatchedParentheses, p.tok)
		case p.fn:
			// Unreachable: a marker is only pushed when ( follows, and that
			// ( stays above it until the matching ) removes both. An
			// unclosed call reports MismatchedParentheses at its (.
			return nil, errAt(UnclosedFunctionCall, p.tok)
		}
		emit()
	}
	return out, nil
}
