package scicalc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// AngleMode selects the unit of angles for trigonometric functions.
type AngleMode int8

const (
	// Degrees makes sin, cos, and tan take degrees and asin, acos, and atan
	// return degrees.
	Degrees AngleMode = iota
	// Radians makes trigonometric functions work in radians.
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "DEGREES"
	case Radians:
		return "RADIANS"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseAngleMode parses an angle mode name. It accepts DEGREES, DEG, D,
// RADIANS, RAD, and R, in any case.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEGREES", "DEG", "D":
		return Degrees, nil
	case "RADIANS", "RAD", "R":
		return Radians, nil
	default:
		return 0, &AngleModeError{Name: s}
	}
}

// AngleModeError is returned by ParseAngleMode for an unknown name.
type AngleModeError struct {
	Name string
}

func (err *AngleModeError) Error() string {
	return "unknown angle mode " + strconv.Quote(err.Name)
}

// machine is the state of one evaluation.
type machine struct {
	stack []float64
	mode  AngleMode
}

func (m *machine) push(x float64) {
	m.stack = append(m.stack, x)
}

// pop removes the top from the stack and returns it. It fails on an empty
// stack or a non-finite value. tok is the token consuming the operand.
func (m *machine) pop(tok Token) (float64, error) {
	if len(m.stack) == 0 {
		return 0, errAt(StackUnderflow, tok)
	}
	x := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	if !finite(x) {
		return 0, errAt(InvalidNumber, tok)
	}
	return x, nil
}

// popn pops n operands and returns them in the order they were pushed.
func (m *machine) popn(tok Token, n int) ([]float64, error) {
	if len(m.stack) < n {
		return nil, errAt(StackUnderflow, tok)
	}
	args := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		x, err := m.pop(tok)
		if err != nil {
			return nil, err
		}
		args[k] = x
	}
	return args, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Eval evaluates the expression with the given angle mode.
func (e *Expr) Eval(mode AngleMode) (float64, error) {
	return EvalRPN(e.rpn, mode)
}

// EvalRPN evaluates an RPN program, as produced by ToRPN, on a fresh stack.
// Exactly one finite value must remain when the program ends.
func EvalRPN(rpn []RPNToken, mode AngleMode) (float64, error) {
	m := machine{stack: make([]float64, 0, 8), mode: mode}
	for _, t := range rpn {
		if err := m.step(t); err != nil {
			return 0, err
		}
	}
	if len(m.stack) != 1 {
		return 0, &Error{Kind: InvalidExpression}
	}
	r := m.stack[0]
	if !finite(r) {
		return 0, &Error{Kind: NonFiniteResult}
	}
	return r, nil
}

// step executes one RPN token.
func (m *machine) step(t RPNToken) error {
	switch t.Kind {
	case TokenNum:
		x, err := strconv.ParseFloat(t.Text, 64)
		// Literals too large for float64 become infinities, which fail as
		// operands or as the final result.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return errAt(InvalidNumber, t.Token)
		}
		m.push(x)
	case TokenIdent:
		x, ok := constant(t.Text)
		if !ok {
			return errAt(UnknownIdentifier, t.Token)
		}
		m.push(x)
	case TokenFunc:
		if t.Argc < 1 {
			return errAt(ZeroArgumentFunctionCall, t.Token)
		}
		args, err := m.popn(t.Token, t.Argc)
		if err != nil {
			return err
		}
		r, err := call(t.Token, m.mode, args)
		if err != nil {
			return err
		}
		m.push(r)
	case TokenOp:
		return m.apply(t.Token)
	default:
		return errAt(UnexpectedToken, t.Token)
	}
	return nil
}

// apply evaluates an operator token.
func (m *machine) apply(tok Token) error {
	switch tok.Text {
	case Neg:
		x, err := m.pop(tok)
		if err != nil {
			return err
		}
		m.push(-x)
		return nil
	case "!":
		x, err := m.pop(tok)
		if err != nil {
			return err
		}
		r, err := factorial(tok, x)
		if err != nil {
			return err
		}
		m.push(r)
		return nil
	case "+", "-", "*", "/", "%", "^": // below
	default:
		return errAt(UnsupportedOperator, tok)
	}
	r, err := m.pop(tok)
	if err != nil {
		return err
	}
	l, err := m.pop(tok)
	if err != nil {
		return err
	}
	switch tok.Text {
	case "+":
		m.push(l + r)
	case "-":
		m.push(l - r)
	case "*":
		m.push(l * r)
	case "/":
		m.push(l / r)
	case "%":
		m.push(math.Mod(l, r))
	case "^":
		m.push(math.Pow(l, r))
	}
	return nil
}

// factorial computes x! for a non-negative integer x.
func factorial(tok Token, x float64) (float64, error) {
	switch {
	case !finite(x):
		return 0, errAt(InvalidFactorial, tok)
	case x < 0:
		return 0, errAt(NegativeFactorial, tok)
	case x != math.Trunc(x):
		return 0, errAt(NonIntegerFactorial, tok)
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
		if math.IsInf(r, 0) {
			return 0, errAt(FactorialOverflow, tok)
		}
	}
	return r, nil
}

// Evaluate parses and evaluates an expression. It is a pure function of its
// arguments; concurrent calls do not interfere.
func Evaluate(src string, mode AngleMode) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(mode)
}
