package scicalc

import (
	"errors"
	"strconv"
)

// ErrorKind identifies why an expression could not be evaluated. The set of
// kinds is closed; hosts can map each one to a localized message. An
// ErrorKind is itself an error, and every *Error unwraps to its kind, so
// errors.Is(err, MismatchedParentheses) works on any error from this package.
type ErrorKind uint8

const (
	noError ErrorKind = iota

	// UnknownToken is a rune outside the expression language.
	UnknownToken

	// MisplacedComma is an argument separator outside any parentheses.
	MisplacedComma
	// MismatchedParentheses is a ( without a ) or vice versa.
	MismatchedParentheses
	// ZeroArgumentFunctionCall is a call like max().
	ZeroArgumentFunctionCall
	// UnclosedFunctionCall is a function name whose argument list never ends.
	UnclosedFunctionCall
	// UnexpectedToken is a token of a kind the converter or evaluator cannot
	// handle at its position.
	UnexpectedToken

	// UnknownIdentifier is a name that is not a constant.
	UnknownIdentifier
	// ArityMismatch is a call with the wrong number of arguments.
	ArityMismatch
	// UnsupportedFunction is a call to an unknown function.
	UnsupportedFunction
	// UnsupportedOperator is an operator the evaluator cannot apply.
	UnsupportedOperator

	// InvalidFactorial is a factorial of a non-finite value.
	InvalidFactorial
	// NegativeFactorial is a factorial of a negative value.
	NegativeFactorial
	// NonIntegerFactorial is a factorial of a fractional value.
	NonIntegerFactorial
	// FactorialOverflow is a factorial too large for float64.
	FactorialOverflow
	// InvalidNumber is a number literal that does not parse, or an operand
	// that is NaN or infinite.
	InvalidNumber
	// NonFiniteResult is a final result that is NaN or infinite.
	NonFiniteResult

	// StackUnderflow is an operator or function missing operands.
	StackUnderflow
	// InvalidExpression is an expression that does not reduce to exactly one
	// value, e.g. "2 3" or "()".
	InvalidExpression

	numErrorKinds
)

var kindinfo = [numErrorKinds]struct {
	name, key string
	cat       ErrorCategory
}{
	noError:                  {"NoError", "", 0},
	UnknownToken:             {"UnknownToken", "error_unknown_token", LexicalError},
	MisplacedComma:           {"MisplacedComma", "error_misplaced_comma", SyntaxError},
	MismatchedParentheses:    {"MismatchedParentheses", "error_mismatched_parentheses", SyntaxError},
	ZeroArgumentFunctionCall: {"ZeroArgumentFunctionCall", "error_zero_argument_function_call", SyntaxError},
	UnclosedFunctionCall:     {"UnclosedFunctionCall", "error_unclosed_function_call", SyntaxError},
	UnexpectedToken:          {"UnexpectedToken", "error_unexpected_token", SyntaxError},
	UnknownIdentifier:        {"UnknownIdentifier", "error_unknown_identifier", SemanticError},
	ArityMismatch:            {"ArityMismatch", "error_arity_mismatch", SemanticError},
	UnsupportedFunction:      {"UnsupportedFunction", "error_unsupported_function", SemanticError},
	UnsupportedOperator:      {"UnsupportedOperator", "error_unsupported_operator", SemanticError},
	InvalidFactorial:         {"InvalidFactorial", "error_invalid_factorial", ArithmeticError},
	NegativeFactorial:        {"NegativeFactorial", "error_negative_factorial", ArithmeticError},
	NonIntegerFactorial:      {"NonIntegerFactorial", "error_non_integer_factorial", ArithmeticError},
	FactorialOverflow:        {"FactorialOverflow", "error_factorial_overflow", ArithmeticError},
	InvalidNumber:            {"InvalidNumber", "error_invalid_number", ArithmeticError},
	NonFiniteResult:          {"NonFiniteResult", "error_non_finite_result", ArithmeticError},
	StackUnderflow:           {"StackUnderflow", "error_stack_underflow", StructuralError},
	InvalidExpression:        {"InvalidExpression", "error_invalid_expression", StructuralError},
}

// ErrorKinds returns every error kind, in declaration order.
func ErrorKinds() []ErrorKind {
	v := make([]ErrorKind, 0, numErrorKinds-1)
	for k := UnknownToken; k < numErrorKinds; k++ {
		v = append(v, k)
	}
	return v
}

func (k ErrorKind) valid() bool {
	return noError < k && k < numErrorKinds
}

func (k ErrorKind) String() string {
	if !k.valid() {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindinfo[k].name
}

// Key returns the localization key for the error kind, e.g.
// "error_mismatched_parentheses".
func (k ErrorKind) Key() string {
	if !k.valid() {
		return "error_generic"
	}
	return kindinfo[k].key
}

// Category returns the broad class of the error kind.
func (k ErrorKind) Category() ErrorCategory {
	if !k.valid() {
		return 0
	}
	return kindinfo[k].cat
}

func (k ErrorKind) Error() string {
	return "scicalc: " + k.String()
}

// ErrorCategory groups error kinds by the stage that detects them.
type ErrorCategory uint8

const (
	LexicalError ErrorCategory = iota + 1
	SyntaxError
	SemanticError
	ArithmeticError
	StructuralError
)

func (c ErrorCategory) String() string {
	switch c {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case SemanticError:
		return "SemanticError"
	case ArithmeticError:
		return "ArithmeticError"
	case StructuralError:
		return "StructuralError"
	default:
		return "ErrorCategory(" + strconv.Itoa(int(c)) + ")"
	}
}

// Error is the error returned for any invalid expression. It implements
// InputError.
type Error struct {
	// Kind is why evaluation failed.
	Kind ErrorKind
	// Col is the position of the token that caused the error, or 0 if the
	// error is not attributable to a single token, e.g. InvalidExpression.
	Col int
	// Text is the text of the offending token, if any.
	Text string
}

func (err *Error) Error() string {
	msg := kinddesc(err.Kind)
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *Error) Pos() int {
	return err.Col
}

func (err *Error) Unwrap() error {
	return err.Kind
}

// kinddesc gives a short English description of an error kind for
// Error.Error. Hosts should use their own message tables keyed by Kind.
func kinddesc(k ErrorKind) string {
	switch k {
	case UnknownToken:
		return "unknown token"
	case MisplacedComma:
		return "comma outside function arguments"
	case MismatchedParentheses:
		return "mismatched parentheses"
	case ZeroArgumentFunctionCall:
		return "function called with no arguments"
	case UnclosedFunctionCall:
		return "unclosed function call"
	case UnexpectedToken:
		return "unexpected token"
	case UnknownIdentifier:
		return "unknown identifier"
	case ArityMismatch:
		return "wrong number of arguments to"
	case UnsupportedFunction:
		return "unsupported function"
	case UnsupportedOperator:
		return "unsupported operator"
	case InvalidFactorial:
		return "factorial of non-finite value"
	case NegativeFactorial:
		return "factorial of negative number"
	case NonIntegerFactorial:
		return "factorial of non-integer"
	case FactorialOverflow:
		return "factorial overflow"
	case InvalidNumber:
		return "invalid number"
	case NonFiniteResult:
		return "result is not finite"
	case StackUnderflow:
		return "missing operand for"
	case InvalidExpression:
		return "expression does not reduce to a single value"
	default:
		return k.String()
	}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// errAt creates an error of kind k attributed to tok.
func errAt(k ErrorKind, tok Token) error {
	return &Error{Kind: k, Col: tok.Pos, Text: tok.Text}
}

// KindOf returns the ErrorKind of err, or 0 if err is nil or did not come
// from this package.
func KindOf(err error) ErrorKind {
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
