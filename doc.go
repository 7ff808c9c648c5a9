// Package scicalc implements the expression evaluator of a scientific
// calculator.
//
// Evaluation runs in three stages. Tokenize splits the input into numbers,
// identifiers, operators, and unknown runes. ToRPN reorders the tokens into
// Reverse Polish Notation with the shunting-yard algorithm, resolving
// precedence, associativity, unary minus, and function argument counts.
// EvalRPN runs the RPN program on a stack of float64 values.
//
// Precedence from loosest to tightest is + and -, then *, / and %, then ^
// (right-associative), then unary minus, then postfix !. So "2^3^2" is 512,
// "-2^2" is 4, and "-3!" is the factorial of -3, which is an error.
//
// The angle mode is an argument to every evaluation rather than global state,
// so concurrent evaluations with different modes are safe.
//
// Every failure is an *Error whose Kind is one of a closed set of ErrorKind
// values. Hosts can switch on the kind to produce localized messages:
//
//	_, err := scicalc.Evaluate("max()", scicalc.Degrees)
//	if errors.Is(err, scicalc.ZeroArgumentFunctionCall) {
//		// ...
//	}
package scicalc
