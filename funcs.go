package scicalc

import (
	"math"
	"sort"
	"strings"
)

// Func is a function from reals to reals that can appear in expressions.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true, with arguments in source order.
	Call(mode AngleMode, args []float64) float64

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

const deg2rad = math.Pi / 180

var globalfuncs = map[string]Func{
	"sin":  angular{f: math.Sin},
	"cos":  angular{f: math.Cos},
	"tan":  angular{f: math.Tan},
	"asin": angular{f: math.Asin, inverse: true},
	"acos": angular{f: math.Acos, inverse: true},
	"atan": angular{f: math.Atan, inverse: true},

	"sqrt":  monadic(math.Sqrt),
	"abs":   monadic(math.Abs),
	"exp":   monadic(math.Exp),
	"ln":    monadic(math.Log),
	"log":   monadic(math.Log10),
	"floor": monadic(math.Floor),
	"ceil":  monadic(math.Ceil),
	"round": monadic(roundHalfUp),

	"pow": dyadic(math.Pow),

	"min": variadic(math.Min),
	"max": variadic(math.Max),
}

var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

// constant looks up a named constant, ignoring case.
func constant(name string) (float64, bool) {
	x, ok := constants[strings.ToLower(name)]
	return x, ok
}

// call dispatches a function token.
func call(tok Token, mode AngleMode, args []float64) (float64, error) {
	fn := globalfuncs[strings.ToLower(tok.Text)]
	if fn == nil {
		return 0, errAt(UnsupportedFunction, tok)
	}
	if !fn.CanCall(len(args)) {
		return 0, errAt(ArityMismatch, tok)
	}
	return fn.Call(mode, args), nil
}

// Functions returns the sorted names of the functions expressions can call.
func Functions() []string {
	return sortedKeys(globalfuncs)
}

// Constants returns the sorted names of the constants expressions can use.
func Constants() []string {
	return sortedKeys(constants)
}

func sortedKeys[V any](m map[string]V) []string {
	v := make([]string, 0, len(m))
	for k := range m {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

type monadic func(float64) float64

func (f monadic) Call(mode AngleMode, args []float64) float64 {
	return f(args[0])
}

func (f monadic) CanCall(n int) bool {
	return n == 1
}

type dyadic func(x, y float64) float64

func (f dyadic) Call(mode AngleMode, args []float64) float64 {
	return f(args[0], args[1])
}

func (f dyadic) CanCall(n int) bool {
	return n == 2
}

// variadic folds a binary function over one or more arguments.
type variadic func(x, y float64) float64

func (f variadic) Call(mode AngleMode, args []float64) float64 {
	r := args[0]
	for _, x := range args[1:] {
		r = f(r, x)
	}
	return r
}

func (f variadic) CanCall(n int) bool {
	return n >= 1
}

// angular is a trigonometric function. In degree mode, forward functions
// convert their argument to radians and inverse functions convert their
// result to degrees.
type angular struct {
	f       func(float64) float64
	inverse bool
}

func (a angular) Call(mode AngleMode, args []float64) float64 {
	x := args[0]
	if mode == Degrees && !a.inverse {
		x *= deg2rad
	}
	r := a.f(x)
	if mode == Degrees && a.inverse {
		r /= deg2rad
	}
	return r
}

func (a angular) CanCall(n int) bool {
	return n == 1
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf, so
// round(-2.5) is -2.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}
