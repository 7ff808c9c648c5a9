package scicalc

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
)

func TestErrorKindsComplete(t *testing.T) {
	kinds := ErrorKinds()
	if len(kinds) != int(numErrorKinds)-1 {
		t.Fatalf("%d kinds listed, %d declared", len(kinds), numErrorKinds-1)
	}
	keyre := regexp.MustCompile(`^error_[a-z_]+$`)
	keys := make(map[string]ErrorKind)
	for _, k := range kinds {
		if k.Category() == 0 {
			t.Errorf("%v has no category", k)
		}
		key := k.Key()
		if !keyre.MatchString(key) {
			t.Errorf("%v has bad key %q", k, key)
		}
		if o, ok := keys[key]; ok {
			t.Errorf("%v and %v share key %q", k, o, key)
		}
		keys[key] = k
		if kinddesc(k) == k.String() {
			t.Errorf("%v has no description", k)
		}
	}
}

func TestErrorKindCategories(t *testing.T) {
	cases := []struct {
		k ErrorKind
		c ErrorCategory
	}{
		{UnknownToken, LexicalError},
		{MismatchedParentheses, SyntaxError},
		{UnexpectedToken, SyntaxError},
		{ArityMismatch, SemanticError},
		{FactorialOverflow, ArithmeticError},
		{NonFiniteResult, ArithmeticError},
		{StackUnderflow, StructuralError},
		{InvalidExpression, StructuralError},
	}
	for _, c := range cases {
		if got := c.k.Category(); got != c.c {
			t.Errorf("%v: want %v, got %v", c.k, c.c, got)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Evaluate("1 + foo(2)", Degrees)
	if err == nil {
		t.Fatal("no error")
	}
	if s := err.Error(); s != `5: unsupported function "foo"` {
		t.Errorf("wrong message %q", s)
	}
	_, err = Evaluate("2 3", Degrees)
	if s := err.Error(); s != "expression does not reduce to a single value" {
		t.Errorf("wrong message %q", s)
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(nil); k != 0 {
		t.Errorf("nil error has kind %v", k)
	}
	if k := KindOf(errors.New("x")); k != 0 {
		t.Errorf("foreign error has kind %v", k)
	}
	wrapped := fmt.Errorf("evaluating: %w", &Error{Kind: ArityMismatch})
	if k := KindOf(wrapped); k != ArityMismatch {
		t.Errorf("wrapped error has kind %v", k)
	}
	if !errors.Is(wrapped, ArityMismatch) {
		t.Error("wrapped error is not ArityMismatch")
	}
	if errors.Is(wrapped, StackUnderflow) {
		t.Error("wrapped error is StackUnderflow")
	}
}

func TestInvalidKind(t *testing.T) {
	k := ErrorKind(200)
	if k.Key() != "error_generic" {
		t.Errorf("invalid kind has key %q", k.Key())
	}
	if k.String() != "ErrorKind(200)" {
		t.Errorf("invalid kind formats as %q", k.String())
	}
}
