// Package messages turns evaluation errors into text for people.
package messages

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/zephyrtronium/scicalc"
)

// Default is the language used when a requested one has no message.
const Default = "en"

// GenericKey is the key of the message for errors without a kind.
const GenericKey = "error_generic"

type table struct {
	msgs    map[string]string
	detail  string // message, token text, column
	suggest string // name
}

var tables = map[string]table{
	"en": {
		msgs: map[string]string{
			GenericKey:                          "Error evaluating the expression.",
			"error_arity_mismatch":              "Invalid number of arguments.",
			"error_factorial_overflow":          "Factorial exceeded the numeric limit.",
			"error_invalid_expression":          "I couldn't calculate it because the expression is written in a format the calculator doesn't recognize (check parentheses, signs, and names like sin/sqrt).",
			"error_invalid_factorial":           "Invalid factorial.",
			"error_invalid_number":              "Invalid number.",
			"error_mismatched_parentheses":      "Mismatched parentheses.",
			"error_misplaced_comma":             "Comma in an invalid position.",
			"error_negative_factorial":          "Can't compute the factorial of a negative number.",
			"error_non_finite_result":           "The result of this calculation was infinite or not a number (NaN). Check that you are not dividing by zero or using something like the square root of a negative number.",
			"error_non_integer_factorial":       "Factorial is only defined for integers.",
			"error_stack_underflow":             "A number or argument is missing. E.g.: +2, 2*, 2 + ( ), 2 +, sin() with no value, pow(2) missing the 2nd argument.",
			"error_unclosed_function_call":      "Unclosed function call.",
			"error_unexpected_token":            "Unexpected token.",
			"error_unknown_identifier":          "Unknown identifier.",
			"error_unknown_token":               "Unknown token.",
			"error_unsupported_function":        "Unsupported function.",
			"error_unsupported_operator":        "Unsupported operator.",
			"error_zero_argument_function_call": "Function call with no arguments.",
		},
		detail:  "%s (%q at column %d)",
		suggest: "Did you mean %s?",
	},
	"pt_br": {
		msgs: map[string]string{
			GenericKey:                          "Erro ao avaliar a expressão.",
			"error_arity_mismatch":              "Quantidade de argumentos inválida.",
			"error_factorial_overflow":          "Fatorial excedeu o limite numérico.",
			"error_invalid_expression":          "Não consegui calcular porque a conta está escrita em um formato que a calculadora não reconhece (verifique parênteses, sinais e nomes como sin/sqrt).",
			"error_invalid_factorial":           "Fatorial inválido.",
			"error_invalid_number":              "Número inválido.",
			"error_mismatched_parentheses":      "Parênteses não correspondentes.",
			"error_misplaced_comma":             "Vírgula em posição inválida.",
			"error_negative_factorial":          "Não é possível calcular fatorial de número negativo.",
			"error_non_finite_result":           "O resultado dessa conta deu infinito ou não é um número (NaN). Verifique se você não está dividindo por zero ou usando algo como raiz de número negativo.",
			"error_non_integer_factorial":       "O fatorial só é definido para inteiros.",
			"error_stack_underflow":             "Faltou um número ou um argumento. Ex: +2, 2*, 2 + ( ), 2 +, sin() sem valor, pow(2) sem o argumento 2.",
			"error_unclosed_function_call":      "Chamada de função não finalizada.",
			"error_unexpected_token":            "Token inesperado.",
			"error_unknown_identifier":          "Identificador desconhecido.",
			"error_unknown_token":               "Token desconhecido.",
			"error_unsupported_function":        "Função não suportada.",
			"error_unsupported_operator":        "Operador não suportado.",
			"error_zero_argument_function_call": "Chamada de função sem argumentos.",
		},
		detail:  "%s (%q na coluna %d)",
		suggest: "Você quis dizer %s?",
	},
}

// Languages returns the languages with message tables.
func Languages() []string {
	return []string{"en", "pt_br"}
}

func lookup(lang string) table {
	if t, ok := tables[strings.ToLower(lang)]; ok {
		return t
	}
	return tables[Default]
}

// Text returns the bare message for an error kind in lang. Unknown languages
// fall back to Default and unknown kinds to the generic message.
func Text(lang string, k scicalc.ErrorKind) string {
	t := lookup(lang)
	if s, ok := t.msgs[k.Key()]; ok {
		return s
	}
	if s, ok := tables[Default].msgs[k.Key()]; ok {
		return s
	}
	return t.msgs[GenericKey]
}

// Message describes err in lang, including the offending token and a
// suggestion for misspelled names where there is one. It returns "" for a
// nil error.
func Message(lang string, err error) string {
	if err == nil {
		return ""
	}
	t := lookup(lang)
	msg := Text(lang, scicalc.KindOf(err))
	var e *scicalc.Error
	if !errors.As(err, &e) {
		return msg
	}
	if e.Text != "" && e.Col > 0 {
		msg = fmt.Sprintf(t.detail, msg, e.Text, e.Col)
	}
	switch e.Kind {
	case scicalc.UnknownIdentifier, scicalc.UnsupportedFunction:
		if s, ok := Suggest(e.Text); ok {
			msg += " " + fmt.Sprintf(t.suggest, s)
		}
	}
	return msg
}

// Suggest finds the known function or constant name closest to name, if one
// is close enough to be a likely misspelling.
func Suggest(name string) (string, bool) {
	name = strings.ToLower(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return "", false
	}
	limit := max(1, n/3)
	best, bestd := "", limit+1
	for _, group := range [][]string{scicalc.Functions(), scicalc.Constants()} {
		for _, c := range group {
			if c == name {
				return "", false
			}
			d := levenshtein.ComputeDistance(name, c)
			if d < bestd && d < n {
				best, bestd = c, d
			}
		}
	}
	return best, best != ""
}
