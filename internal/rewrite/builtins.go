package rewrite

import (
	"strings"
	"unicode"
)

// Builtins returns the built-in patterns in registration order.
func Builtins() []Pattern {
	return []Pattern{
		{Name: "std::integral_constant", Handler: integralConstant, Doc: "std::integral_constant<T, v> -> IC<v>"},
		{Name: "ConstStr", Handler: constStr, Doc: `ConstStr<ConstStrContainer<N>{"s"}> -> Str<"s">`},
		{Name: "std::pair", Handler: pair, Doc: "std::pair<a, b> -> pair<a, b>"},
		{Name: "std::tuple", Handler: tuple, Doc: "std::tuple<...> -> tuple<...>"},
		{Name: "std::__cxx11::basic_string", Handler: basicString, Doc: "std::__cxx11::basic_string<char, ...> -> std::string"},
		{Name: "std::basic_string", Handler: basicString, Doc: "std::basic_string<char, ...> -> std::string"},
		{Name: "std::vector", Handler: vector, Doc: "std::vector<T, std::allocator<T>> -> vector<T>"},
	}
}

func integralConstant(args []string) (string, bool) {
	if len(args) != 2 {
		return "", false
	}
	return "IC<" + args[1] + ">", true
}

// constStr accepts exactly ConstStrContainer<digits>{"text"} where text has
// no double quote.
func constStr(args []string) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	rest, ok := strings.CutPrefix(args[0], "ConstStrContainer<")
	if !ok {
		return "", false
	}
	digits := 0
	for digits < len(rest) && '0' <= rest[digits] && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return "", false
	}
	rest, ok = strings.CutPrefix(rest[digits:], `>{"`)
	if !ok {
		return "", false
	}
	content, ok := strings.CutSuffix(rest, `"}`)
	if !ok || strings.Contains(content, `"`) {
		return "", false
	}
	return `Str<"` + content + `">`, true
}

func pair(args []string) (string, bool) {
	if len(args) != 2 {
		return "", false
	}
	return "pair<" + args[0] + ", " + args[1] + ">", true
}

func tuple(args []string) (string, bool) {
	return "tuple<" + strings.Join(args, ", ") + ">", true
}

var stringAliases = map[string]string{
	"char":     "std::string",
	"wchar_t":  "std::wstring",
	"char8_t":  "std::u8string",
	"char16_t": "std::u16string",
	"char32_t": "std::u32string",
}

// basicString folds the default traits and allocator spelling of a string
// type into its typedef.
func basicString(args []string) (string, bool) {
	var charT string
	switch len(args) {
	case 1:
		charT = args[0]
	case 3:
		charT = args[0]
		if squash(args[1]) != "std::char_traits<"+squash(charT)+">" ||
			squash(args[2]) != "std::allocator<"+squash(charT)+">" {
			return "", false
		}
	default:
		return "", false
	}
	alias, ok := stringAliases[charT]
	return alias, ok
}

func vector(args []string) (string, bool) {
	switch len(args) {
	case 1:
	case 2:
		if squash(args[1]) != "std::allocator<"+squash(args[0])+">" {
			return "", false
		}
	default:
		return "", false
	}
	if args[0] == "" {
		return "", false
	}
	return "vector<" + args[0] + ">", true
}

// squash drops all whitespace so "vector<int> >" and "vector<int>>" compare
// equal.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
