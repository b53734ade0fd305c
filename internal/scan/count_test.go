package scan

import (
	"strings"
	"testing"
)

func TestCountParams(t *testing.T) {
	tests := []struct {
		name string
		text string
		open int
		want int
	}{
		{"five", "Foo<A, B, C, D, E>", 3, 5},
		{"empty pair", "Foo<>", 3, 0},
		{"spaced pair", "Foo< >", 3, 1},
		{"nested not counted", "Foo<Bar<A, B>, C>", 3, 2},
		{"parens not counted", "Foo<f(a, b)>", 3, 1},
		{"quoted commas", `Foo<"a,b,c">`, 3, 1},
		{"unbalanced counts tail", "Foo<A, B", 3, 2},
		{"not an angle", "Foo<A, B>", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountParams(tt.text, tt.open); got != tt.want {
				t.Fatalf("CountParams(%q, %d) = %d, want %d", tt.text, tt.open, got, tt.want)
			}
		})
	}
}

// The counter and the splitter must agree on every well-formed list.
func TestCountParamsAgreesWithSplitArgs(t *testing.T) {
	lists := []string{
		"X<A>",
		"X<A, B>",
		"X<A, B<C, D>, E>",
		"X<std::pair<int, long>, std::tuple<>, f(a, b), {1, 2}>",
		`X<"a,b", 'c', "<", '>'>`,
		"X<ConstStrContainer<3>{\"abc\"}>",
		"X<A,,B>",
		"X< A , B >",
		"X<std::integral_constant<unsigned long, 18446744073709551615>, void>",
	}
	for _, text := range lists {
		open := strings.IndexByte(text, '<')
		body, _, ok := Body(text, open)
		if !ok {
			t.Fatalf("%q is not balanced", text)
		}
		if got, want := CountParams(text, open), len(SplitArgs(body)); got != want {
			t.Errorf("%q: CountParams = %d, len(SplitArgs) = %d", text, got, want)
		}
	}
}

func FuzzCountMatchesSplit(f *testing.F) {
	f.Add("Foo<A, B, C>")
	f.Add(`Str<"a,b">`)
	f.Add("T<f(x, y), {1, 2}, U<V, W>>")
	f.Fuzz(func(t *testing.T, text string) {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			return
		}
		body, closeIdx, ok := Body(text, open)
		if !ok || closeIdx == open+1 {
			return
		}
		// "A," drops the empty tail segment by definition; that input is not well-formed.
		last := body
		forEachTopLevelComma(body, func(i int) { last = body[i+1:] })
		if last == "" {
			return
		}
		if got, want := CountParams(text, open), len(SplitArgs(body)); got != want {
			t.Fatalf("%q: CountParams = %d, len(SplitArgs) = %d", text, got, want)
		}
	})
}
