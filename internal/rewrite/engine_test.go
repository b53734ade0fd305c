package rewrite

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tmplfmt/internal/trace"
)

func TestPassSingleStep(t *testing.T) {
	eng := NewEngine(DefaultTable(), Options{})
	in := "std::pair<std::pair<a, b>, c>"
	got, hits := eng.Pass(in)
	if got != "pair<std::pair<a, b>, c>" {
		t.Errorf("Pass = %q", got)
	}
	if diff := cmp.Diff(Hits{"std::pair": 1}, hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}

	got, hits = eng.Pass(got)
	if got != "pair<pair<a, b>, c>" || hits.Total() != 1 {
		t.Errorf("second Pass = %q, %v", got, hits)
	}
}

func TestPassUnchangedReturnsInput(t *testing.T) {
	eng := NewEngine(DefaultTable(), Options{})
	in := "no templates here < at all"
	got, hits := eng.Pass(in)
	if got != in || len(hits) != 0 {
		t.Errorf("Pass = %q, %v", got, hits)
	}
}

func TestRewriteFixpoint(t *testing.T) {
	eng := NewEngine(DefaultTable(), Options{})
	in := "f(std::tuple<std::pair<int, std::integral_constant<long, 3>>, std::vector<int>>)"
	res, err := eng.Rewrite(context.Background(), in)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	want := "f(tuple<pair<int, IC<3>>, vector<int>>)"
	if res.Text != want {
		t.Errorf("Rewrite = %q, want %q", res.Text, want)
	}
	wantHits := Hits{"std::tuple": 1, "std::pair": 1, "std::integral_constant": 1, "std::vector": 1}
	if diff := cmp.Diff(wantHits, res.Hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}
	if res.Passes < 2 {
		t.Errorf("Passes = %d, want at least 2", res.Passes)
	}

	again, err := eng.Rewrite(context.Background(), res.Text)
	if err != nil {
		t.Fatalf("second Rewrite: %v", err)
	}
	if again.Text != res.Text || again.Passes != 1 || again.Hits.Total() != 0 {
		t.Errorf("rewrite is not idempotent: %+v", again)
	}
}

func TestRewriteLongestNameWins(t *testing.T) {
	short := Pattern{Name: "std::integral", Handler: func([]string) (string, bool) { return "SHORT", true }}
	tbl, err := DefaultTable().With(short)
	if err != nil {
		t.Fatal(err)
	}
	res, err := NewEngine(tbl, Options{}).Rewrite(context.Background(), "std::integral_constant<int, 7>")
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "IC<7>" {
		t.Errorf("Rewrite = %q", res.Text)
	}
}

func TestRewriteNoFixpoint(t *testing.T) {
	grow := Pattern{Name: "Grow", Handler: func(args []string) (string, bool) {
		return "Grow<" + strings.Join(args, ", ") + ", x>", true
	}}
	tbl, err := NewTable(grow)
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(tbl, Options{MaxPasses: 5})
	res, err := eng.Rewrite(context.Background(), "Grow<a>")
	if !errors.Is(err, ErrNoFixpoint) {
		t.Fatalf("err = %v, want ErrNoFixpoint", err)
	}
	// five changing passes are allowed, the sixth still changes the text
	if res.Passes != 6 {
		t.Errorf("Passes = %d, want 6", res.Passes)
	}
	if res.Text != "Grow<a, x, x, x, x, x, x>" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestRewriteSinglePassCeiling(t *testing.T) {
	eng := NewEngine(DefaultTable(), Options{MaxPasses: 1})
	res, err := eng.Rewrite(context.Background(), "std::pair<a, b>")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if res.Text != "pair<a, b>" || res.Passes != 2 {
		t.Errorf("Rewrite = %q in %d passes, want pair<a, b> in 2", res.Text, res.Passes)
	}
}

func TestRewriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(DefaultTable(), Options{}).Rewrite(ctx, "std::pair<a, b>")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLiterals(t *testing.T) {
	eng := NewEngine(DefaultTable(), Options{Literals: append(DefaultLiterals(),
		Literal{From: "9223372036854775807", To: "INT64_MAX"},
		Literal{From: "", To: "ignored"},
	)})
	got := eng.Cleanup("a<18446744073709551615, 9223372036854775807>")
	if got != "a<SIZE_T_MAX, INT64_MAX>" {
		t.Errorf("Cleanup = %q", got)
	}

	off := NewEngine(DefaultTable(), Options{Literals: []Literal{}})
	if got := off.Cleanup("18446744073709551615"); got != "18446744073709551615" {
		t.Errorf("disabled Cleanup = %q", got)
	}
}

func TestRewriteTracesMatches(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	if _, err := NewEngine(DefaultTable(), Options{}).Rewrite(ctx, "std::pair<a> std::tuple<b>"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"std::pair (declined)", "std::tuple (hit)", "→ rewrite", "← rewrite passes=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
