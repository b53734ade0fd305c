package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tmplfmt/internal/cache"
	"tmplfmt/internal/diag"
	"tmplfmt/internal/rewrite"
	"tmplfmt/internal/source"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		preserveLines bool
		want          string
	}{
		{"collapse", "  Foo<A,\n\t B>  \r\n", false, "Foo<A, B>"},
		{"empty", " \n\t ", false, ""},
		{"nfc", "Cafe\u0301<int>", false, "Caf\u00e9<int>"},
		{"preserve lines", "a  b\n\n  c\td \n", true, "a b\nc d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in, tt.preserveLines); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func loadVirtual(t *testing.T, fs *source.FileSet, inputs ...string) []source.FileID {
	t.Helper()
	ids := make([]source.FileID, len(inputs))
	for i, in := range inputs {
		ids[i] = fs.AddVirtual("input"+string(rune('a'+i)), []byte(in))
	}
	return ids
}

func TestProcessPipeline(t *testing.T) {
	fs := source.NewFileSet()
	ids := loadVirtual(t, fs,
		"error: no match for\n  std::tuple<std::integral_constant<int, 1>, int, int, int, int>",
		`ConstStr<ConstStrContainer<3>{"abc"}>`,
	)

	p := New(fs, DefaultOptions())
	results, err := p.ProcessAll(context.Background(), ids)
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	want := strings.Join([]string{
		"error: no match for tuple<",
		"  IC<1>,",
		"  int,",
		"  int,",
		"  int,",
		"  int",
		">",
	}, "\n")
	if diff := cmp.Diff(want, results[0].Output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if results[0].Hits["std::tuple"] != 1 || results[0].Hits["std::integral_constant"] != 1 {
		t.Errorf("hits = %v", results[0].Hits)
	}
	if results[1].Output != `Str<"abc">` {
		t.Errorf("second output = %q", results[1].Output)
	}
	if results[0].Path != "inputa" || results[1].Path != "inputb" {
		t.Errorf("results out of order: %q, %q", results[0].Path, results[1].Path)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	in := "X<std::pair<A, B>, C, D, E, F> then Y<1, 2, 3, 4, 5, Z<a, b, c, d, e>>"
	fs := source.NewFileSet()
	p := New(fs, DefaultOptions())

	first := p.Process(context.Background(), fs.AddVirtual("a", []byte(in)))
	second := p.Process(context.Background(), fs.AddVirtual("b", []byte(first.Output)))
	if diff := cmp.Diff(first.Output, second.Output); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestProcessNoRewrite(t *testing.T) {
	fs := source.NewFileSet()
	opts := DefaultOptions()
	opts.Rewrite = false
	opts.MinParams = 2
	res := New(fs, opts).Process(context.Background(), fs.AddVirtual("a", []byte("std::pair<a, 18446744073709551615>")))
	want := "std::pair<\n  a,\n  18446744073709551615\n>"
	if res.Output != want {
		t.Errorf("Output = %q, want %q", res.Output, want)
	}
}

func TestProcessUnbalancedWarns(t *testing.T) {
	fs := source.NewFileSet()
	res := New(fs, DefaultOptions()).Process(context.Background(), fs.AddVirtual("a", []byte("Foo<A,   B")))
	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if res.Output != "Foo<A, B" {
		t.Errorf("Output = %q", res.Output)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.ScanUnbalancedAngle {
		t.Fatalf("diagnostics = %+v", res.Bag.Items())
	}
	out := diag.FormatShortDiagnostics(res.Bag.Items(), fs, source.PathRelative, false)
	if !strings.HasPrefix(out, "warning SCN1001 a:1:4 ") {
		t.Errorf("short diagnostics = %q", out)
	}
}

func TestProcessNoFixpoint(t *testing.T) {
	grow := rewrite.Pattern{Name: "Grow", Handler: func(args []string) (string, bool) {
		return "Grow<" + strings.Join(args, ", ") + ", x>", true
	}}
	table, err := rewrite.NewTable(grow)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Table = table
	opts.MaxPasses = 3

	fs := source.NewFileSet()
	res := New(fs, opts).Process(context.Background(), fs.AddVirtual("a", []byte("Grow<a>")))
	if !errors.Is(res.Err, rewrite.ErrNoFixpoint) {
		t.Fatalf("Err = %v, want ErrNoFixpoint", res.Err)
	}
	if res.Output != "" {
		t.Errorf("Output = %q, want empty", res.Output)
	}
	if res.Bag.Len() == 0 || res.Bag.Items()[0].Severity != diag.SevError || res.Bag.Items()[0].Code != diag.RewriteNoFixpoint {
		t.Errorf("diagnostics = %+v", res.Bag.Items())
	}
}

func TestProcessUsesCache(t *testing.T) {
	c, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Cache = c

	fs := source.NewFileSet()
	p := New(fs, opts)
	in := []byte("std::pair<A, B> Foo<x")
	first := p.Process(context.Background(), fs.AddVirtual("a", in))
	if first.Cached {
		t.Fatal("first run came from cache")
	}
	second := p.Process(context.Background(), fs.AddVirtual("b", in))
	if !second.Cached {
		t.Fatal("second run missed the cache")
	}
	if second.Output != first.Output || second.Passes != first.Passes {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if diff := cmp.Diff(first.Hits, second.Hits); diff != "" {
		t.Errorf("hits mismatch (-first +second):\n%s", diff)
	}
	if second.Bag.Len() != 1 || second.Bag.Items()[0].Primary.File != second.Rewritten {
		t.Errorf("cached diagnostics not rebound: %+v", second.Bag.Items())
	}

	opts.MinParams = 1
	other := New(fs, opts).Process(context.Background(), fs.AddVirtual("c", in))
	if other.Cached {
		t.Error("different options hit the same cache entry")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.log")
	if err := os.WriteFile(path, []byte("Foo<A>\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	ids, err := Load(fs, []string{path, "-"}, strings.NewReader("from stdin"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids", len(ids))
	}
	if got := string(fs.Get(ids[0]).Content); got != "Foo<A>\n" {
		t.Errorf("file content = %q", got)
	}
	if got := fs.Get(ids[1]).Path; got != source.StdinName {
		t.Errorf("stdin path = %q", got)
	}

	if _, err := Load(source.NewFileSet(), []string{"-", "-"}, strings.NewReader("")); err == nil {
		t.Error("expected error for repeated stdin")
	}
	if _, err := Load(source.NewFileSet(), []string{filepath.Join(dir, "missing")}, nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProcessAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := source.NewFileSet()
	ids := loadVirtual(t, fs, "a", "b")
	if _, err := New(fs, DefaultOptions()).ProcessAll(ctx, ids); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProcessAllReportsProgress(t *testing.T) {
	fs := source.NewFileSet()
	ids := loadVirtual(t, fs, "std::pair<a, b>", "plain")

	events := make(chan Event, 64)
	opts := DefaultOptions()
	opts.Progress = ChannelSink{Ch: events}
	if _, err := New(fs, opts).ProcessAll(context.Background(), ids); err != nil {
		t.Fatal(err)
	}
	close(events)

	queued, done := map[int]bool{}, map[int]bool{}
	for ev := range events {
		switch ev.Status {
		case StatusQueued:
			queued[ev.Index] = true
		case StatusDone:
			done[ev.Index] = true
		}
	}
	for i := range ids {
		if !queued[i] || !done[i] {
			t.Errorf("input %d: queued=%v done=%v", i, queued[i], done[i])
		}
	}
}
