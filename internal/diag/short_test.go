package diag

import (
	"path/filepath"
	"testing"

	"tmplfmt/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	workspace := chdirTemp(t)
	fs := source.NewFileSet()

	logFile := fs.Add(filepath.Join(workspace, "logs", "build.log"), []byte("a\nFoo<A, B\n"), 0)
	stdin := fs.AddVirtual(source.StdinName, []byte("Bar<"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     ScanUnbalancedAngle,
			Message:  "no closing '>'\nfor this list",
			Primary:  source.Span{File: logFile, Start: 5, End: 6},
			Notes: []Note{
				{Span: source.Span{File: logFile, Start: 2, End: 3}, Msg: "list name"},
			},
		},
		{
			Severity: SevWarning,
			Code:     ScanUnbalancedAngle,
			Message:  "no closing '>'",
			Primary:  source.Span{File: stdin, Start: 3, End: 4},
		},
	}

	expected := "warning SCN1001 <stdin>:1:4 no closing '>'\n" +
		"note SCN1001 logs/build.log:2:1 list name\n" +
		"warning SCN1001 logs/build.log:2:4 no closing '>' for this list"

	if got := FormatShortDiagnostics(diags, fs, source.PathRelative, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	if got := FormatShortDiagnostics(nil, fs, source.PathRelative, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestFormatShortDiagnosticsPathModes(t *testing.T) {
	workspace := chdirTemp(t)
	fs := source.NewFileSet()
	logPath := filepath.Join(workspace, "ci", "nightly", "build.log")
	id := fs.Add(logPath, []byte("Foo<"), 0)
	diags := []Diagnostic{Warning(ScanUnbalancedAngle, source.Span{File: id, Start: 3, End: 4}, "no closing '>'")}

	cases := []struct {
		mode source.PathMode
		path string
	}{
		{source.PathRelative, "ci/nightly/build.log"},
		{source.PathAbsolute, filepath.ToSlash(logPath)},
		{source.PathBasename, "build.log"},
	}
	for _, tc := range cases {
		want := "warning SCN1001 " + tc.path + ":1:4 no closing '>'"
		if got := FormatShortDiagnostics(diags, fs, tc.mode, false); got != want {
			t.Errorf("%s: got %q, want %q", tc.mode, got, want)
		}
	}
}

// chdirTemp switches into a fresh directory for the rest of the test and
// returns its resolved path.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	return dir
}
