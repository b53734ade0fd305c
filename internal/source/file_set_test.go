package source

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("diag.txt", []byte("Foo<A>"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	if got := fs.Get(id1).Origin; got != id1 {
		t.Fatalf("input Origin = %d, want itself (%d)", got, id1)
	}

	id2 := fs.AddDerived(id1, []byte("Foo< A >"))
	if id2 != 1 {
		t.Errorf("Expected derived FileID to be 1, got %d", id2)
	}

	// Производный буфер от производного всё равно указывает на исходный ввод
	id3 := fs.AddDerived(id2, []byte("Foo<A>"))
	if got := fs.Get(id3).Origin; got != id1 {
		t.Errorf("Origin of second derivation = %d, want %d", got, id1)
	}

	if got := string(fs.Get(id1).Content); got != "Foo<A>" {
		t.Errorf("original content changed: %q", got)
	}
	derived := fs.Get(id2)
	if derived.Flags&FileDerived == 0 {
		t.Error("Expected FileDerived flag on derived buffer")
	}
	if derived.Path != "diag.txt" {
		t.Errorf("derived path = %q, want diag.txt", derived.Path)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.txt", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "err.log")
	content := []byte("\xEF\xBB\xBFerror: Foo<A,\r\nB>\r\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if got, want := string(file.Content), "error: Foo<A,\nB>\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", file.Flags)
	}
}

func TestLoadReader(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadReader(StdinName, strings.NewReader("Foo<int>\r\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "Foo<int>\n" {
		t.Errorf("content = %q", file.Content)
	}
	if file.Path != StdinName {
		t.Errorf("path = %q, want %q", file.Path, StdinName)
	}
	if got := file.FormatPath(PathAbsolute); got != StdinName {
		t.Errorf("FormatPath = %q, want %q", got, StdinName)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x", []byte("ab\ncd\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline belongs to the line it ends
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{8, LineCol{3, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileSetConcurrentAddDerived(t *testing.T) {
	fs := NewFileSet()
	base := fs.AddVirtual(StdinName, []byte("a  b"))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fs.AddDerived(base, []byte(strings.Repeat("x\n", i+1)))
			start, _ := fs.Resolve(SpanOf(id, 2*i, 2*i))
			if start.Line != uint32(i+1) {
				t.Errorf("derived %d: line %d", i, start.Line)
			}
		}()
	}
	wg.Wait()

	if fs.Len() != 17 {
		t.Errorf("Len = %d, want 17", fs.Len())
	}
}
