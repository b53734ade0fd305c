package source

import (
	"fmt"
	"io"
	"os"
	"sync"

	"fortio.org/safecast"
)

// StdinName is the display path used for input read from standard input.
const StdinName = "<stdin>"

// FileSet manages the inputs of one invocation and resolves byte offsets into
// line/column positions.
//
// A FileSet is safe for concurrent use: pipelines running in parallel
// register their derived buffers while others resolve spans. File values are
// never modified after Add.
type FileSet struct {
	mu    sync.RWMutex
	files []File
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make([]File, 0, 4)}
}

// Len reports how many buffers the set holds.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Add stores content, computes LineIdx and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	return fileSet.add(path, content, flags, noOrigin)
}

func (fileSet *FileSet) add(path string, content []byte, flags FileFlags, origin FileID) FileID {
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	if origin == noOrigin {
		origin = id
	}
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Origin:  origin,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.addNormalized(path, content, 0), nil
}

// LoadReader reads r to the end and adds it as a virtual input named name.
// It is used for standard input.
func (fileSet *FileSet) LoadReader(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	return fileSet.addNormalized(name, content, FileVirtual), nil
}

func (fileSet *FileSet) addNormalized(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds a virtual buffer (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// AddDerived registers a buffer computed from the input id, keeping its path.
// Spans reported while processing the derived text resolve against it, and
// its Origin points back at the input it was read from.
func (fileSet *FileSet) AddDerived(id FileID, content []byte) FileID {
	orig := fileSet.Get(id)
	return fileSet.add(orig.Path, content, orig.Flags|FileDerived, orig.Origin)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return &fileSet.files[id]
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}
