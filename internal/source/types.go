package source

type (
	// FileID uniquely identifies an input within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about an input.
	FileFlags uint8
)

const (
	// FileVirtual indicates the input did not come from disk (stdin, tests, normalized copies).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileDerived marks a buffer produced from another input (e.g. its whitespace-normalized form).
	FileDerived
)

// noOrigin is never a valid id: a set holds fewer than 1<<32-1 files.
const noOrigin = ^FileID(0)

// File captures metadata and content for a single input.
type File struct {
	ID      FileID
	Origin  FileID // the input this buffer derives from; ID itself for inputs
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in an input.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
