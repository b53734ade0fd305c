package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathMode selects how input paths appear in diagnostics.
type PathMode uint8

const (
	// PathRelative shows paths relative to the working directory, falling
	// back to absolute form for paths outside it.
	PathRelative PathMode = iota
	PathAbsolute
	PathBasename
	// PathAuto keeps short or relative paths and shortens long absolute
	// ones to their base name.
	PathAuto
)

// autoPathLimit is the length above which PathAuto shortens absolute paths.
const autoPathLimit = 40

func (m PathMode) String() string {
	switch m {
	case PathRelative:
		return "relative"
	case PathAbsolute:
		return "absolute"
	case PathBasename:
		return "basename"
	case PathAuto:
		return "auto"
	default:
		return fmt.Sprintf("PathMode(%d)", m)
	}
}

// ParsePathMode parses the --path-mode value.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relative":
		return PathRelative, nil
	case "absolute", "abs":
		return PathAbsolute, nil
	case "basename", "base":
		return PathBasename, nil
	case "auto":
		return PathAuto, nil
	default:
		return PathRelative, fmt.Errorf("unknown path mode %q (want relative, absolute, basename or auto)", s)
	}
}

// FormatPath renders the input path according to mode. Virtual inputs such
// as standard input are always shown as-is.
func (f *File) FormatPath(mode PathMode) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		wd, err := os.Getwd()
		if err != nil {
			return f.Path
		}
		if rel, err := RelativePath(f.Path, wd); err == nil {
			return rel
		}
	case PathBasename:
		return BaseName(f.Path)
	case PathAuto:
		if len(f.Path) > autoPathLimit && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
