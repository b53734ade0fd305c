package format

import (
	"tmplfmt/internal/diag"
	"tmplfmt/internal/source"
)

const (
	// DefaultMinParams is the threshold used by the command line.
	DefaultMinParams = 5
	// DefaultIndent is one indentation level.
	DefaultIndent = "  "
)

// Options controls Format.
type Options struct {
	// MinParams is the parameter count at which a list is broken across lines.
	// Zero breaks every list.
	MinParams int
	// Indent is written once per nesting level; empty means DefaultIndent.
	Indent string
	// Reporter receives warnings about unbalanced brackets. May be nil.
	Reporter diag.Reporter
	// File is the buffer spans are reported against.
	File source.FileID
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	return o
}
