package driver

import (
	"fmt"
	"runtime"
	"strings"

	"tmplfmt/internal/cache"
	"tmplfmt/internal/format"
	"tmplfmt/internal/rewrite"
)

// Options configures a Pipeline.
type Options struct {
	MinParams      int
	Indent         string
	Rewrite        bool
	MaxPasses      int
	PreserveLines  bool
	Table          *rewrite.Table   // nil means the built-in table
	Literals       []rewrite.Literal // nil means the built-in literals
	MaxDiagnostics int
	Jobs           int          // 0 means GOMAXPROCS
	Cache          *cache.Cache // nil disables caching
	Progress       ProgressSink // nil drops progress events
}

// DefaultOptions returns the command line defaults.
func DefaultOptions() Options {
	return Options{
		MinParams:      format.DefaultMinParams,
		Indent:         format.DefaultIndent,
		Rewrite:        true,
		MaxPasses:      rewrite.DefaultMaxPasses,
		MaxDiagnostics: 100,
	}
}

func (o Options) withDefaults() Options {
	if o.Table == nil {
		o.Table = rewrite.DefaultTable()
	}
	if o.Literals == nil {
		o.Literals = rewrite.DefaultLiterals()
	}
	if o.MaxPasses <= 0 {
		o.MaxPasses = rewrite.DefaultMaxPasses
	}
	if o.Indent == "" {
		o.Indent = format.DefaultIndent
	}
	if o.Progress == nil {
		o.Progress = nopSink{}
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	return o
}

// Fingerprint identifies every option that changes the output of a pipeline.
func (o Options) Fingerprint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "k=%d;indent=%q;rewrite=%t;passes=%d;lines=%t", o.MinParams, o.Indent, o.Rewrite, o.MaxPasses, o.PreserveLines)
	if o.Rewrite {
		fmt.Fprintf(&sb, ";table=%s;lits=", o.Table.Fingerprint())
		for _, l := range o.Literals {
			fmt.Fprintf(&sb, "%q>%q,", l.From, l.To)
		}
	}
	return sb.String()
}
