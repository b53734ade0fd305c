package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope orders events from coarse to fine. A Level admits every scope up to
// some bound, so the numeric order matters.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one invocation
	ScopeStage                   // normalize, rewrite or format of one input
	ScopePass                    // one fixpoint pass
	ScopeMatch                   // one pattern hit or decline
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeStage:
		return "stage"
	case ScopePass:
		return "pass"
	case ScopeMatch:
		return "match"
	}
	return "unknown"
}

// Attr is one key/value annotation. Attributes keep the order they were set in.
type Attr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// Event is the unit every tracer receives.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores or writes the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64
	Name     string // "rewrite", "pass", a pattern name, ...
	Detail   string
	Attrs    []Attr
}
