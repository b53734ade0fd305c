package source

import (
	"fmt"

	"fortio.org/safecast"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// SpanOf builds a span from int offsets. Offsets that do not fit into
// uint32 are clamped to an empty span at zero.
func SpanOf(file FileID, start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{File: file}
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil || e < s {
		return Span{File: file, Start: s, End: s}
	}
	return Span{File: file, Start: s, End: e}
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
