package trace

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Format selects how events are serialized.
type Format uint8

const (
	FormatAuto   Format = iota // decided by the output path
	FormatText                 // indented, one event per line
	FormatNDJSON               // one JSON object per line
)

// formatForPath picks NDJSON for .ndjson and .jsonl files and text otherwise.
func formatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent serializes ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time   string `json:"time"`
	Seq    uint64 `json:"seq"`
	Kind   string `json:"kind"`
	Scope  string `json:"scope"`
	Span   uint64 `json:"span_id,omitempty"`
	Parent uint64 `json:"parent_id,omitempty"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
	Attrs  []Attr `json:"attrs,omitempty"`
}

func appendJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:   ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.SpanID,
		Parent: ev.ParentID,
		Name:   ev.Name,
		Detail: ev.Detail,
		Attrs:  ev.Attrs,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// appendText renders "[seq] <indent><marker> name (detail) k=v k=v".
// Indentation follows the scope, so passes nest under their stage.
func appendText(b []byte, ev *Event) []byte {
	b = append(b, '[')
	seq := strconv.FormatUint(ev.Seq, 10)
	for i := len(seq); i < 6; i++ {
		b = append(b, ' ')
	}
	b = append(b, seq...)
	b = append(b, "] "...)
	for i := Scope(1); i < ev.Scope; i++ {
		b = append(b, "  "...)
	}

	switch ev.Kind {
	case KindSpanBegin:
		b = append(b, "→ "...)
	case KindSpanEnd:
		b = append(b, "← "...)
	case KindPoint:
		b = append(b, "• "...)
	}
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	for _, a := range ev.Attrs {
		b = append(b, ' ')
		b = append(b, a.Key...)
		b = append(b, '=')
		b = append(b, a.Value...)
	}
	return append(b, '\n')
}
