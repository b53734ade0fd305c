package ui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"tmplfmt/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("tmplfmt", []string{"a.log", "b.log"}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{Index: 0, Stage: driver.StageRewrite, Status: driver.StatusWorking}))
	m.Update(eventMsg(driver.Event{Index: 1, Stage: driver.StageFormat, Status: driver.StatusDone, Elapsed: 1500 * time.Microsecond}))
	m.Update(eventMsg(driver.Event{Index: 7, Status: driver.StatusDone}))

	if m.items[0].status != "rewriting" || m.items[1].status != "done" {
		t.Fatalf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if got := m.percent(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("percent = %v, want 0.7", got)
	}
	view := stripStyles(m.View())
	if !strings.Contains(view, "(1/2)") || !strings.Contains(view, "2ms") {
		t.Errorf("view missing counter or elapsed time:\n%s", view)
	}

	m.Update(eventMsg(driver.Event{Index: 0, Stage: driver.StageRewrite, Status: driver.StatusError, Err: errors.New("no fixpoint")}))
	if !strings.Contains(stripStyles(m.View()), "no fixpoint") {
		t.Errorf("view missing error:\n%s", m.View())
	}

	m.Update(doneMsg{})
	if !strings.HasPrefix(stripStyles(m.View()), "done: tmplfmt") {
		t.Errorf("view after done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a/very/long/path.log", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

// stripStyles drops ANSI sequences lipgloss may emit.
func stripStyles(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
