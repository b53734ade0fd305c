// Package observ measures the wall time of pipeline stages.
package observ

import (
	"fmt"
	"time"
)

// Sample is the accumulated time of one stage.
type Sample struct {
	Stage string
	Dur   time.Duration
	Runs  int
	Note  string // note of the latest run
}

// Stages accumulates stage timings for one input, or for a whole run when
// merged with Add. A stage that runs twice adds up under one sample. The
// zero value is ready to use; a nil *Stages records nothing. Not safe for
// concurrent use.
type Stages struct {
	samples []Sample
}

// Start begins timing stage. The returned func stops the clock and records
// note; it must be called once.
func (s *Stages) Start(stage string) func(note string) {
	if s == nil {
		return func(string) {}
	}
	began := time.Now()
	return func(note string) {
		s.record(stage, time.Since(began), 1, note)
	}
}

func (s *Stages) record(stage string, d time.Duration, runs int, note string) {
	for i := range s.samples {
		if s.samples[i].Stage == stage {
			s.samples[i].Dur += d
			s.samples[i].Runs += runs
			if note != "" {
				s.samples[i].Note = note
			}
			return
		}
	}
	s.samples = append(s.samples, Sample{Stage: stage, Dur: d, Runs: runs, Note: note})
}

// Add merges other into s. Notes are not carried over.
func (s *Stages) Add(other *Stages) {
	if s == nil || other == nil {
		return
	}
	for _, smp := range other.samples {
		s.record(smp.Stage, smp.Dur, smp.Runs, "")
	}
}

// Samples returns the stages in the order they first ran.
func (s *Stages) Samples() []Sample {
	if s == nil {
		return nil
	}
	return append([]Sample(nil), s.samples...)
}

// Total is the sum over all stages.
func (s *Stages) Total() time.Duration {
	var total time.Duration
	if s == nil {
		return total
	}
	for _, smp := range s.samples {
		total += smp.Dur
	}
	return total
}

// Millis renders d as milliseconds with two decimals.
func Millis(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d)/float64(time.Millisecond))
}
