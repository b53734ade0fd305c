package driver

import "time"

// Stage describes one step of the per-input pipeline.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageRewrite   Stage = "rewrite"
	StageFormat    Stage = "format"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress of one input. Index is the input's position in the
// ids passed to ProcessAll.
type Event struct {
	Index   int
	Path    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from concurrent pipelines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
