package diag

// Reporter receives diagnostics from a stage. Stages hold a Reporter in their
// options and must treat a nil one as "do not report".
type Reporter interface {
	Report(d Diagnostic)
}

// Emit hands d to r unless r is nil.
func Emit(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d)
	}
}

// BagReporter складывает диагностики в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
