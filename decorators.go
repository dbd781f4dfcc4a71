package metrics

// Decorators are thin function wrappers that record timing/count metrics
// around a call, grounded on the teacher's Timer.Time/Timer.Since
// (instruments.go), generalized to the new Histogram/Meter instruments per
// spec.md §9's design note ("Decorators: not part of the core; expressible
// as a thin wrapper...").

// TimeFunc runs f and records its elapsed time, in seconds, into h.
func TimeFunc(h *Histogram, f func()) {
	start := h.clk.Now()
	f()
	_ = h.Notify(h.clk.Now() - start)
}

// CountFunc runs f and marks one event on m; if f returns an error, no
// event is recorded and the error is returned unchanged.
func CountFunc(m *Meter, f func() error) error {
	if err := f(); err != nil {
		return err
	}
	return m.Notify(int64(1))
}
