package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserRegistered()     {}
func (n *NoopRecorder) IncLogin(status string) {}
func (n *NoopRecorder) IncAuthFailure(string)  {}
func (n *NoopRecorder) IncRateLimited()        {}
func (n *NoopRecorder) IncIdentityCacheHit()   {}
func (n *NoopRecorder) IncIdentityCacheMiss()  {}
func (n *NoopRecorder) IncNoteCreated()        {}
func (n *NoopRecorder) IncNoteUpdated()        {}
func (n *NoopRecorder) IncNoteCompleted()      {}
func (n *NoopRecorder) IncNoteDeleted()        {}
