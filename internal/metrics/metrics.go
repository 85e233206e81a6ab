// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncLogin(status string) // status: "success" or "failure"

	// Request authentication metrics
	IncAuthFailure(reason string) // reason: "missing_token" or "invalid_token"
	IncRateLimited()

	// Identity cache metrics
	IncIdentityCacheHit()
	IncIdentityCacheMiss()

	// Note management metrics
	IncNoteCreated()
	IncNoteUpdated()
	IncNoteCompleted()
	IncNoteDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
