package resolve

// Sink receives progress events while the pipeline works through its steps.
// Calls arrive on the goroutine running Resolve; implementations that touch
// UI state must hand off to their own event loop.
type Sink interface {
	// StepStarted fires before a step runs. Detail is presentation-ready
	// narration and may be empty.
	StepStarted(step, detail string)
	// StepFailed fires after a step fails, carrying its user-facing message.
	StepFailed(step, message string)
	// Resolved fires once per request with the final result.
	Resolved(result Result)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) StepStarted(string, string) {}

func (NopSink) StepFailed(string, string) {}

func (NopSink) Resolved(Result) {}
