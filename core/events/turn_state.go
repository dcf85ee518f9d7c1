package events

const (
	// KindRunStarted identifies the producer opening a pipeline run.
	KindRunStarted Kind = "turn_state.run_started"
	// KindRunCompleted identifies the producer finishing a pipeline run.
	KindRunCompleted Kind = "turn_state.run_completed"
	// KindTurnStarted identifies a turn session starting to stream.
	KindTurnStarted Kind = "turn_state.started"
	// KindTurnCompleted identifies normal turn completion.
	KindTurnCompleted Kind = "turn_state.completed"
	// KindTurnFailed identifies turn failure.
	KindTurnFailed Kind = "turn_state.failed"
	// KindTurnCancelled identifies turn cancellation.
	KindTurnCancelled Kind = "turn_state.cancelled"
)

// RunStarted marks the producer opening a pipeline run for the turn.
type RunStarted struct {
	Base
	RunID string
}

// NewRunStarted creates a run started event.
func NewRunStarted(runID string) RunStarted {
	return RunStarted{Base: NewBase(KindRunStarted), RunID: runID}
}

// RunCompleted marks the producer finishing a pipeline run. Turn completion
// itself is signaled separately by TurnCompleted.
type RunCompleted struct {
	Base
	RunID string
}

// NewRunCompleted creates a run completed event.
func NewRunCompleted(runID string) RunCompleted {
	return RunCompleted{Base: NewBase(KindRunCompleted), RunID: runID}
}

// TurnStarted marks a turn session receiving its first stream record.
type TurnStarted struct {
	Base
	MessageID string
}

// NewTurnStarted creates a turn started event.
func NewTurnStarted(messageID string) TurnStarted {
	return TurnStarted{Base: NewBase(KindTurnStarted), MessageID: messageID}
}

// TurnCompleted marks normal completion of a turn.
type TurnCompleted struct {
	Base
	MessageID string
}

// NewTurnCompleted creates a turn completed event.
func NewTurnCompleted(messageID string) TurnCompleted {
	return TurnCompleted{Base: NewBase(KindTurnCompleted), MessageID: messageID}
}

// TurnFailed marks turn failure. Reason carries the user-visible error text.
type TurnFailed struct {
	Base
	MessageID string
	Reason    string
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(messageID string, reason string) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), MessageID: messageID, Reason: reason}
}

// TurnCancelled marks cancellation of a turn, whether explicit or by
// supersession. Cancellation is not an error.
type TurnCancelled struct {
	Base
	MessageID string
}

// NewTurnCancelled creates a turn cancelled event.
func NewTurnCancelled(messageID string) TurnCancelled {
	return TurnCancelled{Base: NewBase(KindTurnCancelled), MessageID: messageID}
}
