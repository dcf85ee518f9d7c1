package chat

import (
	"context"

	"github.com/google/uuid"
)

// TurnStatus is the lifecycle state of a turn session.
//
// Pending -> Streaming -> Completed | Failed | Cancelled. Terminal
// transitions are one-way; a session never leaves a terminal status.
type TurnStatus string

const (
	TurnStatusPending   TurnStatus = "pending"
	TurnStatusStreaming TurnStatus = "streaming"
	TurnStatusCompleted TurnStatus = "completed"
	TurnStatusFailed    TurnStatus = "failed"
	TurnStatusCancelled TurnStatus = "cancelled"
)

func (s TurnStatus) Terminal() bool {
	return s == TurnStatusCompleted || s == TurnStatusFailed || s == TurnStatusCancelled
}

// turnSession owns one outstanding request/response cycle: the identity of
// the assistant message it writes into, the side-channel accumulators, and
// the cancel handle for the underlying stream. At most one session per
// conversation is non-terminal at a time; a newer turn supersedes it.
//
// All fields are guarded by the owning conversation's mutex.
type turnSession struct {
	id string

	provisionalID string
	messageID     string
	canonicalID   string

	stage        string
	runID        string
	accumulators map[string]string
	seenImages   map[string]struct{}

	status TurnStatus
	cancel context.CancelFunc
	err    error
}

func newTurnSession(messageID string, cancel context.CancelFunc) *turnSession {
	return &turnSession{
		id:            uuid.NewString(),
		provisionalID: messageID,
		messageID:     messageID,
		accumulators:  map[string]string{},
		seenImages:    map[string]struct{}{},
		status:        TurnStatusPending,
		cancel:        cancel,
	}
}

// TurnSnapshot is a point-in-time view of the active turn session.
type TurnSnapshot struct {
	MessageID    string
	CanonicalID  string
	Stage        string
	RunID        string
	Status       TurnStatus
	StageOutputs map[string]string
}

func (s *turnSession) snapshot() TurnSnapshot {
	outputs := make(map[string]string, len(s.accumulators))
	for stage, output := range s.accumulators {
		outputs[stage] = output
	}

	return TurnSnapshot{
		MessageID:    s.messageID,
		CanonicalID:  s.canonicalID,
		Stage:        s.stage,
		RunID:        s.runID,
		Status:       s.status,
		StageOutputs: outputs,
	}
}
