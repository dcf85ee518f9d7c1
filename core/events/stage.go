package events

import "time"

const (
	// KindStageChanged identifies the pipeline entering a named stage.
	KindStageChanged Kind = "stage.changed"
	// KindStageOutputSegment identifies side-channel accumulator deltas.
	KindStageOutputSegment Kind = "stage.output_segment"
	// KindStageOutputFinal identifies side-channel accumulator replacement.
	KindStageOutputFinal Kind = "stage.output_final"
	// KindStageCompleted identifies stage completion.
	KindStageCompleted Kind = "stage.completed"
	// KindStageSkipped identifies a stage skipped by the producer.
	KindStageSkipped Kind = "stage.skipped"
)

// StageChanged marks the pipeline entering a named stage.
type StageChanged struct {
	Base
	Stage string
}

// NewStageChanged creates a stage changed event.
func NewStageChanged(stage string) StageChanged {
	return StageChanged{Base: NewBase(KindStageChanged), Stage: stage}
}

// StageOutputSegment carries a delta appended to a stage's side-channel
// accumulator.
type StageOutputSegment struct {
	Base
	Stage   string
	Segment string
}

// NewStageOutputSegment creates a stage output segment event.
func NewStageOutputSegment(stage string, segment string) StageOutputSegment {
	return StageOutputSegment{Base: NewBase(KindStageOutputSegment), Stage: stage, Segment: segment}
}

// StageOutputFinal carries a stage's completed payload, replacing its
// accumulator wholesale.
type StageOutputFinal struct {
	Base
	Stage  string
	Output string
}

// NewStageOutputFinal creates a stage output final event.
func NewStageOutputFinal(stage string, output string) StageOutputFinal {
	return StageOutputFinal{Base: NewBase(KindStageOutputFinal), Stage: stage, Output: output}
}

// StageCompleted marks a finished stage.
type StageCompleted struct {
	Base
	Stage    string
	Duration time.Duration
}

// NewStageCompleted creates a stage completed event.
func NewStageCompleted(stage string, duration time.Duration) StageCompleted {
	return StageCompleted{Base: NewBase(KindStageCompleted), Stage: stage, Duration: duration}
}

// StageSkipped marks a stage the producer skipped.
type StageSkipped struct {
	Base
	Stage  string
	Reason string
}

// NewStageSkipped creates a stage skipped event.
func NewStageSkipped(stage string, reason string) StageSkipped {
	return StageSkipped{Base: NewBase(KindStageSkipped), Stage: stage, Reason: reason}
}
