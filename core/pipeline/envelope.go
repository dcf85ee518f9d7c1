package pipeline

import (
	"time"
)

// Record type literals emitted by the generation service. These are an
// external contract with the producer and must match it exactly.
const (
	TypeStage            = "stage"
	TypeDirectorChunk    = "director_chunk"
	TypePaintChunk       = "paint_chunk"
	TypeOutline          = "outline"
	TypeContent          = "content"
	TypeImage            = "image"
	TypeAudio            = "audio"
	TypeProcessedContent = "processed_content"
	TypeError            = "error"
	TypeStageComplete    = "stage_complete"
	TypeStageSkipped     = "stage_skipped"
	TypeRunStarted       = "run_started"
	TypeRunComplete      = "run_complete"
)

// Pipeline stage names as named by the producer.
const (
	StageDirector      = "director"
	StageWriter        = "writer"
	StagePaintDirector = "paint_director"
	StageTTS           = "tts"
)

// SideChannelStage reports whether a stage keeps a side-channel display of
// its own (the outline and image-prompt previews), separate from the primary
// message content.
func SideChannelStage(stage string) bool {
	return stage == StageDirector || stage == StagePaintDirector
}

// AudioClip is one synthesized speech result for a dialogue line.
type AudioClip struct {
	Speaker string `json:"character"`
	Emotion string `json:"emotion,omitempty"`
	URL     string `json:"audio_url"`
}

// Envelope is one decoded stream record. All fields are optional; dispatch is
// presence-driven. A single record may expose several facets at once (an
// `image` record carries both the finished prompt and the rendered URL, a
// `done` record may embed the post-processed content), so facets are exposed
// individually instead of collapsing the record into a single kind.
type Envelope struct {
	Type             string      `json:"type,omitempty"`
	Stage            string      `json:"stage,omitempty"`
	Content          string      `json:"content,omitempty"`
	Prompt           string      `json:"prompt,omitempty"`
	URL              string      `json:"url,omitempty"`
	MessageID        string      `json:"message_id,omitempty"`
	Done             bool        `json:"done,omitempty"`
	ProcessedContent string      `json:"processed_content,omitempty"`
	Error            string      `json:"error,omitempty"`
	Message          string      `json:"message,omitempty"`
	Data             []AudioClip `json:"data,omitempty"`
	RunID            string      `json:"run_id,omitempty"`
	DurationMs       int64       `json:"duration_ms,omitempty"`
	Reason           string      `json:"reason,omitempty"`
}

// StageChange reports the stage the pipeline is entering.
func (e Envelope) StageChange() (string, bool) {
	return e.Stage, e.Type == TypeStage && e.Stage != ""
}

// StageChunk reports a stage-scoped partial-text delta for a side-channel
// accumulator. Chunk records never touch the primary message; callers should
// stop processing the record once a chunk facet is present.
func (e Envelope) StageChunk() (stage string, segment string, ok bool) {
	switch e.Type {
	case TypeDirectorChunk:
		return StageDirector, e.Content, true
	case TypePaintChunk:
		return StagePaintDirector, e.Content, true
	}
	return "", "", false
}

// StageFinal reports a stage's completed payload, replacing whatever the
// accumulator holds. The same record may also carry an image URL.
func (e Envelope) StageFinal() (stage string, output string, ok bool) {
	switch e.Type {
	case TypeOutline:
		return StageDirector, e.Content, true
	case TypeImage:
		return StagePaintDirector, e.Prompt, true
	}
	return "", "", false
}

// ContentSegment reports a text delta destined for the primary message.
// Untyped records are the plain chat path, which streams bare
// content+message_id pairs.
func (e Envelope) ContentSegment() (string, bool) {
	if e.Content == "" {
		return "", false
	}
	return e.Content, e.Type == TypeContent || e.Type == ""
}

// Image reports a rendered image reference attached to the current message.
func (e Envelope) Image() (url string, prompt string, ok bool) {
	return e.URL, e.Prompt, e.URL != ""
}

// AudioClips reports synthesized speech results for the current message.
func (e Envelope) AudioClips() []AudioClip {
	if e.Type != TypeAudio {
		return nil
	}
	return e.Data
}

// PostProcessed reports a wholesale replacement for the message content, the
// result of the server-side post-processing pass. It may arrive as its own
// record or embedded in the completion record; either way it overrides any
// partial content accumulated so far.
func (e Envelope) PostProcessed() (string, bool) {
	if e.Type == TypeProcessedContent && e.Content != "" {
		return e.Content, true
	}
	if e.Done && e.ProcessedContent != "" {
		return e.ProcessedContent, true
	}
	return "", false
}

// AssignedMessageID reports the server-side id for the in-flight message.
func (e Envelope) AssignedMessageID() (string, bool) {
	return e.MessageID, e.MessageID != ""
}

// IsDone reports the in-band completion marker.
func (e Envelope) IsDone() bool {
	return e.Done
}

// Failure reports a server-signaled error. The text is shown to the user
// verbatim. Stage-scoped error records carry the text in the message field.
func (e Envelope) Failure() (string, bool) {
	if e.Error != "" {
		return e.Error, true
	}
	if e.Type == TypeError && e.Message != "" {
		return e.Message, true
	}
	return "", false
}

// StageCompleted reports that a stage finished, with its duration.
func (e Envelope) StageCompleted() (stage string, duration time.Duration, ok bool) {
	if e.Type != TypeStageComplete {
		return "", 0, false
	}
	return e.Stage, time.Duration(e.DurationMs) * time.Millisecond, true
}

// StageSkipped reports that a stage was skipped, with the producer's reason.
func (e Envelope) StageSkipped() (stage string, reason string, ok bool) {
	if e.Type != TypeStageSkipped {
		return "", "", false
	}
	return e.Stage, e.Reason, true
}

// RunStarted reports the pipeline run id, when the producer assigns one.
func (e Envelope) RunStarted() (string, bool) {
	return e.RunID, e.Type == TypeRunStarted && e.RunID != ""
}

// RunCompleted reports that the pipeline run finished. This is a lifecycle
// notification only; completion of the turn itself is signaled by Done.
func (e Envelope) RunCompleted() (string, bool) {
	return e.RunID, e.Type == TypeRunComplete
}
