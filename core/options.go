package chat

import (
	"github.com/koscakluka/fable-core/core/events"
)

type ConversationOption func(*Conversation)

// WithCharacter sets the active character for outbound turn requests.
func WithCharacter(characterID string) ConversationOption {
	return func(c *Conversation) {
		c.characterID = characterID
	}
}

// WithWorldbooks sets the auxiliary-knowledge identifiers sent with every
// turn request.
func WithWorldbooks(worldbookIDs ...string) ConversationOption {
	return func(c *Conversation) {
		c.worldbookIDs = append([]string(nil), worldbookIDs...)
	}
}

// WithoutStagedPipeline routes turns through the plain chat endpoint instead
// of the multi-stage generation pipeline. The stream then carries only
// content deltas, the assigned message id, completion and failure.
func WithoutStagedPipeline() ConversationOption {
	return func(c *Conversation) {
		c.stagedPipeline = false
	}
}

type conversationCallbacks struct {
	onMessageAdded       func(messageID string, role string, content string)
	onContentSegment     func(messageID string, segment string)
	onContentReplaced    func(messageID string, content string)
	onMessageIDAssigned  func(previousID string, messageID string)
	onStageChanged       func(stage string)
	onStageOutputSegment func(stage string, segment string)
	onStageOutputFinal   func(stage string, output string)
	onImage              func(messageID string, url string, prompt string)
	onAudio              func(messageID string, clips []AudioClip)
	onTurnCompleted      func(messageID string)
	onTurnFailed         func(messageID string, reason string)
	onCancellation       func(messageID string)
	onEvent              func(events.Event)
}

// WithMessageAddedCallback registers a callback for messages entering the
// conversation (the user message and the provisional assistant message).
func WithMessageAddedCallback(callback func(messageID string, role string, content string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onMessageAdded = callback
	}
}

// WithContentSegmentCallback registers a callback for streamed message text
// deltas, in arrival order.
func WithContentSegmentCallback(callback func(messageID string, segment string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onContentSegment = callback
	}
}

// WithContentReplacedCallback registers a callback for wholesale content
// replacement by the server-side post-processing pass.
func WithContentReplacedCallback(callback func(messageID string, content string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onContentReplaced = callback
	}
}

// WithMessageIDAssignedCallback registers a callback for the provisional to
// canonical message id rewrite.
func WithMessageIDAssignedCallback(callback func(previousID string, messageID string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onMessageIDAssigned = callback
	}
}

// WithStageChangedCallback registers a callback for pipeline stage changes.
func WithStageChangedCallback(callback func(stage string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onStageChanged = callback
	}
}

// WithStageOutputSegmentCallback registers a callback for side-channel
// accumulator deltas (the outline and image-prompt previews).
func WithStageOutputSegmentCallback(callback func(stage string, segment string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onStageOutputSegment = callback
	}
}

// WithStageOutputFinalCallback registers a callback for a stage's completed
// side-channel payload.
func WithStageOutputFinalCallback(callback func(stage string, output string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onStageOutputFinal = callback
	}
}

// WithImageCallback registers a callback for rendered images attached to the
// in-flight message.
func WithImageCallback(callback func(messageID string, url string, prompt string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onImage = callback
	}
}

// WithAudioCallback registers a callback for synthesized speech clips
// attached to the in-flight message.
func WithAudioCallback(callback func(messageID string, clips []AudioClip)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onAudio = callback
	}
}

// WithTurnCompletedCallback registers a callback for normal turn completion.
func WithTurnCompletedCallback(callback func(messageID string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onTurnCompleted = callback
	}
}

// WithTurnFailedCallback registers a callback for turn failure. The reason
// is the user-visible error text.
func WithTurnFailedCallback(callback func(messageID string, reason string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onTurnFailed = callback
	}
}

// WithCancellationCallback registers a callback for turn cancellation,
// whether explicit or by supersession.
func WithCancellationCallback(callback func(messageID string)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onCancellation = callback
	}
}

// WithEventCallback registers a callback receiving every emitted event,
// after the kind-specific callbacks.
func WithEventCallback(callback func(events.Event)) ConversationOption {
	return func(c *Conversation) {
		c.callbacks.onEvent = callback
	}
}
