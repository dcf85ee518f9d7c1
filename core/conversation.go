package chat

import (
	"errors"
	"slices"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/koscakluka/fable-core/core/events"
	"github.com/koscakluka/fable-core/core/pipeline"
)

var ErrClientMissing = errors.New("pipeline client is required")

// Conversation is the single conceptual timeline of one chat session: its
// message list, image gallery, and at most one in-flight turn session.
//
// Turn ingestion is a single sequential consumer; configuration reads and
// snapshots may happen concurrently and observe consistent copies.
type Conversation struct {
	mu sync.RWMutex

	sessionID    string
	characterID  string
	worldbookIDs []string

	// stagedPipeline selects the full multi-stage generation path; when
	// disabled, turns go through the plain chat endpoint with its narrower
	// record vocabulary.
	stagedPipeline bool

	client *pipeline.Client

	messages []Message
	gallery  []ImageRef
	active   *turnSession

	log       *events.Log
	callbacks conversationCallbacks
	emitter   eventEmitter
}

func NewConversation(client *pipeline.Client, sessionID string, opts ...ConversationOption) *Conversation {
	conversation := &Conversation{
		sessionID:      sessionID,
		stagedPipeline: true,
		client:         client,
		log:            events.NewLog(),
	}
	for _, opt := range opts {
		opt(conversation)
	}
	conversation.emitter = newCallbackEventEmitter(conversation.callbacks)

	return conversation
}

// ConversationSnapshot is a point-in-time view of conversation state.
type ConversationSnapshot struct {
	SessionID  string
	Messages   []Message
	Gallery    []ImageRef
	ActiveTurn *TurnSnapshot
}

func (c *Conversation) Snapshot() ConversationSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := ConversationSnapshot{
		SessionID: c.sessionID,
		Messages:  c.copyMessages(),
		Gallery:   slices.Clone(c.gallery),
	}
	if c.active != nil {
		turn := c.active.snapshot()
		snapshot.ActiveTurn = &turn
	}

	return snapshot
}

// History returns a deep copy of the message list.
func (c *Conversation) History() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.copyMessages()
}

// ActiveTurn returns a snapshot of the in-flight turn session, or nil when
// no turn is active.
func (c *Conversation) ActiveTurn() *TurnSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.active == nil {
		return nil
	}

	snapshot := c.active.snapshot()
	return &snapshot
}

// StageOutput returns the side-channel accumulator for a named stage, if the
// active turn has opened one.
func (c *Conversation) StageOutput(stage string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.active == nil {
		return "", false
	}

	output, ok := c.active.accumulators[stage]
	return output, ok
}

// Gallery returns the rendered images collected across turns.
func (c *Conversation) Gallery() []ImageRef {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.gallery)
}

// Events returns the append-only, replayable notification log.
func (c *Conversation) Events() *events.Log {
	return c.log
}

func (c *Conversation) copyMessages() []Message {
	messages := make([]Message, 0, len(c.messages))
	if err := copier.CopyWithOption(&messages, &c.messages, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on invalid to/from kinds, which cannot happen
		// for two slices of the same type; fall back to a shallow copy.
		messages = slices.Clone(c.messages)
	}
	return messages
}

// messageByID finds a message, scanning from the newest since streaming
// always targets the tail of the list. Caller must hold the mutex.
func (c *Conversation) messageByID(messageID string) *Message {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == messageID {
			return &c.messages[i]
		}
	}
	return nil
}

// record appends events to the replay log. Caller must hold the mutex, so
// log order always matches the order state mutations were applied, even when
// sessions race.
func (c *Conversation) record(emitted ...events.Event) {
	for _, event := range emitted {
		c.log.Append(event)
	}
}

// notify forwards already-recorded events to the registered callbacks. Must
// be called without the mutex held; callbacks may call back into the
// conversation.
func (c *Conversation) notify(emitted ...events.Event) {
	for _, event := range emitted {
		if c.emitter != nil {
			c.emitter(event)
		}
		if c.callbacks.onEvent != nil {
			c.callbacks.onEvent(event)
		}
	}
}
