package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koscakluka/fable-core/core/events"
	"github.com/koscakluka/fable-core/core/pipeline"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// StartTurn sends the user's text and ingests the resulting stream until the
// turn reaches a terminal status. Any turn already in flight is cancelled
// first; its session applies no further state mutation once superseded.
//
// All stream and transport failures are converted into conversation state
// before StartTurn returns; the returned error mirrors a Failed terminal
// status for callers that want it, and is nil on completion or cancellation.
func (c *Conversation) StartTurn(ctx context.Context, content string) error {
	ctx, span := tracer.Start(ctx, "start turn")
	defer span.End()
	span.SetAttributes(attribute.String("turn.session_id", c.sessionID))

	if c.client == nil {
		return ErrClientMissing
	}

	streamCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	emitted := c.supersedeLocked()
	now := time.Now()
	userMessage := Message{ID: uuid.NewString(), Role: MessageRoleUser, Content: content, CreatedAt: now}
	assistantMessage := Message{ID: provisionalMessageID(), Role: MessageRoleAssistant, CreatedAt: now}
	c.messages = append(c.messages, userMessage, assistantMessage)
	session := newTurnSession(assistantMessage.ID, cancel)
	c.active = session
	emitted = append(emitted,
		events.NewMessageAdded(userMessage.ID, string(userMessage.Role), userMessage.Content),
		events.NewMessageAdded(assistantMessage.ID, string(assistantMessage.Role), ""),
	)
	c.record(emitted...)
	c.mu.Unlock()

	c.notify(emitted...)

	var stream *pipeline.Stream
	if c.stagedPipeline {
		stream = c.client.StreamTurn(streamCtx, pipeline.TurnRequest{
			Content:      content,
			SessionID:    c.sessionID,
			CharacterID:  c.characterID,
			WorldbookIDs: c.worldbookIDs,
		})
	} else {
		stream = c.client.StreamMessage(streamCtx, c.sessionID, content)
	}

	return c.consume(streamCtx, session, stream)
}

// Regenerate replaces an existing assistant message: the message list is
// truncated to just before the target, a fresh provisional message takes its
// slot, and a regeneration stream is ingested under the same reconciliation
// rules. Any in-flight turn is cancelled first.
func (c *Conversation) Regenerate(ctx context.Context, messageID string) error {
	ctx, span := tracer.Start(ctx, "regenerate turn")
	defer span.End()
	span.SetAttributes(attribute.String("turn.target_message_id", messageID))

	if c.client == nil {
		return ErrClientMissing
	}

	streamCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	emitted := c.supersedeLocked()
	// Truncate to just before the target when it is known locally; the
	// server owns history, so an unknown id still gets a fresh slot at the
	// end of the list.
	for i, message := range c.messages {
		if message.ID == messageID {
			c.messages = c.messages[:i]
			break
		}
	}
	assistantMessage := Message{ID: provisionalMessageID(), Role: MessageRoleAssistant, CreatedAt: time.Now()}
	c.messages = append(c.messages, assistantMessage)
	session := newTurnSession(assistantMessage.ID, cancel)
	c.active = session
	emitted = append(emitted, events.NewMessageAdded(assistantMessage.ID, string(MessageRoleAssistant), ""))
	c.record(emitted...)
	c.mu.Unlock()

	c.notify(emitted...)

	stream := c.client.StreamRegenerate(streamCtx, c.sessionID, messageID)
	return c.consume(streamCtx, session, stream)
}

// CancelTurn cancels the in-flight turn, if any. The session is marked
// terminal under the conversation lock before the stream context is
// cancelled, so no buffered record can mutate state afterwards. The message
// keeps whatever partial state it had; cancellation is not an error.
func (c *Conversation) CancelTurn() {
	c.mu.Lock()
	emitted := c.supersedeLocked()
	c.record(emitted...)
	c.mu.Unlock()

	c.notify(emitted...)
}

// supersedeLocked cancels the current session, if any. Caller must hold the
// mutex; a turn start must cancel the prior session in the same critical
// section that installs its replacement, otherwise two racing starts could
// both pass cancellation and leave two sessions streaming.
func (c *Conversation) supersedeLocked() []events.Event {
	session := c.active
	if session == nil || session.status.Terminal() {
		return nil
	}

	session.status = TurnStatusCancelled
	session.cancel()
	c.active = nil

	return []events.Event{events.NewTurnCancelled(session.messageID)}
}

// consume is the single sequential ingestion loop of one turn session. The
// only suspension point is awaiting the next stream record; every record is
// applied synchronously, in arrival order.
func (c *Conversation) consume(ctx context.Context, session *turnSession, stream *pipeline.Stream) error {
	ctx, span := tracer.Start(ctx, "consume turn stream")
	defer span.End()
	defer session.cancel()

	for envelope, err := range stream.Envelopes(ctx) {
		if err != nil {
			if c.sessionStatus(session) == TurnStatusCancelled {
				return nil
			}

			err = fmt.Errorf("turn stream failed: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.failTurn(session, err.Error())
			return err
		}

		if !c.applyEnvelope(session, envelope) {
			break
		}
	}

	// A stream that ends cleanly without an in-band completion record is
	// treated as completed; truncation mid-record surfaces as a read error
	// above, not here.
	c.completeTurn(session)

	return c.terminalErr(session)
}

func (c *Conversation) sessionStatus(session *turnSession) TurnStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return session.status
}

// terminalErr mirrors a Failed status as a returned error. Completion and
// cancellation are not errors.
func (c *Conversation) terminalErr(session *turnSession) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if session.status == TurnStatusFailed && session.err != nil {
		return session.err
	}
	return nil
}
