package chat

import (
	"errors"
	"strings"

	"github.com/koscakluka/fable-core/core/events"
	"github.com/koscakluka/fable-core/core/pipeline"
)

// applyEnvelope reconciles one decoded stream record with conversation
// state. It returns false once the session is terminal, at which point the
// caller must stop applying records.
//
// A record may expose several facets at once; they are applied in the
// classifier's precedence order. Stage chunk records are exclusive: they
// mutate their accumulator and nothing else. State is mutated and the event
// log appended under the conversation lock; callbacks run after it is
// released, in application order.
func (c *Conversation) applyEnvelope(session *turnSession, envelope pipeline.Envelope) bool {
	c.mu.Lock()

	if session.status.Terminal() {
		c.mu.Unlock()
		return false
	}

	var emitted []events.Event
	if session.status == TurnStatusPending {
		session.status = TurnStatusStreaming
		emitted = append(emitted, events.NewTurnStarted(session.messageID))
	}

	if runID, ok := envelope.RunStarted(); ok {
		session.runID = runID
		emitted = append(emitted, events.NewRunStarted(runID))
	}
	if runID, ok := envelope.RunCompleted(); ok {
		emitted = append(emitted, events.NewRunCompleted(runID))
	}

	if stage, ok := envelope.StageChange(); ok {
		session.stage = stage
		if pipeline.SideChannelStage(stage) {
			session.accumulators[stage] = ""
		}
		emitted = append(emitted, events.NewStageChanged(stage))
	}

	if stage, segment, ok := envelope.StageChunk(); ok {
		session.accumulators[stage] += segment
		emitted = append(emitted, events.NewStageOutputSegment(stage, segment))
		c.record(emitted...)
		c.mu.Unlock()
		c.notify(emitted...)
		return true
	}

	if stage, output, ok := envelope.StageFinal(); ok {
		session.accumulators[stage] = output
		emitted = append(emitted, events.NewStageOutputFinal(stage, output))
	}

	if segment, ok := envelope.ContentSegment(); ok {
		if message := c.messageByID(session.messageID); message != nil {
			message.Content += segment
			emitted = append(emitted, events.NewMessageContentSegment(session.messageID, segment))
		}
	}

	if url, prompt, ok := envelope.Image(); ok {
		key := session.messageID + "\n" + url
		if _, seen := session.seenImages[key]; !seen {
			session.seenImages[key] = struct{}{}
			if message := c.messageByID(session.messageID); message != nil {
				message.ImageURL = url
				message.ImagePrompt = prompt
			}
			c.gallery = append(c.gallery, ImageRef{MessageID: session.messageID, URL: url, Prompt: prompt})
			emitted = append(emitted, events.NewImageAdded(session.messageID, url, prompt))
		}
	}

	if clips := envelope.AudioClips(); len(clips) > 0 {
		if message := c.messageByID(session.messageID); message != nil {
			eventClips := make([]events.AudioClip, 0, len(clips))
			for _, clip := range clips {
				message.AudioClips = append(message.AudioClips, AudioClip{Speaker: clip.Speaker, Emotion: clip.Emotion, URL: clip.URL})
				eventClips = append(eventClips, events.AudioClip{Speaker: clip.Speaker, Emotion: clip.Emotion, URL: clip.URL})
			}
			emitted = append(emitted, events.NewAudioAdded(session.messageID, eventClips))
		}
	}

	if replacement, ok := envelope.PostProcessed(); ok {
		if message := c.messageByID(session.messageID); message != nil {
			message.Content = replacement
			emitted = append(emitted, events.NewMessageContentReplaced(session.messageID, replacement))
		}
	}

	if assigned, ok := envelope.AssignedMessageID(); ok && assigned != session.messageID {
		previous := session.messageID
		if message := c.messageByID(previous); message != nil {
			message.ID = assigned
		}
		// Everything keyed by the provisional id aliases the same message,
		// so the dedupe set and gallery follow the rewrite.
		for key := range session.seenImages {
			if url, found := strings.CutPrefix(key, previous+"\n"); found {
				delete(session.seenImages, key)
				session.seenImages[assigned+"\n"+url] = struct{}{}
			}
		}
		for i := range c.gallery {
			if c.gallery[i].MessageID == previous {
				c.gallery[i].MessageID = assigned
			}
		}
		session.messageID = assigned
		session.canonicalID = assigned
		emitted = append(emitted, events.NewMessageIDAssigned(previous, assigned))
	}

	if stage, duration, ok := envelope.StageCompleted(); ok {
		emitted = append(emitted, events.NewStageCompleted(stage, duration))
	}
	if stage, reason, ok := envelope.StageSkipped(); ok {
		emitted = append(emitted, events.NewStageSkipped(stage, reason))
	}

	if reason, ok := envelope.Failure(); ok {
		emitted = append(emitted, c.failLocked(session, reason))
		c.record(emitted...)
		c.mu.Unlock()
		c.notify(emitted...)
		return false
	}

	if envelope.IsDone() {
		session.status = TurnStatusCompleted
		if c.active == session {
			c.active = nil
		}
		emitted = append(emitted, events.NewTurnCompleted(session.messageID))
		c.record(emitted...)
		c.mu.Unlock()
		c.notify(emitted...)
		return false
	}

	c.record(emitted...)
	c.mu.Unlock()
	c.notify(emitted...)
	return true
}

// failLocked transitions the session to Failed. The error text is shown to
// the user verbatim; content accumulated so far stays visible so partial
// progress is not lost, and only fills in when nothing was accumulated.
// Caller must hold the mutex.
func (c *Conversation) failLocked(session *turnSession, reason string) events.Event {
	session.status = TurnStatusFailed
	session.err = errors.New(reason)

	if message := c.messageByID(session.messageID); message != nil {
		message.IsError = true
		if message.Content == "" {
			message.Content = reason
		}
	}

	if c.active == session {
		c.active = nil
	}

	return events.NewTurnFailed(session.messageID, reason)
}

func (c *Conversation) failTurn(session *turnSession, reason string) {
	c.mu.Lock()
	if session.status.Terminal() {
		c.mu.Unlock()
		return
	}

	event := c.failLocked(session, reason)
	c.record(event)
	c.mu.Unlock()

	c.notify(event)
}

func (c *Conversation) completeTurn(session *turnSession) {
	c.mu.Lock()
	if session.status.Terminal() {
		c.mu.Unlock()
		return
	}

	session.status = TurnStatusCompleted
	if c.active == session {
		c.active = nil
	}
	event := events.NewTurnCompleted(session.messageID)
	c.record(event)
	c.mu.Unlock()

	c.notify(event)
}
