package chat

import "github.com/koscakluka/fable-core/core/events"

type eventEmitter func(events.Event)

func newCallbackEventEmitter(callbacks conversationCallbacks) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.MessageAdded:
			if callbacks.onMessageAdded != nil {
				callbacks.onMessageAdded(typedEvent.MessageID, typedEvent.Role, typedEvent.Content)
			}
		case events.MessageContentSegment:
			if callbacks.onContentSegment != nil {
				callbacks.onContentSegment(typedEvent.MessageID, typedEvent.Segment)
			}
		case events.MessageContentReplaced:
			if callbacks.onContentReplaced != nil {
				callbacks.onContentReplaced(typedEvent.MessageID, typedEvent.Content)
			}
		case events.MessageIDAssigned:
			if callbacks.onMessageIDAssigned != nil {
				callbacks.onMessageIDAssigned(typedEvent.PreviousID, typedEvent.MessageID)
			}
		case events.StageChanged:
			if callbacks.onStageChanged != nil {
				callbacks.onStageChanged(typedEvent.Stage)
			}
		case events.StageOutputSegment:
			if callbacks.onStageOutputSegment != nil {
				callbacks.onStageOutputSegment(typedEvent.Stage, typedEvent.Segment)
			}
		case events.StageOutputFinal:
			if callbacks.onStageOutputFinal != nil {
				callbacks.onStageOutputFinal(typedEvent.Stage, typedEvent.Output)
			}
		case events.ImageAdded:
			if callbacks.onImage != nil {
				callbacks.onImage(typedEvent.MessageID, typedEvent.URL, typedEvent.Prompt)
			}
		case events.AudioAdded:
			if callbacks.onAudio != nil {
				clips := make([]AudioClip, 0, len(typedEvent.Clips))
				for _, clip := range typedEvent.Clips {
					clips = append(clips, AudioClip{Speaker: clip.Speaker, Emotion: clip.Emotion, URL: clip.URL})
				}
				callbacks.onAudio(typedEvent.MessageID, clips)
			}
		case events.TurnCompleted:
			if callbacks.onTurnCompleted != nil {
				callbacks.onTurnCompleted(typedEvent.MessageID)
			}
		case events.TurnFailed:
			if callbacks.onTurnFailed != nil {
				callbacks.onTurnFailed(typedEvent.MessageID, typedEvent.Reason)
			}
		case events.TurnCancelled:
			if callbacks.onCancellation != nil {
				callbacks.onCancellation(typedEvent.MessageID)
			}
		}
	}
}
