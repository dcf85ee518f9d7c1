package events

const (
	// KindMessageAdded identifies a message entering the conversation.
	KindMessageAdded Kind = "message.added"
	// KindMessageContentSegment identifies streamed message text deltas.
	KindMessageContentSegment Kind = "message.content_segment"
	// KindMessageContentReplaced identifies wholesale content replacement.
	KindMessageContentReplaced Kind = "message.content_replaced"
	// KindMessageIDAssigned identifies the provisional-to-canonical id rewrite.
	KindMessageIDAssigned Kind = "message.id_assigned"
)

// MessageAdded marks a new message in the conversation.
type MessageAdded struct {
	Base
	MessageID string
	Role      string
	Content   string
}

// NewMessageAdded creates a message added event.
func NewMessageAdded(messageID string, role string, content string) MessageAdded {
	return MessageAdded{Base: NewBase(KindMessageAdded), MessageID: messageID, Role: role, Content: content}
}

// MessageContentSegment carries a streamed text delta appended to a message.
type MessageContentSegment struct {
	Base
	MessageID string
	Segment   string
}

// NewMessageContentSegment creates a message content segment event.
func NewMessageContentSegment(messageID string, segment string) MessageContentSegment {
	return MessageContentSegment{Base: NewBase(KindMessageContentSegment), MessageID: messageID, Segment: segment}
}

// MessageContentReplaced carries a wholesale replacement of message content.
type MessageContentReplaced struct {
	Base
	MessageID string
	Content   string
}

// NewMessageContentReplaced creates a message content replaced event.
func NewMessageContentReplaced(messageID string, content string) MessageContentReplaced {
	return MessageContentReplaced{Base: NewBase(KindMessageContentReplaced), MessageID: messageID, Content: content}
}

// MessageIDAssigned marks the in-place rewrite of a message's identity from
// its provisional id to the server-assigned one.
type MessageIDAssigned struct {
	Base
	PreviousID string
	MessageID  string
}

// NewMessageIDAssigned creates a message id assigned event.
func NewMessageIDAssigned(previousID string, messageID string) MessageIDAssigned {
	return MessageIDAssigned{Base: NewBase(KindMessageIDAssigned), PreviousID: previousID, MessageID: messageID}
}
