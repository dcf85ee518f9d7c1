package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// AudioClip is one synthesized speech reference attached to a message.
type AudioClip struct {
	Speaker string
	Emotion string
	URL     string
}

// Message is a single turn entry in the conversation.
//
// A message is mutated only by the turn session that created it, and only
// until that session reaches a terminal status; after that it is immutable.
// The ID is provisional until the server assigns a canonical one, at which
// point it is rewritten in place.
type Message struct {
	ID          string
	Role        MessageRole
	Content     string
	ImageURL    string
	ImagePrompt string
	AudioClips  []AudioClip
	IsError     bool
	CreatedAt   time.Time
}

// ImageRef is one rendered image in the conversation gallery.
type ImageRef struct {
	MessageID string
	URL       string
	Prompt    string
}

const provisionalIDPrefix = "temp-"

func provisionalMessageID() string {
	return provisionalIDPrefix + uuid.NewString()
}

// Provisional reports whether an id is client-generated, i.e. the server has
// not yet assigned the canonical id for the message.
func Provisional(messageID string) bool {
	return strings.HasPrefix(messageID, provisionalIDPrefix)
}
