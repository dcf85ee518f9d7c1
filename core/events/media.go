package events

const (
	// KindImageAdded identifies a rendered image attached to a message.
	KindImageAdded Kind = "media.image_added"
	// KindAudioAdded identifies synthesized speech attached to a message.
	KindAudioAdded Kind = "media.audio_added"
)

// ImageAdded marks a rendered image attached to a message and appended to the
// conversation gallery.
type ImageAdded struct {
	Base
	MessageID string
	URL       string
	Prompt    string
}

// NewImageAdded creates an image added event.
func NewImageAdded(messageID string, url string, prompt string) ImageAdded {
	return ImageAdded{Base: NewBase(KindImageAdded), MessageID: messageID, URL: url, Prompt: prompt}
}

// AudioClip is one synthesized speech reference carried by AudioAdded.
type AudioClip struct {
	Speaker string
	Emotion string
	URL     string
}

// AudioAdded marks synthesized speech clips attached to a message.
type AudioAdded struct {
	Base
	MessageID string
	Clips     []AudioClip
}

// NewAudioAdded creates an audio added event.
func NewAudioAdded(messageID string, clips []AudioClip) AudioAdded {
	return AudioAdded{Base: NewBase(KindAudioAdded), MessageID: messageID, Clips: clips}
}
