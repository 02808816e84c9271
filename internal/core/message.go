package core

import "time"

// MessageClass describes what kind of content a message carries.
type MessageClass string

const (
	ClassText     MessageClass = "text"
	ClassVoice    MessageClass = "voice"
	ClassFile     MessageClass = "file"
	ClassLocation MessageClass = "location"
	ClassEvent    MessageClass = "event"
)

// Valid reports whether the class is one of the known kinds.
func (c MessageClass) Valid() bool {
	switch c {
	case ClassText, ClassVoice, ClassFile, ClassLocation, ClassEvent:
		return true
	}
	return false
}

// Translation carries the pre-translation text and language pair for a
// message that was translated before relay.
type Translation struct {
	Original   string
	SourceLang string
	TargetLang string
}

// Message is the domain model for a relayed chat message.
// Messages are immutable once constructed by the hub.
type Message struct {
	ID          string
	Room        string
	From        string
	To          string
	Content     string
	Class       MessageClass
	Translation *Translation
	CreatedAt   time.Time
}
