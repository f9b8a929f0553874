package chat

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single chat turn. Messages are never mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Citations []string  `json:"citations,omitempty"`
}

// FromUser reports whether the message was typed by the visitor.
func (m Message) FromUser() bool { return m.Sender == SenderUser }

func newMessage(sender Sender, text string, at time.Time, citations []string) Message {
	return Message{
		ID:        ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		Text:      text,
		Sender:    sender,
		Timestamp: at,
		Citations: append([]string(nil), citations...),
	}
}

func cloneMessage(m Message) Message {
	clone := m
	if m.Citations != nil {
		clone.Citations = append([]string(nil), m.Citations...)
	}
	return clone
}

func cloneMessages(src []Message) []Message {
	out := make([]Message, len(src))
	for i, m := range src {
		out[i] = cloneMessage(m)
	}
	return out
}
