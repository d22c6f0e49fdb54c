package chat

import "time"

// DefaultSessionID names the session used when a request does not carry one.
const DefaultSessionID = "default"

// TitleLimit is the number of characters of the opening message kept as title.
const TitleLimit = 50

// Session captures one conversation kept in process memory.
type Session struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Created  time.Time `json:"created"`
	Messages []Message `json:"messages"`
}

// Summary is the listing view of a session.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Created      time.Time `json:"created"`
	MessageCount int       `json:"message_count"`
}

// Summary returns the listing view of s.
func (s Session) Summary() Summary {
	return Summary{
		ID:           s.ID,
		Title:        s.Title,
		Created:      s.Created,
		MessageCount: len(s.Messages),
	}
}

// Clone returns a copy of s that shares no message storage with it.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// TitleFrom derives a session title from the opening user message.
func TitleFrom(message string) string {
	runes := []rune(message)
	if len(runes) <= TitleLimit {
		return message
	}
	return string(runes[:TitleLimit])
}
