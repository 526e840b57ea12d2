package chat

import "time"

// Role identifies who wrote a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// DefaultTimeFormat renders hour and minute only.
const DefaultTimeFormat = "15:04"

// Message is one entry of the chat log.
type Message struct {
	Role Role
	Text string
	Time string
}

// Log is the ordered, append-only message sequence of a session.
type Log struct {
	messages []Message
}

func (l *Log) Append(m Message) {
	l.messages = append(l.messages, m)
}

// SetLastText replaces the text of the most recent message. It is a no-op on an empty log.
func (l *Log) SetLastText(text string) {
	if len(l.messages) == 0 {
		return
	}
	l.messages[len(l.messages)-1].Text = text
}

// Messages returns a copy of the log.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns the most recent message, if any.
func (l *Log) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time
