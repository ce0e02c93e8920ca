// Package domain contains core concepts of the chat bot.
// This file defines inbound room messages.
// Messages are transient: produced by the transport, consumed once by the session.
package domain

import (
	"strings"
	"time"
)

// CommandMarker prefixes every chat message meant as a command.
const CommandMarker = "!"

// IncomingMessage is a room message as seen by the session.
type IncomingMessage struct {
	SenderID   UserID
	RoomID     RoomID
	Text       string
	ReceivedAt time.Time
}

// IsCommand reports whether the message text is a candidate command.
func (m IncomingMessage) IsCommand() bool {
	return strings.HasPrefix(m.Text, CommandMarker)
}
