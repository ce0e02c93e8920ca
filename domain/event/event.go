// Package event lists everything a transport can report to a session.
// The session consumes these in a single switch; there is no subscription registry.
package event

import (
	"bucket-chan/domain"
	"time"
)

// Event is implemented by every transport notification.
type Event interface {
	Name() string
}

// Connected reports the outcome of a connect attempt.
type Connected struct {
	Result domain.Result
	Err    error
}

func (Connected) Name() string { return "Connected" }

// Disconnected reports that the connection is gone.
type Disconnected struct {
	UserInitiated bool
	Err           error
}

func (Disconnected) Name() string { return "Disconnected" }

// LoggedOn reports the outcome of a logon request.
type LoggedOn struct {
	Result         domain.Result
	ExtendedResult domain.Result
}

func (LoggedOn) Name() string { return "LoggedOn" }

// LoggedOff is sent by the service when it ends the logon on its side.
type LoggedOff struct {
	Result domain.Result
}

func (LoggedOff) Name() string { return "LoggedOff" }

// AccountInfo is the post-logon readiness signal.
// Presence and rooms are only usable once it has been received.
type AccountInfo struct {
	PersonaName string
}

func (AccountInfo) Name() string { return "AccountInfo" }

// RoomJoined confirms (or refuses) a room join.
type RoomJoined struct {
	Room   domain.RoomID
	Result domain.Result
}

func (RoomJoined) Name() string { return "RoomJoined" }

// ChatMessage is a message posted in a room.
type ChatMessage struct {
	Sender     domain.UserID
	Room       domain.RoomID
	Text       string
	ReceivedAt time.Time
}

func (ChatMessage) Name() string { return "ChatMessage" }

// ToIncomingMessage converts the event into the value handed to commands.
func (c ChatMessage) ToIncomingMessage() domain.IncomingMessage {
	return domain.IncomingMessage{
		SenderID:   c.Sender,
		RoomID:     c.Room,
		Text:       c.Text,
		ReceivedAt: c.ReceivedAt,
	}
}
