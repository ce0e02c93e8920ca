//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"bucket-chan/domain"
	"bucket-chan/domain/event"
	"context"
)

// MessageSender is the outbound half of a transport.
// Delivery failures stay on the transport side; callers only log them.
type MessageSender interface {
	SendRoomMessage(roomID domain.RoomID, text string) error
	SendDirectMessage(userID domain.UserID, text string) error
}

// Transport performs the network I/O with the remote service.
// Connect and LogOn are asynchronous: their outcome arrives on Events.
// A Transport is owned by exactly one session and is not reused after Disconnect.
type Transport interface {
	MessageSender
	Connect(ctx context.Context) error
	Events() <-chan event.Event
	LogOn(credentials domain.Credentials) error
	SetPresence(state domain.PersonaState) error
	JoinRoom(roomID domain.RoomID) error
	Disconnect() error
}

// ISession is one connection attempt, run to completion.
type ISession interface {
	Run(ctx context.Context) domain.Outcome
}

// TextFilter rewrites outbound text before it reaches the room.
type TextFilter interface {
	Censor(text string) string
}

type IMapRepository interface {
	Add(entry domain.MapEntry) error
	List() ([]domain.MapEntry, error)
}
