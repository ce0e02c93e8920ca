package websocket

import (
	"bucket-chan/domain"
	"bucket-chan/domain/event"
	"time"
)

// Frame types exchanged with the presence gateway.
const (
	frameLogOn         = "logon"
	framePresence      = "presence"
	frameJoin          = "join"
	frameRoomMessage   = "room_message"
	frameDirectMessage = "direct_message"

	frameLoggedOn    = "logged_on"
	frameLoggedOff   = "logged_off"
	frameAccountInfo = "account_info"
	frameRoomJoined  = "room_joined"
	frameChatMessage = "chat_message"
)

// Frame is the JSON envelope of every message on the socket, in both directions.
type Frame struct {
	Type           string `json:"type"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	State          string `json:"state,omitempty"`
	Room           string `json:"room,omitempty"`
	User           string `json:"user,omitempty"`
	Sender         string `json:"sender,omitempty"`
	Text           string `json:"text,omitempty"`
	Result         string `json:"result,omitempty"`
	ExtendedResult string `json:"extended_result,omitempty"`
	PersonaName    string `json:"persona_name,omitempty"`
	SentAt         int64  `json:"sent_at,omitempty"`
}

// toEvent maps an inbound frame to a session event.
func toEvent(f Frame, receivedAt time.Time) (event.Event, bool) {
	switch f.Type {
	case frameLoggedOn:
		return event.LoggedOn{
			Result:         domain.Result(f.Result),
			ExtendedResult: domain.Result(f.ExtendedResult),
		}, true
	case frameLoggedOff:
		return event.LoggedOff{Result: domain.Result(f.Result)}, true
	case frameAccountInfo:
		return event.AccountInfo{PersonaName: f.PersonaName}, true
	case frameRoomJoined:
		return event.RoomJoined{Room: domain.RoomID(f.Room), Result: domain.Result(f.Result)}, true
	case frameChatMessage:
		return event.ChatMessage{
			Sender:     domain.UserID(f.Sender),
			Room:       domain.RoomID(f.Room),
			Text:       f.Text,
			ReceivedAt: receivedAt,
		}, true
	default:
		return nil, false
	}
}
