package commands

import (
	"bucket-chan/contract"
	"bucket-chan/domain"
	"log/slog"
)

// Responder lets a handler answer the message that triggered it,
// either in the room or privately to the sender.
// It is built for a single dispatch and bound to that message.
type Responder struct {
	public  func(text string)
	private func(text string)
}

func NewResponder(public, private func(text string)) Responder {
	return Responder{public: public, private: private}
}

func (r Responder) SendPublic(text string) {
	if r.public != nil {
		r.public(text)
	}
}

func (r Responder) SendPrivate(text string) {
	if r.private != nil {
		r.private(text)
	}
}

// BindResponder builds the Responder for msg on top of sender.
// Outbound text goes through filter when one is given.
// Send failures are logged and never reach the handler.
func BindResponder(sender contract.MessageSender, msg domain.IncomingMessage, filter contract.TextFilter, log *slog.Logger) Responder {
	clean := func(text string) string {
		if filter == nil {
			return text
		}
		return filter.Censor(text)
	}
	return NewResponder(
		func(text string) {
			if err := sender.SendRoomMessage(msg.RoomID, clean(text)); err != nil {
				log.Warn("Unable to send room message", "room", msg.RoomID, "error", err)
			}
		},
		func(text string) {
			if err := sender.SendDirectMessage(msg.SenderID, clean(text)); err != nil {
				log.Warn("Unable to send direct message", "user", msg.SenderID, "error", err)
			}
		},
	)
}
