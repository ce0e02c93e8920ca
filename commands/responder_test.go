package commands

import (
	"bucket-chan/domain"
	"bucket-chan/mocks"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type upperFilter struct{}

func (upperFilter) Censor(text string) string { return strings.ToUpper(text) }

func TestBindResponder_RoutesToRoomAndSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockMessageSender(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := domain.IncomingMessage{SenderID: "alice", RoomID: "lobby", Text: "!maps"}

	// Given the public reply goes to the room and the private one to the sender
	gomock.InOrder(
		sender.EXPECT().SendRoomMessage(domain.RoomID("lobby"), "public").Return(nil),
		sender.EXPECT().SendDirectMessage(domain.UserID("alice"), "private").Return(nil),
	)

	// When
	responder := BindResponder(sender, msg, nil, log)
	responder.SendPublic("public")
	responder.SendPrivate("private")
}

func TestBindResponder_AppliesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockMessageSender(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := domain.IncomingMessage{SenderID: "alice", RoomID: "lobby"}

	sender.EXPECT().SendRoomMessage(domain.RoomID("lobby"), "HELLO").Return(nil)
	sender.EXPECT().SendDirectMessage(domain.UserID("alice"), "THERE").Return(nil)

	responder := BindResponder(sender, msg, upperFilter{}, log)
	responder.SendPublic("hello")
	responder.SendPrivate("there")
}

func TestBindResponder_SendFailureIsSwallowed(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sender := mocks.NewMockMessageSender(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	msg := domain.IncomingMessage{SenderID: "alice", RoomID: "lobby"}

	sender.EXPECT().SendRoomMessage(gomock.Any(), gomock.Any()).Return(fmt.Errorf("socket closed")).Times(2)

	responder := BindResponder(sender, msg, nil, log)
	req.NotPanics(func() {
		responder.SendPublic("one")
		responder.SendPublic("two")
	})
}

func TestResponder_ZeroValueIsSilent(t *testing.T) {
	req := require.New(t)
	req.NotPanics(func() {
		Responder{}.SendPublic("x")
		Responder{}.SendPrivate("y")
	})
}
