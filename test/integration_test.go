package test

import (
	"bucket-chan/commands"
	"bucket-chan/contract"
	"bucket-chan/domain"
	"bucket-chan/infrastructure/loopback"
	"bucket-chan/maps"
	"bucket-chan/moderation"
	"bucket-chan/repositories"
	"bucket-chan/runtime"
	"context"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const lobby = domain.RoomID("lobby")

// Test_Scenario runs the whole bot over in-memory transports: a map is added,
// the connection drops, the supervisor reconnects and the map is still listed.
func Test_Scenario(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given storage, commands and a moderator censoring "heck"
	db, err := repositories.OpenInMemory()
	req.NoError(err)
	defer func() { _ = db.Close() }()
	mapRepository, err := repositories.NewMapRepository(db, log)
	req.NoError(err)
	defer func() { _ = mapRepository.Close() }()

	registry := commands.NewRegistry()
	req.NoError(maps.NewCatalog(mapRepository, log).Register(registry))
	moderator, err := moderation.NewModerator([]string{"heck"}, '*', log)
	req.NoError(err)

	credentials, err := domain.NewCredentials("bucket", "hunter2")
	req.NoError(err)

	transports := make(chan *loopback.Transport, 4)
	sup := runtime.NewSupervisor(log, func(id uuid.UUID) contract.ISession {
		transport := loopback.New(loopback.Script{})
		transports <- transport
		return runtime.NewSession(id, log, transport, registry, moderator, runtime.SessionConfig{
			Room:          lobby,
			Credentials:   credentials,
			IdleThreshold: time.Minute,
			PollInterval:  5 * time.Millisecond,
		})
	}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	// When a map is added during the first session
	first := nextTransport(t, transports)
	waitJoined(t, first)
	first.Say(lobby, "alice", "!add heck http://maps/heck")
	req.Equal(loopback.Outbound{To: string(lobby), Text: "Added ****"}, nextOutbound(t, first))

	// And the connection drops
	first.Drop()

	// Then a new session joins and still knows the map
	second := nextTransport(t, transports)
	waitJoined(t, second)
	second.Say(lobby, "bob", "!maps")
	req.Equal(loopback.Outbound{To: string(lobby), Text: "Maps: ****"}, nextOutbound(t, second))
	req.Equal(loopback.Outbound{Private: true, To: "bob", Text: "This formatted message is for gameday hosting convenience."}, nextOutbound(t, second))
	// Every outbound reply is moderated, urls included
	req.Equal(loopback.Outbound{Private: true, To: "bob", Text: "**** : http://maps/****"}, nextOutbound(t, second))

	// And stopping the bot ends the loop without error
	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	req.Contains(first.Calls(), "Disconnect")
	req.Contains(second.Calls(), "Disconnect")
}

func nextTransport(t *testing.T, transports <-chan *loopback.Transport) *loopback.Transport {
	t.Helper()
	select {
	case transport := <-transports:
		return transport
	case <-time.After(2 * time.Second):
		t.Fatal("no session started")
		return nil
	}
}

func waitJoined(t *testing.T, transport *loopback.Transport) {
	t.Helper()
	require.Eventually(t, func() bool {
		return slices.Contains(transport.Calls(), "JoinRoom:"+string(lobby))
	}, 2*time.Second, 2*time.Millisecond)
}

func nextOutbound(t *testing.T, transport *loopback.Transport) loopback.Outbound {
	t.Helper()
	select {
	case out := <-transport.Outbound():
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("no reply sent")
		return loopback.Outbound{}
	}
}
