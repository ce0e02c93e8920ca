package e2e

import (
	"bucket-chan/commands"
	"bucket-chan/domain"
	"bucket-chan/infrastructure/websocket"
	"bucket-chan/runtime"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseGatewaySuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips when no gateway is configured
func (s *BaseGatewaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.GatewayURL == "" {
		s.T().Skip("E2E_GATEWAY_URL is not set")
	}
}

func (s *BaseGatewaySuite) header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// WithSession runs one session against the gateway for the given duration and hands back its outcome
func (s *BaseGatewaySuite) WithSession(name string, registry *commands.Registry, lifetime time.Duration, fn func(outcome domain.Outcome)) {
	s.header(name)
	credentials, err := domain.NewCredentials(s.Config.Username, s.Config.Secret)
	s.Require().NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	transport := websocket.NewTransport(s.Config.GatewayURL, 10*time.Second, log)
	session := runtime.NewSession(uuid.New(), log, transport, registry, nil, runtime.SessionConfig{
		Room:        domain.RoomID(s.Config.Room),
		Credentials: credentials,
	})

	ctx, cancel := context.WithTimeout(context.Background(), lifetime)
	defer cancel()

	start := time.Now()
	outcome := session.Run(ctx)
	s.T().Logf("session ended in %v: state=%s reason=%s result=%s", time.Since(start), outcome.State, outcome.Reason, outcome.Result)
	fn(outcome)
}
