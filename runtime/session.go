package runtime

import (
	"bucket-chan/commands"
	"bucket-chan/contract"
	"bucket-chan/domain"
	"bucket-chan/domain/event"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultIdleThreshold = 5 * time.Minute
	DefaultPollInterval  = 500 * time.Millisecond
)

type dispatcher interface {
	Dispatch(text string, responder commands.Responder) error
}

type SessionConfig struct {
	Room          domain.RoomID
	Credentials   domain.Credentials
	IdleThreshold time.Duration
	PollInterval  time.Duration
}

// Session is one attempt at being connected, logged on and in the room.
// It owns its transport exclusively and runs on a single goroutine:
// events, command handlers and the idle check are strictly serialized,
// so a slow handler delays everything else.
type Session struct {
	id         uuid.UUID
	log        *slog.Logger
	transport  contract.Transport
	dispatcher dispatcher
	filter     contract.TextFilter
	config     SessionConfig
	now        func() time.Time

	state     domain.SessionState
	activity  domain.ActivityClock
	startedAt time.Time
}

func NewSession(
	id uuid.UUID,
	log *slog.Logger,
	transport contract.Transport,
	dispatcher dispatcher,
	filter contract.TextFilter,
	config SessionConfig,
) *Session {
	if config.IdleThreshold <= 0 {
		config.IdleThreshold = DefaultIdleThreshold
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	return &Session{
		id:         id,
		log:        log.With("session_id", id.String()),
		transport:  transport,
		dispatcher: dispatcher,
		filter:     filter,
		config:     config,
		now:        time.Now,
		state:      domain.IDLE,
	}
}

// Run drives the session until it terminates and reports why.
// The transport is always disconnected before Run returns.
func (s *Session) Run(ctx context.Context) domain.Outcome {
	s.startedAt = s.now()
	s.activity = domain.NewActivityClock(s.startedAt)
	defer s.release()

	s.transition(domain.CONNECTING)
	s.log.Info("Connecting...")
	if err := s.transport.Connect(ctx); err != nil {
		return s.terminate(domain.CONNECT_FAILED, domain.NO_CONNECTION, err)
	}

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()
	events := s.transport.Events()

	for {
		select {
		case <-ctx.Done():
			return s.terminate(domain.CANCELED, "", ctx.Err())
		case evt, ok := <-events:
			if !ok {
				return s.terminate(domain.DISCONNECTED, "", nil)
			}
			if outcome, done := s.handle(evt); done {
				return outcome
			}
		case <-ticker.C:
		}

		// The room can stall while the connection itself looks healthy.
		if idle := s.activity.IdleFor(s.now()); idle > s.config.IdleThreshold {
			s.log.Warn("No room activity, forcing a reconnect", "idle", idle, "state", s.state)
			return s.terminate(domain.IDLE_TIMEOUT, "", nil)
		}
	}
}

func (s *Session) handle(evt event.Event) (domain.Outcome, bool) {
	switch e := evt.(type) {
	case event.Connected:
		return s.onConnected(e)
	case event.LoggedOn:
		return s.onLoggedOn(e)
	case event.AccountInfo:
		s.onAccountInfo(e)
	case event.RoomJoined:
		s.onRoomJoined(e)
	case event.ChatMessage:
		s.onChatMessage(e)
	case event.LoggedOff:
		s.log.Warn("Logged off", "result", e.Result)
	case event.Disconnected:
		s.log.Info("Disconnected", "user_initiated", e.UserInitiated, "error", e.Err)
		return s.terminate(domain.DISCONNECTED, "", e.Err), true
	default:
		s.log.Debug("Ignoring event", "event", evt.Name())
	}
	return domain.Outcome{}, false
}

func (s *Session) onConnected(e event.Connected) (domain.Outcome, bool) {
	if s.state != domain.CONNECTING {
		s.log.Debug("Unexpected connected event", "state", s.state)
		return domain.Outcome{}, false
	}
	if e.Result != domain.OK {
		s.log.Error("Unable to connect", "result", e.Result, "error", e.Err)
		return s.terminate(domain.CONNECT_FAILED, e.Result, e.Err), true
	}

	s.log.Info("Connected, logging in", "username", s.config.Credentials.Username)
	s.transition(domain.AUTHENTICATING)
	if err := s.transport.LogOn(s.config.Credentials); err != nil {
		s.log.Error("Unable to send logon", "error", err)
		return s.terminate(domain.TRANSPORT_ERROR, "", err), true
	}
	return domain.Outcome{}, false
}

func (s *Session) onLoggedOn(e event.LoggedOn) (domain.Outcome, bool) {
	if s.state != domain.AUTHENTICATING {
		s.log.Debug("Unexpected logged on event", "state", s.state)
		return domain.Outcome{}, false
	}
	if e.Result != domain.OK {
		if e.Result.IsAccessDenied() {
			s.log.Error("Unable to logon: credentials rejected or extra verification required",
				"result", e.Result, "extended_result", e.ExtendedResult)
			return s.terminate(domain.CREDENTIALS_REJECTED, e.Result, nil), true
		}
		s.log.Error("Unable to logon", "result", e.Result, "extended_result", e.ExtendedResult)
		return s.terminate(domain.LOGON_FAILED, e.Result, nil), true
	}

	s.log.Info("Successfully logged on")
	s.transition(domain.JOINING)
	return domain.Outcome{}, false
}

// onAccountInfo is the readiness signal: presence and room join only work after it.
// The join is not awaited; serving starts right away.
func (s *Session) onAccountInfo(e event.AccountInfo) {
	if s.state != domain.JOINING {
		s.log.Debug("Unexpected account info", "state", s.state)
		return
	}
	s.log.Info("Received account info", "persona", e.PersonaName)
	if err := s.transport.SetPresence(domain.ONLINE); err != nil {
		s.log.Warn("Unable to set presence", "error", err)
	}
	s.log.Info("Attempting to join room", "room", s.config.Room)
	if err := s.transport.JoinRoom(s.config.Room); err != nil {
		s.log.Warn("Unable to join room", "room", s.config.Room, "error", err)
	}
	s.transition(domain.SERVING)
}

func (s *Session) onRoomJoined(e event.RoomJoined) {
	if e.Result != domain.OK {
		s.log.Warn("Room join refused", "room", e.Room, "result", e.Result)
		return
	}
	s.log.Info("Joined room", "room", e.Room)
}

func (s *Session) onChatMessage(e event.ChatMessage) {
	if s.state != domain.SERVING {
		s.log.Debug("Message before serving", "state", s.state, "room", e.Room)
		return
	}
	s.activity.Touch(s.now())

	msg := e.ToIncomingMessage()
	s.log.Info("Chat", "sender", msg.SenderID, "text", msg.Text)
	if !msg.IsCommand() {
		return
	}

	responder := commands.BindResponder(s.transport, msg, s.filter, s.log)
	if err := s.dispatcher.Dispatch(msg.Text, responder); err != nil {
		s.log.Error("Command failed", "sender", msg.SenderID, "text", msg.Text, "error", err)
	}
}

func (s *Session) transition(next domain.SessionState) {
	s.log.Debug("Session state", "from", s.state, "to", next)
	s.state = next
}

func (s *Session) terminate(reason domain.Reason, result domain.Result, err error) domain.Outcome {
	outcome := domain.Outcome{
		SessionID: s.id,
		State:     s.state,
		Reason:    reason,
		Result:    result,
		Fatal:     reason == domain.CREDENTIALS_REJECTED,
		Err:       err,
		Duration:  s.now().Sub(s.startedAt),
	}
	s.transition(domain.TERMINATING)
	return outcome
}

func (s *Session) release() {
	if err := s.transport.Disconnect(); err != nil {
		s.log.Debug("Disconnect", "error", err)
	}
	s.transition(domain.IDLE)
}
