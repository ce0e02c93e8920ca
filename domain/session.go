package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle position of one connection attempt.
type SessionState string

const (
	IDLE           SessionState = "IDLE"
	CONNECTING     SessionState = "CONNECTING"
	AUTHENTICATING SessionState = "AUTHENTICATING"
	JOINING        SessionState = "JOINING"
	SERVING        SessionState = "SERVING"
	TERMINATING    SessionState = "TERMINATING"
)

// Reason explains why a session left its lifecycle.
type Reason string

const (
	CONNECT_FAILED       Reason = "CONNECT_FAILED"
	LOGON_FAILED         Reason = "LOGON_FAILED"
	CREDENTIALS_REJECTED Reason = "CREDENTIALS_REJECTED"
	DISCONNECTED         Reason = "DISCONNECTED"
	IDLE_TIMEOUT         Reason = "IDLE_TIMEOUT"
	CANCELED             Reason = "CANCELED"
	TRANSPORT_ERROR      Reason = "TRANSPORT_ERROR"
	PANIC                Reason = "PANIC"
)

// Outcome is what a finished session reports to the supervisor.
// State is the state the session was in when termination was triggered.
type Outcome struct {
	SessionID uuid.UUID
	State     SessionState
	Reason    Reason
	Result    Result
	Fatal     bool
	Err       error
	Duration  time.Duration
}

// ActivityClock holds the time of the last inbound room message.
// It never moves backwards.
type ActivityClock struct {
	last time.Time
}

func NewActivityClock(now time.Time) ActivityClock {
	return ActivityClock{last: now}
}

// Touch moves the clock to now, unless now is older than the current value.
func (c *ActivityClock) Touch(now time.Time) {
	if now.After(c.last) {
		c.last = now
	}
}

func (c *ActivityClock) Last() time.Time {
	return c.last
}

// IdleFor returns how long the room has been silent at now.
func (c *ActivityClock) IdleFor(now time.Time) time.Duration {
	return now.Sub(c.last)
}
