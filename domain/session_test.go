package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityClock_NeverMovesBackwards(t *testing.T) {
	req := require.New(t)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewActivityClock(start)

	// When a later message arrives
	clock.Touch(start.Add(time.Minute))
	req.Equal(start.Add(time.Minute), clock.Last())

	// When an older timestamp shows up
	clock.Touch(start)

	// Then the clock keeps the latest value
	req.Equal(start.Add(time.Minute), clock.Last())
	req.Equal(4*time.Minute, clock.IdleFor(start.Add(5*time.Minute)))
}

func TestIncomingMessage_IsCommand(t *testing.T) {
	req := require.New(t)
	req.True(IncomingMessage{Text: "!maps"}.IsCommand())
	req.True(IncomingMessage{Text: "!"}.IsCommand())
	req.False(IncomingMessage{Text: "hello !maps"}.IsCommand())
	req.False(IncomingMessage{Text: ""}.IsCommand())
}

func TestResult_IsAccessDenied(t *testing.T) {
	req := require.New(t)
	for _, r := range []Result{INVALID_PASSWORD, ACCESS_DENIED, ACCOUNT_LOGON_DENIED, ACCOUNT_LOGON_DENIED_NO_MAIL, ACCOUNT_LOGIN_DENIED_NEED_2FA, TWO_FACTOR_CODE_MISMATCH} {
		req.True(r.IsAccessDenied(), r)
	}
	for _, r := range []Result{OK, FAIL, NO_CONNECTION, TIMEOUT, SERVICE_UNAVAILABLE, TRY_ANOTHER_CM, RATE_LIMIT_EXCEEDED} {
		req.False(r.IsAccessDenied(), r)
	}
}

func TestNewCredentials(t *testing.T) {
	req := require.New(t)

	creds, err := NewCredentials("bucket", "hunter2")
	req.NoError(err)
	req.Equal("bucket", creds.String())

	_, err = NewCredentials("", "hunter2")
	req.Error(err)

	_, err = NewCredentials("bucket", "")
	req.Error(err)
}
