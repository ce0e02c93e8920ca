package runtime

import (
	"bucket-chan/contract"
	"bucket-chan/domain"
	"bucket-chan/errors"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const DefaultBackoff = 5 * time.Second

// SessionFactory builds the session for one attempt, with a transport of its own.
type SessionFactory func(id uuid.UUID) contract.ISession

// Supervisor runs sessions one after the other, forever:
// run a session to completion, wait the backoff, start the next one.
// Two sessions never overlap. The loop only ends when the context is
// canceled or the service rejects the credentials, since retrying those
// cannot succeed without an operator.
type Supervisor struct {
	log        *slog.Logger
	newSession SessionFactory
	backoff    time.Duration
	after      func(d time.Duration) <-chan time.Time
	stats      func() (domain.ProcessStats, error)
}

func NewSupervisor(log *slog.Logger, newSession SessionFactory, backoff time.Duration) *Supervisor {
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Supervisor{
		log:        log,
		newSession: newSession,
		backoff:    backoff,
		after:      time.After,
		stats:      SelfStats,
	}
}

// Run blocks until ctx is canceled (returns nil) or a session ends with a
// fatal outcome (returns an error wrapping ErrCredentialsRejected).
func (s *Supervisor) Run(ctx context.Context) error {
	s.log.Info("Starting connection loop")
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			s.log.Info("Connection loop stopped")
			return nil
		}

		outcome := s.runOnce(ctx, attempt)
		s.logOutcome(attempt, outcome)

		if outcome.Fatal {
			return fmt.Errorf("%w: %s", errors.ErrCredentialsRejected, outcome.Result)
		}
		if ctx.Err() != nil {
			s.log.Info("Connection loop stopped")
			return nil
		}

		select {
		case <-ctx.Done():
			// Priority stop, no need to wait for the backoff.
			s.log.Info("Connection loop stopped")
			return nil
		case <-s.after(s.backoff):
		}
	}
}

// runOnce runs a single session. A panicking session is reported as a
// non-fatal outcome so the loop keeps going.
func (s *Supervisor) runOnce(ctx context.Context, attempt int) (outcome domain.Outcome) {
	id := uuid.New()
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Outcome{
				SessionID: id,
				Reason:    domain.PANIC,
				Err:       fmt.Errorf("%w: %v", errors.ErrSessionPanic, r),
			}
		}
	}()
	s.log.Info("Starting session", "attempt", attempt, "session_id", id.String())
	return s.newSession(id).Run(ctx)
}

func (s *Supervisor) logOutcome(attempt int, outcome domain.Outcome) {
	attrs := []any{
		"attempt", attempt,
		"session_id", outcome.SessionID.String(),
		"reason", outcome.Reason,
		"state", outcome.State,
		"duration", outcome.Duration,
	}
	if outcome.Result != "" {
		attrs = append(attrs, "result", outcome.Result)
	}
	if outcome.Err != nil {
		attrs = append(attrs, "error", outcome.Err)
	}
	if stats, err := s.stats(); err == nil {
		attrs = append(attrs,
			"rss_bytes", stats.RSSBytes,
			"cpu_percent", stats.CPUPercent,
			"goroutines", stats.Goroutines,
		)
	}

	switch {
	case outcome.Fatal:
		s.log.Error("Session ended, credentials need operator action", attrs...)
	case outcome.Reason == domain.CANCELED:
		s.log.Info("Session ended", attrs...)
	default:
		s.log.Warn("Session ended, reconnecting after backoff", append(attrs, "backoff", s.backoff)...)
	}
}
