// Package websocket talks to the presence gateway over a websocket,
// one JSON frame per message.
package websocket

import (
	"bucket-chan/domain"
	"bucket-chan/domain/event"
	"bucket-chan/errors"
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventBuffer  = 64
	writeTimeout = 10 * time.Second
)

// Transport is good for a single connection: once disconnected, build a new one.
type Transport struct {
	url         string
	dialTimeout time.Duration
	log         *slog.Logger
	events      chan event.Event
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	conn    *websocket.Conn

	writeMu sync.Mutex
}

func NewTransport(url string, dialTimeout time.Duration, log *slog.Logger) *Transport {
	return &Transport{
		url:         url,
		dialTimeout: dialTimeout,
		log:         log,
		events:      make(chan event.Event, eventBuffer),
		done:        make(chan struct{}),
	}
}

// Connect dials in the background; the outcome arrives as event.Connected.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return errors.ErrAlreadyConnected
	}
	t.started = true
	dialCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.dialAndRead(dialCtx)
	}()
	return nil
}

func (t *Transport) Events() <-chan event.Event {
	return t.events
}

func (t *Transport) LogOn(credentials domain.Credentials) error {
	return t.write(Frame{Type: frameLogOn, Username: credentials.Username, Password: credentials.Secret})
}

func (t *Transport) SetPresence(state domain.PersonaState) error {
	return t.write(Frame{Type: framePresence, State: string(state)})
}

func (t *Transport) JoinRoom(roomID domain.RoomID) error {
	return t.write(Frame{Type: frameJoin, Room: string(roomID)})
}

func (t *Transport) SendRoomMessage(roomID domain.RoomID, text string) error {
	return t.write(Frame{Type: frameRoomMessage, Room: string(roomID), Text: text, SentAt: time.Now().UnixNano()})
}

func (t *Transport) SendDirectMessage(userID domain.UserID, text string) error {
	return t.write(Frame{Type: frameDirectMessage, User: string(userID), Text: text, SentAt: time.Now().UnixNano()})
}

// Disconnect closes the socket and waits for the background goroutines.
func (t *Transport) Disconnect() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)

		t.mu.Lock()
		if t.cancel != nil {
			t.cancel()
		}
		conn := t.conn
		t.conn = nil
		t.mu.Unlock()

		if conn != nil {
			t.writeMu.Lock()
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			t.writeMu.Unlock()
			err = conn.Close()
		}
	})
	t.wg.Wait()
	return err
}

func (t *Transport) dialAndRead(ctx context.Context) {
	dialCtx, cancel := context.WithTimeout(ctx, t.dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, t.url, nil)
	if err != nil {
		result := domain.NO_CONNECTION
		if stderrors.Is(err, context.DeadlineExceeded) {
			result = domain.TIMEOUT
		}
		t.push(event.Connected{Result: result, Err: err})
		return
	}

	t.mu.Lock()
	select {
	case <-t.done:
		// Disconnected while dialing.
		t.mu.Unlock()
		_ = conn.Close()
		return
	default:
	}
	t.conn = conn
	t.mu.Unlock()

	t.log.Debug("Websocket connected", "url", t.url)
	t.push(event.Connected{Result: domain.OK})
	t.readLoop(conn)
}

func (t *Transport) readLoop(conn *websocket.Conn) {
	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-t.done:
				t.push(event.Disconnected{UserInitiated: true})
			default:
				t.push(event.Disconnected{Err: err})
			}
			return
		}
		evt, ok := toEvent(f, time.Now())
		if !ok {
			t.log.Debug("Ignoring gateway frame", "type", f.Type)
			continue
		}
		t.push(evt)
	}
}

// push hands evt to the session unless the transport is shut down,
// so a session that stopped reading never blocks the reader.
func (t *Transport) push(evt event.Event) {
	select {
	case t.events <- evt:
	case <-t.done:
	}
}

func (t *Transport) write(f Frame) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.ErrNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}
