// Package loopback is an in-memory transport that plays the service side
// from a script. It records every call so tests can assert on them.
package loopback

import (
	"bucket-chan/domain"
	"bucket-chan/domain/event"
	"bucket-chan/errors"
	"context"
	"fmt"
	"sync"
	"time"
)

const eventBuffer = 256

// Script decides how the fake service answers. Empty results mean OK.
type Script struct {
	ConnectResult   domain.Result
	ConnectErr      error
	LogOnResult     domain.Result
	ExtendedResult  domain.Result
	SkipAccountInfo bool
}

type Outbound struct {
	Private bool
	To      string
	Text    string
}

type Transport struct {
	mu        sync.Mutex
	script    Script
	events    chan event.Event
	outbound  chan Outbound
	connected bool
	calls     []string
	sent      []Outbound
}

func New(script Script) *Transport {
	if script.ConnectResult == "" {
		script.ConnectResult = domain.OK
	}
	if script.LogOnResult == "" {
		script.LogOnResult = domain.OK
	}
	return &Transport{
		script:   script,
		events:   make(chan event.Event, eventBuffer),
		outbound: make(chan Outbound, eventBuffer),
	}
}

func (t *Transport) Connect(_ context.Context) error {
	t.record("Connect")
	if t.script.ConnectErr != nil {
		return t.script.ConnectErr
	}
	t.mu.Lock()
	t.connected = t.script.ConnectResult == domain.OK
	t.mu.Unlock()
	t.events <- event.Connected{Result: t.script.ConnectResult}
	return nil
}

func (t *Transport) Events() <-chan event.Event {
	return t.events
}

func (t *Transport) LogOn(credentials domain.Credentials) error {
	t.record("LogOn:" + credentials.Username)
	if !t.isConnected() {
		return errors.ErrNotConnected
	}
	t.events <- event.LoggedOn{Result: t.script.LogOnResult, ExtendedResult: t.script.ExtendedResult}
	if t.script.LogOnResult == domain.OK && !t.script.SkipAccountInfo {
		t.events <- event.AccountInfo{PersonaName: credentials.Username}
	}
	return nil
}

func (t *Transport) SetPresence(state domain.PersonaState) error {
	t.record(fmt.Sprintf("SetPresence:%s", state))
	return nil
}

func (t *Transport) JoinRoom(roomID domain.RoomID) error {
	t.record(fmt.Sprintf("JoinRoom:%s", roomID))
	if !t.isConnected() {
		return errors.ErrNotConnected
	}
	t.events <- event.RoomJoined{Room: roomID, Result: domain.OK}
	return nil
}

func (t *Transport) SendRoomMessage(roomID domain.RoomID, text string) error {
	return t.send(Outbound{To: string(roomID), Text: text})
}

func (t *Transport) SendDirectMessage(userID domain.UserID, text string) error {
	return t.send(Outbound{Private: true, To: string(userID), Text: text})
}

func (t *Transport) Disconnect() error {
	t.record("Disconnect")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

// Say delivers a room message as if another member had typed it.
func (t *Transport) Say(room domain.RoomID, sender domain.UserID, text string) {
	t.events <- event.ChatMessage{Sender: sender, Room: room, Text: text, ReceivedAt: time.Now()}
}

// Inject delivers an arbitrary event.
func (t *Transport) Inject(evt event.Event) {
	t.events <- evt
}

// Drop simulates the service closing the connection.
func (t *Transport) Drop() {
	t.mu.Lock()
	t.connected = false
	t.mu.Unlock()
	t.events <- event.Disconnected{}
}

// Outbound yields every message sent, as it is sent.
func (t *Transport) Outbound() <-chan Outbound {
	return t.outbound
}

func (t *Transport) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

func (t *Transport) Sent() []Outbound {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Outbound(nil), t.sent...)
}

func (t *Transport) send(out Outbound) error {
	t.mu.Lock()
	if !t.connected {
		t.mu.Unlock()
		return errors.ErrNotConnected
	}
	t.sent = append(t.sent, out)
	t.mu.Unlock()

	select {
	case t.outbound <- out:
	default:
	}
	return nil
}

func (t *Transport) record(call string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, call)
}

func (t *Transport) isConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}
