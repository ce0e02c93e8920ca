// Package commands parses chat commands and routes them to their handlers.
package commands

import (
	"bucket-chan/domain"
	"bucket-chan/errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"
)

// Registry maps command names (marker stripped, case-sensitive) to handlers.
// Registration normally completes before serving starts; the lock keeps
// a late registration from being observed half-done.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register stores handler under the name in pattern, replacing any previous one.
// The pattern must start with the command marker and contain no whitespace.
func (r *Registry) Register(pattern string, handler Handler) error {
	if !strings.HasPrefix(pattern, domain.CommandMarker) || strings.ContainsFunc(pattern, unicode.IsSpace) {
		return fmt.Errorf("%w: %q", errors.ErrMalformedPattern, pattern)
	}
	name := strings.TrimLeft(pattern, domain.CommandMarker)
	if name == "" {
		return fmt.Errorf("%w: %q", errors.ErrMalformedPattern, pattern)
	}
	if handler.isZero() {
		return fmt.Errorf("%w: %q", errors.ErrNilHandler, pattern)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	return nil
}

// Dispatch parses text and invokes the matching handler.
// Text without the marker is a caller bug and returns ErrInvalidDispatch.
// Unknown commands are ignored: the room may host other bots using the same marker.
// A panicking handler is recovered and reported as ErrHandlerPanic.
func (r *Registry) Dispatch(text string, responder Responder) (err error) {
	if !strings.HasPrefix(text, domain.CommandMarker) {
		return fmt.Errorf("%w: %q", errors.ErrInvalidDispatch, text)
	}
	tokens := Tokenize(text)

	r.mu.RLock()
	handler, ok := r.handlers[tokens[0]]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", errors.ErrHandlerPanic, tokens[0], rec)
		}
	}()
	handler.Invoke(tokens, responder)
	return nil
}

// Names returns the registered command names, sorted, with their marker.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Map(lo.Keys(r.handlers), func(name string, _ int) string {
		return domain.CommandMarker + name
	})
	sort.Strings(names)
	return names
}

// Tokenize strips the marker and splits on single spaces.
// There is no quoting: every space separates, so "a  b" yields an empty token.
func Tokenize(text string) []string {
	return strings.Split(strings.TrimLeft(text, domain.CommandMarker), " ")
}
