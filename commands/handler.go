package commands

// HandlerKind tags which of the two handler shapes a Handler carries.
type HandlerKind string

const (
	SIDE_EFFECTING HandlerKind = "SIDE_EFFECTING"
	SINGLE_REPLY   HandlerKind = "SINGLE_REPLY"
)

// Handler is a command implementation in one of two shapes:
//   - SIDE_EFFECTING receives the tokens and a Responder and may reply any number of times.
//   - SINGLE_REPLY receives the tokens and returns the text sent once, publicly.
//
// tokens[0] is always the command name. Arity is checked by the handler itself.
type Handler struct {
	kind        HandlerKind
	action      func(tokens []string, responder Responder)
	singleReply func(tokens []string) string
}

// Action builds a side-effecting handler.
func Action(fn func(tokens []string, responder Responder)) Handler {
	return Handler{kind: SIDE_EFFECTING, action: fn}
}

// Reply builds a handler whose return value is sent publicly, exactly once.
func Reply(fn func(tokens []string) string) Handler {
	return Handler{kind: SINGLE_REPLY, singleReply: fn}
}

func (h Handler) Kind() HandlerKind {
	return h.kind
}

func (h Handler) isZero() bool {
	switch h.kind {
	case SIDE_EFFECTING:
		return h.action == nil
	case SINGLE_REPLY:
		return h.singleReply == nil
	default:
		return true
	}
}

// Invoke runs the handler synchronously.
func (h Handler) Invoke(tokens []string, responder Responder) {
	switch h.kind {
	case SIDE_EFFECTING:
		h.action(tokens, responder)
	case SINGLE_REPLY:
		responder.SendPublic(h.singleReply(tokens))
	}
}
