package errors

import "fmt"

var (
	ErrMalformedPattern    = fmt.Errorf("command pattern must start with the marker and contain no whitespace")
	ErrNilHandler          = fmt.Errorf("command handler is empty")
	ErrInvalidDispatch     = fmt.Errorf("dispatch must be passed a command")
	ErrHandlerPanic        = fmt.Errorf("command handler panic")
	ErrSessionPanic        = fmt.Errorf("session panic")
	ErrCredentialsRejected = fmt.Errorf("credentials rejected by the service")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrNotConnected        = fmt.Errorf("transport is not connected")
	ErrAlreadyConnected    = fmt.Errorf("transport is already connected")
)
