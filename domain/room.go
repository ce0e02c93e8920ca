package domain

// RoomID identifies a chat room on the service.
type RoomID string

// UserID identifies an account on the service.
type UserID string

// PersonaState is the presence shown to other members.
type PersonaState string

const (
	OFFLINE PersonaState = "OFFLINE"
	ONLINE  PersonaState = "ONLINE"
	BUSY    PersonaState = "BUSY"
	AWAY    PersonaState = "AWAY"
)
