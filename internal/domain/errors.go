package domain

import "errors"

var (
	ErrUnknownConnection = errors.New("unknown connection")
	ErrNotInRoom         = errors.New("connection not in the room")
)
