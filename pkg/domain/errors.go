package domain

import "errors"

// ErrSessionNotFound is returned when an engine has no session with the given identifier.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnsupportedSessionType is returned for session types an engine or the tool boundary rejects.
var ErrUnsupportedSessionType = errors.New("unsupported session type")

// ErrUnknownCommand is returned when an engine does not recognise a step command.
var ErrUnknownCommand = errors.New("unknown step command")

// ErrNoElement is returned when none of a step's selectors match an element.
var ErrNoElement = errors.New("no element matches the selectors")
