package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptyDeck is returned when a wizard is constructed over zero slides.
var ErrEmptyDeck = errors.New("deck has no slides")
