// Package domain contains core concepts of the radio stations.
// This file defines Message events and related rules.
// Messages are immutable once sent or received.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	SENT     Direction = "SENT"
	RECEIVED Direction = "RECEIVED"
)

// Message represents one transmitted or received radio message.
type Message struct {
	ID        uuid.UUID // unique identifier
	Station   string    // station owning the log entry
	Peer      string
	Direction Direction
	Text      string
	Morse     string // as sent or received, interference included
	Decoded   string // Morse read back by the receiver, display only
	At        time.Time
}

func NewMessage(station, peer string, direction Direction, text, morse string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		Station:   station,
		Peer:      peer,
		Direction: direction,
		Text:      text,
		Morse:     morse,
		At:        at,
	}
}

// Label is the prefix shown in a station log.
func (d Direction) Label() string {
	switch d {
	case SENT:
		return "SENT"
	case RECEIVED:
		return "RECEIVED"
	default:
		return "UNKNOWN"
	}
}
