package domain

import "time"

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Conversation is one logged message, inbound or outbound. Writes are
// best-effort; a failed log must never abort the pipeline.
type Conversation struct {
	ID        int64
	Sender    string
	Direction Direction
	Message   string
	Timestamp time.Time
}
