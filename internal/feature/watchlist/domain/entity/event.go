package entity

import "time"

// ChangeAction identifies the mutation that produced a ChangeEvent.
type ChangeAction string

const (
	ChangeActionAdded   ChangeAction = "added"
	ChangeActionRemoved ChangeAction = "removed"
)

// ChangeEvent signals that a user's watchlist changed and any cached view of it is stale.
type ChangeEvent struct {
	UserID     uint         `json:"user_id"`
	Symbol     string       `json:"symbol"`
	Action     ChangeAction `json:"action"`
	OccurredAt time.Time    `json:"occurred_at"`
}
