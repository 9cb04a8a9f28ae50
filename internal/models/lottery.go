package models

import "time"

// RunState is a step of a lottery run.
type RunState string

const (
	RunStateIdle            RunState = "IDLE"
	RunStateWaitlistLoaded  RunState = "WAITLIST_LOADED"
	RunStateSelected        RunState = "SELECTED"
	RunStateLedgerUpdated   RunState = "LEDGER_UPDATED"
	RunStateWinnersNotified RunState = "WINNERS_NOTIFIED"
	RunStateLosersNotified  RunState = "LOSERS_NOTIFIED"
	RunStateDone            RunState = "DONE"
	RunStateFailed          RunState = "FAILED"
)

// LotteryOutcome is the winners/losers partition of one draw.
type LotteryOutcome struct {
	Winners []string `json:"winners"`
	Losers  []string `json:"losers"`
}

// LotteryRequest triggers a lottery run for one event.
type LotteryRequest struct {
	EventID   string
	EventName string
	// Waitlist, when non-nil, is used instead of reading the stored waitlist.
	Waitlist       []string
	RequestedCount int
	// ExcludeInvited drops entrants already in the ledger's invited list before drawing.
	ExcludeInvited bool
}

// RunReport describes how far a lottery run got.
type RunReport struct {
	RunID       string    `json:"runId"`
	EventID     string    `json:"eventId"`
	State       RunState  `json:"state"`
	LastState   RunState  `json:"lastState"`
	Winners     []string  `json:"winners"`
	Losers      []string  `json:"losers"`
	WinnerCount int       `json:"winnerCount"`
	Log         []string  `json:"log"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}
