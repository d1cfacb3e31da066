package models

import "time"

type EventKind string

const (
	EventWalletConnected     EventKind = "wallet_connected"
	EventWalletConnectFailed EventKind = "wallet_connect_failed"
	EventWalletDisconnected  EventKind = "wallet_disconnected"
	EventQuoteUpdated        EventKind = "quote_updated"
	EventQuoteFailed         EventKind = "quote_failed"
	EventSubmissionAccepted  EventKind = "submission_accepted"
	EventSubmissionRejected  EventKind = "submission_rejected"
	EventSubmissionCompleted EventKind = "submission_completed"
	EventSubmissionFailed    EventKind = "submission_failed"
)

// Event is a discrete notification for the presentation layer. It carries
// what happened, not how to display it.
type Event struct {
	Kind          EventKind `json:"kind"`
	Time          time.Time `json:"time"`
	Intent        string    `json:"intent,omitempty"`
	TransactionId string    `json:"transaction_id,omitempty"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	Message       string    `json:"message,omitempty"`
}

func (e Event) Failed() bool {
	return e.ErrorKind != ""
}
