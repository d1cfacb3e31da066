package models

import (
	"time"
)

type TransactionKind string

const (
	TransactionKindSend    TransactionKind = "send"
	TransactionKindReceive TransactionKind = "receive"
	TransactionKindBridge  TransactionKind = "bridge"
)

func ValidTransactionKind(kind TransactionKind) bool {
	return kind == TransactionKindSend || kind == TransactionKindReceive || kind == TransactionKindBridge
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

type Transaction struct {
	Id           string            `bson:"_id" json:"id"`
	Kind         TransactionKind   `bson:"kind" json:"kind"`
	Status       TransactionStatus `bson:"status" json:"status"`
	FromChain    string            `bson:"from_chain" json:"from_chain"`
	ToChain      string            `bson:"to_chain" json:"to_chain"`
	Token        string            `bson:"token" json:"token"`
	Amount       string            `bson:"amount" json:"amount"`
	Fee          string            `bson:"fee" json:"fee"`
	Timestamp    time.Time         `bson:"timestamp" json:"timestamp"`
	Hash         string            `bson:"hash" json:"hash"`
	ErrorMessage string            `bson:"error_message,omitempty" json:"error_message,omitempty"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}

// TransactionFilter selects ledger entries. Empty slices match everything.
type TransactionFilter struct {
	Statuses []TransactionStatus
	Kinds    []TransactionKind
}

func (f TransactionFilter) Match(tx Transaction) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, tx.Status) {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, tx.Kind) {
		return false
	}
	return true
}

func containsStatus(statuses []TransactionStatus, status TransactionStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsKind(kinds []TransactionKind, kind TransactionKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
