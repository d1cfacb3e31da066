package models

import "time"

// FeeQuote is a fee estimate for a chain pair, valid only for the intent
// version that requested it and until ExpiresAt.
type FeeQuote struct {
	SourceChain      string    `json:"source_chain"`
	DestinationChain string    `json:"destination_chain"`
	Fee              string    `json:"fee"`
	QuotedAt         time.Time `json:"quoted_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	IntentVersion    uint64    `json:"intent_version"`
	Sequence         uint64    `json:"sequence"`
}

func (q FeeQuote) Expired(now time.Time) bool {
	return !q.ExpiresAt.IsZero() && !now.Before(q.ExpiresAt)
}

func (q FeeQuote) Matches(intent BridgeIntent) bool {
	return q.SourceChain == intent.SourceID() &&
		q.DestinationChain == intent.DestinationID() &&
		q.IntentVersion == intent.Version
}
