package models

import "fmt"

// BridgeIntent holds the parameters of a prospective bridge transfer.
// Version changes on every mutation and identifies the snapshot a quote was made for.
type BridgeIntent struct {
	Source      *Chain `json:"source"`
	Destination *Chain `json:"destination"`
	Token       *Token `json:"token"`
	Amount      string `json:"amount"`
	Version     uint64 `json:"version"`
}

func (i BridgeIntent) SourceID() string {
	if i.Source == nil {
		return ""
	}
	return i.Source.ID
}

func (i BridgeIntent) DestinationID() string {
	if i.Destination == nil {
		return ""
	}
	return i.Destination.ID
}

func (i BridgeIntent) TokenSymbol() string {
	if i.Token == nil {
		return ""
	}
	return i.Token.Symbol
}

// Summary renders the intent for notifications, e.g. "10 USDC from Solana to Ethereum".
func (i BridgeIntent) Summary() string {
	source, destination := "?", "?"
	if i.Source != nil {
		source = i.Source.Name
	}
	if i.Destination != nil {
		destination = i.Destination.Name
	}
	amount := i.Amount
	if amount == "" {
		amount = "0"
	}
	symbol := i.TokenSymbol()
	if symbol == "" {
		symbol = "?"
	}
	return fmt.Sprintf("%s %s from %s to %s", amount, symbol, source, destination)
}
