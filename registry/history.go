package registry

import (
	"fmt"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/shopspring/decimal"
)

// HistoryEntry is a settled transaction as written in a fixture. Timestamp is
// in unix milliseconds.
type HistoryEntry struct {
	Id        string                   `yaml:"id"`
	Kind      models.TransactionKind   `yaml:"kind"`
	Status    models.TransactionStatus `yaml:"status"`
	FromChain string                   `yaml:"from_chain"`
	ToChain   string                   `yaml:"to_chain"`
	Token     string                   `yaml:"token"`
	Amount    string                   `yaml:"amount"`
	Fee       string                   `yaml:"fee"`
	Hash      string                   `yaml:"hash"`
	Timestamp int64                    `yaml:"timestamp"`
}

func (h HistoryEntry) Transaction() models.Transaction {
	timestamp := time.UnixMilli(h.Timestamp).UTC()
	return models.Transaction{
		Id:        h.Id,
		Kind:      h.Kind,
		Status:    h.Status,
		FromChain: h.FromChain,
		ToChain:   h.ToChain,
		Token:     h.Token,
		Amount:    h.Amount,
		Fee:       h.Fee,
		Hash:      h.Hash,
		Timestamp: timestamp,
		UpdatedAt: timestamp,
	}
}

func (r *Registry) validateHistoryEntry(h HistoryEntry) error {
	if h.Id == "" {
		return fmt.Errorf("history entry with empty id")
	}
	if !models.ValidTransactionKind(h.Kind) {
		return fmt.Errorf("history entry '%s' has unknown kind '%s'", h.Id, h.Kind)
	}
	if !h.Status.Terminal() {
		return fmt.Errorf("history entry '%s' must be completed or failed, got '%s'", h.Id, h.Status)
	}
	if _, ok := r.chainIndex[h.FromChain]; !ok {
		return fmt.Errorf("history entry '%s' references unknown chain '%s'", h.Id, h.FromChain)
	}
	if h.ToChain != "" {
		if _, ok := r.chainIndex[h.ToChain]; !ok {
			return fmt.Errorf("history entry '%s' references unknown chain '%s'", h.Id, h.ToChain)
		}
	} else if h.Kind == models.TransactionKindBridge {
		return fmt.Errorf("bridge history entry '%s' has no destination chain", h.Id)
	}
	if _, err := decimal.NewFromString(h.Amount); err != nil {
		return fmt.Errorf("history entry '%s' has invalid amount: %w", h.Id, err)
	}
	if h.Timestamp <= 0 {
		return fmt.Errorf("history entry '%s' has no timestamp", h.Id)
	}
	return nil
}

// History returns the fixture's settled transactions in fixture order.
func (r *Registry) History() []models.Transaction {
	txs := make([]models.Transaction, 0, len(r.history))
	for _, h := range r.history {
		txs = append(txs, h.Transaction())
	}
	return txs
}

// NFTs returns the collectibles held on chainID, or on every chain when
// chainID is empty.
func (r *Registry) NFTs(chainID string) []models.NFT {
	nfts := make([]models.NFT, 0)
	for _, nft := range r.nfts {
		if chainID == "" || nft.Chain == chainID {
			nfts = append(nfts, nft)
		}
	}
	return nfts
}
