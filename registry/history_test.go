package registry

import (
	"testing"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("Fixture File", func(t *testing.T) {
		r, err := Load("testdata/registry.yml")
		require.NoError(t, err)

		history := r.History()
		require.Len(t, history, 2)

		first := history[0]
		assert.Equal(t, "hist-1", first.Id)
		assert.Equal(t, models.TransactionKindBridge, first.Kind)
		assert.Equal(t, models.TransactionStatusCompleted, first.Status)
		assert.Equal(t, "chain-b", first.ToChain)
		assert.Equal(t, time.UnixMilli(1700000000000).UTC(), first.Timestamp)
		assert.Equal(t, first.Timestamp, first.UpdatedAt)

		assert.Equal(t, models.TransactionStatusFailed, history[1].Status)
		assert.Empty(t, history[1].ToChain)
	})

	t.Run("Default Is Settled", func(t *testing.T) {
		history := Default().History()
		assert.NotEmpty(t, history)
		for _, tx := range history {
			assert.True(t, tx.Status.Terminal(), tx.Id)
		}
	})
}

func TestHistoryValidation(t *testing.T) {
	chains := []models.Chain{
		{ID: "a", Status: models.ChainStatusActive},
		{ID: "b", Status: models.ChainStatusActive},
	}
	valid := HistoryEntry{
		Id:        "h",
		Kind:      models.TransactionKindBridge,
		Status:    models.TransactionStatusCompleted,
		FromChain: "a",
		ToChain:   "b",
		Token:     "TKN",
		Amount:    "1",
		Timestamp: 1700000000000,
	}

	tests := []struct {
		name   string
		mutate func(h *HistoryEntry)
		errMsg string
	}{
		{"Empty Id", func(h *HistoryEntry) { h.Id = "" }, "empty id"},
		{"Unknown Kind", func(h *HistoryEntry) { h.Kind = "swap" }, "unknown kind"},
		{"Pending", func(h *HistoryEntry) { h.Status = models.TransactionStatusPending }, "completed or failed"},
		{"Unknown Source", func(h *HistoryEntry) { h.FromChain = "c" }, "unknown chain"},
		{"Unknown Destination", func(h *HistoryEntry) { h.ToChain = "c" }, "unknown chain"},
		{"Bridge Without Destination", func(h *HistoryEntry) { h.ToChain = "" }, "no destination"},
		{"Invalid Amount", func(h *HistoryEntry) { h.Amount = "ten" }, "invalid amount"},
		{"No Timestamp", func(h *HistoryEntry) { h.Timestamp = 0 }, "no timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := valid
			tt.mutate(&entry)
			_, err := New(Fixture{Chains: chains, Transactions: []HistoryEntry{entry}})
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	t.Run("Duplicate Id", func(t *testing.T) {
		_, err := New(Fixture{Chains: chains, Transactions: []HistoryEntry{valid, valid}})
		assert.ErrorContains(t, err, "duplicate history entry")
	})

	t.Run("Send Without Destination", func(t *testing.T) {
		entry := valid
		entry.Kind = models.TransactionKindSend
		entry.ToChain = ""
		r, err := New(Fixture{Chains: chains, Transactions: []HistoryEntry{entry}})
		require.NoError(t, err)
		assert.Len(t, r.History(), 1)
	})
}

func TestNFTs(t *testing.T) {
	t.Run("Fixture File", func(t *testing.T) {
		r, err := Load("testdata/registry.yml")
		require.NoError(t, err)

		nfts := r.NFTs("")
		require.Len(t, nfts, 1)
		assert.Equal(t, models.NFT{
			Id:         "nft-a",
			Name:       "Alpha One",
			Image:      "https://images.example.com/alpha-one.png",
			Collection: "Alphas",
			Chain:      "chain-a",
		}, nfts[0])
		assert.Empty(t, r.NFTs("chain-b"))
	})

	t.Run("By Chain", func(t *testing.T) {
		r := Default()
		solana := r.NFTs("solana")
		assert.NotEmpty(t, solana)
		for _, nft := range solana {
			assert.Equal(t, "solana", nft.Chain)
		}
		assert.Greater(t, len(r.NFTs("")), len(solana))
	})

	chains := []models.Chain{{ID: "a", Status: models.ChainStatusActive}}

	t.Run("Empty Id", func(t *testing.T) {
		_, err := New(Fixture{Chains: chains, NFTs: []models.NFT{{Chain: "a"}}})
		assert.ErrorContains(t, err, "empty id")
	})

	t.Run("Duplicate", func(t *testing.T) {
		nft := models.NFT{Id: "n", Chain: "a"}
		_, err := New(Fixture{Chains: chains, NFTs: []models.NFT{nft, nft}})
		assert.ErrorContains(t, err, "duplicate nft")
	})

	t.Run("Unknown Chain", func(t *testing.T) {
		_, err := New(Fixture{Chains: chains, NFTs: []models.NFT{{Id: "n", Chain: "b"}}})
		assert.ErrorContains(t, err, "unknown chain")
	})
}
