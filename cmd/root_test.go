package cmd

import (
	"io"
	"testing"

	"github.com/dan13ram/omnichain-portal/app"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/registry"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
	color.NoColor = true
}

func TestLoadRegistry(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		registryFile = ""
		app.Config.Registry.FixturePath = ""

		reg, err := loadRegistry()
		require.NoError(t, err)
		_, ok := reg.Chain("ethereum")
		assert.True(t, ok)
	})

	t.Run("From Config", func(t *testing.T) {
		registryFile = ""
		app.Config.Registry.FixturePath = "../registry/testdata/registry.yml"
		defer func() { app.Config.Registry.FixturePath = "" }()

		reg, err := loadRegistry()
		require.NoError(t, err)
		assert.Equal(t, []string{"chain-a", "chain-b"}, reg.ChainIDs())
	})

	t.Run("Flag Wins", func(t *testing.T) {
		registryFile = "../registry/testdata/invalid.yml"
		app.Config.Registry.FixturePath = "../registry/testdata/registry.yml"
		defer func() {
			registryFile = ""
			app.Config.Registry.FixturePath = ""
		}()

		_, err := loadRegistry()
		assert.Error(t, err)
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "active", statusColor("active"))
	assert.Equal(t, "pending", statusColor("pending"))
	assert.Equal(t, "inactive", statusColor("inactive"))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"chains", "tokens", "bridge", "history", "nfts", "serve"} {
		assert.True(t, names[name], name)
	}
}

func TestHistoryFilter(t *testing.T) {
	filter, err := historyFilter([]string{"failed"}, []string{"bridge", "send"})
	require.NoError(t, err)
	assert.Equal(t, []models.TransactionStatus{models.TransactionStatusFailed}, filter.Statuses)
	assert.Equal(t, []models.TransactionKind{models.TransactionKindBridge, models.TransactionKindSend}, filter.Kinds)

	_, err = historyFilter([]string{"lost"}, nil)
	assert.Error(t, err)

	_, err = historyFilter(nil, []string{"swap"})
	assert.Error(t, err)
}

func TestLoadHistory(t *testing.T) {
	reg, err := registry.Load("../registry/testdata/registry.yml")
	require.NoError(t, err)

	txs, err := loadHistory(reg, models.TransactionFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "hist-2", txs[0].Id)
	assert.Equal(t, "hist-1", txs[1].Id)

	txs, err = loadHistory(reg, models.TransactionFilter{}, 1)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	txs, err = loadHistory(reg, models.TransactionFilter{Statuses: []models.TransactionStatus{models.TransactionStatusCompleted}}, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "hist-1", txs[0].Id)
}
