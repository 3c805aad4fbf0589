package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"banksim/internal/config"
	"banksim/internal/storage"
)

func TestNewBankSeed(t *testing.T) {
	b, err := NewBank(zaptest.NewLogger(t), &config.Config{})
	require.NoError(t, err)
	assert.False(t, b.Persisted())
	assert.Len(t, b.List(), 2)
}

func TestNewBankFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345,Ann,4321,100\n"), 0o644))

	b, err := NewBank(zaptest.NewLogger(t), &config.Config{StorePath: path})
	require.NoError(t, err)
	assert.True(t, b.Persisted())
	a, err := b.Authenticate("12345", "4321")
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(100)))
}

func TestNewBankMissingStoreIsEmpty(t *testing.T) {
	b, err := NewBank(zaptest.NewLogger(t), &config.Config{StorePath: filepath.Join(t.TempDir(), "none.txt")})
	require.NoError(t, err)
	assert.Empty(t, b.List())
}

func TestExportSnapshot(t *testing.T) {
	logger := zaptest.NewLogger(t)
	path := filepath.Join(t.TempDir(), "snap.json")
	cfg := &config.Config{SnapshotPath: path}
	b, err := NewBank(logger, cfg)
	require.NoError(t, err)
	_, err = b.Deposit("Karma Dorji", decimal.NewFromInt(1))
	require.NoError(t, err)

	ExportSnapshot(logger, cfg, b)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap storage.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Accounts, 2)
	assert.True(t, snap.Accounts[1].Balance.Equal(decimal.NewFromInt(501)))
}

func TestExportSnapshotDisabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	b, err := NewBank(logger, &config.Config{})
	require.NoError(t, err)
	ExportSnapshot(logger, &config.Config{}, b) // 不應寫任何檔案或 panic
}
