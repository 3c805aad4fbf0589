// internal/storage/jsonstore_test.go
//
// 驗證快照匯出：檔案寫入後可被 JSON 解回，Meta 由 SaveSnapshot 補齊，且不留 .tmp 檔。
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSnapshotWritesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	orig := Snapshot{
		Meta: Meta{Note: "test"},
		Accounts: []SnapshotAccount{
			{ID: "10001", Name: "A", Balance: decimal.RequireFromString("100.50")},
			{ID: "10002", Name: "B", Balance: decimal.NewFromInt(200)},
		},
	}
	require.NoError(t, SaveSnapshot(path, orig))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var loaded Snapshot
	require.NoError(t, json.Unmarshal(raw, &loaded))

	assert.Equal(t, "json_snapshot", loaded.Meta.Storage)
	assert.Equal(t, SnapshotVersion, loaded.Meta.Version)
	assert.False(t, loaded.Meta.Timestamp.IsZero())
	require.Len(t, loaded.Accounts, 2)
	assert.Equal(t, "10001", loaded.Accounts[0].ID)
	assert.True(t, loaded.Accounts[0].Balance.Equal(decimal.RequireFromString("100.5")))
}

func TestSaveSnapshotBadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "snapshot.json")
	assert.Error(t, SaveSnapshot(path, Snapshot{}))
}
