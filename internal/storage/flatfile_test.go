// internal/storage/flatfile_test.go

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t *testing.T) *FlatFile {
	t.Helper()
	return NewFlatFile(zaptest.NewLogger(t), filepath.Join(t.TempDir(), "accounts.txt"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	recs, err := newStore(t).Load()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestAppendThenLoad(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(Record{ID: "12345", Name: "Ann", Credential: "4321", Balance: decimal.NewFromInt(100)}))
	require.NoError(t, s.Append(Record{ID: "54321", Name: "Bo", Credential: "1111", Balance: decimal.RequireFromString("0.25")}))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "12345,Ann,4321,100\n54321,Bo,1111,0.25\n", string(raw))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "12345", recs[0].ID)
	assert.Equal(t, "Ann", recs[0].Name)
	assert.Equal(t, "4321", recs[0].Credential)
	assert.True(t, recs[0].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, recs[1].Balance.Equal(decimal.RequireFromString("0.25")))
}

func TestAppendNeverRewrites(t *testing.T) {
	s := newStore(t)
	rec := Record{ID: "12345", Name: "Ann", Credential: "4321", Balance: decimal.NewFromInt(100)}
	require.NoError(t, s.Append(rec))
	rec.Balance = decimal.NewFromInt(5)
	require.NoError(t, s.Append(rec))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 2, "duplicate identifiers are kept as separate lines")
	assert.True(t, recs[0].Balance.Equal(decimal.NewFromInt(100)))
}

func TestNameWithCommaRoundTrips(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(Record{ID: "11111", Name: "Doe, Jane", Credential: "9999", Balance: decimal.NewFromInt(7)}))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Doe, Jane", recs[0].Name)
	assert.Equal(t, "9999", recs[0].Credential)
}

func TestLoadSkipsBadLines(t *testing.T) {
	s := newStore(t)
	content := "12345,Ann,4321,100\n" +
		"too,few,fields\n" +
		"22222,Bad,0000,notanumber\n" +
		"\n" +
		"33333,Cy,1234,-3.5\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "12345", recs[0].ID)
	assert.Equal(t, "33333", recs[1].ID)
	assert.True(t, recs[1].Balance.Equal(decimal.RequireFromString("-3.5")))
}

// 舊的純文字格式不加引號；名稱中的引號必須原樣讀回，開頭的引號也只影響自己那一行。
func TestLoadLegacyLinesWithQuotes(t *testing.T) {
	s := newStore(t)
	content := "12345,Jo \"JJ\" Doe,4321,100\n" +
		"54321,\"Unclosed,1111,5\n" +
		"67890,Bo,2222,7\n" +
		"24680,Al,3333,9\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, `Jo "JJ" Doe`, recs[0].Name)
	assert.Equal(t, "4321", recs[0].Credential)
	assert.Equal(t, "67890", recs[1].ID)
	assert.Equal(t, "24680", recs[2].ID)
}

func TestNameWithQuotesRoundTrips(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(Record{ID: "11111", Name: `"Jo" "JJ" Doe`, Credential: "9999", Balance: decimal.NewFromInt(7)}))
	require.NoError(t, s.Append(Record{ID: "22222", Name: "Bo", Credential: "8888", Balance: decimal.NewFromInt(1)}))

	recs, err := s.Load()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, `"Jo" "JJ" Doe`, recs[0].Name)
	assert.Equal(t, "Bo", recs[1].Name)
}
