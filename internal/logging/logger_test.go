// internal/logging/logger_test.go

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDevelopment(t *testing.T) {
	logger, err := New("dev")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewProductionByDefault(t *testing.T) {
	logger, err := New("")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

// 輸出位置可以改成檔案，選單程式藉此把日誌移出 stdout。
func TestNewWithOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New("prod", path)
	require.NoError(t, err)

	logger.Warn("menu warning")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"menu warning"`)
	assert.Contains(t, string(data), `"level":"warn"`)
}
