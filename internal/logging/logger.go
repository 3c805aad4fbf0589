// internal/logging/logger.go

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 依 env 建立程序的 logger：dev、test 使用彩色的開發格式，其他一律為 production JSON。
// outputs 可覆寫輸出位置（例如 "stderr"）；未指定時 production 寫到 stdout。
func New(env string, outputs ...string) (*zap.Logger, error) {
	var config zap.Config

	if env == "dev" || env == "test" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else { // prod, or default
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}
	if len(outputs) > 0 {
		config.OutputPaths = outputs
	}
	return config.Build(zap.AddStacktrace(zap.DPanicLevel))
}
