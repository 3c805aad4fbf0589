// internal/app/app.go

// Package app 組裝兩個執行檔共用的元件：依設定決定使用儲存檔或種子帳戶建立 Bank，
// 以及結束時的快照匯出。
package app

import (
	"fmt"

	"go.uber.org/zap"

	"banksim/internal/bank"
	"banksim/internal/config"
	"banksim/internal/storage"
)

// NewBank 依設定建立 Bank。設定了 StorePath 時從平面檔載入帳戶（檔案不存在視為空），
// 否則使用內建的種子帳戶。
func NewBank(logger *zap.Logger, cfg *config.Config) (*bank.Bank, error) {
	if !cfg.Persisted() {
		logger.Info("no account store configured, using seed accounts")
		return bank.New(logger, bank.SeedDirectory(), nil), nil
	}

	store := storage.NewFlatFile(logger, cfg.StorePath)
	recs, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	logger.Info("account store loaded", zap.String("path", cfg.StorePath), zap.Int("accounts", len(recs)))
	return bank.New(logger, bank.LoadDirectory(recs), store), nil
}

// ExportSnapshot 在設定了 SnapshotPath 時寫出目前餘額。
func ExportSnapshot(logger *zap.Logger, cfg *config.Config, b *bank.Bank) {
	if cfg.SnapshotPath == "" {
		return
	}
	if err := storage.SaveSnapshot(cfg.SnapshotPath, b.Snapshot()); err != nil {
		logger.Error("snapshot export failed", zap.String("path", cfg.SnapshotPath), zap.Error(err))
		return
	}
	logger.Info("snapshot exported", zap.String("path", cfg.SnapshotPath))
}
