// cmd/menu/main.go
//
// 文字選單版本：在 stdin/stdout 上執行，日誌一律寫到 stderr。
// 有儲存檔時先登入或註冊；否則直接操作 --account 指定的種子帳戶（預設第一個）。
package main

import (
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"banksim/internal/app"
	"banksim/internal/config"
	"banksim/internal/logging"
	"banksim/internal/menu"
)

func main() {
	fs := pflag.NewFlagSet("menu", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	env, _ := fs.GetString("env")
	if v, ok := os.LookupEnv("BANK_APP_ENV"); ok && !fs.Changed("env") {
		env = v
	}
	logger, err := logging.New(env, "stderr")
	if err != nil {
		panic(err)
	}
	// 選單佔用 stdout，只留警告以上的日誌
	logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(logger, fs)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	b, err := app.NewBank(logger, cfg)
	if err != nil {
		logger.Fatal("failed to open bank", zap.Error(err))
	}

	m := menu.New(b, os.Stdin, os.Stdout)

	var id string
	if b.Persisted() {
		var ok bool
		id, ok, err = m.Gate()
		if err != nil {
			logger.Error("login stopped", zap.Error(err))
			os.Exit(1)
		}
		if !ok {
			app.ExportSnapshot(logger, cfg, b)
			return
		}
	} else {
		id = cfg.Account
		if id == "" {
			id = b.List()[0].ID
		}
	}

	if err := m.Run(id); err != nil {
		logger.Error("menu stopped", zap.String("account", id), zap.Error(err))
		os.Exit(1)
	}
	app.ExportSnapshot(logger, cfg, b)
}
