// internal/config/config.go
//
// 設定來源優先序：命令列旗標 > 環境變數 (BANK_ 前綴，可由 .env 載入) > configs/config.<env>.yaml > 預設值。
// 載入後以 validator 檢查欄位。
package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix 為所有環境變數的前綴，例如 BANK_PORT。
const EnvPrefix = "bank"

type Config struct {
	Env           string `mapstructure:"APP_ENV" validate:"required,oneof=dev test prod"`
	Port          string `mapstructure:"PORT" validate:"required,numeric"`
	StorePath     string `mapstructure:"STORE_PATH"`    // 空字串表示不使用儲存檔，改用種子帳戶
	SnapshotPath  string `mapstructure:"SNAPSHOT_PATH"` // 結束時匯出餘額快照；空字串表示不匯出
	Account       string `mapstructure:"ACCOUNT"`       // 文字選單在種子模式下操作的帳戶
	SessionCookie string `mapstructure:"SESSION_COOKIE" validate:"required,excludesall= ;="`
}

// Persisted 回報是否設定了帳戶儲存檔。
func (c *Config) Persisted() bool { return c.StorePath != "" }

// flag 名稱 → 設定鍵
var flagKeys = map[string]string{
	"env":      "APP_ENV",
	"port":     "PORT",
	"store":    "STORE_PATH",
	"snapshot": "SNAPSHOT_PATH",
	"account":  "ACCOUNT",
}

// RegisterFlags 在 fs 上定義可覆寫設定的旗標。
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("env", "dev", "runtime environment (dev, test, prod)")
	fs.String("port", "8080", "HTTP listen port")
	fs.String("store", "", "flat-file account store; empty uses the built-in seed accounts")
	fs.String("snapshot", "", "write a JSON balance snapshot here on exit")
	fs.String("account", "", "seed account operated by the text menu")
}

// Load 讀取設定。fs 可為 nil。
func Load(logger *zap.Logger, fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_PATH", "")
	v.SetDefault("SNAPSHOT_PATH", "")
	v.SetDefault("ACCOUNT", "")
	v.SetDefault("SESSION_COOKIE", "banksim_account")

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	// 選用的 yaml 設定檔；找不到就略過
	v.SetConfigName("config." + v.GetString("APP_ENV"))
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Info("config file loaded", zap.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := parseStructEnv(v, &cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, formatConfigErrors(logger, err)
	}
	return &cfg, nil
}

// parseStructEnv 依 mapstructure tag 綁定環境變數後反序列化到 cfg。
func parseStructEnv(v *viper.Viper, cfg interface{}) error {
	t := reflect.TypeOf(cfg).Elem()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if err := v.BindEnv(tag); err != nil {
			return err
		}
	}
	return v.Unmarshal(cfg)
}

func formatConfigErrors(logger *zap.Logger, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, fe := range verrs {
		logger.Error("invalid config value",
			zap.String("field", fe.Field()),
			zap.String("rule", fe.Tag()),
			zap.Any("value", fe.Value()))
	}
	return fmt.Errorf("invalid config: %d field(s) failed validation: %w", len(verrs), err)
}
