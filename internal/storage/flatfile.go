// internal/storage/flatfile.go
//
// 平面檔帳戶儲存：一行一個帳戶，欄位為 identifier,displayName,credential,balance，
// 無標頭、只追加 (append-only)。既有的行永遠不會被改寫或去重，
// 所以註冊之後的餘額變動不會寫回檔案。
//
// 每一行以 encoding/csv 寫出：一般名稱與純逗號格式完全相同，
// 名稱含逗號或引號時會被加上引號，重新載入時不會拆壞紀錄；
// 舊格式中未加引號、內含引號的名稱也照樣讀得回來。名稱不可跨行（由 bank 註冊時檢查）。
// 檔案沒有鎖；多個程序同時追加可能交錯，單一使用者情境下可接受。
package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recordFields = 4

// FlatFile 為以單一文字檔為後端的帳戶儲存。
type FlatFile struct {
	path   string
	logger *zap.Logger
}

// NewFlatFile 建立指向 path 的平面檔儲存；檔案不需事先存在。
func NewFlatFile(logger *zap.Logger, path string) *FlatFile {
	return &FlatFile{path: path, logger: logger}
}

// Path 回傳底層檔案路徑。
func (s *FlatFile) Path() string { return s.path }

// Load 讀出所有紀錄。檔案不存在視為「尚無帳戶」，回傳空切片。
// 每一行各自解析，引號寬鬆處理；格式錯誤、欄位數不符或餘額無法解析的行會被略過並記錄警告，
// 不會影響其他行。
func (s *FlatFile) Load() ([]Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open account store: %w", err)
	}
	defer f.Close()

	var out []Record
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			s.logger.Warn("skipping malformed account line",
				zap.String("path", s.path), zap.Int("line", line), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read account store: %w", err)
	}
	return out, nil
}

// parseRecord 解析單一行。未加引號的名稱中出現的引號原樣保留。
func parseRecord(line string) (Record, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = recordFields
	r.LazyQuotes = true

	fields, err := r.Read()
	if err != nil {
		return Record{}, err
	}
	bal, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return Record{}, fmt.Errorf("bad balance %q: %w", fields[3], err)
	}
	return Record{ID: fields[0], Name: fields[1], Credential: fields[2], Balance: bal}, nil
}

// Append 在檔尾追加一筆紀錄；檔案在本次呼叫內開啟、寫入並關閉。
func (s *FlatFile) Append(rec Record) (err error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open account store: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close account store: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{rec.ID, rec.Name, rec.Credential, rec.Balance.String()}); err != nil {
		return fmt.Errorf("write account record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush account record: %w", err)
	}
	return nil
}
