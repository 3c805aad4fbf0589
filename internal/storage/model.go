// internal/storage/model.go
//
// 定義儲存層的資料結構：平面檔的帳戶紀錄 (Record)，以及離開時匯出的 JSON 快照 (Snapshot)。
// 本層不含任何商業規則，金額驗證一律交給 bank 套件。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record 為平面檔中的一行：identifier,displayName,credential,balance。
type Record struct {
	ID         string
	Name       string
	Credential string
	Balance    decimal.Decimal
}

// Meta 為快照的中繼資料。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 備註欄
}

// SnapshotAccount 為快照中的單一帳戶；不含密碼。
type SnapshotAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Snapshot 為匯出當下所有帳戶餘額的完整快照。
type Snapshot struct {
	Meta     Meta              `json:"_meta"`
	Accounts []SnapshotAccount `json:"accounts"`
}
