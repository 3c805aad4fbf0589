// internal/storage/jsonstore.go
//
// 提供 JSON 快照的匯出。平面檔只會追加新帳戶，不會反映之後的餘額變動，
// 因此結束時可另外匯出一份當下餘額的快照供人工檢視。
// 寫入採「先寫 .tmp 再 rename」，中途失敗不會留下半份檔案。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SnapshotVersion 為目前的快照結構版本。
const SnapshotVersion = 1

// SaveSnapshot 將 Snapshot 以縮排 JSON 原子寫入 path。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Version = SnapshotVersion
	snap.Meta.Timestamp = time.Now()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}

	// 原子替換
	return os.Rename(tmp, path)
}
