// internal/bank/directory.go

package bank

import (
	"github.com/shopspring/decimal"

	"banksim/internal/storage"
)

// Directory 為 identifier → Account 的對照表。
// 實作不需自行加鎖；併發存取由 Bank 序列化。
type Directory interface {
	Get(id string) (*Account, bool)
	Put(a *Account)
	// Each 依實作定義的順序走訪所有帳戶，fn 回傳 false 時停止。
	Each(fn func(*Account) bool)
	Len() int
}

// MemoryDirectory 為保留插入順序的記憶體實作。
// 重複 Put 同一 ID 時取代原帳戶並維持原位置。
type MemoryDirectory struct {
	order []string
	accts map[string]*Account
}

// NewMemoryDirectory 建立空的 MemoryDirectory。
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{accts: make(map[string]*Account)}
}

func (d *MemoryDirectory) Get(id string) (*Account, bool) {
	a, ok := d.accts[id]
	return a, ok
}

func (d *MemoryDirectory) Put(a *Account) {
	if _, ok := d.accts[a.ID]; !ok {
		d.order = append(d.order, a.ID)
	}
	d.accts[a.ID] = a
}

func (d *MemoryDirectory) Each(fn func(*Account) bool) {
	for _, id := range d.order {
		if !fn(d.accts[id]) {
			return
		}
	}
}

func (d *MemoryDirectory) Len() int { return len(d.accts) }

// SeedDirectory 回傳未設定儲存檔時使用的固定種子資料；
// 此時 identifier 就是顯示名稱。
func SeedDirectory() *MemoryDirectory {
	d := NewMemoryDirectory()
	d.Put(&Account{ID: "Tenzin Namgay Dendup", Name: "Tenzin Namgay Dendup", Balance: decimal.NewFromInt(1000)})
	d.Put(&Account{ID: "Karma Dorji", Name: "Karma Dorji", Balance: decimal.NewFromInt(500)})
	return d
}

// LoadDirectory 由平面檔紀錄建立 MemoryDirectory。
// 同一 identifier 出現多行時以最後一行為準。
func LoadDirectory(recs []storage.Record) *MemoryDirectory {
	d := NewMemoryDirectory()
	for _, r := range recs {
		d.Put(&Account{ID: r.ID, Name: r.Name, Credential: r.Credential, Balance: r.Balance})
	}
	return d
}
