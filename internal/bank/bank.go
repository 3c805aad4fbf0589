// internal/bank/bank.go

// Bank 為聚合根：以單一互斥鎖序列化對 Directory 的所有讀寫，
// 讓 HTTP 同時進來的請求仍然一次只執行一個帳本操作，轉帳的扣款與入帳不會被其他請求看到中間狀態。
// 對外一律回傳帳戶的值拷貝。
package bank

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"banksim/internal/storage"
)

const (
	idMin, idSpan                 = 10000, 90000 // 5 位數帳號
	credentialMin, credentialSpan = 1000, 9000   // 4 位數密碼
	maxIDAttempts                 = 32
)

// Store 為註冊時追加帳戶紀錄的儲存；nil 代表只存在記憶體中。
type Store interface {
	Append(rec storage.Record) error
}

type Bank struct {
	mu     sync.Mutex
	dir    Directory
	store  Store
	logger *zap.Logger
	intn   func(n int) int
}

// New 建立 Bank。store 可為 nil（種子模式）。
func New(logger *zap.Logger, dir Directory, store Store) *Bank {
	return &Bank{dir: dir, store: store, logger: logger, intn: rand.IntN}
}

// Persisted 回報是否有儲存檔（決定呈現層是否需要登入/註冊流程）。
func (b *Bank) Persisted() bool { return b.store != nil }

// Get 依 ID 取得帳戶快照；不會改變任何狀態。
func (b *Bank) Get(id string) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.dir.Get(id)
	if !ok {
		return Account{}, notFound(id)
	}
	return *a, nil
}

// List 依 Directory 順序回傳所有帳戶的拷貝。
func (b *Bank) List() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Account, 0, b.dir.Len())
	b.dir.Each(func(a *Account) bool {
		out = append(out, *a)
		return true
	})
	return out
}

func (b *Bank) Deposit(id string, amt decimal.Decimal) (Account, error) {
	if err := CheckAmount(amt); err != nil {
		return Account{}, observe(opDeposit, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.dir.Get(id)
	if !ok {
		return Account{}, observe(opDeposit, notFound(id))
	}
	if err := a.Deposit(amt); err != nil {
		return Account{}, observe(opDeposit, err)
	}
	observe(opDeposit, nil)
	return *a, nil
}

func (b *Bank) Withdraw(id string, amt decimal.Decimal) (Account, error) {
	if err := CheckAmount(amt); err != nil {
		return Account{}, observe(opWithdraw, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.dir.Get(id)
	if !ok {
		return Account{}, observe(opWithdraw, notFound(id))
	}
	if err := a.Withdraw(amt); err != nil {
		return Account{}, observe(opWithdraw, err)
	}
	observe(opWithdraw, nil)
	return *a, nil
}

// Transfer 在同一個臨界區內完成驗證、扣款與入帳，回傳雙方最新狀態。
func (b *Bank) Transfer(fromID, toID string, amt decimal.Decimal) (from, to Account, err error) {
	if err := CheckAmount(amt); err != nil {
		return Account{}, Account{}, observe(opTransfer, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	src, ok := b.dir.Get(fromID)
	if !ok {
		return Account{}, Account{}, observe(opTransfer, notFound(fromID))
	}
	if fromID == toID {
		return Account{}, Account{}, observe(opTransfer, transferFailure("cannot transfer to the same account"))
	}
	dst, ok := b.dir.Get(toID)
	if !ok {
		return Account{}, Account{}, observe(opTransfer, transferFailure("recipient account not found"))
	}
	if err := src.Transfer(dst, amt); err != nil {
		return Account{}, Account{}, observe(opTransfer, err)
	}
	observe(opTransfer, nil)
	return *src, *dst, nil
}

// TopUp 為手機儲值，回傳確認訊息與扣款後的帳戶。
func (b *Bank) TopUp(id, mobile string, amt decimal.Decimal) (string, Account, error) {
	if err := CheckAmount(amt); err != nil {
		return "", Account{}, observe(opTopUp, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.dir.Get(id)
	if !ok {
		return "", Account{}, observe(opTopUp, notFound(id))
	}
	msg, err := a.PhoneTopUp(mobile, amt)
	if err != nil {
		return "", Account{}, observe(opTopUp, err)
	}
	observe(opTopUp, nil)
	return msg, *a, nil
}

// Register 建立新帳戶：產生 5 位數帳號與 4 位數密碼，先寫入儲存檔再加入 Directory。
// 帳號與既有帳戶重複時會重新產生。回傳值包含密碼，呼叫端只應顯示一次。
func (b *Bank) Register(name string, initial decimal.Decimal) (Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, observe(opRegister, invalidInput("name is required"))
	}
	if strings.ContainsAny(name, "\r\n") {
		return Account{}, observe(opRegister, invalidInput("name must be a single line"))
	}
	if err := CheckAmount(initial); err != nil {
		return Account{}, observe(opRegister, err)
	}
	if initial.IsNegative() {
		return Account{}, observe(opRegister, invalidInput("initial balance cannot be negative"))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := b.newID()
	if err != nil {
		return Account{}, observe(opRegister, err)
	}
	a := &Account{
		ID:         id,
		Name:       name,
		Credential: fmt.Sprintf("%04d", credentialMin+b.intn(credentialSpan)),
		Balance:    initial,
	}
	if b.store != nil {
		rec := storage.Record{ID: a.ID, Name: a.Name, Credential: a.Credential, Balance: a.Balance}
		if err := b.store.Append(rec); err != nil {
			b.logger.Error("persist account failed", zap.String("account", a.ID), zap.Error(err))
			return Account{}, observe(opRegister, fmt.Errorf("save account: %w", err))
		}
	}
	b.dir.Put(a)
	b.logger.Info("account registered", zap.String("account", a.ID), zap.String("name", a.Name))
	observe(opRegister, nil)
	return *a, nil
}

// newID 產生尚未被使用的 5 位數帳號；須在持有 mu 時呼叫。
func (b *Bank) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := fmt.Sprintf("%05d", idMin+b.intn(idSpan))
		if _, taken := b.dir.Get(id); !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free account number after %d attempts", maxIDAttempts)
}

// Authenticate 以帳號與密碼完全相等比對登入。
func (b *Bank) Authenticate(id, credential string) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.dir.Get(id)
	if !ok || a.Credential == "" || a.Credential != credential {
		return Account{}, observe(opLogin, invalidInput("invalid account number or password"))
	}
	observe(opLogin, nil)
	return *a, nil
}

// Snapshot 匯出目前所有帳戶的餘額（不含密碼）。
func (b *Bank) Snapshot() storage.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := storage.Snapshot{
		Meta: storage.Meta{Note: "balances at export time; the account store only holds registration values"},
	}
	b.dir.Each(func(a *Account) bool {
		s.Accounts = append(s.Accounts, storage.SnapshotAccount{ID: a.ID, Name: a.Name, Balance: a.Balance})
		return true
	})
	return s
}
