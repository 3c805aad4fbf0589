// internal/bank/account.go

// Package bank 定義核心領域模型與帳本規則：存款、提款、轉帳、手機儲值。
// 每個操作都是「先完整驗證、全部通過才異動」，驗證失敗時餘額保持不變。
package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MobileNumberLength 為手機號碼的固定位數。
const MobileNumberLength = 10

// 金額的範圍：小數最多 MaxAmountScale 位，整數部分最多 MaxAmountDigits 位。
const (
	MaxAmountScale  = 8
	MaxAmountDigits = 18
)

// Account represents a bank account.
type Account struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Credential string          `json:"-"`
	Balance    decimal.Decimal `json:"balance"`
}

// Deposit 存款：amount 必須 > 0。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidInput("deposit amount must be greater than zero")
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw 提款：0 < amount <= balance。金額非正與餘額不足回傳同一種錯誤。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return invalidInput("invalid withdrawal amount")
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Transfer 由 a 轉 amount 至 target。
// 先檢查轉帳本身的前置條件，通過後才依序扣款、入帳。
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return transferFailure("transfer failed due to insufficient funds or invalid amount")
	}
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	if err := target.Deposit(amount); err != nil {
		// 入帳失敗時退回扣款，避免金額消失
		a.Balance = a.Balance.Add(amount)
		return err
	}
	return nil
}

// PhoneTopUp 從帳戶扣款為手機儲值，回傳確認訊息。
// 號碼必須剛好 10 位十進位數字；扣款的錯誤原樣回傳。
func (a *Account) PhoneTopUp(mobile string, amount decimal.Decimal) (string, error) {
	if !IsMobileNumber(mobile) {
		return "", invalidInput("mobile number must be 10 digits")
	}
	if err := a.Withdraw(amount); err != nil {
		return "", err
	}
	return fmt.Sprintf("mobile number %s has been topped up with %s", mobile, amount), nil
}

func (a Account) String() string {
	return fmt.Sprintf("Account: %s, Balance: %s", a.Name, a.Balance)
}

// IsMobileNumber 回報 s 是否為 10 位 ASCII 數字。
func IsMobileNumber(s string) bool {
	if len(s) != MobileNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseAmount 將使用者輸入的文字轉成金額；無法解析時回傳 ErrInvalidInput 類別的錯誤。
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, invalidInput("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalidInput(fmt.Sprintf("could not convert %q to a number", s))
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckAmount 拒絕超出範圍的金額。
// 只看指數與係數位數，不做任何會展開數值的運算；必須在比較或加減之前呼叫。
func CheckAmount(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp < -MaxAmountScale || exp > MaxAmountDigits {
		return invalidInput("amount is out of range")
	}
	if d.NumDigits()+exp > MaxAmountDigits {
		return invalidInput("amount is out of range")
	}
	return nil
}
