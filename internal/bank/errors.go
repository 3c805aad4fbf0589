// internal/bank/errors.go
//
// 領域錯誤 (domain errors)。共有三種類別：
//   - ErrInvalidInput：金額、手機號碼或初始餘額不合法（含數字解析失敗）。
//   - ErrTransferFailure：轉帳金額不合法、餘額不足、收款帳戶不存在或轉給自己。
//   - ErrNotFound：操作的來源帳戶不存在。
//
// 實際回傳的是 *Error，Message 為給使用者看的訊息，Kind 供 errors.Is 判斷類別。
// 呈現層 (menu / server) 負責把錯誤轉為訊息，本層不記錄日誌。

package bank

import "errors"

var (
	// ErrInvalidInput 代表使用者輸入不合法。
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransferFailure 代表轉帳失敗；在任何帳戶被異動之前回傳。
	ErrTransferFailure = errors.New("transfer failure")

	// ErrNotFound 代表帳戶不存在。
	ErrNotFound = errors.New("account not found")
)

// Error 為帶類別的領域錯誤。
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func invalidInput(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

func transferFailure(msg string) error {
	return &Error{Kind: ErrTransferFailure, Message: msg}
}

func notFound(id string) error {
	return &Error{Kind: ErrNotFound, Message: "account " + id + " not found"}
}
