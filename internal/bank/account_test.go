package bank

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertBalance(t *testing.T, want string, a *Account) {
	t.Helper()
	assert.True(t, a.Balance.Equal(d(want)), "balance=%s want=%s", a.Balance, want)
}

func TestAccountDeposit(t *testing.T) {
	a := &Account{Name: "Test", Balance: d("100")}
	require.NoError(t, a.Deposit(d("50")))
	assertBalance(t, "150", a)

	require.NoError(t, a.Deposit(d("0.01")))
	assertBalance(t, "150.01", a)

	for _, amt := range []string{"0", "-10", "-0.01"} {
		err := a.Deposit(d(amt))
		assert.ErrorIs(t, err, ErrInvalidInput, "amount=%s", amt)
		assertBalance(t, "150.01", a)
	}
}

func TestAccountWithdraw(t *testing.T) {
	a := &Account{Name: "Test", Balance: d("100")}
	require.NoError(t, a.Withdraw(d("50")))
	assertBalance(t, "50", a)

	// 剛好提光
	require.NoError(t, a.Withdraw(d("50")))
	assertBalance(t, "0", a)

	a.Balance = d("100")
	for _, amt := range []string{"0", "-1", "200", "100.01"} {
		err := a.Withdraw(d(amt))
		assert.ErrorIs(t, err, ErrInvalidInput, "amount=%s", amt)
		assert.NotErrorIs(t, err, ErrTransferFailure)
		assertBalance(t, "100", a)
	}
}

func TestAccountTransfer(t *testing.T) {
	a := &Account{Name: "A", Balance: d("100")}
	b := &Account{Name: "B", Balance: d("50")}

	require.NoError(t, a.Transfer(b, d("50")))
	assertBalance(t, "50", a)
	assertBalance(t, "100", b)

	a.Balance, b.Balance = d("100"), d("50")
	for _, amt := range []string{"200", "0", "-5"} {
		err := a.Transfer(b, d(amt))
		assert.ErrorIs(t, err, ErrTransferFailure, "amount=%s", amt)
		assert.NotErrorIs(t, err, ErrInvalidInput)
		assertBalance(t, "100", a)
		assertBalance(t, "50", b)
	}
}

func TestAccountPhoneTopUp(t *testing.T) {
	a := &Account{Name: "Test", Balance: d("100")}
	msg, err := a.PhoneTopUp("1234567890", d("10"))
	require.NoError(t, err)
	assert.Contains(t, msg, "1234567890")
	assert.Contains(t, msg, "10")
	assert.Contains(t, msg, "topped up")
	assertBalance(t, "90", a)

	for _, mobile := range []string{"1234", "12345678901", "12345abcde", "", "١٢٣٤٥٦٧٨٩٠", "123456789 "} {
		_, err := a.PhoneTopUp(mobile, d("10"))
		assert.ErrorIs(t, err, ErrInvalidInput, "mobile=%q", mobile)
		assertBalance(t, "90", a)
	}

	// 號碼正確但餘額不足：沿用 Withdraw 的錯誤
	_, err = a.PhoneTopUp("0987654321", d("1000"))
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrInvalidInput, derr.Kind)
	assert.Equal(t, "invalid withdrawal amount", derr.Message)
	assertBalance(t, "90", a)
}

func TestAccountStringIsReadOnly(t *testing.T) {
	a := &Account{Name: "Test", Balance: d("100")}
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Account: Test, Balance: 100", a.String())
	}
	assertBalance(t, "100", a)
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount(" 12.50 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("12.5")))

	got, err = ParseAmount("-3")
	require.NoError(t, err, "sign is validated by the ledger, not the parser")
	assert.True(t, got.Equal(d("-3")))

	for _, in := range []string{"", "   ", "abc", "12,5", "1.2.3"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%q", in)
	}
}

func TestParseAmountRange(t *testing.T) {
	for _, in := range []string{"1e300000000", "1e-300000000", "0.000000001", "1000000000000000000", "1e19"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%q", in)
	}
	for _, in := range []string{"0.00000001", "999999999999999999", "123456789.12345678", "1e3"} {
		_, err := ParseAmount(in)
		assert.NoError(t, err, "input=%q", in)
	}
	assert.ErrorIs(t, CheckAmount(decimal.New(1, 300000000)), ErrInvalidInput)
}

func TestIsMobileNumber(t *testing.T) {
	assert.True(t, IsMobileNumber("0123456789"))
	assert.False(t, IsMobileNumber(strings.Repeat("1", 9)))
	assert.False(t, IsMobileNumber("01234-6789"))
}
