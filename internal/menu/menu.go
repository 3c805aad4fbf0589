// internal/menu/menu.go
//
// Package menu 為逐行文字選單：讀取輸入、解析數字、呼叫 bank 操作，並把結果或錯誤訊息印回去。
// 所有領域錯誤都在這一層被轉成 "Error: <訊息>" 後繼續執行，不會中止程式。
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"banksim/internal/bank"
)

const mainMenu = `
1. Deposit
2. Withdraw
3. Transfer
4. Mobile Top-up
5. Account Info
6. Exit`

const gateMenu = `
1. Login
2. Register
3. Exit`

var (
	// errEOF 表示輸入已結束；視同選擇離開。
	errEOF = errors.New("end of input")
	// errRead 包住 Scanner 本身的讀取錯誤，例如單行過長；會中止選單並回傳給呼叫端。
	errRead = errors.New("read input")
)

type Menu struct {
	bank *bank.Bank
	in   *bufio.Scanner
	out  io.Writer
}

func New(b *bank.Bank, in io.Reader, out io.Writer) *Menu {
	return &Menu{bank: b, in: bufio.NewScanner(in), out: out}
}

// Run 對 accountID 執行主選單，直到使用者選擇離開或輸入結束。
func (m *Menu) Run(accountID string) error {
	if _, err := m.bank.Get(accountID); err != nil {
		return err
	}
	for {
		m.println(mainMenu)
		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return endOfInput(err)
		}
		cont, err := m.handle(choice, accountID)
		if errors.Is(err, errEOF) || errors.Is(err, errRead) {
			return endOfInput(err)
		}
		if err != nil {
			m.printf("Error: %v\n", err)
		}
		if !cont {
			return nil
		}
	}
}

// handle 執行單一選項；回傳 false 表示離開選單。
func (m *Menu) handle(choice, id string) (bool, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		amt, err := m.promptAmount("Enter deposit amount: ")
		if err != nil {
			return true, err
		}
		a, err := m.bank.Deposit(id, amt)
		if err != nil {
			return true, err
		}
		m.printf("Deposited %s. New balance: %s\n", amt, a.Balance)
	case "2":
		amt, err := m.promptAmount("Enter withdrawal amount: ")
		if err != nil {
			return true, err
		}
		a, err := m.bank.Withdraw(id, amt)
		if err != nil {
			return true, err
		}
		m.printf("Withdrew %s. New balance: %s\n", amt, a.Balance)
	case "3":
		target, err := m.prompt("Enter recipient account: ")
		if err != nil {
			return true, err
		}
		amt, err := m.promptAmount("Enter amount to transfer: ")
		if err != nil {
			return true, err
		}
		from, _, err := m.bank.Transfer(id, strings.TrimSpace(target), amt)
		if err != nil {
			return true, err
		}
		m.printf("Transferred %s to %s. New balance: %s\n", amt, strings.TrimSpace(target), from.Balance)
	case "4":
		mobile, err := m.prompt("Enter 10-digit mobile number: ")
		if err != nil {
			return true, err
		}
		amt, err := m.promptAmount("Enter top-up amount: ")
		if err != nil {
			return true, err
		}
		msg, _, err := m.bank.TopUp(id, strings.TrimSpace(mobile), amt)
		if err != nil {
			return true, err
		}
		m.println(msg)
	case "5":
		a, err := m.bank.Get(id)
		if err != nil {
			return true, err
		}
		m.println(a.String())
	case "6":
		m.println("Exiting application. Goodbye!")
		return false, nil
	default:
		return true, errors.New("invalid menu choice")
	}
	return true, nil
}

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errRead, err)
		}
		return "", errEOF
	}
	return m.in.Text(), nil
}

// endOfInput 把輸入結束視為正常離開，讀取錯誤原樣回傳。
func endOfInput(err error) error {
	if errors.Is(err, errEOF) {
		return nil
	}
	return err
}

func (m *Menu) promptAmount(label string) (decimal.Decimal, error) {
	text, err := m.prompt(label)
	if err != nil {
		return decimal.Zero, err
	}
	return bank.ParseAmount(text)
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
