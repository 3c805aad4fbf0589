// internal/menu/gate.go
//
// 有儲存檔時，主選單前先經過登入／註冊。
// 註冊成功只會在此時顯示一次帳號與密碼，之後不會再出現。

package menu

import (
	"errors"
	"strings"
)

// Gate 顯示登入／註冊選單，成功登入時回傳帳號。
// ok 為 false 表示使用者離開或輸入結束；err 只在讀取輸入失敗時不為 nil。
func (m *Menu) Gate() (id string, ok bool, err error) {
	for {
		m.println(gateMenu)
		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return "", false, endOfInput(err)
		}
		switch strings.TrimSpace(choice) {
		case "1":
			id, err := m.login()
			if errors.Is(err, errEOF) || errors.Is(err, errRead) {
				return "", false, endOfInput(err)
			}
			if err != nil {
				m.printf("Error: %v\n", err)
				continue
			}
			return id, true, nil
		case "2":
			if err := m.register(); err != nil {
				if errors.Is(err, errEOF) || errors.Is(err, errRead) {
					return "", false, endOfInput(err)
				}
				m.printf("Error: %v\n", err)
			}
		case "3":
			m.println("Goodbye!")
			return "", false, nil
		default:
			m.println("Error: invalid menu choice")
		}
	}
}

func (m *Menu) login() (string, error) {
	id, err := m.prompt("Account number: ")
	if err != nil {
		return "", err
	}
	cred, err := m.prompt("Password: ")
	if err != nil {
		return "", err
	}
	a, err := m.bank.Authenticate(strings.TrimSpace(id), strings.TrimSpace(cred))
	if err != nil {
		return "", err
	}
	m.printf("Welcome, %s\n", a.Name)
	return a.ID, nil
}

func (m *Menu) register() error {
	name, err := m.prompt("Name: ")
	if err != nil {
		return err
	}
	initial, err := m.promptAmount("Initial balance: ")
	if err != nil {
		return err
	}
	a, err := m.bank.Register(name, initial)
	if err != nil {
		return err
	}
	m.printf("Account created.\nAccount number: %s\nPassword: %s\nKeep these safe, they will not be shown again.\n", a.ID, a.Credential)
	return nil
}
