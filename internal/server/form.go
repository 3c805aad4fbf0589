// internal/server/form.go
//
// HTML 表單介面：金額欄位、收款帳戶／手機號碼欄位，以及存款、提款、轉帳、儲值、查詢餘額五個按鈕。
// 每個按鈕送出後重新顯示表單，並附上成功或錯誤訊息框。
// 目前帳戶以 session cookie 記錄；有儲存檔時需先登入，否則從種子帳戶中選擇。

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"banksim/internal/bank"
)

const accountKey = "account"

// message 為頁面上的訊息框。
type message struct {
	Error bool
	Title string
	Text  string
}

func successMsg(title, text string) *message { return &message{Title: title, Text: text} }

func errorMsg(err error) *message {
	_, _, text := classify(err)
	return &message{Error: true, Title: "Error", Text: text}
}

type homePage struct {
	Persisted bool
	Accounts  []bank.Account
	Message   *message
}

type bankPage struct {
	Account bank.Account
	Message *message
}

// GET /
func (s *Server) home(c *gin.Context) {
	if _, ok := s.sessionAccount(c); ok {
		c.Redirect(http.StatusSeeOther, "/bank")
		return
	}
	s.renderHome(c, http.StatusOK, nil)
}

func (s *Server) renderHome(c *gin.Context, status int, msg *message) {
	page := homePage{Persisted: s.Bank.Persisted(), Message: msg}
	if !page.Persisted {
		page.Accounts = s.Bank.List()
	}
	c.HTML(status, "home.tmpl", page)
}

// POST /login
func (s *Server) login(c *gin.Context) {
	a, err := s.Bank.Authenticate(strings.TrimSpace(c.PostForm("id")), strings.TrimSpace(c.PostForm("credential")))
	if err != nil {
		s.renderHome(c, http.StatusUnauthorized, errorMsg(err))
		return
	}
	s.startSession(c, a.ID)
}

// POST /register；帳號與密碼只在這個回應中出現一次。
func (s *Server) register(c *gin.Context) {
	initial, err := bank.ParseAmount(c.PostForm("balance"))
	if err != nil {
		s.renderHome(c, http.StatusBadRequest, errorMsg(err))
		return
	}
	a, err := s.Bank.Register(c.PostForm("name"), initial)
	if err != nil {
		status, _, _ := classify(err)
		s.renderHome(c, status, errorMsg(err))
		return
	}
	text := fmt.Sprintf("Account created. Account number: %s, Password: %s. Keep these safe, they will not be shown again.", a.ID, a.Credential)
	s.renderHome(c, http.StatusCreated, successMsg("Registered", text))
}

// POST /select；只在種子模式下可用，有儲存檔時必須登入。
func (s *Server) selectAccount(c *gin.Context) {
	if s.Bank.Persisted() {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	a, err := s.Bank.Get(c.PostForm("id"))
	if err != nil {
		s.renderHome(c, http.StatusBadRequest, &message{Error: true, Title: "Error", Text: "please select a valid account"})
		return
	}
	s.startSession(c, a.ID)
}

// POST /logout
func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(s.cookie); err == nil {
		s.sessions.drop(token)
	}
	c.SetCookie(s.cookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) startSession(c *gin.Context, id string) {
	c.SetCookie(s.cookie, s.sessions.create(id), 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/bank")
}

// requireSession 確認 cookie 帶著有效的 session，否則導回首頁。
func (s *Server) requireSession(c *gin.Context) {
	if id, ok := s.sessionAccount(c); ok {
		c.Set(accountKey, id)
		c.Next()
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}

// GET /bank
func (s *Server) form(c *gin.Context) {
	s.renderForm(c, http.StatusOK, nil)
}

func (s *Server) renderForm(c *gin.Context, status int, msg *message) {
	a, err := s.Bank.Get(c.GetString(accountKey))
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.HTML(status, "bank.tmpl", bankPage{Account: a, Message: msg})
}

// POST /bank/:action
func (s *Server) formAction(c *gin.Context) {
	id := c.GetString(accountKey)

	var (
		msg *message
		err error
	)
	switch action := c.Param("action"); action {
	case "deposit", "withdraw", "transfer", "topup":
		msg, err = s.apply(action, id, strings.TrimSpace(c.PostForm("target")), c.PostForm("amount"))
	case "balance":
		var a bank.Account
		if a, err = s.Bank.Get(id); err == nil {
			msg = successMsg("Balance", fmt.Sprintf("%s's Balance: %s", a.Name, a.Balance))
		}
	default:
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err != nil {
		status, _, _ := classify(err)
		s.renderForm(c, status, errorMsg(err))
		return
	}
	s.renderForm(c, http.StatusOK, msg)
}

// apply 解析金額後執行需要金額的表單操作；target 為收款帳戶或手機號碼。
func (s *Server) apply(action, id, target, rawAmount string) (*message, error) {
	amt, err := bank.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	switch action {
	case "deposit":
		if _, err := s.Bank.Deposit(id, amt); err != nil {
			return nil, err
		}
		return successMsg("Success", fmt.Sprintf("Deposited %s successfully.", amt)), nil
	case "withdraw":
		if _, err := s.Bank.Withdraw(id, amt); err != nil {
			return nil, err
		}
		return successMsg("Success", fmt.Sprintf("Withdrew %s successfully.", amt)), nil
	case "transfer":
		if _, _, err := s.Bank.Transfer(id, target, amt); err != nil {
			return nil, err
		}
		return successMsg("Success", fmt.Sprintf("Transferred %s to %s.", amt, target)), nil
	default: // topup
		text, _, err := s.Bank.TopUp(id, target, amt)
		if err != nil {
			return nil, err
		}
		return successMsg("Success", text), nil
	}
}
