// internal/server/handler.go
//
// Package server 提供兩種呈現介面：HTML 表單 (form.go) 與 JSON API (本檔)。
// 每個 handler 只負責解析請求、呼叫 bank 操作、輸出結果；商業規則全部在 bank。
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"banksim/internal/bank"
)

type Server struct {
	Bank     *bank.Bank
	logger   *zap.Logger
	cookie   string
	sessions *sessions
}

// NewServer 建立 HTTP 介面；cookie 為表單介面記錄目前帳戶所用的 cookie 名稱。
func NewServer(logger *zap.Logger, b *bank.Bank, cookie string) *Server {
	return &Server{Bank: b, logger: logger, cookie: cookie, sessions: newSessions()}
}

type registerRequest struct {
	Name    string          `json:"name" binding:"required"`
	Balance decimal.Decimal `json:"balance"`
}

// registerResponse 只在註冊成功時回傳一次密碼。
type registerResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Credential string          `json:"credential"`
	Balance    decimal.Decimal `json:"balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type topUpRequest struct {
	Mobile string          `json:"mobile" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/v1/accounts；已驗證的呼叫者只看得到自己的帳戶。
func (s *Server) listAccounts(c *gin.Context) {
	caller := c.GetString(callerKey)
	if caller == "" {
		c.JSON(http.StatusOK, s.Bank.List())
		return
	}
	a, err := s.Bank.Get(caller)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, []bank.Account{a})
}

// POST /api/v1/accounts
func (s *Server) createAccount(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := s.Bank.Register(req.Name, req.Balance)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, registerResponse{ID: a.ID, Name: a.Name, Credential: a.Credential, Balance: a.Balance})
}

// GET /api/v1/accounts/:id
func (s *Server) getAccount(c *gin.Context) {
	if !s.owns(c, c.Param("id")) {
		return
	}
	a, err := s.Bank.Get(c.Param("id"))
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/v1/accounts/:id/deposit
func (s *Server) deposit(c *gin.Context) {
	if !s.owns(c, c.Param("id")) {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := s.Bank.Deposit(c.Param("id"), req.Amount)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/v1/accounts/:id/withdraw
func (s *Server) withdraw(c *gin.Context) {
	if !s.owns(c, c.Param("id")) {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := s.Bank.Withdraw(c.Param("id"), req.Amount)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/v1/accounts/:id/topup
func (s *Server) topUp(c *gin.Context) {
	if !s.owns(c, c.Param("id")) {
		return
	}
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, a, err := s.Bank.TopUp(c.Param("id"), req.Mobile, req.Amount)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "account": a})
}

// POST /api/v1/transfer；成功時同時回傳雙方最新狀態。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !s.owns(c, req.From) {
		return
	}
	from, to, err := s.Bank.Transfer(req.From, req.To, req.Amount)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "transfer success",
		"from":    from,
		"to":      to,
	})
}
