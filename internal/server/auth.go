// internal/server/auth.go
//
// 登入閘門。表單介面的 cookie 只帶不透明的隨機 token，token → 帳號的對照只存在伺服器記憶體；
// JSON API 在有儲存檔時要求每個請求附上帳號與密碼標頭，且只能操作自己的帳戶。
// 種子帳戶沒有密碼，種子模式下兩者都直接放行。
package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderAccountID  = "X-Account-Id"
	HeaderCredential = "X-Account-Password"
	callerKey        = "caller"
)

// sessions 為 token → 帳號的對照表。
type sessions struct {
	mu  sync.Mutex
	ids map[string]string
}

func newSessions() *sessions {
	return &sessions{ids: make(map[string]string)}
}

func (s *sessions) create(accountID string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[token] = accountID
	return token
}

func (s *sessions) lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ids[token]
	return id, ok
}

func (s *sessions) drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, token)
}

// sessionAccount 由 cookie 找出目前登入的帳號；帳戶必須仍然存在。
func (s *Server) sessionAccount(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.cookie)
	if err != nil {
		return "", false
	}
	id, ok := s.sessions.lookup(token)
	if !ok {
		return "", false
	}
	if _, err := s.Bank.Get(id); err != nil {
		return "", false
	}
	return id, true
}

// requireCredential 以 X-Account-Id / X-Account-Password 驗證 API 呼叫者。
func (s *Server) requireCredential(c *gin.Context) {
	if !s.Bank.Persisted() {
		c.Next()
		return
	}
	a, err := s.Bank.Authenticate(strings.TrimSpace(c.GetHeader(HeaderAccountID)), c.GetHeader(HeaderCredential))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Code:    CodeUnauthorized,
			Message: err.Error(),
			TraceID: c.GetString(traceIDKey),
		})
		return
	}
	c.Set(callerKey, a.ID)
	c.Next()
}

// owns 確認呼叫者只操作自己的帳戶；沒有呼叫者（種子模式）時一律允許。
func (s *Server) owns(c *gin.Context, id string) bool {
	caller := c.GetString(callerKey)
	if caller == "" || caller == id {
		return true
	}
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
		Code:    CodeForbidden,
		Message: "account does not belong to the caller",
		TraceID: c.GetString(traceIDKey),
	})
	return false
}
