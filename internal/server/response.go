// internal/server/response.go
//
// 統一的錯誤輸出：領域錯誤依類別對應到 HTTP 狀態碼與錯誤代碼，
// 其他錯誤一律 500，並以 trace id 記錄細節。
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"banksim/internal/bank"
)

const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeTransferFailed = "TRANSFER_FAILED"
	CodeNotFound       = "NOT_FOUND"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL"
)

// ErrorResponse 為 JSON API 的錯誤格式。
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"traceId,omitempty"`
}

// classify 回傳 err 對應的狀態碼、錯誤代碼與可公開的訊息。
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, bank.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput, err.Error()
	case errors.Is(err, bank.ErrTransferFailure):
		return http.StatusUnprocessableEntity, CodeTransferFailed, err.Error()
	case errors.Is(err, bank.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, err.Error()
	default:
		return http.StatusInternalServerError, CodeInternal, "internal server error"
	}
}

func (s *Server) writeErr(c *gin.Context, err error) {
	status, code, msg := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String(traceIDKey, c.GetString(traceIDKey)), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Code: code, Message: msg, TraceID: c.GetString(traceIDKey)})
}

// badRequest 用於請求本身無法解析（JSON 格式、缺欄位）。
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeInvalidInput,
		Message: "invalid request body: " + err.Error(),
		TraceID: c.GetString(traceIDKey),
	})
}
