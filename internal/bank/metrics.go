// internal/bank/metrics.go

package bank

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opDeposit  = "deposit"
	opWithdraw = "withdraw"
	opTransfer = "transfer"
	opTopUp    = "topup"
	opRegister = "register"
	opLogin    = "login"
)

var ledgerOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "banksim",
		Name:      "ledger_operations_total",
		Help:      "Ledger operations by operation and result",
	},
	[]string{"op", "result"},
)

// observe 記錄一次操作結果並原樣回傳 err。
func observe(op string, err error) error {
	ledgerOperations.WithLabelValues(op, resultLabel(err)).Inc()
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrTransferFailure):
		return "transfer_failure"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
