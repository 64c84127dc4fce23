package api

import (
	"errors"
	"net/http"

	"binance-order-ledger/internal/ledger"
	"github.com/gin-gonic/gin"
)

// Error codes sent in the "code" field of error bodies.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeOrderNotFound        = "ORDER_NOT_FOUND"
	CodeCredentialsMissing   = "CREDENTIALS_MISSING"
	CodeInvalidOperationType = "INVALID_OPERATION_TYPE"
	CodeQuantityExceedsLimit = "QUANTITY_EXCEEDS_LIMIT"
	CodeQuantityRequired     = "QUANTITY_REQUIRED"
	CodeExchangeRejected     = "EXCHANGE_REJECTED"
	CodeLedgerOutOfSync      = "LEDGER_OUT_OF_SYNC"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorMapping struct {
	target error
	status int
	code   string
}

// The persistence check comes first: a PersistenceError also wraps the
// underlying storage error, which may match nothing else.
var errorMappings = []errorMapping{
	{ledger.ErrPostExecutionPersistence, http.StatusInternalServerError, CodeLedgerOutOfSync},
	{ledger.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
	{ledger.ErrOrderNotFound, http.StatusNotFound, CodeOrderNotFound},
	{ledger.ErrCredentialsMissing, http.StatusBadRequest, CodeCredentialsMissing},
	{ledger.ErrInvalidOperationType, http.StatusBadRequest, CodeInvalidOperationType},
	{ledger.ErrQuantityExceedsLimit, http.StatusBadRequest, CodeQuantityExceedsLimit},
	{ledger.ErrQuantityRequired, http.StatusBadRequest, CodeQuantityRequired},
	{ledger.ErrExchangeRejected, http.StatusBadGateway, CodeExchangeRejected},
}

// statusFor maps a ledger error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}
