package api

import (
	"net/http"
	"strconv"

	"binance-order-ledger/internal/ledger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) placeOrderHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req ledger.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	placed, err := s.ledger.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, placed)
}

func (s *Server) listOrdersHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	orders, err := s.ledger.ListOrders(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrderHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	order, err := s.ledger.GetOrder(c.Request.Context(), userID, c.Param("orderId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) listOpenOrdersHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	orders, err := s.ledger.ListOpenOrders(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 0)
	if err != nil || id == 0 {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "userId must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// fail writes the error body for a ledger error. Internal errors are logged
// and their details withheld from the client.
func (s *Server) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	message := err.Error()

	switch {
	case code == CodeInternal:
		s.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = http.StatusText(status)
	case status >= http.StatusInternalServerError:
		s.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.String("code", code), zap.Error(err))
	}

	abortWithError(c, status, code, message)
}
