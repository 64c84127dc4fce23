package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"binance-order-ledger/internal/config"
	"binance-order-ledger/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// OrderLedger is the order service exposed over HTTP.
type OrderLedger interface {
	PlaceOrder(ctx context.Context, userID uint, req ledger.OrderRequest) (*ledger.PlacedOrder, error)
	ListOrders(ctx context.Context, userID uint) (*ledger.OrderList, error)
	GetOrder(ctx context.Context, userID uint, exchangeOrderID string) (*ledger.OrderSummary, error)
	ListOpenOrders(ctx context.Context, userID uint) (*ledger.OpenOrderList, error)
}

// Server provides the HTTP interface of the order ledger.
type Server struct {
	server *http.Server
	router *gin.Engine
	ledger OrderLedger
	logger *zap.Logger
}

// NewServer creates a Server listening on the configured port.
func NewServer(cfg config.Server, orders OrderLedger, logger *zap.Logger) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		router: gin.New(),
		ledger: orders,
		logger: logger.Named("api-server"),
	}
	s.router.Use(gin.Recovery(), requestLogger(s.logger))
	s.RegisterRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           c.Handler(s.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// RegisterRoutes wires every endpoint on the router.
func (s *Server) RegisterRoutes() {
	s.router.GET("/health", s.healthHandler)

	users := s.router.Group("/api/users/:userId")
	{
		users.POST("/orders", s.placeOrderHandler)
		users.GET("/orders", s.listOrdersHandler)
		users.GET("/orders/:orderId", s.getOrderHandler)
		users.GET("/open-orders", s.listOpenOrdersHandler)
	}
}

// Handler returns the root handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the HTTP server in a new goroutine.
func (s *Server) Start() {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
