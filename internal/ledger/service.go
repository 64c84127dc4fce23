package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"binance-order-ledger/internal/binance"
	"binance-order-ledger/internal/models"
	"go.uber.org/zap"
)

const (
	orderPlacedMessage = "Order placed successfully"

	// persistTimeout bounds the ledger writes that follow an executed order.
	persistTimeout = 30 * time.Second
)

// UserStore loads and persists the user aggregate.
type UserStore interface {
	// FindByID returns models.ErrNotFound when the user does not exist.
	FindByID(ctx context.Context, id uint) (*models.User, error)
	SaveReport(ctx context.Context, report *models.OrderReport) error
	Save(ctx context.Context, user *models.User) error
}

// Service places orders on Binance for users and keeps their order ledger.
type Service struct {
	logger  *zap.Logger
	users   UserStore
	gateway binance.RestClientInterface
	locks   *userLocks
	now     func() time.Time
}

// NewService creates the ledger service. gateway is a credential-free client;
// each order binds it to the ordering user's keys.
func NewService(logger *zap.Logger, users UserStore, gateway binance.RestClientInterface) *Service {
	return &Service{
		logger:  logger.Named("ledger"),
		users:   users,
		gateway: gateway,
		locks:   newUserLocks(),
		now:     time.Now,
	}
}

// PlaceOrder executes a market order for the user and books it. Orders of
// the same user are serialized, so a sell never sees a position another
// in-flight sell is closing.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req OrderRequest) (*PlacedOrder, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	apiKey, secretKey, ok := user.Credentials()
	if !ok {
		return nil, ErrCredentialsMissing
	}

	side, err := TranslateOperation(req.OperationType)
	if err != nil {
		return nil, err
	}

	quantity, err := ResolveQuantity(req.Quantity, user.OrderQuantityLimit)
	if err != nil {
		return nil, err
	}

	l := s.logger.With(
		zap.Uint("user_id", userID),
		zap.String("symbol", req.Symbol),
		zap.String("side", side),
		zap.Float64("quantity", quantity),
	)
	l.Info("Placing market order")

	exec, err := s.gateway.WithCredentials(apiKey, secretKey).CreateMarketOrder(ctx, req.Symbol, side, quantity)
	var unreadable *binance.UnreadableExecutionError
	if errors.As(err, &unreadable) {
		l.Error("Order executed on exchange but its execution could not be read; manual reconciliation required",
			zap.String("exchange_order_id", unreadable.OrderID),
			zap.Error(err),
		)
		return nil, &PersistenceError{ExchangeOrderID: unreadable.OrderID, Err: err}
	}
	if err != nil {
		l.Warn("Exchange rejected order", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrExchangeRejected, err)
	}

	// From here on the order exists on the exchange; every failure must be
	// reported as a ledger inconsistency. The writes outlive the caller, so a
	// client hanging up cannot drop an executed order.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	l = l.With(
		zap.String("exchange_order_id", exec.OrderID),
		zap.Float64("executed_quantity", exec.ExecutedQuantity),
		zap.Float64("average_price", exec.AveragePrice),
	)

	report := BuildReport(req, side, exec, s.now())

	if side == binance.OrderSideSell {
		matched := MatchOpenPosition(user.Reports, req.Symbol, exec.AveragePrice)
		if matched == nil {
			l.Warn("Sell did not match any open position")
		} else {
			l = l.With(zap.Uint("matched_report_id", matched.ID))
			if err := s.users.SaveReport(persistCtx, matched); err != nil {
				return nil, s.persistenceFailure(l, exec, err)
			}
			l.Info("Closed open position")
		}
	}

	user.Reports = append(user.Reports, *report)
	if err := s.users.Save(persistCtx, user); err != nil {
		return nil, s.persistenceFailure(l, exec, err)
	}

	l.Info("Order booked", zap.String("status", report.Status))

	return &PlacedOrder{
		Message:          orderPlacedMessage,
		ExchangeOrderID:  exec.OrderID,
		Symbol:           exec.Symbol,
		OrderKind:        req.OrderKind,
		OperationType:    req.OperationType,
		ExecutedQuantity: exec.ExecutedQuantity,
		AveragePrice:     exec.AveragePrice,
		Status:           report.Status,
		Fills:            exec.Fills,
	}, nil
}

func (s *Service) persistenceFailure(l *zap.Logger, exec *binance.OrderResult, err error) error {
	l.Error("Order executed on exchange but ledger update failed; manual reconciliation required",
		zap.String("exchange_status", exec.Status),
		zap.Int("fills", len(exec.Fills)),
		zap.Error(err),
	)
	return &PersistenceError{ExchangeOrderID: exec.OrderID, Err: err}
}

// ListOrders returns every report of the user in ledger order.
func (s *Service) ListOrders(ctx context.Context, userID uint) (*OrderList, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0, len(user.Reports))
	for i := range user.Reports {
		orders = append(orders, toSummary(&user.Reports[i]))
	}
	return &OrderList{Total: len(orders), Orders: orders}, nil
}

// GetOrder returns the user's report for a Binance order id.
func (s *Service) GetOrder(ctx context.Context, userID uint, exchangeOrderID string) (*OrderSummary, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range user.Reports {
		if user.Reports[i].ExchangeOrderID == exchangeOrderID {
			summary := toSummary(&user.Reports[i])
			return &summary, nil
		}
	}
	return nil, ErrOrderNotFound
}

// ListOpenOrders returns the user's positions that are still held.
func (s *Service) ListOpenOrders(ctx context.Context, userID uint) (*OpenOrderList, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders := make([]OpenOrderSummary, 0)
	for i := range user.Reports {
		if user.Reports[i].IsOpen() {
			orders = append(orders, toOpenSummary(&user.Reports[i]))
		}
	}
	return &OpenOrderList{Total: len(orders), Orders: orders}, nil
}

func (s *Service) loadUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
