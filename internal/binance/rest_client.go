package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"binance-order-ledger/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	baseURL           = "https://api.binance.com/api/v3"
	testnetBaseURL    = "https://testnet.binance.vision/api/v3"
	defaultRecvWindow = 5000 // How long a request is valid in milliseconds
	OrderTypeMarket   = "MARKET"
	OrderSideBuy      = "BUY"
	OrderSideSell     = "SELL"
	orderRespTypeFull = "FULL"
)

var (
	// ErrMissingCredentials is returned when a signed endpoint is called on a
	// client that was never bound to a key pair.
	ErrMissingCredentials = errors.New("binance credentials not set")

	// ErrUnreadableExecution means Binance accepted the order but its
	// response could not be decoded. The order must be treated as executed.
	ErrUnreadableExecution = errors.New("order accepted by binance but its response could not be read")

	errUndecodableResponse = errors.New("successful response could not be decoded")
)

// UnreadableExecutionError carries what is known about an accepted order
// whose response was unreadable. OrderID is empty if it could not be decoded.
type UnreadableExecutionError struct {
	OrderID string
	Err     error
}

func (e *UnreadableExecutionError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("%s: %v", ErrUnreadableExecution, e.Err)
	}
	return fmt.Sprintf("%s (order %s): %v", ErrUnreadableExecution, e.OrderID, e.Err)
}

func (e *UnreadableExecutionError) Unwrap() []error { return []error{ErrUnreadableExecution, e.Err} }

// RestClientInterface defines the interface for the Binance REST API client.
type RestClientInterface interface {
	GetServerTime(ctx context.Context) (int64, error)
	// WithCredentials returns a client signing with the given key pair.
	// The receiver is left untouched, so one base client can serve many users.
	WithCredentials(apiKey, secretKey string) RestClientInterface
	CreateMarketOrder(ctx context.Context, symbol, side string, quantity float64) (*OrderResult, error)
}

// RestClient is a client for the Binance REST API.
// It implements the RestClientInterface.
type RestClient struct {
	client     *resty.Client
	apiKey     string
	secretKey  string
	recvWindow int
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// ensure RestClient implements the interface
var _ RestClientInterface = (*RestClient)(nil)

// NewRestClient creates a new Binance REST API client without credentials.
func NewRestClient(cfg *config.Binance, logger *zap.Logger) *RestClient {
	url := cfg.BaseURL
	switch {
	case url != "":
		logger.Info("Using custom Binance endpoint", zap.String("base_url", url))
	case cfg.Testnet:
		url = testnetBaseURL
		logger.Warn("Using Binance Testnet")
	default:
		url = baseURL
		logger.Info("Using Binance Production API")
	}

	recvWindow := cfg.RecvWindow
	if recvWindow <= 0 {
		recvWindow = defaultRecvWindow
	}

	client := resty.New().SetBaseURL(url)

	// The limiter is shared by every credentialed copy: the request weight
	// budget belongs to the calling IP, not to the API key.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &RestClient{
		client:     client,
		recvWindow: recvWindow,
		logger:     logger.Named("binance"),
		limiter:    limiter,
	}
}

// WithCredentials returns a shallow copy of the client bound to a key pair.
func (c *RestClient) WithCredentials(apiKey, secretKey string) RestClientInterface {
	cp := *c
	cp.apiKey = apiKey
	cp.secretKey = secretKey
	return &cp
}

// sign creates a HMAC-SHA256 signature for the request.
func (c *RestClient) sign(data string) string {
	h := hmac.New(sha256.New, []byte(c.secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// GetServerTime fetches the current server time from Binance.
// This is a good endpoint to test connectivity.
func (c *RestClient) GetServerTime(ctx context.Context) (int64, error) {
	type ServerTimeResponse struct {
		ServerTime int64 `json:"serverTime"`
	}

	req := c.client.R().
		SetContext(ctx).
		SetResult(&ServerTimeResponse{})

	resp, err := c.doRequest(ctx, http.MethodGet, "/time", req, true)
	if err != nil {
		c.logger.Error("Failed to get server time", zap.Error(err))
		return 0, fmt.Errorf("failed to get server time: %w", err)
	}

	result := resp.Result().(*ServerTimeResponse)
	return result.ServerTime, nil
}

// APIError is an error payload returned by Binance, e.g. {"code":-2010,"msg":"Account has insufficient balance"}.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

// doRequest handles the actual request execution with rate limiting and retry logic.
// Requests that are not idempotent are only retried when Binance answered with a
// rate-limit status, which guarantees the request was rejected before execution.
func (c *RestClient) doRequest(ctx context.Context, method, url string, req *resty.Request, idempotent bool) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	req.SetError(&APIError{})

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}
		if err != nil && resp != nil && resp.IsSuccess() {
			// Binance served the request; only the body is unreadable.
			return nil, fmt.Errorf("%w: %w", errUndecodableResponse, err)
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if err == nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests || statusCode == http.StatusTeapot { // HTTP 429 or 418
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, convErr := strconv.Atoi(retryAfterHeader); convErr == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= http.StatusInternalServerError {
				shouldRetry = idempotent
			}
			err = responseError(resp)
		} else {
			// Network or other client-side errors
			shouldRetry = idempotent
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

func responseError(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*APIError); ok && apiErr != nil && (apiErr.Code != 0 || apiErr.Message != "") {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return fmt.Errorf("status %s: %s", resp.Status(), resp.String())
}

// CreateMarketOrder places a MARKET order and returns the parsed execution,
// including every fill.
func (c *RestClient) CreateMarketOrder(ctx context.Context, symbol, side string, quantity float64) (*OrderResult, error) {
	if c.apiKey == "" || c.secretKey == "" {
		return nil, ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", side)
	params.Set("type", OrderTypeMarket)
	params.Set("quantity", FormatQuantity(quantity))
	params.Set("newClientOrderId", uuid.NewString())
	params.Set("newOrderRespType", orderRespTypeFull)
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("recvWindow", strconv.Itoa(c.recvWindow))

	queryString := params.Encode()
	signature := c.sign(queryString)
	params.Set("signature", signature)

	req := c.client.R().
		SetContext(ctx).
		SetHeader("X-MBX-APIKEY", c.apiKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(params.Encode()).
		SetResult(&CreateOrderResponse{})

	l := c.logger.With(
		zap.String("symbol", symbol),
		zap.String("side", side),
		zap.Float64("quantity", quantity),
		zap.String("client_order_id", params.Get("newClientOrderId")),
	)

	resp, err := c.doRequest(ctx, http.MethodPost, "/order", req, false)
	if errors.Is(err, errUndecodableResponse) {
		l.Error("Order accepted but response could not be decoded", zap.Error(err))
		return nil, &UnreadableExecutionError{Err: err}
	}
	if err != nil {
		l.Error("Failed to create order", zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	payload := resp.Result().(*CreateOrderResponse)
	result, err := payload.toResult()
	if err != nil {
		unreadable := &UnreadableExecutionError{Err: fmt.Errorf("failed to parse order response: %w", err)}
		if payload.OrderID != 0 {
			unreadable.OrderID = strconv.FormatInt(payload.OrderID, 10)
		}
		l.Error("Order accepted but response could not be parsed",
			zap.String("order_id", unreadable.OrderID),
			zap.Error(err),
		)
		return nil, unreadable
	}

	l.Info("Successfully created order",
		zap.String("order_id", result.OrderID),
		zap.String("status", result.Status),
		zap.Float64("executed_quantity", result.ExecutedQuantity),
		zap.Float64("average_price", result.AveragePrice),
	)
	return result, nil
}
