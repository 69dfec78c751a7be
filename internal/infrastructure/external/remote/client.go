// Package remote is the HTTP client of the bill store REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
)

const (
	// HeaderUserEmail carries the session email
	HeaderUserEmail = "X-User-Email"
	// HeaderUserType carries the session user type
	HeaderUserType = "X-User-Type"
)

// ClientConfig represents the configuration of the store API client
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30 seconds
}

// Client is a bill store API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// envelope is the response body of every store API endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewClient creates a new store API client
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		logger:  logger,
	}
}

// ForUser returns a BillStore sending user as the request identity
func (c *Client) ForUser(user entity.User) port.BillStore {
	return &userClient{Client: c, user: user}
}

type userClient struct {
	*Client
	user entity.User
}

// List fetches the user's bills
func (c *userClient) List(ctx context.Context) ([]entity.Bill, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/bills", nil)
	if err != nil {
		return nil, err
	}

	var bills []entity.Bill
	if err := c.do(req, "list", &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Create uploads the receipt as multipart form data
func (c *userClient) Create(ctx context.Context, upload *port.UploadRequest) (*port.UploadResult, error) {
	if upload == nil {
		return nil, apperr.NewTransportError("create", http.StatusBadRequest, errors.New("empty upload"))
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("email", c.user.Email); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/bills", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result port.UploadResult
	if err := c.do(req, "create", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update sends the bill fields for key
func (c *userClient) Update(ctx context.Context, key string, bill *entity.Bill) (*entity.Bill, error) {
	payload, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bill: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/api/bills/"+url.PathEscape(key), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var updated entity.Bill
	if err := c.do(req, "update", &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *userClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderUserEmail, c.user.Email)
	req.Header.Set(HeaderUserType, c.user.Type)
	return req, nil
}

// do sends req and decodes the envelope data into out
func (c *userClient) do(req *http.Request, op string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Store request failed",
			zap.String("op", op),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return apperr.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Store request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(op, resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperr.NewTransportError(op, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperr.NewTransportError(op, resp.StatusCode, fmt.Errorf("failed to decode data: %w", err))
	}
	return nil
}

// parseError turns a non-2xx response into a TransportError carrying its status
func (c *userClient) parseError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := strings.TrimSpace(string(body))
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		message = env.Error
	}

	c.logger.Warn("Store returned an error",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message))

	return apperr.NewTransportError(op, resp.StatusCode, errors.New(message))
}

var _ port.StoreProvider = (*Client)(nil)
