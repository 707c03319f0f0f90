package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ETAnderson/storesync/internal/domain"
)

const defaultRatePerMinute = 70

// HTTPClient talks to the remote product API over JSON HTTP. Calls are
// synchronous with a bounded timeout and rate-limited across the process.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
	Logger  *log.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, ratePerMinute int, logger *log.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if ratePerMinute <= 0 {
		ratePerMinute = defaultRatePerMinute
	}

	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), 1),
		Logger:  logger,
	}
}

type productEnvelope struct {
	Product ProductPayload `json:"product"`
}

// apiResponse is the remote response shape: exactly one of Product or Error
// is set.
type apiResponse struct {
	Product *struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Visible bool   `json:"visible"`
	} `json:"product"`
	Error string `json:"error"`
}

func (c *HTTPClient) CreateProduct(ctx context.Context, siteID string, payload ProductPayload) (string, error) {
	resp, err := c.do(ctx, "create", http.MethodPost, c.BaseURL+"/products", siteID, payload)
	if err != nil {
		return "", err
	}

	if resp.Product == nil || strings.TrimSpace(resp.Product.ID) == "" {
		return "", &Error{
			Op:      "create",
			Kind:    domain.ErrorKindMalformedResponse,
			Message: "response missing product id",
		}
	}
	return resp.Product.ID, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, siteID string, productID string, payload ProductPayload) error {
	resp, err := c.do(ctx, "update", http.MethodPut, c.BaseURL+"/products/"+productID, siteID, payload)
	if err != nil {
		return err
	}

	if resp.Product == nil {
		return &Error{
			Op:      "update",
			Kind:    domain.ErrorKindMalformedResponse,
			Message: "response missing product",
		}
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, op string, method string, url string, siteID string, payload ProductPayload) (apiResponse, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return apiResponse{}, &Error{Op: op, Kind: domain.ErrorKindNetwork, Message: err.Error()}
		}
	}

	body, err := json.Marshal(productEnvelope{Product: payload})
	if err != nil {
		return apiResponse{}, fmt.Errorf("marshal product payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return apiResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Site-Id", siteID)

	resp, err := c.Client.Do(req)
	if err != nil {
		return apiResponse{}, &Error{Op: op, Kind: domain.ErrorKindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, &Error{Op: op, Kind: domain.ErrorKindNetwork, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return apiResponse{}, &Error{
			Op:         op,
			Kind:       domain.ErrorKindNetwork,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return apiResponse{}, &Error{
			Op:         op,
			Kind:       domain.ErrorKindMalformedResponse,
			StatusCode: resp.StatusCode,
			Message:    "invalid response json",
		}
	}

	if parsed.Error != "" {
		return apiResponse{}, &Error{
			Op:         op,
			Kind:       domain.ErrorKindNetwork,
			StatusCode: resp.StatusCode,
			Message:    parsed.Error,
		}
	}

	if c.Logger != nil {
		c.Logger.Printf("storefront %s ok (site=%s status=%d)", op, siteID, resp.StatusCode)
	}

	return parsed, nil
}
