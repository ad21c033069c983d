package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hyperjump/basho/internal/models"
)

// ClientConfig holds the settings for the directory REST client.
type ClientConfig struct {
	BaseURL  string
	Username string
	Password string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
	// MaxRetries is the number of retry attempts for retryable failures.
	MaxRetries int
	// RetryDelay is the base delay between attempts.
	RetryDelay time.Duration
	// RetryBackoff doubles the delay on each attempt.
	RetryBackoff bool

	// RateLimit and RateBurst bound availability calls per second; the
	// upstream rate-limits aggressively and a 429 burst must not surface
	// as fatal.
	RateLimit float64
	RateBurst int

	// CacheTTL is how long hierarchy and booking responses stay cached.
	CacheTTL time.Duration
}

// DefaultClientConfig returns sensible client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:      30 * time.Second,
		MaxRetries:   2,
		RetryDelay:   time.Second,
		RetryBackoff: true,
		RateLimit:    5,
		RateBurst:    10,
		CacheTTL:     time.Minute,
	}
}

// retryableError marks an HTTP status worth retrying.
type retryableError struct {
	statusCode int
	message    string
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("directory returned %d: %s", e.statusCode, e.message)
}

// Client is the REST implementation of LocationProvider and
// AvailabilityChecker.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	logger     *zap.Logger
}

// NewClient creates a directory client. Cache may be nil to disable
// response caching.
func NewClient(config ClientConfig, cache Cache, logger *zap.Logger) *Client {
	defaults := DefaultClientConfig()
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = defaults.RetryDelay
	}
	if config.RateLimit == 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.RateBurst == 0 {
		config.RateBurst = defaults.RateBurst
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		cache:      cache,
		logger:     logger,
	}
}

// locationsEnvelope is the wire shape shared by the hierarchy and
// bookings endpoints.
type locationsEnvelope struct {
	Locations []models.Location `json:"locations"`
}

// availabilityEnvelope is the wire shape of the availability endpoint.
// Available is either a slot list or a bare boolean.
type availabilityEnvelope struct {
	Available json.RawMessage `json:"available"`
}

// LocationHierarchy fetches the static location tree.
func (c *Client) LocationHierarchy(ctx context.Context, filter HierarchyFilter) ([]models.Location, error) {
	params := url.Values{}
	if filter.Kind != "" {
		params.Set("kind", filter.Kind)
	}
	if filter.ParentLocationID != "" {
		params.Set("parent_location_id", filter.ParentLocationID)
	}

	body, err := c.getCached(ctx, "/api/locations", params)
	if err != nil {
		return nil, fmt.Errorf("fetch location hierarchy: %w", err)
	}
	var envelope locationsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode location hierarchy: %w", err)
	}
	return envelope.Locations, nil
}

// BookableLocations fetches locations annotated with booking context for
// the window.
func (c *Client) BookableLocations(ctx context.Context, filter BookingFilter) ([]models.Location, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.DateFrom != "" {
		params.Set("date_from", filter.DateFrom)
	}
	if filter.DateTo != "" {
		params.Set("date_to", filter.DateTo)
	}
	if filter.ParentLocationID != "" {
		params.Set("parent_location_id", filter.ParentLocationID)
	}

	body, err := c.getCached(ctx, "/api/bookings", params)
	if err != nil {
		return nil, fmt.Errorf("fetch bookable locations: %w", err)
	}
	var envelope locationsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode bookable locations: %w", err)
	}
	return envelope.Locations, nil
}

// CheckAvailability asks whether one location is free in the window.
// Calls are rate-limited, never cached.
func (c *Client) CheckAvailability(ctx context.Context, query AvailabilityQuery) (*models.AvailabilityInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("availability rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("location_id", query.LocationID)
	params.Set("date_from", query.DateFrom)
	params.Set("date_to", query.DateTo)

	body, err := c.get(ctx, "/api/availability", params)
	if err != nil {
		return nil, fmt.Errorf("check availability for %s: %w", query.LocationID, err)
	}

	var envelope availabilityEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode availability for %s: %w", query.LocationID, err)
	}
	return decodeAvailability(envelope.Available)
}

// decodeAvailability accepts both wire forms: a slot list means available
// when non-empty, a bare boolean is the answer itself.
func decodeAvailability(raw json.RawMessage) (*models.AvailabilityInfo, error) {
	var slots []models.Slot
	if err := json.Unmarshal(raw, &slots); err == nil {
		return &models.AvailabilityInfo{
			IsAvailable:    len(slots) > 0,
			AvailableSlots: slots,
		}, nil
	}
	var available bool
	if err := json.Unmarshal(raw, &available); err == nil {
		return &models.AvailabilityInfo{IsAvailable: available}, nil
	}
	return nil, fmt.Errorf("unrecognized availability payload: %s", string(raw))
}

// getCached is get with a response cache in front.
func (c *Client) getCached(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := path + "?" + params.Encode()
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, key); ok {
			return body, nil
		}
	}
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, body, c.config.CacheTTL)
	}
	return body, nil
}

// get performs a GET with credential encoding and retry with optional
// exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay
			if c.config.RetryBackoff {
				delay = time.Duration(int64(delay) * int64(1<<(attempt-1)))
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !shouldRetry(err) {
			break
		}
		c.logger.Debug("retrying directory request",
			zap.String("url", requestURL),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directory response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &retryableError{statusCode: resp.StatusCode, message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// shouldRetry retries server errors, rate limiting, and network-level
// failures; client errors are final.
func shouldRetry(err error) bool {
	if retryable, ok := err.(*retryableError); ok {
		return retryable.statusCode >= http.StatusInternalServerError ||
			retryable.statusCode == http.StatusTooManyRequests
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "network")
}
