/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acronis/go-countries/httpclient"
	"github.com/acronis/go-countries/log"
	"github.com/acronis/go-countries/lrucache"
)

// RequestType is used to correlate client requests in logs and metrics.
const RequestType = "countries"

// Client is a client for the REST Countries API.
// All methods are safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	logger        log.FieldLogger
	maxBodySize   int64
	currencyCache *lrucache.LRUCache[string, LocalCurrency]
}

// Opts provides options for NewWithOpts function.
type Opts struct {
	// HTTPClient allows passing a pre-constructed *http.Client.
	// When it's nil, the client is built from the HTTP section of the configuration
	// (see the httpclient package).
	HTTPClient *http.Client

	// Logger is used for logging requests and responses. Disabled logger is used by default.
	Logger log.FieldLogger

	// CacheMetricsCollector collects statistics of the currency cache usage.
	CacheMetricsCollector lrucache.MetricsCollector

	// HTTPMetricsCollector collects HTTP request durations.
	HTTPMetricsCollector httpclient.MetricsCollector

	// RequestIDProvider is a function that provides an ID for each outgoing request.
	RequestIDProvider func(ctx context.Context) string
}

// New creates a new Client from the passed configuration.
func New(cfg *Config) (*Client, error) {
	return NewWithOpts(cfg, Opts{})
}

// NewWithOpts creates a new Client from the passed configuration and options.
func NewWithOpts(cfg *Config, opts Opts) (*Client, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewDisabledLogger()
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		userAgent := cfg.UserAgent
		if userAgent == "" {
			userAgent = DefaultUserAgent
		}
		httpClient = httpclient.NewWithOpts(&cfg.HTTP, httpclient.Opts{
			UserAgent:   userAgent,
			RequestType: RequestType,
			LoggerProvider: func(ctx context.Context) log.FieldLogger {
				if ctxLogger := httpclient.GetLoggerFromContext(ctx); ctxLogger != nil {
					return ctxLogger
				}
				return logger
			},
			RequestIDProvider: opts.RequestIDProvider,
			Collector:         opts.HTTPMetricsCollector,
		})
	}

	maxBodySize := int64(cfg.MaxResponseBodySize)
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxResponseBodySize
	}

	var currencyCache *lrucache.LRUCache[string, LocalCurrency]
	if cfg.Cache.Enabled {
		maxEntries := cfg.Cache.MaxEntries
		if maxEntries == 0 {
			maxEntries = DefaultCacheMaxEntries
		}
		var err error
		currencyCache, err = lrucache.NewWithOpts[string, LocalCurrency](
			maxEntries, opts.CacheMetricsCollector, lrucache.Options{DefaultTTL: cfg.Cache.DefaultTTL})
		if err != nil {
			return nil, fmt.Errorf("create currency cache: %w", err)
		}
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		logger:        logger,
		maxBodySize:   maxBodySize,
		currencyCache: currencyCache,
	}, nil
}

// RunPeriodicCacheCleanup removes expired currency cache entries every cleanupInterval
// until the passed context is canceled. It's supposed to be run in a separate goroutine.
// It does nothing when caching is disabled.
func (c *Client) RunPeriodicCacheCleanup(ctx context.Context, cleanupInterval time.Duration) {
	if c.currencyCache == nil {
		return
	}
	c.currencyCache.RunPeriodicCleanup(ctx, cleanupInterval)
}

// PurgeCache clears the currency cache.
func (c *Client) PurgeCache() {
	if c.currencyCache != nil {
		c.currencyCache.Purge()
	}
}

// doGetJSON does an HTTP GET request to the passed URL and unmarshals the JSON response into result.
// All upstream failures except context cancellation are translated into *RemoteError
// carrying the identifier (query) the request was made with.
func (c *Client) doGetJSON(ctx context.Context, reqURL, query string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.logger.AtLevel(log.LevelDebug, func(logFn log.LogFunc) {
		logFn("sending request", log.String("method", req.Method), log.String("uri", req.URL.String()))
	})

	remoteErr := &RemoteError{Method: req.Method, URL: req.URL.String(), Query: query}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation is not an upstream failure, it must stay detectable with errors.Is.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("do request: %w", err)
		}
		c.logger.Error("failed to do http request",
			log.String("method", req.Method), log.String("uri", req.URL.String()), log.Error(err))
		return remoteErr.wrap("do request", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close response body",
				log.String("method", req.Method), log.String("uri", req.URL.String()), log.Error(closeErr))
		}
	}()

	c.logger.AtLevel(log.LevelDebug, func(logFn log.LogFunc) {
		logFn("got response", log.String("method", req.Method),
			log.String("uri", req.URL.String()), log.Int("status", resp.StatusCode))
	})

	remoteErr.StatusCode = resp.StatusCode

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return remoteErr.wrap("unexpected status code", nil)
	}

	buf, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("read response body: %w", err)
		}
		return remoteErr.wrap("reading response body", err)
	}
	if int64(len(buf)) > c.maxBodySize {
		return remoteErr.wrap(fmt.Sprintf("response body exceeds %d bytes", c.maxBodySize), nil)
	}

	if err = json.Unmarshal(buf, result); err != nil {
		return remoteErr.wrap("unmarshaling response", err)
	}
	return nil
}
