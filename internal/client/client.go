package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CatalogSource is a read-only supplier of filter rows.
type CatalogSource interface {
	GetFilters(ctx context.Context) ([]FilterRow, error)
	Ping(ctx context.Context) error
	Name() string
}

const (
	defaultTable   = "filtros"
	filterColumns  = "id,marca,modelo,caudal,volumen_vaso_filtro"
	restPathPrefix = "/rest/v1/"
)

// ClientConfig holds configuration for RESTClient.
type ClientConfig struct {
	BaseURL            string
	APIKey             string
	Table              string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

// RESTClient reads the filter table through a Supabase/PostgREST endpoint.
type RESTClient struct {
	http   *http.Client
	config ClientConfig
}

// NewRESTClient constructs a RESTClient from the given config.
// Returns an error if BaseURL is empty or the table name is not a plain
// identifier.
func NewRESTClient(cfg ClientConfig) (*RESTClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}
	if !validIdentifier(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	return &RESTClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// Name identifies the source in logs and the UI.
func (c *RESTClient) Name() string {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil || u.Host == "" {
		return "rest:" + c.config.Table
	}
	return "rest:" + u.Host + "/" + c.config.Table
}

// GetFilters fetches every row of the filter table.
func (c *RESTClient) GetFilters(ctx context.Context) ([]FilterRow, error) {
	body, err := c.doGet(ctx, c.tablePath()+"?select="+filterColumns)
	if err != nil {
		return nil, fmt.Errorf("GetFilters: %w", err)
	}

	var rows []FilterRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("GetFilters decode: %w", err)
	}
	return rows, nil
}

// Ping checks connectivity by asking for a single id with a 2s timeout.
func (c *RESTClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	_, err := c.doGet(pingCtx, c.tablePath()+"?select=id&limit=1")
	return err
}

func (c *RESTClient) tablePath() string {
	return restPathPrefix + url.PathEscape(c.config.Table)
}

// doGet performs a GET request to the given path (relative to BaseURL).
// It sets the PostgREST apikey/bearer headers when a key is configured and
// tags the request with a fresh X-Request-Id.
// Returns the response body bytes or an error on non-2xx status.
func (c *RESTClient) doGet(ctx context.Context, path string) ([]byte, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.config.APIKey != "" {
		req.Header.Set("apikey", c.config.APIKey)
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request %s: %w", reqID, err)
	}
	defer resp.Body.Close()

	const maxResponseBytes = 8 * 1024 * 1024 // a filter catalog is a few KB
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d MB limit", maxResponseBytes/(1024*1024))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d (request %s): %s", resp.StatusCode, reqID, truncate(body, 200))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// validIdentifier reports whether s is safe to splice into a URL path or SQL
// statement as a table name: ASCII letters, digits and underscores, not
// starting with a digit.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
