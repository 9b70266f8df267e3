package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"codeplug-audit/internal/domain"
)

const (
	hardwarePath     = "/api/v1/hardware"
	defaultPageSize  = 500
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 64 << 20
)

// HTTPInventoryClient implements the InventoryProvider interface against an
// asset management API exposing a paged hardware listing.
type HTTPInventoryClient struct {
	baseURL  string
	token    string
	pageSize int
	client   *http.Client
}

// InventoryClientConfig configures an HTTPInventoryClient.
type InventoryClientConfig struct {
	BaseURL  string
	Token    string
	PageSize int
	Timeout  time.Duration
}

// NewHTTPInventoryClient creates a new client. A zero page size or timeout
// falls back to the defaults.
func NewHTTPInventoryClient(cfg InventoryClientConfig) (*HTTPInventoryClient, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid inventory url %q: %w", cfg.BaseURL, err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &HTTPInventoryClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		client:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Assets fetches every page of the hardware listing.
func (c *HTTPInventoryClient) Assets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	for offset := 0; ; {
		body, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(body) {
			return nil, fmt.Errorf("inventory page at offset %d is not valid JSON", offset)
		}

		page := gjson.ParseBytes(body)
		if msg := page.Get("messages"); page.Get("status").String() == "error" {
			return nil, fmt.Errorf("inventory api error: %s", msg.String())
		}

		rows := page.Get("rows").Array()
		for _, row := range rows {
			asset := domain.Asset{
				Serial:     strings.TrimSpace(row.Get("serial").String()),
				AssetTag:   row.Get("asset_tag").String(),
				Location:   row.Get("location.name").String(),
				AssignedTo: row.Get("assigned_to.name").String(),
				Status:     row.Get("status_label.name").String(),
			}
			if asset.Serial == "" {
				continue
			}
			assets = append(assets, asset)
		}

		offset += len(rows)
		if len(rows) == 0 || offset >= int(page.Get("total").Int()) {
			break
		}
	}
	return assets, nil
}

func (c *HTTPInventoryClient) fetchPage(ctx context.Context, offset int) ([]byte, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+hardwarePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("inventory request returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory response: %w", err)
	}
	return body, nil
}
