// Package search implements the unified-search collaborator client against
// the dashboard backend.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/supplysight/assistant-core/internal/assist/extract"
	"github.com/supplysight/assistant-core/internal/assist/model"
	errx "github.com/supplysight/assistant-core/internal/core/error"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

const maxErrSnippet = 200

// Client queries the backend unified-search endpoint. Queries shorter than
// the configured minimum (after whitespace normalisation) short-circuit to an
// empty result without a network call.
type Client struct {
	http        *http.Client
	baseURL     string
	minQueryLen int
}

func NewClient(cfg model.SearchConfig) *Client {
	return &Client{
		http:        &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		minQueryLen: cfg.MinQueryLen,
	}
}

func (c *Client) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	query = extract.Sanitize(query)
	if len(query) < c.minQueryLen {
		return &model.SearchResult{}, nil
	}

	endpoint := c.baseURL + "/api/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Warn().Err(err).Str("query", query).Msg("search request failed")
		return nil, errx.WrapSearch(err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrSnippet))
		err := fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		logx.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("search returned non-2xx")
		return nil, errx.WrapSearch(err, resp.StatusCode)
	}

	var result model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errx.WrapSearch(fmt.Errorf("decode search response: %w", err), 0)
	}
	return &result, nil
}

var _ model.Searcher = (*Client)(nil)
