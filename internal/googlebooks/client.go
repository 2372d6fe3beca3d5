package googlebooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/config"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// maxBodyCapture bounds how much of an upstream body is read for
// diagnostics; the error payload truncates further.
const maxBodyCapture = 64 * 1024

// Client queries the Google Books volumes API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.GoogleBooksConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// SearchQuery carries the supported volume search parameters.
type SearchQuery struct {
	Query        string
	MaxResults   int
	StartIndex   int
	Filter       string
	PrintType    string
	OrderBy      string
	LangRestrict string
	Projection   string
}

// VolumeInfo holds the descriptive subset of a volume record.
type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Language      string   `json:"language,omitempty"`
}

// Volume is one catalog entry in a search result.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// SearchResult is the decoded volumes response.
type SearchResult struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

// Search performs the volumes lookup. Transport failures and non-2xx
// responses surface as ExternalServiceError carrying the full exchange
// for operator diagnosis; the client-facing message stays generic.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", q.Query)
	if q.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(q.MaxResults))
	}
	if q.StartIndex > 0 {
		params.Set("startIndex", strconv.Itoa(q.StartIndex))
	}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.PrintType != "" {
		params.Set("printType", q.PrintType)
	}
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	if q.LangRestrict != "" {
		params.Set("langRestrict", q.LangRestrict)
	}
	if q.Projection != "" {
		params.Set("projection", q.Projection)
	}

	requestURL := c.baseURL + "/volumes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, util.NewInternal(err)
	}
	req.Header.Set("Accept", "application/json")

	capture := util.Exchange{
		Request: util.UpstreamRequest{
			URL:     requestURL,
			Method:  http.MethodGet,
			Headers: flattenHeaders(req.Header),
		},
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("google books request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, util.NewExternalService("", capture, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))
	if readErr != nil {
		body = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		capture.Response = util.UpstreamResponse{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			Headers:    flattenHeaders(resp.Header),
			Data:       string(body),
		}
		c.logger.Error("google books returned error status",
			zap.String("url", requestURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, util.NewExternalService("", capture, nil)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		capture.Response = util.UpstreamResponse{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			Headers:    flattenHeaders(resp.Header),
			Data:       string(body),
		}
		return nil, util.NewExternalService("", capture, err)
	}
	return &result, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key := range h {
		out[key] = h.Get(key)
	}
	return out
}
