package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/config"
	"github.com/spec-kit/book-catalog/pkg/util"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GoogleBooksConfig{BaseURL: baseURL, TimeoutSeconds: 2}, zap.NewNop())
}

func TestSearchDecodesVolumes(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"id": "vol1", "volumeInfo": {"title": "Flowers", "authors": ["Keyes"]}}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Search(context.Background(), SearchQuery{
		Query:      "flowers+inauthor:keyes",
		MaxResults: 5,
		OrderBy:    "newest",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalItems != 1 || len(result.Items) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Items[0].VolumeInfo.Title != "Flowers" {
		t.Fatalf("title = %q", result.Items[0].VolumeInfo.Title)
	}
	if gotQuery["q"][0] != "flowers+inauthor:keyes" {
		t.Fatalf("q = %v", gotQuery["q"])
	}
	if gotQuery["maxResults"][0] != "5" {
		t.Fatalf("maxResults = %v", gotQuery["maxResults"])
	}
	if gotQuery["orderBy"][0] != "newest" {
		t.Fatalf("orderBy = %v", gotQuery["orderBy"])
	}
}

func TestSearchCapturesUpstreamFailure(t *testing.T) {
	longBody := strings.Repeat("e", 3000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(longBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), SearchQuery{Query: "flowers"})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *util.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Kind != util.KindExternalService {
		t.Fatalf("kind = %s", apiErr.Kind)
	}
	if apiErr.Message != "External API request failed." {
		t.Fatalf("message = %q", apiErr.Message)
	}

	exchange, ok := apiErr.Detail.(util.Exchange)
	if !ok {
		t.Fatalf("detail = %#v", apiErr.Detail)
	}
	if exchange.Request.Method != http.MethodGet {
		t.Errorf("request method = %q", exchange.Request.Method)
	}
	if !strings.Contains(exchange.Request.URL, "q=flowers") {
		t.Errorf("request url = %q", exchange.Request.URL)
	}
	if exchange.Response.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status_code = %d", exchange.Response.StatusCode)
	}
	if exchange.Response.Reason != "Too Many Requests" {
		t.Errorf("reason = %q", exchange.Response.Reason)
	}
	if len(exchange.Response.Data) != 1000 {
		t.Errorf("data not truncated to 1000 chars: %d", len(exchange.Response.Data))
	}
}

func TestSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), SearchQuery{Query: "flowers"})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *util.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Kind != util.KindExternalService {
		t.Fatalf("kind = %s", apiErr.Kind)
	}
	exchange, ok := apiErr.Detail.(util.Exchange)
	if !ok {
		t.Fatalf("detail = %#v", apiErr.Detail)
	}
	if exchange.Response.StatusCode != 0 {
		t.Errorf("no response expected, got status %d", exchange.Response.StatusCode)
	}
}

func TestSearchHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL)
	_, err := client.Search(ctx, SearchQuery{Query: "flowers"})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if util.ToAPIError(err).Kind != util.KindExternalService {
		t.Fatalf("kind = %s", util.ToAPIError(err).Kind)
	}
}
