// Package api implements the HTTP client for the document-library server.
// The client is stateless; every call is one request/response round trip.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doclib/internal/errors"
	"doclib/internal/logger"
)

// requestTimeout bounds every call; ask/chat requests can take a while when
// the LLM is cold, so this is deliberately generous.
const requestTimeout = 120 * time.Second

// Client talks to the document-library server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client for the given server URL.
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op errors.Op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	return c.do(op, req, out)
}

// post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, op errors.Op, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) do(op errors.Op, req *http.Request, out interface{}) error {
	log := logger.ComponentLogger("api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", "url", req.URL.String(), "error", err)
		return errors.GatewayUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Debug("non-success status", "url", req.URL.String(), "status", resp.StatusCode)
		return errors.GatewayStatus(op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.E(op, errors.KindGateway, "failed to parse response", err)
	}
	return nil
}

// Health checks server status and per-subsystem availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "api.Health", "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a semantic search over chunks and/or elements.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, "api.Search", "/search", req, &out); err != nil {
		return nil, err
	}
	logger.Debug("search %q returned %d results", req.Query, len(out.Results))
	return &out, nil
}

// Chat asks a question and returns the LLM answer with supporting sources.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.post(ctx, "api.Chat", "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments fetches one page of the document library.
func (c *Client) ListDocuments(ctx context.Context, page, pageSize int, sortBy string) (*DocumentListResponse, error) {
	path := fmt.Sprintf("/documents?page=%d&page_size=%d&sort_by=%s", page, pageSize, url.QueryEscape(sortBy))
	var out DocumentListResponse
	if err := c.get(ctx, "api.ListDocuments", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches full metadata for one document.
func (c *Client) GetDocument(ctx context.Context, slug string) (*DocumentDetailResponse, error) {
	var out DocumentDetailResponse
	if err := c.get(ctx, "api.GetDocument", "/documents/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPage fetches the rendered image and metadata for one document page.
func (c *Client) GetPage(ctx context.Context, slug string, pageNumber int) (*PageResponse, error) {
	path := fmt.Sprintf("/page/%s/%d", url.PathEscape(slug), pageNumber)
	var out PageResponse
	if err := c.get(ctx, "api.GetPage", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchImage downloads raw image bytes for an element crop or rendering.
// The ref is a server-relative path such as "elements/fig_3_1.png".
func (c *Client) FetchImage(ctx context.Context, slug, ref string) ([]byte, error) {
	const op = errors.Op("api.FetchImage")
	u := fmt.Sprintf("%s/image/%s/%s", c.baseURL, url.PathEscape(slug), ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.GatewayUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.GatewayStatus(op, resp.StatusCode, "image not found")
	}
	return io.ReadAll(resp.Body)
}
