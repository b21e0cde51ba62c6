package ddg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Client queries the DuckDuckGo image search endpoint. Every search fetches
// a fresh vqd token first - the token is query-bound and not reusable.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Result - one image search record. The image field arrives with no type
// guarantee from upstream, so it is decoded loosely and validated by callers.
type Result struct {
	Title     string      `json:"title"`
	Image     interface{} `json:"image"`
	Thumbnail string      `json:"thumbnail"`
	URL       string      `json:"url"`
	Source    string      `json:"source"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
}

type imagesResponse struct {
	Results []Result `json:"results"`
}

// SearchOptions - per-search parameters
type SearchOptions struct {
	Region     string // e.g. "wt-wt"
	SafeSearch string // "moderate" or "off"
	Layout     string // e.g. "Square"
	MaxResults int
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var vqdPattern = regexp.MustCompile(`vqd=['"]?([\d-]+)['"]?`)

// NewClient - create an image search client. baseURL is overridable for tests.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://duckduckgo.com"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Images - run one image search. Returns the raw result records; filtering
// and capping policy belongs to the caller.
func (c *Client) Images(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	vqd, err := c.token(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain search token: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("o", "json")
	params.Set("vqd", vqd)
	params.Set("l", opts.Region)
	params.Set("p", safeSearchParam(opts.SafeSearch))
	if opts.Layout != "" {
		params.Set("f", ",,,layout:"+opts.Layout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/i.js?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	var decoded imagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := decoded.Results
	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

// token - fetch the vqd token the image endpoint requires
func (c *Client) token(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read token page: %w", err)
	}

	match := vqdPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("vqd token not found in response")
	}
	return string(match[1]), nil
}

// safeSearchParam - map a safe search level to the wire value
func safeSearchParam(level string) string {
	if strings.EqualFold(level, "off") {
		return "-1"
	}
	return "1"
}
