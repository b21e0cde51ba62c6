package recommend

import (
	"context"
	"log"
	"strings"

	"stylemuse-server/modules/common/ddg"
	"stylemuse-server/modules/common/fallback"
)

// DefaultMaxImages - result cap when none is configured
const DefaultMaxImages = 5

const (
	searchRegion = "wt-wt"
	searchSafe   = "moderate"
	searchLayout = "Square"
)

// ImageSearcher - what the orchestrator needs from the image side
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, maxImages int) []string
	SearchAccessoryImage(ctx context.Context, item string) (string, bool)
}

// imageService - the slice of the DuckDuckGo client this package uses
type imageService interface {
	Images(ctx context.Context, query string, opts ddg.SearchOptions) ([]ddg.Result, error)
}

// ImageClient applies the pipeline's filtering and padding policy on top of
// the raw search client.
type ImageClient struct {
	ddg imageService
}

func NewImageClient(client *ddg.Client) *ImageClient {
	return &ImageClient{
		ddg: client,
	}
}

// SearchImages - ranked image URLs for a query. Always returns exactly
// maxImages entries: the candidate pool is oversized to absorb filtering
// loss, and any remaining slots are filled with the placeholder URL.
func (c *ImageClient) SearchImages(ctx context.Context, query string, maxImages int) []string {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}

	results, err := c.ddg.Images(ctx, query, ddg.SearchOptions{
		Region:     searchRegion,
		SafeSearch: searchSafe,
		Layout:     searchLayout,
		MaxResults: maxImages * 2,
	})
	if err != nil {
		log.Printf("⚠️  [Images] Search failed for %q: %v", query, err)
		return fallback.PlaceholderImages(maxImages)
	}

	urls := make([]string, 0, maxImages)
	for _, result := range results {
		url, isString := result.Image.(string)
		if !isString || !strings.HasPrefix(url, "http") {
			// malformed record: drop it, keep the batch
			continue
		}
		urls = append(urls, url)
		if len(urls) >= maxImages {
			break
		}
	}

	if len(urls) == 0 {
		return fallback.PlaceholderImages(maxImages)
	}
	for len(urls) < maxImages {
		urls = append(urls, fallback.PlaceholderImageURL)
	}
	return urls
}

// SearchAccessoryImage - first valid image URL for "<item> accessory", or
// absent. Failures never propagate; the caller just omits the entry.
func (c *ImageClient) SearchAccessoryImage(ctx context.Context, item string) (string, bool) {
	results, err := c.ddg.Images(ctx, item+" accessory", ddg.SearchOptions{
		Region:     searchRegion,
		SafeSearch: searchSafe,
		Layout:     searchLayout,
		MaxResults: 1,
	})
	if err != nil {
		log.Printf("⚠️  [Images] Accessory lookup failed for %q: %v", item, err)
		return "", false
	}

	for _, result := range results {
		if url, isString := result.Image.(string); isString && strings.HasPrefix(url, "http") {
			return url, true
		}
	}
	return "", false
}
