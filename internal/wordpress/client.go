package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sharecom5/TBM/internal/cache"
	"github.com/Sharecom5/TBM/internal/logger"
	"github.com/Sharecom5/TBM/internal/metrics"
)

// Revalidation windows declared per endpoint. The cache layer honors
// whatever window the call declares; nothing here refetches early.
const (
	revalidateDefault    = 60 * time.Second
	revalidateHomepage   = 10 * time.Minute
	revalidateRecent     = 10 * time.Minute
	revalidateCategories = time.Hour
)

const (
	// recentWindow is how far back the news-sitemap fetch looks.
	recentWindow = 48 * time.Hour

	// recentFallbackCount is how many latest posts to return when the
	// recent window is empty.
	recentFallbackCount = 10

	// homepagePostCount is the batch size the home feed distributes
	// across its sections.
	homepagePostCount = 50

	categoriesPerPage = 100
	recentPerPage     = 100
)

// Client fetches content from the WordPress REST API.
//
// A Client with an empty base URL is the deliberate disabled mode: every
// fetch returns no data without attempting network I/O. Upstream failures
// are logged and surface as no data; they never propagate as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	logger     logger.Logger
}

// NewClient creates a content fetcher. baseURL is the API origin including
// the /wp-json prefix, without a trailing slash.
func NewClient(baseURL string, httpClient *http.Client, c cache.Cache, log logger.Logger) *Client {
	if c == nil {
		c = cache.Nop{}
	}
	if baseURL == "" {
		log.Warn("WordPress API URL is not configured, content will not be fetched")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      c,
		logger:     log,
	}
}

// Enabled reports whether the client has an upstream to talk to.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// fetchJSON GETs endpoint with params, decodes the JSON response into v
// and reports whether data was obtained. Responses are served from the
// cache within the declared revalidation window.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, params url.Values, revalidate time.Duration, v any) bool {
	if !c.Enabled() {
		return false
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	if body, ok := c.cache.Get(ctx, requestURL); ok {
		if err := json.Unmarshal(body, v); err == nil {
			metrics.RecordUpstream(endpoint, metrics.OutcomeCached)
			return true
		}
		// A corrupt cache entry falls through to a fresh fetch.
		c.logger.Warn("Discarding malformed cache entry",
			logger.String("url", requestURL),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		c.logger.Error("Failed to create CMS request",
			logger.String("url", requestURL),
			logger.Error(err),
		)
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return false
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("CMS fetch failed",
			logger.String("url", requestURL),
			logger.Duration("duration", duration),
			logger.Error(err),
		)
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("CMS returned non-success status",
			logger.String("url", requestURL),
			logger.Int("status_code", resp.StatusCode),
			logger.Duration("duration", duration),
		)
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read CMS response",
			logger.String("url", requestURL),
			logger.Error(err),
		)
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("Failed to decode CMS response",
			logger.String("url", requestURL),
			logger.Error(err),
		)
		metrics.RecordUpstream(endpoint, metrics.OutcomeError)
		return false
	}

	c.cache.Set(ctx, requestURL, body, revalidate)
	metrics.RecordUpstream(endpoint, metrics.OutcomeSuccess)

	c.logger.Debug("Fetched from CMS",
		logger.String("url", requestURL),
		logger.Duration("duration", duration),
	)
	return true
}

// GetAllPosts fetches a page of posts, optionally filtered by category ID
// (0 means no filter). Returns nil when no data could be obtained; an empty
// non-nil slice means the CMS answered with no posts.
func (c *Client) GetAllPosts(ctx context.Context, page, perPage, category int) []PostData {
	return c.getPosts(ctx, page, perPage, category, revalidateDefault)
}

// GetHomepagePosts fetches the home-feed batch at the homepage
// revalidation window.
func (c *Client) GetHomepagePosts(ctx context.Context) []PostData {
	return c.getPosts(ctx, 1, homepagePostCount, 0, revalidateHomepage)
}

func (c *Client) getPosts(ctx context.Context, page, perPage, category int, revalidate time.Duration) []PostData {
	params := url.Values{}
	params.Set("_embed", "true")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	if category > 0 {
		params.Set("categories", strconv.Itoa(category))
	}

	var posts []Post
	if !c.fetchJSON(ctx, "/wp/v2/posts", params, revalidate, &posts) {
		return nil
	}
	return NormalizeAll(posts)
}

// GetPostBySlug fetches a single post by slug. Returns nil when the post
// does not exist or the CMS is unavailable.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) *PostData {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("_embed", "true")

	var posts []Post
	if !c.fetchJSON(ctx, "/wp/v2/posts", params, revalidateDefault, &posts) {
		return nil
	}
	if len(posts) == 0 {
		return nil
	}
	data := Normalize(posts[0])
	return &data
}

// GetAllCategories fetches all categories ordered by post count
// descending. Returns an empty slice when no data is available.
func (c *Client) GetAllCategories(ctx context.Context) []Category {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(categoriesPerPage))
	params.Set("orderby", "count")
	params.Set("order", "desc")

	var categories []Category
	if !c.fetchJSON(ctx, "/wp/v2/categories", params, revalidateCategories, &categories) {
		return []Category{}
	}
	return categories
}

// GetCategoryBySlug fetches a single category by slug, or nil.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) *Category {
	params := url.Values{}
	params.Set("slug", slug)

	var categories []Category
	if !c.fetchJSON(ctx, "/wp/v2/categories", params, revalidateDefault, &categories) {
		return nil
	}
	if len(categories) == 0 {
		return nil
	}
	return &categories[0]
}

// GetRecentPosts fetches posts published within the last 48 hours. When
// that window yields nothing it falls back to the latest 10 posts, so the
// news sitemap is never empty while the CMS has content.
func (c *Client) GetRecentPosts(ctx context.Context) []PostData {
	after := time.Now().Add(-recentWindow).UTC().Format(time.RFC3339)

	params := url.Values{}
	params.Set("_embed", "true")
	params.Set("per_page", strconv.Itoa(recentPerPage))
	params.Set("after", after)

	var posts []Post
	if c.fetchJSON(ctx, "/wp/v2/posts", params, revalidateRecent, &posts) && len(posts) > 0 {
		return NormalizeAll(posts)
	}

	c.logger.Info("No posts in recent window, falling back to latest posts",
		logger.Int("fallback_count", recentFallbackCount),
	)
	return c.getPosts(ctx, 1, recentFallbackCount, 0, revalidateRecent)
}
