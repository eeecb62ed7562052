// Package api implements the service's HTTP endpoints: the indexing
// webhook, the posts/categories feeds, and the news sitemap.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sharecom5/TBM/internal/indexing"
	"github.com/Sharecom5/TBM/internal/linkedin"
	"github.com/Sharecom5/TBM/internal/logger"
	"github.com/Sharecom5/TBM/internal/metrics"
	"github.com/Sharecom5/TBM/internal/sitemap"
	"github.com/Sharecom5/TBM/internal/wordpress"
)

const (
	// actionDeleted is the webhook action that suppresses the social
	// publish leg and flags the URL as removed.
	actionDeleted = "deleted"

	// Fallback share content when the CMS trigger omits title/excerpt.
	fallbackShareTitle   = "New Update"
	fallbackShareExcerpt = "Read the latest from The Bharat Mirror."

	// Posts returned by the public /api/posts feed.
	postsFeedCount = 20
)

// Webhook result labels for metrics.
const (
	webhookResultSuccess      = "success"
	webhookResultFailed       = "failed"
	webhookResultUnauthorized = "unauthorized"
	webhookResultBadRequest   = "bad_request"
)

// Handler holds the API dependencies.
type Handler struct {
	wp            *wordpress.Client
	notifier      *indexing.Notifier
	publisher     *linkedin.Publisher
	webhookSecret string
	siteURL       string
	logger        logger.Logger
}

// NewHandler creates an API handler. siteURL must not have a trailing
// slash; webhookSecret may be empty, which rejects every webhook call.
func NewHandler(wp *wordpress.Client, notifier *indexing.Notifier, publisher *linkedin.Publisher, webhookSecret, siteURL string, log logger.Logger) *Handler {
	return &Handler{
		wp:            wp,
		notifier:      notifier,
		publisher:     publisher,
		webhookSecret: webhookSecret,
		siteURL:       siteURL,
		logger:        log,
	}
}

// indexingWebhookRequest is the payload the CMS sends on publish events.
type indexingWebhookRequest struct {
	Slug        string `json:"slug"`
	Secret      string `json:"secret"`
	Action      string `json:"action"`
	PostTitle   string `json:"post_title"`
	PostExcerpt string `json:"post_excerpt"`
}

// IndexingWebhook handles POST /api/indexing.
//
// The indexing notification and the social publish run concurrently; the
// HTTP response reflects only the indexing outcome. A failed social
// publish is logged and otherwise ignored.
func (h *Handler) IndexingWebhook(c *gin.Context) {
	var req indexingWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Indexing webhook received malformed payload",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if !h.authorized(req.Secret) {
		metrics.WebhookRequests.WithLabelValues(webhookResultUnauthorized).Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if req.Slug == "" {
		metrics.WebhookRequests.WithLabelValues(webhookResultBadRequest).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug is required"})
		return
	}

	postURL := h.siteURL + "/" + req.Slug
	notificationType := notificationTypeFor(req.Action)

	h.logger.Info("Indexing webhook received",
		logger.String("slug", req.Slug),
		logger.String("action", req.Action),
		logger.String("url", postURL),
	)

	indexCh := make(chan indexing.Result, 1)
	go func() {
		indexCh <- h.notifier.Notify(c.Request.Context(), postURL, notificationType)
	}()

	// The social leg outlives the request: its outcome never affects the
	// response, so it must not die with the request context either.
	if req.Action != actionDeleted {
		title := req.PostTitle
		if title == "" {
			title = fallbackShareTitle
		}
		excerpt := req.PostExcerpt
		if excerpt == "" {
			excerpt = fallbackShareExcerpt
		}

		shareCtx := context.WithoutCancel(c.Request.Context())
		go h.publisher.Publish(shareCtx, title, excerpt, req.Slug)
	}

	result := <-indexCh
	if !result.Success {
		metrics.WebhookRequests.WithLabelValues(webhookResultFailed).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to notify Google",
			"details": result.Error,
		})
		return
	}

	metrics.WebhookRequests.WithLabelValues(webhookResultSuccess).Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Google notified successfully for " + string(notificationType),
		"url":      postURL,
		"response": result.Data,
	})
}

// IndexingTest handles GET /api/indexing, the manual/browser-triggered
// variant. It performs only the indexing leg and returns the raw notifier
// result.
func (h *Handler) IndexingTest(c *gin.Context) {
	slug := c.Query("slug")
	secret := c.Query("secret")
	action := c.DefaultQuery("action", "updated")

	if !h.authorized(secret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug is required"})
		return
	}

	postURL := h.siteURL + "/" + slug
	result := h.notifier.Notify(c.Request.Context(), postURL, notificationTypeFor(action))
	c.JSON(http.StatusOK, result)
}

// ListPosts handles GET /api/posts: the first page of normalized posts.
func (h *Handler) ListPosts(c *gin.Context) {
	posts := h.wp.GetAllPosts(c.Request.Context(), 1, postsFeedCount, 0)
	if posts == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListCategories handles GET /api/categories: all categories ordered by
// post count descending.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.wp.GetAllCategories(c.Request.Context()))
}

// NewsSitemap handles GET /news-sitemap.xml.
func (h *Handler) NewsSitemap(c *gin.Context) {
	posts := h.wp.GetRecentPosts(c.Request.Context())
	xml := sitemap.Generate(posts, h.siteURL)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(xml))
}

// authorized checks the shared webhook secret. An unset secret rejects
// everything rather than allowing everything.
func (h *Handler) authorized(secret string) bool {
	return h.webhookSecret != "" && secret == h.webhookSecret
}

func notificationTypeFor(action string) indexing.NotificationType {
	if action == actionDeleted {
		return indexing.URLDeleted
	}
	return indexing.URLUpdated
}
