// Package linkedin publishes article shares to LinkedIn's UGC post API.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Sharecom5/TBM/internal/logger"
	"github.com/Sharecom5/TBM/internal/metrics"
)

const (
	defaultAPIURL = "https://api.linkedin.com/v2/ugcPosts"

	restliProtocolVersion = "2.0.0"

	// Fixed share composition. The UTM parameters are part of the
	// canonical link contract with the analytics setup.
	shareHook = "India’s economic landscape is undergoing a critical transformation that industry leaders cannot afford to overlook."
	shareCTA  = "Read full story here:"
	shareTags = "#IndiaNews #BusinessInsights #BreakingNews #TheBharatMirror"
	utmQuery  = "utm_source=linkedin&utm_medium=social&utm_campaign=auto_post"

	errCredentialsMissing = "Credentials missing"
)

// Result is the outcome of a publish attempt. Error carries LinkedIn's
// response body on API errors, else a plain message string.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   any            `json:"error,omitempty"`
}

// Config holds the Publisher configuration. APIURL exists so tests can
// point at a local fake.
type Config struct {
	AccessToken string
	OwnerURN    string
	SiteURL     string
	APIURL      string
}

// Publisher posts article shares on behalf of the configured owner URN.
//
// Publishing is not idempotent: two calls for the same slug produce two
// distinct posts. Like the indexing notifier, Publish never returns a Go
// error; failures surface in the Result.
type Publisher struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewPublisher creates a Publisher. Missing credentials put it in disabled
// mode: every call reports a credentials failure without network I/O.
func NewPublisher(cfg Config, httpClient *http.Client, log logger.Logger) *Publisher {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.AccessToken == "" || cfg.OwnerURN == "" {
		log.Warn("LinkedIn credentials missing, automatic posting is disabled")
	}
	return &Publisher{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     log,
	}
}

// Enabled reports whether an access token and owner URN are configured.
func (p *Publisher) Enabled() bool {
	return p.cfg.AccessToken != "" && p.cfg.OwnerURN != ""
}

// PostURL returns the canonical share link for a slug, carrying the fixed
// UTM tracking parameters.
func (p *Publisher) PostURL(slug string) string {
	return fmt.Sprintf("%s/%s?%s", p.cfg.SiteURL, slug, utmQuery)
}

// ShareText composes the share commentary: hook, excerpt, call to action
// with the canonical link, hashtag block.
func (p *Publisher) ShareText(excerpt, slug string) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n\n%s",
		shareHook, excerpt, shareCTA, p.PostURL(slug), shareTags)
}

// ugcPost is the LinkedIn UGC share payload.
type ugcPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      visibility      `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    textBlock    `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []shareMedia `json:"media"`
}

type shareMedia struct {
	Status      string    `json:"status"`
	Description textBlock `json:"description"`
	OriginalURL string    `json:"originalUrl"`
	Title       textBlock `json:"title"`
}

type textBlock struct {
	Text string `json:"text"`
}

type visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// Publish posts a public, immediately-published article share for the
// post identified by slug.
func (p *Publisher) Publish(ctx context.Context, title, excerpt, slug string) Result {
	if !p.Enabled() {
		return Result{Success: false, Error: errCredentialsMissing}
	}

	result := p.post(ctx, title, excerpt, slug)
	metrics.RecordNotification(metrics.ChannelLinkedIn, result.Success)

	if result.Success {
		p.logger.Info("Published post to LinkedIn",
			logger.String("slug", slug),
			logger.String("owner", p.cfg.OwnerURN),
		)
	} else {
		p.logger.Error("LinkedIn publish failed",
			logger.String("slug", slug),
			logger.Any("error", result.Error),
		)
	}
	return result
}

func (p *Publisher) post(ctx context.Context, title, excerpt, slug string) Result {
	postURL := p.PostURL(slug)

	payload := ugcPost{
		Author:         p.cfg.OwnerURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    textBlock{Text: p.ShareText(excerpt, slug)},
				ShareMediaCategory: "ARTICLE",
				Media: []shareMedia{{
					Status:      "READY",
					Description: textBlock{Text: excerpt},
					OriginalURL: postURL,
					Title:       textBlock{Text: title},
				}},
			},
		},
		Visibility: visibility{MemberNetworkVisibility: "PUBLIC"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	var data map[string]any
	if err := json.Unmarshal(respBody, &data); err != nil {
		data = nil
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if len(data) > 0 {
			return Result{Success: false, Error: data}
		}
		return Result{
			Success: false,
			Error:   fmt.Sprintf("linkedin API returned status %d", resp.StatusCode),
		}
	}

	return Result{Success: true, Data: data}
}
