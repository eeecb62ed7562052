// Package indexing notifies the Google Indexing API about URL changes.
package indexing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sharecom5/TBM/internal/logger"
	"github.com/Sharecom5/TBM/internal/metrics"
)

// NotificationType is the change event announced for a URL.
type NotificationType string

const (
	// URLUpdated announces a new or updated URL.
	URLUpdated NotificationType = "URL_UPDATED"
	// URLDeleted announces a removed URL.
	URLDeleted NotificationType = "URL_DELETED"
)

const (
	defaultTokenURL   = "https://oauth2.googleapis.com/token"
	defaultPublishURL = "https://indexing.googleapis.com/v3/urlNotifications:publish"

	indexingScope  = "https://www.googleapis.com/auth/indexing"
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	tokenLifetime  = time.Hour

	// errCredentialsMissing is the fixed disabled-feature message.
	// Callers branch on Success, so it shares the shape of a real failure.
	errCredentialsMissing = "Credentials missing"
)

// Result is the outcome of a notification attempt. Error carries the
// upstream's structured error body when one was returned, else a plain
// message string.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   any            `json:"error,omitempty"`
}

// Config holds the Notifier configuration. TokenURL and PublishURL exist
// so tests can point at local fakes; they default to Google's endpoints.
type Config struct {
	ClientEmail string
	PrivateKey  string
	TokenURL    string
	PublishURL  string
}

// Notifier announces URL change events to the Google Indexing API using
// service-account JWT authentication.
//
// Notify never returns a Go error: configuration and upstream failures
// both surface as a Result with Success false, so the caller has a single
// branch point.
type Notifier struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewNotifier creates a Notifier. Missing credentials are allowed: the
// notifier then runs in disabled mode and reports every call as a
// credentials failure without network I/O.
func NewNotifier(cfg Config, httpClient *http.Client, log logger.Logger) *Notifier {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.PublishURL == "" {
		cfg.PublishURL = defaultPublishURL
	}
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		log.Warn("Google Indexing API credentials missing, automated indexing is disabled")
	}
	return &Notifier{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     log,
	}
}

// Enabled reports whether both credentials are configured.
func (n *Notifier) Enabled() bool {
	return n.cfg.ClientEmail != "" && n.cfg.PrivateKey != ""
}

// Notify announces a URL change event. A single trailing slash is stripped
// from the target URL before submission: the indexing API treats
// trailing-slash variants as distinct URLs.
func (n *Notifier) Notify(ctx context.Context, targetURL string, typ NotificationType) Result {
	if !n.Enabled() {
		return Result{Success: false, Error: errCredentialsMissing}
	}

	targetURL = strings.TrimSuffix(targetURL, "/")

	result := n.publish(ctx, targetURL, typ)
	metrics.RecordNotification(metrics.ChannelGoogleIndexing, result.Success)

	if result.Success {
		n.logger.Info("Notified Google Indexing API",
			logger.String("url", targetURL),
			logger.String("type", string(typ)),
		)
	} else {
		n.logger.Error("Google Indexing API notification failed",
			logger.String("url", targetURL),
			logger.String("type", string(typ)),
			logger.Any("error", result.Error),
		)
	}
	return result
}

func (n *Notifier) publish(ctx context.Context, targetURL string, typ NotificationType) Result {
	token, err := n.accessToken(ctx)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	payload, err := json.Marshal(map[string]string{
		"url":  targetURL,
		"type": string(typ),
	})
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.PublishURL, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		// Prefer the structured error body when the API returned one.
		var errBody map[string]any
		if json.Unmarshal(body, &errBody) == nil && len(errBody) > 0 {
			return Result{Success: false, Error: errBody}
		}
		return Result{
			Success: false,
			Error:   fmt.Sprintf("indexing API returned status %d", resp.StatusCode),
		}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, Data: data}
}

// accessToken signs a service-account assertion and exchanges it for a
// bearer token at the OAuth token endpoint.
func (n *Notifier) accessToken(ctx context.Context) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(n.cfg.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("parse service account key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   n.cfg.ClientEmail,
		"scope": indexingScope,
		"aud":   n.cfg.TokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign service account assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token endpoint returned an empty access token")
	}
	return tokenResp.AccessToken, nil
}
