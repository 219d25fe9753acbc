package qualidoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

const (
	userAgent      = "qualidoo-cli/0.2.0"
	requestTimeout = 60 * time.Second

	upgradeMessage = "API access requires a Pro subscription. Upgrade at https://qualidoo.aidooit.com"
)

// Client talks to the Qualidoo API. The underlying HTTP client is created
// on first use and released by Close, so a zero-work Client costs nothing.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	rest       *resty.Client
}

// NewClient returns a client for the given API key and base URL. An empty
// key produces unauthenticated requests.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) client() *resty.Client {
	if c.rest == nil {
		c.httpClient = &http.Client{Timeout: requestTimeout}
		c.rest = resty.NewWithClient(c.httpClient)
		log.WithField("host", c.baseURL).Debug("qualidoo client initialized")
	}
	return c.rest
}

// Close releases the transport's idle connections. Safe to call whether or
// not a request was ever made, and on every exit path.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
		c.rest = nil
	}
}

func (c *Client) makeRequest(ctx context.Context) *resty.Request {
	req := c.client().R()
	req.SetContext(ctx)
	req.SetHeader("User-Agent", userAgent)
	req.SetHeader("X-Request-ID", cuid.New())
	if c.apiKey != "" {
		req.SetHeader("X-API-Key", c.apiKey)
	}
	return req
}

// handleResponse maps error status codes onto the APIError taxonomy and
// decodes successful bodies into out (ignored when out is nil).
func (c *Client) handleResponse(resp *resty.Response, out interface{}) error {
	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return &APIError{
			Kind:       KindAuthenticationFailed,
			Message:    "Authentication failed. Run 'qualidoo login' to reconfigure.",
			StatusCode: code,
		}
	case code == http.StatusForbidden:
		detail := errorDetail(resp.Body())
		lower := strings.ToLower(detail)
		if strings.Contains(lower, "tier") || strings.Contains(lower, "subscription") {
			return &APIError{Kind: KindAccessForbidden, Message: upgradeMessage, StatusCode: code}
		}
		return &APIError{
			Kind:       KindAccessForbidden,
			Message:    fmt.Sprintf("Access forbidden: %s", detail),
			StatusCode: code,
		}
	case code == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Message: "Resource not found.", StatusCode: code}
	case code == http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimited, Message: "Rate limit exceeded. Try again later.", StatusCode: code}
	case code >= 400:
		detail := errorDetail(resp.Body())
		if detail == "" {
			detail = string(resp.Body())
		}
		return &APIError{
			Kind:       KindAPIError,
			Message:    fmt.Sprintf("API error: %s", detail),
			StatusCode: code,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorDetail extracts the "detail" field from an error body. A body that
// is not JSON yields an empty detail; the status code mapping still applies.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// ValidateKey checks the configured API key against the identity endpoint
// and returns the account it belongs to.
func (c *Client) ValidateKey(ctx context.Context) (*UserInfo, error) {
	resp, err := c.makeRequest(ctx).Get(fmt.Sprintf("%s/api/v1/auth/me", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity endpoint: %w", err)
	}
	var user UserInfo
	if err := c.handleResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadAddon zips the addon directory and submits it for analysis. The
// path is validated before anything is read or sent.
func (c *Client) UploadAddon(ctx context.Context, addonPath string) (*UploadResponse, error) {
	archive, name, err := buildArchive(addonPath)
	if err != nil {
		return nil, err
	}

	log.WithField("addon", name).WithField("bytes", len(archive)).Debug("uploading archive")

	req := c.makeRequest(ctx)
	req.SetFileReader("file", name+".zip", bytes.NewReader(archive))
	resp, err := req.Post(fmt.Sprintf("%s/api/v1/analyze/upload", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to upload addon %s: %w", name, err)
	}

	var upload UploadResponse
	if err := c.handleResponse(resp, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// GetJobStatus fetches the current status of an analysis job.
func (c *Client) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	resp, err := c.makeRequest(ctx).Get(fmt.Sprintf("%s/api/v1/jobs/%s", c.baseURL, url.PathEscape(jobID)))
	if err != nil {
		return nil, fmt.Errorf("failed to get status for job %s: %w", jobID, err)
	}
	var status JobStatus
	if err := c.handleResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetJobResult fetches the full report of a completed job. The service only
// serves results for jobs in the completed state.
func (c *Client) GetJobResult(ctx context.Context, jobID string) (*AnalysisResult, error) {
	resp, err := c.makeRequest(ctx).Get(fmt.Sprintf("%s/api/v1/jobs/%s/result", c.baseURL, url.PathEscape(jobID)))
	if err != nil {
		return nil, fmt.Errorf("failed to get result for job %s: %w", jobID, err)
	}
	var result AnalysisResult
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
