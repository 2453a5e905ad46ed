// Package gitlab provides a minimal client for the GitLab merge request API.
package gitlab

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is used when no GitLab instance URL is configured.
const DefaultBaseURL = "https://gitlab.com"

// Client talks to a single GitLab instance.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a client for the given instance URL and private token.
func NewClient(baseURL, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("gitlab token is required (set GITLAB_TOKEN)")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	http := resty.New().
		SetBaseURL(baseURL+"/api/v4").
		SetHeader("PRIVATE-TOKEN", token).
		SetHeader("Accept", "application/json")

	return &Client{http: http, baseURL: baseURL}, nil
}

// NewClientFromEnv creates a client from GITLAB_TOKEN and GITLAB_URL.
// gitlabURL overrides GITLAB_URL when non-empty.
func NewClientFromEnv(gitlabURL string) (*Client, error) {
	if gitlabURL == "" {
		gitlabURL = os.Getenv("GITLAB_URL")
	}
	return NewClient(gitlabURL, os.Getenv("GITLAB_TOKEN"))
}

// BaseURL returns the configured instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiError reports a non-2xx API response with a truncated body for context.
func apiError(op string, resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Errorf("gitlab %s failed: status %d: %s", op, resp.StatusCode(), body)
}

// projectID encodes a project path ("group/repo") for use in API URLs.
// Numeric project IDs pass through unchanged.
func projectID(project string) string {
	return url.PathEscape(project)
}
