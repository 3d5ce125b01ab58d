package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Yandex Music update server.
	DefaultBaseURL = "https://music-desktop-application.s3.yandex.net"
	// DefaultChannel is the release channel queried for builds.
	DefaultChannel = "stable"
	// DefaultTimeout is the HTTP request timeout for manifest and download requests.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent mimics a desktop browser; the update server rejects
	// requests with obviously non-browser agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches build manifests from the update server.
type Client struct {
	baseURL   string
	channel   string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the update server base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithChannel selects a release channel other than stable.
func WithChannel(channel string) Option {
	return func(c *Client) { c.channel = channel }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates an update server client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		channel:   DefaultChannel,
		userAgent: DefaultUserAgent,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ManifestURL returns the URL of the channel's latest.yml manifest.
func (c *Client) ManifestURL() string {
	return fmt.Sprintf("%s/%s/latest.yml", c.baseURL, c.channel)
}

// BuildURL returns the download URL for a build descriptor.
func (c *Client) BuildURL(build *Build) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.channel, build.Path)
}

// LatestBuilds fetches and parses the channel manifest, returning one Build
// per published file. An empty manifest is an error: the channel always
// carries at least one installer.
func (c *Client) LatestBuilds(ctx context.Context) ([]Build, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ManifestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("create manifest request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch manifest: unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read manifest body: %w", err)
	}

	var info updateInfo
	if err := yaml.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	builds := info.builds()
	if len(builds) == 0 {
		return nil, fmt.Errorf("manifest for channel %q lists no files", c.channel)
	}
	return builds, nil
}
