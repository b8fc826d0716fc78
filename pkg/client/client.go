// Package client talks to the subnet calculator API. Addresses are validated
// locally before any request is made; each method issues exactly one HTTP
// request and no failure is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Flarenzy/subnetcalc/internal/ipv4"
)

const (
	defaultTimeout    = 10 * time.Second
	sessionCookieName = "subnet_session"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	bearer     string
}

type Option func(*Client)

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient swaps the underlying transport; the caller owns cookie
// handling in that case.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithBearerToken sends an OIDC access token with every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearer = token
	}
}

// WithSessionToken seeds the cookie jar with a previously saved session token,
// resuming that session instead of starting a fresh one.
func WithSessionToken(token string) Option {
	return func(c *Client) {
		if token == "" || c.httpClient.Jar == nil {
			return
		}
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{
			{Name: sessionCookieName, Value: token, Path: "/"},
		})
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}

	// The jar keeps the session cookie alive across calls, the way a
	// browser would.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// IPInfo describes one address inside one prefix. The calculated binary
// octets are filled in locally; every other field is the server's verbatim.
type IPInfo struct {
	IP           string  `json:"ip"`
	Prefix       int     `json:"prefix"`
	Octets       [4]int  `json:"octets"`
	Class        string  `json:"ip_class"`
	NetworkType  string  `json:"network_type"`
	SubnetMask   string  `json:"subnet_mask"`
	WildcardMask string  `json:"wildcard_mask"`
	NetworkID    string  `json:"network_id"`
	Broadcast    string  `json:"broadcast"`
	HostMin      *string `json:"host_min"`
	HostMax      *string `json:"host_max"`
	TotalHosts   uint64  `json:"total_hosts"`
	UsableHosts  uint64  `json:"usable_hosts"`

	BinaryOctets [4]string `json:"-"`
}

type SubnetPlan struct {
	Network     string   `json:"network"`
	Requested   int      `json:"requested"`
	Count       int      `json:"count"`
	ChildPrefix int      `json:"child_prefix"`
	Subnets     []IPInfo `json:"subnets"`
}

type HistoryEntry struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Input     string          `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type History struct {
	History []HistoryEntry `json:"history"`
	Count   int64          `json:"count"`
}

type Session struct {
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	Lookups       int64     `json:"lookups"`
	Authenticated bool      `json:"authenticated"`
	Subject       string    `json:"subject"`
}

// IPInfo validates the address locally first; on a validation failure no
// request is issued.
func (c *Client) IPInfo(ctx context.Context, ip string, prefix int) (*IPInfo, error) {
	octets, err := ipv4.Validate(ip)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	body := map[string]any{"ip": octets.String(), "prefix": prefix}
	var info IPInfo
	if err := c.doJSON(ctx, http.MethodPost, "/api/ip-info", body, &info); err != nil {
		return nil, err
	}

	info.BinaryOctets = ipv4.Octets(info.Octets).Binary()
	return &info, nil
}

// Subnetting splits a network into equal subnets. The address part of the
// CIDR goes through the same local validation gate as IPInfo.
func (c *Client) Subnetting(ctx context.Context, network string, subnets int) (*SubnetPlan, error) {
	addrPart, bitsPart, ok := strings.Cut(strings.TrimSpace(network), "/")
	if !ok {
		return nil, &ValidationError{Err: fmt.Errorf("network must be in CIDR form, like 10.0.0.0/24")}
	}
	if _, err := ipv4.Validate(addrPart); err != nil {
		return nil, &ValidationError{Err: err}
	}
	bits, err := strconv.Atoi(bitsPart)
	if err != nil || bits < 0 || bits > 32 {
		return nil, &ValidationError{Err: fmt.Errorf("prefix must be between 0 and 32")}
	}

	body := map[string]any{"network": network, "subnets": subnets}
	var plan SubnetPlan
	if err := c.doJSON(ctx, http.MethodPost, "/api/subnetting", body, &plan); err != nil {
		return nil, err
	}

	for i := range plan.Subnets {
		plan.Subnets[i].BinaryOctets = ipv4.Octets(plan.Subnets[i].Octets).Binary()
	}
	return &plan, nil
}

func (c *Client) History(ctx context.Context) (*History, error) {
	var history History
	if err := c.doJSON(ctx, http.MethodGet, "/api/history", nil, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *Client) User(ctx context.Context) (*Session, error) {
	var session Session
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Export streams the session dump into w and reports the filename the server
// suggested, or a fallback when it didn't.
func (c *Client) Export(ctx context.Context, w io.Writer) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/export", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	filename := "subnet-session.json"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			filename = name
		}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return filename, nil
}

// SessionToken reports the current session cookie value so callers can save
// it for the next invocation. Empty when no session has been established or
// the server has cleared it.
func (c *Client) SessionToken() string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: unexpected response body", ErrUnreachable)
	}

	return nil
}

// checkStatus turns a non-2xx response into an APIError, surfacing the
// backend's message when the body carries one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(payload, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
	}

	return apiErr
}
