// Package racatalog talks to the RetroAchievements web API. It covers the
// three calls the scan needs: credential validation, the active system list,
// and the per-system game catalog with hashes.
package racatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rascan/internal/services"
)

const userAgent = "rascan/0.1.0"

// System is one console as reported by the API.
type System struct {
	ID           int    `json:"ID"`
	Name         string `json:"Name"`
	Active       bool   `json:"Active"`
	IsGameSystem bool   `json:"IsGameSystem"`
}

// Entry is one game in a system catalog. Hashes are lower-cased hex strings;
// a game can carry several (regional dumps, revisions).
type Entry struct {
	ID              int      `json:"ID"`
	Title           string   `json:"Title"`
	ConsoleID       int      `json:"ConsoleID"`
	ConsoleName     string   `json:"ConsoleName"`
	NumAchievements int      `json:"NumAchievements"`
	Hashes          []string `json:"Hashes"`
}

// Client is a thin wrapper over the RetroAchievements HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// New builds a client for the given API base URL and web API key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateCredential reports whether the configured API key is accepted.
// Any transport failure, non-2xx status, or empty body counts as invalid;
// callers treat this as a preflight gate, not a diagnosis.
func (c *Client) ValidateCredential(ctx context.Context) bool {
	body, err := c.get(ctx, "API_GetAchievementOfTheWeek.php", nil)
	if err != nil {
		return false
	}
	return len(body) > 0 && string(body) != "null"
}

// ListActivePlatforms returns the systems RetroAchievements currently tracks,
// filtered to active game consoles. Event and hub pseudo-systems are dropped.
func (c *Client) ListActivePlatforms(ctx context.Context) ([]System, error) {
	body, err := c.get(ctx, "API_GetConsoleIDs.php", url.Values{"a": {"1"}, "g": {"1"}})
	if err != nil {
		return nil, err
	}

	var systems []System
	if err := json.Unmarshal(body, &systems); err != nil {
		return nil, services.Wrap(services.ErrTransient, "racatalog", "list-platforms", "decode console list", err)
	}

	active := systems[:0]
	for _, sys := range systems {
		if !sys.Active || !sys.IsGameSystem {
			continue
		}
		active = append(active, sys)
	}
	return active, nil
}

// ListCatalog fetches the full game list for one system, hashes included.
// Hash order within a game and game order within the list follow the API
// response; both matter for deterministic match tie-breaks downstream.
func (c *Client) ListCatalog(ctx context.Context, systemID int) ([]Entry, error) {
	params := url.Values{
		"i": {strconv.Itoa(systemID)},
		"h": {"1"},
		"f": {"0"},
	}
	body, err := c.get(ctx, "API_GetGameList.php", params)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, services.Wrap(services.ErrTransient, "racatalog", "list-catalog", fmt.Sprintf("decode game list for system %d", systemID), err)
	}

	for i := range entries {
		for j, hash := range entries[i].Hashes {
			entries[i].Hashes[j] = strings.ToLower(strings.TrimSpace(hash))
		}
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "racatalog", "request", "API base URL is empty", nil)
	}
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "racatalog", "request", "API key is empty", nil)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("y", c.apiKey)

	requestURL := fmt.Sprintf("%s/API/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "racatalog", "request", "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "racatalog", "request", fmt.Sprintf("call %s", endpoint), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(services.ErrConfiguration, "racatalog", "request",
			fmt.Sprintf("%s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(services.ErrTransient, "racatalog", "request",
			fmt.Sprintf("%s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "racatalog", "request", fmt.Sprintf("read %s response", endpoint), err)
	}
	return body, nil
}
