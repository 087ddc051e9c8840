// Package gallery talks to a running oddbit server: it pages through the library and builds stream addresses.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/syirilrakhulh/oddbit-player/media"
	"github.com/syirilrakhulh/oddbit-player/network"
	"github.com/syirilrakhulh/oddbit-player/util"
)

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// Client reads the listing endpoint of one server.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for the server at base, e.g. http://localhost:3000.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: network.Client,
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Base returns the server address.
func (c *Client) Base() string {
	return c.base
}

// StreamURL returns the streaming address of id.
func (c *Client) StreamURL(id string) string {
	return c.base + "/api/video/" + url.PathEscape(id)
}

// Ping checks that the server answers its liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, c.base+"/")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Page fetches one listing page.
func (c *Client) Page(ctx context.Context, n int) (media.Page, error) {
	resp, err := c.get(ctx, c.base+"/api/video?page="+strconv.Itoa(n))
	if err != nil {
		return media.Page{}, err
	}
	defer util.Ignore(resp.Body.Close)

	var page media.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return media.Page{}, fmt.Errorf("decode page %d: %w", n, err)
	}
	return page, nil
}

// All walks every page and returns the ids in listing order. The result is remembered for completion.
func (c *Client) All(ctx context.Context) ([]string, error) {
	var ids []string
	for n := 1; ; n++ {
		page, err := c.Page(ctx, n)
		if err != nil {
			return nil, err
		}
		for _, v := range page.Videos {
			ids = append(ids, v.ID)
		}
		if !page.HasNextPage {
			break
		}
	}

	_ = Remember(ids)
	return ids, nil
}

func (c *Client) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach %s: %w", c.base, err)
	}

	if resp.StatusCode != http.StatusOK {
		util.Ignore(resp.Body.Close)
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}
	return resp, nil
}
