package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/fwojciec/lexcrawl"
	"github.com/temoto/robotstxt"
)

// Ensure RobotsPolicy implements lexcrawl.RobotsPolicy at compile time.
var _ lexcrawl.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy answers robots.txt checks, fetching each site's rules once.
// A site whose robots.txt cannot be read allows everything. It is safe for
// concurrent use.
type RobotsPolicy struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	rules map[string]*robotstxt.Group
}

// NewRobotsPolicy creates a RobotsPolicy for the given user agent.
// If client is nil, http.DefaultClient is used.
func NewRobotsPolicy(client *http.Client, userAgent string) *RobotsPolicy {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsPolicy{
		client:    client,
		userAgent: userAgent,
		rules:     make(map[string]*robotstxt.Group),
	}
}

// Allowed reports whether rawURL may be fetched. Unparseable URLs are
// refused.
func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	group := p.group(ctx, u.Scheme+"://"+u.Host)
	if group == nil {
		return true
	}
	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

func (p *RobotsPolicy) group(ctx context.Context, site string) *robotstxt.Group {
	p.mu.Lock()
	group, ok := p.rules[site]
	p.mu.Unlock()
	if ok {
		return group
	}

	data, err := fetchRobots(ctx, p.client, site)
	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		group = data.FindGroup(p.userAgent)
	}

	p.mu.Lock()
	p.rules[site] = group
	p.mu.Unlock()
	return group
}

// fetchRobots reads and parses site's robots.txt. Status codes are
// interpreted by robotstxt: 4xx allows all, 5xx disallows all.
func fetchRobots(ctx context.Context, client *http.Client, site string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}
