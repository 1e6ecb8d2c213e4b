package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Robots fetches and caches per-host robots.txt rules and answers whether
// a URL may be fetched. Rules are cached for the lifetime of the fetcher;
// unreachable robots.txt files are treated as allow-all.
type Robots struct {
	client    *http.Client
	userAgent string

	mu    sync.RWMutex
	rules map[string]*robotRules
}

type robotRules struct {
	disallowed []string
	allowed    []string
}

// NewRobots creates a Robots gate backed by the given HTTP client.
func NewRobots(client *http.Client, userAgent string) *Robots {
	return &Robots{
		client:    client,
		userAgent: userAgent,
		rules:     make(map[string]*robotRules),
	}
}

// Allowed reports whether the URL may be fetched under the host's
// robots.txt rules.
func (r *Robots) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	rules, err := r.rulesFor(ctx, u.Scheme, u.Host)
	if err != nil {
		// Unreachable robots.txt never blocks the fetch.
		return true, nil
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range rules.disallowed {
		if !matchesRobotsPattern(path, pattern) {
			continue
		}
		for _, allow := range rules.allowed {
			if matchesRobotsPattern(path, allow) && len(allow) > len(pattern) {
				return true, nil
			}
		}
		return false, nil
	}
	return true, nil
}

func (r *Robots) rulesFor(ctx context.Context, scheme, host string) (*robotRules, error) {
	r.mu.RLock()
	rules, ok := r.rules[host]
	r.mu.RUnlock()
	if ok {
		return rules, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		rules = parseRobots(string(body))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Missing robots.txt means everything is allowed.
		rules = &robotRules{}
	default:
		return nil, fmt.Errorf("robots.txt: HTTP %d", resp.StatusCode)
	}

	r.mu.Lock()
	r.rules[host] = rules
	r.mu.Unlock()
	return rules, nil
}

// parseRobots extracts the allow and disallow rules that apply to the
// wildcard user agent group.
func parseRobots(content string) *robotRules {
	rules := &robotRules{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	applies := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		directive, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		directive = strings.ToLower(strings.TrimSpace(directive))
		value = strings.TrimSpace(value)

		switch directive {
		case "user-agent":
			applies = value == "*"
		case "disallow":
			if applies && value != "" {
				rules.disallowed = append(rules.disallowed, value)
			}
		case "allow":
			if applies && value != "" {
				rules.allowed = append(rules.allowed, value)
			}
		}
	}
	return rules
}

// matchesRobotsPattern implements prefix matching with * wildcards and the
// $ end anchor.
func matchesRobotsPattern(path, pattern string) bool {
	exact := strings.HasSuffix(pattern, "$")
	if exact {
		pattern = strings.TrimSuffix(pattern, "$")
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(path, parts[0]) {
		return false
	}
	remaining := path[len(parts[0]):]
	for _, part := range parts[1:] {
		idx := strings.Index(remaining, part)
		if idx == -1 {
			return false
		}
		remaining = remaining[idx+len(part):]
	}
	if exact {
		return remaining == ""
	}
	return true
}
