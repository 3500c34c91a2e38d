package henrik

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/valbot/valstats/internal/model"
)

const defaultBaseURL = "https://api.henrikdev.xyz/valorant"

// The free tier allows 30 requests per minute; keys raise that, but the
// default stays under the free limit.
const defaultRPM = 25

var (
	// ErrNotFound means the player or match does not exist.
	ErrNotFound = errors.New("henrik: not found")
	// ErrRateLimited means the API told us to back off.
	ErrRateLimited = errors.New("henrik: rate limited")
)

// Client talks to the HenrikDev Valorant API. The zero value is not usable;
// construct with NewClient.
type Client struct {
	// BaseURL can be pointed at a test server.
	BaseURL string

	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a client. apiKey may be empty; the API then serves the
// unauthenticated (lower) rate limit.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(float64(defaultRPM)/60.0), 1),
	}
}

// SetRateLimit overrides the client-side request budget, in requests per
// minute.
func (c *Client) SetRateLimit(rpm int) {
	if rpm > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
}

// MatchMeta is one entry of a player's match history listing.
type MatchMeta struct {
	ID        string
	Map       string
	Mode      string
	StartedAt string
}

// MatchHistory lists a player's recent competitive matches, newest first.
func (c *Client) MatchHistory(ctx context.Context, region, name, tag string, size int) ([]MatchMeta, error) {
	path := fmt.Sprintf("/v1/lifetime/matches/%s/%s/%s?mode=competitive&size=%d",
		url.PathEscape(region), url.PathEscape(name), url.PathEscape(tag), size)
	var resp struct {
		Data []wireLifetimeMatch `json:"data"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	out := make([]MatchMeta, 0, len(resp.Data))
	for _, m := range resp.Data {
		out = append(out, MatchMeta{
			ID:        m.Meta.ID,
			Map:       m.Meta.Map.Name,
			Mode:      m.Meta.Mode,
			StartedAt: m.Meta.StartedAt,
		})
	}
	return out, nil
}

// Match fetches the full detail of one match and maps it into the domain
// record.
func (c *Client) Match(ctx context.Context, matchID string) (*model.MatchRecord, error) {
	var resp struct {
		Data wireMatch `json:"data"`
	}
	if err := c.get(ctx, "/v2/match/"+url.PathEscape(matchID), &resp); err != nil {
		return nil, err
	}
	return decodeMatch(&resp.Data), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("henrik: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, path)
	default:
		return fmt.Errorf("henrik: %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("henrik: decode %s: %w", path, err)
	}
	return nil
}
