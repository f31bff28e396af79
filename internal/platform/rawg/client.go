package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"gamecontest/internal/logging"
)

const (
	DefaultBaseURL  = "https://api.rawg.io/api"
	DefaultTimeout  = 5 * time.Second
	DefaultOrdering = "-added"
)

var (
	// ErrNotFound is returned by GetGame when the catalog has no such game.
	ErrNotFound = errors.New("rawg: game not found")
	// ErrUnexpectedStatus wraps every other non-200 response.
	ErrUnexpectedStatus = errors.New("rawg: unexpected status")
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RPS caps outbound requests per second. Zero disables the limiter.
	RPS int
}

// Client talks to the RAWG video game database. It performs no retries: the
// callers decide how to degrade.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	log        *logrus.Entry
}

func NewClient(cfg Config, log *logrus.Entry) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RPS)), 1)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: limiter,
		log:     logging.OrDiscard(log).WithField("component", "rawg"),
	}
}

// SearchGames queries /games by free text. Results the client cannot decode are
// dropped individually instead of failing the whole page.
func (c *Client) SearchGames(ctx context.Context, query string, pageSize int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("ordering", DefaultOrdering)

	var page searchPage
	if _, err := c.get(ctx, "/games", params, &page); err != nil {
		return nil, err
	}

	res := &SearchResponse{
		Count:   page.Count,
		Next:    page.Next,
		Results: make([]Game, 0, len(page.Results)),
	}
	for i, raw := range page.Results {
		var g Game
		if err := json.Unmarshal(raw, &g); err != nil {
			c.log.WithFields(logrus.Fields{"query": query, "index": i, "error": err}).Warn("skipping malformed search result")
			continue
		}
		g.Raw = raw
		res.Results = append(res.Results, g)
	}
	return res, nil
}

// GetGame fetches the detail record of a single game.
func (c *Client) GetGame(ctx context.Context, id int) (*Game, error) {
	var g Game
	raw, err := c.get(ctx, "/games/"+strconv.Itoa(id), url.Values{}, &g)
	if err != nil {
		return nil, err
	}
	g.Raw = raw
	return &g, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("key", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rawg %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d on %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rawg %s: read body: %w", path, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return nil, fmt.Errorf("rawg %s: decode: %w", path, err)
	}
	return body, nil
}
