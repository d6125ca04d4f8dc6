// Package stackex implements the HTTP client for the Stack Exchange
// public 2.3 API, scoped to a single site. All methods are context-aware
// and respect the shared rate limiter. Failures are classified into the
// taxonomy in errors.go so callers can react to each kind.
package stackex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stackslip/stackslip/internal/model"
)

const (
	defaultBaseURL = "https://api.stackexchange.com/2.3/"

	// defaultFilter selects the extended user fields the receipt needs
	// (vote counts, reputation deltas, view count, last access).
	defaultFilter = "!BTeL)VRhXdb1"

	// tagPageSize caps the top-tags fetch; the receipt only prints five.
	tagPageSize = 5
)

// digitsOnly decides the lookup path: an all-digit query is a direct
// identifier, anything else is a name search.
var digitsOnly = regexp.MustCompile(`^\d+$`)

// Options configures a Client. Zero values fall back to package defaults.
type Options struct {
	BaseURL string
	Site    string
	Filter  string
	Key     string // optional app key; widens quota, not authentication
	Timeout time.Duration
	Rate    float64 // max requests per second
	Debug   bool
}

// Client is the Stack Exchange API HTTP client.
type Client struct {
	baseURL    string
	site       string
	filter     string
	key        string
	httpClient *http.Client
	limiter    *rate.Limiter
	debug      bool
}

// NewClient creates a Client for the given site.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Site == "" {
		opts.Site = "stackoverflow"
	}
	if opts.Filter == "" {
		opts.Filter = defaultFilter
	}
	if opts.Rate <= 0 {
		opts.Rate = 5.0
	}
	burst := int(opts.Rate)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: opts.BaseURL,
		site:    opts.Site,
		filter:  opts.Filter,
		key:     opts.Key,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), burst),
		debug:   opts.Debug,
	}
}

// ─── Profile Lookup ───────────────────────────────────────────────────────────

// ResolveProfile resolves a user-supplied query to a single normalized
// profile record. An all-digit query is looked up directly by identifier;
// anything else is a name search where an exact case-insensitive
// display-name match wins, falling back to the platform's top-ranked
// candidate. The caller must pass a non-empty trimmed query.
func (c *Client) ResolveProfile(ctx context.Context, query string) (*model.ProfileRecord, error) {
	var items []rawUser
	var err error
	if digitsOnly.MatchString(query) {
		items, err = c.users(ctx, "users/"+url.PathEscape(query), nil)
	} else {
		params := url.Values{}
		params.Set("inname", query)
		items, err = c.users(ctx, "users", params)
	}
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	selected := items[0]
	if !digitsOnly.MatchString(query) {
		for _, it := range items {
			if strings.EqualFold(it.DisplayName, query) {
				selected = it
				break
			}
		}
	}

	rec := normalizeUser(selected)
	return &rec, nil
}

// SearchUsers returns the full candidate list for a name search, in the
// platform's own relevance order.
func (c *Client) SearchUsers(ctx context.Context, name string) ([]model.ProfileRecord, error) {
	params := url.Values{}
	params.Set("inname", name)
	items, err := c.users(ctx, "users", params)
	if err != nil {
		return nil, err
	}
	users := make([]model.ProfileRecord, len(items))
	for i, it := range items {
		users[i] = normalizeUser(it)
	}
	return users, nil
}

// users performs a user-envelope request. Both lookup kinds share the
// same filter and response shape so normalization is identical.
func (c *Client) users(ctx context.Context, endpoint string, params url.Values) ([]rawUser, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("filter", c.filter)

	var env struct {
		Items []rawUser `json:"items"`
	}
	if err := c.get(ctx, endpoint, params, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ─── Tags ─────────────────────────────────────────────────────────────────────

// FetchTags returns the user's most popular tags, descending, capped at
// five. Tag data is cosmetic and must never block the receipt: any
// failure is logged and an empty list is returned in its place.
func (c *Client) FetchTags(ctx context.Context, userID int) model.TagList {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "popular")
	params.Set("pagesize", strconv.Itoa(tagPageSize))

	var env struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := c.get(ctx, fmt.Sprintf("users/%d/tags", userID), params, &env); err != nil {
		slog.Warn("tag fetch failed", "user_id", userID, "err", err)
		return model.TagList{}
	}

	tags := make(model.TagList, 0, len(env.Items))
	for _, t := range env.Items {
		tags = append(tags, t.Name)
	}
	return tags
}

// ─── Low-level HTTP ───────────────────────────────────────────────────────────

// get performs one GET against the API. No retries: a failed attempt
// surfaces immediately, rate-limit responses included.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Err: err}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("site", c.site)
	if c.key != "" {
		params.Set("key", c.key)
	}

	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	if c.debug {
		// Log URL with the app key redacted
		safe := reqURL
		if c.key != "" {
			safe = strings.Replace(safe, url.QueryEscape(c.key), "REDACTED", 1)
		}
		slog.Debug("stackex request", "url", safe)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stackslip-cli/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("reading body: %w", err)}
	}

	if c.debug {
		slog.Debug("stackex response", "status", resp.StatusCode, "bytes", len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"error_message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &UpstreamError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// ─── Internal helpers ─────────────────────────────────────────────────────────

// rawUser mirrors the wire shape of a user item. Plain ints zero-fill
// absent numerics on decode; AcceptRate stays a pointer because absence
// is meaningful.
type rawUser struct {
	UserID         int    `json:"user_id"`
	DisplayName    string `json:"display_name"`
	Reputation     int    `json:"reputation"`
	RepChangeWeek  int    `json:"reputation_change_week"`
	RepChangeMonth int    `json:"reputation_change_month"`
	RepChangeYear  int    `json:"reputation_change_year"`
	BadgeCounts    struct {
		Gold   int `json:"gold"`
		Silver int `json:"silver"`
		Bronze int `json:"bronze"`
	} `json:"badge_counts"`
	AnswerCount    int   `json:"answer_count"`
	QuestionCount  int   `json:"question_count"`
	CreationDate   int64 `json:"creation_date"`
	AcceptRate     *int  `json:"accept_rate"`
	ViewCount      int   `json:"view_count"`
	UpVoteCount    int   `json:"up_vote_count"`
	DownVoteCount  int   `json:"down_vote_count"`
	LastAccessDate int64 `json:"last_access_date"`
}

func normalizeUser(r rawUser) model.ProfileRecord {
	name := r.DisplayName
	if name == "" {
		name = "Unknown User"
	}
	return model.ProfileRecord{
		UserID:         r.UserID,
		DisplayName:    name,
		Reputation:     r.Reputation,
		RepChangeWeek:  r.RepChangeWeek,
		RepChangeMonth: r.RepChangeMonth,
		RepChangeYear:  r.RepChangeYear,
		Badges: model.BadgeCounts{
			Gold:   r.BadgeCounts.Gold,
			Silver: r.BadgeCounts.Silver,
			Bronze: r.BadgeCounts.Bronze,
		},
		AnswerCount:    r.AnswerCount,
		QuestionCount:  r.QuestionCount,
		CreationDate:   r.CreationDate,
		AcceptRate:     r.AcceptRate,
		ViewCount:      r.ViewCount,
		UpVoteCount:    r.UpVoteCount,
		DownVoteCount:  r.DownVoteCount,
		LastAccessDate: r.LastAccessDate,
		FetchedAt:      time.Now(),
	}
}
