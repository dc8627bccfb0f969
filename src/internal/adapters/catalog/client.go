package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cinefront/cinefront/src/internal/domain"
	"github.com/cinefront/cinefront/src/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client talks to the catalog/account API.
type Client struct {
	baseURL string
	client  *http.Client
	metrics *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		metrics: m,
	}
}

type recommendationsEnvelope struct {
	Results []domain.MovieRef `json:"results"`
}

// GetProfileByEmail returns a nil profile when the API answers with null.
func (c *Client) GetProfileByEmail(ctx context.Context, token, email string) (*domain.ProfileRecord, error) {
	var p *domain.ProfileRecord
	if err := c.get(ctx, "profile", "/users/email/"+url.PathEscape(email), token, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) GetMovie(ctx context.Context, id int) (*domain.MovieDetail, error) {
	var m *domain.MovieDetail
	if err := c.get(ctx, "movie", "/movies/movie/"+strconv.Itoa(id), "", &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: empty movie %d", domain.ErrFetchFailed, id)
	}
	return m, nil
}

// GetRecommendations accepts either a bare JSON array or a {"results": [...]}
// envelope.
func (c *Client) GetRecommendations(ctx context.Context, id int) ([]domain.MovieRef, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "recommendations", "/movies/movie/"+strconv.Itoa(id)+"/recommendations", "", &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var refs []domain.MovieRef
		if err := json.Unmarshal(trimmed, &refs); err != nil {
			return nil, fmt.Errorf("%w: decode recommendations: %v", domain.ErrFetchFailed, err)
		}
		return refs, nil
	}

	var env recommendationsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: decode recommendations: %v", domain.ErrFetchFailed, err)
	}
	return env.Results, nil
}

func (c *Client) get(ctx context.Context, endpoint, path, token string, out any) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream(endpoint, start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, endpoint, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %d: %w", domain.ErrFetchFailed, endpoint, resp.StatusCode, domain.ErrUpstreamStatus)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrFetchFailed, endpoint, err)
	}
	return nil
}
