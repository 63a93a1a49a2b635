package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/PratikDhanave/vibe-events/internal/breaker"
)

var (
	// ErrNoCredentials means the search source has no API key configured.
	ErrNoCredentials = errors.New("ingest: search API key not configured")
	// ErrUnexpectedShape means the search response could not be read as a list of events.
	ErrUnexpectedShape = errors.New("ingest: unexpected search response shape")
)

// Searcher returns event records for a free-text location, in source order.
type Searcher interface {
	Search(ctx context.Context, location string) ([]EventRecord, error)
}

// SerpAPIClient queries the SerpApi google_events engine.
type SerpAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *breaker.Breaker[[]EventRecord]
	log     *zap.Logger
}

// NewSerpAPIClient creates a client. An empty apiKey is allowed; Search then
// returns ErrNoCredentials without touching the network.
func NewSerpAPIClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *SerpAPIClient {
	if baseURL == "" {
		baseURL = "https://serpapi.com/search.json"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SerpAPIClient{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client:  newHTTPClient(timeout),
		breaker: breaker.New[[]EventRecord]("serpapi", breaker.Settings{}, log),
		log:     log,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Search runs one "events" query for location.
func (s *SerpAPIClient) Search(ctx context.Context, location string) ([]EventRecord, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredentials
	}
	return s.breaker.Execute(func() ([]EventRecord, error) {
		return s.search(ctx, location)
	})
}

func (s *SerpAPIClient) search(ctx context.Context, location string) ([]EventRecord, error) {
	q := url.Values{}
	q.Set("engine", "google_events")
	q.Set("q", "events")
	q.Set("location", location)
	q.Set("hl", "en")
	q.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	return decodeEventsResults(body)
}

// decodeEventsResults extracts "events_results". A missing key is an empty
// result set; a payload error or a non-list value is an error.
func decodeEventsResults(body []byte) ([]EventRecord, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}

	if msg, ok := payload["error"].(string); ok && msg != "" {
		// SerpApi reports an empty result set through the error field.
		if strings.Contains(msg, "hasn't returned any results") {
			return nil, nil
		}
		return nil, fmt.Errorf("search source error: %s", msg)
	}

	raw, ok := payload["events_results"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: events_results is %T", ErrUnexpectedShape, raw)
	}

	records := make([]EventRecord, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: events_results[%d] is %T", ErrUnexpectedShape, i, item)
		}
		records = append(records, EventRecord(m))
	}
	return records, nil
}
