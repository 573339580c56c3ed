package dao

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/time/rate"
)

const (
	// CorrelationHeader carries the request correlation id through the gateway.
	CorrelationHeader = "lm-correlation-id"

	maxResponseBytes = 16 << 20
)

// GraphQLError holds the messages of a GraphQL errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// Unwrap lets errors.Is match ErrRemote.
func (e *GraphQLError) Unwrap() error {
	return ErrRemote
}

// GraphQLOption configures a GraphQLClient.
type GraphQLOption func(*GraphQLClient)

// WithHTTPClient sets the transport client.
func WithHTTPClient(c *http.Client) GraphQLOption {
	return func(g *GraphQLClient) {
		g.http = c
	}
}

// WithRateLimit paces calls to at most r per second with the given burst.
func WithRateLimit(r float64, burst int) GraphQLOption {
	return func(g *GraphQLClient) {
		if r <= 0 {
			g.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) GraphQLOption {
	return func(g *GraphQLClient) {
		g.log = l
	}
}

// GraphQLClient posts queries to a single GraphQL endpoint.
type GraphQLClient struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	log      *slog.Logger
}

// NewGraphQLClient returns a client for endpoint.
func NewGraphQLClient(endpoint string, opts ...GraphQLOption) *GraphQLClient {
	g := &GraphQLClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Endpoint returns the query url.
func (g *GraphQLClient) Endpoint() string {
	return g.endpoint
}

// Do posts query with vars and returns the data node.
func (g *GraphQLClient) Do(ctx context.Context, query string, vars map[string]any) (gjson.Result, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, err
		}
	}

	body, err := sjson.SetBytes([]byte(`{}`), "query", query)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode query: %w", err)
	}
	if len(vars) > 0 {
		if body, err = sjson.SetBytes(body, "variables", vars); err != nil {
			return gjson.Result{}, fmt.Errorf("encode variables: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	cid := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CorrelationHeader, cid)

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("post %s: %w", g.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read %s: %w", g.endpoint, err)
	}
	g.log.Debug("graphql call",
		"endpoint", g.endpoint,
		"correlation", cid,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, fmt.Errorf("%w: %s returned %d", ErrRemote, g.endpoint, resp.StatusCode)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: %s returned malformed json", ErrRemote, g.endpoint)
	}

	if errs := gjson.GetBytes(raw, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		gerr := GraphQLError{}
		for _, e := range errs.Array() {
			gerr.Messages = append(gerr.Messages, e.Get("message").String())
		}
		g.log.Error("graphql errors", "endpoint", g.endpoint, "correlation", cid, "errors", gerr.Messages)
		return gjson.Result{}, &gerr
	}

	return gjson.GetBytes(raw, "data"), nil
}

// decodeAll converts a JSON array into validated entities.
func decodeAll[T Entity](r gjson.Result, fn func(gjson.Result) T) ([]T, error) {
	arr := r.Array()
	out := make([]T, 0, len(arr))
	for i, e := range arr {
		v := fn(e)
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseTime reads epoch millis or an ISO-8601 timestamp.
func parseTime(r gjson.Result) time.Time {
	switch r.Type {
	case gjson.Number:
		return time.UnixMilli(r.Int())
	case gjson.String:
		s := r.String()
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms)
		}
	}
	return time.Time{}
}
