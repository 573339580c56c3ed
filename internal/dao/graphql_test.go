package dao

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

type gqlCall struct {
	query       string
	vars        gjson.Result
	correlation string
}

type gqlServer struct {
	*httptest.Server

	mx    sync.Mutex
	calls []gqlCall
}

func newGQLServer(t *testing.T, handle func(q string, vars gjson.Result) (int, string)) *gqlServer {
	t.Helper()

	s := gqlServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := gjson.ParseBytes(raw)
		c := gqlCall{
			query:       body.Get("query").String(),
			vars:        body.Get("variables"),
			correlation: r.Header.Get(CorrelationHeader),
		}
		s.mx.Lock()
		s.calls = append(s.calls, c)
		s.mx.Unlock()

		code, resp := handle(c.query, c.vars)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(s.Close)

	return &s
}

func (s *gqlServer) Calls() []gqlCall {
	s.mx.Lock()
	defer s.mx.Unlock()

	return append([]gqlCall(nil), s.calls...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGraphQLDo(t *testing.T) {
	srv := newGQLServer(t, func(string, gjson.Result) (int, string) {
		return http.StatusOK, `{"data": {"ping": "pong"}}`
	})
	gql := NewGraphQLClient(srv.URL, WithLogger(quietLogger()))

	data, err := gql.Do(context.Background(), `query { ping }`, map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := data.Get("ping").String(); got != "pong" {
		t.Errorf("expected pong, got %q", got)
	}

	calls := srv.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].correlation == "" {
		t.Error("expected a correlation id")
	}
	if calls[0].vars.Get("a").Int() != 1 {
		t.Errorf("expected variables to be forwarded, got %s", calls[0].vars.Raw)
	}
}

func TestGraphQLCorrelationIsUnique(t *testing.T) {
	srv := newGQLServer(t, func(string, gjson.Result) (int, string) {
		return http.StatusOK, `{"data": {}}`
	})
	gql := NewGraphQLClient(srv.URL, WithLogger(quietLogger()))
	for range 2 {
		if _, err := gql.Do(context.Background(), `query { x }`, nil); err != nil {
			t.Fatal(err)
		}
	}

	calls := srv.Calls()
	if calls[0].correlation == calls[1].correlation {
		t.Errorf("expected distinct correlation ids, got %q twice", calls[0].correlation)
	}
}

func TestGraphQLFailures(t *testing.T) {
	uu := map[string]struct {
		code int
		body string
	}{
		"status":    {code: http.StatusBadGateway, body: `{}`},
		"malformed": {code: http.StatusOK, body: `{"data":`},
		"errors":    {code: http.StatusOK, body: `{"errors": [{"message": "boom"}], "data": null}`},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			srv := newGQLServer(t, func(string, gjson.Result) (int, string) {
				return u.code, u.body
			})
			gql := NewGraphQLClient(srv.URL, WithLogger(quietLogger()))
			_, err := gql.Do(context.Background(), `query { x }`, nil)
			if !errors.Is(err, ErrRemote) {
				t.Errorf("expected ErrRemote, got %v", err)
			}
		})
	}
}

func TestGraphQLErrorMessages(t *testing.T) {
	srv := newGQLServer(t, func(string, gjson.Result) (int, string) {
		return http.StatusOK, `{"errors": [{"message": "a"}, {"message": "b"}]}`
	})
	gql := NewGraphQLClient(srv.URL, WithLogger(quietLogger()))

	_, err := gql.Do(context.Background(), `query { x }`, nil)
	var gerr *GraphQLError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a GraphQLError, got %v", err)
	}
	if len(gerr.Messages) != 2 || gerr.Error() != "graphql: a; b" {
		t.Errorf("unexpected messages %v", gerr.Messages)
	}
}

func TestParseTime(t *testing.T) {
	uu := map[string]struct {
		raw string
		ms  int64
	}{
		"millis":   {raw: `1700000000000`, ms: 1700000000000},
		"strMilli": {raw: `"1700000000000"`, ms: 1700000000000},
		"rfc3339":  {raw: `"2023-11-14T22:13:20Z"`, ms: 1700000000000},
		"naive":    {raw: `"2023-11-14T22:13:20"`, ms: 1700000000000},
		"garbage":  {raw: `"soon"`, ms: -1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			got := parseTime(gjson.Parse(u.raw))
			if u.ms < 0 {
				if !got.IsZero() {
					t.Errorf("expected zero time, got %v", got)
				}
				return
			}
			if got.UnixMilli() != u.ms {
				t.Errorf("expected %d, got %d", u.ms, got.UnixMilli())
			}
		})
	}
}
