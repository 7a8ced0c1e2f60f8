package s1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/core"
)

func newTestClient(t *testing.T, host string, opts func(*Options)) *Client {
	t.Helper()

	o := Options{
		Host:         host,
		ReportType:   "rsoc",
		Days:         1,
		AuthKey:      "key123",
		MaxAttempts:  60,
		PollInterval: 30 * time.Second,
		HTTPTimeout:  5 * time.Second,
	}
	if opts != nil {
		opts(&o)
	}

	client, err := NewClient(o)
	require.NoError(t, err)
	return client
}

// recordSleeps replaces the client's sleep with one that records requested
// durations and returns immediately.
func recordSleeps(client *Client) *[]time.Duration {
	var slept []time.Duration
	client.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return &slept
}

func TestRequestReport(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/partner/v1/report", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"report_id":"abc123"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)

	id, err := client.RequestReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "rsoc", gotQuery.Get("report_type"))
	assert.Equal(t, "1", gotQuery.Get("days"))
	assert.Equal(t, "key123", gotQuery.Get("auth_key"))
	assert.False(t, gotQuery.Has("date"), "date must be omitted when no explicit override is set")
}

func TestRequestReportExplicitDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-05-01", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"report_id":"abc123"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(o *Options) { o.Date = "2024-05-01" })

	_, err := client.RequestReport(context.Background())
	require.NoError(t, err)
}

func TestRequestReportNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)

	_, err := client.RequestReport(context.Background())
	var reqErr *core.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
}

func TestRequestReportMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"accepted"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)

	_, err := client.RequestReport(context.Background())
	var reqErr *core.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Body, "accepted")
}

// statusSequence serves one canned response per status query, in order,
// repeating the last one if queried again.
func statusSequence(t *testing.T, responses ...func(w http.ResponseWriter)) (*httptest.Server, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/partner/v1/report/abc123/status", r.URL.Path)
		require.Equal(t, "key123", r.URL.Query().Get("auth_key"))
		i := calls
		if i >= len(responses) {
			i = len(responses) - 1
		}
		calls++
		responses[i](w)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func running(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`{"report_status":"RUNNING"}`))
}

func successWith(contentURL string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"report_status":"SUCCESS","content_url":"` + contentURL + `"}`))
	}
}

func TestPollStatusRunningThenSuccess(t *testing.T) {
	srv, calls := statusSequence(t, running, running, successWith("/download/abc123"))
	client := newTestClient(t, srv.URL, nil)
	slept := recordSleeps(client)

	got, err := client.PollStatus(context.Background(), "abc123")
	require.NoError(t, err)

	// Relative location is qualified against the host and the credential is
	// appended as a query parameter.
	assert.Equal(t, srv.URL+"/download/abc123?auth_key=key123", got)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{30 * time.Second, 30 * time.Second}, *slept)
}

func TestPollStatusAbsoluteURLWithCredential(t *testing.T) {
	srv, _ := statusSequence(t, successWith("https://cdn.example.com/r/abc123?auth_key=embedded"))
	client := newTestClient(t, srv.URL, nil)

	got, err := client.PollStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/r/abc123?auth_key=embedded", got)
}

func TestPollStatusRateLimited(t *testing.T) {
	srv, calls := statusSequence(t,
		func(w http.ResponseWriter) {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
		},
		successWith("/download/abc123"),
	)
	// MaxAttempts of 1 proves the 429 does not consume an attempt.
	client := newTestClient(t, srv.URL, func(o *Options) { o.MaxAttempts = 1 })
	slept := recordSleeps(client)

	_, err := client.PollStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	require.Len(t, *slept, 1)
	assert.GreaterOrEqual(t, (*slept)[0], 6*time.Second)
}

func TestPollStatusRateLimitedDefaultWait(t *testing.T) {
	srv, _ := statusSequence(t,
		func(w http.ResponseWriter) { w.WriteHeader(http.StatusTooManyRequests) },
		successWith("/download/abc123"),
	)
	client := newTestClient(t, srv.URL, nil)
	slept := recordSleeps(client)

	_, err := client.PollStatus(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, *slept, 1)
	assert.Equal(t, 31*time.Second, (*slept)[0])
}

func TestPollStatusFailed(t *testing.T) {
	srv, _ := statusSequence(t, func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"report_status":"FAILED"}`))
	})
	client := newTestClient(t, srv.URL, nil)

	_, err := client.PollStatus(context.Background(), "abc123")
	var failedErr *core.ReportFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Equal(t, "abc123", failedErr.ReportID)
}

func TestPollStatusTimeout(t *testing.T) {
	srv, calls := statusSequence(t, running)
	client := newTestClient(t, srv.URL, func(o *Options) { o.MaxAttempts = 3 })
	recordSleeps(client)

	_, err := client.PollStatus(context.Background(), "abc123")
	var timeoutErr *core.PollTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 3, timeoutErr.Attempts)
	assert.Equal(t, 3, *calls)
}

func TestPollStatusUnexpected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unrecognized status", body: `{"report_status":"EXPLODED"}`},
		{name: "pending is not actionable", body: `{"report_status":"PENDING"}`},
		{name: "success without content url", body: `{"report_status":"SUCCESS"}`},
		{name: "malformed body", body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := statusSequence(t, func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(tt.body))
			})
			client := newTestClient(t, srv.URL, nil)

			_, err := client.PollStatus(context.Background(), "abc123")
			var unexpectedErr *core.UnexpectedStatusError
			require.ErrorAs(t, err, &unexpectedErr)
		})
	}
}

func TestPollStatusTransportFailure(t *testing.T) {
	srv, _ := statusSequence(t, func(w http.ResponseWriter) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	client := newTestClient(t, srv.URL, nil)

	_, err := client.PollStatus(context.Background(), "abc123")
	var statusErr *core.StatusRequestError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestPollStatusCancelledDuringBackoff(t *testing.T) {
	srv, _ := statusSequence(t, running)
	client := newTestClient(t, srv.URL, func(o *Options) { o.PollInterval = time.Minute })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.PollStatus(ctx, "abc123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/redirect":
			http.Redirect(w, r, "/payload", http.StatusFound)
		case "/payload":
			_, _ = w.Write([]byte("csv,bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)

	body, err := client.Fetch(context.Background(), srv.URL+"/redirect")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "csv,bytes", string(data))
}

func TestFetchNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)

	_, err := client.Fetch(context.Background(), srv.URL+"/missing")
	var dlErr *core.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, http.StatusNotFound, dlErr.StatusCode)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Options{AuthKey: "k"})
	assert.Error(t, err)

	_, err = NewClient(Options{Host: "https://example.com"})
	assert.Error(t, err)
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, 31*time.Second, retryAfter(h))

	h.Set("Retry-After", "5")
	assert.Equal(t, 6*time.Second, retryAfter(h))

	h.Set("Retry-After", "junk")
	assert.Equal(t, 31*time.Second, retryAfter(h))

	h.Set("Retry-After", "-2")
	assert.Equal(t, 31*time.Second, retryAfter(h))
}

func TestResolveContentURLKeepsExistingQuery(t *testing.T) {
	client := newTestClient(t, "https://reports.example.com", nil)

	got, err := client.resolveContentURL("/download/abc123?fmt=csv")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "reports.example.com", u.Host)
	assert.Equal(t, "csv", u.Query().Get("fmt"))
	assert.Equal(t, "key123", u.Query().Get("auth_key"))
}

func TestSleepContextHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Minute)
	assert.True(t, errors.Is(err, context.Canceled))
}
