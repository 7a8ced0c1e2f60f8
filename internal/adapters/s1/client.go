// Package s1 implements the client for the partner reporting API: report
// creation, the status polling state machine, and content download.
package s1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/core"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/domain/model"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/metrics"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/statsd"
)

const (
	reportPath = "/partner/v1/report"

	// defaultRetryAfter applies when a 429 response carries no Retry-After
	// header.
	defaultRetryAfter = 30 * time.Second

	// maxErrorBodyBytes bounds how much of an error response body is carried
	// into error values.
	maxErrorBodyBytes = 8 << 10
)

// Options holds the dependencies and fixed parameters for the reporting
// client.
type Options struct {
	// Host is the reporting service base URL without trailing slash.
	Host string

	// ReportType, Days and Date are the creation call parameters. Date is
	// optional: when empty the service resolves the current period itself.
	ReportType string
	Days       int
	Date       string

	// AuthKey is passed on every call and appended to content URLs that lack
	// an embedded credential.
	AuthKey string

	// MaxAttempts bounds the number of in-progress status checks.
	MaxAttempts int

	// PollInterval is the spacing between in-progress status checks.
	PollInterval time.Duration

	// HTTPTimeout bounds creation and status calls. Content downloads are not
	// subject to it; they are bounded by context cancellation.
	HTTPTimeout time.Duration

	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Client talks to the reporting service. It implements core.ReportRequester,
// core.StatusPoller and core.ContentFetcher.
type Client struct {
	api      *http.Client
	download *http.Client

	host       string
	reportType string
	days       int
	date       string
	authKey    string

	maxAttempts  int
	pollInterval time.Duration

	logger  *slog.Logger
	metrics statsd.Sink

	// sleep is overridable for tests; the default waits on a timer or context
	// cancellation, whichever comes first.
	sleep func(ctx context.Context, d time.Duration) error
}

var (
	_ core.ReportRequester = (*Client)(nil)
	_ core.StatusPoller    = (*Client)(nil)
	_ core.ContentFetcher  = (*Client)(nil)
)

// NewClient validates the options and constructs a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.Host == "" {
		return nil, errors.New("reporting host is required")
	}
	if _, err := url.Parse(opts.Host); err != nil {
		return nil, fmt.Errorf("invalid reporting host: %w", err)
	}
	if opts.AuthKey == "" {
		return nil, errors.New("auth key is required")
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		api:          &http.Client{Timeout: opts.HTTPTimeout},
		download:     &http.Client{},
		host:         opts.Host,
		reportType:   opts.ReportType,
		days:         opts.Days,
		date:         opts.Date,
		authKey:      opts.AuthKey,
		maxAttempts:  opts.MaxAttempts,
		pollInterval: opts.PollInterval,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		sleep:        sleepContext,
	}, nil
}

type createResponse struct {
	ReportID string `json:"report_id"`
}

type statusResponse struct {
	ReportStatus string `json:"report_status"`
	ContentURL   string `json:"content_url"`
}

// RequestReport issues the single report-creation call. There is no retry:
// a failed creation is fatal to the run.
func (c *Client) RequestReport(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("report_type", c.reportType)
	q.Set("days", strconv.Itoa(c.days))
	q.Set("auth_key", c.authKey)
	if c.date != "" {
		q.Set("date", c.date)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+reportPath+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return "", fmt.Errorf("report request: %w", err)
	}
	defer resp.Body.Close()

	body := readBody(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &core.RequestError{StatusCode: resp.StatusCode, Body: body}
	}

	var created createResponse
	if err := json.Unmarshal([]byte(body), &created); err != nil || created.ReportID == "" {
		return "", &core.RequestError{Body: body}
	}

	return created.ReportID, nil
}

// PollStatus re-queries report status until terminal. Rate-limit backoff is
// advisory and does not consume an attempt from the budget; an in-progress
// status does.
func (c *Client) PollStatus(ctx context.Context, reportID string) (string, error) {
	statusURL := fmt.Sprintf("%s%s/%s/status?auth_key=%s", c.host, reportPath, url.PathEscape(reportID), url.QueryEscape(c.authKey))

	attempts := 0
	for {
		code, header, body, err := c.queryStatus(ctx, statusURL)
		if err != nil {
			return "", err
		}

		if code == http.StatusTooManyRequests {
			wait := retryAfter(header)
			c.logger.WarnContext(ctx, "status query rate limited",
				"report_id", reportID, "wait", wait.String())
			metrics.EmitRateLimited(c.metrics, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return "", err
			}
			continue
		}

		if code < 200 || code > 299 {
			return "", &core.StatusRequestError{StatusCode: code, Body: body}
		}

		var status statusResponse
		if err := json.Unmarshal([]byte(body), &status); err != nil {
			return "", &core.UnexpectedStatusError{Body: body}
		}

		switch model.ParseReportStatus(status.ReportStatus) {
		case model.ReportStatusSuccess:
			if status.ContentURL == "" {
				return "", &core.UnexpectedStatusError{Status: status.ReportStatus, Body: body}
			}
			metrics.EmitPollAttempts(c.metrics, attempts)
			return c.resolveContentURL(status.ContentURL)

		case model.ReportStatusFailed:
			return "", &core.ReportFailedError{ReportID: reportID}

		case model.ReportStatusRunning:
			attempts++
			if attempts >= c.maxAttempts {
				return "", &core.PollTimeoutError{Attempts: attempts}
			}
			c.logger.DebugContext(ctx, "report still running",
				"report_id", reportID, "attempt", attempts)
			if err := c.sleep(ctx, c.pollInterval); err != nil {
				return "", err
			}

		default:
			return "", &core.UnexpectedStatusError{Status: status.ReportStatus, Body: body}
		}
	}
}

// Fetch issues a single GET against the resolved content location, following
// redirects. The caller owns the returned body.
func (c *Client) Fetch(ctx context.Context, contentURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build content request: %w", err)
	}

	resp, err := c.download.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content download: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &core.DownloadError{StatusCode: resp.StatusCode, URL: contentURL}
	}

	return resp.Body, nil
}

func (c *Client) queryStatus(ctx context.Context, statusURL string) (int, http.Header, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return 0, nil, "", fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, resp.Header, readBody(resp.Body), nil
}

// resolveContentURL normalizes the content location the service returned:
// relative locations are qualified against the service host, and the
// credential is appended when the location lacks one.
func (c *Client) resolveContentURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &core.UnexpectedStatusError{Status: string(model.ReportStatusSuccess), Body: raw}
	}

	if !u.IsAbs() {
		base, err := url.Parse(c.host)
		if err != nil {
			return "", fmt.Errorf("invalid reporting host: %w", err)
		}
		u = base.ResolveReference(u)
	}

	q := u.Query()
	if q.Get("auth_key") == "" {
		q.Set("auth_key", c.authKey)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// retryAfter derives the advisory backoff from a 429 response: the
// Retry-After header value (seconds, default 30) plus one.
func retryAfter(header http.Header) time.Duration {
	wait := defaultRetryAfter
	if v := header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			wait = time.Duration(seconds) * time.Second
		}
	}
	return wait + time.Second
}

func readBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return string(b)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
