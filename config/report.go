package config

import (
	"fmt"
	"strings"
	"time"
)

// DatePolicy selects how the target date is derived from the invocation wall
// clock when no explicit date override is configured.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type DatePolicy string

const (
	// DatePolicyToday targets the invocation's current UTC date.
	DatePolicyToday DatePolicy = "today"
	// DatePolicyYesterday targets the UTC date before the invocation's. This
	// is the default: the reporting service finalises a day's data after the
	// day has closed.
	DatePolicyYesterday DatePolicy = "yesterday"
)

// UnmarshalText implements encoding.TextUnmarshaler for DatePolicy to allow
// env parsing.
func (p *DatePolicy) UnmarshalText(text []byte) error {
	v := DatePolicy(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid DatePolicy: %q (valid options: today, yesterday)", string(text))
	}
	*p = v
	return nil
}

// Valid returns true if the DatePolicy is valid.
func (p DatePolicy) Valid() bool {
	return p == DatePolicyToday || p == DatePolicyYesterday
}

// ReportConfig contains reporting service and polling configuration.
type ReportConfig struct {
	// Host is the reporting service base URL, e.g. https://reports.example.com.
	Host string `env:"REPORT_HOST"`

	// Type is the report type requested, e.g. rsoc.
	Type string `env:"REPORT_TYPE"`

	// Days is the requested day span.
	Days int `env:"REPORT_DAYS" envDefault:"1"`

	// Date is an explicit target date override (YYYY-MM-DD). When set it is
	// passed to the reporting service and used in the object path; when empty
	// the date policy applies and the service resolves the current period
	// itself.
	Date string `env:"REPORT_DATE"`

	// DatePolicy derives the target date when Date is empty.
	DatePolicy DatePolicy `env:"REPORT_DATE_POLICY" envDefault:"yesterday"`

	// AuthKey is the partner API credential.
	AuthKey string `env:"AUTH_KEY"`

	// SiteLabel identifies the site in the object path.
	SiteLabel string `env:"SITE_LABEL"`

	// PollMaxAttempts bounds the number of in-progress status checks.
	PollMaxAttempts int `env:"POLL_MAX_ATTEMPTS" envDefault:"60"`

	// PollInterval is the spacing between in-progress status checks.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`

	// HTTPTimeout applies to creation and status calls. Content downloads are
	// bounded by run cancellation only.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"2m"`
}

// Sanitize applies guardrails to report configuration values.
func (r *ReportConfig) Sanitize() {
	r.Host = strings.TrimRight(strings.TrimSpace(r.Host), "/")
	r.Type = strings.TrimSpace(r.Type)
	r.Date = strings.TrimSpace(r.Date)
	r.SiteLabel = strings.TrimSpace(r.SiteLabel)
	if r.Days < 1 {
		r.Days = 1
	}
	if r.PollMaxAttempts < 1 {
		r.PollMaxAttempts = 1
	}
	if r.PollInterval <= 0 {
		r.PollInterval = 30 * time.Second
	}
	if r.HTTPTimeout <= 0 {
		r.HTTPTimeout = 2 * time.Minute
	}
	if !r.DatePolicy.Valid() {
		r.DatePolicy = DatePolicyYesterday
	}
}

// TargetDate resolves the logical day this run targets: the explicit
// override when present, otherwise the configured policy applied to now.
func (r *ReportConfig) TargetDate(now time.Time) string {
	if r.Date != "" {
		return r.Date
	}
	day := now.UTC()
	if r.DatePolicy == DatePolicyYesterday {
		day = day.AddDate(0, 0, -1)
	}
	return day.Format("2006-01-02")
}

func (r *ReportConfig) missing() []string {
	var out []string
	if r.Host == "" {
		out = append(out, "S1_REPORT_HOST")
	}
	if r.Type == "" {
		out = append(out, "S1_REPORT_TYPE")
	}
	if r.AuthKey == "" {
		out = append(out, "S1_AUTH_KEY")
	}
	if r.SiteLabel == "" {
		out = append(out, "S1_SITE_LABEL")
	}
	return out
}

func (r *ReportConfig) validateDate() error {
	if r.Date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid S1_REPORT_DATE %q: %w", r.Date, err)
	}
	return nil
}
