// Package validate probes listing websites for reachability. Probes run
// concurrently under a global cap; a single probe's timeout or failure is a
// terminal verdict for that record and never disturbs sibling probes.
package validate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/listings-cli/internal/model"
)

const userAgent = "Mozilla/5.0 (compatible; listings-cli/1.0)"

// Validator runs bounded-concurrency reachability probes.
type Validator struct {
	client      *http.Client
	concurrency int
	timeout     time.Duration
	completed   atomic.Int64
}

// Option configures the Validator.
type Option func(*Validator)

// WithHTTPClient overrides the default HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(v *Validator) {
		v.client = c
	}
}

// New creates a Validator with the given concurrency cap and per-probe
// timeout. Non-positive arguments fall back to 50 probes and 10 seconds.
func New(concurrency int, timeout time.Duration, opts ...Option) *Validator {
	if concurrency <= 0 {
		concurrency = 50
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	v := &Validator{
		concurrency: concurrency,
		timeout:     timeout,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
				MaxConnsPerHost:     4,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Completed reports how many probes have finished so far. Safe to poll from
// another goroutine while Run is in flight.
func (v *Validator) Completed() int64 {
	return v.completed.Load()
}

// Run probes every record that has a website and attaches a WebsiteCheck to
// it in place. Records without a website are left untouched — they are never
// marked unreachable. Returns counts of reachable and unreachable verdicts.
func (v *Validator) Run(ctx context.Context, records []*model.Record) *model.ValidationStats {
	stats := &model.ValidationStats{Verdicts: make(map[string]int)}

	var targets []*model.Record
	for _, r := range records {
		if r.Website != "" {
			targets = append(targets, r)
		}
	}
	if len(targets) == 0 {
		return stats
	}

	log := zap.L().With(zap.String("component", "validate"))
	log.Info("starting website validation",
		zap.Int("targets", len(targets)),
		zap.Int("concurrency", v.concurrency),
	)

	v.completed.Store(0)

	var reachable, unreachable atomic.Int64
	verdictCh := make(chan string, len(targets))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for _, r := range targets {
		g.Go(func() error {
			check := v.probe(gCtx, r.Website)
			r.WebsiteCheck = check
			verdictCh <- check.Verdict()

			if check.Reachable {
				reachable.Add(1)
			} else {
				unreachable.Add(1)
			}

			done := v.completed.Add(1)
			if done%100 == 0 || done == int64(len(targets)) {
				log.Info("validation progress",
					zap.Int64("completed", done),
					zap.Int("total", len(targets)),
				)
			}
			return nil
		})
	}

	_ = g.Wait()
	close(verdictCh)

	for verdict := range verdictCh {
		stats.Verdicts[verdict]++
	}
	stats.Checked = len(targets)
	stats.Reachable = int(reachable.Load())
	stats.Unreachable = int(unreachable.Load())

	log.Info("website validation complete",
		zap.Int("reachable", stats.Reachable),
		zap.Int("unreachable", stats.Unreachable),
	)

	return stats
}

// probe issues one HEAD request with its own timeout and converts any
// failure into a verdict. It never returns an error.
func (v *Validator) probe(ctx context.Context, website string) *model.WebsiteCheck {
	if website == "" {
		return &model.WebsiteCheck{Status: model.CheckStatusNoURL}
	}

	target := website
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	check := &model.WebsiteCheck{URL: target}

	probeCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, target, nil)
	if err != nil {
		check.Status = "invalid_url"
		return check
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		check.Status = classifyError(err)
		return check
	}
	defer resp.Body.Close() //nolint:errcheck

	check.StatusCode = resp.StatusCode
	check.Reachable = resp.StatusCode < 400
	check.FinalURL = resp.Request.URL.String()
	return check
}

// classifyError maps a transport error to a symbolic status for the verdict.
func classifyError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.CheckStatusTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.CheckStatusTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns_error"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if strings.Contains(urlErr.Err.Error(), "connection refused") {
			return "connection_refused"
		}
		if strings.Contains(strings.ToLower(urlErr.Err.Error()), "tls") ||
			strings.Contains(urlErr.Err.Error(), "certificate") {
			return "tls_error"
		}
	}

	return "request_failed"
}
