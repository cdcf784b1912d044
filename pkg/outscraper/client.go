// Package outscraper is a minimal client for the Outscraper Google Maps
// search API. Searches are asynchronous: a submit returns a task id, and
// results are polled from a separate endpoint until the task settles.
package outscraper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://api.outscraper.com/maps/search-v3"
	defaultResultsURL = "https://api.outscraper.cloud/requests"
	defaultPoll       = 15 * time.Second
	defaultMaxWait    = 10 * time.Minute
)

// Task statuses reported by the results endpoint. Anything else means the
// task is still running.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Client submits searches and retrieves their results.
type Client interface {
	SubmitSearch(ctx context.Context, queries []string, limit int) (string, error)
	GetResults(ctx context.Context, taskID string) (*TaskResult, error)
	WaitForResults(ctx context.Context, taskID string) (*TaskResult, error)
}

// searchRequest is the body for POST {baseURL}.
type searchRequest struct {
	Query          []string `json:"query"`
	Limit          int      `json:"limit"`
	Language       string   `json:"language"`
	Region         string   `json:"region"`
	DropDuplicates bool     `json:"dropDuplicates"`
}

// submitResponse is the immediate response to a search submission.
type submitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TaskResult is the settled (or still-pending) state of a search task. Data
// entries are kept raw: the API mixes result objects with nested arrays, and
// the caller decides what to decode.
type TaskResult struct {
	ID     string            `json:"id"`
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the search submission URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithResultsURL overrides the results polling URL.
func WithResultsURL(url string) Option {
	return func(c *httpClient) {
		c.resultsURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithPollInterval overrides how often WaitForResults checks the task.
func WithPollInterval(d time.Duration) Option {
	return func(c *httpClient) {
		c.poll = d
	}
}

// WithMaxWait overrides how long WaitForResults waits before giving up.
func WithMaxWait(d time.Duration) Option {
	return func(c *httpClient) {
		c.maxWait = d
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	resultsURL string
	poll       time.Duration
	maxWait    time.Duration
	http       *http.Client
	submits    *rate.Limiter
}

// NewClient creates an Outscraper API client. Submissions are paced to one
// every few seconds so back-to-back location pulls stay inside the API's
// account limits.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		resultsURL: defaultResultsURL,
		poll:       defaultPoll,
		maxWait:    defaultMaxWait,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		submits: rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SubmitSearch starts an asynchronous search and returns its task id.
func (c *httpClient) SubmitSearch(ctx context.Context, queries []string, limit int) (string, error) {
	if err := c.submits.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "outscraper: rate limit wait")
	}

	body, err := json.Marshal(searchRequest{
		Query:          queries,
		Limit:          limit,
		Language:       "en",
		Region:         "US",
		DropDuplicates: true,
	})
	if err != nil {
		return "", eris.Wrap(err, "outscraper: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "outscraper: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	var resp submitResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", eris.Errorf("outscraper: submission returned no task id (status %q)", resp.Status)
	}
	return resp.ID, nil
}

// GetResults fetches the current state of a task.
func (c *httpClient) GetResults(ctx context.Context, taskID string) (*TaskResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resultsURL+"/"+taskID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: create request")
	}
	req.Header.Set("X-API-KEY", c.apiKey)

	var result TaskResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WaitForResults polls the task until it reports Success or Error, the max
// wait elapses, or the context is cancelled.
func (c *httpClient) WaitForResults(ctx context.Context, taskID string) (*TaskResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		result, err := c.GetResults(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch result.Status {
		case StatusSuccess:
			return result, nil
		case StatusError:
			return result, eris.Errorf("outscraper: task %s failed", taskID)
		}

		select {
		case <-ctx.Done():
			return nil, eris.Wrapf(ctx.Err(), "outscraper: waiting on task %s", taskID)
		case <-ticker.C:
		}
	}
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "outscraper: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "outscraper: read response")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return eris.Errorf("outscraper: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "outscraper: unmarshal response")
	}
	return nil
}
