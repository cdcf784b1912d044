package outscraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"dumpster rental Ohio", "roll off dumpster Ohio"}, req.Query)
		assert.Equal(t, 400, req.Limit)
		assert.Equal(t, "en", req.Language)
		assert.Equal(t, "US", req.Region)
		assert.True(t, req.DropDuplicates)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"task-123","status":"Pending"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	taskID, err := client.SubmitSearch(context.Background(),
		[]string{"dumpster rental Ohio", "roll off dumpster Ohio"}, 400)
	require.NoError(t, err)
	assert.Equal(t, "task-123", taskID)
}

func TestSubmitSearchNoTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Error"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.SubmitSearch(context.Background(), []string{"dumpster rental"}, 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no task id")
}

func TestSubmitSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.SubmitSearch(context.Background(), []string{"dumpster rental"}, 400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestGetResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/task-123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"task-123","status":"Success","data":[{"place_id":"p1","name":"Acme"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithResultsURL(srv.URL))
	result, err := client.GetResults(context.Background(), "task-123")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Data, 1)
	assert.JSONEq(t, `{"place_id":"p1","name":"Acme"}`, string(result.Data[0]))
}

func TestWaitForResultsPollsUntilSuccess(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if polls.Add(1) < 3 {
			_, _ = w.Write([]byte(`{"id":"task-1","status":"Pending"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"task-1","status":"Success","data":[{"place_id":"p1"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key",
		WithResultsURL(srv.URL),
		WithPollInterval(10*time.Millisecond),
		WithMaxWait(5*time.Second),
	)

	result, err := client.WaitForResults(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, int32(3), polls.Load())
}

func TestWaitForResultsTaskError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"task-1","status":"Error"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key",
		WithResultsURL(srv.URL),
		WithPollInterval(10*time.Millisecond),
	)

	result, err := client.WaitForResults(context.Background(), "task-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task task-1 failed")
	require.NotNil(t, result)
	assert.Equal(t, StatusError, result.Status)
}

func TestWaitForResultsMaxWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"task-1","status":"Pending"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key",
		WithResultsURL(srv.URL),
		WithPollInterval(10*time.Millisecond),
		WithMaxWait(50*time.Millisecond),
	)

	_, err := client.WaitForResults(context.Background(), "task-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()
	c := NewClient("my-key")
	hc := c.(*httpClient)
	assert.Equal(t, "my-key", hc.apiKey)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.Equal(t, defaultResultsURL, hc.resultsURL)
	assert.Equal(t, defaultPoll, hc.poll)
	assert.NotNil(t, hc.http)
	assert.NotNil(t, hc.submits)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()
	custom := &http.Client{}
	c := NewClient("test-key", WithHTTPClient(custom))
	assert.Equal(t, custom, c.(*httpClient).http)
}
