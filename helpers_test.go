package expanse_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/irifold/expanse"
)

// mustDecode parses a JSON literal into the value tree the processor
// operates on.
func mustDecode(t *testing.T, s string) any {
	t.Helper()

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid JSON literal: %s", err)
	}
	return v
}

// staticFetcher answers every request with the same response.
func staticFetcher(status int, contentType, body string) expanse.Fetcher {
	return func(_ context.Context, _ string, _ http.Header) (*http.Response, error) {
		header := http.Header{}
		header.Set("Content-Type", contentType)

		return &http.Response{
			StatusCode: status,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

// failingFetcher fails every request with err.
func failingFetcher(err error) expanse.Fetcher {
	return func(_ context.Context, _ string, _ http.Header) (*http.Response, error) {
		return nil, err
	}
}

// countingFetcher serves canned context documents and counts invocations.
func countingFetcher(docs map[string]string, calls *atomic.Int32) expanse.Fetcher {
	return func(_ context.Context, url string, _ http.Header) (*http.Response, error) {
		calls.Add(1)

		body, ok := docs[url]
		if !ok {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		}

		header := http.Header{}
		header.Set("Content-Type", expanse.ApplicationLDJSON)

		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}
