package expanse

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/pquerna/cachecontrol"
)

// Fetcher retrieves a remote context document.
//
// The engine calls it with an Accept header requesting application/ld+json
// and expects the response to carry exactly that Content-Type. When building
// your own fetcher, remember to:
//   - Have proper timeouts, retry handling and request deduplication.
//   - Follow redirects; the response is read as-is.
//
// The caller closes the response body.
type Fetcher func(ctx context.Context, url string, header http.Header) (*http.Response, error)

// NewHTTPFetcher returns a [Fetcher] backed by client.
//
// A nil client uses http.DefaultClient.
func NewHTTPFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context, url string, header http.Header) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadingRemoteContext, err)
		}

		maps.Copy(req.Header, header)

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadingRemoteContext, err)
		}

		return resp, nil
	}
}

// responseStorable reports whether the origin allows retaining the response.
// Responses without request metadata, such as ones synthesised by test
// fetchers, are always storable.
func responseStorable(resp *http.Response) bool {
	if resp == nil || resp.Request == nil {
		return true
	}

	reasons, _, err := cachecontrol.CachableResponse(resp.Request, resp, cachecontrol.Options{
		PrivateCache: true,
	})

	return err == nil && len(reasons) == 0
}
