package expanse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Resolve resolves the @context of a document source into a single
// [Context].
//
// The @context value may be an embedded object, a remote URL, null, or an
// ordered list mixing those. Remote references go through the store; list
// entries are fetched concurrently and merged in list order, earlier entries
// winning. It returns nil without error when the source carries no usable
// context.
func (p *Processor) Resolve(ctx context.Context, src Source, store *Store) (*Context, error) {
	return p.resolve(ctx, src, store, true)
}

func (p *Processor) resolve(ctx context.Context, src Source, store *Store, storable bool) (*Context, error) {
	obj, ok := src.Value.(map[string]any)
	if !ok {
		return nil, nil
	}

	raw, hasContext := obj[KeywordContext]
	if !hasContext {
		return nil, nil
	}

	// The document-level @id is only ever recorded on a context constructed
	// for this resolution. Fetched contexts may be shared through the store
	// and never change after construction.
	id, _ := obj[KeywordID].(string)

	var result *Context

	switch value := raw.(type) {
	case map[string]any:
		result = p.parseContext(value, src.URL)
		result.IRI = id
		if storable {
			store.add(src.URL, result)
		}
	case nil:
		// the null context: cancels inheritance.
		result = newContext(src.URL)
		result.IRI = id
		if storable {
			store.add(src.URL, result)
		}
	case string:
		c, err := p.fetchContext(ctx, value, store)
		if err != nil {
			return nil, err
		}
		result = c
	case []any:
		c, err := p.resolveList(ctx, value, store)
		if err != nil {
			return nil, err
		}
		c.IRI = id
		result = c
	default:
		p.logger.Warn("ignoring @context of unsupported shape",
			slog.String("kind", KindOf(raw).String()))
		return nil, nil
	}

	return result, nil
}

// resolveList resolves every entry of a @context list concurrently and
// merges the results. Completion order may vary; merge order tracks list
// order so the first-wins rule stays deterministic.
func (p *Processor) resolveList(ctx context.Context, list []any, store *Store) (*Context, error) {
	for _, entry := range list {
		switch entry.(type) {
		case string, map[string]any:
		default:
			return nil, fmt.Errorf("%w: @context list entries must be strings or objects, got %s",
				ErrInvalidContextEntry, KindOf(entry))
		}
	}

	results := make([]*Context, len(list))
	g, gctx := errgroup.WithContext(ctx)

	for i, entry := range list {
		switch e := entry.(type) {
		case string:
			g.Go(func() error {
				c, err := p.fetchContext(gctx, e, store)
				if err != nil {
					return err
				}
				results[i] = c
				return nil
			})
		case map[string]any:
			// anonymous embedded entry, parsed inline and never registered
			results[i] = p.parseContext(e, "")
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeContexts(results...), nil
}

// fetchContext retrieves and resolves a remote context.
//
// A cached resolution is returned without touching the network. Any fetch
// failure, non-2xx status, unexpected Content-Type or non-object body is a
// warning, not an error: the reference resolves to no context.
func (p *Processor) fetchContext(ctx context.Context, iri string, store *Store) (*Context, error) {
	if c, ok := store.cached(iri); ok {
		return c, nil
	}

	header := http.Header{}
	header.Set("Accept", ApplicationLDJSON)

	resp, err := store.fetcher(ctx, iri, header)
	if err != nil {
		p.logger.Warn("remote context fetch failed",
			slog.String("url", iri),
			slog.Any("error", err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("remote context fetch returned non-success status",
			slog.String("url", iri),
			slog.Int("status", resp.StatusCode))
		return nil, nil
	}

	if ct := resp.Header.Get("Content-Type"); ct != ApplicationLDJSON {
		p.logger.Warn("remote context has unexpected content type",
			slog.String("url", iri),
			slog.String("content-type", ct))
		return nil, nil
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		p.logger.Warn("remote context is not valid JSON",
			slog.String("url", iri),
			slog.Any("error", err))
		return nil, nil
	}

	obj, ok := body.(map[string]any)
	if !ok {
		p.logger.Warn("remote context is not a JSON object",
			slog.String("url", iri),
			slog.String("kind", KindOf(body).String()))
		return nil, nil
	}

	return p.resolve(ctx, NewSource(iri, obj), store, responseStorable(resp))
}
