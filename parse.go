package expanse

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/irifold/expanse/internal/url"
)

// parseContext builds a [Context] from the contents of an embedded @context
// object. No network access is performed.
//
// Malformed keyword values are skipped with a warning; they never fail the
// parse. origin is recorded as the context's URL when it was fetched.
func (p *Processor) parseContext(obj map[string]any, origin string) *Context {
	c := newContext(origin)

	if base, ok := obj[KeywordBase]; ok {
		if s, ok := base.(string); ok && url.IsAbsolute(s) {
			c.Base = s
		} else {
			p.logger.Warn("ignoring @base that is not an absolute URL",
				slog.Any("value", base))
		}
	}

	if version, ok := obj[KeywordVersion]; ok && version != nil {
		if f, ok := version.(float64); ok && f == 1.1 {
			c.Version = "1.1"
		} else {
			p.logger.Warn("ignoring unsupported @version",
				slog.Any("value", version))
		}
	}

	if vocab, ok := obj[KeywordVocab]; ok {
		if s, ok := vocab.(string); ok && url.IsAbsolute(s) {
			c.Vocab = s
		} else {
			p.logger.Warn("ignoring @vocab that is not an absolute URL",
				slog.Any("value", vocab))
		}
	}

	if lang, ok := obj[KeywordLanguage]; ok {
		if s, ok := lang.(string); ok && s != "" {
			c.Language = s
		} else {
			p.logger.Warn("ignoring @language that is not a non-empty string",
				slog.Any("value", lang))
		}
	}

	// Iteration order is fixed so parsing the same context always yields the
	// same result, whatever order the map hands the entries back in.
	keys := slices.Sorted(maps.Keys(obj))

	// First pass: keyword aliases and prefix aliases.
	for _, key := range keys {
		if strings.HasPrefix(key, "@") {
			continue
		}

		s, ok := obj[key].(string)
		if !ok {
			continue
		}

		if looksLikeKeyword(s) {
			if s == KeywordContext {
				p.logger.Warn("a term cannot alias @context",
					slog.String("term", key))
				continue
			}
			if !slices.Contains(aliasableKeywords, s) {
				p.logger.Warn("ignoring alias for unsupported keyword",
					slog.String("term", key),
					slog.String("keyword", s))
				continue
			}
			c.kwAliases[s] = key
			continue
		}

		if url.IsAbsolute(s) {
			c.prefixes[key] = s
		}
	}

	// Second pass: term definitions. Object declarations go first so a
	// plain-string term can compose against a sibling they define.
	for _, key := range keys {
		if strings.HasPrefix(key, "@") {
			continue
		}

		if v, ok := obj[key].(map[string]any); ok {
			p.parseTermObject(c, key, v)
		}
	}

	for _, key := range keys {
		if strings.HasPrefix(key, "@") {
			continue
		}

		v, ok := obj[key].(string)
		if !ok || strings.HasPrefix(v, "@") {
			continue
		}
		if def, ok := c.ResolveTerm(v); ok {
			c.define(key, def)
		}
	}

	return c
}

// parseTermObject handles a compound term declaration: an object whose @id
// (or, absent that, the entry key) identifies the term, optionally carrying
// @type, @container and a scoped @context.
func (p *Processor) parseTermObject(c *Context, key string, v map[string]any) {
	id := key
	if s, ok := v[KeywordID].(string); ok && s != "" {
		id = s
	}

	def, ok := c.ResolveTerm(id)
	if !ok {
		p.logger.Warn("skipping term with unresolvable identifier",
			slog.String("term", key),
			slog.String("id", id))
		return
	}

	if s, ok := v[KeywordType].(string); ok {
		def.Type = s
	}

	if s, ok := v[KeywordContainer].(string); ok {
		if slices.Contains(containerKeywords, s) {
			def.Container = s
		} else {
			p.logger.Warn("ignoring unknown @container",
				slog.String("term", key),
				slog.String("container", s))
		}
	}

	if scoped, ok := v[KeywordContext]; ok {
		def.Context = scoped
	}

	c.define(id, def)
	if key != id {
		c.define(key, def)
	}
}
