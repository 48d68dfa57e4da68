package expanse

import (
	"iter"
	"maps"
	"sync"
)

// Context represents a resolved JSON-LD context: the state governing
// expansion of one subtree.
//
// The scalar fields and the alias maps never change once the context is
// constructed. The term definition table grows lazily as terms are resolved,
// but entries are never removed or replaced.
type Context struct {
	// URL is the location the context was fetched from, empty when embedded.
	URL string
	// IRI is the document-level @id of the source document, if it had one.
	IRI string
	// Base is the validated @base IRI.
	Base string
	// Version is "1.1" when declared, empty otherwise.
	Version string
	// Vocab is the default vocabulary prefix applied to bare terms.
	Vocab string
	// Language is the default language. It is tracked but not applied to
	// literal values during expansion.
	Language string

	prefixes  map[string]string
	kwAliases map[string]string

	mu    sync.Mutex
	terms map[string]Term
}

func newContext(url string) *Context {
	return &Context{
		URL:       url,
		prefixes:  map[string]string{},
		kwAliases: defaultKeywordAliases(),
		terms:     map[string]Term{},
	}
}

// defaultKeywordAliases maps every aliasable keyword to itself.
func defaultKeywordAliases() map[string]string {
	kw := make(map[string]string, len(aliasableKeywords))
	for _, k := range aliasableKeywords {
		kw[k] = k
	}
	return kw
}

// Alias returns the term currently standing in for keyword, which is the
// keyword itself unless the context aliased it.
func (c *Context) Alias(keyword string) string {
	if c == nil {
		return keyword
	}
	if a, ok := c.kwAliases[keyword]; ok {
		return a
	}
	return keyword
}

// isKeywordAlias reports whether term stands in for one of the keywords.
func (c *Context) isKeywordAlias(term string) bool {
	if c == nil {
		return false
	}
	for kw, alias := range c.kwAliases {
		if alias == term && alias != kw {
			return true
		}
	}
	return false
}

// Prefix returns the IRI base registered for a prefix alias.
func (c *Context) Prefix(name string) (string, bool) {
	base, ok := c.prefixes[name]
	return base, ok
}

// Terms returns an iterator over the term definitions resolved so far.
//
// It yields from a snapshot, so resolving further terms while iterating is
// fine; definitions added after the iterator was obtained don't show up.
func (c *Context) Terms() iter.Seq2[string, Term] {
	return func(yield func(string, Term) bool) {
		c.mu.Lock()
		snapshot := maps.Clone(c.terms)
		c.mu.Unlock()

		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}

// define records a term definition under key during context construction.
func (c *Context) define(key string, t Term) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terms[key] = t
	if t.IRI != "" && t.IRI != key {
		c.terms[t.IRI] = t
	}
}

// mergeContexts combines an ordered list of contexts into one.
//
// Scalar fields are taken from the first context that defines them; prefix
// aliases and term definitions are unioned with earlier entries winning
// collisions. Nil entries are skipped. Keyword aliases are carried over from
// the built-in table, so a merged context always holds the defaults.
func mergeContexts(sources ...*Context) *Context {
	merged := newContext("")

	for _, src := range sources {
		if src == nil {
			continue
		}

		if merged.Base == "" {
			merged.Base = src.Base
		}
		if merged.Version == "" {
			merged.Version = src.Version
		}
		if merged.Vocab == "" {
			merged.Vocab = src.Vocab
		}
		if merged.Language == "" {
			merged.Language = src.Language
		}

		for kw, alias := range defaultKeywordAliases() {
			if _, ok := merged.kwAliases[kw]; !ok {
				merged.kwAliases[kw] = alias
			}
		}

		for name, base := range src.prefixes {
			if _, ok := merged.prefixes[name]; !ok {
				merged.prefixes[name] = base
			}
		}

		src.mu.Lock()
		for key, def := range src.terms {
			if _, ok := merged.terms[key]; !ok {
				merged.terms[key] = def
			}
		}
		src.mu.Unlock()
	}

	return merged
}
