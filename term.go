package expanse

import (
	"strings"

	"github.com/irifold/expanse/internal/url"
)

// Term represents one resolved vocabulary term.
type Term struct {
	// IRI is the absolute IRI the term expands to.
	IRI string
	// Type marks how values of this term are interpreted. The notable value
	// is "@id": values are IRI references, not literals.
	Type string
	// Container is the structural wrapper declared for values of this term,
	// one of @list, @set, @language, @index, @id or @type.
	Container string
	// Context is a scoped context declared on the term. It is recorded but
	// not applied during expansion.
	Context any
}

// ResolveTerm resolves a term or type string to its definition, memoizing
// the result on the context.
//
// Resolution tries, in order: a previously cached definition, the string
// itself being an absolute IRI, the default vocabulary for bare terms, and
// compact-IRI composition against a prefix alias or an already-known term.
// The second return is false when none of these apply; callers drop the
// entry rather than treat that as an error.
func (c *Context) ResolveTerm(value string) (Term, bool) {
	if value == "" {
		return Term{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if def, ok := c.terms[value]; ok {
		return def, true
	}

	if url.IsAbsolute(value) {
		return c.memoize(value, Term{IRI: value}), true
	}

	prefix, suffix, found := strings.Cut(value, ":")
	if !found {
		if c.Vocab == "" {
			return Term{}, false
		}
		return c.memoize(value, Term{IRI: c.Vocab + value}), true
	}

	if base, ok := c.prefixes[prefix]; ok {
		return c.memoize(value, Term{IRI: base + suffix}), true
	}

	if def, ok := c.terms[prefix]; ok && def.IRI != "" {
		return c.memoize(value, Term{IRI: def.IRI + suffix}), true
	}

	return Term{}, false
}

// memoize caches a definition under the term string and its resolved IRI.
// Existing entries are kept: a definition is pure given the term and the
// context state, so the first write is as good as any later one.
//
// Callers must hold c.mu.
func (c *Context) memoize(value string, def Term) Term {
	if _, ok := c.terms[value]; !ok {
		c.terms[value] = def
	}
	if def.IRI != value {
		if _, ok := c.terms[def.IRI]; !ok {
			c.terms[def.IRI] = def
		}
	}
	return c.terms[value]
}

// expandIRIs rewrites an IRI-reference value into node-reference form.
//
// A string becomes {"@id": iri} when it resolves; an array of strings maps
// each element the same way, keeping only the successes in their original
// order. The second return is false when the value resolves to nothing and
// the property should be dropped.
func expandIRIs(value any, c *Context) (any, bool) {
	switch v := value.(type) {
	case string:
		def, ok := c.ResolveTerm(v)
		if !ok {
			return nil, false
		}
		return map[string]any{KeywordID: def.IRI}, true
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if def, ok := c.ResolveTerm(s); ok {
				out = append(out, map[string]any{KeywordID: def.IRI})
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// expandTypeIRIs rewrites an @id/@type value into absolute-IRI form: a
// string resolves to an IRI string, an array maps each string element,
// keeping only the successes.
func expandTypeIRIs(value any, c *Context) (any, bool) {
	switch v := value.(type) {
	case string:
		def, ok := c.ResolveTerm(v)
		if !ok {
			return nil, false
		}
		return def.IRI, true
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if def, ok := c.ResolveTerm(s); ok {
				out = append(out, def.IRI)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
