package expanse

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// frame is the traversal state for one object or array being expanded.
//
// Frames form a singly-rooted stack through their parent pointers: one is
// pushed when traversal descends into a compound child and popped once the
// child has been folded into its parent.
type frame struct {
	value any
	seq   bool

	// keys snapshots the mapping's keys on first visit, so folds and
	// deletions during traversal don't disturb iteration.
	keys []string
	next int

	// term is the key under which this value sits in its parent; iri is the
	// term's resolved form, used to rename the key during the fold.
	term string
	iri  string

	// container wraps the finished value as {container: value} when set. It
	// is only ever inherited through descent.
	container string

	// slot is this value's index within a sequence parent.
	slot int

	parent  *frame
	ctx     *Context
	visited bool
}

func (f *frame) size() int {
	if f.seq {
		return len(f.value.([]any))
	}
	return len(f.keys)
}

// Expand transforms a decoded JSON document into expanded form.
//
// The document is rewritten in place and returned. Only objects and arrays
// are valid top-level documents; anything else yields nil with a warning.
// Remote contexts encountered along the way are resolved through the
// processor's store, or a fresh non-caching one per call if none is set.
func (p *Processor) Expand(ctx context.Context, doc any) (any, error) {
	store := p.store
	if store == nil {
		store = NewStore()
	}

	switch KindOf(doc) {
	case KindObject, KindArray:
	default:
		p.logger.Warn("top-level JSON-LD must be an object or an array",
			slog.String("kind", KindOf(doc).String()))
		return nil, nil
	}

	root := &frame{value: doc, seq: KindOf(doc) == KindArray}
	current := root

	for {
		if !current.visited {
			if err := p.enterNode(ctx, current, store); err != nil {
				return nil, err
			}
		}

		if current.next >= current.size() {
			parent := p.finishNode(current)
			if parent == nil {
				return root.value, nil
			}
			current = parent
			continue
		}

		if current.seq {
			current = p.stepSequence(current)
			continue
		}

		current = p.stepMapping(current)
	}
}

// enterNode establishes the effective context for a node on first visit.
//
// A mapping carrying its own @context resolves it here, the only point the
// engine performs network I/O, and the key is removed from the output.
// Everything else inherits the parent's context unchanged.
func (p *Processor) enterNode(ctx context.Context, f *frame, store *Store) error {
	f.visited = true

	if obj, ok := f.value.(map[string]any); ok {
		if _, ok := obj[KeywordContext]; ok {
			c, err := p.Resolve(ctx, NewSource("", f.value), store)
			if err != nil {
				return err
			}
			if c != nil {
				f.ctx = c
			}
			delete(obj, KeywordContext)
		}
		f.keys = slices.Sorted(maps.Keys(obj))
	}

	if f.ctx == nil {
		if f.parent != nil {
			f.ctx = f.parent.ctx
		} else {
			f.ctx = newContext("")
		}
	}

	return nil
}

// finishNode completes a fully-visited node: rewrites its @id/@type values,
// applies the container wrap, folds it into its parent under the resolved
// key and pops back to the parent. It returns nil for the root.
func (p *Processor) finishNode(f *frame) *frame {
	finished := f.value

	if obj, ok := finished.(map[string]any); ok {
		p.rewriteKeyword(obj, f.ctx.Alias(KeywordID), f.ctx)
		p.rewriteKeyword(obj, f.ctx.Alias(KeywordType), f.ctx)
	}

	if f.container != "" {
		finished = map[string]any{f.container: finished}
	}

	parent := f.parent
	if parent == nil {
		f.value = finished
		return nil
	}

	if parent.seq {
		parent.value.([]any)[f.slot] = finished
		return parent
	}

	pobj := parent.value.(map[string]any)
	if f.iri != "" && f.iri != f.term {
		delete(pobj, f.term)
		foldInto(pobj, f.iri, finished)
	} else {
		pobj[f.term] = finished
	}

	return parent
}

// rewriteKeyword replaces the value under an @id/@type key, or its alias,
// with its absolute-IRI form. Values that resolve to nothing are dropped.
func (p *Processor) rewriteKeyword(obj map[string]any, key string, c *Context) {
	value, ok := obj[key]
	if !ok || value == nil {
		return
	}

	exp, ok := expandTypeIRIs(value, c)
	if !ok {
		p.logger.Warn("dropping unresolvable keyword value",
			slog.String("key", key),
			slog.Any("value", value))
		delete(obj, key)
		return
	}

	obj[key] = exp
}

// stepSequence advances past the next element of a sequence node,
// descending into it when it's a compound value. Scalars stay as-is: array
// elements have no key to resolve.
func (p *Processor) stepSequence(f *frame) *frame {
	arr := f.value.([]any)
	i := f.next
	f.next++

	child := arr[i]
	if isScalar(child) {
		return f
	}

	return &frame{
		value:     child,
		seq:       KindOf(child) == KindArray,
		slot:      i,
		container: f.container,
		parent:    f,
		ctx:       f.ctx,
	}
}

// stepMapping processes the next entry of a mapping node: resolves the key
// to its IRI, folds terminal values directly, and descends into compound
// ones.
func (p *Processor) stepMapping(f *frame) *frame {
	obj := f.value.(map[string]any)
	key := f.keys[f.next]
	f.next++

	// Keywords and their aliases are never re-expanded as terms; @id and
	// @type are rewritten when the node completes.
	if strings.HasPrefix(key, "@") || f.ctx.isKeywordAlias(key) {
		return f
	}

	value, ok := obj[key]
	if !ok {
		return f
	}

	def, ok := f.ctx.ResolveTerm(key)
	if !ok {
		p.logger.Warn("dropping entry with unresolvable term",
			slog.String("term", key))
		delete(obj, key)
		return f
	}

	// An @id-typed term's value is an IRI reference regardless of its
	// literal shape: expand it and treat it as terminal. Null falls through
	// to the plain terminal fold below.
	if def.Type == KeywordID && value != nil {
		exp, expanded := expandIRIs(value, f.ctx)
		delete(obj, key)
		if expanded {
			foldInto(obj, def.IRI, exp)
		} else {
			p.logger.Warn("dropping unresolvable IRI reference",
				slog.String("term", key),
				slog.Any("value", value))
		}
		return f
	}

	switch KindOf(value) {
	case KindArray, KindObject:
		return &frame{
			value:     value,
			seq:       KindOf(value) == KindArray,
			term:      key,
			iri:       def.IRI,
			container: f.container,
			parent:    f,
			ctx:       f.ctx,
		}
	default:
		if key != def.IRI {
			delete(obj, key)
			foldInto(obj, def.IRI, value)
		}
		return f
	}
}

// foldInto assigns v under key, promoting to an array when the key already
// holds a value: an existing array gets appended to, a single prior value
// becomes a two-element array.
func foldInto(obj map[string]any, key string, v any) {
	prev, ok := obj[key]
	if !ok {
		obj[key] = v
		return
	}

	if arr, ok := prev.([]any); ok {
		obj[key] = append(arr, v)
		return
	}

	obj[key] = []any{prev, v}
}
