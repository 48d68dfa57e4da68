// Package expanse expands compact, context-relative JSON documents into
// JSON-LD expanded form: every property key and every @id/@type value is
// resolved to an absolute IRI against the active context.
//
// Use [Processor.Expand] to expand a decoded JSON document. The document is
// rewritten in place; clone it first if you need the compact form afterwards.
// Embedded contexts are picked up as they are encountered and inherited by
// nested objects that don't declare their own.
//
// Remote contexts are retrieved through a [Store]. By default a fresh store
// without caching is created for every call; construct one with [NewStore]
// and pass it via [WithStore] to share resolved contexts across calls. The
// store takes its fetch capability as an explicit [Fetcher]; provide your own
// to avoid network dependencies when processing documents.
//
// # Output shape
//
// The expanded form produced here is deliberately less verbose than the one
// described by the JSON-LD 1.1 specification: scalar values are not wrapped
// in @value objects or single-element arrays unless the input already used
// that shape. Framing, compaction, @graph, @reverse and language maps are not
// supported.
//
// # Diagnostics
//
// Malformed context entries, unresolvable terms and failed remote fetches
// are not errors: the offending value is dropped and a warning is emitted on
// the configured logger. The one hard error during resolution is a @context
// list containing something other than strings and objects.
package expanse
