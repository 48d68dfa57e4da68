package expanse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveTerm(t *testing.T) {
	p := NewProcessor()
	c := p.parseContext(decodeObject(t, `{
		"@vocab": "https://v.example/",
		"ex": "https://e.example/ns#",
		"thing": {"@id": "https://t.example/thing#"}
	}`), "")

	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{name: "absolute IRIs resolve to themselves", value: "https://other.example/x", want: "https://other.example/x", ok: true},
		{name: "bare terms use the vocabulary", value: "name", want: "https://v.example/name", ok: true},
		{name: "compact IRIs compose against a prefix alias", value: "ex:part", want: "https://e.example/ns#part", ok: true},
		{name: "compact IRIs compose against a known term", value: "thing:part", want: "https://t.example/thing#part", ok: true},
		{name: "unknown prefixes fail", value: "nope:part", want: "", ok: false},
		{name: "empty strings fail", value: "", want: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, ok := c.ResolveTerm(tc.value)
			if ok != tc.ok {
				t.Fatalf("ResolveTerm(%q) ok = %t, want %t", tc.value, ok, tc.ok)
			}
			if def.IRI != tc.want {
				t.Fatalf("ResolveTerm(%q).IRI = %q, want %q", tc.value, def.IRI, tc.want)
			}
		})
	}
}

func TestResolveTermWithoutVocab(t *testing.T) {
	c := newContext("")

	if _, ok := c.ResolveTerm("name"); ok {
		t.Fatal("ResolveTerm(name) succeeded, want failure without a vocabulary")
	}
}

func TestResolveTermMemoized(t *testing.T) {
	c := newContext("")
	c.Vocab = "https://v.example/"

	first, ok := c.ResolveTerm("name")
	if !ok {
		t.Fatal("ResolveTerm(name) failed")
	}

	size := len(c.terms)
	second, ok := c.ResolveTerm("name")
	if !ok {
		t.Fatal("ResolveTerm(name) failed on the second call")
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated resolution differs (-first +second):\n%s", diff)
	}
	if len(c.terms) != size {
		t.Fatalf("term table grew from %d to %d on a repeated resolution", size, len(c.terms))
	}

	// The resolved IRI is cached as a term of its own.
	if _, ok := c.terms["https://v.example/name"]; !ok {
		t.Error("resolution should also be cached under the expanded IRI")
	}
}

func TestExpandIRIs(t *testing.T) {
	c := newContext("")
	c.Vocab = "https://v.example/"

	got, ok := expandIRIs("name", c)
	if !ok {
		t.Fatal("expandIRIs(name) failed")
	}
	if diff := cmp.Diff(map[string]any{KeywordID: "https://v.example/name"}, got); diff != "" {
		t.Fatalf("expandIRIs mismatch (-want +got):\n%s", diff)
	}

	// Arrays keep resolvable string entries in order and drop the rest.
	got, ok = expandIRIs([]any{"a", 42.0, "b"}, c)
	if !ok {
		t.Fatal("expandIRIs(array) failed")
	}
	want := []any{
		map[string]any{KeywordID: "https://v.example/a"},
		map[string]any{KeywordID: "https://v.example/b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expandIRIs mismatch (-want +got):\n%s", diff)
	}

	if _, ok := expandIRIs(42.0, c); ok {
		t.Error("expandIRIs(number) succeeded, want failure")
	}
	if _, ok := expandIRIs("no-vocab-term", newContext("")); ok {
		t.Error("expandIRIs without a vocabulary succeeded, want failure")
	}
}

func TestExpandTypeIRIs(t *testing.T) {
	c := newContext("")
	c.Vocab = "https://v.example/"

	got, ok := expandTypeIRIs("Person", c)
	if !ok || got != "https://v.example/Person" {
		t.Fatalf("expandTypeIRIs(Person) = %v, %t", got, ok)
	}

	got, ok = expandTypeIRIs([]any{"Person", 1.0, "Agent"}, c)
	if !ok {
		t.Fatal("expandTypeIRIs(array) failed")
	}
	want := []any{"https://v.example/Person", "https://v.example/Agent"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expandTypeIRIs mismatch (-want +got):\n%s", diff)
	}

	if _, ok := expandTypeIRIs(map[string]any{}, c); ok {
		t.Error("expandTypeIRIs(object) succeeded, want failure")
	}
}

func TestContextTermsIterator(t *testing.T) {
	c := newContext("")
	c.Vocab = "https://v.example/"
	c.ResolveTerm("name")

	seen := map[string]Term{}
	for k, def := range c.Terms() {
		seen[k] = def
	}

	if _, ok := seen["name"]; !ok {
		t.Error("Terms() should yield the resolved term")
	}
	if _, ok := seen["https://v.example/name"]; !ok {
		t.Error("Terms() should yield the IRI-keyed entry")
	}

	// Resolution while iterating must not block against the iterator.
	for k := range c.Terms() {
		if _, ok := c.ResolveTerm(k); !ok {
			t.Errorf("ResolveTerm(%q) failed during iteration", k)
		}
	}
}
