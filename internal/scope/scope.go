// Package scope implements the persistent name→Value environment.
//
// A Scope is an immutable value: Bind and WithContext return new
// scopes sharing all unmodified structure with the receiver, so any
// scope captured earlier stays valid and unaffected. The context
// string is a diagnostic label for error messages only.
package scope

import (
	"math"
	"sort"
	"strings"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

type Scope struct {
	context  string
	bindings *trieMap
}

// defaultScope is built once at startup and never mutated; clear_scope
// hands out the same seeded value for the rest of the process.
var defaultScope = Empty(config.MainContext).
	Bind(config.MinIntName, &value.Number{Value: math.MinInt64}).
	Bind(config.MaxIntName, &value.Number{Value: math.MaxInt64})

// Empty returns a scope with no bindings under the given context.
func Empty(context string) *Scope {
	return &Scope{context: context, bindings: emptyTrie}
}

// Default returns the seeded session scope (MIN_INT, MAX_INT bound
// under the main context).
func Default() *Scope {
	return defaultScope
}

// Context returns the diagnostic label.
func (s *Scope) Context() string {
	return s.context
}

// WithContext returns a scope with the same bindings under a new
// diagnostic label.
func (s *Scope) WithContext(context string) *Scope {
	return &Scope{context: context, bindings: s.bindings}
}

// Bind returns a new scope with name bound to v. The receiver is
// unchanged; the most recent bind for a name shadows earlier ones.
func (s *Scope) Bind(name string, v value.Value) *Scope {
	return &Scope{context: s.context, bindings: s.bindings.Put(name, v)}
}

// Get looks up the current binding for name.
func (s *Scope) Get(name string) (value.Value, bool) {
	return s.bindings.Get(name)
}

// Len returns the number of live bindings.
func (s *Scope) Len() int {
	return s.bindings.Len()
}

// String renders the bindings as "{ name: value, ... }" with names in
// sorted order, for print_scope and debugging.
func (s *Scope) String() string {
	items := s.bindings.Items()
	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.key + ": " + item.value.Inspect()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
