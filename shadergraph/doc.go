// Package shadergraph turns parsed .eray syntax into a validated, typed
// shader graph.
//
// Resolution consumes an eraylang.File and a Registry of node type
// signatures, resolving every symbolic reference across three namespaces:
// the reserved meta tokens (@IN/@OUT, the file's own signature), node
// instance names, and import aliases. Validation then enforces the
// whole-graph invariants a renderer depends on: exactly one link into every
// input socket, and no cycles among node instances.
//
// Semantic faults do not abort the pass; they accumulate as Diagnostics so
// one run reports every independent problem. Build ties the stages together:
//
//	reg := shadergraph.NewRegistry(loader)
//	graph, err := shadergraph.Build(src, reg)
//
// A graph returned by Build is immutable and safe to share; evaluation of
// the graph is the renderer's concern, not this package's.
package shadergraph
