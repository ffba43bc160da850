// Package decl implements the scoped struct-declaration registry consulted
// by typeof and by struct-literal validation (spec.md §3).
package decl

import (
	"strings"

	"github.com/brendancron/cx/internal/ast"
)

// FieldDef is one `name: type` entry of a registered struct.
type FieldDef struct {
	Name string
	Type string
}

// StructDef is the registered shape of a struct type.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

// String renders the pretty-printed struct definition typeof(Ident)
// produces (spec.md §4.3.D): "struct { field: type; ... }".
func (d StructDef) String() string {
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = f.Name + ": " + f.Type
	}
	return "struct { " + strings.Join(parts, "; ") + " }"
}

// Registry is a process-wide, scoped map of struct name to definition.
// Nested registries are supported via Push, which returns a child registry
// whose lookups fall back to its parent, so that meta-processing can
// give struct declarations block-local visibility if the grammar ever needs
// it; the current grammar only ever defines structs at the top level, but
// the scoping machinery matches the shared Environment/DeclRegistry model
// spec.md §3 describes.
type Registry struct {
	structs map[string]StructDef
	parent  *Registry
}

// NewRegistry creates a root registry with no parent scope.
func NewRegistry() *Registry {
	return &Registry{structs: make(map[string]StructDef)}
}

// Push creates a child registry scoped to r.
func (r *Registry) Push() *Registry {
	return &Registry{structs: make(map[string]StructDef), parent: r}
}

// Define registers a struct type in the current scope.
func (r *Registry) Define(name string, def StructDef) {
	r.structs[name] = def
}

// Lookup searches the current scope, then parent scopes, for name.
func (r *Registry) Lookup(name string) (StructDef, bool) {
	if def, ok := r.structs[name]; ok {
		return def, true
	}
	if r.parent != nil {
		return r.parent.Lookup(name)
	}
	return StructDef{}, false
}

// FromDecl converts a parsed ast.StructDecl into a StructDef.
func FromDecl(d *ast.StructDecl) StructDef {
	fields := make([]FieldDef, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = FieldDef{Name: f.Name, Type: f.Type}
	}
	return StructDef{Name: d.Name, Fields: fields}
}
