// Package value implements the runtime value system shared by the
// meta-processor and the interpreter (SPEC_FULL.md §4.3), grounded on the
// teacher's internal/interp/runtime value interfaces and primitives but
// reduced to the cx type lattice: Int, String, Bool, List, Struct,
// Function, Unit. List and Struct are Go-pointer-backed shared mutable
// cells — see SPEC_FULL.md §4.3 for why this replaces the
// arena-with-stable-indices design note in spec.md §9.
package value

import (
	"strconv"
	"strings"

	"github.com/brendancron/cx/internal/ast"
)

// Value is implemented by every runtime value kind.
type Value interface {
	// Type returns the type tag used in diagnostics ("Int", "String", ...).
	Type() string
	// Display renders the value the way print() does (spec.md §4.4).
	Display() string
}

// Int is a 64-bit signed integer value.
type Int struct{ Value int64 }

func (i Int) Type() string    { return "Int" }
func (i Int) Display() string { return strconv.FormatInt(i.Value, 10) }

// String is an immutable text value.
type String struct{ Value string }

func (s String) Type() string    { return "String" }
func (s String) Display() string { return s.Value }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (b Bool) Type() string { return "Bool" }
func (b Bool) Display() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Unit is the sole value of the unit type, produced by statements and bare
// `return;`.
type Unit struct{}

func (u Unit) Type() string    { return "Unit" }
func (u Unit) Display() string { return "" }

// List is a shared mutable sequence. Two Value variables can alias the same
// List and observe each other's appends/index-writes, matching spec.md §5's
// shared-ownership-with-interior-mutability model.
type List struct {
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (l *List) Type() string { return "List" }

func (l *List) Display() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Struct is a shared mutable named field map. Fields preserve insertion
// order for display (the chosen answer to spec.md §9's field-order open
// question).
type Struct struct {
	TypeName string
	names    []string
	fields   map[string]Value
}

func NewStruct(typeName string) *Struct {
	return &Struct{TypeName: typeName, fields: make(map[string]Value)}
}

// Set assigns a field, recording first-insertion order.
func (s *Struct) Set(name string, v Value) {
	if _, exists := s.fields[name]; !exists {
		s.names = append(s.names, name)
	}
	s.fields[name] = v
}

// Get looks up a field by name.
func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

func (s *Struct) Type() string { return "Struct" }

func (s *Struct) Display() string {
	parts := make([]string, len(s.names))
	for i, n := range s.names {
		parts[i] = n + ": " + s.fields[n].Display()
	}
	return s.TypeName + " {" + strings.Join(parts, ", ") + "}"
}

// Function is a callable value. Body is always an Expanded *ast.Block:
// meta-world functions and runtime-world functions are built from
// different lowering passes but share this representation (spec.md §4.3
// invariant: the two populations never mix inside one Function).
type Function struct {
	Name    string
	Params  []ast.Param
	Body    *ast.Block
	Closure *Environment
}

func (f *Function) Type() string    { return "Function" }
func (f *Function) Display() string { return "fn " + f.Name }
