// Package pipeline composes the lex/parse/meta-process/interpret stages
// into a single run, mirroring the teacher's habit of exposing each
// compiler stage as a small composable unit rather than one monolithic
// driver function. Ctx threads the state every stage needs (the decl
// registry, the resolver, the output writer, debug toggles) without each
// Step signature growing another parameter every time a stage needs more
// context.
package pipeline

import (
	"io"

	"github.com/brendancron/cx/internal/decl"
	"github.com/brendancron/cx/internal/resolver"
)

// Ctx is the shared context threaded through every pipeline stage.
//
// MetaOut and RuntimeOut are kept independent per SPEC_FULL.md §6's
// supplemented writer split: a `print` inside a `meta` block writes to
// MetaOut, a runtime `print` writes to RuntimeOut. They default to the
// same io.Writer (spec.md §6: "usually equal") but callers — the CLI's
// `--debug` trace in particular — may point them at different sinks.
type Ctx struct {
	Decls     *decl.Registry
	Resolver  resolver.Resolver
	MetaOut   io.Writer
	RuntimeOut io.Writer
	RootDir   string
	OutDir    string
	Debug     bool

	// lastSource stashes the source text RunDebug was invoked with, so the
	// Lex tap can dump source_code.cx alongside tokens.txt without
	// threading the raw string through every stage's signature.
	lastSource string
}

// Step is the function shape every pipeline stage implements.
type Step[I, O any] func(I, *Ctx) (O, error)

// Pipeline wraps a single Step so it can be composed with Then/Tap.
type Pipeline[I, O any] struct {
	step Step[I, O]
}

// NewCtx builds a Ctx with MetaOut and RuntimeOut both pointed at out, the
// common case (spec.md §6).
func NewCtx(decls *decl.Registry, res resolver.Resolver, out io.Writer, rootDir string) *Ctx {
	return &Ctx{Decls: decls, Resolver: res, MetaOut: out, RuntimeOut: out, RootDir: rootDir}
}

// New wraps a bare Step as a Pipeline.
func New[I, O any](step Step[I, O]) Pipeline[I, O] {
	return Pipeline[I, O]{step: step}
}

// Run executes the pipeline.
func (p Pipeline[I, O]) Run(in I, ctx *Ctx) (O, error) {
	return p.step(in, ctx)
}

// Then composes p with next, feeding p's output into next's input. Go
// methods can't carry their own type parameters, so composition is a
// free function rather than a (p Pipeline[I,O]) Then(...) method.
func Then[I, M, O any](p Pipeline[I, M], next Pipeline[M, O]) Pipeline[I, O] {
	return New(func(in I, ctx *Ctx) (O, error) {
		mid, err := p.Run(in, ctx)
		if err != nil {
			var zero O
			return zero, err
		}
		return next.Run(mid, ctx)
	})
}

// Tap runs a side-effecting function on a stage's output, but only when
// ctx.Debug is set, and without altering the value flowing downstream.
// This is how debug taps serialize each intermediate representation
// without the non-debug path paying for it.
func Tap[I, O any](p Pipeline[I, O], tap func(O, *Ctx) error) Pipeline[I, O] {
	return New(func(in I, ctx *Ctx) (O, error) {
		out, err := p.Run(in, ctx)
		if err != nil {
			return out, err
		}
		if ctx.Debug {
			if tapErr := tap(out, ctx); tapErr != nil {
				return out, tapErr
			}
		}
		return out, nil
	})
}
