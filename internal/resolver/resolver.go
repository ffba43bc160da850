// Package resolver implements the embed/import external-text abstraction
// (spec.md §6), grounded on the teacher's pkg/platform Platform/FileSystem
// split — here collapsed to a single interface since cx only ever reads
// plain text, never a wasm/native filesystem split.
package resolver

import (
	"os"
	"path/filepath"
)

// Resolver abstracts reading external text referenced from cx source:
// embed("path") expressions and import "mod" statements.
type Resolver interface {
	// ReadFile reads the contents of relPath resolved against currDir. The
	// second return is false if the file could not be read.
	ReadFile(currDir, relPath string) (string, bool)
	// ReadMod reads a module's source by name, resolved against currDir
	// with the cx source extension appended. The second return is false
	// if the module could not be found.
	ReadMod(currDir, modName string) (string, bool)
}

// SourceExt is the file extension ReadMod appends to a bare module name.
const SourceExt = ".cx"

// FileResolver is the default Resolver: it joins paths on the local
// filesystem and treats any I/O failure as "not found".
type FileResolver struct{}

// NewFileResolver constructs the default filesystem-backed Resolver.
func NewFileResolver() *FileResolver { return &FileResolver{} }

func (FileResolver) ReadFile(currDir, relPath string) (string, bool) {
	path := relPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(currDir, relPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (r FileResolver) ReadMod(currDir, modName string) (string, bool) {
	return r.ReadFile(currDir, modName+SourceExt)
}
