// Package document defines the identity and snapshot of a lintable text
// document. Every host derives identities through this package so that the
// same file always maps to the same annotation entry.
package document

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"go.lsp.dev/uri"
)

// ID is the canonical identity of a document.
//
// File documents are identified by their absolute file URI with the path
// percent-encoded exactly once. Documents with other schemes (for example
// "untitled:Untitled-1") keep their URI verbatim.
type ID string

// Document is a snapshot of a document taken when a lifecycle event fired.
type Document struct {
	ID         ID
	LanguageID string
	Text       string
}

// FromPath returns the identity of a file on disk.
func FromPath(path string) ID {
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return ID(uri.File(path))
}

// FromURI returns the identity of a document addressed by URI.
// File URIs are normalized through their decoded path so that differently
// escaped spellings of the same file produce one identity.
func FromURI(raw string) ID {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != uri.FileScheme {
		return ID(raw)
	}
	p := u.Path
	if p == "" {
		// file:relative or opaque forms carry no usable path.
		return ID(raw)
	}
	// file:///C:/dir parses to /C:/dir.
	if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return ID(uri.File(filepath.FromSlash(p)))
}

// Path returns the local file system path of a file identity and reports
// whether the identity refers to a file.
func (id ID) Path() (string, bool) {
	u, err := url.Parse(string(id))
	if err != nil || u.Scheme != uri.FileScheme || u.Path == "" {
		return "", false
	}
	p := u.Path
	if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), true
}

// Display returns a short human readable form of the identity, the file
// path for file documents and the raw identity otherwise.
func (id ID) Display() string {
	if p, ok := id.Path(); ok {
		return p
	}
	return strings.TrimSpace(string(id))
}

// URI returns the identity as an LSP document URI.
func (id ID) URI() uri.URI {
	return uri.URI(id)
}
