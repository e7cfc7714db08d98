package watcher

import (
	"path/filepath"
	"strings"
)

var extLanguages = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".mdx":      "mdx",
	".txt":      "plaintext",
	".text":     "plaintext",
	".rst":      "restructuredtext",
	".adoc":     "asciidoc",
}

// LanguageID derives an editor language identifier from a file extension.
// Unknown extensions map to the extension without its dot.
func LanguageID(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	if ext == "" {
		return "plaintext"
	}
	return ext[1:]
}
