// Package config resolves write-good settings.
//
// Settings live under the "write-good" section and are layered, lowest
// priority first: built-in defaults, a TOML config file, WRITEGOOD_*
// environment variables, and settings pushed by the editor at runtime.
// Consumers read values through Reader on every decision, so a change to any
// layer takes effect for the next event.
package config

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Section is the configuration section holding all write-good settings.
const Section = "write-good"

// Option names within Section.
const (
	KeyLanguages       = "languages"
	KeyOnlyLintOnSave  = "only-lint-on-save"
	KeyDebounce        = "debounce-time-in-ms"
	KeyWriteGoodConfig = "write-good-config"
)

// Wildcard in the languages setting allows every language.
const Wildcard = "*"

// Reader reads a single option of a configuration section. It returns nil
// when the option is not set.
type Reader interface {
	Get(section, option string) any
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(section, option string) any

// Get calls f.
func (f ReaderFunc) Get(section, option string) any {
	return f(section, option)
}

// Config mirrors the configuration file layout. It only provides defaults;
// runtime reads go through Reader so malformed values degrade gracefully.
type Config struct {
	WriteGood WriteGoodSection `koanf:"write-good"`
}

// WriteGoodSection holds the options of Section.
type WriteGoodSection struct {
	Languages        []string       `koanf:"languages"`
	OnlyLintOnSave   bool           `koanf:"only-lint-on-save"`
	DebounceTimeInMS int            `koanf:"debounce-time-in-ms"`
	WriteGoodConfig  map[string]any `koanf:"write-good-config"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WriteGood: WriteGoodSection{
			Languages:        []string{"markdown", "plaintext"},
			OnlyLintOnSave:   false,
			DebounceTimeInMS: 0,
			WriteGoodConfig:  map[string]any{},
		},
	}
}

// Languages is the resolved language allow-list.
type Languages struct {
	Any bool     `json:"any,omitempty"`
	IDs []string `json:"ids,omitempty"`
}

// Allows reports whether documents of languageID should be linted.
func (l Languages) Allows(languageID string) bool {
	if l.Any {
		return true
	}
	for _, id := range l.IDs {
		if id == languageID {
			return true
		}
	}
	return false
}

// Settings is a snapshot of Section taken for a single decision.
type Settings struct {
	Languages      Languages
	OnlyLintOnSave bool
	Debounce       time.Duration
	Options        map[string]any
}

// Read takes a snapshot of the write-good settings. It never fails:
// missing or malformed values fall back to their zero behavior, which is an
// empty allow-list, no save-only mode, no debounce and no analyzer options.
func Read(r Reader) Settings {
	if r == nil {
		return Settings{Options: map[string]any{}}
	}
	return Settings{
		Languages:      parseLanguages(r.Get(Section, KeyLanguages)),
		OnlyLintOnSave: parseBool(r.Get(Section, KeyOnlyLintOnSave)),
		Debounce:       time.Duration(parseMillis(r.Get(Section, KeyDebounce))) * time.Millisecond,
		Options:        parseOptions(r.Get(Section, KeyWriteGoodConfig)),
	}
}

func parseLanguages(v any) Languages {
	var ids []string
	switch val := v.(type) {
	case string:
		ids = splitList(val)
	case []string:
		ids = val
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
	default:
		return Languages{}
	}

	out := Languages{IDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		if id == Wildcard {
			return Languages{Any: true}
		}
		out.IDs = append(out.IDs, id)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return err == nil && b
	default:
		return false
	}
}

func parseMillis(v any) int64 {
	var n int64
	switch val := v.(type) {
	case int:
		n = int64(val)
	case int64:
		n = val
	case int32:
		n = int64(val)
	case uint32:
		n = int64(val)
	case float64:
		if math.IsNaN(val) {
			return 0
		}
		n = int64(math.Min(val, math.MaxInt32))
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	return max(0, min(n, math.MaxInt32))
}

func parseOptions(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = val
	}
	return out
}
