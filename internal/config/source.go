package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/tinovyatkin/writegood/internal/writegood"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "WRITEGOOD_"

// FileNames are the config file names searched for, in order, in each
// directory from the start directory up to the file system root.
var FileNames = []string{".writegood.toml", "writegood.toml"}

// LoadOptions controls how a Source is assembled.
type LoadOptions struct {
	// File is an explicit config file. When empty, FileNames are discovered
	// upward from Dir.
	File string
	// Dir is the discovery start directory, the working directory when empty.
	Dir string
	// Environ supplies environment variables, os.Environ when nil.
	Environ func() []string
	// Logger receives validation warnings.
	Logger logrus.FieldLogger
}

// Source is the layered configuration. It is safe for concurrent use.
type Source struct {
	opts LoadOptions
	log  logrus.FieldLogger
	path string

	mu     sync.Mutex
	base   *koanf.Koanf
	client map[string]any

	current atomic.Pointer[koanf.Koanf]
}

// Load reads defaults, the config file and the environment.
func Load(opts LoadOptions) (*Source, error) {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		opts.Logger = l
	}
	s := &Source{opts: opts, log: opts.Logger}

	s.path = opts.File
	if s.path == "" {
		dir := opts.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
			dir = wd
		}
		s.path = Discover(dir)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Discover returns the first config file found walking up from dir, or ""
// when there is none.
func Discover(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Path returns the config file in use, "" when none was found.
func (s *Source) Path() string {
	return s.path
}

// Reload re-reads the file and environment layers. Client settings are kept.
func (s *Source) Reload() error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	if s.path != "" {
		if err := k.Load(file.Provider(s.path), toml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", s.path, err)
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   s.opts.Environ,
	}), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = k
	return s.rebuild()
}

// SetClientSettings replaces the settings pushed by the editor. It accepts
// either a settings tree holding a "write-good" object or the bare section.
// It reports whether v carried any write-good settings.
func (s *Source) SetClientSettings(v any) (bool, error) {
	m, ok := normalizeClient(v)
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = m
	return true, s.rebuild()
}

// Get implements Reader.
func (s *Source) Get(section, option string) any {
	return s.current.Load().Get(section + "." + option)
}

// WatchFile calls onChange after the config file changed and was reloaded.
// It is a no-op returning a nil stop function when no file is in use.
func (s *Source) WatchFile(onChange func(error)) (func() error, error) {
	if s.path == "" {
		return func() error { return nil }, nil
	}
	fp := file.Provider(s.path)
	err := fp.Watch(func(_ any, err error) {
		if err == nil {
			err = s.Reload()
		}
		onChange(err)
	})
	if err != nil {
		return nil, fmt.Errorf("watch config file: %w", err)
	}
	return fp.Unwatch, nil
}

// rebuild merges the client layer over the base. Callers hold s.mu.
func (s *Source) rebuild() error {
	k := s.base.Copy()
	if s.client != nil {
		if err := k.Load(confmap.Provider(s.client, ""), nil); err != nil {
			return fmt.Errorf("load client settings: %w", err)
		}
	}
	if err := Validate(k.Raw()); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			for _, problem := range verr.Problems {
				s.log.WithField("problem", problem).Warn("config: invalid write-good settings")
			}
		} else {
			s.log.WithError(err).Warn("config: could not validate write-good settings")
		}
	}
	s.current.Store(k)
	return nil
}

func normalizeClient(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	if section, ok := m[Section].(map[string]any); ok {
		return map[string]any{Section: section}, true
	}
	for _, key := range []string{KeyLanguages, KeyOnlyLintOnSave, KeyDebounce, KeyWriteGoodConfig} {
		if _, ok := m[key]; ok {
			return map[string]any{Section: m}, true
		}
	}
	return nil, false
}

// transformEnv maps WRITEGOOD_* variables onto configuration keys:
//
//	WRITEGOOD_LANGUAGES=markdown,plaintext  -> write-good.languages
//	WRITEGOOD_ONLY_LINT_ON_SAVE=true        -> write-good.only-lint-on-save
//	WRITEGOOD_DEBOUNCE_TIME_IN_MS=500       -> write-good.debounce-time-in-ms
//	WRITEGOOD_CONFIG_PASSIVE=false          -> write-good.write-good-config.passive
//	WRITEGOOD_CONFIG_WHITELIST=a,b          -> write-good.write-good-config.whitelist
func transformEnv(k, v string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	switch name {
	case "languages":
		if strings.TrimSpace(v) == Wildcard {
			return Section + "." + KeyLanguages, Wildcard
		}
		return Section + "." + KeyLanguages, splitList(v)
	case "only_lint_on_save":
		return Section + "." + KeyOnlyLintOnSave, envBool(v)
	case "debounce_time_in_ms":
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return Section + "." + KeyDebounce, n
		}
		return Section + "." + KeyDebounce, v
	}

	option, ok := strings.CutPrefix(name, "config_")
	if !ok {
		return "", nil
	}
	prefix := Section + "." + KeyWriteGoodConfig + "."
	if option == "whitelist" {
		return prefix + option, splitList(v)
	}
	if canonical, ok := writegood.CanonicalOption(strings.ReplaceAll(option, "_", "")); ok {
		return prefix + canonical, envBool(v)
	}
	return "", nil
}

func envBool(v string) any {
	if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
		return b
	}
	return v
}
