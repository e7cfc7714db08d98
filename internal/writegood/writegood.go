// Package writegood is a naive linter for English prose. It flags passive
// voice, lexical illusions, weasel words, adverbs, wordy phrases, cliches and
// a few sentence openers, one line of text at a time.
//
// Positions are reported in UTF-16 code units so they can be handed to
// editors without conversion.
package writegood

import (
	"fmt"
	"sort"
	"strings"
)

// Suggestion is a single finding within the analyzed text.
type Suggestion struct {
	// Index is the start of the flagged span.
	Index int `json:"index"`
	// Offset is the length of the flagged span.
	Offset int `json:"offset"`
	// Reason is the human readable explanation, e.g. `"is licensed" may be passive voice`.
	Reason string `json:"reason"`
}

// Options toggles checks by name and carries the optional whitelist.
// Keys not naming a check are ignored.
type Options map[string]any

// OptionError reports a malformed option value.
type OptionError struct {
	Option string
	Value  any
}

func (e *OptionError) Error() string {
	if e.Option == optWhitelist {
		return fmt.Sprintf("write-good: option %q must be a list of strings, got %T", e.Option, e.Value)
	}
	return fmt.Sprintf("write-good: option %q must be a boolean, got %T", e.Option, e.Value)
}

const optWhitelist = "whitelist"

type match struct {
	index, offset int
	text          string
	explanation   string
}

// Suggest analyzes text and returns its findings ordered by position.
// Two checks flagging the same span produce one suggestion whose reason
// joins both explanations.
func Suggest(text string, opts Options) ([]Suggestion, error) {
	enabled, whitelist, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	idx := newUnitIndex(text)
	var found []match
	for _, c := range checks {
		if !enabled[c.name] {
			continue
		}
		for _, span := range c.find(text) {
			s := text[span[0]:span[1]]
			if _, skip := whitelist[s]; skip {
				continue
			}
			start := idx.at(span[0])
			found = append(found, match{
				index:       start,
				offset:      idx.at(span[1]) - start,
				text:        s,
				explanation: c.explanation,
			})
		}
	}
	return merge(found), nil
}

func merge(found []match) []Suggestion {
	if len(found) == 0 {
		return nil
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].index < found[j].index })

	type key struct{ index, offset int }
	out := make([]Suggestion, 0, len(found))
	seen := make(map[key]int, len(found))
	for _, m := range found {
		k := key{m.index, m.offset}
		if at, ok := seen[k]; ok {
			out[at].Reason += " and " + m.explanation
			continue
		}
		seen[k] = len(out)
		out = append(out, Suggestion{
			Index:  m.index,
			Offset: m.offset,
			Reason: fmt.Sprintf("%q %s", m.text, m.explanation),
		})
	}
	return out
}

func resolve(opts Options) (map[string]bool, map[string]struct{}, error) {
	enabled := make(map[string]bool, len(checks))
	for _, c := range checks {
		enabled[c.name] = c.enabledByDefault
	}
	var whitelist map[string]struct{}

	for raw, v := range opts {
		if strings.EqualFold(raw, optWhitelist) {
			list, err := stringList(v)
			if err != nil {
				return nil, nil, &OptionError{Option: optWhitelist, Value: v}
			}
			whitelist = make(map[string]struct{}, len(list))
			for _, s := range list {
				whitelist[s] = struct{}{}
			}
			continue
		}
		name, ok := CanonicalOption(raw)
		if !ok {
			continue
		}
		on, ok := v.(bool)
		if !ok {
			return nil, nil, &OptionError{Option: name, Value: v}
		}
		enabled[name] = on
	}
	return enabled, whitelist, nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

// CanonicalOption maps an option name in any letter case to the check it
// toggles, so "toowordy" and "TOOWORDY" both resolve to "tooWordy".
func CanonicalOption(name string) (string, bool) {
	for _, c := range checks {
		if strings.EqualFold(c.name, name) {
			return c.name, true
		}
	}
	return "", false
}

// CheckInfo describes one check.
type CheckInfo struct {
	Name             string `json:"name"`
	Explanation      string `json:"explanation"`
	EnabledByDefault bool   `json:"enabledByDefault"`
}

// Checks lists the checks in evaluation order.
func Checks() []CheckInfo {
	out := make([]CheckInfo, 0, len(checks))
	for _, c := range checks {
		out = append(out, CheckInfo{Name: c.name, Explanation: c.explanation, EnabledByDefault: c.enabledByDefault})
	}
	return out
}
