package writegood

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// finder returns byte spans [start, end) of flagged text.
type finder func(text string) [][2]int

type check struct {
	name             string
	explanation      string
	enabledByDefault bool
	find             finder
}

var checks = []check{
	{"passive", "may be passive voice", true, regexFinder(passiveRe, 0)},
	{"illusion", "is repeated", true, findIllusions},
	{"so", "adds no meaning", true, regexFinder(soRe, 1)},
	{"thereIs", "is unnecessary verbiage", true, regexFinder(thereIsRe, 1)},
	{"weasel", "is a weasel word", true, regexFinder(wordListRe(weaselWords), 1)},
	{"adverb", "can weaken meaning", true, regexFinder(wordListRe(adverbs), 1)},
	{"tooWordy", "is wordy or unneeded", true, regexFinder(wordListRe(wordyPhrases), 1)},
	{"cliches", "is a cliche", true, regexFinder(wordListRe(cliches), 1)},
	{"eprime", "is a form of 'to be'", false, regexFinder(wordListRe(toBeForms), 1)},
}

var (
	passiveRe = regexp.MustCompile(`(?i)\b(?:am|are|were|being|is|been|was|be)\s+(?:\w+ed|` +
		strings.Join(irregularParticiples, "|") + `)\b`)

	// Both only count at the start of a sentence.
	soRe      = regexp.MustCompile(`(?i)(?:^\s*|[.!?]\s+)(so)\b`)
	thereIsRe = regexp.MustCompile(`(?i)(?:^\s*|[.!?]\s+)(there\s+(?:is|are))\b`)

	wordRe = regexp.MustCompile(`[A-Za-z]+`)
)

// wordListRe matches any of the given words or phrases as whole words.
// Longer entries are tried first so that phrases win over their prefixes.
func wordListRe(words []string) *regexp.Regexp {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

func regexFinder(re *regexp.Regexp, group int) finder {
	return func(text string) [][2]int {
		var spans [][2]int
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2*group], m[2*group+1]
			if start < 0 {
				continue
			}
			spans = append(spans, [2]int{start, end})
		}
		return spans
	}
}

// findIllusions flags a word immediately repeated after whitespace, as in
// "the the". The first word must start the line or follow whitespace.
func findIllusions(text string) [][2]int {
	words := wordRe.FindAllStringIndex(text, -1)
	var spans [][2]int
	for i := 0; i+1 < len(words); i++ {
		a, b := words[i], words[i+1]
		if a[0] > 0 && !isSpace(text[a[0]-1]) {
			continue
		}
		gap := text[a[1]:b[0]]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		if b[1] < len(text) && isWordByte(text[b[1]]) {
			continue
		}
		if !strings.EqualFold(text[a[0]:a[1]], text[b[0]:b[1]]) {
			continue
		}
		spans = append(spans, [2]int{a[0], b[1]})
		i++
	}
	return spans
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// unitIndex converts byte offsets of a string to UTF-16 code unit offsets.
type unitIndex struct {
	units []int // nil for ASCII text
}

func newUnitIndex(s string) unitIndex {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return unitIndex{}
	}
	units := make([]int, len(s)+1)
	n := 0
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		for j := range w {
			units[i+j] = n
		}
		n += utf16.RuneLen(r)
		i += w
	}
	units[len(s)] = n
	return unitIndex{units: units}
}

func (u unitIndex) at(b int) int {
	if u.units == nil {
		return b
	}
	return u.units[b]
}
