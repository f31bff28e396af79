// Package textnorm canonicalizes game titles and search queries.
//
// Normalize is used for match-strength comparison between a query and a title.
// BaseName additionally strips edition noise and is used as the identity key
// when grouping catalog entries that represent the same game.
package textnorm

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	symbolReplacer = strings.NewReplacer(
		"™", "",
		"®", "",
		":", "",
		".", "",
		"-", " ",
		"’", "'",
		"‘", "'",
	)
	romanPartRegex     = regexp.MustCompile(`\bpart\s+(iii|ii|i)\b`)
	multipleSpaceRegex = regexp.MustCompile(`\s+`)
	yearRegex          = regexp.MustCompile(`\(\d{4}\)`)
	emptyParensRegex   = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
)

var romanParts = map[string]string{"i": "1", "ii": "2", "iii": "3"}

// DefaultEditionSuffixes are stripped by BaseName.
var DefaultEditionSuffixes = []string{
	"game of the year edition",
	"game of the year",
	"goty edition",
	"goty",
	"complete edition",
	"deluxe edition",
	"deluxe",
	"ultimate edition",
	"enhanced edition",
	"special edition",
	"director's cut",
	"gold edition",
	"remastered",
	"remaster",
	"remake",
}

var defaultBaseNamer = NewBaseNamer(DefaultEditionSuffixes)

// Normalize lowercases text, folds accents, drops trademark symbols, colons and
// periods, turns hyphens into spaces, rewrites "part i/ii/iii" as "part 1/2/3"
// and collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := foldAccents(strings.ToLower(text))
	s = collapse(symbolReplacer.Replace(s))
	return romanPartRegex.ReplaceAllStringFunc(s, func(m string) string {
		return "part " + romanParts[romanPartRegex.FindStringSubmatch(m)[1]]
	})
}

// Words splits the normalized text into its distinct words, in first-seen order.
func Words(text string) []string {
	fields := strings.Fields(Normalize(text))
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// BaseName is the grouping key of a title using DefaultEditionSuffixes.
func BaseName(text string) string {
	return defaultBaseNamer.BaseName(text)
}

// BaseNamer strips a configurable list of edition suffixes.
type BaseNamer struct {
	suffixes *regexp.Regexp
}

// NewBaseNamer compiles suffixes into a matcher. Suffixes are normalized first,
// and longer phrases win over their prefixes ("deluxe edition" before "deluxe").
func NewBaseNamer(suffixes []string) *BaseNamer {
	phrases := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if n := Normalize(s); n != "" {
			phrases = append(phrases, n)
		}
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})

	b := &BaseNamer{}
	if len(phrases) == 0 {
		return b
	}
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	b.suffixes = regexp.MustCompile(`(?:^|\s)[(\[]?(?:` + strings.Join(quoted, "|") + `)[)\]]?$`)
	return b
}

// BaseName normalizes text, strips parenthesized years, then strips edition
// suffixes from the end of the title until none is left. Edition words in the
// middle of a title are kept. A title made only of edition words keeps them,
// so it never collapses into an empty key shared with unrelated titles.
func (b *BaseNamer) BaseName(text string) string {
	s := collapse(emptyParensRegex.ReplaceAllString(yearRegex.ReplaceAllString(Normalize(text), " "), " "))
	if b.suffixes == nil {
		return s
	}
	base := s
	for {
		stripped := collapse(b.suffixes.ReplaceAllString(base, ""))
		if stripped == base {
			break
		}
		base = stripped
	}
	if base == "" {
		return s
	}
	return base
}

// transform.Chain keeps per-use state, so each call builds its own.
func foldAccents(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(multipleSpaceRegex.ReplaceAllString(s, " "))
}
