package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// leadingOrdinal matches an occurrence-number prefix such as "2 " in "2 ol".
var leadingOrdinal = regexp.MustCompile(`^[0-9]+\s*`)

// notation is the punctuation used as dictionary markup inside headwords.
const notation = ":*?'()[]/.,;-"

// foldTable maps every character with special handling to its comparison
// form. Both Turkish capital I forms land on "i". Characters not listed are
// lowercased with unicode.ToLower.
var foldTable = map[rune]rune{
	'İ': 'i', 'I': 'i', 'ı': 'i',
	'Ç': 'c', 'ç': 'c',
	'Ş': 's', 'ş': 's',
	'Ğ': 'g', 'ğ': 'g',
	'Ü': 'u', 'ü': 'u',
	'Ö': 'o', 'ö': 'o',
	'Ñ': 'n', 'ñ': 'n',
	'Ŋ': 'n', 'ŋ': 'n',
	'Ḏ': 'd', 'ḏ': 'd',
	'Ḍ': 'd', 'ḍ': 'd',
	'É': 'e', 'é': 'e',
	'Ā': 'a', 'ā': 'a',
	'Ī': 'i', 'ī': 'i',
	'Ū': 'u', 'ū': 'u',
}

func foldRune(r rune) rune {
	if f, ok := foldTable[r]; ok {
		return f
	}
	return unicode.ToLower(r)
}

func isDroppable(r rune) bool {
	return strings.ContainsRune(notation, r) || unicode.IsSpace(r)
}

// normalizeChain composes decomposed input first so that e.g. "s" + U+0327
// reaches the fold table as "ş". Punctuation and whitespace removal commute
// with folding because no folded rune is itself droppable.
func normalizeChain() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.Remove(runes.Predicate(isDroppable)),
		runes.Map(foldRune),
		norm.NFC,
	)
}

// Normalize maps a raw headword, variant or query term to the canonical
// folded form used for all comparisons in normalized space:
//
//  1. a leading run of ASCII digits and following whitespace is stripped;
//  2. dictionary notation (: * ? ' ( ) [ ] / . , ; -) is removed;
//  3. text is lowercased, with both İ and I folding to "i";
//  4. Turkish and transliteration letters fold to their Latin base;
//  5. all whitespace is removed.
//
// The pass is repeated until the output is stable, so Normalize is
// idempotent even for inputs like "(2) ol" whose first pass exposes a new
// leading ordinal. Empty input yields "".
func Normalize(raw string) string {
	s := normalizeOnce(raw)
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(raw string) string {
	if raw == "" {
		return ""
	}
	s := leadingOrdinal.ReplaceAllString(raw, "")
	out, _, err := transform.String(normalizeChain(), s)
	if err != nil {
		// Only invalid state can fail here; treat it as untransformable.
		return ""
	}
	return out
}

// SearchKeywords returns the normalized form of every slash-separated
// spelling in word, deduplicated in encounter order. It returns nil when
// word carries no alternation marker.
func SearchKeywords(word string) []string {
	if !strings.Contains(word, "/") {
		return nil
	}
	parts := strings.Split(word, "/")
	keywords := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		k := Normalize(strings.TrimSpace(p))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}

// BaseWord strips the occurrence-number prefix from a display headword.
// Entries sharing a BaseWord are homographs and share an occurrence sequence.
func BaseWord(word string) string {
	return strings.TrimSpace(leadingOrdinal.ReplaceAllString(strings.TrimSpace(word), ""))
}

var (
	lowerTR = cases.Lower(language.Turkish)
	upperTR = cases.Upper(language.Turkish)
)

// letterPairs lists the Turkish letters whose case partner differs from
// generic Unicode case mapping or that form their own alphabet bucket.
var letterPairs = map[string][2]string{
	"Ç": {"Ç", "ç"}, "ç": {"Ç", "ç"},
	"Ğ": {"Ğ", "ğ"}, "ğ": {"Ğ", "ğ"},
	"Ş": {"Ş", "ş"}, "ş": {"Ş", "ş"},
	"Ö": {"Ö", "ö"}, "ö": {"Ö", "ö"},
	"Ü": {"Ü", "ü"}, "ü": {"Ü", "ü"},
	"I": {"I", "ı"}, "ı": {"I", "ı"},
	"İ": {"İ", "i"}, "i": {"İ", "i"},
}

// LetterPrefixes returns the LIKE patterns selecting headwords that begin
// with letter in alphabet-browsing mode. Unlike Normalize, dotted and
// dotless I are distinct buckets here.
func LetterPrefixes(letter string) []string {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return nil
	}
	if pair, ok := letterPairs[letter]; ok {
		return []string{EscapeLike(pair[0]) + "%", EscapeLike(pair[1]) + "%"}
	}
	lower, upper := lowerTR.String(letter), upperTR.String(letter)
	if lower == upper {
		return []string{EscapeLike(letter) + "%"}
	}
	return []string{EscapeLike(lower) + "%", EscapeLike(upper) + "%"}
}

// HeadwordPrefixPattern matches the ordinal and notation characters that
// letter browsing ignores at the start of a headword. The pattern is valid
// both for Go regexp and for PostgreSQL regular expressions.
const HeadwordPrefixPattern = `^[0-9\s:*?'()\[\]/.,;-]+`

var headwordPrefix = regexp.MustCompile(HeadwordPrefixPattern)

// SanitizeHeadword applies the light cleanup used by letter browsing:
// ordinal and notation characters are trimmed from the front only.
func SanitizeHeadword(word string) string {
	return headwordPrefix.ReplaceAllString(word, "")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
