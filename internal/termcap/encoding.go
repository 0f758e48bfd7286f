package termcap

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/griffithind/termout/internal/errors"
)

// UTF8 is the canonical name of the UTF-8 encoding.
const UTF8 = "utf-8"

// utf8Sig is UTF-8 written with a leading byte order mark. It is kept apart
// from UTF8: a stream declaring it does not count as plain UTF-8.
const utf8Sig = "utf-8-sig"

// Windows code pages whose WHATWG name is not "windows-NNN".
var codePageAliases = map[string]string{
	"65001": UTF8,
	"932":   "shift_jis",
	"936":   "gbk",
	"949":   "euc-kr",
	"950":   "big5",
}

// Spellings common in POSIX locales that neither index knows.
var bareAliases = map[string]string{
	"eucjp":   "euc-jp",
	"euckr":   "euc-kr",
	"euccn":   "gb2312",
	"sjis":    "shift_jis",
	"ansi":    "windows-1252",
	"mskanji": "shift_jis",
}

// CanonicalEncoding normalizes an encoding name to its canonical name,
// e.g. "UTF8" and "utf_8" become "utf-8", "latin-1" becomes "windows-1252"
// and "cp437" becomes "ibm437".
func CanonicalEncoding(name string) (string, error) {
	_, canonical, err := LookupEncoding(name)
	return canonical, err
}

// LookupEncoding resolves an encoding name against the WHATWG index first and
// the IANA registry second. The encoding is nil for registered charsets that
// have no implementation.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, "", errors.EncodingUnknown(name, nil)
	}

	if bareName(trimmed) == "utf8sig" {
		return unicode.UTF8BOM, utf8Sig, nil
	}

	candidates := encodingCandidates(trimmed)
	var lastErr error
	for _, candidate := range candidates {
		enc, err := htmlindex.Get(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		canonical, err := htmlindex.Name(enc)
		if err != nil {
			lastErr = err
			continue
		}
		return enc, canonical, nil
	}

	for _, candidate := range candidates {
		enc, err := ianaindex.IANA.Encoding(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if enc == nil {
			return nil, strings.ToLower(candidate), nil
		}
		canonical, err := ianaindex.IANA.Name(enc)
		if err != nil {
			lastErr = err
			continue
		}
		return enc, strings.ToLower(canonical), nil
	}
	return nil, "", errors.EncodingUnknown(name, lastErr)
}

// encodingCandidates lists spellings to try: as given, with underscores as
// hyphens, with all separators removed ("latin-1" is only known as "latin1"),
// and the aliases of Windows code page and locale spellings.
func encodingCandidates(name string) []string {
	lower := strings.ToLower(name)
	hyphenated := strings.ReplaceAll(lower, "_", "-")
	bare := bareName(name)
	candidates := []string{lower, hyphenated, bare}

	if alias, ok := bareAliases[bare]; ok {
		candidates = append(candidates, alias)
	}
	if page, ok := codePage(bare); ok {
		if alias, ok := codePageAliases[page]; ok {
			candidates = append(candidates, alias)
		}
		candidates = append(candidates, "windows-"+page, "ibm"+page, "cp"+page)
	}
	return candidates
}

func bareName(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// codePage extracts NNN from "cpNNN", "msNNN" and "windowsNNN".
func codePage(bare string) (string, bool) {
	for _, prefix := range []string{"cp", "ms", "windows"} {
		digits, ok := strings.CutPrefix(bare, prefix)
		if !ok || digits == "" {
			continue
		}
		if strings.Trim(digits, "0123456789") == "" {
			return digits, true
		}
	}
	return "", false
}

// PreferredEncoding returns the encoding the user's locale prefers, or "".
func PreferredEncoding(env Environment) string {
	if isWindows(env) {
		return windowsCodePage()
	}
	return localeCodeset(env)
}

// localeCodeset extracts the codeset from the effective POSIX locale,
// e.g. "en_US.UTF-8@euro" yields "UTF-8".
func localeCodeset(env Environment) string {
	var locale string
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(env, key); v != "" {
			locale = v
			break
		}
	}
	_, codeset, ok := strings.Cut(locale, ".")
	if !ok {
		return ""
	}
	codeset, _, _ = strings.Cut(codeset, "@")
	return codeset
}
