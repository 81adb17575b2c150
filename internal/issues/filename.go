package issues

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const filenameDateLayout = "2006_01_02"

// transliterations cover symbols and letters that do not decompose into
// ASCII under NFKD.
var transliterations = strings.NewReplacer(
	"&", " and ",
	"%", " percent ",
	"$", " dollar ",
	"€", " euro ",
	"£", " pound ",
	"@", " at ",
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Ø", "O", "ø", "o",
	"Œ", "OE", "œ", "oe",
	"Þ", "TH", "þ", "th",
	"Đ", "D", "đ", "d",
	"Ł", "L", "ł", "l",
	"ı", "i",
)

// Slugify lowercases and transliterates title and collapses every run of
// characters other than ASCII letters and digits into a single dash.
func Slugify(title string) string {
	s := transliterations.Replace(title)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		default:
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte('-')
		}
		pending = false
		b.WriteRune(r)
	}
	return b.String()
}

// Filename returns <YYYY_MM_DD>_<slug>.md for the title at moment.
func Filename(title string, moment time.Time) string {
	return moment.Format(filenameDateLayout) + "_" + Slugify(title) + ".md"
}

// Path returns the output path of a document under the project root.
func Path(root, contentDir, title string, moment time.Time) string {
	return filepath.Join(root, contentDir, Filename(title, moment))
}
