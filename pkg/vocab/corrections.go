package vocab

import "regexp"

// correction is one literal substring replacement for a known OCR misread.
// Patterns are matched case-insensitively and applied globally, in
// declaration order, each operating on the output of the previous one.
type correction struct {
	re *regexp.Regexp
	to string
}

var corrections = buildCorrections([][2]string{
	{"Naan1", "Naan"},
	{"Naan!", "Naan"},
	{"Poneer", "Paneer"},
	{"Panner", "Paneer"},
	{"Panir", "Paneer"},
	{"Chikcen", "Chicken"},
	{"Chiken", "Chicken"},
	{"Chickn", "Chicken"},
	{"Masla", "Masala"},
	{"Masaala", "Masala"},
	{"Biryanii", "Biryani"},
	{"Biriyani", "Biryani"},
	{"Dosa)", "Dosa"},
	{"Dosa1", "Dosa"},
	{"Momos)", "Momos"},
	{"Momose", "Momos"},
})

func buildCorrections(table [][2]string) []correction {
	out := make([]correction, 0, len(table))
	for _, entry := range table {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(entry[0]))
		out = append(out, correction{re: re, to: entry[1]})
	}
	return out
}

// CorrectOCRErrors rewrites known OCR misreads (stray trailing digits or
// punctuation glued to a word, frequent letter-substitution typos) to
// their canonical spelling.
func CorrectOCRErrors(text string) string {
	for _, c := range corrections {
		text = c.re.ReplaceAllString(text, c.to)
	}
	return text
}
