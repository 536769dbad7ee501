package obsidian

import "strings"

// tokenMap is ordered longest token first so that "YYYY" wins over "YY".
var tokenMap = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DDDD", "002"},
	{"DDD", "002"}, // Go has no unpadded day of year
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"D", "2"},
	{"HH", "15"},
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"ZZ", "-0700"},
	{"Z", "-07:00"},
	{"A", "PM"},
	{"a", "pm"},
}

// momentToGoLayout converts the subset of Moment.js tokens used by Obsidian
// into a Go time layout. Text inside [brackets] and backslash-escaped runes
// are copied literally. It fails on an unclosed bracket.
func momentToGoLayout(format string) (string, bool) {
	var b strings.Builder

	for i := 0; i < len(format); {
		switch format[i] {
		case '[':
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", false
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		case '\\':
			if i+1 < len(format) {
				b.WriteByte(format[i+1])
				i += 2
				continue
			}
		}

		if token, layout, ok := matchToken(format[i:]); ok {
			b.WriteString(layout)
			i += len(token)
			continue
		}

		b.WriteByte(format[i])
		i++
	}

	return b.String(), true
}

func matchToken(s string) (token, layout string, ok bool) {
	for _, entry := range tokenMap {
		if strings.HasPrefix(s, entry.token) {
			return entry.token, entry.layout, true
		}
	}
	return "", "", false
}
