package segmenter

import (
	"strings"
	"unicode"
)

// abbreviations that end with a period but do not terminate a sentence.
// Matched against the trailing non-space token at a candidate split point.
var abbreviations = map[string]struct{}{
	"Mr.":    {},
	"Mrs.":   {},
	"Ms.":    {},
	"Dr.":    {},
	"Prof.":  {},
	"Sr.":    {},
	"Jr.":    {},
	"Inc.":   {},
	"Ltd.":   {},
	"Co.":    {},
	"Corp.":  {},
	"etc.":   {},
	"vs.":    {},
	"e.g.":   {},
	"i.e.":   {},
	"Ph.D.":  {},
	"M.D.":   {},
}

// SplitSentences splits text into whole sentences.
//
// A split point is a terminator (. ! ?) followed by whitespace and an
// upper-case letter or opening quote. Common abbreviations (titles,
// initials, Latin shorthands) never terminate a sentence even when
// followed by a capitalised word. Returned sentences are trimmed and
// never empty.
func SplitSentences(text string) []string {
	runes := []rune(text)

	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}

		// Skip the whitespace run to find the start of the next word.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j >= len(runes) {
			break
		}
		next := runes[j]
		if !unicode.IsUpper(next) && next != '"' && next != '\'' {
			continue
		}

		if r == '.' && endsWithAbbreviation(runes[start:i+1]) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = j
		i = j - 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// endsWithAbbreviation reports whether the trailing non-space token of the
// candidate sentence is a protected abbreviation.
func endsWithAbbreviation(sentence []rune) bool {
	end := len(sentence)
	k := end
	for k > 0 && !unicode.IsSpace(sentence[k-1]) {
		k--
	}
	token := string(sentence[k:end])
	_, ok := abbreviations[token]
	return ok
}
