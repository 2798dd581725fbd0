// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	wordPattern  = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// stopWords never count as shared vocabulary between two sentences.
var stopWords = map[string]bool{
	"the": true, "of": true, "to": true, "and": true, "or": true, "in": true,
	"on": true, "at": true, "for": true, "with": true, "by": true, "from": true,
	"up": true, "down": true, "out": true, "off": true, "over": true, "under": true,
	"into": true, "onto": true, "upon": true, "within": true, "without": true,
	"through": true, "throughout": true, "during": true, "before": true,
	"after": true, "since": true, "until": true, "while": true, "where": true,
	"when": true, "why": true, "how": true, "what": true, "which": true,
	"who": true, "whom": true, "whose": true, "this": true, "that": true,
	"these": true, "those": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "must": true, "shall": true,
}

const (
	minSharedWords      = 2 // meaningful words two sentences must share
	minRelatedSentences = 2 // other sentences a numbered sentence must resemble
	minStructureLen     = 5
	minStructureNumbers = 2
)

// RemoveHeadersFooters drops running headers and footers from a document's
// pages. A sentence is removed when it
//   - occurs more than once in the document (on any pages),
//   - has the same shape as at least two other sentences once digit runs are
//     masked ("Page 3 of 10"), or
//   - contains a digit and shares two meaningful words with at least two
//     other sentences.
//
// The result has the same length as pages; a page whose every sentence was
// removed becomes "". Pages with nothing removed are returned unchanged.
// Documents with fewer than two pages are returned as-is.
func RemoveHeadersFooters(pages []string) []string {
	out := make([]string, len(pages))
	copy(out, pages)
	if len(pages) < 2 {
		return out
	}

	perPage := make([][]string, len(pages))
	var all []string
	for i, p := range pages {
		perPage[i] = splitSentences(p)
		all = append(all, perPage[i]...)
	}

	remove := repeatedSentences(all)
	for s := range patternSentences(all) {
		remove[s] = true
	}
	if len(remove) == 0 {
		return out
	}

	for i, sentences := range perPage {
		kept := make([]string, 0, len(sentences))
		for _, s := range sentences {
			if !remove[s] {
				kept = append(kept, s)
			}
		}
		if len(kept) != len(sentences) {
			out[i] = strings.Join(kept, " ")
		}
	}
	return out
}

// repeatedSentences returns the sentences that occur more than once in the
// document, whether on different pages or within one page.
func repeatedSentences(sentences []string) map[string]bool {
	count := make(map[string]int, len(sentences))
	for _, s := range sentences {
		count[s]++
	}
	repeated := make(map[string]bool)
	for s, n := range count {
		if n > 1 {
			repeated[s] = true
		}
	}
	return repeated
}

func patternSentences(sentences []string) map[string]bool {
	found := make(map[string]bool)
	if len(sentences) < 2 {
		return found
	}

	words := make([]map[string]bool, len(sentences))
	for i, s := range sentences {
		words[i] = meaningfulWords(s)
	}
	for i, s := range sentences {
		if !strings.ContainsFunc(s, unicode.IsDigit) || len(words[i]) == 0 {
			continue
		}
		related := 0
		for j := range sentences {
			if i != j && sharedCount(words[i], words[j]) >= minSharedWords {
				related++
			}
		}
		if related >= minRelatedSentences {
			found[s] = true
		}
	}

	shapes := make(map[string]int)
	shapeOf := make([]string, len(sentences))
	for i, s := range sentences {
		if len(digitPattern.FindAllStringIndex(s, -1)) < minStructureNumbers {
			continue
		}
		shape := digitPattern.ReplaceAllString(s, "N")
		if len(shape) < minStructureLen {
			continue
		}
		shapeOf[i] = shape
		shapes[shape]++
	}
	for i, s := range sentences {
		if shapeOf[i] != "" && shapes[shapeOf[i]] > minRelatedSentences {
			found[s] = true
		}
	}
	return found
}

func meaningfulWords(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(s, -1) {
		if !stopWords[strings.ToLower(w)] {
			set[w] = true
		}
	}
	return set
}

func sharedCount(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// splitSentences cuts text at whitespace that follows '.', '!' or '?'.
// Sentences are trimmed; empty ones are dropped.
func splitSentences(text string) []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:i])
			if prev == '.' || prev == '!' || prev == '?' {
				j := i
				for j < len(text) {
					r2, s2 := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(r2) {
						break
					}
					j += s2
				}
				add(text[start:i])
				start, i = j, j
				continue
			}
		}
		i += size
	}
	add(text[start:])
	return out
}
