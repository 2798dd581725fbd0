// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits converted text into token-limited pieces suitable
// for embedding or prompting. Boundaries move to the nearest sentence
// punctuation so chunks rarely cut a sentence in half.
package chunk

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/pdiddy/markitdown/pkg/types"
)

func init() {
	// Use the BPE ranks embedded in the loader instead of downloading them.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Defaults used when ChunkConfig leaves a field at zero.
const (
	DefaultTokenLimit = 500
	DefaultOverlap    = 50

	// DefaultEncoding is the tiktoken encoding used to count tokens.
	DefaultEncoding = "cl100k_base"
)

const punctuation = ".!?;"

// abbrevWindow is how far either side of a punctuation mark another period
// marks it as part of an abbreviation.
const abbrevWindow = 5

// Counter returns the number of tokens in s.
type Counter func(s string) int

// Chunker splits text using a token Counter.
type Chunker struct {
	count Counter
}

// New returns a Chunker that counts tokens with count.
func New(count Counter) *Chunker {
	return &Chunker{count: count}
}

// TiktokenCounter returns a Counter for the named tiktoken encoding.
func TiktokenCounter(encoding string) (Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encoding, err)
	}
	return func(s string) int {
		return len(enc.EncodeOrdinary(s))
	}, nil
}

var defaultCounter = sync.OnceValues(func() (Counter, error) {
	return TiktokenCounter(DefaultEncoding)
})

// DefaultCounter returns the cl100k_base token counter. The encoding is
// loaded once.
func DefaultCounter() (Counter, error) {
	return defaultCounter()
}

// Chunk splits text with the default token counter.
func Chunk(text string, limit, overlap int) ([]string, error) {
	count, err := DefaultCounter()
	if err != nil {
		return nil, err
	}
	return New(count).Chunk(text, limit, overlap)
}

// Chunk splits text into pieces of at most roughly limit tokens. Text that
// already fits is returned unchanged as a single chunk. Otherwise the text
// is cut into ceil(tokens/limit) spans of equal character length; each
// span start moves back and each span end moves forward to sentence
// punctuation, and consecutive spans share about overlap characters.
// Chunks are trimmed and empty ones dropped.
func (c *Chunker) Chunk(text string, limit, overlap int) ([]string, error) {
	if limit <= 0 {
		return nil, &types.ConfigError{Option: "chunk.tokens", Reason: "must be positive"}
	}
	if overlap < 0 {
		return nil, &types.ConfigError{Option: "chunk.overlap", Reason: "must not be negative"}
	}
	if text == "" {
		return nil, nil
	}

	tokens := c.count(text)
	if tokens <= limit {
		return []string{text}, nil
	}

	r := []rune(text)
	n := (tokens + limit - 1) / limit
	size := len(r) / n

	var chunks []string
	prevEnd := 0
	for i := range n {
		start := 0
		if i > 0 {
			start = backward(r, i*size-overlap)
		}
		if overlap == 0 && start < prevEnd {
			start = prevEnd
		}

		end := len(r)
		if i < n-1 {
			end = forward(r, (i+1)*size-overlap)
		}
		end = max(end, start)
		prevEnd = end

		if s := strings.TrimSpace(string(r[start:end])); s != "" {
			chunks = append(chunks, s)
		}
	}
	return chunks, nil
}

// backward moves i left until the rune before it is a sentence break.
func backward(r []rune, i int) int {
	i = clamp(i, len(r))
	for i > 0 {
		if isBreak(r, i-1) {
			break
		}
		i--
	}
	return i
}

// forward moves i right past the next sentence break.
func forward(r []rune, i int) int {
	i = clamp(i, len(r))
	for i < len(r) {
		if isBreak(r, i) {
			return i + 1
		}
		i++
	}
	return i
}

func isBreak(r []rune, i int) bool {
	return strings.ContainsRune(punctuation, r[i]) && !inNumberOrAbbreviation(r, i)
}

// inNumberOrAbbreviation reports whether the mark at i is a decimal point
// (3.14) or has another period within abbrevWindow runes (e.g., i.e.).
func inNumberOrAbbreviation(r []rune, i int) bool {
	if r[i] == '.' && i > 0 && i < len(r)-1 && unicode.IsDigit(r[i-1]) && unicode.IsDigit(r[i+1]) {
		return true
	}
	for off := -abbrevWindow; off <= abbrevWindow; off++ {
		j := i + off
		if off != 0 && j >= 0 && j < len(r) && r[j] == '.' {
			return true
		}
	}
	return false
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
