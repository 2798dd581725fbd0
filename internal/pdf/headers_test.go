// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/markitdown/internal/pdf/pdftest"
)

func TestRemoveHeadersFooters(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  []string
	}{
		{
			name: "repeated header and numbered footer",
			pages: []string{
				"Acme Report. Apples grow on trees. Page 1 of 3",
				"Acme Report. Bananas are yellow. Page 2 of 3",
				"Acme Report. Cherries are red. Page 3 of 3",
			},
			want: []string{
				"Apples grow on trees.",
				"Bananas are yellow.",
				"Cherries are red.",
			},
		},
		{
			name: "page made only of header becomes empty",
			pages: []string{
				"Confidential draft. Hello there.",
				"Confidential draft.",
				"Confidential draft. Goodbye now.",
			},
			want: []string{"Hello there.", "", "Goodbye now."},
		},
		{
			name: "sentence repeated within one page",
			pages: []string{
				"Draft only. Body one. Draft only.",
				"Body two.",
			},
			want: []string{"Body one.", "Body two."},
		},
		{
			name:  "nothing repeated leaves pages untouched",
			pages: []string{"Line one\nline two", "Other text\n"},
			want:  []string{"Line one\nline two", "Other text\n"},
		},
		{
			name:  "single page is returned as-is",
			pages: []string{"Same. Same."},
			want:  []string{"Same. Same."},
		},
		{
			name:  "no pages",
			pages: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveHeadersFooters(tt.pages)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.pages))
		})
	}
}

func TestRemoveHeadersFooters_DoesNotMutateInput(t *testing.T) {
	pages := []string{"Header. One.", "Header. Two."}
	_ = RemoveHeadersFooters(pages)
	assert.Equal(t, []string{"Header. One.", "Header. Two."}, pages)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "One. Two! Three? Four", want: []string{"One.", "Two!", "Three?", "Four"}},
		{in: "Pi is 3.14 exactly.  Next\n\nline.", want: []string{"Pi is 3.14 exactly.", "Next\n\nline."}},
		{in: "   ", want: nil},
		{in: "Ünïcode. Ok.", want: []string{"Ünïcode.", "Ok."}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitSentences(tt.in), "input %q", tt.in)
	}
}

func TestValidate(t *testing.T) {
	err := Validate("junk.pdf", bytes.NewReader([]byte("definitely not a pdf file at all")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceOpen)
}

func TestPageCount(t *testing.T) {
	rs := bytes.NewReader(pdftest.Build("one", "two", "three", "four"))
	n, err := PageCount("four.pdf", rs)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	pos, err := rs.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, pos, "reader rewound")
}
