// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrSourceOpen = errors.New("pdf source cannot be opened")
	ErrExtraction = errors.New("pdf text extraction failed")
)

// SourceOpenError reports a source that is missing, unreadable, encrypted,
// or not a valid PDF.
type SourceOpenError struct {
	Source string
	Err    error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("opening PDF %s: %v", e.Source, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSourceOpen) true for every SourceOpenError.
func (e *SourceOpenError) Is(target error) bool { return target == ErrSourceOpen }

// ExtractionError reports a failure while extracting text from one page.
type ExtractionError struct {
	Source string
	Page   int // 1-based
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting page %d of %s: %v", e.Page, e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExtraction) true for every ExtractionError.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }
