// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

func pdfcpuConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Validate checks the structure of the PDF in rs with pdfcpu's relaxed
// validator. A failure is reported as a *SourceOpenError. rs is rewound to
// the start on return.
func Validate(source string, rs io.ReadSeeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return &SourceOpenError{Source: source, Err: err}
	}
	verr := api.Validate(rs, pdfcpuConfig())
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return &SourceOpenError{Source: source, Err: err}
	}
	if verr != nil {
		return &SourceOpenError{Source: source, Err: fmt.Errorf("validation: %w", verr)}
	}
	return nil
}

// PageCount returns the number of pages pdfcpu finds in rs. rs is rewound to
// the start on return.
func PageCount(source string, rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, &SourceOpenError{Source: source, Err: err}
	}
	n, cerr := api.PageCount(rs, pdfcpuConfig())
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, &SourceOpenError{Source: source, Err: err}
	}
	if cerr != nil {
		return 0, &SourceOpenError{Source: source, Err: cerr}
	}
	return n, nil
}
