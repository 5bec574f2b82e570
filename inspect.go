package word2pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfInspector returns the page count of a PDF file, failing if it cannot be parsed.
type pdfInspector func(path string) (int, error)

// PageCount validates the PDF at path and returns its number of pages.
// Validation is relaxed: engines emit slightly non-conforming files that
// every reader still opens.
func PageCount(path string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return 0, fmt.Errorf("validating %s: %w", path, err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return pages, nil
}
