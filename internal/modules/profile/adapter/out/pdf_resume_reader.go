package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	"folio/internal/modules/profile/domain"
	profileout "folio/internal/modules/profile/port/out"
	apperrors "folio/internal/platform/errors"
)

type PDFResumeReader struct {
	path string
}

func NewPDFResumeReader(path string) profileout.ResumeReader {
	return &PDFResumeReader{path: path}
}

// ReadPage extracts the text runs of one page. Pages past the end clamp to
// the last page.
func (r *PDFResumeReader) ReadPage(_ context.Context, page int) (domain.ResumePage, error) {
	if r.path == "" {
		return domain.ResumePage{}, apperrors.ErrResumeUnavailable
	}
	doc, err := pdf.Open(r.path)
	if err != nil {
		return domain.ResumePage{}, fmt.Errorf("open resume: %w", err)
	}
	total := doc.NumPage()
	if total == 0 {
		return domain.ResumePage{Number: 1, Total: 0}, nil
	}
	if page > total {
		page = total
	}
	p := doc.Page(page)
	if p.V.IsNull() {
		return domain.ResumePage{}, fmt.Errorf("resume page %d is null", page)
	}
	content := p.Content()
	parts := make([]string, 0, len(content.Text))
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		parts = append(parts, text.S)
	}
	return domain.ResumePage{Number: page, Total: total, Text: strings.Join(parts, " ")}, nil
}
