package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0 // mm
	pdfLineHeight = 7.0  // mm
	pdfFontSize   = 12.0
)

// WritePDF renders the letter content as an A4 portrait PDF. Markup is
// stripped first; the text is wrapped to the printable width and paginated.
func WritePDF(w io.Writer, content string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	maxWidth := pageWidth - 2*pdfMargin

	lines := pdf.SplitText(HTMLToPlainText(content), maxWidth)

	y := pdfMargin
	for _, line := range lines {
		if y+pdfLineHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			y = pdfMargin
		}
		pdf.Text(pdfMargin, y, line)
		y += pdfLineHeight
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
