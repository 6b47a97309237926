package document

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// newPDFWriter returns a writer whose output depends only on the drawn
// content and created, so identical input gives identical bytes.
func newPDFWriter(title string, created time.Time) *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("field-service", true)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	return &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *pdfWriter) centered(y float64, s string) {
	s = p.tr(s)
	x := (pageWidth - p.pdf.GetStringWidth(s)) / 2
	p.pdf.Text(x, y, s)
}

func (p *pdfWriter) Header(c Company, phoneLabel, title string) {
	p.pdf.SetFont(fontFamily, "B", 16)
	p.centered(headerNameY, c.Name)

	p.pdf.SetFont(fontFamily, "", 10)
	p.centered(headerAddressY, c.Address)
	p.centered(headerPhoneY, phoneLabel+": "+c.Phone)

	p.pdf.SetFont(fontFamily, "B", 14)
	p.centered(headerTitleY, title)

	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(margin, headerRuleY, pageWidth-margin, headerRuleY)
}

func (p *pdfWriter) Section(y float64, title string) {
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.Text(margin, y, p.tr(title))
}

func (p *pdfWriter) Text(y float64, label, _ string, lines []string, continued bool) {
	x := margin
	if label != "" {
		if !continued {
			p.pdf.SetFont(fontFamily, "B", 10)
			p.pdf.Text(margin, y, p.tr(label+":"))
		}
		x += valueIndent
	}
	p.pdf.SetFont(fontFamily, "", 10)
	for i, line := range lines {
		p.pdf.Text(x, y+float64(i)*lineHeight, line)
	}
}

func (p *pdfWriter) TableHeader(y float64, headers []string, colWidth float64) {
	p.pdf.SetFont(fontFamily, "B", 10)
	for i, h := range headers {
		p.pdf.Text(margin+float64(i)*colWidth, y, p.tr(h))
	}
	p.pdf.SetLineWidth(0.2)
	p.pdf.Line(margin, y+tableRuleOffset, pageWidth-margin, y+tableRuleOffset)
}

func (p *pdfWriter) TableRow(y float64, cells []string, colWidth float64) {
	p.pdf.SetFont(fontFamily, "", 10)
	for i, c := range cells {
		p.pdf.Text(margin+float64(i)*colWidth, y, p.tr(c))
	}
}

func (p *pdfWriter) Signature(y float64, title, role, dateLabel string) {
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.Text(margin, y, p.tr(title))

	lineY := y + signatureLineOffset
	right := pageWidth - margin - signatureLineWidth
	p.pdf.SetLineWidth(0.2)
	p.pdf.Line(margin, lineY, margin+signatureLineWidth, lineY)
	p.pdf.Line(right, lineY, pageWidth-margin, lineY)

	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.Text(margin, lineY+signatureLabelGap, p.tr(role))
	p.pdf.Text(right, lineY+signatureLabelGap, p.tr(dateLabel))
}

// Wrap measures with the body font. Returned lines are already translated to
// the PDF code page.
func (p *pdfWriter) Wrap(value string, width float64) []string {
	p.pdf.SetFont(fontFamily, "", 10)
	// SplitText decodes its input as UTF-8, which breaks on code page bytes.
	raw := p.pdf.SplitLines([]byte(p.tr(value)), width)
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = string(line)
	}
	return lines
}

func (p *pdfWriter) NewPage() {
	p.pdf.AddPage()
}

func (p *pdfWriter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
