package document

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0

	headerNameY    = 30.0
	headerAddressY = 38.0
	headerPhoneY   = 44.0
	headerTitleY   = 60.0
	headerRuleY    = 70.0
	contentStartY  = 80.0
	continuedPageY = margin + 10

	sectionAdvance = 10.0
	lineHeight     = 5.0
	textGap        = 5.0
	valueIndent    = 30.0

	tableRuleOffset = 3.0
	tableFirstRow   = 10.0
	tableRowHeight  = 7.0
	tableGap        = 5.0

	signatureLineOffset = 30.0
	signatureLineWidth  = 60.0
	signatureLabelGap   = 5.0
	signatureAdvance    = 20.0
)

const printableWidth = pageWidth - 2*margin

// Company is the fixed identity printed in every document banner.
type Company struct {
	Name    string
	Address string
	Phone   string
}

// writer draws primitives at positions chosen by the builder. The PDF writer
// honours the coordinates, the HTML writer only keeps the order.
type writer interface {
	Header(c Company, phoneLabel, title string)
	Section(y float64, title string)
	// Text draws a run of wrapped lines. continued is set for the runs that
	// follow a page break inside the same block.
	Text(y float64, label, value string, lines []string, continued bool)
	TableHeader(y float64, headers []string, colWidth float64)
	TableRow(y float64, cells []string, colWidth float64)
	Signature(y float64, title, role, dateLabel string)
	// Wrap splits value into lines no wider than width.
	Wrap(value string, width float64) []string
	NewPage()
	Bytes() ([]byte, error)
}

// builder lays out one document. It owns a cursor that only moves down the
// page and must not be reused for another document.
type builder struct {
	w       writer
	company Company
	labels  *Labels
	y       float64
}

func newBuilder(w writer, company Company, labels *Labels) *builder {
	return &builder{w: w, company: company, labels: labels}
}

func (b *builder) newPage() {
	b.w.NewPage()
	b.y = continuedPageY
}

// ensure starts a new page when a block of height h would run past the
// bottom margin.
func (b *builder) ensure(h float64) {
	if b.y+h > pageHeight-margin {
		b.newPage()
	}
}

func (b *builder) AddHeader(title string) float64 {
	b.w.Header(b.company, b.labels.Phone, title)
	b.y = contentStartY
	return b.y
}

// AddSection keeps the title on the same page as the first line of text
// below it.
func (b *builder) AddSection(title string) float64 {
	b.ensure(sectionAdvance + lineHeight + textGap)
	b.w.Section(b.y, title)
	b.y += sectionAdvance
	return b.y
}

// AddText writes "label: value". A blank label writes value as a plain
// paragraph over the full printable width. Values longer than the space left
// on the page continue on the next one.
func (b *builder) AddText(label, value string) float64 {
	width := printableWidth
	if label != "" {
		width -= valueIndent
	}
	lines := b.w.Wrap(value, width)
	if len(lines) == 0 {
		lines = []string{""}
	}

	continued := false
	for len(lines) > 0 {
		fit := int((pageHeight - margin - textGap - b.y) / lineHeight)
		if fit < 1 {
			b.newPage()
			continue
		}
		n := min(fit, len(lines))
		b.w.Text(b.y, label, value, lines[:n], continued)
		b.y += float64(n) * lineHeight
		lines = lines[n:]
		if len(lines) > 0 {
			b.newPage()
			continued = true
		}
	}
	b.y += textGap
	return b.y
}

func (b *builder) AddTable(headers []string, rows [][]string) float64 {
	if len(headers) == 0 {
		return b.y
	}
	colWidth := printableWidth / float64(len(headers))

	b.ensure(tableFirstRow + tableRowHeight)
	b.w.TableHeader(b.y, headers, colWidth)
	y := b.y + tableFirstRow
	for _, row := range rows {
		if y+tableRowHeight > pageHeight-margin {
			b.newPage()
			y = b.y
		}
		b.w.TableRow(y, row, colWidth)
		y += tableRowHeight
	}
	b.y = y + tableGap
	return b.y
}

// AddSignatureSection writes title and two blank lines below it: the
// signatory role on the left and the date on the right.
func (b *builder) AddSignatureSection(title, role string) float64 {
	b.ensure(signatureLineOffset + signatureLabelGap + lineHeight)
	b.w.Signature(b.y, title, role, b.labels.SignatureDate)
	b.y = b.y + signatureLineOffset + signatureAdvance
	return b.y
}

// Skip moves the cursor down by dy.
func (b *builder) Skip(dy float64) float64 {
	b.y += dy
	return b.y
}

// At moves the cursor to an absolute position below the current one.
func (b *builder) At(y float64) float64 {
	if y > b.y {
		b.y = y
	}
	return b.y
}

func (b *builder) Bytes() ([]byte, error) {
	return b.w.Bytes()
}
