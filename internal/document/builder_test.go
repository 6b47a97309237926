package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	htmlWriter
	pages int
	calls []string
	ys    []float64
}

func (r *recordingWriter) Section(y float64, title string) {
	r.calls = append(r.calls, "section:"+title)
	r.ys = append(r.ys, y)
}

func (r *recordingWriter) Text(y float64, label, value string, lines []string, continued bool) {
	r.calls = append(r.calls, "text:"+label)
	r.ys = append(r.ys, y)
}

func (r *recordingWriter) NewPage() {
	r.pages++
}

func newTestBuilder() (*builder, *recordingWriter) {
	w := &recordingWriter{}
	return newBuilder(w, Company{Name: "CLASNET GROUP"}, indonesian), w
}

func TestBuilderCursor(t *testing.T) {
	b, _ := newTestBuilder()

	assert.Equal(t, 80.0, b.AddHeader("JUDUL"))
	assert.Equal(t, 90.0, b.AddSection("Bagian"))
	assert.Equal(t, 100.0, b.AddText("Nama", "Ahmad Wijaya"))
	// header at 100, rule, rows from 110 every 7, then a gap of 5
	assert.Equal(t, 129.0, b.AddTable([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}}))
	assert.Equal(t, 179.0, b.AddSignatureSection("Disetujui Oleh", "Perwakilan"))
}

func TestBuilderTextWrapsLongValues(t *testing.T) {
	b, _ := newTestBuilder()
	b.AddHeader("JUDUL")

	long := "Instalasi jaringan untuk kantor baru termasuk penarikan kabel UTP di tiga lantai dan konfigurasi router utama"
	y := b.AddText("Catatan", long)

	lines := b.w.Wrap(long, printableWidth-valueIndent)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, contentStartY+float64(len(lines))*lineHeight+textGap, y)
}

func TestBuilderBlankLabelUsesFullWidth(t *testing.T) {
	b, w := newTestBuilder()
	b.AddHeader("JUDUL")
	b.AddText("", "paragraf")

	assert.Equal(t, []string{"text:"}, w.calls)
}

func TestBuilderBreaksPages(t *testing.T) {
	b, w := newTestBuilder()
	b.AddHeader("JUDUL")

	last := 0.0
	for i := 0; i < 40; i++ {
		last = b.AddText("Baris", "nilai")
	}

	assert.Positive(t, w.pages)
	assert.LessOrEqual(t, last, pageHeight-margin)
	for _, y := range w.ys {
		assert.LessOrEqual(t, y, pageHeight-margin)
	}
}

func TestBuilderSplitsTallText(t *testing.T) {
	b, w := newTestBuilder()
	b.AddHeader("JUDUL")

	b.AddText("", strings.Repeat("kata ", 2000))

	assert.GreaterOrEqual(t, w.pages, 2)
	assert.Greater(t, len(w.calls), 2)
	assert.LessOrEqual(t, b.y, pageHeight-margin)
}

func TestBuilderCursorIsMonotonicWithinPage(t *testing.T) {
	b, _ := newTestBuilder()
	b.AddHeader("JUDUL")

	prev := b.y
	for _, step := range []func() float64{
		func() float64 { return b.AddSection("A") },
		func() float64 { return b.AddText("B", "c") },
		func() float64 { return b.Skip(sectionSpacing) },
		func() float64 { return b.AddTable([]string{"x"}, nil) },
		func() float64 { return b.At(prev - 50) },
	} {
		y := step()
		assert.GreaterOrEqual(t, y, prev)
		prev = y
	}
}

func TestBuilderSectionMovesWithItsFirstLine(t *testing.T) {
	b, w := newTestBuilder()
	b.AddHeader("JUDUL")
	// room for the title but not for a line of text below it
	b.y = pageHeight - margin - sectionAdvance - lineHeight - 1

	b.AddSection("Catatan")
	b.AddText("", "paragraf")

	assert.Equal(t, 1, w.pages)
	assert.Equal(t, []string{"section:Catatan", "text:"}, w.calls)
	assert.Equal(t, []float64{continuedPageY, continuedPageY + sectionAdvance}, w.ys)
}
