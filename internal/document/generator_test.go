package document

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/clasnet-dev/field-service/backend/internal/payment"
)

var (
	testCompany = Company{
		Name:    "CLASNET GROUP",
		Address: "Jl. Serulingmas No. 32, Banjarnegara, Indonesia",
		Phone:   "+62 286 123456",
	}
	testPolicy = payment.DefaultPolicy{LeadBonusPercent: 10, AssistantSharePercent: 50}
	fixedNow   = time.Date(2026, time.October, 17, 3, 0, 0, 0, time.UTC)
)

type fakeFinder struct {
	docs  map[int64]*domain.AssignmentDocument
	err   error
	calls int
}

func (f *fakeFinder) GetAssignmentDocument(id int64) (*domain.AssignmentDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

func sampleDocument() *domain.AssignmentDocument {
	price := 1000000.0
	return &domain.AssignmentDocument{
		ID:      42,
		Version: 3,
		Client: &domain.Client{
			ID:            1,
			Name:          "PT. Maju Bersama",
			ContactPerson: "Bapak Ahmad",
			Phone:         "+62 286-123456",
			Address:       "Jl. Industri No. 10, Banjarnegara",
		},
		ServiceType: &domain.ServiceType{
			ID:          1,
			Name:        "Instalasi Jaringan",
			Category:    "Network",
			Description: "Instalasi jaringan LAN/WAN untuk kantor dan rumah",
			Price:       &price,
		},
		LeadTechnician: &domain.Technician{
			ID:        1,
			Name:      "Ahmad Wijaya",
			Phone:     "+62 812-3456-7890",
			Address:   "Jl. Merdeka No. 123, Banjarnegara",
			Type:      domain.TechnicianFreelance,
			Expertise: "Network Installation, CCTV Setup",
		},
		Assistants: []domain.Technician{{ID: 2, Name: "Budi Santoso"}},
		Equipment: []domain.EquipmentLine{
			{Name: "Router WiFi", Unit: "unit", Quantity: 2},
			{Name: "Kabel UTP", Unit: "meter", Quantity: 50},
		},
		StartDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC),
		Status:    domain.AssignmentInProgress,
		Notes:     "Instalasi jaringan untuk kantor baru",
	}
}

func newTestGenerator(docs ...*domain.AssignmentDocument) (*Generator, *fakeFinder) {
	finder := &fakeFinder{docs: map[int64]*domain.AssignmentDocument{}}
	for _, d := range docs {
		finder.docs[d.ID] = d
	}
	g := NewGenerator(finder, testPolicy, testCompany, WithClock(func() time.Time { return fixedNow }))
	return g, finder
}

func TestGenerateIsDeterministic(t *testing.T) {
	g, _ := newTestGenerator(sampleDocument())

	for _, typ := range Types {
		for _, format := range []Format{FormatPDF, FormatHTML} {
			t.Run(fmt.Sprintf("%s/%s", typ, format), func(t *testing.T) {
				req := Request{AssignmentID: 42, Type: string(typ), Format: string(format)}
				first, err := g.Generate(req)
				require.NoError(t, err)
				second, err := g.Generate(req)
				require.NoError(t, err)

				assert.True(t, bytes.Equal(first.Body, second.Body))
				assert.NotEmpty(t, first.Body)
				assert.Equal(t, format.ContentType(), first.ContentType)
			})
		}
	}
}

func TestGenerateFilenames(t *testing.T) {
	g, _ := newTestGenerator(sampleDocument())

	cases := map[Type]string{
		WorkOrder:        "surat-tugas-42.pdf",
		CompletionReport: "berita-acara-42.pdf",
		PaymentReceipt:   "tagihan-42.pdf",
	}
	for typ, name := range cases {
		a, err := g.Generate(Request{AssignmentID: 42, Type: string(typ)})
		require.NoError(t, err)
		assert.Equal(t, name, a.Filename)
		assert.True(t, bytes.HasPrefix(a.Body, []byte("%PDF-")))
		assert.Equal(t, int32(3), a.Version)
	}

	a, err := g.Generate(Request{AssignmentID: 42, Type: string(WorkOrder), Format: "html"})
	require.NoError(t, err)
	assert.Equal(t, "surat-tugas-42.html", a.Filename)
}

func TestGenerateValidatesBeforeLookup(t *testing.T) {
	g, finder := newTestGenerator(sampleDocument())

	for _, req := range []Request{
		{AssignmentID: 42, Type: "invoice"},
		{AssignmentID: 42, Type: ""},
		{AssignmentID: 42, Type: string(WorkOrder), Format: "docx"},
		{AssignmentID: 42, Type: string(WorkOrder), Locale: "fr"},
		{AssignmentID: 0, Type: string(WorkOrder)},
	} {
		_, err := g.Generate(req)
		assert.True(t, IsCode(err, Validation), "request %+v: %v", req, err)
	}
	assert.Zero(t, finder.calls)
}

func TestGenerateNotFound(t *testing.T) {
	g, finder := newTestGenerator()

	a, err := g.Generate(Request{AssignmentID: 7, Type: string(PaymentReceipt)})
	assert.Nil(t, a)
	require.Error(t, err)
	assert.True(t, IsCode(err, NotFound))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 1, finder.calls)

	var docErr *Error
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, int64(7), docErr.AssignmentID)
	assert.Equal(t, string(PaymentReceipt), docErr.Type)
	assert.Equal(t, 404, docErr.Code.HTTPStatus())
}

func TestGenerateLookupFailureIsRenderError(t *testing.T) {
	g, finder := newTestGenerator()
	finder.err = errors.New("connection reset")

	_, err := g.Generate(Request{AssignmentID: 7, Type: string(WorkOrder)})
	assert.True(t, IsCode(err, Render))
}

func TestGenerateMissingRelation(t *testing.T) {
	d := sampleDocument()
	d.LeadTechnician = nil
	g, _ := newTestGenerator(d)

	_, err := g.Generate(Request{AssignmentID: 42, Type: string(WorkOrder)})
	require.Error(t, err)
	assert.True(t, IsCode(err, MissingRelation))
	assert.Contains(t, err.Error(), "teknisi utama")
	assert.Contains(t, err.Error(), "42")
}

func TestGenerateFallbacks(t *testing.T) {
	d := sampleDocument()
	d.Client.ContactPerson = ""
	d.ServiceType.Description = ""
	d.Notes = ""
	d.Equipment = nil
	d.Assistants = nil
	g, _ := newTestGenerator(d)

	for _, typ := range Types {
		a, err := g.Generate(Request{AssignmentID: 42, Type: string(typ), Format: "html"})
		require.NoError(t, err)
		html := string(a.Body)

		assert.NotContains(t, html, "<nil>")
		assert.NotContains(t, html, "Catatan")
		assert.NotContains(t, html, "<table>\n<thead><tr><th>No</th>")
		if typ == WorkOrder {
			assert.Contains(t, html, `<span class="label">Kontak:</span> -</p>`)
			assert.Contains(t, html, `<span class="label">Asisten:</span> -</p>`)
		}
		if typ == CompletionReport {
			assert.Contains(t, html, "Layanan telah diselesaikan sesuai perjanjian")
		}
	}
}

func TestGenerateTemplateOrder(t *testing.T) {
	g, _ := newTestGenerator(sampleDocument())

	a, err := g.Generate(Request{AssignmentID: 42, Type: string(WorkOrder), Format: "html"})
	require.NoError(t, err)
	html := string(a.Body)

	order := []string{
		"SURAT PERINTAH KERJA (WORK ORDER)",
		"Detail Penugasan",
		"Informasi Klien",
		"Informasi Teknisi",
		"Peralatan",
		"Catatan",
		"Disetujui Oleh",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(html, s)
		require.GreaterOrEqual(t, i, 0, s)
		assert.Greater(t, i, last, s)
		last = i
	}
}

func TestPaymentReceiptEndToEnd(t *testing.T) {
	d := sampleDocument()
	g, _ := newTestGenerator(d)

	cb, err := Breakdown(testPolicy, d)
	require.NoError(t, err)
	assert.InDelta(t, cb.Total,
		cb.LeadTechnicianBaseFee+cb.LeadTechnicianBonusAmount+cb.AssistantTechnicianCost+
			cb.TransportCost+cb.Accommodation+cb.IncidentalEquipmentCost, 1e-9)
	assert.Equal(t, 1600000.0, cb.Total)

	a, err := g.Generate(Request{AssignmentID: 42, Type: string(PaymentReceipt), Format: "html"})
	require.NoError(t, err)
	html := string(a.Body)

	assert.Contains(t, html, "Ahmad Wijaya")
	assert.Contains(t, html, "<td>TOTAL</td><td>Rp 1.600.000</td>")
	assert.Contains(t, html, `<span class="label">Status Bayar:</span> PAID</p>`)
	assert.Contains(t, html, "Transfer Bank")
	assert.Contains(t, html, "TG-20261017-000042")
	assert.Contains(t, html, "17 Oktober 2026")
}

func TestPaymentReceiptEnglish(t *testing.T) {
	g, _ := newTestGenerator(sampleDocument())

	a, err := g.Generate(Request{AssignmentID: 42, Type: string(PaymentReceipt), Format: "html", Locale: "en"})
	require.NoError(t, err)
	html := string(a.Body)

	assert.Contains(t, html, "PAYMENT RECEIPT")
	assert.Contains(t, html, "Rp 1,600,000")
	assert.Contains(t, html, "Bank Transfer")
	assert.Contains(t, html, "October 17, 2026")
}

func TestGenerateLongNotesSpansPages(t *testing.T) {
	d := sampleDocument()
	d.Notes = strings.Repeat("Penarikan kabel dan pengujian konektivitas di setiap ruangan. ", 120)
	g, _ := newTestGenerator(d)

	a, err := g.Generate(Request{AssignmentID: 42, Type: string(PaymentReceipt)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(a.Body, []byte("%PDF-")))
}

func TestGeneratePDFWithAccentedText(t *testing.T) {
	d := sampleDocument()
	d.Client.Name = "Café Señor"
	d.Client.Address = "Jl. Nusantara – Blok “C”, Banjarnegara"
	d.Notes = "“rapi” – selesai tepat waktu, klien puas dengan hasil pemasangan dan pengujian ulang"
	g, _ := newTestGenerator(d)

	for _, typ := range Types {
		t.Run(string(typ), func(t *testing.T) {
			var a *Artifact
			var err error
			require.NotPanics(t, func() {
				a, err = g.Generate(Request{AssignmentID: 42, Type: string(typ), Format: "pdf"})
			})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(a.Body, []byte("%PDF-")))
		})
	}
}

func TestPDFWrapKeepsCodePageBytes(t *testing.T) {
	p := newPDFWriter("test", fixedNow)

	lines := p.Wrap("Café Señor – “rapi”", printableWidth)
	require.Len(t, lines, 1)
	assert.Equal(t, p.tr("Café Señor – “rapi”"), lines[0])

	long := strings.Repeat("Señor café ", 40)
	wrapped := p.Wrap(long, printableWidth-valueIndent)
	assert.Greater(t, len(wrapped), 1)
	for _, line := range wrapped {
		assert.NotContains(t, line, "�")
	}
	assert.Empty(t, p.Wrap("", printableWidth))
}
