package document

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/clasnet-dev/field-service/backend/internal/payment"
)

type Type string

const (
	WorkOrder        Type = "work-order"
	CompletionReport Type = "completion-report"
	PaymentReceipt   Type = "payment-receipt"
)

var Types = []Type{WorkOrder, CompletionReport, PaymentReceipt}

func ParseType(s string) (Type, bool) {
	for _, t := range Types {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// filePrefix is the artifact name stem used by the office for each document.
func (t Type) filePrefix() string {
	switch t {
	case WorkOrder:
		return "surat-tugas"
	case CompletionReport:
		return "berita-acara"
	default:
		return "tagihan"
	}
}

func (t Type) Title(l *Labels) string {
	switch t {
	case WorkOrder:
		return l.WorkOrderTitle
	case CompletionReport:
		return l.CompletionReportTitle
	default:
		return l.PaymentReceiptTitle
	}
}

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", FormatPDF:
		return FormatPDF, true
	case FormatHTML:
		return FormatHTML, true
	}
	return "", false
}

func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

func Filename(t Type, f Format, assignmentID int64) string {
	return fmt.Sprintf("%s-%d.%s", t.filePrefix(), assignmentID, f)
}

// AssignmentFinder loads the rendering projection of an assignment. It
// returns sql.ErrNoRows when the assignment does not exist.
type AssignmentFinder interface {
	GetAssignmentDocument(id int64) (*domain.AssignmentDocument, error)
}

type Request struct {
	AssignmentID int64
	Type         string
	Format       string
	Locale       string
}

type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
	// Version of the assignment the artifact was rendered from.
	Version int32
}

type Generator struct {
	finder        AssignmentFinder
	policy        payment.Policy
	company       Company
	defaultLocale string
	now           func() time.Time
}

type Option func(*Generator)

// WithClock fixes the time printed as issue and payment date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithDefaultLocale(locale string) Option {
	return func(g *Generator) {
		if _, ok := LabelsFor(locale); ok {
			g.defaultLocale = locale
		}
	}
}

func NewGenerator(finder AssignmentFinder, policy payment.Policy, company Company, opts ...Option) *Generator {
	g := &Generator{
		finder:        finder,
		policy:        policy,
		company:       company,
		defaultLocale: indonesian.Locale,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request fields are checked before the assignment is looked up.
func (g *Generator) validate(req Request) (Type, Format, *Labels, error) {
	t, ok := ParseType(req.Type)
	if !ok {
		return "", "", nil, newError(Validation, "jenis dokumen harus work-order, completion-report, atau payment-receipt", req.AssignmentID, req.Type, nil)
	}
	f, ok := ParseFormat(req.Format)
	if !ok {
		return "", "", nil, newError(Validation, "format dokumen harus pdf atau html", req.AssignmentID, req.Type, nil)
	}
	locale := req.Locale
	if locale == "" {
		locale = g.defaultLocale
	}
	labels, ok := LabelsFor(locale)
	if !ok {
		return "", "", nil, newError(Validation, "bahasa dokumen harus id atau en", req.AssignmentID, req.Type, nil)
	}
	if req.AssignmentID <= 0 {
		return "", "", nil, newError(Validation, "ID penugasan wajib diisi", req.AssignmentID, req.Type, nil)
	}
	return t, f, labels, nil
}

func checkRelations(d *domain.AssignmentDocument, typ Type) error {
	var relation, name string
	switch {
	case d.Client == nil:
		relation, name = "client", "klien"
	case d.ServiceType == nil:
		relation, name = "service type", "jenis layanan"
	case d.LeadTechnician == nil:
		relation, name = "lead technician", "teknisi utama"
	default:
		return nil
	}
	return newError(MissingRelation,
		fmt.Sprintf("data %s tidak ditemukan untuk penugasan %d", name, d.ID),
		d.ID, string(typ), fmt.Errorf("assignment %d has no %s", d.ID, relation))
}

// Breakdown computes the receipt cost breakdown of an assignment.
func Breakdown(policy payment.Policy, d *domain.AssignmentDocument) (domain.CostBreakdown, error) {
	res, err := payment.Calculate(policy, payment.Input{
		ServiceTypePrice:    d.ServiceType.BasePrice(),
		LeadTechnicianCount: 1,
		AssistantCount:      len(d.Assistants),
	})
	if err != nil {
		return domain.CostBreakdown{}, err
	}
	return payment.Receipt(res, len(d.Assistants), d.Expenses)
}

// Validate checks a request without touching storage.
func (g *Generator) Validate(req Request) error {
	_, _, _, err := g.validate(req)
	return err
}

// Generate renders one document for one assignment. Every call uses its own
// builder; nothing is shared between calls.
func (g *Generator) Generate(req Request) (*Artifact, error) {
	t, f, labels, err := g.validate(req)
	if err != nil {
		return nil, err
	}

	d, err := g.finder.GetAssignmentDocument(req.AssignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, newError(NotFound, "penugasan tidak ditemukan", req.AssignmentID, string(t), err)
		}
		return nil, newError(Render, "gagal membuat dokumen", req.AssignmentID, string(t), err)
	}
	if err := checkRelations(d, t); err != nil {
		return nil, err
	}

	in := renderInput{doc: d, now: g.now()}
	if t == PaymentReceipt {
		cb, err := Breakdown(g.policy, d)
		if err != nil {
			return nil, newError(Render, "gagal menghitung rincian biaya", d.ID, string(t), err)
		}
		in.cost = &cb
	}

	body, err := g.render(t, f, labels, in)
	if err != nil {
		return nil, newError(Render, "gagal membuat dokumen", d.ID, string(t), err)
	}

	return &Artifact{
		Filename:    Filename(t, f, d.ID),
		ContentType: f.ContentType(),
		Body:        body,
		Version:     d.Version,
	}, nil
}

func (g *Generator) render(t Type, f Format, labels *Labels, in renderInput) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout panic: %v", r)
		}
	}()

	var w writer
	switch f {
	case FormatHTML:
		w = newHTMLWriter(labels.Locale)
	default:
		w = newPDFWriter(t.Title(labels), in.now)
	}

	b := newBuilder(w, g.company, labels)
	fm := newFormatter(labels)
	switch t {
	case WorkOrder:
		renderWorkOrder(b, fm, in)
	case CompletionReport:
		renderCompletionReport(b, fm, in)
	case PaymentReceipt:
		renderPaymentReceipt(b, fm, in)
	}

	return b.Bytes()
}
