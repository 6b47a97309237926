package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasnet-dev/field-service/backend/internal/config"
	"github.com/clasnet-dev/field-service/backend/internal/document"
	"github.com/clasnet-dev/field-service/backend/internal/domain"
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

func (f *fakeFinder) GetDocumentFingerprint(id int64) (int32, string, error) {
	if f.err != nil {
		return 0, "", f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return 0, "", sql.ErrNoRows
	}
	fp := fmt.Sprintf("a%d", d.Version)
	if d.Client != nil {
		fp += fmt.Sprintf("-c%d", d.Client.Version)
	}
	return d.Version, fp, nil
}

type memoryCache struct {
	entries map[string][]byte
	hits    int
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	body, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return body, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, body []byte, _ time.Duration) error {
	c.entries[key] = body
	return nil
}

func sampleDocument() *domain.AssignmentDocument {
	price := 1000000.0
	return &domain.AssignmentDocument{
		ID:      42,
		Version: 1,
		Client: &domain.Client{
			ID:            1,
			Name:          "PT. Maju Bersama",
			ContactPerson: "Bapak Ahmad",
			Email:         "ahmad@majubersama.co.id",
		},
		ServiceType: &domain.ServiceType{
			ID:    1,
			Name:  "Instalasi Jaringan",
			Price: &price,
		},
		LeadTechnician: &domain.Technician{ID: 1, Name: "Ahmad Wijaya", Type: domain.TechnicianFreelance},
		Assistants:     []domain.Technician{{ID: 2, Name: "Budi Santoso"}},
		StartDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC),
		Status:         domain.AssignmentCompleted,
	}
}

func newTestHandler(t *testing.T, finder *fakeFinder) *Handler {
	t.Helper()

	cfg := &config.Config{Environment: "test"}
	cfg.Server.PublicBaseURL = "http://docs.test"
	cfg.Company.Name = "CLASNET GROUP"
	cfg.Document.DefaultLocale = "id"
	cfg.Payment.LeadBonusPercent = 10
	cfg.Payment.AssistantSharePercent = 50
	cfg.ShareLink.Secret = "test-secret"
	cfg.ShareLink.Expiration = 3600

	h, err := NewHandler(cfg, nil, nil, nil, nil)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, time.October, 17, 3, 0, 0, 0, time.UTC) }
	h.documents = finder
	h.generator = document.NewGenerator(finder, h.policy, document.Company{Name: cfg.Company.Name}, document.WithClock(now))
	h.now = now
	h.RegisterRoutes()

	return h
}

func serve(h *Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestDocumentRejectsUnknownTypeBeforeLookup(t *testing.T) {
	finder := &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}}
	h := newTestHandler(t, finder)

	rec := serve(h, http.MethodGet, "/assignments/42/documents/invoice", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode(t, rec).Success)
	assert.Equal(t, 0, finder.calls)
}

func TestDocumentRejectsMalformedID(t *testing.T) {
	finder := &fakeFinder{}
	h := newTestHandler(t, finder)

	rec := serve(h, http.MethodGet, "/assignments/abc/documents/work-order", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, finder.calls)
}

func TestDocumentNotFound(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{})

	rec := serve(h, http.MethodGet, "/assignments/7/documents/work-order", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decode(t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, "penugasan tidak ditemukan", res.Message)
	details := res.Data.(map[string]any)
	assert.EqualValues(t, 7, details["assignmentId"])
	assert.Equal(t, "work-order", details["documentType"])
}

func TestDocumentMissingRelation(t *testing.T) {
	d := sampleDocument()
	d.LeadTechnician = nil
	h := newTestHandler(t, &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: d}})

	rec := serve(h, http.MethodGet, "/assignments/42/documents/work-order", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "teknisi utama")
}

func TestDocumentErrorDetailsDependOnEnvironment(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection refused")}

	h := newTestHandler(t, finder)
	rec := serve(h, http.MethodGet, "/assignments/42/documents/work-order", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	details := decode(t, rec).Data.(map[string]any)
	assert.Equal(t, "connection refused", details["error"])
	assert.Equal(t, "*errors.errorString", details["kind"])

	h = newTestHandler(t, finder)
	h.config.Environment = "production"
	rec = serve(h, http.MethodGet, "/assignments/42/documents/work-order", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	details = decode(t, rec).Data.(map[string]any)
	assert.NotContains(t, details, "error")
	assert.NotContains(t, details, "kind")
	assert.Equal(t, "render", details["code"])
}

func TestDocumentHTMLReceipt(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}})

	rec := serve(h, http.MethodGet, "/assignments/42/documents/payment-receipt?format=html", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="tagihan-42.html"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "PAID")
	assert.Contains(t, rec.Body.String(), "Rp 1.600.000")
}

func TestLegacyPDFRoute(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}})

	rec := serve(h, http.MethodGet, "/assignments/42/pdf?type=work-order&format=html", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="surat-tugas-42.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = serve(h, http.MethodGet, "/assignments/42/pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareLinkRoundTrip(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}})

	rec := serve(h, http.MethodPost, "/assignments/42/documents/completion-report/share?format=html&lang=en", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decode(t, rec).Data.(map[string]any)
	url := data["url"].(string)
	require.True(t, strings.HasPrefix(url, "http://docs.test/shared/documents/"))

	rec = serve(h, http.MethodGet, strings.TrimPrefix(url, "http://docs.test"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "COMPLETION REPORT")
}

func TestShareUnknownAssignment(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{})

	rec := serve(h, http.MethodPost, "/assignments/9/documents/work-order/share", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSharedDocumentRejectsBadToken(t *testing.T) {
	finder := &fakeFinder{}
	h := newTestHandler(t, finder)

	rec := serve(h, http.MethodGet, "/shared/documents/not-a-token", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, finder.calls)
}

func TestArchiveUnavailableWithoutStorage(t *testing.T) {
	finder := &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}}
	h := newTestHandler(t, finder)

	rec := serve(h, http.MethodPost, "/assignments/42/documents/work-order/archive", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(h, http.MethodPost, "/assignments/42/documents/invoice/archive", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, finder.calls)
}

func TestEmailValidatesRecipient(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: sampleDocument()}})

	rec := serve(h, http.MethodPost, "/assignments/42/documents/work-order/email", `{"to":"bukan-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// no broker configured
	rec = serve(h, http.MethodPost, "/assignments/42/documents/work-order/email", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCalculatePayment(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{})

	rec := serve(h, http.MethodPost, "/payments/calculate", `{"serviceTypePrice":1000000,"assistantCount":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec).Data.(map[string]any)
	assert.EqualValues(t, 2100000, data["totalCost"])
	assert.EqualValues(t, 1100000, data["leadTechnicianTotal"])
	assert.EqualValues(t, 10, data["leadTechnicianBonus"])
	assert.Len(t, data["assistantTotals"], 2)
}

func TestCalculatePaymentRejectsBadInput(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{})

	for name, body := range map[string]string{
		"negative price":    `{"serviceTypePrice":-5,"assistantCount":0}`,
		"negative team":     `{"serviceTypePrice":100,"assistantCount":-1}`,
		"two leads":         `{"serviceTypePrice":100,"leadTechnicianCount":2}`,
		"oversized team":    `{"serviceTypePrice":1,"assistantCount":1000000000}`,
		"oversized price":   `{"serviceTypePrice":1e15,"assistantCount":1}`,
		"no price":          `{"assistantCount":1}`,
		"malformed payload": `{"serviceTypePrice":`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(h, http.MethodPost, "/payments/calculate", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decode(t, rec).Success)
		})
	}
}

func TestDocumentCacheKey(t *testing.T) {
	// 17:30 UTC is already the next day in WIB
	at := time.Date(2026, time.October, 17, 17, 30, 0, 0, time.UTC)

	key := documentCacheKey(42, "9f86d081", document.PaymentReceipt, document.FormatPDF, "id", at)

	assert.Equal(t, "document:42:9f86d081:payment-receipt:pdf:id:20261018", key)
}

func TestCachedDocumentFollowsRelatedEdits(t *testing.T) {
	d := sampleDocument()
	finder := &fakeFinder{docs: map[int64]*domain.AssignmentDocument{42: d}}
	h := newTestHandler(t, finder)
	cache := &memoryCache{entries: map[string][]byte{}}
	h.documentCache = cache

	target := "/assignments/42/documents/work-order?format=html"
	first := serve(h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "PT. Maju Bersama")

	again := serve(h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, first.Body.String(), again.Body.String())
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, finder.calls)

	// renaming the client bumps only the client row
	d.Client.Name = "PT. Maju Jaya"
	d.Client.Version++

	edited := serve(h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, edited.Code)
	assert.Contains(t, edited.Body.String(), "PT. Maju Jaya")
	assert.NotContains(t, edited.Body.String(), "PT. Maju Bersama")
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 2, finder.calls)
	assert.Len(t, cache.entries, 2)
}

func TestWritesRejectOutOfRangeAmounts(t *testing.T) {
	h := newTestHandler(t, &fakeFinder{})

	ids := make([]string, 101)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 2)
	}
	assignment := func(extra string) string {
		return `{"clientId":1,"serviceTypeId":1,"leadTechnicianId":1,` +
			`"startDate":"2024-01-15T00:00:00Z","endDate":"2024-01-18T00:00:00Z"` + extra + `}`
	}

	for name, c := range map[string]struct{ target, body string }{
		"service price":  {"/service-types", `{"name":"Instalasi","price":1e13}`},
		"assistant crew": {"/assignments", assignment(`,"assistantIds":[` + strings.Join(ids, ",") + `]`)},
		"transport":      {"/assignments", assignment(`,"expenses":{"transport":1e13}`)},
		"manual total":   {"/assignments", assignment(`,"manualCostOverride":true,"totalCost":1e13`)},
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(h, http.MethodPost, c.target, c.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decode(t, rec).Success)
		})
	}
}
