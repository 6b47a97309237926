package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/document"
	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/clasnet-dev/field-service/backend/internal/sharelink"
	"github.com/clasnet-dev/field-service/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

var wib = time.FixedZone("WIB", 7*60*60)

// documentRequest never fails; a malformed id becomes 0 and is rejected by
// the generator after the type and format checks.
func documentRequest(r *http.Request, typ string) document.Request {
	id, _ := idParam(r)
	q := r.URL.Query()
	return document.Request{
		AssignmentID: id,
		Type:         typ,
		Format:       q.Get("format"),
		Locale:       q.Get("lang"),
	}
}

func (h *Handler) GetAssignmentDocument(w http.ResponseWriter, r *http.Request) {
	h.serveDocument(w, r, documentRequest(r, chi.URLParam(r, "type")))
}

// GetAssignmentPDF keeps the older /pdf?type= route working. It always
// renders PDF.
func (h *Handler) GetAssignmentPDF(w http.ResponseWriter, r *http.Request) {
	req := documentRequest(r, r.URL.Query().Get("type"))
	req.Format = string(document.FormatPDF)
	h.serveDocument(w, r, req)
}

func (h *Handler) GetSharedDocument(w http.ResponseWriter, r *http.Request) {
	link, err := h.signer.Verify(chi.URLParam(r, "token"))
	if err != nil {
		slog.Info("rejected share link", "error", err)
		h.errorResponse(w, r, http.StatusForbidden, "tautan tidak valid atau sudah kedaluwarsa")
		return
	}

	h.serveDocument(w, r, document.Request{
		AssignmentID: link.AssignmentID,
		Type:         link.DocumentType,
		Format:       link.Format,
		Locale:       link.Locale,
	})
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request, req document.Request) {
	artifact, err := h.documentArtifact(r.Context(), req)
	if err != nil {
		h.documentError(w, r, req, err)
		return
	}

	disposition := "attachment"
	if artifact.ContentType != document.FormatPDF.ContentType() {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Body); err != nil {
		slog.Warn("failed to write document", "assignment_id", req.AssignmentID, "error", err)
	}
}

// documentSource loads assignment projections and reports how fresh they
// are.
type documentSource interface {
	document.AssignmentFinder
	GetDocumentFingerprint(id int64) (int32, string, error)
}

// documentCache holds rendered document bodies.
type documentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

type redisDocumentCache struct {
	client  *redis.Client
	timeout time.Duration
}

func (c redisDocumentCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c redisDocumentCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.client.Set(ctx, key, body, ttl).Err()
}

// documentArtifact renders through the cache when one is configured. Entries
// are keyed by the document fingerprint and the WIB calendar day, since the
// printed issue date changes at midnight. The fingerprint is read before
// rendering, so a concurrent edit can only land a newer body under a key that
// is no longer requested.
func (h *Handler) documentArtifact(ctx context.Context, req document.Request) (*document.Artifact, error) {
	if h.documentCache == nil {
		return h.generator.Generate(req)
	}
	if err := h.generator.Validate(req); err != nil {
		return nil, err
	}

	version, fingerprint, err := h.documents.GetDocumentFingerprint(req.AssignmentID)
	if err != nil {
		// let the generator produce the proper not found error
		return h.generator.Generate(req)
	}

	t, _ := document.ParseType(req.Type)
	f, _ := document.ParseFormat(req.Format)
	locale := req.Locale
	if locale == "" {
		locale = h.config.Document.DefaultLocale
	}
	key := documentCacheKey(req.AssignmentID, fingerprint, t, f, locale, h.now())

	if body, ok, err := h.documentCache.Get(ctx, key); err != nil {
		slog.Warn("failed to read cached document", "key", key, "error", err)
	} else if ok {
		return &document.Artifact{
			Filename:    document.Filename(t, f, req.AssignmentID),
			ContentType: f.ContentType(),
			Body:        body,
			Version:     version,
		}, nil
	}

	artifact, err := h.generator.Generate(req)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(h.config.Document.CacheTTL) * time.Second
	if err := h.documentCache.Set(ctx, key, artifact.Body, ttl); err != nil {
		slog.Warn("failed to cache document", "key", key, "error", err)
	}

	return artifact, nil
}

func documentCacheKey(id int64, fingerprint string, t document.Type, f document.Format, locale string, now time.Time) string {
	return fmt.Sprintf("document:%d:%s:%s:%s:%s:%s", id, fingerprint, t, f, locale, now.In(wib).Format("20060102"))
}

// documentError answers with the generator's user facing message. Outside
// production the cause is attached so failures can be traced from the
// client side as well.
func (h *Handler) documentError(w http.ResponseWriter, r *http.Request, req document.Request, err error) {
	var docErr *document.Error
	if !errors.As(err, &docErr) {
		h.internalServerError(w, r, err)
		return
	}

	attrs := []any{
		"assignment_id", docErr.AssignmentID,
		"document_type", docErr.Type,
		"code", docErr.Code.String(),
		"kind", docErr.Kind(),
		"error", docErr,
	}
	if docErr.Code == document.Render {
		slog.Error("document generation failed", attrs...)
	} else {
		slog.Info("document request rejected", attrs...)
	}

	details := map[string]any{
		"code":         docErr.Code.String(),
		"assignmentId": req.AssignmentID,
		"documentType": req.Type,
	}
	if h.config.Environment != "production" {
		details["kind"] = docErr.Kind()
		if docErr.Err != nil {
			details["error"] = docErr.Err.Error()
		}
	}

	h.writeJSON(w, r, docErr.Code.HTTPStatus(), Response{
		Success: false,
		Message: docErr.Msg,
		Data:    details,
	})
}

type sharedDocument struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) shareLink(req document.Request) (*sharedDocument, error) {
	token, expiresAt, err := h.signer.Sign(sharelink.Link{
		AssignmentID: req.AssignmentID,
		DocumentType: req.Type,
		Format:       req.Format,
		Locale:       req.Locale,
	})
	if err != nil {
		return nil, err
	}

	return &sharedDocument{
		URL:       h.config.Server.PublicBaseURL + "/shared/documents/" + token,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// lookupForDelivery validates req and loads the assignment it points to,
// writing the error response itself when either step fails.
func (h *Handler) lookupForDelivery(w http.ResponseWriter, r *http.Request, req document.Request) (*domain.AssignmentDocument, bool) {
	if err := h.generator.Validate(req); err != nil {
		h.documentError(w, r, req, err)
		return nil, false
	}

	doc, err := h.documents.GetAssignmentDocument(req.AssignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.notFound(w, r, "penugasan tidak ditemukan")
			return nil, false
		}
		h.internalServerError(w, r, err)
		return nil, false
	}

	return doc, true
}

func (h *Handler) ShareAssignmentDocument(w http.ResponseWriter, r *http.Request) {
	req := documentRequest(r, chi.URLParam(r, "type"))
	if _, ok := h.lookupForDelivery(w, r, req); !ok {
		return
	}

	shared, err := h.shareLink(req)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "tautan dokumen berhasil dibuat", shared)
}

func (h *Handler) EmailAssignmentDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To string `json:"to" validate:"omitempty,email"`
	}
	// the body is optional
	if err := h.readJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req := documentRequest(r, chi.URLParam(r, "type"))
	doc, ok := h.lookupForDelivery(w, r, req)
	if !ok {
		return
	}

	if h.mailChannel == nil {
		h.errorResponse(w, r, http.StatusServiceUnavailable, "layanan email tidak tersedia")
		return
	}

	recipient, recipientName := body.To, ""
	if doc.Client != nil {
		recipientName = doc.Client.ContactPerson
		if recipientName == "" {
			recipientName = doc.Client.Name
		}
		if recipient == "" {
			recipient = doc.Client.Email
		}
	}
	if recipient == "" {
		h.errorResponse(w, r, http.StatusBadRequest, "klien tidak memiliki alamat email, isi kolom to")
		return
	}

	shared, err := h.shareLink(req)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	t, _ := document.ParseType(req.Type)
	labels, _ := document.LabelsFor(h.config.Document.DefaultLocale)
	if l, ok := document.LabelsFor(req.Locale); ok {
		labels = l
	}

	mail, err := json.Marshal(domain.MailMessage{
		Type: domain.MailTypeDocumentLink,
		To:   recipient,
		Data: domain.DocumentLinkMailData{
			RecipientName: recipientName,
			CompanyName:   h.config.Company.Name,
			DocumentTitle: t.Title(labels),
			AssignmentID:  req.AssignmentID,
			Link:          shared.URL,
			ExpiresAt:     shared.ExpiresAt.In(wib).Format("02/01/2006 15:04 WIB"),
		},
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(ctx, "", "email_queue", true, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        mail,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slog.Info("document link queued", "assignment_id", req.AssignmentID, "document_type", req.Type, "to", recipient)
	h.successResponse(w, r, "dokumen akan dikirim ke "+recipient, shared)
}

func (h *Handler) ArchiveAssignmentDocument(w http.ResponseWriter, r *http.Request) {
	req := documentRequest(r, chi.URLParam(r, "type"))
	if err := h.generator.Validate(req); err != nil {
		h.documentError(w, r, req, err)
		return
	}
	if h.archive == nil {
		h.errorResponse(w, r, http.StatusServiceUnavailable, "penyimpanan arsip tidak aktif")
		return
	}

	artifact, err := h.generator.Generate(req)
	if err != nil {
		h.documentError(w, r, req, err)
		return
	}

	key := storage.ObjectKey(req.Type, req.AssignmentID, artifact.Filename, h.now())
	obj, err := h.archive.Put(r.Context(), key, artifact.ContentType, artifact.Body)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "dokumen berhasil diarsipkan", obj)
}
