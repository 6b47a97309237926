package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "terjadi kesalahan pada server", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.errorResponse(w, r, http.StatusNotFound, msg)
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "terjadi kesalahan pada server",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func (h *Handler) createdResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

var constraintMessages = map[string]struct {
	status int
	msg    string
}{
	"clients_name_key":                         {http.StatusConflict, "nama klien sudah terdaftar"},
	"service_types_name_key":                   {http.StatusConflict, "nama layanan sudah terdaftar"},
	"equipment_name_key":                       {http.StatusConflict, "nama peralatan sudah terdaftar"},
	"service_types_price_check":                {http.StatusBadRequest, "harga layanan tidak boleh negatif"},
	"equipment_stock_quantity_check":           {http.StatusBadRequest, "stok peralatan tidak boleh negatif"},
	"technicians_type_check":                   {http.StatusBadRequest, "jenis teknisi harus FREELANCE atau PERMANENT"},
	"assignments_status_check":                 {http.StatusBadRequest, "status penugasan tidak dikenal"},
	"assignments_period_check":                 {http.StatusBadRequest, "tanggal selesai tidak boleh lebih awal dari tanggal mulai"},
	"assignments_client_id_fkey":               {http.StatusBadRequest, "klien tidak ditemukan"},
	"assignments_service_type_id_fkey":         {http.StatusBadRequest, "jenis layanan tidak ditemukan"},
	"assignments_lead_technician_id_fkey":      {http.StatusBadRequest, "teknisi utama tidak ditemukan"},
	"assignment_assistants_technician_id_fkey": {http.StatusBadRequest, "asisten tidak ditemukan"},
	"assignment_assistants_pkey":               {http.StatusBadRequest, "asisten terdaftar lebih dari sekali"},
	"assignment_equipment_equipment_id_fkey":   {http.StatusBadRequest, "peralatan tidak ditemukan"},
	"assignment_equipment_pkey":                {http.StatusBadRequest, "peralatan terdaftar lebih dari sekali"},
	"assignment_equipment_quantity_check":      {http.StatusBadRequest, "jumlah peralatan harus minimal 1"},
}

// writeError maps errors from repository writes to responses. A missing row
// on a write means the version check failed.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		if m, ok := constraintMessages[pgErr.ConstraintName]; ok {
			h.errorResponse(w, r, m.status, m.msg)
			return
		}
		h.internalServerError(w, r, err)
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, http.StatusConflict, "data telah diubah oleh pengguna lain, silakan coba lagi")
	default:
		h.internalServerError(w, r, err)
	}
}
