package handler

import (
	"net/http"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (h *Handler) GetAllTechnicians(w http.ResponseWriter, r *http.Request) {
	typ := domain.TechnicianType(r.URL.Query().Get("type"))
	if typ != "" && typ != domain.TechnicianFreelance && typ != domain.TechnicianPermanent {
		h.errorResponse(w, r, http.StatusBadRequest, "jenis teknisi harus FREELANCE atau PERMANENT")
		return
	}

	technicians, err := h.repository.GetAllTechnicians(r.URL.Query().Get("search"), typ)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "berhasil mengambil data teknisi", technicians)
}

func (h *Handler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required,max=100"`
		Phone     string `json:"phone" validate:"max=30"`
		Address   string `json:"address"`
		Type      string `json:"type" validate:"omitempty,oneof=FREELANCE PERMANENT"`
		Expertise string `json:"expertise"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	t := &domain.Technician{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Type:      domain.TechnicianType(req.Type),
		Expertise: req.Expertise,
	}
	if t.Type == "" {
		t.Type = domain.TechnicianFreelance
	}

	if err := h.repository.CreateTechnician(t); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.createdResponse(w, r, "teknisi berhasil ditambahkan", t)
}

func (h *Handler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TechnicianCtx).(*domain.Technician)

	h.successResponse(w, r, "berhasil mengambil data teknisi", t)
}

func (h *Handler) UpdateTechnician(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TechnicianCtx).(*domain.Technician)

	var req struct {
		Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
		Phone     *string `json:"phone" validate:"omitempty,max=30"`
		Address   *string `json:"address"`
		Type      *string `json:"type" validate:"omitempty,oneof=FREELANCE PERMANENT"`
		Expertise *string `json:"expertise"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.Address != nil {
		t.Address = *req.Address
	}
	if req.Type != nil {
		t.Type = domain.TechnicianType(*req.Type)
	}
	if req.Expertise != nil {
		t.Expertise = *req.Expertise
	}

	if err := h.repository.UpdateTechnician(t); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.successResponse(w, r, "teknisi berhasil diperbarui", t)
}

func (h *Handler) DeleteTechnician(w http.ResponseWriter, r *http.Request) {
	t := r.Context().Value(TechnicianCtx).(*domain.Technician)

	if err := h.repository.DeleteTechnician(t.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.successResponse(w, r, "teknisi berhasil dihapus", nil)
}
